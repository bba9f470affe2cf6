package api

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docsight/internal/fragment"
	"github.com/dgallion1/docsight/internal/pipeline"
)

// handleOutline runs outline mode: exactly one document in, one outline
// artifact out.
func (s *Server) handleOutline(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["file"]
	if len(files) != 1 {
		jsonError(w, "outline mode takes exactly one file", http.StatusBadRequest)
		return
	}

	doc, err := s.readUpload(files[0])
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	artifact, err := s.analyzer.Outline(r.Context(), doc)
	if err != nil {
		s.writePipelineError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(artifact)
}

// handleRank runs ranking mode: 3-10 documents plus a persona query in, one
// ranking artifact out.
func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes*int64(s.cfg.MaxRankDocuments)+10*1024*1024)

	if err := r.ParseMultipartForm(64 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	persona := r.FormValue("persona")
	job := r.FormValue("job")
	if job == "" {
		job = r.FormValue("job_to_be_done")
	}

	var docs []pipeline.DocumentInput
	for _, fh := range r.MultipartForm.File["files"] {
		doc, err := s.readUpload(fh)
		if err != nil {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		docs = append(docs, doc)
	}

	result, err := s.analyzer.Rank(r.Context(), docs, persona, job)
	if err != nil {
		s.writePipelineError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func (s *Server) handleEncodeStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.analyzer.Stats())
}

// readUpload validates and buffers one multipart file.
func (s *Server) readUpload(fh *multipart.FileHeader) (pipeline.DocumentInput, error) {
	filename := sanitizeFilename(fh.Filename)
	if !fragment.IsSupportedExtension(filename) {
		return pipeline.DocumentInput{}, fmt.Errorf("unsupported file type: %s", filepath.Ext(filename))
	}

	f, err := fh.Open()
	if err != nil {
		return pipeline.DocumentInput{}, fmt.Errorf("open %s: %w", filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, s.cfg.MaxUploadBytes+1))
	if err != nil {
		return pipeline.DocumentInput{}, fmt.Errorf("read %s: %w", filename, err)
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		return pipeline.DocumentInput{}, fmt.Errorf("%s exceeds max size (%d bytes)", filename, s.cfg.MaxUploadBytes)
	}

	return pipeline.DocumentInput{Name: filename, Data: data}, nil
}

// writePipelineError maps pipeline error kinds onto HTTP statuses.
func (s *Server) writePipelineError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch pipeline.KindOf(err) {
	case pipeline.KindInvalidInput, pipeline.KindInvalidQuery:
		status = http.StatusBadRequest
	case pipeline.KindExtractionFailed:
		status = http.StatusUnprocessableEntity
	case pipeline.KindModelUnavailable:
		status = http.StatusServiceUnavailable
	case pipeline.KindTimeout:
		status = http.StatusGatewayTimeout
	}
	jsonError(w, err.Error(), status)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	// Remove any path separators that might have survived.
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
