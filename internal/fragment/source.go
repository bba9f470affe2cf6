package fragment

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Source extracts positioned text fragments from raw document bytes.
type Source interface {
	Extract(r io.Reader, filename string) (*Document, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".pdf":      true,
	".docx":     true,
	".html":     true,
	".htm":      true,
	".md":       true,
	".markdown": true,
	".txt":      true,
}

// ForFile returns the appropriate fragment source for a filename.
func ForFile(filename string) (Source, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return &PDFSource{}, nil
	case ".docx":
		return &DOCXSource{}, nil
	case ".html", ".htm":
		return &HTMLSource{}, nil
	case ".md", ".markdown":
		return &MarkdownSource{}, nil
	case ".txt":
		return &TextSource{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// Synthetic font sizes for structured formats that carry no typography.
// Chosen so the classifier's ratio bands land each markup level where the
// markup says it belongs: h1 -> H1, h2 -> H2, h3+ -> H3.
const (
	synthBodySize  = 10.0
	synthTitleSize = 20.0
	synthH1Size    = 16.0
	synthH2Size    = 13.0
	synthH3Size    = 11.5
)

func synthHeadingSize(level int) float64 {
	switch level {
	case 1:
		return synthH1Size
	case 2:
		return synthH2Size
	default:
		return synthH3Size
	}
}
