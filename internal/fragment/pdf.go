package fragment

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
)

// PDFSource extracts fragments from PDF files via ledongthuc/pdf, which
// exposes per-run font name, font size and position.
type PDFSource struct{}

func (s *PDFSource) Extract(r io.Reader, filename string) (*Document, error) {
	// ledongthuc/pdf requires a ReadSeeker+size, so we write to a temp file.
	tmp, err := os.CreateTemp("", "docsight-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	f, reader, err := pdflib.Open(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	doc := &Document{
		Name:  filename,
		Pages: reader.NumPage(),
	}

	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		texts := page.Content().Text
		if len(texts) == 0 {
			continue
		}
		doc.Fragments = append(doc.Fragments, pageFragments(texts, i)...)
	}

	return doc, nil
}

// pageFragments coalesces the raw character runs of one page into styled
// fragments and converts PDF bottom-up y coordinates into top-down ones.
func pageFragments(texts []pdflib.Text, pageNum int) []TextFragment {
	// PDF y grows upward; the pipeline wants smaller y = top of page.
	maxY := texts[0].Y
	for _, t := range texts {
		if t.Y > maxY {
			maxY = t.Y
		}
	}

	var frags []TextFragment
	var buf strings.Builder
	var cur pdflib.Text
	started := false

	flush := func() {
		text := strings.TrimSpace(buf.String())
		if text != "" {
			frags = append(frags, TextFragment{
				Text:     text,
				Page:     pageNum,
				FontSize: cur.FontSize,
				Bold:     isBoldFont(cur.Font),
				FontName: cur.Font,
				X:        cur.X,
				Y:        maxY - cur.Y,
			})
		}
		buf.Reset()
	}

	for _, t := range texts {
		if t.S == "" {
			continue
		}
		if started && sameRun(cur, t) {
			buf.WriteString(t.S)
			continue
		}
		if started {
			flush()
		}
		cur = t
		started = true
		buf.WriteString(t.S)
	}
	if started {
		flush()
	}

	return frags
}

// sameRun reports whether two character runs belong to the same styled run:
// same font, same size, and the same baseline.
func sameRun(a, b pdflib.Text) bool {
	return a.Font == b.Font &&
		a.FontSize == b.FontSize &&
		math.Abs(a.Y-b.Y) <= LineTolerance
}

func isBoldFont(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "bold") ||
		strings.Contains(lower, "black") ||
		strings.Contains(lower, "heavy")
}
