package fragment

import (
	"bufio"
	"io"
	"strings"
)

// TextSource handles plain text files. Every non-blank line becomes a
// body-sized fragment; plain text carries no typographic signal, so such
// documents classify as heading-free downstream.
type TextSource struct{}

func (s *TextSource) Extract(r io.Reader, filename string) (*Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	out := &Document{Name: filename, Pages: 1}
	y := 0.0

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		y += synthBodySize
		if line == "" {
			continue
		}
		out.Fragments = append(out.Fragments, TextFragment{
			Text:     line,
			Page:     1,
			FontSize: synthBodySize,
			FontName: "text",
			Y:        y,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return out, nil
}
