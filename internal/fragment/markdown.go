package fragment

import (
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownSource extracts fragments from Markdown files using goldmark.
// Heading nodes carry their markup level as a synthetic font size; all other
// block content becomes body-sized fragments.
type MarkdownSource struct{}

func (s *MarkdownSource) Extract(r io.Reader, filename string) (*Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	reader := text.NewReader(src)
	root := md.Parser().Parse(reader)

	out := &Document{Name: filename, Pages: 1}
	y := 0.0

	emit := func(t string, size float64, bold bool) {
		t = collapseSpace(t)
		if t == "" {
			return
		}
		y += synthBodySize
		out.Fragments = append(out.Fragments, TextFragment{
			Text:     t,
			Page:     1,
			FontSize: size,
			Bold:     bold,
			FontName: "markdown",
			Y:        y,
		})
	}

	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			emit(string(node.Text(src)), synthHeadingSize(node.Level), true)
		default:
			emit(blockText(n, src), synthBodySize, false)
		}
	}

	return out, nil
}

// blockText collects the raw text of a non-heading block node.
func blockText(n ast.Node, src []byte) string {
	if n.Type() == ast.TypeBlock {
		var buf []byte
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf = append(buf, seg.Value(src)...)
			buf = append(buf, ' ')
		}
		if len(buf) > 0 {
			return string(buf)
		}
	}

	// Container blocks (lists, quotes) have no own lines; recurse.
	var buf []byte
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		t := blockText(c, src)
		if t != "" {
			buf = append(buf, t...)
			buf = append(buf, ' ')
		}
	}
	return string(buf)
}
