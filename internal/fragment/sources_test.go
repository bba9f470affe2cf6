package fragment

import (
	"strings"
	"testing"
)

func TestMarkdownSource_HeadingsGetSyntheticSizes(t *testing.T) {
	input := "# Top Heading\n\nSome body text here.\n\n## Nested Heading\n\nMore body text.\n"
	s := &MarkdownSource{}
	doc, err := s.Extract(strings.NewReader(input), "notes.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(doc.Fragments) != 4 {
		t.Fatalf("expected 4 fragments, got %d", len(doc.Fragments))
	}

	h1 := doc.Fragments[0]
	if h1.Text != "Top Heading" || h1.FontSize != synthH1Size || !h1.Bold {
		t.Errorf("h1 fragment wrong: %+v", h1)
	}
	body := doc.Fragments[1]
	if body.FontSize != synthBodySize || body.Bold {
		t.Errorf("body fragment wrong: %+v", body)
	}
	h2 := doc.Fragments[2]
	if h2.Text != "Nested Heading" || h2.FontSize != synthH2Size {
		t.Errorf("h2 fragment wrong: %+v", h2)
	}
}

func TestMarkdownSource_OrderIsDocumentOrder(t *testing.T) {
	input := "para one\n\n# Heading\n\npara two\n"
	s := &MarkdownSource{}
	doc, err := s.Extract(strings.NewReader(input), "doc.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := Normalize(doc.Fragments)
	want := []string{"para one", "Heading", "para two"}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(lines))
	}
	for i, w := range want {
		if lines[i].Text != w {
			t.Errorf("line %d: expected %q, got %q", i, w, lines[i].Text)
		}
	}
}

func TestHTMLSource_TitleAndHeadings(t *testing.T) {
	input := `<html><head><title>Annual Report</title></head><body>
<h1>Revenue</h1><p>Revenue grew.</p>
<h2>Regional Breakdown</h2><p>Per region numbers.</p>
<script>ignore_me()</script>
</body></html>`
	s := &HTMLSource{}
	doc, err := s.Extract(strings.NewReader(input), "report.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(doc.Fragments) != 5 {
		t.Fatalf("expected 5 fragments, got %d: %+v", len(doc.Fragments), doc.Fragments)
	}
	if doc.Fragments[0].Text != "Annual Report" || doc.Fragments[0].FontSize != synthTitleSize {
		t.Errorf("title fragment wrong: %+v", doc.Fragments[0])
	}
	if doc.Fragments[1].Text != "Revenue" || doc.Fragments[1].FontSize != synthH1Size {
		t.Errorf("h1 fragment wrong: %+v", doc.Fragments[1])
	}
	for _, f := range doc.Fragments {
		if strings.Contains(f.Text, "ignore_me") {
			t.Errorf("script content leaked into fragments: %q", f.Text)
		}
	}
}

func TestTextSource_LinesBecomeBodyFragments(t *testing.T) {
	input := "line one\n\nline two\n"
	s := &TextSource{}
	doc, err := s.Extract(strings.NewReader(input), "plain.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Fragments) != 2 {
		t.Fatalf("expected 2 fragments, got %d", len(doc.Fragments))
	}
	for _, f := range doc.Fragments {
		if f.FontSize != synthBodySize || f.Bold {
			t.Errorf("plain text fragment should be body-sized and not bold: %+v", f)
		}
	}
	if doc.Fragments[0].Y >= doc.Fragments[1].Y {
		t.Error("fragments should advance in y")
	}
}

func TestTextSource_EmptyInput(t *testing.T) {
	s := &TextSource{}
	doc, err := s.Extract(strings.NewReader(""), "empty.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Fragments) != 0 {
		t.Errorf("expected no fragments for empty input, got %d", len(doc.Fragments))
	}
}
