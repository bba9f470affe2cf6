package outline

import (
	"strings"

	"github.com/dgallion1/docsight/internal/fragment"
)

// Section is a contiguous span of a document's lines bounded by consecutive
// heading candidates. Heading is nil for body text preceding the first
// heading. Within one document sections are non-overlapping and together
// cover every line: [StartIndex, EndIndex) half-open ranges.
type Section struct {
	DocumentID string
	Heading    *HeadingCandidate
	Page       int
	Text       string
	StartIndex int
	EndIndex   int
}

// Segment partitions the line sequence into sections at heading candidate
// positions. A document with zero candidates yields exactly one section
// spanning the whole document; a document with zero lines yields none.
func Segment(docID string, lines []fragment.TextFragment, cands []HeadingCandidate) []Section {
	if len(lines) == 0 {
		return nil
	}

	var sections []Section

	emit := func(heading *HeadingCandidate, start, end int) {
		if start >= end {
			return
		}
		parts := make([]string, 0, end-start)
		for _, ln := range lines[start:end] {
			parts = append(parts, ln.Text)
		}
		page := lines[start].Page
		if heading != nil {
			page = heading.Page
		}
		sections = append(sections, Section{
			DocumentID: docID,
			Heading:    heading,
			Page:       page,
			Text:       strings.Join(parts, " "),
			StartIndex: start,
			EndIndex:   end,
		})
	}

	if len(cands) == 0 {
		emit(nil, 0, len(lines))
		return sections
	}

	// Preamble before the first heading.
	emit(nil, 0, cands[0].SourceIndex)

	for i := range cands {
		start := cands[i].SourceIndex
		end := len(lines)
		if i+1 < len(cands) {
			end = cands[i+1].SourceIndex
		}
		h := cands[i]
		emit(&h, start, end)
	}

	return sections
}

// HeadingText returns the section's heading text, or "" for a preamble.
func (s Section) HeadingText() string {
	if s.Heading == nil {
		return ""
	}
	return s.Heading.Text
}
