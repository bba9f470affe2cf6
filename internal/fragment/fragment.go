package fragment

import (
	"math"
	"sort"
	"strings"
)

// TextFragment is one positioned, styled run of text from a document.
// Fragments are immutable once produced by a Source.
type TextFragment struct {
	Text     string
	Page     int // 1-indexed
	FontSize float64
	Bold     bool
	FontName string
	X        float64
	Y        float64 // top-down: smaller Y is closer to the top of the page
}

// Document is the extracted fragment stream for one input file.
type Document struct {
	Name      string
	Fragments []TextFragment
	Pages     int
}

// LineTolerance is the maximum vertical distance, in points, between two
// fragments considered to sit on the same visual line.
const LineTolerance = 2.0

// SortReadingOrder orders fragments by (page, y, x), the visual reading order
// the rest of the pipeline assumes.
func SortReadingOrder(frags []TextFragment) {
	sort.SliceStable(frags, func(i, j int) bool {
		a, b := frags[i], frags[j]
		if a.Page != b.Page {
			return a.Page < b.Page
		}
		if math.Abs(a.Y-b.Y) > LineTolerance {
			return a.Y < b.Y
		}
		return a.X < b.X
	})
}

// MergeLines collapses fragments sharing a page and a y-coordinate within
// LineTolerance into one line-level fragment. Text is space-joined, the font
// size is the maximum across the merged pieces, and the bold flag is the OR.
// Input must already be in reading order; output is one fragment per visual
// line, still in reading order. An empty input yields an empty output.
func MergeLines(frags []TextFragment) []TextFragment {
	if len(frags) == 0 {
		return nil
	}

	var lines []TextFragment
	cur := frags[0]
	var parts []string
	if cur.Text != "" {
		parts = append(parts, cur.Text)
	}

	flush := func() {
		cur.Text = strings.TrimSpace(strings.Join(parts, " "))
		if cur.Text != "" {
			lines = append(lines, cur)
		}
		parts = parts[:0]
	}

	for _, f := range frags[1:] {
		sameLine := f.Page == cur.Page && math.Abs(f.Y-cur.Y) <= LineTolerance
		if sameLine {
			if f.Text != "" {
				parts = append(parts, f.Text)
			}
			if f.FontSize > cur.FontSize {
				cur.FontSize = f.FontSize
				cur.FontName = f.FontName
			}
			cur.Bold = cur.Bold || f.Bold
			continue
		}
		flush()
		cur = f
		if f.Text != "" {
			parts = append(parts, f.Text)
		}
	}
	flush()

	return lines
}

// Normalize sorts raw fragments into reading order and merges them into
// line-level fragments.
func Normalize(frags []TextFragment) []TextFragment {
	SortReadingOrder(frags)
	return MergeLines(frags)
}
