package outline

import (
	"math"
	"sort"

	"github.com/dgallion1/docsight/internal/fragment"
)

// pageBand records the observed vertical extent of one page's lines.
type pageBand struct {
	top    float64
	bottom float64
}

// DocStats holds per-document typography statistics computed in a single
// pass over the line fragments. It is the baseline the classifier measures
// every line against.
type DocStats struct {
	BodyFontSize float64
	LineCount    int
	pages        map[int]pageBand
}

// ComputeStats derives the body font size and per-page vertical extents.
// The body size is the mode of line font sizes rounded to 0.1pt; when the top
// frequency is shared by more than one size, the median of all sizes is used
// instead.
func ComputeStats(lines []fragment.TextFragment) DocStats {
	stats := DocStats{
		LineCount: len(lines),
		pages:     make(map[int]pageBand),
	}
	if len(lines) == 0 {
		return stats
	}

	counts := make(map[float64]int)
	sizes := make([]float64, 0, len(lines))

	for _, ln := range lines {
		size := math.Round(ln.FontSize*10) / 10
		counts[size]++
		sizes = append(sizes, size)

		band, ok := stats.pages[ln.Page]
		if !ok {
			band = pageBand{top: ln.Y, bottom: ln.Y}
		}
		if ln.Y < band.top {
			band.top = ln.Y
		}
		if ln.Y > band.bottom {
			band.bottom = ln.Y
		}
		stats.pages[ln.Page] = band
	}

	best := 0.0
	bestCount := 0
	tied := false
	for size, n := range counts {
		switch {
		case n > bestCount:
			best, bestCount, tied = size, n, false
		case n == bestCount:
			tied = true
		}
	}

	if tied {
		sort.Float64s(sizes)
		best = sizes[len(sizes)/2]
	}
	stats.BodyFontSize = best

	return stats
}

// InTopBand reports whether y sits within the top fraction of the observed
// extent of the given page.
func (s DocStats) InTopBand(page int, y, topFraction float64) bool {
	band, ok := s.pages[page]
	if !ok {
		return false
	}
	height := band.bottom - band.top
	if height <= 0 {
		return true // single-line page
	}
	return y <= band.top+topFraction*height
}
