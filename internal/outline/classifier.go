package outline

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/docsight/internal/fragment"
)

// Level is a structural heading level. Order is TITLE < H1 < H2 < H3:
// a larger value is a deeper level.
type Level int

const (
	LevelTitle Level = iota
	LevelH1
	LevelH2
	LevelH3
)

func (l Level) String() string {
	switch l {
	case LevelTitle:
		return "TITLE"
	case LevelH1:
		return "H1"
	case LevelH2:
		return "H2"
	case LevelH3:
		return "H3"
	}
	return "?"
}

// HeadingCandidate is a line fragment the classifier accepted as a heading.
// SourceIndex is the line's index in the normalized fragment sequence, so a
// candidate list is always monotonically non-decreasing in SourceIndex.
type HeadingCandidate struct {
	Text        string
	Page        int
	Level       Level
	SourceIndex int
}

// Config holds the classifier's threshold bands. Ratios are line font size
// over body font size.
type Config struct {
	TitleRatio float64
	H1Ratio    float64
	H2Ratio    float64
	H3Ratio    float64

	// TopBand is the fraction of a page's height counted as the top zone
	// for the position signal.
	TopBand float64
	// MaxPositionWords caps the word count for the position signal.
	MaxPositionWords int

	// Heading text length bounds in characters.
	MinChars int
	MaxChars int
}

// DefaultConfig returns the stock threshold bands.
func DefaultConfig() Config {
	return Config{
		TitleRatio:       1.8,
		H1Ratio:          1.5,
		H2Ratio:          1.25,
		H3Ratio:          1.1,
		TopBand:          0.15,
		MaxPositionWords: 12,
		MinChars:         3,
		MaxChars:         200,
	}
}

// numberedPrefix matches section numbering like "1. ", "2.3 " or "1.2.3. ".
var numberedPrefix = regexp.MustCompile(`^\d+(\.\d+)*\.?\s+`)

// Classify scores a single line fragment against the document statistics and
// returns its heading level, or ok=false for body text. It is a pure
// function: same inputs, same answer.
//
// Three signals, in decreasing priority:
//  1. font-size ratio bands determine the base eligibility;
//  2. bold weight or a numbered prefix promotes one level (body -> H3,
//     H3 -> H2, H2 -> H1) but never creates TITLE eligibility;
//  3. a short line in the top band of its page promotes an already-eligible
//     candidate one level, capped at H1. It never promotes body text.
func Classify(line fragment.TextFragment, stats DocStats, cfg Config) (Level, bool) {
	text := strings.TrimSpace(line.Text)
	n := utf8.RuneCountInString(text)
	if n < cfg.MinChars || n > cfg.MaxChars {
		return 0, false
	}
	if stats.BodyFontSize <= 0 {
		return 0, false
	}

	ratio := line.FontSize / stats.BodyFontSize

	level := Level(-1)
	eligible := true
	switch {
	case ratio >= cfg.TitleRatio:
		level = LevelTitle
	case ratio >= cfg.H1Ratio:
		level = LevelH1
	case ratio >= cfg.H2Ratio:
		level = LevelH2
	case ratio >= cfg.H3Ratio:
		level = LevelH3
	default:
		eligible = false
	}

	if line.Bold || numberedPrefix.MatchString(text) {
		switch {
		case !eligible:
			level = LevelH3
			eligible = true
		case level > LevelH1:
			level--
		}
	}

	if !eligible {
		return 0, false
	}

	if level > LevelH1 &&
		len(strings.Fields(text)) < cfg.MaxPositionWords &&
		stats.InTopBand(line.Page, line.Y, cfg.TopBand) {
		level--
	}

	return level, true
}

// ExtractCandidates runs the classifier over a normalized line sequence:
// one pass for statistics, one pass for classification. It returns the
// document title (empty if none was found) and the heading candidates in
// document order, with the title line excluded.
//
// The title is the single largest page-1 TITLE-eligible line by font size,
// first occurrence winning ties. TITLE-eligible lines that are not chosen as
// the title join the outline as H1.
func ExtractCandidates(lines []fragment.TextFragment, cfg Config) (string, []HeadingCandidate) {
	stats := ComputeStats(lines)

	type hit struct {
		level Level
		index int
	}
	var hits []hit

	titleIdx := -1
	titleSize := 0.0
	for i, ln := range lines {
		level, ok := Classify(ln, stats, cfg)
		if !ok {
			continue
		}
		hits = append(hits, hit{level: level, index: i})
		if level == LevelTitle && ln.Page == 1 && ln.FontSize > titleSize {
			titleSize = ln.FontSize
			titleIdx = i
		}
	}

	title := ""
	if titleIdx >= 0 {
		title = strings.TrimSpace(lines[titleIdx].Text)
	}

	var cands []HeadingCandidate
	for _, h := range hits {
		if h.index == titleIdx {
			continue
		}
		level := h.level
		if level == LevelTitle {
			level = LevelH1
		}
		cands = append(cands, HeadingCandidate{
			Text:        strings.TrimSpace(lines[h.index].Text),
			Page:        lines[h.index].Page,
			Level:       level,
			SourceIndex: h.index,
		})
	}

	return title, cands
}
