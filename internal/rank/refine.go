package rank

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/dgallion1/docsight/internal/embed"
)

// RefineConfig controls sub-section refinement of the top-ranked sections.
type RefineConfig struct {
	TopK              int     // how many ranked sections to refine
	SentencesPerGroup int     // sentences per refined snippet
	MinGroupChars     int     // skip groups shorter than this
	MinScore          float64 // cosine threshold for keeping a group
	MaxResults        int     // cap on emitted snippets
}

// DefaultRefineConfig returns the stock refinement parameters.
func DefaultRefineConfig() RefineConfig {
	return RefineConfig{
		TopK:              10,
		SentencesPerGroup: 3,
		MinGroupChars:     100,
		MinScore:          0.3,
		MaxResults:        20,
	}
}

// Refined is one refined snippet extracted from a ranked section.
type Refined struct {
	Document      string  `json:"document"`
	Page          int     `json:"page"`
	ParentHeading string  `json:"parent_heading"`
	SubsectionID  string  `json:"subsection_id"`
	RefinedText   string  `json:"refined_text"`
	Score         float64 `json:"score"`
}

// Refine splits the top-ranked sections into sentence groups, scores each
// group against the query vector, and returns groups above the threshold,
// best first. Groups within one section are encoded as a single batch.
func Refine(ctx context.Context, embedder embed.Embedder, queryVec []float32, ranked []ScoredSection, cfg RefineConfig) ([]Refined, error) {
	var out []Refined

	top := ranked
	if cfg.TopK > 0 && len(top) > cfg.TopK {
		top = top[:cfg.TopK]
	}

	for _, s := range top {
		groups := sentenceGroups(s.Section.Text, cfg.SentencesPerGroup, cfg.MinGroupChars)
		if len(groups) == 0 {
			continue
		}

		vecs, err := embedder.EmbedTexts(ctx, groups)
		if err != nil {
			return nil, fmt.Errorf("encode refined groups: %w", err)
		}
		if len(vecs) != len(groups) {
			return nil, fmt.Errorf("encoder returned %d vectors for %d groups", len(vecs), len(groups))
		}

		for i, g := range groups {
			score := Cosine(queryVec, vecs[i])
			if score < cfg.MinScore {
				continue
			}
			out = append(out, Refined{
				Document:      s.Section.DocumentID,
				Page:          s.Section.Page,
				ParentHeading: s.Section.HeadingText(),
				SubsectionID:  fmt.Sprintf("%s_p%d_s%d", s.Section.DocumentID, s.Section.Page, i+1),
				RefinedText:   g,
				Score:         score,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].SubsectionID < out[j].SubsectionID
	})
	if cfg.MaxResults > 0 && len(out) > cfg.MaxResults {
		out = out[:cfg.MaxResults]
	}
	return out, nil
}

// sentenceGroups splits text into sentences and joins them into groups of n,
// dropping groups shorter than minChars.
func sentenceGroups(text string, n, minChars int) []string {
	if n <= 0 {
		n = 3
	}
	sentences := splitSentences(text)

	var groups []string
	for i := 0; i < len(sentences); i += n {
		end := i + n
		if end > len(sentences) {
			end = len(sentences)
		}
		g := strings.TrimSpace(strings.Join(sentences[i:end], " "))
		if len(g) >= minChars {
			groups = append(groups, g)
		}
	}
	return groups
}

// splitSentences does basic sentence splitting.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	for i, r := range text {
		current.WriteRune(r)
		if (r == '.' || r == '!' || r == '?') && i+1 < len(text) && text[i+1] == ' ' {
			sentences = append(sentences, strings.TrimSpace(current.String()))
			current.Reset()
		}
	}
	if current.Len() > 0 {
		s := strings.TrimSpace(current.String())
		if s != "" {
			sentences = append(sentences, s)
		}
	}

	return sentences
}
