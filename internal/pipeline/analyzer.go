package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/dgallion1/docsight/internal/config"
	"github.com/dgallion1/docsight/internal/embed"
	"github.com/dgallion1/docsight/internal/fragment"
	"github.com/dgallion1/docsight/internal/outline"
	"github.com/dgallion1/docsight/internal/rank"
)

// Analyzer runs the two pipeline modes: single-document outline extraction
// and pooled persona-driven section ranking. It holds the process-wide
// embedder by reference; nothing here mutates it.
type Analyzer struct {
	embedder embed.Embedder
	stats    *EncodeStats
	log      *slog.Logger
	cfg      config.Config
}

func NewAnalyzer(cfg config.Config, embedder embed.Embedder, log *slog.Logger) *Analyzer {
	return &Analyzer{
		embedder: embedder,
		stats:    NewEncodeStats(time.Hour),
		log:      log,
		cfg:      cfg,
	}
}

// Stats exposes rolling encode latency numbers for the stats endpoint.
func (a *Analyzer) Stats() StatsSnapshot {
	return a.stats.Snapshot()
}

// DocumentInput is one uploaded document, held in memory for the request.
type DocumentInput struct {
	Name string
	Data []byte
}

func (a *Analyzer) classifierConfig() outline.Config {
	cfg := outline.DefaultConfig()
	cfg.TitleRatio = a.cfg.TitleRatio
	cfg.H1Ratio = a.cfg.H1Ratio
	cfg.H2Ratio = a.cfg.H2Ratio
	cfg.H3Ratio = a.cfg.H3Ratio
	return cfg
}

// Outline extracts the outline artifact for a single document. A document
// with no extractable text yields a valid empty outline, not an error.
func (a *Analyzer) Outline(ctx context.Context, doc DocumentInput) (*outline.Artifact, error) {
	start := time.Now()

	lines, pages, err := a.extractLines(doc)
	if err != nil {
		return nil, err
	}

	title, cands := outline.ExtractCandidates(lines, a.classifierConfig())
	entries := outline.Flatten(outline.BuildTree(cands))

	return &outline.Artifact{
		Title:   title,
		Outline: entries,
		Metadata: outline.Metadata{
			ProcessingTimeMs: time.Since(start).Milliseconds(),
			TotalPages:       pages,
			HeadingsFound:    len(entries),
		},
	}, nil
}

// DocumentError reports a per-document extraction failure that did not
// abort the request.
type DocumentError struct {
	Document string `json:"document"`
	Error    string `json:"error"`
}

// RankedSection is one row of the ranking artifact.
type RankedSection struct {
	Document      string  `json:"document"`
	Page          int     `json:"page"`
	HeadingText   *string `json:"heading_text"`
	LexicalScore  float64 `json:"lexical_score"`
	SemanticScore float64 `json:"semantic_score"`
	FusedScore    float64 `json:"fused_score"`
	Rank          int     `json:"rank"`
}

// RankMetadata carries request bookkeeping; TotalSections always equals the
// length of RankedSections, nothing is silently dropped.
type RankMetadata struct {
	InputDocuments   []string        `json:"input_documents"`
	DocumentErrors   []DocumentError `json:"document_errors"`
	TotalSections    int             `json:"total_sections"`
	ProcessingTimeMs int64           `json:"processing_time_ms"`
}

// RankResult is the ranking artifact for one request.
type RankResult struct {
	Persona            string          `json:"persona"`
	JobToBeDone        string          `json:"job_to_be_done"`
	RankedSections     []RankedSection `json:"ranked_sections"`
	SubSectionAnalysis []rank.Refined  `json:"sub_section_analysis"`
	Metadata           RankMetadata    `json:"metadata"`
}

// Rank runs the pooled ranking pipeline over 3-10 documents. Per-document
// extraction fans out concurrently and failures there are isolated; the
// pooled scoring stages run only after every document has reported in, since
// IDF statistics and min-max normalization are pool-wide.
func (a *Analyzer) Rank(ctx context.Context, docs []DocumentInput, persona, job string) (*RankResult, error) {
	start := time.Now()

	if len(docs) < a.cfg.MinRankDocuments || len(docs) > a.cfg.MaxRankDocuments {
		return nil, Errorf(KindInvalidInput, "ranking requires %d-%d documents, got %d",
			a.cfg.MinRankDocuments, a.cfg.MaxRankDocuments, len(docs))
	}
	if strings.TrimSpace(persona) == "" || strings.TrimSpace(job) == "" {
		return nil, Errorf(KindInvalidQuery, "persona and job_to_be_done must be non-empty")
	}

	ctx, cancel := context.WithTimeout(ctx, a.cfg.RankTimeout)
	defer cancel()

	secsByDoc, docErrs := a.extractAll(ctx, docs)
	if err := a.timeoutErr(ctx); err != nil {
		return nil, err
	}

	// Pool sections across documents, preserving input order.
	var pool []rank.ScoredSection
	for i := range docs {
		for _, s := range secsByDoc[i] {
			pool = append(pool, rank.ScoredSection{Section: s, DocOrder: i})
		}
	}

	result := &RankResult{
		Persona:            persona,
		JobToBeDone:        job,
		RankedSections:     []RankedSection{},
		SubSectionAnalysis: []rank.Refined{},
		Metadata: RankMetadata{
			InputDocuments:   docNames(docs),
			DocumentErrors:   docErrs,
			ProcessingTimeMs: time.Since(start).Milliseconds(),
		},
	}
	if len(pool) == 0 {
		return result, nil
	}

	query := persona + " " + job
	queryVec, err := a.embedQuery(ctx, query)
	if err != nil {
		return nil, err
	}

	texts := make([]string, len(pool))
	for i, s := range pool {
		texts[i] = s.Section.Text
	}

	// Lexical and semantic scoring are independent; run them in parallel.
	queryTokens := rank.Tokenize(query)
	var (
		wg        sync.WaitGroup
		lexScores []float64
		semScores []float64
		semErr    error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		lexScores = rank.ScoreLexical(queryTokens, texts, rank.LexicalConfig{K1: a.cfg.BM25K1, B: a.cfg.BM25B})
	}()
	go func() {
		defer wg.Done()
		encodeStart := time.Now()
		semErr = withRetry(ctx, MaxEncodeRetries, func() error {
			var err error
			semScores, err = rank.ScoreSemantic(ctx, a.embedder, queryVec, texts, a.cfg.MaxSectionChars)
			return err
		})
		a.stats.Record(time.Since(encodeStart).Milliseconds())
	}()
	wg.Wait()

	if semErr != nil {
		return nil, a.encoderErr(ctx, semErr)
	}
	if err := a.timeoutErr(ctx); err != nil {
		return nil, err
	}

	for i := range pool {
		pool[i].LexicalScore = lexScores[i]
		pool[i].SemanticScore = semScores[i]
	}
	rank.Fuse(pool, a.cfg.FusionAlpha)

	refineCfg := rank.DefaultRefineConfig()
	refineCfg.TopK = a.cfg.RefineTopK
	refineCfg.MaxResults = a.cfg.RefineMaxResults
	refineCfg.MinScore = a.cfg.RefineMinScore
	refined, err := rank.Refine(ctx, a.embedder, queryVec, pool, refineCfg)
	if err != nil {
		return nil, a.encoderErr(ctx, err)
	}
	if err := a.timeoutErr(ctx); err != nil {
		return nil, err
	}

	for _, s := range pool {
		row := RankedSection{
			Document:      s.Section.DocumentID,
			Page:          s.Section.Page,
			LexicalScore:  s.LexicalScore,
			SemanticScore: s.SemanticScore,
			FusedScore:    s.FusedScore,
			Rank:          s.Rank,
		}
		if s.Section.Heading != nil {
			text := s.Section.Heading.Text
			row.HeadingText = &text
		}
		result.RankedSections = append(result.RankedSections, row)
	}
	result.SubSectionAnalysis = refined
	result.Metadata.TotalSections = len(result.RankedSections)
	result.Metadata.ProcessingTimeMs = time.Since(start).Milliseconds()

	a.log.Info("ranking complete",
		"documents", len(docs),
		"failed_documents", len(docErrs),
		"sections", len(pool),
		"duration_ms", result.Metadata.ProcessingTimeMs,
	)
	return result, nil
}

// extractAll fans out per-document extraction behind a bounded semaphore and
// joins at a barrier. Failures are isolated per document.
func (a *Analyzer) extractAll(ctx context.Context, docs []DocumentInput) ([][]outline.Section, []DocumentError) {
	type docResult struct {
		idx      int
		sections []outline.Section
		err      error
	}

	results := make(chan docResult, len(docs))
	sem := make(chan struct{}, a.cfg.MaxConcurrentExtract)

	for i, doc := range docs {
		sem <- struct{}{}
		go func(i int, doc DocumentInput) {
			defer func() { <-sem }()
			sections, err := a.extractSections(doc)
			results <- docResult{idx: i, sections: sections, err: err}
		}(i, doc)
	}

	secsByDoc := make([][]outline.Section, len(docs))
	errsByDoc := make([]error, len(docs))
	for range docs {
		r := <-results
		secsByDoc[r.idx] = r.sections
		errsByDoc[r.idx] = r.err
	}

	docErrs := []DocumentError{}
	for i, err := range errsByDoc {
		if err != nil {
			a.log.Warn("document excluded from ranking", "document", docs[i].Name, "error", err)
			docErrs = append(docErrs, DocumentError{Document: docs[i].Name, Error: err.Error()})
		}
	}
	return secsByDoc, docErrs
}

// extractSections runs the per-document stages: fragment extraction,
// normalization, classification, segmentation.
func (a *Analyzer) extractSections(doc DocumentInput) ([]outline.Section, error) {
	lines, _, err := a.extractLines(doc)
	if err != nil {
		return nil, err
	}
	_, cands := outline.ExtractCandidates(lines, a.classifierConfig())
	return outline.Segment(doc.Name, lines, cands), nil
}

func (a *Analyzer) extractLines(doc DocumentInput) ([]fragment.TextFragment, int, error) {
	src, err := fragment.ForFile(doc.Name)
	if err != nil {
		return nil, 0, Errorf(KindExtractionFailed, "%s: %s", doc.Name, err)
	}
	extracted, err := src.Extract(bytes.NewReader(doc.Data), doc.Name)
	if err != nil {
		return nil, 0, Errorf(KindExtractionFailed, "%s: %s", doc.Name, err)
	}
	return fragment.Normalize(extracted.Fragments), extracted.Pages, nil
}

func (a *Analyzer) embedQuery(ctx context.Context, query string) ([]float32, error) {
	var vec []float32
	start := time.Now()
	err := withRetry(ctx, MaxEncodeRetries, func() error {
		var err error
		vec, err = a.embedder.EmbedQuery(ctx, query)
		return err
	})
	a.stats.Record(time.Since(start).Milliseconds())
	if err != nil {
		return nil, a.encoderErr(ctx, err)
	}
	return vec, nil
}

// encoderErr classifies an encoder failure: a blown deadline is a Timeout,
// anything else means the model is unavailable.
func (a *Analyzer) encoderErr(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
		return Errorf(KindTimeout, "request deadline exceeded: %s", err)
	}
	return &Error{Kind: KindModelUnavailable, Err: fmt.Errorf("embedding encoder: %w", err)}
}

func (a *Analyzer) timeoutErr(ctx context.Context) error {
	if ctx.Err() != nil {
		return Errorf(KindTimeout, "request deadline exceeded")
	}
	return nil
}

func docNames(docs []DocumentInput) []string {
	names := make([]string, len(docs))
	for i, d := range docs {
		names[i] = d.Name
	}
	return names
}
