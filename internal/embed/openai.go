package embed

import (
	"context"
	"log/slog"

	"github.com/tmc/langchaingo/embeddings"
	lcopenai "github.com/tmc/langchaingo/llms/openai"
)

// OpenAIEmbedder implements Embedder against an OpenAI-compatible embeddings
// endpoint (Ollama, llama.cpp server, or the hosted API).
type OpenAIEmbedder struct {
	embedder embeddings.Embedder
	log      *slog.Logger
}

// NewOpenAIEmbedder constructs the embedder once at process start; the
// returned value is read-only and shared across all requests.
func NewOpenAIEmbedder(host, model string, log *slog.Logger) (*OpenAIEmbedder, error) {
	// "none" keeps local OpenAI-compatible servers that skip auth happy.
	client, err := lcopenai.New(
		lcopenai.WithBaseURL(host),
		lcopenai.WithToken("none"),
		lcopenai.WithEmbeddingModel(model),
	)
	if err != nil {
		return nil, err
	}

	emb, err := embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, err
	}

	if log == nil {
		log = slog.Default()
	}
	return &OpenAIEmbedder{
		embedder: emb,
		log:      log.With("component", "openai-embedder"),
	}, nil
}

func (e *OpenAIEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vecs, err := e.embedder.EmbedDocuments(ctx, []string{text})
	if err != nil {
		e.log.Error("query embedding failed", "error", err)
		return nil, err
	}
	if len(vecs) == 0 {
		return []float32{}, nil
	}
	return vecs[0], nil
}

func (e *OpenAIEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	vecs, err := e.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		e.log.Error("batch embedding failed", "count", len(texts), "error", err)
		return nil, err
	}
	return vecs, nil
}
