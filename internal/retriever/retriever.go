// Package retriever implements the semantic side of the pipeline: a
// pgvector document index queried by embedding similarity.
package retriever

import (
	"context"
	"fmt"

	"github.com/piarosebelledelapaz/pro-botno/internal/embedding"
	"github.com/piarosebelledelapaz/pro-botno/internal/models"
)

// Semantic retrieves the top-k passages most similar to a question. It
// embeds the question with Ollama and searches the pgvector store.
type Semantic struct {
	store    *Store
	embedder *embedding.OllamaEmbedder
}

// NewSemantic creates a semantic retriever over the given store and embedder.
func NewSemantic(store *Store, embedder *embedding.OllamaEmbedder) *Semantic {
	return &Semantic{store: store, embedder: embedder}
}

// Retrieve returns the top-k passages for the question.
func (s *Semantic) Retrieve(ctx context.Context, question string, k int) ([]models.RetrievedPassage, error) {
	queryEmbedding, err := s.embedder.EmbedText(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("failed to embed question: %w", err)
	}

	chunks, err := s.store.QuerySimilar(ctx, queryEmbedding, k)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve passages: %w", err)
	}

	passages := make([]models.RetrievedPassage, 0, len(chunks))
	for _, chunk := range chunks {
		source := chunk.Metadata.Source
		if chunk.Metadata.Section != "" {
			source = fmt.Sprintf("%s (%s, p. %d)", source, chunk.Metadata.Section, chunk.Metadata.Page)
		}
		passages = append(passages, models.RetrievedPassage{
			Source: source,
			Text:   chunk.Content,
		})
	}

	return passages, nil
}
