package retriever

import (
	"context"
	"fmt"

	"github.com/piarosebelledelapaz/pro-botno/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the pgvector-backed document index for the general legal corpus.
type Store struct {
	Pool *pgxpool.Pool
}

// NewStore connects to the database and verifies the connection.
func NewStore(ctx context.Context, connStr string) (*Store, error) {
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{Pool: pool}, nil
}

// Initialize sets up the chunk table and indices.
func (s *Store) Initialize(ctx context.Context) error {
	_, err := s.Pool.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS legal_chunks (
            id SERIAL PRIMARY KEY,
            content TEXT NOT NULL,
            source TEXT NOT NULL,
            page INTEGER NOT NULL,
            section TEXT,
            title TEXT,
            embedding vector(768) NOT NULL
        )
    `)
	if err != nil {
		return fmt.Errorf("failed to create legal_chunks table: %w", err)
	}

	_, err = s.Pool.Exec(ctx, `
		CREATE INDEX IF NOT EXISTS legal_chunks_embedding_idx ON legal_chunks
		USING ivfflat (embedding vector_cosine_ops) WITH (lists = 100)
	`)
	if err != nil {
		return fmt.Errorf("failed to create vector index: %w", err)
	}

	_, err = s.Pool.Exec(ctx, `
		CREATE INDEX IF NOT EXISTS legal_chunks_source_idx ON legal_chunks (source)
	`)
	if err != nil {
		return fmt.Errorf("failed to create source index: %w", err)
	}

	return nil
}

// StoreChunk stores a document chunk with its embedding.
func (s *Store) StoreChunk(ctx context.Context, chunk *models.TextChunk) error {
	_, err := s.Pool.Exec(ctx, `
        INSERT INTO legal_chunks (content, source, page, section, title, embedding)
        VALUES ($1, $2, $3, $4, $5, $6)
    `,
		chunk.Content,
		chunk.Metadata.Source,
		chunk.Metadata.Page,
		chunk.Metadata.Section,
		chunk.Metadata.Title,
		chunk.Embedding)

	return err
}

// QuerySimilar finds the chunks closest to the query embedding by cosine
// distance.
func (s *Store) QuerySimilar(ctx context.Context, embedding []float64, limit int) ([]models.TextChunk, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT id, content, source, page, section, title
		FROM legal_chunks
		ORDER BY embedding <=> $1
		LIMIT $2
	`, embedding, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query similar chunks: %w", err)
	}
	defer rows.Close()

	var chunks []models.TextChunk
	for rows.Next() {
		var chunk models.TextChunk
		var source, section, title string
		var page int

		if err := rows.Scan(&chunk.ID, &chunk.Content, &source, &page, &section, &title); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		chunk.Metadata = models.Metadata{
			Source:  source,
			Page:    page,
			Section: section,
			Title:   title,
		}

		chunks = append(chunks, chunk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return chunks, nil
}

// Sources lists the distinct document sources in the index.
func (s *Store) Sources(ctx context.Context) ([]string, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT DISTINCT source FROM legal_chunks ORDER BY source
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sources: %w", err)
	}
	defer rows.Close()

	var sources []string
	for rows.Next() {
		var source string
		if err := rows.Scan(&source); err != nil {
			return nil, fmt.Errorf("failed to scan source: %w", err)
		}
		sources = append(sources, source)
	}

	return sources, nil
}

// Close closes the database connection pool.
func (s *Store) Close() {
	s.Pool.Close()
}
