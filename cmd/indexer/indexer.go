package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/charmbracelet/log"

	"github.com/piarosebelledelapaz/pro-botno/internal/config"
	"github.com/piarosebelledelapaz/pro-botno/internal/embedding"
	"github.com/piarosebelledelapaz/pro-botno/internal/models"
	"github.com/piarosebelledelapaz/pro-botno/internal/processor"
	"github.com/piarosebelledelapaz/pro-botno/internal/retriever"
)

func main() {
	cfg := config.Load()

	pdfPath := flag.String("pdf", "", "Path to a PDF file or a directory of PDFs (required)")
	pgConnString := flag.String("pg", cfg.DatabaseURL, "PostgreSQL connection string")
	ollamaHost := flag.String("ollama", cfg.OllamaHost, "Ollama host (default uses OLLAMA_HOST env var)")
	embeddingModel := flag.String("model", cfg.EmbeddingModel, "Ollama model for embeddings")
	chunkSize := flag.Int("chunk-size", 1000, "Character size for text chunks")
	chunkOverlap := flag.Int("chunk-overlap", 200, "Character overlap between chunks")
	maxConcurrent := flag.Int("max-concurrent", runtime.NumCPU()/2, "Maximum concurrent embedding requests")
	flag.Parse()

	if *pdfPath == "" {
		log.Fatal("PDF path is required")
	}

	paths, err := collectPDFs(*pdfPath)
	if err != nil {
		log.Fatal("failed to collect PDF files", "err", err)
	}
	if len(paths) == 0 {
		log.Fatal("no PDF files found", "path", *pdfPath)
	}

	ctx := context.Background()

	store, err := retriever.NewStore(ctx, *pgConnString)
	if err != nil {
		log.Fatal("failed to connect to database", "err", err)
	}
	defer store.Close()

	if err := store.Initialize(ctx); err != nil {
		log.Fatal("failed to initialize database", "err", err)
	}
	log.Info("database initialized")

	embedder, err := embedding.NewOllamaEmbedder(*ollamaHost, *embeddingModel)
	if err != nil {
		log.Fatal("failed to create embedder", "err", err)
	}
	embedder.MaxConcurrent = *maxConcurrent

	pdfProcessor := processor.NewPDFProcessor(*chunkSize, *chunkOverlap)

	for _, path := range paths {
		if err := indexDocument(ctx, path, pdfProcessor, embedder, store); err != nil {
			log.Error("failed to index document", "path", path, "err", err)
		}
	}
}

// collectPDFs expands a file or directory path into the PDF files to index.
func collectPDFs(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".pdf" {
			paths = append(paths, filepath.Join(path, entry.Name()))
		}
	}
	return paths, nil
}

func indexDocument(ctx context.Context, path string, pdfProcessor *processor.PDFProcessor,
	embedder *embedding.OllamaEmbedder, store *retriever.Store) error {

	log.Info("processing document", "path", path)
	startTime := time.Now()

	chunks, err := pdfProcessor.ProcessPDF(ctx, path)
	if err != nil {
		return err
	}
	log.Info("extracted chunks", "count", len(chunks), "elapsed", time.Since(startTime).Round(time.Millisecond))

	embeddingStart := time.Now()
	progressFunc := func(processed, total int) {
		if processed%25 == 0 || processed == total {
			log.Info("embedding progress", "processed", processed, "total", total)
		}
	}

	embeddedChunks, err := embedder.EmbedBatch(ctx, chunks, progressFunc)
	if err != nil {
		return err
	}
	log.Info("embeddings created", "elapsed", time.Since(embeddingStart).Round(time.Second))

	stored := 0
	for _, chunk := range embeddedChunks {
		if err := store.StoreChunk(ctx, &chunk); err != nil {
			log.Warn("failed to store chunk", "id", chunk.ID, "err", err)
			continue
		}
		stored++
	}

	log.Info("document indexed",
		"path", path,
		"chunks", stored,
		"elapsed", time.Since(startTime).Round(time.Second))

	printChunkStatistics(embeddedChunks)
	return nil
}

// printChunkStatistics logs summary statistics about the extracted chunks.
func printChunkStatistics(chunks []models.TextChunk) {
	if len(chunks) == 0 {
		return
	}

	var totalLength int
	sectionMap := make(map[string]int)

	for _, chunk := range chunks {
		totalLength += len(chunk.Content)
		if chunk.Metadata.Section != "" {
			sectionMap[chunk.Metadata.Section]++
		}
	}

	log.Info("chunk statistics",
		"total", len(chunks),
		"avg_length", totalLength/len(chunks),
		"sections", len(sectionMap))
}
