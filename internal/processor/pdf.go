// Package processor extracts and chunks legal document PDFs for indexing.
package processor

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/piarosebelledelapaz/pro-botno/internal/models"

	"github.com/ledongthuc/pdf"
)

const (
	// MaxChunkSize bounds a single chunk.
	MaxChunkSize = 2000
	// MinChunkSize drops fragments too small to be useful retrieval units.
	MinChunkSize = 100
)

// articleRe matches article headers in legal texts ("Article 33",
// "Art. 12", "Artikel 5").
var articleRe = regexp.MustCompile(`(?m)^(Article|Art\.|Artikel)\s+(\d+[a-z]?)\b.*$`)

// PDFProcessor handles PDF processing for the document indexer.
type PDFProcessor struct {
	ChunkSize    int
	ChunkOverlap int
}

// NewPDFProcessor creates a new PDF processor
func NewPDFProcessor(chunkSize, chunkOverlap int) *PDFProcessor {
	return &PDFProcessor{
		ChunkSize:    chunkSize,
		ChunkOverlap: chunkOverlap,
	}
}

// ExtractText extracts text from a PDF file
func (p *PDFProcessor) ExtractText(filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	b, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract plain text: %w", err)
	}

	_, err = buf.ReadFrom(b)
	if err != nil {
		return "", fmt.Errorf("failed to read text: %w", err)
	}

	return buf.String(), nil
}

// ProcessPDF processes a PDF file and returns chunks tagged with the
// document name and the nearest preceding article header.
func (p *PDFProcessor) ProcessPDF(ctx context.Context, filePath string) ([]models.TextChunk, error) {
	text, err := p.ExtractText(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to extract text: %w", err)
	}

	source := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	text = normalizeWhitespace(text)

	return p.ChunkText(text, source), nil
}

// ChunkText splits normalized text into overlapping chunks along paragraph
// boundaries, carrying the current article header into each chunk's
// metadata so citations can name it.
func (p *PDFProcessor) ChunkText(text, source string) []models.TextChunk {
	var chunks []models.TextChunk
	chunkID := 1
	page := 1
	section := ""

	var current strings.Builder
	var overlapTail string

	flush := func() {
		content := strings.TrimSpace(current.String())
		if len(content) >= MinChunkSize {
			chunks = append(chunks, models.TextChunk{
				ID:      chunkID,
				Content: content,
				Metadata: models.Metadata{
					Source:  source,
					Page:    page,
					Section: section,
				},
			})
			chunkID++
		}
		// Carry the tail of this chunk into the next one for continuity.
		if p.ChunkOverlap > 0 && len(content) > p.ChunkOverlap {
			overlapTail = content[len(content)-p.ChunkOverlap:]
		} else {
			overlapTail = ""
		}
		current.Reset()
	}

	for i, block := range strings.Split(text, "\f") {
		page = i + 1
		for _, para := range strings.Split(block, "\n\n") {
			if current.Len()+len(para) > p.chunkSize() && current.Len() > 0 {
				flush()
				if overlapTail != "" {
					current.WriteString(overlapTail)
					current.WriteString("\n\n")
				}
			}

			if m := articleRe.FindStringSubmatch(para); m != nil {
				section = m[1] + " " + m[2]
			}

			if current.Len() > 0 {
				current.WriteString("\n\n")
			}
			current.WriteString(para)
		}
	}
	flush()

	return chunks
}

func (p *PDFProcessor) chunkSize() int {
	if p.ChunkSize > 0 && p.ChunkSize <= MaxChunkSize {
		return p.ChunkSize
	}
	return MaxChunkSize
}

// normalizeWhitespace collapses runs of spaces and blank lines while
// preserving paragraph and page boundaries.
func normalizeWhitespace(text string) string {
	spaceRe := regexp.MustCompile(`[ \t]+`)
	text = spaceRe.ReplaceAllString(text, " ")

	paraSepRe := regexp.MustCompile(`\n\s*\n+`)
	text = paraSepRe.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}
