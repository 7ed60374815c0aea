package processor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// para builds a paragraph long enough to survive the minimum-size filter.
func para(marker string) string {
	return marker + " " + strings.Repeat("lorem ipsum dolor sit amet ", 6)
}

func TestChunkText_SplitsOnParagraphBoundaries(t *testing.T) {
	p := NewPDFProcessor(300, 0)

	text := strings.Join([]string{
		para("first"),
		para("second"),
		para("third"),
		para("fourth"),
	}, "\n\n")

	chunks := p.ChunkText(text, "refugee-handbook")
	require.Greater(t, len(chunks), 1)

	for i, chunk := range chunks {
		assert.Equal(t, i+1, chunk.ID)
		assert.Equal(t, "refugee-handbook", chunk.Metadata.Source)
		assert.GreaterOrEqual(t, len(chunk.Content), MinChunkSize)
	}

	// Paragraphs are never torn apart mid-sentence.
	assert.True(t, strings.HasPrefix(chunks[0].Content, "first "))
	assert.True(t, strings.HasPrefix(chunks[1].Content, "second ") ||
		strings.Contains(chunks[1].Content, "\n\nsecond ") ||
		strings.Contains(chunks[1].Content, "\n\nthird "))
}

func TestChunkText_TracksArticleSections(t *testing.T) {
	p := NewPDFProcessor(300, 0)

	text := strings.Join([]string{
		"Article 33 Prohibition of expulsion or return\n" + para("no contracting state shall expel"),
		"Art. 12a Personal status\n" + para("the personal status of a refugee"),
	}, "\n\n")

	chunks := p.ChunkText(text, "geneva-convention")
	require.GreaterOrEqual(t, len(chunks), 2)

	assert.Equal(t, "Article 33", chunks[0].Metadata.Section)
	assert.Equal(t, "Art. 12a", chunks[len(chunks)-1].Metadata.Section)
}

func TestChunkText_GermanArticleHeaders(t *testing.T) {
	p := NewPDFProcessor(300, 0)

	text := "Artikel 5 Nichtruckschiebung\n\n" + para("niemand darf in einen staat zuruckgeschoben werden")

	chunks := p.ChunkText(text, "asylgesetz")
	require.NotEmpty(t, chunks)
	assert.Equal(t, "Artikel 5", chunks[0].Metadata.Section)
}

func TestChunkText_TracksPages(t *testing.T) {
	p := NewPDFProcessor(200, 0)

	pageOne := para("alpha") + "\n\n" + para("bravo")
	pageTwo := para("charlie") + "\n\n" + para("delta")
	text := pageOne + "\f" + pageTwo

	chunks := p.ChunkText(text, "doc")
	require.GreaterOrEqual(t, len(chunks), 2)

	assert.Equal(t, 1, chunks[0].Metadata.Page)
	assert.Equal(t, 2, chunks[len(chunks)-1].Metadata.Page)
}

func TestChunkText_OverlapCarriesTail(t *testing.T) {
	p := NewPDFProcessor(200, 50)

	text := para("first") + "\n\n" + para("second")
	chunks := p.ChunkText(text, "doc")
	require.GreaterOrEqual(t, len(chunks), 2)

	tail := chunks[0].Content[len(chunks[0].Content)-50:]
	assert.True(t, strings.HasPrefix(chunks[1].Content, tail))
}

func TestChunkText_DropsTinyFragments(t *testing.T) {
	p := NewPDFProcessor(300, 0)

	chunks := p.ChunkText("too short", "doc")
	assert.Empty(t, chunks)
}

func TestChunkText_OversizedConfigFallsBackToMax(t *testing.T) {
	p := NewPDFProcessor(100000, 0)
	assert.Equal(t, MaxChunkSize, p.chunkSize())

	p = NewPDFProcessor(0, 0)
	assert.Equal(t, MaxChunkSize, p.chunkSize())
}

func TestNormalizeWhitespace(t *testing.T) {
	in := "heading   with\tspaces\n\n\n\nnext   paragraph\n \n\nlast"
	out := normalizeWhitespace(in)

	assert.Equal(t, "heading with spaces\n\nnext paragraph\n\nlast", out)
}

func TestNormalizeWhitespace_PreservesFormFeed(t *testing.T) {
	out := normalizeWhitespace("page one text\fpage two text")
	assert.Equal(t, "page one text\fpage two text", out)
}
