package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkText_ShortTextSingleChunk(t *testing.T) {
	c := NewTextChunker()

	chunks := c.ChunkText("Short resume text.", 1000)
	require.Len(t, chunks, 1)
	assert.Equal(t, "Short resume text.", chunks[0])
}

func TestChunkText_ParagraphsGrouped(t *testing.T) {
	c := NewTextChunker()

	text := "First paragraph.\n\nSecond paragraph.\n\nThird paragraph."
	chunks := c.ChunkText(text, 40)

	require.NotEmpty(t, chunks)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 40)
	}
}

func TestChunkText_OversizedParagraphSplitOnSentences(t *testing.T) {
	c := NewTextChunker()

	text := strings.Repeat("This sentence pads the paragraph out. ", 20)
	chunks := c.ChunkText(text, 100)

	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 100)
	}
}

func TestChunkText_EmptyInput(t *testing.T) {
	c := NewTextChunker()

	assert.Empty(t, c.ChunkText("", 100))
	assert.Empty(t, c.ChunkText("\n\n\n", 100))
}
