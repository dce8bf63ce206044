package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenOverlap_PartialMatch(t *testing.T) {
	s := NewTokenOverlapStrategy()

	// Two of three JD words appear in the resume, case-insensitively.
	score, err := s.Score(context.Background(),
		"Experienced Python developer with FastAPI and PostgreSQL",
		"Python FastAPI SQL",
	)
	require.NoError(t, err)
	assert.InDelta(t, 2.0/3.0, score, 1e-9)
}

func TestTokenOverlap_SupersetScoresOne(t *testing.T) {
	s := NewTokenOverlapStrategy()

	score, err := s.Score(context.Background(),
		"go postgres docker kubernetes grpc",
		"Go postgres docker",
	)
	require.NoError(t, err)
	assert.Equal(t, 1.0, score)
}

func TestTokenOverlap_EmptyInputs(t *testing.T) {
	s := NewTokenOverlapStrategy()

	for _, tc := range []struct {
		name   string
		resume string
		jd     string
	}{
		{"empty jd", "some resume text", ""},
		{"blank jd", "some resume text", "   \n\t "},
		{"empty resume", "", "some jd text"},
		{"both empty", "", ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			score, err := s.Score(context.Background(), tc.resume, tc.jd)
			require.NoError(t, err)
			assert.Equal(t, 0.0, score)
		})
	}
}

func TestTokenOverlap_ScoreInUnitRange(t *testing.T) {
	s := NewTokenOverlapStrategy()

	score, err := s.Score(context.Background(),
		"java spring hibernate",
		"go rust zig java",
	)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, score, 0.0)
	assert.LessOrEqual(t, score, 1.0)
}

func TestCosineSimilarity(t *testing.T) {
	a := []float32{1, 2, 3}
	b := []float32{2, 4, 6}
	c := []float32{3, -1, 0.5}

	assert.InDelta(t, 1.0, CosineSimilarity(a, b), 1e-9, "parallel vectors")
	assert.InDelta(t, CosineSimilarity(a, c), CosineSimilarity(c, a), 1e-12, "symmetry")
	assert.Equal(t, 0.0, CosineSimilarity(a, []float32{0, 0, 0}), "zero norm")
	assert.Equal(t, 0.0, CosineSimilarity(nil, nil))
}

type stubEmbedder struct {
	vectors map[string][]float32
	calls   int
	err     error
}

func (s *stubEmbedder) GenerateEmbedding(_ context.Context, text string) ([]float32, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.vectors[text], nil
}

func TestEmbeddingStrategy_Scores(t *testing.T) {
	embedder := &stubEmbedder{vectors: map[string][]float32{
		"resume": {1, 0},
		"jd":     {1, 0},
	}}
	s := NewEmbeddingStrategy(embedder)

	score, err := s.Score(context.Background(), "resume", "jd")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, score, 1e-9)
	assert.Equal(t, 2, embedder.calls)
}

func TestEmbeddingStrategy_BlankInputSkipsEmbedder(t *testing.T) {
	embedder := &stubEmbedder{}
	s := NewEmbeddingStrategy(embedder)

	score, err := s.Score(context.Background(), "  ", "jd text")
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)
	assert.Equal(t, 0, embedder.calls, "blank input must not invoke the embedding model")
}
