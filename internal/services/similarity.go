package services

import (
	"context"
	"fmt"
	"math"
	"strings"
)

// SimilarityStrategy scores how well a resume matches a job description.
// Every strategy returns a raw score in [0,1]. Blank input on either side
// scores 0.0 without touching the underlying model or service.
type SimilarityStrategy interface {
	Name() string
	Score(ctx context.Context, resumeText, jdText string) (float64, error)
}

// --- token overlap ---

type tokenOverlapStrategy struct{}

// NewTokenOverlapStrategy scores by word-set overlap: the fraction of JD
// words (lower-cased, whitespace-split) that also appear in the resume.
func NewTokenOverlapStrategy() SimilarityStrategy {
	return &tokenOverlapStrategy{}
}

func (s *tokenOverlapStrategy) Name() string { return "token-overlap" }

func (s *tokenOverlapStrategy) Score(_ context.Context, resumeText, jdText string) (float64, error) {
	if strings.TrimSpace(resumeText) == "" || strings.TrimSpace(jdText) == "" {
		return 0.0, nil
	}

	jdWords := wordSet(jdText)
	if len(jdWords) == 0 {
		return 0.0, nil
	}

	resumeWords := wordSet(resumeText)

	matched := 0
	for word := range jdWords {
		if _, ok := resumeWords[word]; ok {
			matched++
		}
	}

	return float64(matched) / float64(len(jdWords)), nil
}

func wordSet(text string) map[string]struct{} {
	words := strings.Fields(strings.ToLower(text))
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// --- embedding cosine ---

// Embedder is the slice of GeminiService the embedding strategy needs.
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

type embeddingStrategy struct {
	embedder Embedder
}

// NewEmbeddingStrategy scores by cosine similarity between sentence
// embeddings of the two texts.
func NewEmbeddingStrategy(embedder Embedder) SimilarityStrategy {
	return &embeddingStrategy{embedder: embedder}
}

func (s *embeddingStrategy) Name() string { return "embedding" }

func (s *embeddingStrategy) Score(ctx context.Context, resumeText, jdText string) (float64, error) {
	if strings.TrimSpace(resumeText) == "" || strings.TrimSpace(jdText) == "" {
		return 0.0, nil
	}

	jdVec, err := s.embedder.GenerateEmbedding(ctx, jdText)
	if err != nil {
		return 0, fmt.Errorf("failed to embed job description: %w", err)
	}

	resumeVec, err := s.embedder.GenerateEmbedding(ctx, resumeText)
	if err != nil {
		return 0, fmt.Errorf("failed to embed resume: %w", err)
	}

	return CosineSimilarity(jdVec, resumeVec), nil
}

// CosineSimilarity computes dot(a,b) / (‖a‖·‖b‖), defined as 0 when either
// norm is zero.
func CosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
	}
	for _, x := range a {
		normA += float64(x) * float64(x)
	}
	for _, y := range b {
		normB += float64(y) * float64(y)
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
