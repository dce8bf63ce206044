package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillalign/resume-matcher/internal/models"
)

// failOnStrategy errors for resumes containing the trigger word and scores
// everything else with a fixed value.
type failOnStrategy struct {
	trigger string
	score   float64
}

func (s *failOnStrategy) Name() string { return "fail-on" }

func (s *failOnStrategy) Score(_ context.Context, resumeText, _ string) (float64, error) {
	if s.trigger != "" && strings.Contains(resumeText, s.trigger) {
		return 0, fmt.Errorf("simulated scoring failure")
	}
	return s.score, nil
}

func newTestMatcher(strategy SimilarityStrategy) MatcherService {
	return NewMatcherService(NewTextExtractor(), strategy, NewShortlistRanker(10, true))
}

func TestScoreText_PipelineWiring(t *testing.T) {
	m := newTestMatcher(&failOnStrategy{score: 2.0 / 3.0})

	result, err := m.ScoreText(context.Background(), "resume", "jd")
	require.NoError(t, err)

	assert.InDelta(t, 2.0/3.0, result.RawScore, 1e-9)
	assert.InDelta(t, 6.67, result.NormalizedScore, 1e-9)
	assert.Equal(t, models.TierPotential, result.Tier)
	assert.Equal(t, models.ColorYellow, result.Color)
}

func TestScoreDocuments_IsolatesFailures(t *testing.T) {
	m := newTestMatcher(&failOnStrategy{score: 0.9})

	docs := []Document{
		{FileName: "one.txt", Data: []byte("go engineer")},
		{FileName: "two.txt", Data: []byte("python engineer")},
		{FileName: "three.pdf", Data: []byte("definitely not a pdf")},
		{FileName: "four.txt", Data: []byte("rust engineer")},
		{FileName: "five.txt", Data: []byte("java engineer")},
	}

	results, err := m.ScoreDocuments(context.Background(), "backend engineer", docs)
	require.NoError(t, err)

	require.Len(t, results, 4)
	names := make([]string, len(results))
	for i, r := range results {
		names[i] = r.FileName
	}
	assert.Equal(t, []string{"one.txt", "two.txt", "four.txt", "five.txt"}, names)
}

func TestScoreDocuments_ScoringFailureSkipsDocument(t *testing.T) {
	m := newTestMatcher(&failOnStrategy{trigger: "BOOM", score: 0.8})

	docs := []Document{
		{FileName: "good.txt", Data: []byte("solid candidate")},
		{FileName: "bad.txt", Data: []byte("BOOM candidate")},
	}

	results, err := m.ScoreDocuments(context.Background(), "jd", docs)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "good.txt", results[0].FileName)
}

func TestScoreDocuments_AllFailed(t *testing.T) {
	m := newTestMatcher(&failOnStrategy{score: 0.5})

	docs := []Document{
		{FileName: "one.pdf", Data: []byte("garbage")},
		{FileName: "two.pdf", Data: []byte("more garbage")},
	}

	_, err := m.ScoreDocuments(context.Background(), "jd", docs)
	assert.ErrorIs(t, err, ErrNoDocumentsScored)
}

func TestShortlistDocuments_EndToEnd(t *testing.T) {
	m := NewMatcherService(NewTextExtractor(), NewTokenOverlapStrategy(), NewShortlistRanker(10, true))

	docs := []Document{
		{FileName: "strong.txt", Data: []byte("python fastapi sql postgres docker")},
		{FileName: "partial.txt", Data: []byte("experienced python developer with fastapi and postgresql")},
		{FileName: "weak.txt", Data: []byte("graphic designer portfolio")},
	}

	shortlist, err := m.ShortlistDocuments(context.Background(), "Python FastAPI SQL", docs)
	require.NoError(t, err)

	require.Len(t, shortlist.Shortlisted, 2)
	assert.Equal(t, "strong.txt", shortlist.Shortlisted[0].FileName)
	assert.InDelta(t, 10.0, shortlist.Shortlisted[0].NormalizedScore, 1e-9)
	assert.Equal(t, models.TierExcellent, shortlist.Shortlisted[0].Tier)

	assert.Equal(t, "partial.txt", shortlist.Shortlisted[1].FileName)
	assert.InDelta(t, 6.67, shortlist.Shortlisted[1].NormalizedScore, 1e-9)
	assert.Equal(t, models.TierPotential, shortlist.Shortlisted[1].Tier)

	require.Len(t, shortlist.Others, 1)
	assert.Equal(t, "weak.txt", shortlist.Others[0].FileName)
	assert.Equal(t, models.TierRejected, shortlist.Others[0].Tier)
}

func TestShortlistDocuments_PropagatesBatchFailure(t *testing.T) {
	m := newTestMatcher(&failOnStrategy{score: 0.5})

	_, err := m.ShortlistDocuments(context.Background(), "jd", []Document{
		{FileName: "corrupt.pdf", Data: []byte("nope")},
	})
	assert.True(t, errors.Is(err, ErrNoDocumentsScored))
}
