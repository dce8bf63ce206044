package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"skillalign/resume-matcher/internal/config"
	"skillalign/resume-matcher/internal/models"
)

// ErrNoDocumentsScored is returned when every document in a batch failed
// extraction or scoring. A batch with at least one success never errors.
var ErrNoDocumentsScored = errors.New("no documents could be scored")

// Document is one uploaded file flowing through a batch. Raw bytes plus the
// declared filename; nothing here survives the request.
type Document struct {
	FileName string
	Data     []byte
}

// MatcherService drives the scoring pipeline over a batch of documents
// against one job description: extract, score, normalize, classify, and
// optionally rank into a shortlist.
type MatcherService interface {
	ScoreText(ctx context.Context, resumeText, jdText string) (models.MatchResult, error)
	ScoreDocuments(ctx context.Context, jdText string, docs []Document) ([]models.MatchResult, error)
	ShortlistDocuments(ctx context.Context, jdText string, docs []Document) (models.ShortlistResult, error)
	Rank(results []models.MatchResult) models.ShortlistResult
}

type matcherService struct {
	extractor TextExtractor
	strategy  SimilarityStrategy
	ranker    ShortlistRanker
}

func NewMatcherService(
	extractor TextExtractor,
	strategy SimilarityStrategy,
	ranker ShortlistRanker,
) MatcherService {
	return &matcherService{
		extractor: extractor,
		strategy:  strategy,
		ranker:    ranker,
	}
}

// ScoreText implements MatcherService for already-extracted text.
func (m *matcherService) ScoreText(ctx context.Context, resumeText, jdText string) (models.MatchResult, error) {
	raw, err := m.strategy.Score(ctx, resumeText, jdText)
	if err != nil {
		return models.MatchResult{}, fmt.Errorf("strategy %s failed: %w", m.strategy.Name(), err)
	}

	normalized := NormalizeScore(raw)
	tier, color := ClassifyScore(normalized)

	return models.MatchResult{
		RawScore:        raw,
		NormalizedScore: normalized,
		Tier:            tier,
		Color:           color,
	}, nil
}

// ScoreDocuments implements MatcherService. Failures are isolated per
// document: a file that extracts to nothing or whose scoring call fails is
// skipped with a log line and the rest of the batch continues. The batch
// errors only when nothing succeeds.
func (m *matcherService) ScoreDocuments(ctx context.Context, jdText string, docs []Document) ([]models.MatchResult, error) {
	results := make([]models.MatchResult, 0, len(docs))

	for _, doc := range docs {
		text := m.extractor.Extract(doc.FileName, doc.Data)
		if text == "" {
			log.Printf("⚠️  Skipping %s: no text extracted\n", doc.FileName)
			continue
		}

		result, err := m.ScoreText(ctx, text, jdText)
		if err != nil {
			log.Printf("⚠️  Skipping %s: %v\n", doc.FileName, err)
			continue
		}

		result.FileName = doc.FileName
		results = append(results, result)
	}

	if len(results) == 0 {
		return nil, ErrNoDocumentsScored
	}

	return results, nil
}

// ShortlistDocuments implements MatcherService: score the batch, then rank.
func (m *matcherService) ShortlistDocuments(ctx context.Context, jdText string, docs []Document) (models.ShortlistResult, error) {
	results, err := m.ScoreDocuments(ctx, jdText, docs)
	if err != nil {
		return models.ShortlistResult{}, err
	}

	return m.ranker.Rank(results), nil
}

// Rank implements MatcherService for results that are already scored, such
// as resumes loaded back from the database.
func (m *matcherService) Rank(results []models.MatchResult) models.ShortlistResult {
	return m.ranker.Rank(results)
}

// NewSimilarityStrategy builds the strategy named by the matching config.
// Unknown names fall back to token overlap, which needs no external service.
func NewSimilarityStrategy(cfg config.MatchingConfig, embedder Embedder, hf HuggingFaceService) SimilarityStrategy {
	switch cfg.Strategy {
	case "embedding":
		return NewEmbeddingStrategy(embedder)
	case "remote":
		return NewRemoteSimilarityStrategy(hf)
	case "token-overlap":
		return NewTokenOverlapStrategy()
	default:
		log.Printf("⚠️  Unknown match strategy %q, falling back to token-overlap\n", cfg.Strategy)
		return NewTokenOverlapStrategy()
	}
}
