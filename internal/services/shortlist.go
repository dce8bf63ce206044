package services

import (
	"sort"

	"skillalign/resume-matcher/internal/models"
)

// ShortlistRanker turns a batch of scored matches into a bounded shortlist.
type ShortlistRanker interface {
	Rank(results []models.MatchResult) models.ShortlistResult
}

type shortlistRanker struct {
	capSize        int
	demoteOverflow bool
}

// NewShortlistRanker builds a ranker with the given shortlist cap. When
// demoteOverflow is true, Excellent-tier entries that do not fit under the
// cap are demoted into Others; when false they are dropped from the response
// entirely (the legacy behavior).
func NewShortlistRanker(capSize int, demoteOverflow bool) ShortlistRanker {
	if capSize <= 0 {
		capSize = 10
	}
	return &shortlistRanker{
		capSize:        capSize,
		demoteOverflow: demoteOverflow,
	}
}

// Rank implements ShortlistRanker.
//
// Results are stably sorted descending by normalized score (ties keep
// submission order), partitioned by tier, and the shortlist takes the first
// capSize entries of Excellent followed by Potential. An Excellent entry
// always outranks a Potential one at the shortlist boundary, whatever the
// numeric gap. Rejected entries always land in Others.
func (r *shortlistRanker) Rank(results []models.MatchResult) models.ShortlistResult {
	sorted := make([]models.MatchResult, len(results))
	copy(sorted, results)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].NormalizedScore > sorted[j].NormalizedScore
	})

	var excellent, potential, rejected []models.MatchResult
	for _, res := range sorted {
		switch res.Tier {
		case models.TierExcellent:
			excellent = append(excellent, res)
		case models.TierPotential:
			potential = append(potential, res)
		default:
			rejected = append(rejected, res)
		}
	}

	shortlisted := make([]models.MatchResult, 0, r.capSize)
	others := make([]models.MatchResult, 0, len(sorted))

	for _, res := range excellent {
		if len(shortlisted) < r.capSize {
			shortlisted = append(shortlisted, res)
			continue
		}
		if r.demoteOverflow {
			others = append(others, res)
		}
		// Dropped otherwise: overflow Excellent entries vanish from the
		// response in legacy mode.
	}

	for _, res := range potential {
		if len(shortlisted) < r.capSize {
			shortlisted = append(shortlisted, res)
			continue
		}
		others = append(others, res)
	}

	others = append(others, rejected...)

	return models.ShortlistResult{
		Shortlisted: shortlisted,
		Others:      others,
	}
}
