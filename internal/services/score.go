package services

import (
	"math"

	"skillalign/resume-matcher/internal/models"
)

// NormalizeScore maps a raw strategy score in [0,1] onto the canonical 0-10
// scale, rounded half-away-from-zero to two decimal places. Every strategy
// returns a raw score in [0,1], so normalization is always a plain x10;
// raw values are never pre-scaled.
func NormalizeScore(raw float64) float64 {
	return math.Round(raw*10*100) / 100
}

// ClassifyScore maps a normalized 0-10 score to its match tier and color
// code. Total over the real line: anything below the Potential threshold is
// Rejected, including negative inputs.
func ClassifyScore(normalized float64) (models.MatchTier, models.MatchColor) {
	switch {
	case normalized >= 8:
		return models.TierExcellent, models.ColorGreen
	case normalized >= 6:
		return models.TierPotential, models.ColorYellow
	default:
		return models.TierRejected, models.ColorRed
	}
}
