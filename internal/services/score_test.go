package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"skillalign/resume-matcher/internal/models"
)

func TestNormalizeScore_PinnedValues(t *testing.T) {
	tests := []struct {
		name string
		raw  float64
		want float64
	}{
		{"zero", 0, 0},
		{"one", 1, 10},
		{"two thirds", 2.0 / 3.0, 6.67},
		{"quarter", 0.25, 2.5},
		{"rounds half away from zero", 0.6785, 6.79},
		{"two decimals kept", 0.1234, 1.23},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, NormalizeScore(tt.raw), 1e-9)
		})
	}
}

func TestNormalizeScore_Monotonic(t *testing.T) {
	prev := NormalizeScore(0)
	for raw := 0.01; raw <= 1.0; raw += 0.01 {
		cur := NormalizeScore(raw)
		assert.GreaterOrEqual(t, cur, prev, "normalization must not decrease at raw=%f", raw)
		prev = cur
	}
}

func TestClassifyScore_Boundaries(t *testing.T) {
	tests := []struct {
		name      string
		score     float64
		wantTier  models.MatchTier
		wantColor models.MatchColor
	}{
		{"exactly eight", 8.0, models.TierExcellent, models.ColorGreen},
		{"just below eight", 7.999, models.TierPotential, models.ColorYellow},
		{"exactly six", 6.0, models.TierPotential, models.ColorYellow},
		{"just below six", 5.999, models.TierRejected, models.ColorRed},
		{"top of scale", 10, models.TierExcellent, models.ColorGreen},
		{"zero", 0, models.TierRejected, models.ColorRed},
		{"negative", -3, models.TierRejected, models.ColorRed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tier, color := ClassifyScore(tt.score)
			assert.Equal(t, tt.wantTier, tier)
			assert.Equal(t, tt.wantColor, color)
		})
	}
}
