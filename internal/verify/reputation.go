package verify

import (
	"github.com/credlab/credence/internal/model"
	"github.com/credlab/credence/internal/trust"
)

// Reputation scoring is transparent and deterministic: a category base
// adjusted by verification outcome, clamped to [0,1]. The weights are
// fixed so the same inputs always produce the same badge.
const (
	baseUncategorized = 0.50

	deadPenalty         = 0.30
	inaccessiblePenalty = 0.20
	stalePenalty        = 0.05
	veryStalePenalty    = 0.15
	freshBonus          = 0.05 // Modified within the last year
)

// categoryBase maps topical categories to their reputation starting point.
var categoryBase = map[string]float64{
	trust.CategoryGovernment: 0.90,
	trust.CategoryAcademic:   0.88,
	trust.CategoryScience:    0.85,
	trust.CategoryResearch:   0.82,
	trust.CategoryHealth:     0.80,
	trust.CategoryNews:       0.75,
	trust.CategoryFinance:    0.75,
	trust.CategoryReference:  0.70,
	trust.CategoryTechnology: 0.70,
}

// Reputation computes a [0,1] reputation score for a source from its
// topical category and verification outcome. A nil verification leaves
// the category base unadjusted.
func Reputation(category string, v *model.VerificationResult) float64 {
	score, ok := categoryBase[category]
	if !ok {
		score = baseUncategorized
	}

	if v != nil {
		switch {
		case v.IsDead:
			score -= deadPenalty
		case !v.IsAccessible:
			score -= inaccessiblePenalty
		}

		switch {
		case v.IsVeryStale:
			score -= veryStalePenalty
		case v.IsStale:
			score -= stalePenalty
		case v.AgeDays != nil:
			score += freshBonus
		}
	}

	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
