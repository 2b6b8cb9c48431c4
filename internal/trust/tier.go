package trust

import "math"

// Tier is a named bucket of reputation scores. MinScore is the inclusive
// lower bound of the bucket.
type Tier struct {
	MinScore    float64
	Label       string
	Accent      string // Color hint for renderers; not part of the contract
	Explanation string
}

// tiers is the ordered, exhaustive tier table, descending by MinScore.
// The final entry's bound is 0.00, so every score >= 0 matches some tier.
// Defined once at process start and never mutated.
var tiers = []Tier{
	{0.90, "Authoritative", "green", "Primary or official source with an established publication record"},
	{0.80, "Trusted", "green", "Consistently accurate source with strong editorial standards"},
	{0.70, "Reliable", "cyan", "Generally dependable source with occasional lapses"},
	{0.50, "Standard", "yellow", "Ordinary source without a notable reputation either way"},
	{0.30, "Caution", "magenta", "Source with known accuracy or bias concerns"},
	{0.00, "Low Quality", "red", "Source with little or no editorial oversight"},
}

// Tiers returns a copy of the tier table, highest first.
func Tiers() []Tier {
	out := make([]Tier, len(tiers))
	copy(out, tiers)
	return out
}

// Classify maps a reputation score to its trust tier. Scores are expected
// in [0,1] but out-of-range input is never rejected: scores above 1 match
// the top tier, scores below 0 fall back to the lowest tier.
func Classify(score float64) Tier {
	for _, t := range tiers {
		if score >= t.MinScore {
			return t
		}
	}
	// Negative or NaN input lands here; degrade rather than fail.
	return tiers[len(tiers)-1]
}

// Percent converts a score to a rounded percentage for display.
func Percent(score float64) int {
	return int(math.Round(score * 100))
}
