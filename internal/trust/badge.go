package trust

import "fmt"

// Badge is the presentation-ready classification of a source: tier,
// rounded percentage, and optional topical category.
type Badge struct {
	Tier     Tier
	Percent  int
	Category string // Empty when no category rule matched
}

// NewBadge builds a badge for a score and hostname using the built-in
// category table.
func NewBadge(score float64, domain string) Badge {
	return NewBadgeWith(score, domain, nil)
}

// NewBadgeWith builds a badge using the given categorizer. A nil
// categorizer falls back to the built-in table.
func NewBadgeWith(score float64, domain string, c *Categorizer) Badge {
	if c == nil {
		c = &Categorizer{}
	}
	category, _ := c.Categorize(domain)
	return Badge{
		Tier:     Classify(score),
		Percent:  Percent(score),
		Category: category,
	}
}

// Compact renders the one-line form: dot + percentage.
func (b Badge) Compact() string {
	return fmt.Sprintf("● %d%%", b.Percent)
}

// Full renders the long form: dot + label + optional category + percentage.
func (b Badge) Full() string {
	if b.Category != "" {
		return fmt.Sprintf("● %s · %s · %d%%", b.Tier.Label, b.Category, b.Percent)
	}
	return fmt.Sprintf("● %s · %d%%", b.Tier.Label, b.Percent)
}
