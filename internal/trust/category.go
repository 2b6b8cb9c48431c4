package trust

import (
	"strings"

	"github.com/credlab/credence/internal/model"
)

// Category constants for the built-in table. Categories are plain strings
// so config-supplied rules can introduce new ones.
const (
	CategoryGovernment = "Government"
	CategoryAcademic   = "Academic"
	CategoryScience    = "Science"
	CategoryResearch   = "Research"
	CategoryNews       = "News"
	CategoryReference  = "Reference"
	CategoryHealth     = "Health"
	CategoryTechnology = "Technology"
	CategoryFinance    = "Finance"
)

// categoryRule maps a fully-qualified domain suffix to a category.
type categoryRule struct {
	suffix   string
	category string
}

// categoryTable is the built-in domain-to-category table. It is an ordered
// slice, not a map: the suffix fallback scans it in declared order and the
// first match wins. The nasa.gov entry is shadowed by the .gov suffix rule
// in Categorize; it is kept deliberately so the table stays authoritative
// if the suffix-rule precedence ever changes.
var categoryTable = []categoryRule{
	{"nature.com", CategoryScience},
	{"sciencemag.org", CategoryScience},
	{"nasa.gov", CategoryScience},
	{"newscientist.com", CategoryScience},
	{"arxiv.org", CategoryResearch},
	{"doi.org", CategoryResearch},
	{"jstor.org", CategoryResearch},
	{"ssrn.com", CategoryResearch},
	{"reuters.com", CategoryNews},
	{"apnews.com", CategoryNews},
	{"bbc.co.uk", CategoryNews},
	{"bbc.com", CategoryNews},
	{"nytimes.com", CategoryNews},
	{"theguardian.com", CategoryNews},
	{"wikipedia.org", CategoryReference},
	{"britannica.com", CategoryReference},
	{"who.int", CategoryHealth},
	{"mayoclinic.org", CategoryHealth},
	{"webmd.com", CategoryHealth},
	{"ieee.org", CategoryTechnology},
	{"acm.org", CategoryTechnology},
	{"github.com", CategoryTechnology},
	{"worldbank.org", CategoryFinance},
	{"imf.org", CategoryFinance},
	{"bloomberg.com", CategoryFinance},
}

// Categorizer infers a topical category from a hostname. The zero value
// uses only the built-in table; extra rules from config are appended after
// the built-ins, preserving their priority.
type Categorizer struct {
	rules []categoryRule
}

// NewCategorizer creates a categorizer from the built-in table plus any
// extra suffix rules from config, in that order.
func NewCategorizer(extra []model.CategoryRule) *Categorizer {
	rules := make([]categoryRule, 0, len(categoryTable)+len(extra))
	rules = append(rules, categoryTable...)
	for _, r := range extra {
		if r.Suffix == "" || r.Category == "" {
			continue
		}
		rules = append(rules, categoryRule{strings.ToLower(r.Suffix), r.Category})
	}
	return &Categorizer{rules: rules}
}

// Categorize maps a hostname to a topical category. Input may be mixed
// case; it is folded before matching. Returns ("", false) when no rule
// applies.
//
// Precedence: TLD suffix rules first (.gov/.mil -> Government,
// .edu/.ac.uk -> Academic), then an exact-match pass over the table, then
// a suffix-match pass over the table in declared order.
func (c *Categorizer) Categorize(domain string) (string, bool) {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if domain == "" {
		return "", false
	}

	if strings.HasSuffix(domain, ".gov") || strings.HasSuffix(domain, ".mil") {
		return CategoryGovernment, true
	}
	if strings.HasSuffix(domain, ".edu") || strings.HasSuffix(domain, ".ac.uk") {
		return CategoryAcademic, true
	}

	rules := c.rules
	if rules == nil {
		rules = categoryTable
	}

	for _, r := range rules {
		if domain == r.suffix {
			return r.category, true
		}
	}

	for _, r := range rules {
		if strings.HasSuffix(domain, "."+r.suffix) {
			return r.category, true
		}
	}

	return "", false
}

// Categorize applies the built-in table without config extensions.
func Categorize(domain string) (string, bool) {
	return (&Categorizer{}).Categorize(domain)
}
