// Package compare decides how a supporting-vs-contradicting evidence
// partition is presented: nothing, a single list, or a conflict banner
// with both lists. It produces renderer-agnostic panel data; painting is
// the render package's job.
package compare

import (
	"strings"

	"github.com/credlab/credence/internal/model"
	"github.com/credlab/credence/internal/trust"
)

// Mode is the display state chosen for an evidence partition.
type Mode int

const (
	ModeNone          Mode = iota // Both lists empty: render nothing
	ModeSupporting                // Only supporting evidence
	ModeContradicting             // Only contradicting evidence
	ModeConflict                  // Both sides present: banner + both lists
)

func (m Mode) String() string {
	switch m {
	case ModeSupporting:
		return "supporting"
	case ModeContradicting:
		return "contradicting"
	case ModeConflict:
		return "conflict"
	default:
		return "none"
	}
}

const (
	// snippetPreviewLen caps snippet previews in list entries.
	snippetPreviewLen = 140

	// bannerDomainLimit caps how many domains per side the conflict
	// banner summarizes.
	bannerDomainLimit = 2
)

// Entry is one source prepared for display.
type Entry struct {
	URL     string `json:"url"`
	Domain  string `json:"domain"`
	Badge   string `json:"badge,omitempty"`   // Compact trust badge; empty when the source is unscored
	Snippet string `json:"snippet,omitempty"` // Length-limited preview; empty when the source has none
}

// ConflictBanner summarizes a disagreement at a glance: up to two domains
// and the first snippet from each side, plus optional reasoning.
type ConflictBanner struct {
	SupportingDomains    []string `json:"supporting_domains"`
	ContradictingDomains []string `json:"contradicting_domains"`
	SupportingSnippet    string   `json:"supporting_snippet,omitempty"`
	ContradictingSnippet string   `json:"contradicting_snippet,omitempty"`
	Reasoning            string   `json:"reasoning,omitempty"`
}

// Panel is the complete renderer-agnostic description of what to draw.
type Panel struct {
	Mode          Mode            `json:"-"` // Serialized as a string alongside the panel
	Title         string          `json:"title,omitempty"`
	Banner        *ConflictBanner `json:"banner,omitempty"` // Only set in conflict mode
	Supporting    []Entry         `json:"supporting,omitempty"`
	Contradicting []Entry         `json:"contradicting,omitempty"`
}

// SelectDisplayMode picks the display state from list emptiness alone.
func SelectDisplayMode(supporting, contradicting []model.Source) Mode {
	switch {
	case len(supporting) == 0 && len(contradicting) == 0:
		return ModeNone
	case len(contradicting) == 0:
		return ModeSupporting
	case len(supporting) == 0:
		return ModeContradicting
	default:
		return ModeConflict
	}
}

// BuildPanel prepares a partition for rendering. It never fails: missing
// or malformed fields degrade to blank entries rather than errors.
func BuildPanel(p model.EvidencePartition) Panel {
	mode := SelectDisplayMode(p.Supporting, p.Contradicting)

	panel := Panel{Mode: mode}

	switch mode {
	case ModeNone:
		return panel
	case ModeSupporting:
		panel.Title = "Supporting sources"
	case ModeContradicting:
		panel.Title = "Contradicting sources"
	case ModeConflict:
		panel.Title = "Sources disagree"
	}

	panel.Supporting = buildEntries(p.Supporting)
	panel.Contradicting = buildEntries(p.Contradicting)

	if mode == ModeConflict {
		panel.Banner = &ConflictBanner{
			SupportingDomains:    leadingDomains(p.Supporting, bannerDomainLimit),
			ContradictingDomains: leadingDomains(p.Contradicting, bannerDomainLimit),
			SupportingSnippet:    firstSnippet(p.Supporting),
			ContradictingSnippet: firstSnippet(p.Contradicting),
			Reasoning:            strings.TrimSpace(p.Reasoning),
		}
	}

	return panel
}

func buildEntries(sources []model.Source) []Entry {
	if len(sources) == 0 {
		return nil
	}

	entries := make([]Entry, 0, len(sources))
	for _, s := range sources {
		e := Entry{
			URL:     s.URL,
			Domain:  s.Host(),
			Snippet: truncateSnippet(s.Snippet),
		}
		if s.Score != nil {
			e.Badge = trust.NewBadge(*s.Score, e.Domain).Compact()
		}
		entries = append(entries, e)
	}
	return entries
}

// leadingDomains returns the first n source domains in list order.
// Duplicates are kept: the banner reflects the lists as given.
func leadingDomains(sources []model.Source, n int) []string {
	var domains []string
	for _, s := range sources {
		if len(domains) >= n {
			break
		}
		if host := s.Host(); host != "" {
			domains = append(domains, host)
		}
	}
	return domains
}

func firstSnippet(sources []model.Source) string {
	for _, s := range sources {
		if snippet := truncateSnippet(s.Snippet); snippet != "" {
			return snippet
		}
	}
	return ""
}

func truncateSnippet(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= snippetPreviewLen {
		return s
	}
	cut := s[:snippetPreviewLen]
	// Break on a word boundary when one is near the limit.
	if idx := strings.LastIndex(cut, " "); idx > snippetPreviewLen/2 {
		cut = cut[:idx]
	}
	return cut + "…"
}
