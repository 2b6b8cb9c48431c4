package model

import (
	"net/url"
	"strings"
)

// Source represents an external evidence record: a URL, a snippet of the
// text that cited it, and an optional reputation score in [0,1].
type Source struct {
	URL     string   `json:"url"`
	Domain  string   `json:"domain,omitempty"`  // Hostname, lowercase; derived from URL when empty
	Snippet string   `json:"snippet,omitempty"` // Text excerpt around the citation
	Score   *float64 `json:"score,omitempty"`   // Reputation score in [0,1], nil when unscored
}

// Host returns the source's hostname, lowercase and without port.
// Falls back to parsing the URL when Domain was not supplied.
func (s Source) Host() string {
	host := s.Domain
	if host == "" {
		if parsed, err := url.Parse(s.URL); err == nil {
			host = parsed.Host
		}
	}
	if idx := strings.Index(host, ":"); idx > 0 {
		host = host[:idx]
	}
	return strings.ToLower(host)
}

// EvidencePartition holds the supporting and contradicting sources for a
// single claim, already labeled by an external verification step, plus an
// optional free-text reasoning string. Built per evaluation, consumed once.
type EvidencePartition struct {
	Supporting    []Source `json:"supporting"`
	Contradicting []Source `json:"contradicting"`
	Reasoning     string   `json:"reasoning,omitempty"`
}

// HasConflict reports whether both sides of the partition are non-empty.
func (p EvidencePartition) HasConflict() bool {
	return len(p.Supporting) > 0 && len(p.Contradicting) > 0
}

// IsEmpty reports whether the partition carries no sources at all.
func (p EvidencePartition) IsEmpty() bool {
	return len(p.Supporting) == 0 && len(p.Contradicting) == 0
}
