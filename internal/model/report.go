package model

import "time"

// FetchMeta contains HTTP metadata from fetching a page
type FetchMeta struct {
	StatusCode   int               `json:"status_code"`
	ContentType  string            `json:"content_type,omitempty"`
	LastModified string            `json:"last_modified,omitempty"`
	ETag         string            `json:"etag,omitempty"`
	Headers      map[string]string `json:"headers,omitempty"`
}

// VerificationResult contains the result of verifying a single source URL
type VerificationResult struct {
	URL          string     `json:"url"`
	IsAccessible bool       `json:"is_accessible"`
	StatusCode   int        `json:"status_code,omitempty"`
	LastModified *time.Time `json:"last_modified,omitempty"`
	AgeDays      *int       `json:"age_days,omitempty"`
	IsStale      bool       `json:"is_stale"`      // > 1 year old
	IsVeryStale  bool       `json:"is_very_stale"` // > 3 years old
	IsDead       bool       `json:"is_dead"`       // 404, 410, or timeout
	RedirectURL  string     `json:"redirect_url,omitempty"`
	Error        string     `json:"error,omitempty"`
}

// AuditedSource pairs a source with its verification outcome and badge
type AuditedSource struct {
	Source       Source              `json:"source"`
	Verification *VerificationResult `json:"verification,omitempty"`
	Tier         string              `json:"tier"`               // Trust tier label
	Percent      int                 `json:"percent"`            // Rounded score percentage
	Category     string              `json:"category,omitempty"` // Topical category, if inferred
}

// AuditStats summarizes an audit run
type AuditStats struct {
	Total      int `json:"total"`
	Accessible int `json:"accessible"`
	Dead       int `json:"dead"`
	Stale      int `json:"stale"`
}

// AuditReport is the complete output of auditing a page's outbound sources
type AuditReport struct {
	Subject   string          `json:"subject"`
	SourceURL string          `json:"source_url"`
	FetchedAt time.Time       `json:"fetched_at"`
	FetchMeta FetchMeta       `json:"fetch_meta"`
	Sources   []AuditedSource `json:"sources"`
	Stats     AuditStats      `json:"stats"`

	Reasoning *ReasoningSummary `json:"reasoning,omitempty"` // Optional LLM output, never affects badges
}

// ReasoningSummary contains optional LLM-generated reasoning.
// It never affects classification, scoring, or display-mode selection.
type ReasoningSummary struct {
	Enabled        bool     `json:"enabled"`
	Provider       string   `json:"provider,omitempty"`
	Model          string   `json:"model,omitempty"`
	StrictEvidence bool     `json:"strict_evidence"`
	Text           string   `json:"text,omitempty"`
	Warnings       []string `json:"warnings,omitempty"` // e.g., citation leaks detected
}
