package llm

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/credlab/credence/internal/model"
)

// Reasoner wraps a provider with strict-evidence enforcement. Its output
// is presentation text only: it never affects classification, scoring, or
// display-mode selection.
type Reasoner struct {
	provider Provider
	config   Config
}

// NewReasoner creates a reasoner from config. Returns (nil, nil) when no
// provider is configured.
func NewReasoner(config Config) (*Reasoner, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, nil
	}

	return &Reasoner{
		provider: provider,
		config:   config,
	}, nil
}

// IsEnabled reports whether a provider is configured
func (r *Reasoner) IsEnabled() bool {
	return r != nil && r.provider != nil
}

// GenerateReasoning produces a reasoning summary for an evidence
// partition. With StrictEvidence enabled, any URL in the output that is
// not in the partition's source list is recorded as a citation-leak
// warning.
func (r *Reasoner) GenerateReasoning(ctx context.Context, partition model.EvidencePartition) (*model.ReasoningSummary, error) {
	if !r.IsEnabled() {
		return nil, nil
	}

	allowlist := collectURLs(partition)

	resp, err := r.provider.Reason(ctx, ReasonRequest{
		Partition:  partition,
		SourceURLs: allowlist,
		Model:      r.config.Model,
		MaxTokens:  r.config.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("generate reasoning: %w", err)
	}

	summary := &model.ReasoningSummary{
		Enabled:        true,
		Provider:       r.provider.Name(),
		Model:          resp.Model,
		StrictEvidence: r.config.StrictEvidence,
		Text:           strings.TrimSpace(resp.Text),
	}

	if r.config.StrictEvidence {
		summary.Warnings = detectCitationLeaks(summary.Text, allowlist)
	}

	return summary, nil
}

// SummarizeAudit produces a reasoning summary for an audit report: a
// short description of the page's citation health. The same allowlist
// and leak detection apply.
func (r *Reasoner) SummarizeAudit(ctx context.Context, report *model.AuditReport) (*model.ReasoningSummary, error) {
	if !r.IsEnabled() {
		return nil, nil
	}

	allowlist := make([]string, 0, len(report.Sources))
	for _, s := range report.Sources {
		allowlist = append(allowlist, s.Source.URL)
	}

	resp, err := r.provider.Reason(ctx, ReasonRequest{
		SourceURLs: allowlist,
		Prompt:     buildAuditPrompt(report, allowlist),
		Model:      r.config.Model,
		MaxTokens:  r.config.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("summarize audit: %w", err)
	}

	summary := &model.ReasoningSummary{
		Enabled:        true,
		Provider:       r.provider.Name(),
		Model:          resp.Model,
		StrictEvidence: r.config.StrictEvidence,
		Text:           strings.TrimSpace(resp.Text),
	}

	if r.config.StrictEvidence {
		summary.Warnings = detectCitationLeaks(summary.Text, allowlist)
	}

	return summary, nil
}

func buildAuditPrompt(report *model.AuditReport, allowlist []string) string {
	prompt := fmt.Sprintf(`You are summarizing the citation health of a page. You describe what was found - you NEVER assert whether the page itself is true or correct.

CRITICAL RULES:
1. You MUST ONLY cite URLs from this allowed list:
%s

2. DO NOT infer, speculate, or cite external sources beyond this list.
3. Describe counts and verification states; never rule on the page's claims.

Page: %s
Outbound sources: %d (%d accessible, %d dead, %d stale)

Source tiers:
`, joinURLs(allowlist), report.Subject, report.Stats.Total, report.Stats.Accessible, report.Stats.Dead, report.Stats.Stale)

	count := 0
	for _, s := range report.Sources {
		prompt += fmt.Sprintf("- %s: %s (%d%%)\n", s.Source.Host(), s.Tier, s.Percent)
		count++
		if count >= 10 {
			break
		}
	}

	prompt += "\nProvide a 2-3 sentence summary of this page's citation health."
	return prompt
}

func collectURLs(partition model.EvidencePartition) []string {
	urls := make([]string, 0, len(partition.Supporting)+len(partition.Contradicting))
	for _, s := range partition.Supporting {
		urls = append(urls, s.URL)
	}
	for _, s := range partition.Contradicting {
		urls = append(urls, s.URL)
	}
	return urls
}

var urlPattern = regexp.MustCompile(`https?://[^\s)\]>"']+`)

// detectCitationLeaks finds URLs in the output that are not in the
// allowlist. Trailing punctuation is stripped before comparison.
func detectCitationLeaks(text string, allowlist []string) []string {
	allowed := make(map[string]bool, len(allowlist))
	for _, u := range allowlist {
		allowed[strings.TrimRight(u, "/.")] = true
	}

	var warnings []string
	seen := make(map[string]bool)
	for _, match := range urlPattern.FindAllString(text, -1) {
		cited := strings.TrimRight(match, "/.,;")
		if allowed[cited] || seen[cited] {
			continue
		}
		seen[cited] = true
		warnings = append(warnings, fmt.Sprintf("cited URL not in evidence list: %s", cited))
	}

	return warnings
}
