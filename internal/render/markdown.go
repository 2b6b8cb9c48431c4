package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/credlab/credence/internal/compare"
	"github.com/credlab/credence/internal/model"
)

// MarkdownReport renders an audit report as a markdown document.
func MarkdownReport(report *model.AuditReport, includeFooter bool) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Source Audit: %s\n\n", report.Subject)
	fmt.Fprintf(&sb, "- **URL:** %s\n", report.SourceURL)
	fmt.Fprintf(&sb, "- **Fetched:** %s\n", report.FetchedAt.Format("2006-01-02 15:04 MST"))
	fmt.Fprintf(&sb, "- **Sources:** %d (%d accessible, %d dead, %d stale)\n\n",
		report.Stats.Total, report.Stats.Accessible, report.Stats.Dead, report.Stats.Stale)

	if len(report.Sources) == 0 {
		sb.WriteString("No outbound sources found on this page.\n")
	} else {
		sb.WriteString("| Badge | Tier | Category | Domain | Status |\n")
		sb.WriteString("|-------|------|----------|--------|--------|\n")
		for _, s := range report.Sources {
			category := s.Category
			if category == "" {
				category = "-"
			}
			fmt.Fprintf(&sb, "| %d%% | %s | %s | %s | %s |\n",
				s.Percent, s.Tier, category, s.Source.Host(), verificationStatus(s.Verification))
		}
	}

	if report.Reasoning != nil && report.Reasoning.Text != "" {
		sb.WriteString("\n## Reasoning\n\n")
		sb.WriteString(report.Reasoning.Text)
		sb.WriteString("\n")
		for _, w := range report.Reasoning.Warnings {
			fmt.Fprintf(&sb, "\n> ⚠ %s\n", w)
		}
	}

	if includeFooter {
		sb.WriteString("\n---\n*Generated by credence*\n")
	}

	return sb.String()
}

// MarkdownPanel renders a comparison panel as markdown. Mode none yields
// an empty string.
func MarkdownPanel(panel compare.Panel) string {
	if panel.Mode == compare.ModeNone {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s\n\n", panel.Title)

	if b := panel.Banner; b != nil {
		fmt.Fprintf(&sb, "> **Supports:** %s\n", strings.Join(b.SupportingDomains, ", "))
		if b.SupportingSnippet != "" {
			fmt.Fprintf(&sb, "> %q\n", b.SupportingSnippet)
		}
		fmt.Fprintf(&sb, ">\n> **Disputes:** %s\n", strings.Join(b.ContradictingDomains, ", "))
		if b.ContradictingSnippet != "" {
			fmt.Fprintf(&sb, "> %q\n", b.ContradictingSnippet)
		}
		if b.Reasoning != "" {
			fmt.Fprintf(&sb, ">\n> %s\n", b.Reasoning)
		}
		sb.WriteString("\n")
	}

	writeEntryList(&sb, "Supporting", panel.Supporting)
	writeEntryList(&sb, "Contradicting", panel.Contradicting)

	return sb.String()
}

func writeEntryList(sb *strings.Builder, heading string, entries []compare.Entry) {
	if len(entries) == 0 {
		return
	}
	fmt.Fprintf(sb, "### %s (%d)\n\n", heading, len(entries))
	for _, e := range entries {
		line := "- "
		if e.Badge != "" {
			line += e.Badge + " "
		}
		line += fmt.Sprintf("[%s](%s)", e.Domain, e.URL)
		sb.WriteString(line + "\n")
		if e.Snippet != "" {
			fmt.Fprintf(sb, "  - %s\n", e.Snippet)
		}
	}
	sb.WriteString("\n")
}

// WriteMarkdown renders the report and writes it to path, creating parent
// directories as needed.
func WriteMarkdown(report *model.AuditReport, path string, includeFooter bool) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(MarkdownReport(report, includeFooter)), 0o644); err != nil {
		return fmt.Errorf("write markdown report: %w", err)
	}
	return nil
}
