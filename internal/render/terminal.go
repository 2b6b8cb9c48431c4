// Package render paints badges, comparison panels, and audit reports.
// The terminal renderer uses pterm; markdown and JSON renderers write
// plain files. Rendering never changes what was classified, only how it
// looks.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pterm/pterm"

	"github.com/credlab/credence/internal/compare"
	"github.com/credlab/credence/internal/model"
	"github.com/credlab/credence/internal/trust"
)

// Terminal renders to a writer using pterm styling.
type Terminal struct {
	out   io.Writer
	color bool
}

// NewTerminal creates a terminal renderer. With color disabled all pterm
// styling is suppressed and output degrades to plain text.
func NewTerminal(out io.Writer, color bool) *Terminal {
	if out == nil {
		out = os.Stdout
	}
	if !color {
		pterm.DisableColor()
	}
	return &Terminal{out: out, color: color}
}

// accentStyle maps a tier's accent hint to a pterm style.
func accentStyle(accent string) *pterm.Style {
	switch accent {
	case "green":
		return pterm.NewStyle(pterm.FgGreen)
	case "cyan":
		return pterm.NewStyle(pterm.FgCyan)
	case "yellow":
		return pterm.NewStyle(pterm.FgYellow)
	case "magenta":
		return pterm.NewStyle(pterm.FgMagenta)
	case "red":
		return pterm.NewStyle(pterm.FgRed)
	default:
		return pterm.NewStyle(pterm.FgDefault)
	}
}

// RenderBadge prints the full badge form with its tier explanation.
func (t *Terminal) RenderBadge(badge trust.Badge, domain string) {
	style := accentStyle(badge.Tier.Accent)

	fmt.Fprintf(t.out, "%s  %s\n", style.Sprint(badge.Full()), pterm.Gray(domain))
	fmt.Fprintf(t.out, "   %s\n", badge.Tier.Explanation)
}

// RenderPanel prints a comparison panel. Mode none prints nothing at all.
func (t *Terminal) RenderPanel(panel compare.Panel) {
	if panel.Mode == compare.ModeNone {
		return
	}

	if panel.Banner != nil {
		t.renderBanner(panel)
	} else {
		pterm.DefaultSection.WithWriter(t.out).Println(panel.Title)
	}

	t.renderEntryList("Supporting", panel.Supporting)
	t.renderEntryList("Contradicting", panel.Contradicting)
}

func (t *Terminal) renderBanner(panel compare.Panel) {
	b := panel.Banner

	var sb strings.Builder
	sb.WriteString(sideLine("Supports", b.SupportingDomains, b.SupportingSnippet))
	sb.WriteString("\n")
	sb.WriteString(sideLine("Disputes", b.ContradictingDomains, b.ContradictingSnippet))
	if b.Reasoning != "" {
		sb.WriteString("\n\n")
		sb.WriteString(pterm.Gray(b.Reasoning))
	}

	box := pterm.DefaultBox.
		WithTitle(panel.Title).
		WithTitleTopCenter().
		WithLeftPadding(2).
		WithRightPadding(2).
		WithBoxStyle(pterm.NewStyle(pterm.FgYellow)).
		WithWriter(t.out)

	box.Println(sb.String())
}

func sideLine(verb string, domains []string, snippet string) string {
	who := strings.Join(domains, ", ")
	if who == "" {
		who = "(unknown)"
	}
	line := fmt.Sprintf("%s: %s", verb, pterm.Cyan(who))
	if snippet != "" {
		line += fmt.Sprintf("\n  %q", snippet)
	}
	return line
}

func (t *Terminal) renderEntryList(heading string, entries []compare.Entry) {
	if len(entries) == 0 {
		return
	}

	fmt.Fprintf(t.out, "\n%s (%d)\n", pterm.Bold.Sprint(heading), len(entries))
	for _, e := range entries {
		line := "  "
		if e.Badge != "" {
			line += e.Badge + "  "
		}
		line += pterm.Cyan(e.Domain)
		if e.URL != "" {
			line += "  " + pterm.Gray(e.URL)
		}
		fmt.Fprintln(t.out, line)
		if e.Snippet != "" {
			fmt.Fprintf(t.out, "      %s\n", e.Snippet)
		}
	}
}

// RenderAuditReport prints the full audit: header, per-source table, and
// summary stats.
func (t *Terminal) RenderAuditReport(report *model.AuditReport) {
	pterm.DefaultHeader.
		WithWriter(t.out).
		WithBackgroundStyle(pterm.NewStyle(pterm.BgCyan)).
		WithTextStyle(pterm.NewStyle(pterm.FgBlack)).
		Printfln("Source Audit: %s", report.Subject)

	fmt.Fprintf(t.out, "\nURL: %s\nFetched: %s\n\n", report.SourceURL, report.FetchedAt.Format("2006-01-02 15:04 MST"))

	if len(report.Sources) == 0 {
		pterm.Warning.WithWriter(t.out).Println("No outbound sources found on this page")
		return
	}

	rows := pterm.TableData{{"Badge", "Tier", "Category", "Domain", "Status"}}
	for _, s := range report.Sources {
		badge := fmt.Sprintf("● %d%%", s.Percent)
		category := s.Category
		if category == "" {
			category = "-"
		}
		rows = append(rows, []string{badge, s.Tier, category, s.Source.Host(), verificationStatus(s.Verification)})
	}

	table := pterm.DefaultTable.WithWriter(t.out).WithHasHeader().WithData(rows)
	_ = table.Render()

	fmt.Fprintf(t.out, "\n%d sources: %d accessible, %d dead, %d stale\n",
		report.Stats.Total, report.Stats.Accessible, report.Stats.Dead, report.Stats.Stale)

	if report.Reasoning != nil && report.Reasoning.Text != "" {
		pterm.DefaultSection.WithWriter(t.out).Println("Reasoning")
		fmt.Fprintln(t.out, report.Reasoning.Text)
		for _, w := range report.Reasoning.Warnings {
			pterm.Warning.WithWriter(t.out).Println(w)
		}
	}
}

func verificationStatus(v *model.VerificationResult) string {
	switch {
	case v == nil:
		return "unverified"
	case v.IsDead:
		return "dead"
	case !v.IsAccessible:
		return "unreachable"
	case v.IsVeryStale:
		return "very stale"
	case v.IsStale:
		return "stale"
	default:
		return "ok"
	}
}
