package render

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/credlab/credence/internal/compare"
	"github.com/credlab/credence/internal/model"
)

func reportFixture() *model.AuditReport {
	age := 30
	return &model.AuditReport{
		Subject:   "test page",
		SourceURL: "https://example.org/test-page",
		FetchedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Sources: []model.AuditedSource{
			{
				Source:   model.Source{URL: "https://www.nasa.gov/news", Domain: "www.nasa.gov"},
				Tier:     "Authoritative",
				Percent:  95,
				Category: "Government",
				Verification: &model.VerificationResult{
					URL: "https://www.nasa.gov/news", IsAccessible: true, StatusCode: 200, AgeDays: &age,
				},
			},
			{
				Source:  model.Source{URL: "https://gone.example/old", Domain: "gone.example"},
				Tier:    "Low Quality",
				Percent: 20,
				Verification: &model.VerificationResult{
					URL: "https://gone.example/old", StatusCode: 404, IsDead: true,
				},
			},
		},
		Stats: model.AuditStats{Total: 2, Accessible: 1, Dead: 1},
	}
}

func TestMarkdownReport(t *testing.T) {
	md := MarkdownReport(reportFixture(), true)

	for _, want := range []string{
		"# Source Audit: test page",
		"https://example.org/test-page",
		"| 95% | Authoritative | Government | www.nasa.gov | ok |",
		"| 20% | Low Quality | - | gone.example | dead |",
		"2 (1 accessible, 1 dead, 0 stale)",
		"*Generated by credence*",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q\n---\n%s", want, md)
		}
	}
}

func TestMarkdownReportNoFooter(t *testing.T) {
	md := MarkdownReport(reportFixture(), false)
	if strings.Contains(md, "Generated by credence") {
		t.Error("footer rendered despite being disabled")
	}
}

func TestMarkdownReportReasoning(t *testing.T) {
	r := reportFixture()
	r.Reasoning = &model.ReasoningSummary{
		Enabled: true,
		Text:    "The supporting sources state one thing.",
		Warnings: []string{
			"cited URL not in evidence list: https://evil.example",
		},
	}

	md := MarkdownReport(r, false)
	if !strings.Contains(md, "## Reasoning") {
		t.Error("missing reasoning section")
	}
	if !strings.Contains(md, "https://evil.example") {
		t.Error("missing citation-leak warning")
	}
}

func TestMarkdownPanel(t *testing.T) {
	score := 0.92
	panel := compare.BuildPanel(model.EvidencePartition{
		Supporting: []model.Source{
			{URL: "https://nature.com/a", Domain: "nature.com", Snippet: "Confirmed.", Score: &score},
		},
		Contradicting: []model.Source{
			{URL: "https://example.org/b", Domain: "example.org", Snippet: "Disputed."},
		},
		Reasoning: "Sources differ on methodology.",
	})

	md := MarkdownPanel(panel)
	for _, want := range []string{
		"## Sources disagree",
		"**Supports:** nature.com",
		"**Disputes:** example.org",
		"Sources differ on methodology.",
		"### Supporting (1)",
		"● 92% [nature.com](https://nature.com/a)",
		"### Contradicting (1)",
		"[example.org](https://example.org/b)",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("panel markdown missing %q\n---\n%s", want, md)
		}
	}
}

func TestMarkdownPanelEmpty(t *testing.T) {
	panel := compare.BuildPanel(model.EvidencePartition{})
	if md := MarkdownPanel(panel); md != "" {
		t.Errorf("empty partition should render nothing, got %q", md)
	}
}

func TestWriteJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "report.json")

	if err := WriteJSON(reportFixture(), path); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	var decoded model.AuditReport
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Subject != "test page" {
		t.Errorf("subject = %q, want test page", decoded.Subject)
	}
	if len(decoded.Sources) != 2 {
		t.Errorf("sources = %d, want 2", len(decoded.Sources))
	}
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintJSON(map[string]int{"a": 1}, &buf); err != nil {
		t.Fatalf("PrintJSON failed: %v", err)
	}
	if !strings.Contains(buf.String(), `"a": 1`) {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestVerificationStatus(t *testing.T) {
	tests := []struct {
		desc string
		v    *model.VerificationResult
		want string
	}{
		{"nil verification", nil, "unverified"},
		{"dead link", &model.VerificationResult{IsDead: true}, "dead"},
		{"unreachable", &model.VerificationResult{IsAccessible: false}, "unreachable"},
		{"very stale outranks stale", &model.VerificationResult{IsAccessible: true, IsStale: true, IsVeryStale: true}, "very stale"},
		{"stale", &model.VerificationResult{IsAccessible: true, IsStale: true}, "stale"},
		{"healthy", &model.VerificationResult{IsAccessible: true}, "ok"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			if got := verificationStatus(tt.v); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
