package llm

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/credlab/credence/internal/model"
)

type mockProvider struct {
	name     string
	response *ReasonResponse
	err      error
	lastReq  ReasonRequest
}

func (m *mockProvider) Name() string { return m.name }

func (m *mockProvider) Reason(ctx context.Context, req ReasonRequest) (*ReasonResponse, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

func (m *mockProvider) IsAvailable(ctx context.Context) bool { return true }

func partitionFixture() model.EvidencePartition {
	return model.EvidencePartition{
		Supporting: []model.Source{
			{URL: "https://nature.com/study", Domain: "nature.com", Snippet: "The study confirms the effect."},
		},
		Contradicting: []model.Source{
			{URL: "https://example.org/rebuttal", Domain: "example.org", Snippet: "No effect was observed."},
		},
	}
}

func TestGenerateReasoning(t *testing.T) {
	mock := &mockProvider{
		name: "mock",
		response: &ReasonResponse{
			Text:  "  The supporting sources state an effect; the contradicting sources state none.  ",
			Model: "mock-model",
		},
	}
	r := &Reasoner{provider: mock, config: Config{StrictEvidence: true}}

	summary, err := r.GenerateReasoning(context.Background(), partitionFixture())
	if err != nil {
		t.Fatalf("GenerateReasoning failed: %v", err)
	}

	if !summary.Enabled {
		t.Error("expected summary to be enabled")
	}
	if summary.Provider != "mock" {
		t.Errorf("provider = %q, want mock", summary.Provider)
	}
	if summary.Model != "mock-model" {
		t.Errorf("model = %q, want mock-model", summary.Model)
	}
	if strings.HasPrefix(summary.Text, " ") || strings.HasSuffix(summary.Text, " ") {
		t.Error("expected text to be trimmed")
	}
	if len(summary.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", summary.Warnings)
	}

	// The allowlist must carry every partition URL, supporting first.
	want := []string{"https://nature.com/study", "https://example.org/rebuttal"}
	if len(mock.lastReq.SourceURLs) != len(want) {
		t.Fatalf("allowlist size = %d, want %d", len(mock.lastReq.SourceURLs), len(want))
	}
	for i, u := range want {
		if mock.lastReq.SourceURLs[i] != u {
			t.Errorf("allowlist[%d] = %q, want %q", i, mock.lastReq.SourceURLs[i], u)
		}
	}
}

func TestGenerateReasoningStrictEvidenceLeak(t *testing.T) {
	mock := &mockProvider{
		name: "mock",
		response: &ReasonResponse{
			Text: "See https://nature.com/study and also https://evil.example/fabricated.",
		},
	}
	r := &Reasoner{provider: mock, config: Config{StrictEvidence: true}}

	summary, err := r.GenerateReasoning(context.Background(), partitionFixture())
	if err != nil {
		t.Fatalf("GenerateReasoning failed: %v", err)
	}

	if len(summary.Warnings) != 1 {
		t.Fatalf("warnings = %v, want exactly one leak warning", summary.Warnings)
	}
	if !strings.Contains(summary.Warnings[0], "https://evil.example/fabricated") {
		t.Errorf("warning does not name the leaked URL: %q", summary.Warnings[0])
	}
}

func TestGenerateReasoningProviderError(t *testing.T) {
	mock := &mockProvider{name: "mock", err: fmt.Errorf("api unreachable")}
	r := &Reasoner{provider: mock, config: Config{}}

	_, err := r.GenerateReasoning(context.Background(), partitionFixture())
	if err == nil {
		t.Fatal("expected error from failing provider")
	}
	if !strings.Contains(err.Error(), "api unreachable") {
		t.Errorf("error does not wrap provider failure: %v", err)
	}
}

func TestGenerateReasoningDisabled(t *testing.T) {
	var r *Reasoner
	summary, err := r.GenerateReasoning(context.Background(), partitionFixture())
	if err != nil {
		t.Fatalf("nil reasoner should not error: %v", err)
	}
	if summary != nil {
		t.Error("nil reasoner should return nil summary")
	}
}

func TestDetectCitationLeaks(t *testing.T) {
	allowlist := []string{"https://a.example/page", "https://b.example/page/"}

	tests := []struct {
		desc      string
		text      string
		wantLeaks int
	}{
		{
			desc:      "no URLs in output",
			text:      "The sources disagree on the measured value.",
			wantLeaks: 0,
		},
		{
			desc:      "allowed URL cited",
			text:      "According to https://a.example/page the value is higher.",
			wantLeaks: 0,
		},
		{
			desc:      "allowed URL with trailing slash normalization",
			text:      "See https://b.example/page.",
			wantLeaks: 0,
		},
		{
			desc:      "single leak",
			text:      "See https://c.example/other for details.",
			wantLeaks: 1,
		},
		{
			desc:      "duplicate leak reported once",
			text:      "https://c.example/other and again https://c.example/other",
			wantLeaks: 1,
		},
		{
			desc:      "mixed allowed and leaked",
			text:      "https://a.example/page vs https://c.example/other vs https://d.example",
			wantLeaks: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			leaks := detectCitationLeaks(tt.text, allowlist)
			if len(leaks) != tt.wantLeaks {
				t.Errorf("got %d leaks %v, want %d", len(leaks), leaks, tt.wantLeaks)
			}
		})
	}
}

func TestBuildPromptNeverAssertsTruth(t *testing.T) {
	p := partitionFixture()
	prompt := BuildPrompt(p, []string{"https://nature.com/study", "https://example.org/rebuttal"})

	for _, want := range []string{
		"NEVER assert",
		"https://nature.com/study",
		"https://example.org/rebuttal",
		"The study confirms the effect.",
		"No effect was observed.",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildPromptURLCap(t *testing.T) {
	var urls []string
	for i := 0; i < 25; i++ {
		urls = append(urls, fmt.Sprintf("https://site%d.example/page", i))
	}

	prompt := BuildPrompt(model.EvidencePartition{}, urls)
	if !strings.Contains(prompt, "and 5 more URLs") {
		t.Error("expected prompt to cap the URL list at 20")
	}
	if strings.Contains(prompt, "https://site21.example") {
		t.Error("URLs past the cap must not appear in the prompt")
	}
}
