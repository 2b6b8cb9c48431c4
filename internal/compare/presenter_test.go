package compare

import (
	"strings"
	"testing"

	"github.com/credlab/credence/internal/model"
)

func score(f float64) *float64 { return &f }

func TestSelectDisplayMode(t *testing.T) {
	a := model.Source{URL: "https://nature.com/a", Snippet: "study shows"}
	b := model.Source{URL: "https://example.org/b", Snippet: "disputes the finding"}

	tests := []struct {
		supporting    []model.Source
		contradicting []model.Source
		expected      Mode
		desc          string
	}{
		{nil, nil, ModeNone, "both empty renders nothing"},
		{[]model.Source{a}, nil, ModeSupporting, "only supporting"},
		{nil, []model.Source{b}, ModeContradicting, "only contradicting"},
		{[]model.Source{a}, []model.Source{b}, ModeConflict, "both sides present"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			if got := SelectDisplayMode(tt.supporting, tt.contradicting); got != tt.expected {
				t.Errorf("SelectDisplayMode = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestBuildPanel_None(t *testing.T) {
	panel := BuildPanel(model.EvidencePartition{})

	if panel.Mode != ModeNone {
		t.Fatalf("mode = %v, want ModeNone", panel.Mode)
	}
	if panel.Banner != nil || panel.Supporting != nil || panel.Contradicting != nil || panel.Title != "" {
		t.Error("empty partition must produce an empty panel")
	}
}

func TestBuildPanel_SingleList(t *testing.T) {
	partition := model.EvidencePartition{
		Supporting: []model.Source{
			{URL: "https://www.nature.com/articles/x", Snippet: "The study confirms the claim.", Score: score(0.92)},
			{URL: "https://en.wikipedia.org/wiki/Topic", Snippet: "Background summary."},
		},
	}

	panel := BuildPanel(partition)

	if panel.Mode != ModeSupporting {
		t.Fatalf("mode = %v, want ModeSupporting", panel.Mode)
	}
	if panel.Banner != nil {
		t.Error("single-list mode must not carry a banner")
	}
	if len(panel.Supporting) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(panel.Supporting))
	}

	first := panel.Supporting[0]
	if first.Domain != "www.nature.com" {
		t.Errorf("domain = %q, want www.nature.com", first.Domain)
	}
	if first.Badge != "● 92%" {
		t.Errorf("badge = %q, want compact badge for scored source", first.Badge)
	}

	// Unscored sources carry no badge.
	if panel.Supporting[1].Badge != "" {
		t.Errorf("unscored source got badge %q", panel.Supporting[1].Badge)
	}
}

func TestBuildPanel_Conflict(t *testing.T) {
	partition := model.EvidencePartition{
		Supporting: []model.Source{
			{URL: "https://www.nature.com/articles/x", Snippet: "Supports the claim."},
			{URL: "https://arxiv.org/abs/1", Snippet: "Preprint agrees."},
			{URL: "https://reuters.com/article", Snippet: "Coverage agrees."},
		},
		Contradicting: []model.Source{
			{URL: "https://example-blog.net/post", Snippet: "Disputes the claim."},
			{URL: "https://other.example/item"},
		},
		Reasoning: "Sources disagree on the effect size.",
	}

	panel := BuildPanel(partition)

	if panel.Mode != ModeConflict {
		t.Fatalf("mode = %v, want ModeConflict", panel.Mode)
	}
	if panel.Banner == nil {
		t.Fatal("conflict mode must carry a banner")
	}

	// At most two domains per side, in list order.
	if len(panel.Banner.SupportingDomains) != 2 {
		t.Errorf("banner supporting domains = %v, want first 2", panel.Banner.SupportingDomains)
	}
	if panel.Banner.SupportingDomains[0] != "www.nature.com" || panel.Banner.SupportingDomains[1] != "arxiv.org" {
		t.Errorf("banner domains out of order: %v", panel.Banner.SupportingDomains)
	}
	if len(panel.Banner.ContradictingDomains) != 2 {
		t.Errorf("banner contradicting domains = %v, want 2", panel.Banner.ContradictingDomains)
	}

	if panel.Banner.SupportingSnippet != "Supports the claim." {
		t.Errorf("supporting snippet = %q", panel.Banner.SupportingSnippet)
	}
	if panel.Banner.ContradictingSnippet != "Disputes the claim." {
		t.Errorf("contradicting snippet = %q", panel.Banner.ContradictingSnippet)
	}
	if panel.Banner.Reasoning != "Sources disagree on the effect size." {
		t.Errorf("reasoning = %q", panel.Banner.Reasoning)
	}

	// Full lists render below the banner: intentional duplication.
	if len(panel.Supporting) != 3 || len(panel.Contradicting) != 2 {
		t.Errorf("full lists missing: %d supporting, %d contradicting", len(panel.Supporting), len(panel.Contradicting))
	}
}

func TestBuildPanel_MalformedFieldsDegradeBlank(t *testing.T) {
	partition := model.EvidencePartition{
		Supporting: []model.Source{
			{URL: ""},                   // No URL, no domain
			{URL: "not a real ::url"},   // Unparseable URL
			{URL: "https://ok.example"}, // No snippet
		},
		Contradicting: []model.Source{
			{URL: "https://c.example", Snippet: "   "},
		},
	}

	panel := BuildPanel(partition)

	if panel.Mode != ModeConflict {
		t.Fatalf("mode = %v, want ModeConflict", panel.Mode)
	}
	for i, e := range panel.Supporting {
		if e.Badge != "" {
			t.Errorf("entry %d: badge %q for unscored source", i, e.Badge)
		}
	}
	if panel.Banner.SupportingSnippet != "" {
		t.Errorf("blank snippets must stay blank, got %q", panel.Banner.SupportingSnippet)
	}
	if panel.Banner.ContradictingSnippet != "" {
		t.Errorf("whitespace snippet must degrade to blank, got %q", panel.Banner.ContradictingSnippet)
	}
}

func TestTruncateSnippet(t *testing.T) {
	long := strings.Repeat("evidence ", 40) // well over the preview limit

	got := truncateSnippet(long)
	if len(got) > snippetPreviewLen+len("…") {
		t.Errorf("truncated snippet too long: %d chars", len(got))
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("truncated snippet missing ellipsis: %q", got)
	}

	short := "fits fine"
	if truncateSnippet(short) != short {
		t.Errorf("short snippet must pass through unchanged")
	}
}
