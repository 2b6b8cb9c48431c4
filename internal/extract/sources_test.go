package extract

import (
	"strings"
	"testing"
)

func TestSourceExtractor_BasicExtraction(t *testing.T) {
	page := `
	<html>
	<body>
		<p>A recent study <a href="https://www.nature.com/articles/x1">published in Nature</a> confirms the effect.</p>
		<p>Coverage by <a href="https://reuters.com/article/y2">Reuters</a> summarized the findings.</p>
		<p>See the <a href="/internal/about">about page</a> for details.</p>
	</body>
	</html>
	`

	extractor := NewSourceExtractor()
	sources, err := extractor.Extract(page, "https://myblog.example/post/1")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if len(sources) != 2 {
		t.Fatalf("expected 2 outbound sources, got %d: %+v", len(sources), sources)
	}

	first := sources[0]
	if first.Domain != "www.nature.com" {
		t.Errorf("domain = %q, want www.nature.com", first.Domain)
	}
	if !strings.Contains(first.Snippet, "confirms the effect") {
		t.Errorf("snippet should carry the enclosing paragraph, got %q", first.Snippet)
	}

	if sources[1].Domain != "reuters.com" {
		t.Errorf("second domain = %q, want reuters.com", sources[1].Domain)
	}
}

func TestSourceExtractor_SkipsSameHostAndNonNavigable(t *testing.T) {
	page := `
	<html><body>
		<p><a href="https://myblog.example/other">same host</a></p>
		<p><a href="#section">anchor</a></p>
		<p><a href="javascript:void(0)">js</a></p>
		<p><a href="mailto:a@b.example">mail</a></p>
		<p><a href="ftp://files.example/x">ftp</a></p>
	</body></html>
	`

	extractor := NewSourceExtractor()
	sources, err := extractor.Extract(page, "https://myblog.example/post")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if len(sources) != 0 {
		t.Errorf("expected no sources, got %+v", sources)
	}
}

func TestSourceExtractor_ResolvesRelativeAgainstRedirectHost(t *testing.T) {
	page := `<html><body><p><a href="//cdn.example/asset">protocol relative</a></p></body></html>`

	extractor := NewSourceExtractor()
	sources, err := extractor.Extract(page, "https://site.example/page")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if len(sources) != 1 || sources[0].URL != "https://cdn.example/asset" {
		t.Errorf("protocol-relative URL not resolved: %+v", sources)
	}
}

func TestSourceExtractor_Dedupes(t *testing.T) {
	page := `
	<html><body>
		<p>First mention of <a href="https://arxiv.org/abs/1">the preprint</a>.</p>
		<p>Second mention of <a href="https://arxiv.org/abs/1">the same preprint</a>.</p>
	</body></html>
	`

	extractor := NewSourceExtractor()
	sources, err := extractor.Extract(page, "https://site.example/")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if len(sources) != 1 {
		t.Fatalf("expected 1 deduped source, got %d", len(sources))
	}
	if !strings.Contains(sources[0].Snippet, "First mention") {
		t.Errorf("dedupe should keep the first occurrence, got snippet %q", sources[0].Snippet)
	}
}

func TestSourceExtractor_SnippetFallsBackToAnchorText(t *testing.T) {
	page := `<html><body><a href="https://who.int/report">WHO annual report</a></body></html>`

	extractor := NewSourceExtractor()
	sources, err := extractor.Extract(page, "https://site.example/")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if len(sources) != 1 {
		t.Fatalf("expected 1 source, got %d", len(sources))
	}
	if sources[0].Snippet != "WHO annual report" {
		t.Errorf("snippet = %q, want anchor text fallback", sources[0].Snippet)
	}
}
