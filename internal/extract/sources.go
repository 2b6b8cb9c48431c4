// Package extract builds Source records from fetched HTML: every outbound
// link becomes a candidate source, with the text of its enclosing block as
// the snippet.
package extract

import (
	"net/url"
	"strings"

	"github.com/credlab/credence/internal/model"
	"golang.org/x/net/html"
)

// SourceExtractor extracts outbound source links from HTML
type SourceExtractor struct {
	includeSameHost bool
}

// NewSourceExtractor creates a new source extractor. Same-host links are
// skipped: they are navigation, not external evidence.
func NewSourceExtractor() *SourceExtractor {
	return &SourceExtractor{}
}

// Extract extracts outbound sources from HTML content
func (e *SourceExtractor) Extract(htmlContent string, pageURL string) ([]model.Source, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil, err
	}

	baseURL, err := url.Parse(pageURL)
	if err != nil {
		return nil, err
	}

	var sources []model.Source
	var walk func(*html.Node)

	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			case "a":
				if s, ok := e.sourceFromAnchor(n, baseURL); ok {
					sources = append(sources, s)
				}
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)

	return dedupeSources(sources), nil
}

func (e *SourceExtractor) sourceFromAnchor(n *html.Node, base *url.URL) (model.Source, bool) {
	href := ""
	for _, attr := range n.Attr {
		if attr.Key == "href" {
			href = strings.TrimSpace(attr.Val)
			break
		}
	}
	if href == "" {
		return model.Source{}, false
	}

	resolved := resolveURL(base, href)
	if resolved == "" {
		return model.Source{}, false
	}

	parsed, err := url.Parse(resolved)
	if err != nil {
		return model.Source{}, false
	}
	if !e.includeSameHost && parsed.Host == base.Host {
		return model.Source{}, false
	}

	return model.Source{
		URL:     resolved,
		Domain:  strings.ToLower(parsed.Host),
		Snippet: snippetFor(n),
	}, true
}

// snippetFor returns the text of the anchor's nearest enclosing block,
// falling back to the anchor text itself.
func snippetFor(n *html.Node) string {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type != html.ElementNode {
			continue
		}
		switch p.Data {
		case "p", "li", "td", "blockquote", "figcaption", "dd":
			return collapseSpace(nodeText(p))
		case "body", "html":
			return collapseSpace(nodeText(n))
		}
	}
	return collapseSpace(nodeText(n))
}

// nodeText concatenates the visible text under a node
func nodeText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript":
				return
			}
		}
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
			buf.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	return buf.String()
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// resolveURL resolves a relative URL against a base URL, skipping
// non-navigable schemes and fragments.
func resolveURL(base *url.URL, href string) string {
	if strings.HasPrefix(href, "#") {
		return ""
	}
	if strings.HasPrefix(href, "javascript:") || strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "tel:") {
		return ""
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}

	resolved := base.ResolveReference(parsed)

	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}

	resolved.Fragment = ""
	return resolved.String()
}

// dedupeSources keeps the first occurrence of each URL
func dedupeSources(sources []model.Source) []model.Source {
	seen := make(map[string]bool, len(sources))
	out := sources[:0]
	for _, s := range sources {
		if seen[s.URL] {
			continue
		}
		seen[s.URL] = true
		out = append(out, s)
	}
	return out
}
