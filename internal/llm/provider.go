package llm

import (
	"context"
	"fmt"

	"github.com/credlab/credence/internal/model"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Reason generates a reasoning paragraph for an evidence partition
	Reason(ctx context.Context, req ReasonRequest) (*ReasonResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// ReasonRequest contains the input for LLM reasoning generation
type ReasonRequest struct {
	// Partition is the evidence partition to explain
	Partition model.EvidencePartition

	// SourceURLs is the STRICT allowlist of URLs the LLM can cite.
	// This prevents hallucination: the LLM cannot reference any URL
	// not in this list.
	SourceURLs []string

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// ReasonResponse contains the LLM's reasoning output
type ReasonResponse struct {
	// Text is the generated reasoning paragraph
	Text string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests, in seconds
	Timeout int

	// StrictEvidence enforces the URL allowlist (should always be true)
	StrictEvidence bool

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:       "", // Disabled by default
		Timeout:        30,
		StrictEvidence: true,
		MaxTokens:      1000,
	}
}

// BuildPrompt constructs the default reasoning prompt with strict
// evidence mode. The model describes the disagreement; it never rules on
// which side is right.
func BuildPrompt(partition model.EvidencePartition, sourceURLs []string) string {
	prompt := fmt.Sprintf(`You are explaining a disagreement between cited sources. You describe what each side says - you NEVER assert which side is true or correct.

CRITICAL RULES:
1. You MUST ONLY cite URLs from this allowed list:
%s

2. DO NOT infer, speculate, or cite external sources beyond this list.
3. If the snippets are insufficient, state that explicitly.
4. Use phrases like "the supporting sources state..." and "the contradicting sources state..." - never "the truth is".

Evidence summary:
- Supporting sources: %d
- Contradicting sources: %d
`, joinURLs(sourceURLs), len(partition.Supporting), len(partition.Contradicting))

	// Include up to three snippets per side for grounding.
	prompt += snippetSection("Supporting snippets", partition.Supporting)
	prompt += snippetSection("Contradicting snippets", partition.Contradicting)

	prompt += "\nProvide a 2-3 sentence explanation of the disagreement, grounded only in the snippets above."

	return prompt
}

func snippetSection(title string, sources []model.Source) string {
	section := "\n" + title + ":\n"
	count := 0
	for _, s := range sources {
		if s.Snippet == "" {
			continue
		}
		section += fmt.Sprintf("- [%s] %s\n", s.Host(), s.Snippet)
		count++
		if count >= 3 {
			break
		}
	}
	if count == 0 {
		section += "- (none)\n"
	}
	return section
}

func joinURLs(urls []string) string {
	if len(urls) == 0 {
		return "(No source URLs available)"
	}
	result := ""
	for i, url := range urls {
		if i >= 20 { // Limit to first 20 to avoid token bloat
			result += fmt.Sprintf("\n... and %d more URLs", len(urls)-20)
			break
		}
		result += fmt.Sprintf("\n- %s", url)
	}
	return result
}
