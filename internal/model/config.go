package model

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds the complete Credence configuration
type Config struct {
	HTTP        HTTPConfig        `yaml:"http" json:"http"`
	Cache       CacheConfig       `yaml:"cache" json:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" json:"concurrency"`
	RateLimit   RateLimitConfig   `yaml:"rate_limit" json:"rate_limit"`
	Category    CategoryConfig    `yaml:"category" json:"category"`
	LLM         LLMConfig         `yaml:"llm" json:"llm"`
	Output      OutputConfig      `yaml:"output" json:"output"`
}

// HTTPConfig configures outbound HTTP behavior
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout" json:"timeout"`
	UserAgent     string        `yaml:"user_agent" json:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes" json:"max_body_bytes"`
	InsecureTLS   bool          `yaml:"insecure_tls" json:"insecure_tls"`
	HTTPProxy     string        `yaml:"http_proxy,omitempty" json:"http_proxy,omitempty"`
	HTTPSProxy    string        `yaml:"https_proxy,omitempty" json:"https_proxy,omitempty"`
	NoProxy       string        `yaml:"no_proxy,omitempty" json:"no_proxy,omitempty"`
	RespectRobots bool          `yaml:"respect_robots" json:"respect_robots"`
}

// CacheConfig configures the layered fetch cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" json:"enabled"`
	Dir       string        `yaml:"dir" json:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" json:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" json:"disk_ttl"`
}

// ConcurrencyConfig configures worker counts
type ConcurrencyConfig struct {
	Workers       int `yaml:"workers" json:"workers"`               // Batch audit workers
	VerifyWorkers int `yaml:"verify_workers" json:"verify_workers"` // Concurrent HEAD checks per audit
}

// RateLimitConfig configures per-domain request rate limiting
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" json:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" json:"burst_size"`
}

// CategoryRule maps a fully-qualified domain suffix to a topical category.
// Rules are evaluated in declared order; the first match wins.
type CategoryRule struct {
	Suffix   string `yaml:"suffix" json:"suffix"`
	Category string `yaml:"category" json:"category"`
}

// CategoryConfig allows extending the built-in category table.
// Extra rules are appended after the built-ins, preserving their priority.
type CategoryConfig struct {
	ExtraRules []CategoryRule `yaml:"extra_rules,omitempty" json:"extra_rules,omitempty"`
}

// LLMConfig configures the optional reasoning generator
type LLMConfig struct {
	Provider       string `yaml:"provider,omitempty" json:"provider,omitempty"` // openai, anthropic, ollama, ""
	Model          string `yaml:"model,omitempty" json:"model,omitempty"`
	APIKey         string `yaml:"-" json:"-"` // Never persisted; env vars only
	BaseURL        string `yaml:"base_url,omitempty" json:"base_url,omitempty"`
	Timeout        int    `yaml:"timeout" json:"timeout"` // seconds
	StrictEvidence bool   `yaml:"strict_evidence" json:"strict_evidence"`
	MaxTokens      int    `yaml:"max_tokens" json:"max_tokens"`
}

// OutputConfig configures report rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" json:"verbose"`
	Color         bool `yaml:"color" json:"color"`
	IncludeFooter bool `yaml:"include_footer" json:"include_footer"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	cacheDir := ".credence-cache"
	if home, err := os.UserHomeDir(); err == nil {
		cacheDir = filepath.Join(home, ".credence", "cache")
	}

	return &Config{
		HTTP: HTTPConfig{
			Timeout:       30 * time.Second,
			UserAgent:     "Credence/0.1 (+https://github.com/credlab/credence)",
			MaxBodyBytes:  2_000_000,
			RespectRobots: true,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       cacheDir,
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers:       4,
			VerifyWorkers: 20,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 2,
			BurstSize:         5,
		},
		LLM: LLMConfig{
			Timeout:        30,
			StrictEvidence: true,
			MaxTokens:      1000,
		},
		Output: OutputConfig{
			Color:         true,
			IncludeFooter: true,
		},
	}
}
