// Package pipeline orchestrates the audit flow: fetch a page, extract
// its outbound sources, verify them, score their reputation, and attach
// trust badges.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/credlab/credence/internal/compare"
	"github.com/credlab/credence/internal/extract"
	"github.com/credlab/credence/internal/fetch"
	"github.com/credlab/credence/internal/llm"
	"github.com/credlab/credence/internal/model"
	"github.com/credlab/credence/internal/trust"
	"github.com/credlab/credence/internal/verify"
)

// Pipeline wires the stages together. It implements worker.Auditor so
// batch runs can reuse a single pipeline across URLs.
type Pipeline struct {
	fetcher     *fetch.Fetcher
	extractor   *extract.SourceExtractor
	verifier    *verify.Verifier
	categorizer *trust.Categorizer
	reasoner    *llm.Reasoner // Optional; nil when no provider configured
	config      *model.Config
}

// NewPipeline creates a pipeline from config.
func NewPipeline(cfg *model.Config) *Pipeline {
	var reasoner *llm.Reasoner
	if cfg.LLM.Provider != "" {
		llmConfig := llm.ConfigFromModel(cfg.LLM, cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy, cfg.HTTP.NoProxy)
		r, err := llm.NewReasoner(llmConfig)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize LLM provider: %v\n", err)
		} else {
			reasoner = r
		}
	}

	return &Pipeline{
		fetcher:     fetch.NewFetcher(cfg),
		extractor:   extract.NewSourceExtractor(),
		verifier:    verify.NewVerifier(cfg),
		categorizer: trust.NewCategorizer(cfg.Category.ExtraRules),
		reasoner:    reasoner,
		config:      cfg,
	}
}

// AuditURL audits a single page: every outbound source is verified,
// scored, and badged. Verification failures degrade individual sources,
// never the whole audit.
func (p *Pipeline) AuditURL(ctx context.Context, url string) (*model.AuditReport, error) {
	fetchResult, err := p.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	sources, err := p.extractor.Extract(fetchResult.HTML, fetchResult.FinalURL)
	if err != nil {
		return nil, fmt.Errorf("extract sources: %w", err)
	}

	verifications := p.verifier.Verify(ctx, sources)

	report := &model.AuditReport{
		Subject:   fetchResult.Subject,
		SourceURL: fetchResult.FinalURL,
		FetchedAt: time.Now().UTC(),
		FetchMeta: fetchResult.Meta,
		Sources:   make([]model.AuditedSource, 0, len(sources)),
	}

	for i, src := range sources {
		v := verifications[i]
		category, _ := p.categorizer.Categorize(src.Host())
		score := verify.Reputation(category, &v)
		tier := trust.Classify(score)

		report.Sources = append(report.Sources, model.AuditedSource{
			Source:       src,
			Verification: &v,
			Tier:         tier.Label,
			Percent:      trust.Percent(score),
			Category:     category,
		})

		report.Stats.Total++
		if v.IsAccessible {
			report.Stats.Accessible++
		}
		if v.IsDead {
			report.Stats.Dead++
		}
		if v.IsStale || v.IsVeryStale {
			report.Stats.Stale++
		}
	}

	// Optional reasoning, generated AFTER scoring so it can never affect
	// badges or stats.
	if p.reasoner.IsEnabled() {
		summary, err := p.reasoner.SummarizeAudit(ctx, report)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: reasoning generation failed: %v\n", err)
		} else if summary != nil {
			report.Reasoning = summary
		}
	}

	return report, nil
}

// CompareResult pairs a display panel with the optional reasoning that
// was generated for it.
type CompareResult struct {
	Mode      string                  `json:"mode"`
	Panel     compare.Panel           `json:"panel"`
	Reasoning *model.ReasoningSummary `json:"reasoning,omitempty"`
}

// Compare prepares an evidence partition for display. When a reasoner is
// configured and both sides are present, its output is folded into the
// conflict banner. Reasoning failures degrade to a panel without
// reasoning.
func (p *Pipeline) Compare(ctx context.Context, partition model.EvidencePartition) *CompareResult {
	var summary *model.ReasoningSummary

	if p.reasoner.IsEnabled() && partition.HasConflict() && partition.Reasoning == "" {
		s, err := p.reasoner.GenerateReasoning(ctx, partition)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: reasoning generation failed: %v\n", err)
		} else if s != nil {
			summary = s
			partition.Reasoning = s.Text
		}
	}

	panel := compare.BuildPanel(partition)
	return &CompareResult{
		Mode:      panel.Mode.String(),
		Panel:     panel,
		Reasoning: summary,
	}
}
