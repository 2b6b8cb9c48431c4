package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/credlab/credence/internal/pipeline"
	"github.com/credlab/credence/internal/render"
)

var (
	outJSON      string
	outMD        string
	auditTimeout time.Duration
	userAgent    string
	maxBytes     int64
	noCache      bool
	noFooter     bool
	insecureTLS  bool
	noRobots     bool
)

// auditCmd represents the audit command
var auditCmd = &cobra.Command{
	Use:   "audit <url>",
	Short: "Audit every outbound source on a page",
	Long: `Audit fetches a web page and inspects its outbound citations:
- Extract every external source link with its surrounding snippet
- Verify each source concurrently (liveness, freshness, redirects)
- Infer topical categories and compute reputation scores
- Attach a trust badge to every source

Example:
  credence audit https://en.wikipedia.org/wiki/Coffee
  credence audit https://example.com/article --json report.json --md report.md
  credence audit https://example.com/article --llm --llm-provider ollama`,
	Args: cobra.ExactArgs(1),
	RunE: runAudit,
}

func init() {
	rootCmd.AddCommand(auditCmd)

	// Output flags
	auditCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	auditCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")

	// HTTP flags
	auditCmd.Flags().DurationVar(&auditTimeout, "timeout", 2*time.Minute, "overall audit timeout (increase for pages with many sources)")
	auditCmd.Flags().StringVar(&userAgent, "ua", "", "HTTP User-Agent override")
	auditCmd.Flags().Int64Var(&maxBytes, "max-bytes", 0, "max response bytes to read (0 keeps the configured value)")
	auditCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetch)")
	auditCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	auditCmd.Flags().BoolVar(&insecureTLS, "insecure", false, "skip TLS certificate verification (use for self-signed certs)")
	auditCmd.Flags().BoolVar(&noRobots, "no-robots", false, "skip robots.txt checks")

	// LLM flags
	auditCmd.Flags().BoolVar(&llmEnabled, "llm", false, "generate a citation-health summary")
	auditCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	auditCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (provider default when empty)")
}

func runAudit(cmd *cobra.Command, args []string) error {
	url := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), auditTimeout)
	defer cancel()

	cfg := loadConfig()
	cfg.HTTP.Timeout = auditTimeout
	if userAgent != "" {
		cfg.HTTP.UserAgent = userAgent
	}
	if maxBytes > 0 {
		cfg.HTTP.MaxBodyBytes = maxBytes
	}
	cfg.HTTP.InsecureTLS = insecureTLS
	cfg.HTTP.RespectRobots = !noRobots
	cfg.Cache.Enabled = !noCache
	cfg.Output.IncludeFooter = !noFooter

	if llmEnabled {
		if err := applyLLMConfig(cfg, llmProvider, llmModel); err != nil {
			return err
		}
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Auditing: %s\n", url)
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", auditTimeout)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", !noCache)
		fmt.Fprintln(os.Stderr)
	}

	p := pipeline.NewPipeline(cfg)

	report, err := p.AuditURL(ctx, url)
	if err != nil {
		return fmt.Errorf("audit failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Found %d sources (%d accessible, %d dead, %d stale)\n",
			report.Stats.Total, report.Stats.Accessible, report.Stats.Dead, report.Stats.Stale)
		if report.Reasoning != nil && report.Reasoning.Enabled {
			fmt.Fprintf(os.Stderr, "✓ Generated reasoning using %s/%s\n", report.Reasoning.Provider, report.Reasoning.Model)
		}
		fmt.Fprintln(os.Stderr)
	}

	if outJSON != "" {
		if err := render.WriteJSON(report, outJSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", outJSON)
		}
	}

	if outMD != "" {
		if err := render.WriteMarkdown(report, outMD, cfg.Output.IncludeFooter); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", outMD)
		}
	}

	render.NewTerminal(os.Stdout, cfg.Output.Color).RenderAuditReport(report)
	return nil
}
