package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/credlab/credence/internal/model"
	"github.com/credlab/credence/internal/pipeline"
	"github.com/credlab/credence/internal/render"
)

var (
	compareJSON    bool
	compareMD      string
	compareTimeout time.Duration
	llmEnabled     bool
	llmProvider    string
	llmModel       string
)

// compareCmd represents the compare command
var compareCmd = &cobra.Command{
	Use:   "compare <partition.json>",
	Short: "Present supporting vs contradicting evidence",
	Long: `Compare reads an evidence partition from a JSON file and presents it:
- Nothing when both lists are empty
- A single list when only one side has evidence
- A conflict banner plus both full lists when sources disagree

The partition file holds two source lists:
  {"supporting": [{"url": "...", "domain": "...", "snippet": "...", "score": 0.9}],
   "contradicting": [...]}

Example:
  credence compare partition.json
  credence compare partition.json --llm --llm-provider ollama
  credence compare partition.json --json`,
	Args: cobra.ExactArgs(1),
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)

	compareCmd.Flags().BoolVar(&compareJSON, "json", false, "print the panel as JSON")
	compareCmd.Flags().StringVar(&compareMD, "md", "", "write the panel as Markdown to this path")
	compareCmd.Flags().DurationVar(&compareTimeout, "timeout", 2*time.Minute, "overall timeout (matters only with --llm)")

	// LLM flags
	compareCmd.Flags().BoolVar(&llmEnabled, "llm", false, "generate a reasoning paragraph for conflicts")
	compareCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	compareCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (provider default when empty)")
}

func runCompare(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read partition file: %w", err)
	}

	var partition model.EvidencePartition
	if err := json.Unmarshal(data, &partition); err != nil {
		return fmt.Errorf("parse partition file: %w", err)
	}

	cfg := loadConfig()
	if llmEnabled {
		if err := applyLLMConfig(cfg, llmProvider, llmModel); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), compareTimeout)
	defer cancel()

	p := pipeline.NewPipeline(cfg)
	result := p.Compare(ctx, partition)

	if compareMD != "" {
		if err := os.WriteFile(compareMD, []byte(render.MarkdownPanel(result.Panel)), 0o644); err != nil {
			return fmt.Errorf("write markdown panel: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", compareMD)
		}
	}

	if compareJSON {
		return render.PrintJSON(result, os.Stdout)
	}

	term := render.NewTerminal(os.Stdout, cfg.Output.Color)
	term.RenderPanel(result.Panel)

	if result.Reasoning != nil {
		for _, w := range result.Reasoning.Warnings {
			fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
		}
	}

	return nil
}
