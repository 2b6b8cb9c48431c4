package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/credlab/credence/internal/model"
	"github.com/credlab/credence/internal/render"
	"github.com/credlab/credence/internal/trust"
	"github.com/credlab/credence/internal/verify"
)

var (
	badgeScore  float64
	badgeVerify bool
	badgeJSON   bool
)

// badgeCmd represents the badge command
var badgeCmd = &cobra.Command{
	Use:   "badge <domain-or-url>",
	Short: "Classify a source into a trust tier",
	Long: `Badge classifies a single source domain or URL:
- Infer the topical category from the domain
- Compute a transparent reputation score, or use --score directly
- Map the score onto a trust tier with a display badge

Example:
  credence badge nature.com
  credence badge https://www.nasa.gov/news/article --verify
  credence badge random-blog.example --score 0.42`,
	Args: cobra.ExactArgs(1),
	RunE: runBadge,
}

func init() {
	rootCmd.AddCommand(badgeCmd)

	badgeCmd.Flags().Float64Var(&badgeScore, "score", -1, "use this reputation score in [0,1] instead of computing one")
	badgeCmd.Flags().BoolVar(&badgeVerify, "verify", false, "verify the URL with a HEAD request before scoring")
	badgeCmd.Flags().BoolVar(&badgeJSON, "json", false, "print the badge as JSON")
}

func runBadge(cmd *cobra.Command, args []string) error {
	target := args[0]
	cfg := loadConfig()

	src := model.Source{URL: target, Domain: target}
	if strings.Contains(target, "://") {
		src.Domain = ""
	}
	domain := src.Host()
	if domain == "" {
		return fmt.Errorf("cannot determine domain from %q", target)
	}

	categorizer := trust.NewCategorizer(cfg.Category.ExtraRules)
	category, _ := categorizer.Categorize(domain)

	var verification *model.VerificationResult
	if badgeVerify {
		if !strings.Contains(target, "://") {
			target = "https://" + target
			src.URL = target
		}
		ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.Timeout)
		defer cancel()

		results := verify.NewVerifier(cfg).Verify(ctx, []model.Source{src})
		verification = &results[0]
		if verbose {
			fmt.Fprintf(os.Stderr, "Verified %s: status %d\n", target, verification.StatusCode)
		}
	}

	score := badgeScore
	if score < 0 {
		score = verify.Reputation(category, verification)
	}

	badge := trust.NewBadgeWith(score, domain, categorizer)

	if badgeJSON {
		return render.PrintJSON(struct {
			Domain      string                    `json:"domain"`
			Tier        string                    `json:"tier"`
			Percent     int                       `json:"percent"`
			Category    string                    `json:"category,omitempty"`
			Explanation string                    `json:"explanation"`
			Verified    *model.VerificationResult `json:"verification,omitempty"`
			CheckedAt   time.Time                 `json:"checked_at"`
		}{
			Domain:      domain,
			Tier:        badge.Tier.Label,
			Percent:     badge.Percent,
			Category:    badge.Category,
			Explanation: badge.Tier.Explanation,
			Verified:    verification,
			CheckedAt:   time.Now().UTC(),
		}, os.Stdout)
	}

	render.NewTerminal(os.Stdout, cfg.Output.Color).RenderBadge(badge, domain)
	return nil
}
