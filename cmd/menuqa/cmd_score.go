package main

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/servline/menuqa/internal/menu"
	"github.com/servline/menuqa/internal/scoring"
	"github.com/spf13/cobra"
)

var (
	scoreOutputFormat string
	scoreOutputPath   string
)

func newScoreCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score <items.json>",
		Short: "Score menu items for semantic confidence",
		Long: `Score extracted menu items for semantic confidence.

Each item gets a weighted confidence score built from five signals
(grammar parse, name quality, price presence, variant quality, and
price flags), a confidence tier, and a needs-review marker. Use
--output to write the scored items back out for the next pipeline
stage.`,
		Args: cobra.ExactArgs(1),
		RunE: scoreCommandE,
	}

	cmd.Flags().StringVarP(&scoreOutputFormat, "format", "f", "", "Output format: table or json (default from project config)")
	cmd.Flags().StringVarP(&scoreOutputPath, "output", "o", "", `Write scored items to this file ("-" for stdout)`)

	return cmd
}

func scoreCommandE(_ *cobra.Command, args []string) error {
	cfg, err := loadProjectConfig(args[0])
	if err != nil {
		return err
	}
	format, err := resolveFormat(scoreOutputFormat, cfg)
	if err != nil {
		return err
	}

	items, err := loadItemsFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", args[0], err)
	}

	scoring.ScoreItems(items)
	scoring.ClassifyTiers(items)
	slog.Debug("scored menu items", "count", len(items))

	if scoreOutputPath != "" {
		if err := writeItemsFile(scoreOutputPath, items); err != nil {
			return fmt.Errorf("failed to write %s: %w", scoreOutputPath, err)
		}
	}

	summary := scoring.Summarize(items)
	if format == "json" {
		return printJSON(summary)
	}
	printScoreTable(summary)
	return nil
}

func printScoreTable(s *scoring.MenuSummary) {
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println(" SEMANTIC CONFIDENCE")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println()

	fmt.Printf("  Items:       %d\n", s.TotalItems)
	fmt.Printf("  Mean:        %.4f   Median: %.4f   Stdev: %.4f\n",
		s.MeanConfidence, s.MedianConfidence, s.StdevConfidence)
	fmt.Printf("  Grade:       %s (%s)\n", s.QualityGrade, s.QualityGrade.Describe())
	fmt.Printf("  Tiers:       %d high / %d medium / %d low / %d reject\n",
		s.TierCounts[menu.TierHigh], s.TierCounts[menu.TierMedium],
		s.TierCounts[menu.TierLow], s.TierCounts[menu.TierReject])
	fmt.Printf("  Need review: %d\n", s.NeedsReviewCount)
	fmt.Println()

	if len(s.CategorySummary) == 0 {
		return
	}

	fmt.Println(strings.Repeat("-", 60))
	fmt.Println(" CATEGORIES")
	fmt.Println(strings.Repeat("-", 60))

	const nameWidth = 28
	fmt.Printf("  %s  %s  %s  %s\n",
		padRight("Category", nameWidth),
		padRight("Items", 6),
		padRight("Mean", 7),
		"Review")

	names := make([]string, 0, len(s.CategorySummary))
	for name := range s.CategorySummary {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		cs := s.CategorySummary[name]
		fmt.Printf("  %s  %s  %s  %d\n",
			padRight(truncateName(name, nameWidth), nameWidth),
			padRight(fmt.Sprintf("%d", cs.Count), 6),
			padRight(fmt.Sprintf("%.4f", cs.Mean), 7),
			cs.NeedsReviewCount)
	}
	fmt.Println()
}
