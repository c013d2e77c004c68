package main

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/servline/menuqa/internal/menu"
	"github.com/servline/menuqa/internal/repair"
	"github.com/servline/menuqa/internal/scoring"
	"github.com/spf13/cobra"
)

var (
	repairOutputFormat string
	repairOutputPath   string
	repairApply        bool
)

func newRepairCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repair <items.json>",
		Short: "Generate repair recommendations for low-quality items",
		Long: `Generate repair recommendations for low-quality menu items.

Items below the high confidence tier get prioritized recommendations:
garbled or short names, missing prices, likely category mistakes,
variant problems, and unresolved price flags. With --apply, the safe
auto-fixable recommendations (name corrections and category
reassignments) are applied in place and items are re-scored.`,
		Args: cobra.ExactArgs(1),
		RunE: repairCommandE,
	}

	cmd.Flags().StringVarP(&repairOutputFormat, "format", "f", "", "Output format: table or json (default from project config)")
	cmd.Flags().StringVarP(&repairOutputPath, "output", "o", "", `Write updated items to this file ("-" for stdout)`)
	cmd.Flags().BoolVar(&repairApply, "apply", false, "Apply safe automatic fixes (default from project config)")

	return cmd
}

// repairRunReport is the JSON output of the repair command.
type repairRunReport struct {
	Recommendations *repair.Summary    `json:"recommendations"`
	RepairsApplied  *repair.RunSummary `json:"repairs_applied,omitempty"`
}

func repairCommandE(cmd *cobra.Command, args []string) error {
	cfg, err := loadProjectConfig(args[0])
	if err != nil {
		return err
	}
	format, err := resolveFormat(repairOutputFormat, cfg)
	if err != nil {
		return err
	}

	items, err := loadItemsFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", args[0], err)
	}

	scoring.ScoreItems(items)
	scoring.ClassifyTiers(items)

	gen := newGenerator(cfg)
	gen.Generate(items)

	apply := repairApply
	if !cmd.Flags().Changed("apply") && cfg.Defaults.ApplyRepairs != nil {
		apply = *cfg.Defaults.ApplyRepairs
	}

	var run *repair.RunSummary
	if apply {
		run = repair.Apply(items)
		// Applied fixes change names and categories, so scores and
		// tiers are stale until re-scored.
		scoring.ScoreItems(items)
		scoring.ClassifyTiers(items)
		slog.Debug("applied auto-repairs",
			"items", run.TotalItemsRepaired, "repairs", run.RepairsApplied)
	}

	if repairOutputPath != "" {
		if err := writeItemsFile(repairOutputPath, items); err != nil {
			return fmt.Errorf("failed to write %s: %w", repairOutputPath, err)
		}
	}

	summary := repair.Summarize(items)
	if format == "json" {
		return printJSON(&repairRunReport{Recommendations: summary, RepairsApplied: run})
	}
	printRepairTable(summary, run)
	return nil
}

func printRepairTable(s *repair.Summary, run *repair.RunSummary) {
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println(" REPAIR RECOMMENDATIONS")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println()

	fmt.Printf("  Items:            %d (%d with recommendations)\n",
		s.TotalItems, s.ItemsWithRecommendations)
	fmt.Printf("  Recommendations:  %d (%d auto-fixable)\n",
		s.TotalRecommendations, s.AutoFixableCount)
	fmt.Printf("  By priority:      %d critical / %d important / %d suggested\n",
		s.ByPriority[menu.PriorityCritical], s.ByPriority[menu.PriorityImportant],
		s.ByPriority[menu.PrioritySuggested])
	fmt.Println()

	if len(s.ByType) > 0 {
		fmt.Println(strings.Repeat("-", 60))
		fmt.Println(" BY TYPE")
		fmt.Println(strings.Repeat("-", 60))

		types := make([]string, 0, len(s.ByType))
		for t := range s.ByType {
			types = append(types, string(t))
		}
		sort.Strings(types)
		for _, t := range types {
			fmt.Printf("  %s  %d\n",
				padRight(t, 28), s.ByType[menu.RecommendationType(t)])
		}
		fmt.Println()
	}

	if run == nil {
		return
	}

	fmt.Println(strings.Repeat("-", 60))
	fmt.Println(" AUTO-REPAIRS APPLIED")
	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("  Repairs:  %d across %d item(s)\n",
		run.RepairsApplied, run.TotalItemsRepaired)
	types := make([]string, 0, len(run.ByType))
	for t := range run.ByType {
		types = append(types, t)
	}
	sort.Strings(types)
	for _, t := range types {
		fmt.Printf("    %s  %d\n", padRight(t, 10), run.ByType[t])
	}
	fmt.Println()
}
