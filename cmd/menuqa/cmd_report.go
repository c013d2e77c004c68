package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/servline/menuqa/internal/menu"
	"github.com/servline/menuqa/internal/repair"
	"github.com/servline/menuqa/internal/report"
	"github.com/servline/menuqa/internal/scoring"
	"github.com/spf13/cobra"
)

var (
	reportOutputFormat string
	reportApplyRepairs bool
	reportFailBelow    string
)

func newReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report <items.json>",
		Short: "Generate a menu quality report",
		Long: `Generate a complete quality report for an extracted menu.

Runs the whole pipeline: scores every item, classifies confidence
tiers, generates repair recommendations, optionally applies safe
automatic fixes, and summarizes the result as pipeline coverage, an
issue digest, per-category health, and a plain-language narrative.

With --fail-below, the command exits non-zero when the quality grade is
below the given letter, which makes it usable as a CI gate.`,
		Args: cobra.ExactArgs(1),
		RunE: reportCommandE,
	}

	cmd.Flags().StringVarP(&reportOutputFormat, "format", "f", "", "Output format: table or json (default from project config)")
	cmd.Flags().BoolVar(&reportApplyRepairs, "apply-repairs", false, "Apply safe automatic fixes before reporting (default from project config)")
	cmd.Flags().StringVar(&reportFailBelow, "fail-below", "", "Fail when the quality grade is below this letter (A, B, C or D)")

	return cmd
}

func reportCommandE(cmd *cobra.Command, args []string) error {
	cfg, err := loadProjectConfig(args[0])
	if err != nil {
		return err
	}
	format, err := resolveFormat(reportOutputFormat, cfg)
	if err != nil {
		return err
	}
	if reportFailBelow != "" {
		if _, ok := gradeRank[scoring.Grade(reportFailBelow)]; !ok {
			return fmt.Errorf("unsupported grade %q: must be A, B, C or D", reportFailBelow)
		}
	}

	items, err := loadItemsFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", args[0], err)
	}

	scoring.ScoreItems(items)
	scoring.ClassifyTiers(items)

	gen := newGenerator(cfg)
	gen.Generate(items)

	apply := reportApplyRepairs
	if !cmd.Flags().Changed("apply-repairs") && cfg.Defaults.ApplyRepairs != nil {
		apply = *cfg.Defaults.ApplyRepairs
	}

	var run *repair.RunSummary
	if apply {
		run = repair.Apply(items)
		scoring.ScoreItems(items)
		scoring.ClassifyTiers(items)
	}

	rep := report.GenerateWithCaps(items, run, report.Caps{
		TopIssues:   cfg.Report.TopIssues,
		WorstItems:  cfg.Report.WorstItems,
		CommonFlags: cfg.Report.CommonFlags,
	})

	if format == "json" {
		if err := printJSON(rep); err != nil {
			return err
		}
	} else {
		printReportTable(rep)
	}

	if reportFailBelow != "" {
		grade := rep.MenuConfidence.QualityGrade
		if gradeRank[grade] < gradeRank[scoring.Grade(reportFailBelow)] {
			return &MenuFailureError{
				Message: fmt.Sprintf("menu quality grade %s is below required grade %s", grade, reportFailBelow),
			}
		}
	}
	return nil
}

var gradeRank = map[scoring.Grade]int{
	scoring.GradeA: 4,
	scoring.GradeB: 3,
	scoring.GradeC: 2,
	scoring.GradeD: 1,
}

func printReportTable(r *report.Report) {
	fmt.Println(strings.Repeat("=", 70))
	fmt.Println(" MENU QUALITY REPORT")
	fmt.Println(strings.Repeat("=", 70))
	fmt.Println()

	fmt.Printf("  %s\n", r.QualityNarrative)
	fmt.Println()

	s := r.MenuConfidence
	fmt.Printf("  Grade:   %s (%s)\n", s.QualityGrade, s.QualityGrade.Describe())
	fmt.Printf("  Mean:    %.4f   Median: %.4f   Stdev: %.4f\n",
		s.MeanConfidence, s.MedianConfidence, s.StdevConfidence)
	fmt.Printf("  Tiers:   %d high / %d medium / %d low / %d reject\n",
		s.TierCounts[menu.TierHigh], s.TierCounts[menu.TierMedium],
		s.TierCounts[menu.TierLow], s.TierCounts[menu.TierReject])
	fmt.Println()

	if len(r.PipelineCoverage) > 0 {
		fmt.Println(strings.Repeat("-", 70))
		fmt.Println(" PIPELINE COVERAGE")
		fmt.Println(strings.Repeat("-", 70))

		keys := make([]string, 0, len(r.PipelineCoverage))
		for k := range r.PipelineCoverage {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			cov := r.PipelineCoverage[k]
			fmt.Printf("  %s  %s  %.1f%%\n",
				padRight(k, 28), padRight(fmt.Sprintf("%d", cov.Count), 6), cov.Pct*100)
		}
		fmt.Println()
	}

	if len(r.IssueDigest.TopIssues) > 0 {
		fmt.Println(strings.Repeat("-", 70))
		fmt.Println(" TOP ISSUES")
		fmt.Println(strings.Repeat("-", 70))
		for _, issue := range r.IssueDigest.TopIssues {
			fmt.Printf("  %s  %s  %.1f%%\n",
				padRight(string(issue.Type), 28),
				padRight(fmt.Sprintf("%d", issue.Count), 6), issue.Pct*100)
		}
		fmt.Println()
	}

	if len(r.IssueDigest.WorstItems) > 0 {
		fmt.Println(strings.Repeat("-", 70))
		fmt.Println(" WORST ITEMS")
		fmt.Println(strings.Repeat("-", 70))

		const nameWidth = 25
		fmt.Printf("  %s  %s  %s  %s\n",
			padRight("Item", nameWidth), padRight("Score", 7),
			padRight("Tier", 7), "Issues")
		for _, wi := range r.IssueDigest.WorstItems {
			fmt.Printf("  %s  %s  %s  %d\n",
				padRight(truncateName(wi.Name, nameWidth), nameWidth),
				padRight(fmt.Sprintf("%.4f", wi.Confidence), 7),
				padRight(string(wi.Tier), 7), wi.IssueCount)
		}
		fmt.Println()
	}

	if len(r.IssueDigest.CommonFlags) > 0 {
		fmt.Println(strings.Repeat("-", 70))
		fmt.Println(" COMMON FLAGS")
		fmt.Println(strings.Repeat("-", 70))
		for _, cf := range r.IssueDigest.CommonFlags {
			fmt.Printf("  %s  %s  %s\n",
				padRight(cf.Reason, 36),
				padRight(fmt.Sprintf("%d", cf.Count), 6), cf.Severity)
		}
		fmt.Println()
	}

	if len(r.CategoryHealth) > 0 {
		fmt.Println(strings.Repeat("-", 70))
		fmt.Println(" CATEGORY HEALTH")
		fmt.Println(strings.Repeat("-", 70))

		const nameWidth = 25
		fmt.Printf("  %s  %s  %s  %s  %s\n",
			padRight("Category", nameWidth), padRight("Items", 6),
			padRight("Mean", 7), padRight("Review", 7), "Grade")
		for _, ch := range r.CategoryHealth {
			fmt.Printf("  %s  %s  %s  %s  %s\n",
				padRight(truncateName(ch.Category, nameWidth), nameWidth),
				padRight(fmt.Sprintf("%d", ch.Count), 6),
				padRight(fmt.Sprintf("%.4f", ch.MeanConfidence), 7),
				padRight(fmt.Sprintf("%.1f%%", ch.NeedsReviewPct*100), 7),
				ch.Grade)
		}
		fmt.Println()
	}
}
