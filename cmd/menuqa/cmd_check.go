package main

import (
	"fmt"

	"github.com/servline/menuqa/internal/validation"
	"github.com/spf13/cobra"
)

func newCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <items.json>",
		Short: "Validate an items file against the menu item schema",
		Long: `Validate an extracted items file against the menu item schema.

Checks that the file is a JSON array of item objects with well-formed
grammar, variant, price candidate, and price flag structures. Lists
every violation with its JSON path and exits non-zero when the file
does not validate.`,
		Args:          cobra.ExactArgs(1),
		RunE:          checkCommandE,
		SilenceErrors: true,
	}
	return cmd
}

func checkCommandE(_ *cobra.Command, args []string) error {
	path := args[0]

	issues, err := validation.ValidateItemsFile(path)
	if err != nil {
		return fmt.Errorf("failed to validate %s: %w", path, err)
	}

	if len(issues) == 0 {
		fmt.Printf("%s: OK\n", path)
		return nil
	}

	fmt.Printf("%s: %d issue(s)\n", path, len(issues))
	for _, issue := range issues {
		fmt.Printf("  - %s\n", issue)
	}
	return &MenuFailureError{Message: fmt.Sprintf("%s failed schema validation", path)}
}
