package cmd

import (
	"fmt"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/algodb/internal/validator"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Check a built card database for consistency",
	Long: `Validate re-checks a card database document against the rules build follows:
contiguous card keys, the faction list and its order, the presence of every
search scope, and that each card's tags are indexed under its key.

Use --strict to also fail when warnings are reported.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		strict, _ := cmd.Flags().GetBool("strict")

		dbPath := ""
		if len(args) == 1 {
			dbPath = args[0]
		}
		doc, err := loadDatabase(dbPath)
		if err != nil {
			return err
		}

		results := validator.NewValidator(doc).Validate()

		if len(results.Errors) > 0 {
			fmt.Println(colorize.RedString("✗ %d error(s) in %d cards:", len(results.Errors), len(doc.Cards)))
			printNumbered(results.Errors)
		} else {
			fmt.Println(colorize.GreenString("✓ %d cards, %d factions, %d scopes", len(doc.Cards), len(doc.Factions), len(doc.SearchScopes)))
		}
		if len(results.Warnings) > 0 {
			fmt.Println(colorize.YellowString("! %d warning(s):", len(results.Warnings)))
			printNumbered(results.Warnings)
		}

		switch {
		case len(results.Errors) > 0:
			return fmt.Errorf("validation failed")
		case strict && len(results.Warnings) > 0:
			return fmt.Errorf("validation failed: warnings reported in strict mode")
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(validateCmd)

	validateCmd.Flags().Bool("strict", false, "Treat warnings as errors")
}

func printNumbered(msgs []string) {
	for i, m := range msgs {
		fmt.Printf("  %2d. %s\n", i+1, m)
	}
}
