package cmd

import (
	"fmt"
	"os"
	"slices"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/algodb/internal/cardsdb"
	"github.com/arcanaland/algodb/internal/config"
)

// dbCmd represents the db command group
var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the local card database",
	Long:  `Commands for setting up and inspecting the local card database.`,
}

// dbInitCmd represents the db init command
var dbInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the config file and data directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir := config.GetDataDir()
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return fmt.Errorf("error creating data directory: %w", err)
		}
		fmt.Println("Data directory initialized at:", dataDir)

		configPath, err := config.WriteDefaultConfig()
		if err != nil {
			return err
		}
		fmt.Println("Config file initialized at:", configPath)
		fmt.Println()
		fmt.Println("Build the database with:")
		fmt.Printf("  %s\n", colorize.CyanString("algodb build --output %s", config.GetDefaultDatabasePath()))
		return nil
	},
}

// dbInfoCmd represents the db info command
var dbInfoCmd = &cobra.Command{
	Use:   "info [path]",
	Short: "Summarize a built card database",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath := ""
		if len(args) == 1 {
			dbPath = args[0]
		}
		doc, err := loadDatabase(dbPath)
		if err != nil {
			return err
		}

		hybrids := 0
		for _, c := range doc.Cards {
			if c.IsHybrid() {
				hybrids++
			}
		}

		fmt.Println(colorize.CyanString("Cards:    ") + colorize.HiWhiteString("%d (%d hybrid)", len(doc.Cards), hybrids))
		fmt.Println(colorize.CyanString("Factions: ") + formatFactions(doc.Factions))
		fmt.Println(colorize.CyanString("Scopes:"))

		scopes := make([]string, 0, len(doc.SearchScopes))
		for scope := range doc.SearchScopes {
			scopes = append(scopes, scope)
		}
		// Keep the build order, unknown scopes last
		order := cardsdb.Scopes()
		slices.SortStableFunc(scopes, func(a, b string) int {
			ia, ib := slices.Index(order, a), slices.Index(order, b)
			if ia < 0 {
				ia = len(order)
			}
			if ib < 0 {
				ib = len(order)
			}
			return ia - ib
		})
		for _, scope := range scopes {
			fmt.Printf("  %-12s %d tags\n", scope, len(doc.SearchScopes[scope]))
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(dbCmd)
	dbCmd.AddCommand(dbInitCmd)
	dbCmd.AddCommand(dbInfoCmd)
}
