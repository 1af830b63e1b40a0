package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/algodb/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Search the card database like the deck builder does",
	Long: `Search runs a deck builder query against a built card database.

Words match any tag containing them. Prefix a word with a scope to restrict it
to the search scopes whose name contains that scope. Quote a word to match
whole tags only. All terms must match.

Examples:
  algodb search dragon
  algodb search 'type:unit power:3'
  algodb search '"haste"' --faction Fire --faction Earth
  algodb search --hybrid`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, _ := cmd.Flags().GetString("db")
		factions, _ := cmd.Flags().GetStringSlice("faction")
		hybrid, _ := cmd.Flags().GetBool("hybrid")
		asJSON, _ := cmd.Flags().GetBool("json")

		doc, err := loadDatabase(dbPath)
		if err != nil {
			return err
		}

		filter := search.Filter{
			Terms:       search.ParseQuery(strings.Join(args, " ")),
			HybridsOnly: hybrid,
		}
		if len(factions) > 0 {
			filter.Factions = make(map[string]bool, len(factions))
			for _, f := range factions {
				filter.Factions[f] = true
			}
		}
		for _, t := range filter.Terms {
			logger.Debug("search term", "scope", t.Scope, "text", t.Text)
		}

		results := filter.Apply(doc)

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(results)
		}

		if len(results) == 0 {
			fmt.Println("No cards found.")
			return nil
		}

		width := terminalWidth()
		for _, c := range results {
			line := fmt.Sprintf("%s  %s  %s",
				colorize.HiBlackString("%d", c.Key),
				colorize.HiWhiteString("%s", c.Name),
				colorize.CyanString("%s", c.Type))
			if len(c.Factions) > 0 {
				line += "  " + formatFactions(c.Factions)
			}
			fmt.Println(line)
			if c.Text != "" {
				for _, l := range wrapText(c.Text, width-8) {
					fmt.Println("      " + l)
				}
			}
		}
		fmt.Printf("\n%d card(s)\n", len(results))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(searchCmd)

	searchCmd.Flags().String("db", "", "Path to a built card database (default: XDG_DATA_HOME/algodb/cards_db.json)")
	searchCmd.Flags().StringSlice("faction", nil, "Only show cards whose factions are all in this list (repeatable)")
	searchCmd.Flags().Bool("hybrid", false, "Only show hybrid cards")
	searchCmd.Flags().Bool("json", false, "Print matching cards as JSON")
}
