package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/arcanaland/algodb/internal/card"
	"github.com/arcanaland/algodb/internal/cardsdb"
	"github.com/arcanaland/algodb/internal/upstream"
)

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Fetch the upstream dataset and build the card database",
	Long: `Build downloads the upstream card dataset, normalizes every card, indexes the
searchable fields and writes the resulting JSON document.

The document goes to stdout unless --output names a file. Nothing is written
when any card fails to normalize.

Examples:
  algodb build > cards_db.json
  algodb build --output ~/.local/share/algodb/cards_db.json
  algodb build --upstream-file AlgomancyCards.json --indent`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		upstreamURL, _ := cmd.Flags().GetString("upstream-url")
		upstreamFile, _ := cmd.Flags().GetString("upstream-file")
		output, _ := cmd.Flags().GetString("output")
		indent, _ := cmd.Flags().GetBool("indent")

		if upstreamURL == "" {
			upstreamURL = cfg.UpstreamURL
		}
		if output == "" {
			output = cfg.Output
		}

		var records []card.Raw
		var err error
		if upstreamFile != "" {
			records, err = readUpstreamFile(upstreamFile)
		} else {
			client := upstream.NewClient(cfg.HTTPTimeout(), logger)
			records, err = client.Fetch(cmd.Context(), upstreamURL)
		}
		if err != nil {
			return err
		}

		start := time.Now()
		collection, err := cardsdb.Build(records, logger)
		if err != nil {
			return fmt.Errorf("build card database: %w", err)
		}

		var buf bytes.Buffer
		if err := cardsdb.Write(&buf, cardsdb.Export(collection), indent); err != nil {
			return err
		}
		logger.Debug("card database encoded", "bytes", buf.Len(), "duration", time.Since(start).Round(time.Millisecond))

		return writeOutput(output, buf.Bytes())
	},
}

func init() {
	RootCmd.AddCommand(buildCmd)

	buildCmd.Flags().String("upstream-url", "", "URL of the upstream card dataset (default from config)")
	buildCmd.Flags().String("upstream-file", "", "Read the upstream dataset from a local file instead of fetching it")
	buildCmd.Flags().StringP("output", "o", "", "Output file, - for stdout (default from config)")
	buildCmd.Flags().Bool("indent", false, "Indent the JSON document")
}

// readUpstreamFile decodes a previously downloaded upstream dataset
func readUpstreamFile(path string) ([]card.Raw, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open upstream file: %w", err)
	}
	defer file.Close()

	records, err := upstream.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("read upstream file %s: %w", path, err)
	}
	logger.Info("read upstream cards", "path", path, "records", len(records))
	return records, nil
}

// writeOutput writes data to stdout or to the named file
func writeOutput(output string, data []byte) error {
	if output == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}

	if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}
	if err := os.WriteFile(output, data, 0644); err != nil {
		return fmt.Errorf("error writing card database: %w", err)
	}
	logger.Info("card database written", "path", output)
	return nil
}
