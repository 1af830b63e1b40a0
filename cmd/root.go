package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/algodb/internal/cardsdb"
	"github.com/arcanaland/algodb/internal/config"
)

var (
	cfg    *config.Config
	logger = slog.Default()

	flagVerbose bool
	flagNoColor bool
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "algodb",
	Short: "Build and query the Algomancy card search database",
	Long: `algodb downloads the Algomancy card dataset, normalizes every card and builds
the tag index used by the deck builder's search box.

The database is a single JSON document holding the cards, the faction list and
one tag index per searchable field plus an "any" index spanning all of them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if flagNoColor {
			color.NoColor = true
		}

		level := slog.LevelInfo
		if flagVerbose {
			level = slog.LevelDebug
		}
		// stdout is reserved for the database document
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)

		config.LoadEnv()
		var err error
		cfg, err = config.LoadConfig()
		return err
	},
}

func init() {
	RootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	RootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	return RootCmd.ExecuteContext(ctx)
}

// loadDatabase reads the database at path, or at the default location when
// path is empty.
func loadDatabase(path string) (*cardsdb.Document, error) {
	if path == "" {
		path = config.GetDefaultDatabasePath()
	}
	logger.Debug("loading card database", "path", path)
	return cardsdb.LoadDocument(path)
}
