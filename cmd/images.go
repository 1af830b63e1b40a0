package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/arcanaland/algodb/internal/artwork"
	"github.com/arcanaland/algodb/internal/config"
)

var imagesCmd = &cobra.Command{
	Use:   "images",
	Short: "Download card images for every card in the database",
	Long: `Images downloads <image_base_url>/<image_name> for every card of a built
card database into the image directory. Existing files are skipped and
requests are throttled to image_requests_per_minute.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, _ := cmd.Flags().GetString("db")
		baseURL, _ := cmd.Flags().GetString("base-url")
		dir, _ := cmd.Flags().GetString("dir")

		if baseURL == "" {
			baseURL = cfg.ImageBaseURL
		}
		if baseURL == "" {
			return fmt.Errorf("no image base URL: set image_base_url in %s or pass --base-url", config.GetConfigFilePath())
		}
		if dir == "" {
			dir = cfg.ImageDir
		}

		doc, err := loadDatabase(dbPath)
		if err != nil {
			return err
		}

		d := artwork.NewDownloader(baseURL, dir, cfg.ImageRequestsPerMinute, cfg.HTTPTimeout(), logger)
		start := time.Now()
		result, err := d.DownloadAll(cmd.Context(), doc.Cards)
		if err != nil {
			return err
		}
		logger.Info("image download finished",
			"dir", dir,
			"duration", time.Since(start).Round(time.Second),
			"summary", result.Summary())
		for _, e := range result.Errors {
			logger.Error("image error", "error", e)
		}
		if len(result.Errors) > 0 {
			return fmt.Errorf("%d image(s) failed to download", len(result.Errors))
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(imagesCmd)

	imagesCmd.Flags().String("db", "", "Path to a built card database (default: XDG_DATA_HOME/algodb/cards_db.json)")
	imagesCmd.Flags().String("base-url", "", "Base URL serving card images (default from config)")
	imagesCmd.Flags().String("dir", "", "Directory to store images in (default from config)")
}
