package artwork

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/arcanaland/algodb/internal/card"
)

// DownloadResult tracks counts and errors from a download run.
type DownloadResult struct {
	Downloaded int
	Skipped    int
	Errors     []string
}

// Summary returns a human-readable summary of the run.
func (r *DownloadResult) Summary() string {
	return fmt.Sprintf("downloaded=%d skipped=%d errors=%d", r.Downloaded, r.Skipped, len(r.Errors))
}

// Downloader fetches card images one at a time under a request rate limit.
type Downloader struct {
	httpClient *http.Client
	baseURL    string
	dir        string
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewDownloader creates a downloader storing images from baseURL into dir.
func NewDownloader(baseURL, dir string, requestsPerMinute int, timeout time.Duration, logger *slog.Logger) *Downloader {
	if logger == nil {
		logger = slog.Default()
	}
	limit := rate.Inf
	if requestsPerMinute > 0 {
		limit = rate.Limit(float64(requestsPerMinute) / 60.0)
	}
	return &Downloader{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		dir:        dir,
		limiter:    rate.NewLimiter(limit, 1),
		logger:     logger,
	}
}

// DownloadAll fetches the image of every card that is not already on disk.
// Failures are recorded per card; only context cancellation stops the run.
func (d *Downloader) DownloadAll(ctx context.Context, cards []card.Card) (*DownloadResult, error) {
	if err := os.MkdirAll(d.dir, 0755); err != nil {
		return nil, fmt.Errorf("create image directory: %w", err)
	}

	result := &DownloadResult{}
	for _, c := range cards {
		dest, err := ImagePath(d.dir, c.ImageName)
		if err != nil {
			d.logger.Warn("skipping card image", "card", c.Name, "error", err)
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", c.Name, err))
			continue
		}
		if _, err := os.Stat(dest); err == nil {
			result.Skipped++
			continue
		}
		if err := d.limiter.Wait(ctx); err != nil {
			return result, fmt.Errorf("rate limit wait: %w", err)
		}
		if err := d.download(ctx, c.ImageName, dest); err != nil {
			d.logger.Warn("image download failed", "card", c.Name, "error", err)
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", c.Name, err))
			continue
		}
		d.logger.Debug("image downloaded", "card", c.Name, "path", dest)
		result.Downloaded++
	}
	return result, nil
}

// ImagePath joins an image name onto dir. Names that are not a single plain
// file name are rejected so nothing lands outside dir.
func ImagePath(dir, imageName string) (string, error) {
	if imageName == "" || imageName == "." || imageName == ".." ||
		strings.ContainsAny(imageName, `/\`) || filepath.Base(imageName) != imageName {
		return "", fmt.Errorf("unsafe image name %q", imageName)
	}
	return filepath.Join(dir, imageName), nil
}

func (d *Downloader) download(ctx context.Context, imageName, dest string) error {
	u, err := url.JoinPath(d.baseURL, imageName)
	if err != nil {
		return fmt.Errorf("build image url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s returned %d", u, resp.StatusCode)
	}

	// Write to a temp file first so partial downloads never take the final name
	tmp, err := os.CreateTemp(d.dir, ".download-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("write image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close image: %w", err)
	}
	return os.Rename(tmp.Name(), dest)
}
