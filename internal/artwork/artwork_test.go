package artwork_test

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/arcanaland/algodb/internal/artwork"
	"github.com/arcanaland/algodb/internal/card"
)

func solidImage(c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func writePNG(t *testing.T, path string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, solidImage(color.RGBA{R: 200, A: 255})); err != nil {
		t.Fatal(err)
	}
}

// --- Render ---

func TestRender_Dimensions(t *testing.T) {
	art := artwork.Render(solidImage(color.RGBA{G: 255, A: 255}), 6, 4)
	lines := strings.Split(strings.TrimRight(art, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	for i, line := range lines {
		if got := len([]rune(artwork.StripAnsi(line))); got != 6 {
			t.Errorf("line %d visible width = %d, want 6", i, got)
		}
	}
	if !strings.Contains(art, "\x1b[38;2;") || !strings.Contains(art, "\x1b[48;2;") {
		t.Errorf("expected 24-bit foreground and background escapes")
	}
}

func TestStripAnsi(t *testing.T) {
	in := "\x1b[38;2;1;2;3mA\x1b[0mB"
	if got := artwork.StripAnsi(in); got != "AB" {
		t.Errorf("StripAnsi = %q, want %q", got, "AB")
	}
}

// --- CachedAnsi ---

func TestCachedAnsi(t *testing.T) {
	dir := t.TempDir()
	imagePath := filepath.Join(dir, "card.png")
	cacheDir := filepath.Join(dir, "cache")
	writePNG(t, imagePath)

	first, err := artwork.CachedAnsi(imagePath, cacheDir)
	if err != nil {
		t.Fatalf("CachedAnsi: %v", err)
	}
	entries, err := os.ReadDir(cacheDir)
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected one cache file, got %d (%v)", len(entries), err)
	}

	// The second call must be served from the cache
	if err := os.Remove(imagePath); err != nil {
		t.Fatal(err)
	}
	second, err := artwork.CachedAnsi(imagePath, cacheDir)
	if err != nil {
		t.Fatalf("CachedAnsi from cache: %v", err)
	}
	if first != second {
		t.Errorf("cached art differs from the first rendering")
	}
}

func TestRenderFile_NotAnImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.jpg")
	if err := os.WriteFile(path, []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := artwork.RenderFile(path, 4, 4); err == nil {
		t.Error("expected decode error")
	}
}

// --- Downloader ---

func TestDownloadAll(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		if r.URL.Path != "/img/Ember-Wolf.jpg" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("jpeg-bytes"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Old-Relic.jpg"), []byte("existing"), 0644); err != nil {
		t.Fatal(err)
	}

	cards := []card.Card{
		{Name: "Ember Wolf", ImageName: "Ember-Wolf.jpg"},
		{Name: "Old Relic", ImageName: "Old-Relic.jpg"},
		{Name: "Tidecaller", ImageName: "Tidecaller.jpg"},
	}
	d := artwork.NewDownloader(srv.URL+"/img", dir, 0, 0, nil)
	result, err := d.DownloadAll(context.Background(), cards)
	if err != nil {
		t.Fatalf("DownloadAll: %v", err)
	}

	if result.Downloaded != 1 || result.Skipped != 1 || len(result.Errors) != 1 {
		t.Errorf("result = %s, want downloaded=1 skipped=1 errors=1", result.Summary())
	}
	if n := requests.Load(); n != 2 {
		t.Errorf("expected 2 requests, got %d", n)
	}

	data, err := os.ReadFile(filepath.Join(dir, "Ember-Wolf.jpg"))
	if err != nil || string(data) != "jpeg-bytes" {
		t.Errorf("downloaded file = %q, %v", data, err)
	}
	if _, err := os.Stat(filepath.Join(dir, "Tidecaller.jpg")); !os.IsNotExist(err) {
		t.Errorf("failed download left a file behind")
	}
	if data, _ := os.ReadFile(filepath.Join(dir, "Old-Relic.jpg")); string(data) != "existing" {
		t.Errorf("existing image was overwritten")
	}
}

func TestDownloadAll_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := artwork.NewDownloader("http://127.0.0.1:0", t.TempDir(), 1, 0, nil)
	cards := []card.Card{{Name: "A", ImageName: "A.jpg"}}
	if _, err := d.DownloadAll(ctx, cards); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestImagePath(t *testing.T) {
	dir := t.TempDir()
	if got, err := artwork.ImagePath(dir, "Ember-Wolf.jpg"); err != nil || got != filepath.Join(dir, "Ember-Wolf.jpg") {
		t.Errorf("ImagePath = %q, %v", got, err)
	}
	for _, name := range []string{"", ".", "..", "A/B.jpg", "../escape.jpg", `A\B.jpg`} {
		if _, err := artwork.ImagePath(dir, name); err == nil {
			t.Errorf("ImagePath(%q) succeeded, want error", name)
		}
	}
}

func TestDownloadAll_UnsafeImageNames(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		_, _ = w.Write([]byte("jpeg-bytes"))
	}))
	defer srv.Close()

	root := t.TempDir()
	dir := filepath.Join(root, "images")
	cards := []card.Card{
		{Name: "A/B", ImageName: "A/B.jpg"},
		{Name: "../escape", ImageName: "../escape.jpg"},
	}
	result, err := artwork.NewDownloader(srv.URL, dir, 0, 0, nil).DownloadAll(context.Background(), cards)
	if err != nil {
		t.Fatalf("DownloadAll: %v", err)
	}

	if result.Downloaded != 0 || len(result.Errors) != 2 {
		t.Errorf("result = %s, want downloaded=0 errors=2", result.Summary())
	}
	if n := requests.Load(); n != 0 {
		t.Errorf("expected no requests, got %d", n)
	}
	if _, err := os.Stat(filepath.Join(root, "escape.jpg")); !os.IsNotExist(err) {
		t.Errorf("image written outside the image directory")
	}
	if _, err := os.Stat(filepath.Join(dir, "A")); !os.IsNotExist(err) {
		t.Errorf("image directory gained a subdirectory")
	}
}
