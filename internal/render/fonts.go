package render

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"resume-chat-backend/internal/shared/telemetry"
)

const (
	fontRegular = "DejaVuSansCondensed.ttf"
	fontBold    = "DejaVuSansCondensed-Bold.ttf"
	fontBaseURL = "https://github.com/dejavu-fonts/dejavu-fonts/raw/master/ttf/"
)

// EnsureFonts downloads the unicode font files into dir if they are not
// already present. Intended to run once at startup so the render path only
// ever reads local files.
func EnsureFonts(ctx context.Context, client *http.Client, dir string) error {
	if client == nil {
		client = http.DefaultClient
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create font dir: %w", err)
	}

	for _, name := range []string{fontRegular, fontBold} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			continue
		}
		telemetry.Info("fonts.download", map[string]any{"font": name})
		if err := downloadFont(ctx, client, fontBaseURL+name, path); err != nil {
			return fmt.Errorf("download font %s: %w", name, err)
		}
	}
	return nil
}

func downloadFont(ctx context.Context, client *http.Client, url, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".font_*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}

func fontsPresent(dir string) bool {
	for _, name := range []string{fontRegular, fontBold} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			return false
		}
	}
	return true
}
