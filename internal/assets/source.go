// Package assets reads the raw data files from a directory, an HTTP server or
// the local cache.
package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/npillmayer/schuko/tracing"
)

// Asset file names.
const (
	ASCIIFreq      = "ascii_freq.json"
	UnicodeInfo    = "unicode-characters_info.csv"
	UnicodeScripts = "unicode_language.csv"
	EmojiAll       = "emoji_all.csv"
	EmojiUS        = "emoji_us.csv"
	EmojiUK        = "emoji_uk.csv"
	WorldAtlas     = "countries-110m.json"
)

// Names lists the tabular assets loaded on startup.
var Names = []string{ASCIIFreq, UnicodeInfo, UnicodeScripts, EmojiAll, EmojiUS, EmojiUK}

// WorldAtlasBase hosts the world boundaries file.
const WorldAtlasBase = "https://unpkg.com/world-atlas@2.0.2"

// ErrNotFound is returned when an asset does not exist in a source.
var ErrNotFound = errors.New("asset not found")

// Source fetches raw asset bodies by name.
type Source interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

func tracer() tracing.Trace {
	return tracing.Select("glyphscope.assets")
}

// DirSource reads assets from a local directory.
type DirSource struct {
	Root string
}

// Fetch reads <Root>/<name>.
func (s DirSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := filepath.Join(s.Root, filepath.FromSlash(name))
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	tracer().Debugf("read %s from %s (%d bytes)", name, s.Root, len(data))
	return data, nil
}

// HTTPSource downloads assets relative to a base URL. Names that are already
// absolute URLs are fetched as is.
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
	// Progress, when set, wraps each response body, for example to drive a
	// download bar. size is -1 when the server does not report a length.
	Progress func(name string, size int64) io.Writer
}

// Fetch performs a GET request. Any status other than 200 is an error.
func (s HTTPSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	url := s.url(name)
	resp, err := s.request(ctx, url)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status for %s: %s", name, resp.Status)
	}

	var body io.Reader = resp.Body
	if s.Progress != nil {
		if w := s.Progress(name, resp.ContentLength); w != nil {
			body = io.TeeReader(resp.Body, w)
		}
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", name, err)
	}
	tracer().Debugf("downloaded %s (%d bytes)", url, len(data))
	return data, nil
}

func (s HTTPSource) url(name string) string {
	if strings.HasPrefix(name, "http://") || strings.HasPrefix(name, "https://") {
		return name
	}
	return strings.TrimRight(s.BaseURL, "/") + "/" + strings.TrimLeft(name, "/")
}

func (s HTTPSource) request(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}
