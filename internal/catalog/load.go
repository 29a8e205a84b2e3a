package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

const fetchTimeout = 15 * time.Second

// Load reads the dataset named by source: an http(s) URL, a sqlite snapshot
// (.db/.sqlite), or a plain JSON file. The dataset is fetched exactly once;
// a failure here is fatal to the caller, there is nothing to render without it.
func Load(ctx context.Context, source string) (*Collection, error) {
	switch {
	case strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://"):
		return loadURL(ctx, source)
	case strings.HasSuffix(source, ".db") || strings.HasSuffix(source, ".sqlite"):
		return loadSnapshot(source)
	default:
		return loadFile(source)
	}
}

func loadFile(path string) (*Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}
	return decode(data)
}

func loadURL(ctx context.Context, url string) (*Collection, error) {
	client := &http.Client{Timeout: fetchTimeout}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building dataset request: %w", err)
	}
	req.Header.Set("User-Agent", "paperdeck/1.0 (proceedings browser)")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching dataset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("fetching dataset: %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading dataset response: %w", err)
	}
	return decode(data)
}

func decode(data []byte) (*Collection, error) {
	var papers []Paper
	if err := json.Unmarshal(data, &papers); err != nil {
		return nil, fmt.Errorf("parsing dataset: %w", err)
	}
	return NewCollection(papers), nil
}
