package reader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

// ErrRestricted is returned for full-content requests outside private mode.
// The gate sits here, at the data-access boundary, so restricted text is
// never even read, independent of what the render layer would show.
var ErrRestricted = errors.New("full content restricted in public mode")

const sourceTimeout = 15 * time.Second

// Source loads per-paper content documents from the asset base, which is
// either a local directory or an http(s) URL. Every call is a fresh read;
// nothing is cached across detail views.
type Source struct {
	base    string
	remote  bool
	private bool
	client  *http.Client
}

// NewSource creates a Source rooted at base. private grants access to full
// text documents.
func NewSource(base string, private bool) *Source {
	return &Source{
		base:    base,
		remote:  isRemote(base),
		private: private,
		client:  &http.Client{Timeout: sourceTimeout},
	}
}

func isRemote(base string) bool {
	return strings.HasPrefix(base, "http://") || strings.HasPrefix(base, "https://")
}

// Document loads the structured text document for one paper.
func (s *Source) Document(ctx context.Context, paperID string) (*Document, error) {
	if !s.private {
		return nil, ErrRestricted
	}
	data, err := s.read(ctx, path.Join("data", paperID, "text.json"))
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing text document: %w", err)
	}
	return &doc, nil
}

// Markdown loads the raw markdown document for one paper, the last-resort
// full-text source.
func (s *Source) Markdown(ctx context.Context, paperID string) ([]byte, error) {
	if !s.private {
		return nil, ErrRestricted
	}
	return s.read(ctx, path.Join("data", paperID, "text.md"))
}

func (s *Source) read(ctx context.Context, rel string) ([]byte, error) {
	if s.remote {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.base+"/"+rel, nil)
		if err != nil {
			return nil, err
		}
		resp, err := s.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 400 {
			return nil, fmt.Errorf("fetching %s: %s", rel, resp.Status)
		}
		return io.ReadAll(resp.Body)
	}
	return os.ReadFile(filepath.Join(s.base, filepath.FromSlash(rel)))
}
