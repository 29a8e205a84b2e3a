package reader

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const probeTimeout = 5 * time.Second

// Resolver rewrites stored asset paths into servable URLs. Figure paths are
// stored with an "images/" prefix; when the compressed image directory was
// selected at startup the prefix is rewritten to it. The selection is global
// and holds for the life of the process.
type Resolver struct {
	// Prefix is prepended to every asset path: "/assets" when the server
	// serves local assets itself, or a remote asset base URL.
	Prefix string
	// Dir is the selected image directory, "images" or its compressed variant.
	Dir string
}

// Resolve maps a stored figure/page image path to its URL, applying the
// image-directory rewrite.
func (r Resolver) Resolve(path string) string {
	if path == "" {
		return ""
	}
	if r.Dir != "" && r.Dir != "images" && strings.HasPrefix(path, "images/") {
		path = r.Dir + "/" + strings.TrimPrefix(path, "images/")
	}
	return r.Asset(path)
}

// Asset joins a stored path (logos, page scans) onto the prefix unchanged.
func (r Resolver) Asset(path string) string {
	if path == "" {
		return ""
	}
	return strings.TrimSuffix(r.Prefix, "/") + "/" + path
}

// DetectImageDir picks the image directory once at startup: preferred (the
// compressed variant) when a lightweight existence probe of sample under it
// succeeds, fallback otherwise. Any probe error or non-success status counts
// as absent. This is the only network call that carries its own timeout.
func DetectImageDir(ctx context.Context, base, preferred, fallback, sample string) string {
	if preferred == "" || sample == "" {
		return fallback
	}
	if isRemote(base) {
		ctx, cancel := context.WithTimeout(ctx, probeTimeout)
		defer cancel()
		url := strings.TrimSuffix(base, "/") + "/" + preferred + "/" + sample
		req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
		if err != nil {
			return fallback
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return fallback
		}
		resp.Body.Close()
		if resp.StatusCode >= 400 {
			return fallback
		}
		return preferred
	}
	if _, err := os.Stat(filepath.Join(base, preferred, filepath.FromSlash(sample))); err != nil {
		return fallback
	}
	return preferred
}
