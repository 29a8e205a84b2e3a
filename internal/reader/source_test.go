package reader

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func writeAssetTree(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	dir := filepath.Join(base, "data", "2.1")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	doc := `{"sections": [{"type": "body", "text": "Hello.", "figure": 1}]}`
	if err := os.WriteFile(filepath.Join(dir, "text.json"), []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "text.md"), []byte("# Hello\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return base
}

func TestSourceDocumentLocal(t *testing.T) {
	src := NewSource(writeAssetTree(t), true)
	doc, err := src.Document(context.Background(), "2.1")
	if err != nil {
		t.Fatalf("Document: %v", err)
	}
	if len(doc.Sections) != 1 || doc.Sections[0].Text != "Hello." {
		t.Errorf("document = %+v", doc)
	}
}

func TestSourceRestrictedInPublicMode(t *testing.T) {
	src := NewSource(writeAssetTree(t), false)
	if _, err := src.Document(context.Background(), "2.1"); !errors.Is(err, ErrRestricted) {
		t.Errorf("Document in public mode: %v, want ErrRestricted", err)
	}
	if _, err := src.Markdown(context.Background(), "2.1"); !errors.Is(err, ErrRestricted) {
		t.Errorf("Markdown in public mode: %v, want ErrRestricted", err)
	}
}

func TestSourceDocumentRemote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/data/2.1/text.json" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"sections": [{"type": "body", "text": "Remote."}]}`))
	}))
	defer srv.Close()

	src := NewSource(srv.URL, true)
	doc, err := src.Document(context.Background(), "2.1")
	if err != nil {
		t.Fatalf("Document: %v", err)
	}
	if len(doc.Sections) != 1 || doc.Sections[0].Text != "Remote." {
		t.Errorf("document = %+v", doc)
	}

	if _, err := src.Document(context.Background(), "9.9"); err == nil {
		t.Error("missing remote document should fail")
	}
}

func TestResolverRewritesImageDir(t *testing.T) {
	r := Resolver{Prefix: "/assets", Dir: "images_web"}
	if got := r.Resolve("images/2.1/fig_1.png"); got != "/assets/images_web/2.1/fig_1.png" {
		t.Errorf("Resolve() = %q", got)
	}
	if got := r.Asset("logos/mit.png"); got != "/assets/logos/mit.png" {
		t.Errorf("Asset() = %q", got)
	}
	if got := r.Resolve(""); got != "" {
		t.Errorf("empty path resolves to %q", got)
	}

	// No rewrite when the fallback directory was selected.
	plain := Resolver{Prefix: "/assets", Dir: "images"}
	if got := plain.Resolve("images/2.1/fig_1.png"); got != "/assets/images/2.1/fig_1.png" {
		t.Errorf("fallback Resolve() = %q", got)
	}
}

func TestDetectImageDirLocal(t *testing.T) {
	base := t.TempDir()
	sample := filepath.Join(base, "images_web", "2.1")
	if err := os.MkdirAll(sample, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sample, "fig_1.png"), []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	if got := DetectImageDir(ctx, base, "images_web", "images", "2.1/fig_1.png"); got != "images_web" {
		t.Errorf("existing sample should select preferred dir, got %q", got)
	}
	if got := DetectImageDir(ctx, base, "images_web", "images", "9.9/fig_1.png"); got != "images" {
		t.Errorf("missing sample should fall back, got %q", got)
	}
}

func TestDetectImageDirRemote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/images_web/2.1/fig_1.png" {
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	ctx := context.Background()
	if got := DetectImageDir(ctx, srv.URL, "images_web", "images", "2.1/fig_1.png"); got != "images_web" {
		t.Errorf("remote probe hit should select preferred dir, got %q", got)
	}
	if got := DetectImageDir(ctx, srv.URL, "images_web", "images", "9.9/fig_1.png"); got != "images" {
		t.Errorf("remote probe miss should fall back, got %q", got)
	}

	srv.Close()
	if got := DetectImageDir(ctx, srv.URL, "images_web", "images", "2.1/fig_1.png"); got != "images" {
		t.Errorf("unreachable probe should fall back, got %q", got)
	}
}
