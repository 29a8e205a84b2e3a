package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/paperdeck/paperdeck/internal/catalog"
	"github.com/paperdeck/paperdeck/internal/query"
	"github.com/paperdeck/paperdeck/internal/reader"
	"github.com/paperdeck/paperdeck/internal/stats"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

var md = goldmark.New()

// Server renders the overview and detail pages over a fixed collection. The
// collection and the statistics derived from it are immutable for the
// process lifetime; all per-view state arrives in the request URL.
type Server struct {
	col      *catalog.Collection
	options  query.Options
	stats    statsView
	source   *reader.Source
	resolver reader.Resolver
	assetDir string // local asset root served under /assets/, empty when remote
	private  bool
	pages    map[string]*template.Template
	mux      *http.ServeMux
}

// statsView is the precomputed statistics panel. It always describes the
// full corpus, never the filtered view.
type statsView struct {
	ProcessNodes []stats.Bucket
	Sessions     []stats.Bucket
	OrgTypes     stats.Donut
	Countries    stats.Donut
}

// New creates a Server. assetDir is the local asset root to serve under
// /assets/, or empty when assets live behind a remote base URL.
func New(col *catalog.Collection, source *reader.Source, resolver reader.Resolver, assetDir string, private bool) (*Server, error) {
	funcMap := template.FuncMap{
		"formatPower": formatPower,
		"formatArea":  formatArea,
		"orDash":      orDash,
	}

	// Parse base template first, then clone per page so each page brings its
	// own {{define "content"}} and {{define "title"}}.
	base, err := template.New("base.html").Funcs(funcMap).ParseFS(templateFS, "templates/base.html")
	if err != nil {
		return nil, fmt.Errorf("parsing base template: %w", err)
	}

	pageNames := []string{"overview.html", "detail.html", "notfound.html"}
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("cloning base for %s: %w", name, err)
		}
		if _, err := clone.ParseFS(templateFS, "templates/"+name); err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		pages[name] = clone
	}

	papers := col.Papers()
	s := &Server{
		col:     col,
		options: query.BuildOptions(papers),
		stats: statsView{
			ProcessNodes: stats.ProcessHistogram(papers),
			Sessions:     stats.SessionHistogram(papers),
			OrgTypes:     stats.OrgTypeDonut(papers),
			Countries:    stats.CountryDonut(papers),
		},
		source:   source,
		resolver: resolver,
		assetDir: assetDir,
		private:  private,
		pages:    pages,
		mux:      http.NewServeMux(),
	}
	s.routes()
	return s, nil
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	staticSub, _ := fs.Sub(staticFS, "static")
	s.mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticSub))))

	if s.assetDir != "" {
		s.mux.Handle("/assets/", http.StripPrefix("/assets/", s.assetHandler()))
	}

	// "/" also catches every unrecognized path; those fall back to the
	// overview rather than a 404.
	s.mux.HandleFunc("/", s.handleOverview)
	s.mux.HandleFunc("/paper/", s.handleDetail)
}

// assetHandler serves the local asset tree. Outside private mode it refuses
// everything but affiliation logos: full images and text documents must not
// leave the server, regardless of what the templates would render.
func (s *Server) assetHandler() http.Handler {
	files := http.FileServer(http.Dir(s.assetDir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.private && !strings.HasPrefix(r.URL.Path, "logos/") {
			http.Error(w, "restricted", http.StatusForbidden)
			return
		}
		files.ServeHTTP(w, r)
	})
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	tmpl, ok := s.pages[name]
	if !ok {
		log.Printf("Template %s not found", name)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "base.html", data); err != nil {
		log.Printf("Error rendering template %s: %v", name, err)
	}
}

func renderMarkdown(text []byte) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert(text, &buf); err != nil {
		return template.HTML("<pre>" + template.HTMLEscapeString(string(text)) + "</pre>")
	}
	return template.HTML(buf.String()) //nolint: gosec
}

// Serve starts the HTTP server on the given port.
func (s *Server) Serve(port int) error {
	addr := fmt.Sprintf("127.0.0.1:%d", port)
	log.Printf("Server listening on http://%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}
