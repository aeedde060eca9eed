// Package web provides the HTTP server and handlers for the listings web UI.
package web

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/evcraddock/hustlebust/internal/config"
	"github.com/evcraddock/hustlebust/internal/listing"
	"github.com/evcraddock/hustlebust/internal/logging"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

// Server is the web UI HTTP server.
type Server struct {
	repo      listing.Repository
	templates *template.Template
	router    *mux.Router
	handler   http.Handler
}

// Options configures optional server behavior.
type Options struct {
	// PublicDir is served at the site root for paths no route matches.
	// Ignored when empty or missing.
	PublicDir string
}

// NewServer creates a web server backed by repo.
func NewServer(repo listing.Repository, opts Options) (*Server, error) {
	funcMap := template.FuncMap{
		"formatPrice": tmplFormatPrice,
		"priceValue":  tmplPriceValue,
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	s := &Server{
		repo:      repo,
		templates: tmpl,
		router:    mux.NewRouter(),
	}

	staticContent, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("creating static sub-fs: %w", err)
	}

	r := s.router
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.FS(staticContent))))
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/listings", s.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/listings", s.handleCreate).Methods(http.MethodPost)
	r.HandleFunc("/listing", s.handleCreate).Methods(http.MethodPost)
	r.HandleFunc("/listings/new", s.handleNew).Methods(http.MethodGet)
	r.HandleFunc("/listings/{id}", s.handleShow).Methods(http.MethodGet)
	r.HandleFunc("/listings/{id}", s.handleUpdate).Methods(http.MethodPut, http.MethodPatch)
	r.HandleFunc("/listings/{id}", s.handleDelete).Methods(http.MethodDelete)
	r.HandleFunc("/listings/{id}/edit", s.handleEdit).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/listings", s.apiListListings).Methods(http.MethodGet)
	api.HandleFunc("/listings", s.apiCreateListing).Methods(http.MethodPost)
	api.HandleFunc("/listings/{id}", s.apiGetListing).Methods(http.MethodGet)
	api.HandleFunc("/listings/{id}", s.apiUpdateListing).Methods(http.MethodPut, http.MethodPatch)
	api.HandleFunc("/listings/{id}", s.apiDeleteListing).Methods(http.MethodDelete)

	r.NotFoundHandler = http.HandlerFunc(s.handleNotFound)
	if dirExists(opts.PublicDir) {
		r.NotFoundHandler = s.publicOrNotFound(http.Dir(opts.PublicDir))
	}
	r.MethodNotAllowedHandler = http.HandlerFunc(s.handleMethodNotAllowed)

	s.handler = logging.RequestLogger(MethodOverride(r))

	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string, cfg config.HTTPConfig) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving http: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

// render executes a page template into a buffer and writes it with status.
func (s *Server) render(w http.ResponseWriter, status int, name string, data interface{}) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		slog.Error("rendering template", "template", name, "error", err)
		http.Error(w, "Error rendering page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Debug("writing response", "error", err)
	}
}

// Template helper functions

func tmplFormatPrice(p *float64) string {
	if p == nil {
		return "—"
	}
	return "Rs " + listing.FormatAmount(*p)
}

func tmplPriceValue(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}

// publicOrNotFound serves files from dir for GET and HEAD requests no route
// matched. Anything else, including directories, gets the not-found page.
func (s *Server) publicOrNotFound(dir http.Dir) http.Handler {
	files := http.FileServer(dir)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if (r.Method == http.MethodGet || r.Method == http.MethodHead) && isPublicFile(dir, r.URL.Path) {
			files.ServeHTTP(w, r)
			return
		}
		s.handleNotFound(w, r)
	})
}

func isPublicFile(dir http.Dir, name string) bool {
	f, err := dir.Open(path.Clean("/" + name))
	if err != nil {
		return false
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	return err == nil && !info.IsDir()
}

func dirExists(dir string) bool {
	if dir == "" {
		return false
	}
	info, err := os.Stat(dir)
	return err == nil && info.IsDir()
}
