package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/mux"

	"github.com/evcraddock/hustlebust/internal/listing"
)

const (
	healthTimeout   = 2 * time.Second
	shutdownTimeout = 10 * time.Second
)

type indexData struct {
	Listings []*listing.Listing
}

type listingData struct {
	Listing *listing.Listing
}

type errorData struct {
	Status  int
	Message string
}

// handleIndex renders every listing.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	listings, err := s.repo.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, http.StatusOK, "index.html", indexData{Listings: listings})
}

// handleNew renders the empty creation form.
func (s *Server) handleNew(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "new.html", nil)
}

// handleShow renders one listing.
func (s *Server) handleShow(w http.ResponseWriter, r *http.Request) {
	l, err := s.repo.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, http.StatusOK, "show.html", listingData{Listing: l})
}

// handleCreate inserts a listing from listing[...] form fields.
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	fields, err := parseListingForm(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	l, err := s.repo.Create(r.Context(), fields)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	slog.Debug("listing created", "id", l.ID)
	http.Redirect(w, r, "/listings", http.StatusFound)
}

// handleEdit renders the edit form pre-filled with the listing.
func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	l, err := s.repo.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, http.StatusOK, "edit.html", listingData{Listing: l})
}

// handleUpdate replaces the submitted fields and redirects to the listing.
func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	fields, err := parseListingForm(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if _, err := s.repo.Update(r.Context(), id, fields); err != nil {
		s.fail(w, r, err)
		return
	}

	http.Redirect(w, r, "/listings/"+url.PathEscape(id), http.StatusFound)
}

// handleDelete removes a listing and redirects to the index.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.repo.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/listings", http.StatusFound)
}

// handleHealth reports whether the store is reachable.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := s.repo.Ping(ctx); err != nil {
		slog.Warn("health check failed", "error", err)
		apiJSON(w, map[string]string{"status": "unavailable"}, http.StatusServiceUnavailable)
		return
	}
	apiJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusNotFound, "error.html", errorData{Status: http.StatusNotFound, Message: "Page not found"})
}

func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusMethodNotAllowed, "error.html", errorData{Status: http.StatusMethodNotAllowed, Message: "Method not allowed"})
}

// fail renders the error page for err.
// Missing and malformed IDs are both "not found"; bad form input is a 400;
// anything else is logged and shown as a generic 500.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := classify(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	s.render(w, status, "error.html", errorData{Status: status, Message: msg})
}

// classify maps an error to a status code and a user-facing message.
func classify(err error) (int, string) {
	var fe *listing.FieldError
	switch {
	case errors.Is(err, listing.ErrNotFound), errors.Is(err, listing.ErrInvalidID):
		return http.StatusNotFound, "Listing not found"
	case errors.As(err, &fe):
		return http.StatusBadRequest, fmt.Sprintf("Invalid %s: %v", fe.Field, fe.Err)
	case errors.Is(err, errBadForm):
		return http.StatusBadRequest, "Bad request"
	default:
		return http.StatusInternalServerError, "Something went wrong"
	}
}

var errBadForm = errors.New("malformed form body")

// parseListingForm reads listing[...] fields from the request body.
func parseListingForm(r *http.Request) (listing.Fields, error) {
	if err := r.ParseForm(); err != nil {
		return listing.Fields{}, fmt.Errorf("%w: %v", errBadForm, err)
	}
	return listing.ParseForm(r.PostForm)
}

// apiJSON writes a JSON response with the given status code.
func apiJSON(w http.ResponseWriter, data interface{}, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Debug("encoding json response", "error", err)
	}
}
