package web

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/evcraddock/hustlebust/internal/listing"
)

// apiError writes a JSON error response.
func apiError(w http.ResponseWriter, msg string, code int) {
	apiJSON(w, map[string]string{"error": msg}, code)
}

// apiFail writes err as a JSON error using the same classification as pages.
func apiFail(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := classify(err)
	if status == http.StatusInternalServerError {
		slog.Error("api request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	apiError(w, msg, status)
}

// apiListListings returns all listings as JSON.
func (s *Server) apiListListings(w http.ResponseWriter, r *http.Request) {
	listings, err := s.repo.List(r.Context())
	if err != nil {
		apiFail(w, r, err)
		return
	}
	apiJSON(w, listings, http.StatusOK)
}

// apiGetListing returns one listing.
func (s *Server) apiGetListing(w http.ResponseWriter, r *http.Request) {
	l, err := s.repo.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		apiFail(w, r, err)
		return
	}
	apiJSON(w, l, http.StatusOK)
}

// apiCreateListing inserts a listing from a JSON body.
func (s *Server) apiCreateListing(w http.ResponseWriter, r *http.Request) {
	fields, ok := decodeFields(w, r)
	if !ok {
		return
	}

	l, err := s.repo.Create(r.Context(), fields)
	if err != nil {
		apiFail(w, r, err)
		return
	}
	apiJSON(w, l, http.StatusCreated)
}

// apiUpdateListing replaces the fields present in the JSON body.
func (s *Server) apiUpdateListing(w http.ResponseWriter, r *http.Request) {
	fields, ok := decodeFields(w, r)
	if !ok {
		return
	}

	l, err := s.repo.Update(r.Context(), mux.Vars(r)["id"], fields)
	if err != nil {
		apiFail(w, r, err)
		return
	}
	apiJSON(w, l, http.StatusOK)
}

// apiDeleteListing removes a listing.
func (s *Server) apiDeleteListing(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := s.repo.Delete(r.Context(), id); err != nil {
		apiFail(w, r, err)
		return
	}
	apiJSON(w, map[string]interface{}{"id": id, "removed": true}, http.StatusOK)
}

func decodeFields(w http.ResponseWriter, r *http.Request) (listing.Fields, bool) {
	var f listing.Fields
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return listing.Fields{}, false
	}
	return f.Normalize(), true
}
