package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/evcraddock/hustlebust/internal/listing"
)

func TestList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/listings" {
			t.Errorf("path = %q, want /api/listings", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode([]*listing.Listing{{ID: "a1", Title: "Lida Villa"}}); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	listings, err := c.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listings) != 1 {
		t.Fatalf("got %d listings, want 1", len(listings))
	}
	if listings[0].Title != "Lida Villa" {
		t.Errorf("title = %q", listings[0].Title)
	}
}

func TestGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/listings/a1" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(listing.Listing{ID: "a1", Country: "India"}); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}))
	defer srv.Close()

	c := New(srv.URL + "/")
	l, err := c.Get(context.Background(), "a1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if l.ID != "a1" || l.Country != "India" {
		t.Errorf("got %+v", l)
	}
}

func TestCreate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %q, want POST", r.Method)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("content-type = %q", r.Header.Get("Content-Type"))
		}
		var f listing.Fields
		if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if f.Title == nil || *f.Title != "Cabin" {
			t.Errorf("title = %v", f.Title)
		}
		if f.Price == nil || *f.Price != 1500 {
			t.Errorf("price = %v", f.Price)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(listing.Listing{ID: "new", Title: *f.Title, Price: f.Price}); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}))
	defer srv.Close()

	title, price := "Cabin", 1500.0
	c := New(srv.URL)
	l, err := c.Create(context.Background(), listing.Fields{Title: &title, Price: &price})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if l.ID != "new" {
		t.Errorf("id = %q, want new", l.ID)
	}
}

func TestUpdateSendsClearPrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("method = %q, want PUT", r.Method)
		}
		var f listing.Fields
		if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !f.ClearPrice {
			t.Error("expected clear_price to be sent")
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(listing.Listing{ID: "a1"}); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	if _, err := c.Update(context.Background(), "a1", listing.Fields{ClearPrice: true}); err != nil {
		t.Fatalf("update: %v", err)
	}
}

func TestDelete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %q, want DELETE", r.Method)
		}
		if r.URL.Path != "/api/listings/a1" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL)
	if err := c.Delete(context.Background(), "a1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

func TestNotFoundMapsToErrNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Listing not found"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Get(context.Background(), "missing")
	if !errors.Is(err, listing.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Something went wrong"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.List(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "server error: Something went wrong" {
		t.Errorf("error = %q", err.Error())
	}
}

func TestPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("path = %q, want /health", r.URL.Path)
		}
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := New(srv.URL)
	if err := c.Ping(context.Background()); err == nil {
		t.Fatal("expected error from unhealthy server")
	}
}
