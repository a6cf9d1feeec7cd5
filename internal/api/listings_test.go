package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stayfinder/stayfinder-go/internal/types"
)

func TestListListings(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/offered-places.json" || r.URL.Query().Get("auth") != "t1" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{
			"p1": {"title":"Inn","description":"d","imageUrl":"i","price":100,
			       "availableFrom":"2026-01-01T00:00:00Z","availableTo":"2026-12-31T00:00:00Z",
			       "userId":"u1","location":{"lat":1.5,"lng":2.5,"address":"Main St"}}
		}`))
	}))
	defer srv.Close()

	got, err := ListListings(context.Background(), srv.Client(), srv.URL, "t1")
	if err != nil || len(got) != 1 {
		t.Fatalf("ListListings unexpected: got=%+v err=%v", got, err)
	}
	if got[0].ID != "p1" || got[0].Price != 100 || got[0].Location.Address != "Main St" {
		t.Fatalf("unexpected listing: %+v", got[0])
	}
}

func TestGetListing_NullBodyIsNotFound(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`null`))
	}))
	defer srv.Close()

	_, err := GetListing(context.Background(), srv.Client(), srv.URL, "t1", "missing")
	if !errors.Is(err, types.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetListing_Success(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/offered-places/p1.json" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"title":"Inn","price":100,"userId":"u1"}`))
	}))
	defer srv.Close()

	got, err := GetListing(context.Background(), srv.Client(), srv.URL, "t1", "p1")
	if err != nil || got.ID != "p1" || got.Title != "Inn" {
		t.Fatalf("GetListing unexpected: got=%+v err=%v", got, err)
	}
}

func TestCreateListing(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		var doc map[string]any
		if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
			t.Errorf("decode posted doc: %v", err)
		}
		if _, hasID := doc["id"]; hasID {
			t.Error("posted document must not carry an id")
		}
		_, _ = w.Write([]byte(`{"name":"p9"}`))
	}))
	defer srv.Close()

	id, err := CreateListing(context.Background(), srv.Client(), srv.URL, "t1", types.Listing{ID: "provisional", Title: "Inn"})
	if err != nil || id != "p9" {
		t.Fatalf("CreateListing: id=%q err=%v", id, err)
	}
}

func TestUpdateListing(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/offered-places/p1.json" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		var doc listingDoc
		if err := json.NewDecoder(r.Body).Decode(&doc); err != nil || doc.Title != "New" || doc.Price != 100 {
			t.Errorf("unexpected PUT doc %+v err=%v", doc, err)
		}
		_, _ = w.Write([]byte(`null`))
	}))
	defer srv.Close()

	err := UpdateListing(context.Background(), srv.Client(), srv.URL, "t1", types.Listing{ID: "p1", Title: "New", Price: 100})
	if err != nil {
		t.Fatalf("UpdateListing: %v", err)
	}
}
