package stayfinder

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"slices"

	"github.com/google/uuid"
	"github.com/stayfinder/stayfinder-go/internal/api"
	"github.com/stayfinder/stayfinder-go/internal/signal"
	"github.com/stayfinder/stayfinder-go/internal/types"
)

// ListingStore mirrors the offered-places collection. See BookingStore for
// the snapshot-commit and concurrency notes; the same contract applies.
type ListingStore struct {
	session   *SessionStore
	http      *http.Client
	baseURL   string
	uploadURL string
	list      *signal.Signal[[]types.Listing]
}

func newListingStore(session *SessionStore, httpClient *http.Client, baseURL, uploadURL string) *ListingStore {
	return &ListingStore{
		session:   session,
		http:      httpClient,
		baseURL:   baseURL,
		uploadURL: uploadURL,
		list:      signal.New[[]types.Listing](nil),
	}
}

// List returns the current snapshot of listings.
func (s *ListingStore) List() []Listing {
	return slices.Clone(s.list.Get())
}

// Observe subscribes to list changes; fn receives the current snapshot
// immediately.
func (s *ListingStore) Observe(fn func([]Listing)) func() {
	return s.list.Subscribe(fn)
}

// FetchAll retrieves the full listing collection and replaces the local
// list wholesale.
func (s *ListingStore) FetchAll(ctx context.Context) ([]Listing, error) {
	token, err := s.session.requireToken()
	if err != nil {
		return nil, err
	}
	listings, err := api.ListListings(ctx, s.http, s.baseURL, token)
	track("listings", "fetch_all", err)
	if err != nil {
		return nil, err
	}
	s.list.Set(listings)
	return slices.Clone(listings), nil
}

// FetchOne retrieves a single listing without touching the local list.
// Returns ErrNotFound when the backend has no document for the id.
func (s *ListingStore) FetchOne(ctx context.Context, listingID string) (*Listing, error) {
	token, err := s.session.requireToken()
	if err != nil {
		return nil, err
	}
	listing, err := api.GetListing(ctx, s.http, s.baseURL, token, listingID)
	track("listings", "fetch_one", err)
	if err != nil {
		return nil, err
	}
	return listing, nil
}

// Create stores a new listing remotely and appends it to the local list,
// rekeying the provisional id to the backend-assigned one before the list
// is published.
func (s *ListingStore) Create(ctx context.Context, req CreateListingRequest) (*Listing, error) {
	if err := types.ValidateCreateListing(req); err != nil {
		return nil, err
	}
	userID, token, err := s.session.requireUser()
	if err != nil {
		return nil, err
	}
	listing := types.Listing{
		ID:            uuid.NewString(),
		Title:         req.Title,
		Description:   req.Description,
		ImageURL:      req.ImageURL,
		Price:         req.Price,
		AvailableFrom: req.AvailableFrom,
		AvailableTo:   req.AvailableTo,
		UserID:        userID,
		Location:      req.Location,
	}
	assignedID, err := api.CreateListing(ctx, s.http, s.baseURL, token, listing)
	track("listings", "create", err)
	if err != nil {
		return nil, err
	}
	listing.ID = assignedID
	s.list.Update(func(cur []types.Listing) []types.Listing {
		return append(slices.Clone(cur), listing)
	})
	return &listing, nil
}

// Update replaces the listing's title and description, carrying every
// other field over from the prior in-memory copy. When the local list is
// empty it fetches the collection first; the listing is not re-read from
// the backend after the PUT.
func (s *ListingStore) Update(ctx context.Context, listingID, title, description string) (*Listing, error) {
	token, err := s.session.requireToken()
	if err != nil {
		return nil, err
	}
	cur := s.list.Get()
	if len(cur) == 0 {
		if _, err := s.FetchAll(ctx); err != nil {
			return nil, err
		}
		cur = s.list.Get()
	}
	idx := slices.IndexFunc(cur, func(l types.Listing) bool { return l.ID == listingID })
	if idx < 0 {
		return nil, ErrNotFound
	}
	updated := cur[idx]
	updated.Title = title
	updated.Description = description

	err = api.UpdateListing(ctx, s.http, s.baseURL, token, updated)
	track("listings", "update", err)
	if err != nil {
		return nil, err
	}
	s.list.Update(func(latest []types.Listing) []types.Listing {
		out := slices.Clone(latest)
		for i := range out {
			if out[i].ID == listingID {
				out[i] = updated
			}
		}
		return out
	})
	return &updated, nil
}

// UploadImage streams an image to the storage function and returns the
// assigned URL and path. The local list is untouched; the caller
// associates the URL with a subsequent Create or Update.
func (s *ListingStore) UploadImage(ctx context.Context, filename string, r io.Reader) (*ImageUpload, error) {
	if s.uploadURL == "" {
		return nil, fmt.Errorf("stayfinder: ImageUploadURL is not configured")
	}
	token, err := s.session.requireToken()
	if err != nil {
		return nil, err
	}
	upload, err := api.UploadImage(ctx, s.http, s.uploadURL, token, filename, r)
	track("listings", "upload_image", err)
	if err != nil {
		return nil, err
	}
	return upload, nil
}
