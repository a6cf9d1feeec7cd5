package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/stayfinder/stayfinder-go/internal/types"
)

// listingDoc is the offered place as stored by the backend; see bookingDoc
// for the id convention.
type listingDoc struct {
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	ImageURL      string         `json:"imageUrl"`
	Price         float64        `json:"price"`
	AvailableFrom time.Time      `json:"availableFrom"`
	AvailableTo   time.Time      `json:"availableTo"`
	UserID        string         `json:"userId"`
	Location      types.Location `json:"location"`
}

func (d listingDoc) toListing(id string) types.Listing {
	return types.Listing{
		ID:            id,
		Title:         d.Title,
		Description:   d.Description,
		ImageURL:      d.ImageURL,
		Price:         d.Price,
		AvailableFrom: d.AvailableFrom,
		AvailableTo:   d.AvailableTo,
		UserID:        d.UserID,
		Location:      d.Location,
	}
}

func listingToDoc(l types.Listing) listingDoc {
	return listingDoc{
		Title:         l.Title,
		Description:   l.Description,
		ImageURL:      l.ImageURL,
		Price:         l.Price,
		AvailableFrom: l.AvailableFrom,
		AvailableTo:   l.AvailableTo,
		UserID:        l.UserID,
		Location:      l.Location,
	}
}

// ListListings retrieves the full offered-places collection.
func ListListings(ctx context.Context, httpClient *http.Client, baseURL, token string) ([]types.Listing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	endpoint := fmt.Sprintf("%s/offered-places.json?auth=%s", baseURL, url.QueryEscape(token))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError("list listings", resp)
	}

	var docs map[string]listingDoc
	if err := json.NewDecoder(resp.Body).Decode(&docs); err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(docs))
	for k := range docs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	listings := make([]types.Listing, 0, len(docs))
	for _, k := range keys {
		listings = append(listings, docs[k].toListing(k))
	}
	return listings, nil
}

// GetListing retrieves a single offered place. Returns types.ErrNotFound
// when the backend has no document for the id (a 200 with a null body).
func GetListing(ctx context.Context, httpClient *http.Client, baseURL, token, listingID string) (*types.Listing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	endpoint := fmt.Sprintf("%s/offered-places/%s.json?auth=%s", baseURL, url.PathEscape(listingID), url.QueryEscape(token))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError("get listing", resp)
	}

	var doc *listingDoc
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, types.ErrNotFound
	}
	l := doc.toListing(listingID)
	return &l, nil
}

// CreateListing stores a new offered place and returns the assigned id.
func CreateListing(ctx context.Context, httpClient *http.Client, baseURL, token string, l types.Listing) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	body, err := json.Marshal(listingToDoc(l))
	if err != nil {
		return "", err
	}
	endpoint := fmt.Sprintf("%s/offered-places.json?auth=%s", baseURL, url.QueryEscape(token))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", statusError("create listing", resp)
	}

	var assigned struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&assigned); err != nil {
		return "", err
	}
	if assigned.Name == "" {
		return "", fmt.Errorf("create listing: backend assigned no id")
	}
	return assigned.Name, nil
}

// UpdateListing overwrites the stored document for l.ID with l.
func UpdateListing(ctx context.Context, httpClient *http.Client, baseURL, token string, l types.Listing) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := json.Marshal(listingToDoc(l))
	if err != nil {
		return err
	}
	endpoint := fmt.Sprintf("%s/offered-places/%s.json?auth=%s", baseURL, url.PathEscape(l.ID), url.QueryEscape(token))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return statusError("update listing", resp)
	}
	return nil
}
