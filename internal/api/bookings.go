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

// bookingDoc is the booking as stored by the backend; the entity id lives
// in the surrounding object key, never in the document itself.
type bookingDoc struct {
	PlaceID     string    `json:"placeId"`
	UserID      string    `json:"userId"`
	PlaceTitle  string    `json:"placeTitle"`
	PlaceImage  string    `json:"placeImage"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	GuestNumber int       `json:"guestNumber"`
	BookedFrom  time.Time `json:"bookedFrom"`
	BookedTo    time.Time `json:"bookedTo"`
}

func (d bookingDoc) toBooking(id string) types.Booking {
	return types.Booking{
		ID:         id,
		PlaceID:    d.PlaceID,
		UserID:     d.UserID,
		PlaceTitle: d.PlaceTitle,
		PlaceImage: d.PlaceImage,
		FirstName:  d.FirstName,
		LastName:   d.LastName,
		GuestCount: d.GuestNumber,
		DateFrom:   d.BookedFrom,
		DateTo:     d.BookedTo,
	}
}

func bookingToDoc(b types.Booking) bookingDoc {
	return bookingDoc{
		PlaceID:     b.PlaceID,
		UserID:      b.UserID,
		PlaceTitle:  b.PlaceTitle,
		PlaceImage:  b.PlaceImage,
		FirstName:   b.FirstName,
		LastName:    b.LastName,
		GuestNumber: b.GuestCount,
		BookedFrom:  b.DateFrom,
		BookedTo:    b.DateTo,
	}
}

// ListBookings retrieves the bookings owned by userID.
func ListBookings(ctx context.Context, httpClient *http.Client, baseURL, token, userID string) ([]types.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	endpoint := fmt.Sprintf(`%s/bookings.json?orderBy=%%22userId%%22&equalTo=%%22%s%%22&auth=%s`,
		baseURL, url.QueryEscape(userID), url.QueryEscape(token))
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
		return nil, statusError("list bookings", resp)
	}

	// Empty collections come back as a JSON null, not an empty object.
	var docs map[string]bookingDoc
	if err := json.NewDecoder(resp.Body).Decode(&docs); err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(docs))
	for k := range docs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	bookings := make([]types.Booking, 0, len(docs))
	for _, k := range keys {
		bookings = append(bookings, docs[k].toBooking(k))
	}
	return bookings, nil
}

// CreateBooking stores a new booking and returns the backend-assigned id.
func CreateBooking(ctx context.Context, httpClient *http.Client, baseURL, token string, b types.Booking) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	body, err := json.Marshal(bookingToDoc(b))
	if err != nil {
		return "", err
	}
	endpoint := fmt.Sprintf("%s/bookings.json?auth=%s", baseURL, url.QueryEscape(token))
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
		return "", statusError("create booking", resp)
	}

	var assigned struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&assigned); err != nil {
		return "", err
	}
	if assigned.Name == "" {
		return "", fmt.Errorf("create booking: backend assigned no id")
	}
	return assigned.Name, nil
}

// DeleteBooking removes a booking by id.
func DeleteBooking(ctx context.Context, httpClient *http.Client, baseURL, token, bookingID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	endpoint := fmt.Sprintf("%s/bookings/%s.json?auth=%s", baseURL, url.PathEscape(bookingID), url.QueryEscape(token))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return statusError("delete booking", resp)
	}
	return nil
}
