package stayfinder

import (
	"context"
	"net/http"
	"slices"

	"github.com/google/uuid"
	"github.com/stayfinder/stayfinder-go/internal/api"
	"github.com/stayfinder/stayfinder-go/internal/signal"
	"github.com/stayfinder/stayfinder-go/internal/types"
)

// BookingStore mirrors the current user's bookings. The local list is only
// replaced after a confirmed remote change; every operation reads the
// token first, issues the network call, then commits against the latest
// snapshot.
//
// Concurrent Create/Cancel calls are not mutually excluded: the commit is
// atomic so the list never corrupts, but interleaved calls race on which
// snapshot they extend. Callers should await completion between writes.
type BookingStore struct {
	session *SessionStore
	http    *http.Client
	baseURL string
	list    *signal.Signal[[]types.Booking]
}

func newBookingStore(session *SessionStore, httpClient *http.Client, baseURL string) *BookingStore {
	return &BookingStore{
		session: session,
		http:    httpClient,
		baseURL: baseURL,
		list:    signal.New[[]types.Booking](nil),
	}
}

// List returns the current snapshot of bookings.
func (s *BookingStore) List() []Booking {
	return slices.Clone(s.list.Get())
}

// Observe subscribes to list changes; fn receives the current snapshot
// immediately.
func (s *BookingStore) Observe(fn func([]Booking)) func() {
	return s.list.Subscribe(fn)
}

// FetchAll queries the bookings owned by the current user and replaces the
// local list wholesale.
func (s *BookingStore) FetchAll(ctx context.Context) ([]Booking, error) {
	userID, token, err := s.session.requireUser()
	if err != nil {
		return nil, err
	}
	bookings, err := api.ListBookings(ctx, s.http, s.baseURL, token, userID)
	track("bookings", "fetch_all", err)
	if err != nil {
		return nil, err
	}
	s.list.Set(bookings)
	return slices.Clone(bookings), nil
}

// Create stores a new booking remotely and appends it to the local list.
// The booking carries a provisional id until the backend assigns the
// durable one; the rekey happens before the list is published, so the
// provisional id is never observable.
func (s *BookingStore) Create(ctx context.Context, req CreateBookingRequest) (*Booking, error) {
	if err := types.ValidateCreateBooking(req); err != nil {
		return nil, err
	}
	userID, token, err := s.session.requireUser()
	if err != nil {
		return nil, err
	}
	booking := types.Booking{
		ID:         uuid.NewString(),
		PlaceID:    req.PlaceID,
		UserID:     userID,
		PlaceTitle: req.PlaceTitle,
		PlaceImage: req.PlaceImage,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		GuestCount: req.GuestCount,
		DateFrom:   req.DateFrom,
		DateTo:     req.DateTo,
	}
	assignedID, err := api.CreateBooking(ctx, s.http, s.baseURL, token, booking)
	track("bookings", "create", err)
	if err != nil {
		return nil, err
	}
	booking.ID = assignedID
	s.list.Update(func(cur []types.Booking) []types.Booking {
		return append(slices.Clone(cur), booking)
	})
	return &booking, nil
}

// Cancel deletes the booking remotely and removes it from the local list.
func (s *BookingStore) Cancel(ctx context.Context, bookingID string) error {
	token, err := s.session.requireToken()
	if err != nil {
		return err
	}
	err = api.DeleteBooking(ctx, s.http, s.baseURL, token, bookingID)
	track("bookings", "cancel", err)
	if err != nil {
		return err
	}
	s.list.Update(func(cur []types.Booking) []types.Booking {
		out := make([]types.Booking, 0, len(cur))
		for _, b := range cur {
			if b.ID != bookingID {
				out = append(out, b)
			}
		}
		return out
	})
	return nil
}
