package types

import "time"

// ------------------------------
// Core Domain Entities
// ------------------------------

// Identity is the client's record of the currently authenticated user.
type Identity struct {
	UserID       string    `json:"userId"`
	Email        string    `json:"email"`
	Token        string    `json:"token"`
	TokenExpiry  time.Time `json:"tokenExpirationDate"`
	RefreshToken string    `json:"-"`
}

// Valid reports whether the token is still usable at the given instant.
func (id *Identity) Valid(now time.Time) bool {
	return id != nil && id.Token != "" && now.Before(id.TokenExpiry)
}

// Booking represents a reservation of a place for a date range.
type Booking struct {
	ID         string    `json:"id"`
	PlaceID    string    `json:"placeId"`
	UserID     string    `json:"userId"`
	PlaceTitle string    `json:"placeTitle"`
	PlaceImage string    `json:"placeImage"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	GuestCount int       `json:"guestNumber"`
	DateFrom   time.Time `json:"bookedFrom"`
	DateTo     time.Time `json:"bookedTo"`
}

// Location is an opaque place location sub-document; the client carries it
// through create and update without interpreting it.
type Location struct {
	Lat               float64 `json:"lat"`
	Lng               float64 `json:"lng"`
	Address           string  `json:"address"`
	StaticMapImageURL string  `json:"staticMapImageUrl"`
}

// Listing represents an offered place.
type Listing struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	ImageURL      string    `json:"imageUrl"`
	Price         float64   `json:"price"`
	AvailableFrom time.Time `json:"availableFrom"`
	AvailableTo   time.Time `json:"availableTo"`
	UserID        string    `json:"userId"`
	Location      Location  `json:"location"`
}
