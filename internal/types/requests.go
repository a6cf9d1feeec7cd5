package types

import "time"

// ------------------------------
// Request Types
// ------------------------------

// CreateBookingRequest holds parameters for a new booking.
type CreateBookingRequest struct {
	PlaceID    string    `json:"placeId" validate:"required"`
	PlaceTitle string    `json:"placeTitle" validate:"required"`
	PlaceImage string    `json:"placeImage"`
	FirstName  string    `json:"firstName" validate:"required"`
	LastName   string    `json:"lastName" validate:"required"`
	GuestCount int       `json:"guestNumber" validate:"required,min=1"`
	DateFrom   time.Time `json:"bookedFrom" validate:"required"`
	DateTo     time.Time `json:"bookedTo" validate:"required"`
}

// CreateListingRequest holds parameters for a new offered place.
type CreateListingRequest struct {
	Title         string    `json:"title" validate:"required"`
	Description   string    `json:"description" validate:"required"`
	ImageURL      string    `json:"imageUrl" validate:"required"`
	Price         float64   `json:"price" validate:"required,gt=0"`
	AvailableFrom time.Time `json:"availableFrom" validate:"required"`
	AvailableTo   time.Time `json:"availableTo" validate:"required"`
	Location      Location  `json:"location"`
}
