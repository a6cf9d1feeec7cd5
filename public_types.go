package stayfinder

import (
	"github.com/stayfinder/stayfinder-go/internal/storage"
	"github.com/stayfinder/stayfinder-go/internal/types"
)

// Public type aliases so SDK consumers can import only the stayfinder
// package.
type (
	// Domain entities
	Identity = types.Identity
	Booking  = types.Booking
	Listing  = types.Listing
	Location = types.Location

	// Requests
	CreateBookingRequest = types.CreateBookingRequest
	CreateListingRequest = types.CreateListingRequest

	// Responses
	ImageUpload = types.ImageUpload

	// Errors carrying structure beyond a sentinel
	AuthError   = types.AuthError
	StatusError = types.StatusError

	// Storage is the persistence backend contract for the session blob.
	Storage = storage.Store
)
