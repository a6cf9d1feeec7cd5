package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Shared validator instance; struct tags carry the field rules, date-range
// ordering is checked separately since it spans two fields.
var validate = validator.New()

// ValidateCreateBooking checks a booking request before any network call.
func ValidateCreateBooking(req CreateBookingRequest) error {
	if err := validate.Struct(req); err != nil {
		return translateValidationError("booking", err)
	}
	if !req.DateTo.After(req.DateFrom) {
		return fmt.Errorf("invalid booking: bookedTo must be after bookedFrom")
	}
	return nil
}

// ValidateCreateListing checks a listing request before any network call.
func ValidateCreateListing(req CreateListingRequest) error {
	if err := validate.Struct(req); err != nil {
		return translateValidationError("listing", err)
	}
	if !req.AvailableTo.After(req.AvailableFrom) {
		return fmt.Errorf("invalid listing: availableTo must be after availableFrom")
	}
	return nil
}

func translateValidationError(entity string, err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return fmt.Errorf("invalid %s: %w", entity, err)
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("invalid %s: %s is required", entity, fe.Field())
	case "min":
		return fmt.Errorf("invalid %s: %s must be at least %s", entity, fe.Field(), fe.Param())
	case "gt":
		return fmt.Errorf("invalid %s: %s must be greater than %s", entity, fe.Field(), fe.Param())
	default:
		return fmt.Errorf("invalid %s: %s failed %s", entity, fe.Field(), fe.Tag())
	}
}
