package types

import (
	"strings"
	"testing"
	"time"
)

func validBookingReq() CreateBookingRequest {
	return CreateBookingRequest{
		PlaceID:    "p1",
		PlaceTitle: "Nelly Inn House",
		FirstName:  "Ada",
		LastName:   "Lovelace",
		GuestCount: 2,
		DateFrom:   time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		DateTo:     time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC),
	}
}

func TestValidateCreateBooking(t *testing.T) {
	t.Parallel()
	if err := ValidateCreateBooking(validBookingReq()); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	req := validBookingReq()
	req.GuestCount = 0
	if err := ValidateCreateBooking(req); err == nil {
		t.Fatal("zero guests must be rejected")
	}

	req = validBookingReq()
	req.DateTo = req.DateFrom
	if err := ValidateCreateBooking(req); err == nil || !strings.Contains(err.Error(), "bookedTo") {
		t.Fatalf("expected date-order error, got %v", err)
	}

	req = validBookingReq()
	req.FirstName = ""
	if err := ValidateCreateBooking(req); err == nil || !strings.Contains(err.Error(), "required") {
		t.Fatalf("expected required-field error, got %v", err)
	}
}

func TestValidateCreateListing(t *testing.T) {
	t.Parallel()
	req := CreateListingRequest{
		Title:         "Romantic Cottage",
		Description:   "Romantic location within the city",
		ImageURL:      "https://img.example.com/cottage.jpg",
		Price:         100,
		AvailableFrom: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		AvailableTo:   time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
	}
	if err := ValidateCreateListing(req); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}
	req.Price = 0
	if err := ValidateCreateListing(req); err == nil {
		t.Fatal("zero price must be rejected")
	}
}

func TestIdentityValid(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	id := &Identity{UserID: "u1", Token: "t1", TokenExpiry: now.Add(time.Hour)}
	if !id.Valid(now) {
		t.Fatal("future expiry must be valid")
	}
	if id.Valid(now.Add(2 * time.Hour)) {
		t.Fatal("past expiry must be invalid")
	}
	var none *Identity
	if none.Valid(now) {
		t.Fatal("nil identity must be invalid")
	}
}
