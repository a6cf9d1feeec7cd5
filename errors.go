package stayfinder

import (
	"errors"

	"github.com/stayfinder/stayfinder-go/internal/storage"
	"github.com/stayfinder/stayfinder-go/internal/types"
)

// ErrNoIdentity is returned when an operation needs an authenticated user
// id and none is present. Raised before any network call.
var ErrNoIdentity = errors.New("no identity")

// ErrNotAuthenticated is returned when an operation needs a valid token
// and the current one is absent or expired. Raised before any network call.
var ErrNotAuthenticated = errors.New("not authenticated")

// ErrNotFound is returned when the backend has no record for the
// requested id.
var ErrNotFound = types.ErrNotFound

// ErrStorageKeyNotFound is the sentinel a Storage implementation must
// return from Get and Remove for absent keys.
var ErrStorageKeyNotFound = storage.ErrNotFound
