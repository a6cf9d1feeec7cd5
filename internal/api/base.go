// Package api holds the stateless wire calls against the Stayfinder
// backend. Functions take the HTTP client and base URL explicitly so the
// stores stay trivial to test.
package api

import (
	"io"
	"net/http"

	"github.com/stayfinder/stayfinder-go/internal/types"
)

// HTTPClient interface for dependency injection.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// maxErrBody bounds how much of an error payload is kept for diagnostics.
const maxErrBody = 4 << 10

// statusError drains a bounded prefix of the response body into a
// *types.StatusError for the failed operation.
func statusError(op string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrBody))
	return &types.StatusError{Op: op, StatusCode: resp.StatusCode, Body: string(body)}
}
