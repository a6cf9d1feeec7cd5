package stayfinder

import (
	"io"
	"net/http"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
)

// retryTransport re-issues requests that fail recoverably, with
// exponential backoff between attempts. Installed only via WithRetry; the
// default client propagates every failure to the caller on first contact.
type retryTransport struct {
	base        http.RoundTripper
	maxAttempts int
}

// recoverableStatus mirrors StatusError.Recoverable: server errors plus
// request timeout and rate limiting.
func recoverableStatus(code int) bool {
	return code >= 500 || code == http.StatusRequestTimeout || code == http.StatusTooManyRequests
}

func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = 100 * time.Millisecond
	exp.Multiplier = 2
	exp.MaxInterval = 5 * time.Second
	exp.Reset()

	var resp *http.Response
	var err error
	for attempt := 0; ; attempt++ {
		resp, err = base.RoundTrip(req)
		if err == nil && !recoverableStatus(resp.StatusCode) {
			return resp, nil
		}
		if attempt >= t.maxAttempts-1 {
			return resp, err
		}
		// A request with a body can only be retried when the transport can
		// rewind it.
		if req.Body != nil && req.GetBody == nil {
			return resp, err
		}
		if resp != nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
		}
		select {
		case <-req.Context().Done():
			return nil, req.Context().Err()
		case <-time.After(exp.NextBackOff()):
		}
		if req.GetBody != nil {
			body, berr := req.GetBody()
			if berr != nil {
				return nil, berr
			}
			req.Body = body
		}
	}
}
