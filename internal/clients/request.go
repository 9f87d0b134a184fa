package clients

import (
	"context"
	"io"
	"net/http"

	"github.com/google/uuid"
)

// SessionSource hands API clients an HTTP client that carries the current
// bearer token, and receives the invalidation side effect when the service
// rejects that token.
type SessionSource interface {
	// HTTPClient returns a client that attaches the stored token to every
	// request, or ErrNotAuthenticated when no token is held.
	HTTPClient(ctx context.Context) (*http.Client, error)
	// Invalidate clears the stored token.
	Invalidate()
}

func newAPIRequest(ctx context.Context, method, url string, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", USER_AGENT)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	return req, nil
}
