// the client package is used by the ui handlers to call the search backend.
// The client normalises the backend's error responses into a single ClientError whose message is shown to the end user,
// and logs every failure before returning it (see client/errors.go)
package client

import (
	"log/slog"
	"net/http"
)

// Client handles communication with the search backend.
// There is no client timeout: a request runs until the backend responds or the caller's context is cancelled.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	validate   bool
}

// NewClient returns a client for the backend at baseURL (scheme, host and port, no trailing slash).
// When validateResponses is true successful responses are checked against the search response schema before decoding.
func NewClient(baseURL string, logger *slog.Logger, validateResponses bool) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
		logger:     logger.With(slog.String("component", "client")),
		validate:   validateResponses,
	}
}

// BaseURL returns the backend address the client was configured with
func (c *Client) BaseURL() string {
	return c.baseURL
}
