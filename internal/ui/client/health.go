package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Health checks the backend's /health endpoint, which responds {"status":"ok"} when the service is up
func (c *Client) Health(ctx context.Context) error {
	url := fmt.Sprintf("%s/health", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return NewClientInternalError(err, "creating health request")
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return NewClientConnectionError(err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return NewClientApiError(res)
	}

	var health struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(res.Body).Decode(&health); err != nil {
		return NewClientInternalError(err, "decoding health response")
	}

	if health.Status != "ok" {
		return &ClientError{
			StatusCode: res.StatusCode,
			Message:    fmt.Sprintf("backend reported status %q", health.Status),
		}
	}
	return nil
}
