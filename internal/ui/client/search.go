package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/Bhavya700/CSE-412/internal/ui/types"
)

// SearchByName searches a single table by player name, e.g endpoint = /api/with-index/search
//
// The caller is responsible for rejecting empty names.
func (c *Client) SearchByName(ctx context.Context, endpoint, name string) (*types.SearchResponse, error) {
	params := url.Values{}
	params.Set("name", name)

	return c.search(ctx, endpoint, params)
}

// SearchByNationPosition runs the two table (join) search, e.g endpoint = /api/with-index/join
//
// The caller is responsible for rejecting empty parameters.
func (c *Client) SearchByNationPosition(ctx context.Context, endpoint, nation, position string) (*types.SearchResponse, error) {
	params := url.Values{}
	params.Set("nation", nation)
	params.Set("position", position)

	return c.search(ctx, endpoint, params)
}

// search makes a single GET request to the endpoint and decodes the search response.
// Failures are logged before being returned.
func (c *Client) search(ctx context.Context, endpoint string, params url.Values) (*types.SearchResponse, error) {
	url := fmt.Sprintf("%s%s?%s", c.baseURL, endpoint, params.Encode())

	searchResp, err := c.doSearch(ctx, url)
	if err != nil {
		attrs := []any{
			slog.String("url", url),
			slog.String("error", err.Error()),
		}
		var ce *ClientError
		if errors.As(err, &ce) {
			if ce.StatusCode > 0 {
				attrs = append(attrs, slog.Int("status", ce.StatusCode))
			}
			if ce.Err != nil && ce.Err.Error() != ce.Message {
				attrs = append(attrs, slog.String("cause", ce.Err.Error()))
			}
		}
		c.logger.Error("search request failed", attrs...)
		return nil, err
	}

	c.logger.Debug("search request completed",
		slog.String("url", url),
		slog.Int("count", len(searchResp.Results)),
		slog.Float64("execution_time", searchResp.ExecutionTime),
	)
	return searchResp, nil
}

func (c *Client) doSearch(ctx context.Context, url string) (*types.SearchResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, NewClientInternalError(err, "creating search request")
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, NewClientConnectionError(err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, NewClientApiError(res)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, NewClientConnectionError(err)
	}

	if c.validate {
		if err := validateSearchResponse(body); err != nil {
			return nil, NewClientInvalidResponseError(err)
		}
	}

	var searchResp types.SearchResponse
	if err := json.Unmarshal(body, &searchResp); err != nil {
		return nil, NewClientInternalError(err, "decoding search response")
	}

	return &searchResp, nil
}
