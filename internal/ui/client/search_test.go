package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

const messiResponse = `{"results":[{"id":1,"name":"Lionel Messi","nation":"Argentina","club":"Inter Miami","position":"ST","overall":90,"pace":80}],"execution_time":0.0021,"count":1}`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSearchByName(t *testing.T) {
	var calls atomic.Int32
	var gotPath, gotQuery string

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, messiResponse)
	}))
	defer backend.Close()

	c := NewClient(backend.URL, testLogger(), true)

	resp, err := c.SearchByName(context.Background(), "/api/with-index/search", "Messi")
	if err != nil {
		t.Fatalf("SearchByName() error = %v", err)
	}

	if calls.Load() != 1 {
		t.Errorf("expected exactly 1 request, got %d", calls.Load())
	}
	if gotPath != "/api/with-index/search" {
		t.Errorf("path = %q, want %q", gotPath, "/api/with-index/search")
	}
	if gotQuery != "name=Messi" {
		t.Errorf("query = %q, want %q", gotQuery, "name=Messi")
	}

	if len(resp.Results) != 1 {
		t.Fatalf("got %d results, want 1", len(resp.Results))
	}
	p := resp.Results[0]
	if p.ID != 1 || p.Name != "Lionel Messi" || p.Nation != "Argentina" || p.Club != "Inter Miami" || p.Position != "ST" || p.Overall != 90 || p.Pace != 80 {
		t.Errorf("unexpected player: %+v", p)
	}
	if resp.ExecutionTime != 0.0021 {
		t.Errorf("execution time = %v, want 0.0021", resp.ExecutionTime)
	}
	if resp.Count != 1 {
		t.Errorf("count = %d, want 1", resp.Count)
	}
}

func TestSearchQueryEncoding(t *testing.T) {
	tests := []struct {
		name      string
		search    func(c *Client) error
		wantPath  string
		wantQuery string
		wantName  string
		wantNat   string
		wantPos   string
	}{
		{
			name: "name with space and accent",
			search: func(c *Client) error {
				_, err := c.SearchByName(context.Background(), "/api/no-index/search", "Kylian Mbappé")
				return err
			},
			wantPath:  "/api/no-index/search",
			wantQuery: "name=Kylian+Mbapp%C3%A9",
			wantName:  "Kylian Mbappé",
		},
		{
			name: "name with reserved characters",
			search: func(c *Client) error {
				_, err := c.SearchByName(context.Background(), "/api/no-index/search", "a&b=c?d")
				return err
			},
			wantPath:  "/api/no-index/search",
			wantQuery: "name=a%26b%3Dc%3Fd",
			wantName:  "a&b=c?d",
		},
		{
			name: "join parameters",
			search: func(c *Client) error {
				_, err := c.SearchByNationPosition(context.Background(), "/api/with-index/join", "Côte d'Ivoire", "ST")
				return err
			},
			wantPath:  "/api/with-index/join",
			wantQuery: "nation=C%C3%B4te+d%27Ivoire&position=ST",
			wantNat:   "Côte d'Ivoire",
			wantPos:   "ST",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath, gotQuery, gotName, gotNat, gotPos string
			backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotQuery = r.URL.RawQuery
				gotName = r.URL.Query().Get("name")
				gotNat = r.URL.Query().Get("nation")
				gotPos = r.URL.Query().Get("position")
				fmt.Fprint(w, `{"results":[],"execution_time":0.5,"count":0}`)
			}))
			defer backend.Close()

			if err := tt.search(NewClient(backend.URL, testLogger(), true)); err != nil {
				t.Fatalf("search error = %v", err)
			}

			if gotPath != tt.wantPath {
				t.Errorf("path = %q, want %q", gotPath, tt.wantPath)
			}
			if gotQuery != tt.wantQuery {
				t.Errorf("raw query = %q, want %q", gotQuery, tt.wantQuery)
			}
			if gotName != tt.wantName || gotNat != tt.wantNat || gotPos != tt.wantPos {
				t.Errorf("decoded params = (%q, %q, %q), want (%q, %q, %q)", gotName, gotNat, gotPos, tt.wantName, tt.wantNat, tt.wantPos)
			}
		})
	}
}

func TestSearchErrorResponses(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
	}{
		{
			name:        "json message used verbatim",
			status:      http.StatusBadRequest,
			body:        `{"message":"X"}`,
			wantMessage: "X",
		},
		{
			name:        "unparseable body",
			status:      http.StatusInternalServerError,
			body:        `<html>oops</html>`,
			wantMessage: "Error 500: Internal Server Error",
		},
		{
			name:        "json without message field",
			status:      http.StatusBadRequest,
			body:        `{"error":"Missing \"name\" parameter"}`,
			wantMessage: "Error 400: Bad Request",
		},
		{
			name:        "empty message field",
			status:      http.StatusNotFound,
			body:        `{"message":""}`,
			wantMessage: "Error 404: Not Found",
		},
		{
			name:        "numeric message",
			status:      http.StatusBadRequest,
			body:        `{"message":123}`,
			wantMessage: "123",
		},
		{
			name:        "boolean message",
			status:      http.StatusBadRequest,
			body:        `{"message":true}`,
			wantMessage: "true",
		},
		{
			name:        "zero message is ignored",
			status:      http.StatusBadRequest,
			body:        `{"message":0}`,
			wantMessage: "Error 400: Bad Request",
		},
		{
			name:        "null message is ignored",
			status:      http.StatusBadRequest,
			body:        `{"message":null}`,
			wantMessage: "Error 400: Bad Request",
		},
		{
			name:        "object message",
			status:      http.StatusUnprocessableEntity,
			body:        `{"message":{"field":"name"}}`,
			wantMessage: `{"field":"name"}`,
		},
		{
			name:        "empty body",
			status:      http.StatusServiceUnavailable,
			body:        ``,
			wantMessage: "Error 503: Service Unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer backend.Close()

			c := NewClient(backend.URL, testLogger(), true)
			_, err := c.SearchByName(context.Background(), "/api/no-index/search", "Messi")
			if err == nil {
				t.Fatal("expected an error, got nil")
			}

			if err.Error() != tt.wantMessage {
				t.Errorf("error message = %q, want %q", err.Error(), tt.wantMessage)
			}

			var ce *ClientError
			if !errors.As(err, &ce) {
				t.Fatalf("expected *ClientError, got %T", err)
			}
			if ce.StatusCode != tt.status {
				t.Errorf("status code = %d, want %d", ce.StatusCode, tt.status)
			}
		})
	}
}

func TestSearchConnectionError(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := backend.URL
	backend.Close() // connections will be refused

	c := NewClient(baseURL, testLogger(), true)
	_, err := c.SearchByNationPosition(context.Background(), "/api/no-index/join", "Brazil", "ST")
	if err == nil {
		t.Fatal("expected a connection error, got nil")
	}

	var ce *ClientError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *ClientError, got %T", err)
	}
	if ce.StatusCode != 0 {
		t.Errorf("status code = %d, want 0 for a network error", ce.StatusCode)
	}
	if ce.Err == nil || ce.Message != ce.Err.Error() {
		t.Errorf("expected the underlying error message to be passed through, got %q", ce.Message)
	}
}

func TestSearchResponseValidation(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		validate bool
		wantErr  bool
	}{
		{"valid response", messiResponse, true, false},
		{"null stats are accepted", `{"results":[{"id":7,"name":"X","nation":"Y","club":"Z","position":"CB","overall":null,"pace":null}],"execution_time":0.1,"count":1}`, true, false},
		{"null name is accepted", `{"results":[{"id":3,"name":null,"nation":"Spain","club":null,"position":"CM","overall":81,"pace":70}],"execution_time":0.01,"count":1}`, true, false},
		{"null id is accepted", `{"results":[{"id":null,"name":"X"}],"execution_time":0.01,"count":1}`, true, false},
		{"missing execution_time", `{"results":[],"count":0}`, true, true},
		{"execution_time is a string", `{"results":[],"execution_time":"fast","count":0}`, true, true},
		{"player id is a string", `{"results":[{"id":"1","name":"X"}],"execution_time":0.1,"count":1}`, true, true},
		{"malformed json", `{"results":[`, true, true},
		{"missing execution_time without validation", `{"results":[],"count":0}`, false, false},
		{"malformed json without validation", `{"results":[`, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tt.body)
			}))
			defer backend.Close()

			c := NewClient(backend.URL, testLogger(), tt.validate)
			resp, err := c.SearchByName(context.Background(), "/api/with-index/search", "X")
			if (err != nil) != tt.wantErr {
				t.Errorf("SearchByName() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && resp == nil {
				t.Error("expected a response when there is no error")
			}
		})
	}
}

func TestSearchInvalidResponseMessage(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"results":[{"id":"1","name":"X"}],"execution_time":0.1,"count":1}`)
	}))
	defer backend.Close()

	c := NewClient(backend.URL, testLogger(), true)
	_, err := c.SearchByName(context.Background(), "/api/with-index/search", "X")
	if err == nil {
		t.Fatal("expected an error, got nil")
	}

	if err.Error() != InvalidResponseMessage {
		t.Errorf("error message = %q, want %q", err.Error(), InvalidResponseMessage)
	}

	var ce *ClientError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *ClientError, got %T", err)
	}
	if ce.Err == nil {
		t.Error("expected the validation details to be kept in Err")
	}
}

func TestSearchPreservesBackendOrder(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"results":[{"id":9,"name":"C"},{"id":2,"name":"A"},{"id":5,"name":"B"}],"execution_time":0.3,"count":3}`)
	}))
	defer backend.Close()

	resp, err := NewClient(backend.URL, testLogger(), true).SearchByName(context.Background(), "/api/no-index/search", "a")
	if err != nil {
		t.Fatalf("SearchByName() error = %v", err)
	}

	wantIDs := []int{9, 2, 5}
	for i, p := range resp.Results {
		if p.ID != wantIDs[i] {
			t.Errorf("result %d id = %d, want %d", i, p.ID, wantIDs[i])
		}
	}
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr bool
	}{
		{"healthy", http.StatusOK, `{"status":"ok"}`, false},
		{"unexpected status value", http.StatusOK, `{"status":"degraded"}`, true},
		{"error status", http.StatusInternalServerError, ``, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/health" {
					t.Errorf("path = %q, want /health", r.URL.Path)
				}
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer backend.Close()

			err := NewClient(backend.URL, testLogger(), true).Health(context.Background())
			if (err != nil) != tt.wantErr {
				t.Errorf("Health() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSearchFailureIsLogged(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantAttrs []string
	}{
		{
			name:      "api error logs the status",
			status:    http.StatusBadRequest,
			body:      `{"message":"Name parameter is required"}`,
			wantAttrs: []string{"status=400", `error="Name parameter is required"`},
		},
		{
			name:      "invalid response logs the validation cause",
			status:    http.StatusOK,
			body:      `{"results":[],"execution_time":"fast","count":0}`,
			wantAttrs: []string{"cause=", "execution_time"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer backend.Close()

			var logs bytes.Buffer
			c := NewClient(backend.URL, slog.New(slog.NewTextHandler(&logs, nil)), true)

			if _, err := c.SearchByName(context.Background(), "/api/no-index/search", "Messi"); err == nil {
				t.Fatal("expected an error, got nil")
			}

			out := logs.String()
			if !strings.Contains(out, "search request failed") {
				t.Fatalf("expected a failure log entry, got %q", out)
			}
			for _, want := range tt.wantAttrs {
				if !strings.Contains(out, want) {
					t.Errorf("log entry does not contain %q: %s", want, out)
				}
			}
		})
	}
}
