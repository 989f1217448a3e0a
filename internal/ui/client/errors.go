package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/Bhavya700/CSE-412/internal/ui/types"
)

// ClientError represents an error encountered when communicating with the search backend
// StatusCode 0 = network/connection or internal error, >0 = HTTP response received
//
// Message is displayed to the end user as-is.
type ClientError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *ClientError) Error() string {
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Err
}

// NewClientConnectionError creates a ClientError for network/connection issues.
// The underlying error message is passed through unchanged.
func NewClientConnectionError(err error) *ClientError {
	return &ClientError{
		StatusCode: 0,
		Message:    err.Error(),
		Err:        err,
	}
}

// NewClientInternalError creates a ClientError for internal errors, supply the error and an explanation of what was being done when the error occurred
func NewClientInternalError(err error, while string) *ClientError {
	return &ClientError{
		StatusCode: 0,
		Message:    fmt.Sprintf("%v while %v", err, while),
		Err:        err,
	}
}

// InvalidResponseMessage is shown when a successful response does not have the expected shape
const InvalidResponseMessage = "Invalid response from search backend"

// NewClientInvalidResponseError creates a ClientError for a 2xx response whose body can't be used.
// The validation details are kept in Err for logging.
func NewClientInvalidResponseError(err error) *ClientError {
	return &ClientError{
		StatusCode: 0,
		Message:    InvalidResponseMessage,
		Err:        err,
	}
}

// NewClientApiError creates a ClientError from a non-2xx response sent by the backend.
//
// If the body is a JSON object with a non-empty "message" field the message is used verbatim,
// otherwise the message is "Error {status}: {status text}"
func NewClientApiError(res *http.Response) *ClientError {
	message := fmt.Sprintf("Error %d: %s", res.StatusCode, statusText(res))

	var body []byte
	if res.Body != nil {
		body, _ = io.ReadAll(res.Body)
	}

	var serverErr types.ErrorResponse
	if err := json.Unmarshal(body, &serverErr); err == nil {
		if text, ok := messageText(serverErr.Message); ok {
			message = text
		}
	}

	return &ClientError{
		StatusCode: res.StatusCode,
		Message:    message,
		Err:        fmt.Errorf("backend status %d: %s", res.StatusCode, strings.TrimSpace(string(body))),
	}
}

// messageText converts a decoded "message" value to display text.
// Empty strings, zero, false and null don't count as a message.
func messageText(v any) (string, bool) {
	switch m := v.(type) {
	case nil:
		return "", false
	case string:
		return m, m != ""
	case float64:
		return strconv.FormatFloat(m, 'f', -1, 64), m != 0
	case bool:
		return "true", m
	default:
		// objects and arrays
		b, err := json.Marshal(m)
		if err != nil {
			return "", false
		}
		return string(b), true
	}
}

// statusText returns the reason phrase from the response status line ("404 Not Found" -> "Not Found").
// Falls back to the standard text for the code when the status line has no reason phrase.
func statusText(res *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(res.Status, strconv.Itoa(res.StatusCode)))
	if text == "" {
		text = http.StatusText(res.StatusCode)
	}
	return text
}
