package types

// =============================================================================
// BACKEND RESPONSE TYPES
// =============================================================================

// Player is a single row returned by the search backend.
// Any field can be null in the backend response (overall and pace come from a left join) and decodes as its zero value.
type Player struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Nation   string `json:"nation"`
	Club     string `json:"club"`
	Position string `json:"position"`
	Overall  int    `json:"overall"`
	Pace     int    `json:"pace"`
}

// SearchResponse is the body returned by the search and join endpoints.
// Results are kept in the order returned by the backend.
type SearchResponse struct {
	Results       []Player `json:"results"`
	ExecutionTime float64  `json:"execution_time"` // seconds
	Count         int      `json:"count"`
}

// ErrorResponse is the optional JSON body sent with a non-2xx backend response.
// Message is usually a string but any JSON value is accepted.
type ErrorResponse struct {
	Message any `json:"message"`
}

// =============================================================================
// PANEL PRESENTATION
// =============================================================================

// Theme is the colour scheme used to render a panel
type Theme string

const (
	ThemeRed   Theme = "red"
	ThemeGreen Theme = "green"
)

// IsRed is used by the templates to pick the accent colours for a panel
func (t Theme) IsRed() bool {
	return t == ThemeRed
}
