package middleware

import (
	"log/slog"
	"net/http"

	"github.com/jub0bs/cors"
	"golang.org/x/time/rate"

	"github.com/Bhavya700/CSE-412/internal/apperrors"
	"github.com/Bhavya700/CSE-412/internal/logger"
	"github.com/Bhavya700/CSE-412/internal/ui/responses"
	"github.com/Bhavya700/CSE-412/internal/ui/templates"
)

// CORS returns a CORS middleware using the provided pre-built middleware instance.
func CORS(middleware *cors.Middleware) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return middleware.Wrap(next)
	}
}

// ContentSecurityPolicy allows the htmx script in addition to the ui's own assets.
// htmx injects an inline <style> for its request indicators.
const ContentSecurityPolicy = "default-src 'self'; script-src 'self' https://unpkg.com; style-src 'self' 'unsafe-inline'; frame-ancestors 'none';"

func SecurityHeaders(environment string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			w.Header().Set("X-Content-Type-Options", "nosniff")

			// for legacy support
			w.Header().Set("X-Frame-Options", "DENY")

			w.Header().Set("Content-Security-Policy", ContentSecurityPolicy)

			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

			if environment == "prod" || environment == "staging" {
				w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RateLimit limits requests per second across all clients. If requestsPerSecond <= 0, rate limiting is disabled.
//
// Used on the routes that call the backend so a burst of searches can't swamp it.
// htmx requests get an error alert fragment, other requests a JSON error.
func RateLimit(requestsPerSecond int32, burst int32) func(http.Handler) http.Handler {
	if requestsPerSecond <= 0 {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	limiter := rate.NewLimiter(rate.Limit(requestsPerSecond), int(burst))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter.Allow() {
				next.ServeHTTP(w, r)
				return
			}

			reqLogger := logger.ContextRequestLogger(r.Context())
			reqLogger.Warn("Rate limit exceeded",
				slog.String("component", "RateLimit"),
				slog.String("remote_addr", r.RemoteAddr),
			)

			const msg = "Too many requests. Please try again in a few moments."

			if r.Header.Get("HX-Request") == "true" {
				// htmx does not swap error responses by default, retarget so the alert is shown
				w.Header().Set("HX-Retarget", "body")
				w.Header().Set("HX-Reswap", "afterbegin")
				w.WriteHeader(http.StatusOK)
				if err := templates.ErrorAlert(msg).Render(r.Context(), w); err != nil {
					reqLogger.Error("Failed to render error alert", slog.String("error", err.Error()))
				}
				return
			}

			responses.RespondWithError(w, r, http.StatusTooManyRequests, apperrors.ErrCodeRateLimitExceeded, msg)
		})
	}
}
