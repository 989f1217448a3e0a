package responses

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Bhavya700/CSE-412/internal/apperrors"
	"github.com/Bhavya700/CSE-412/internal/logger"
)

type ErrorResponse struct {
	ErrorCode apperrors.ErrorCode `json:"error_code" example:"example_error_code"`
	Message   string              `json:"message" example:"message describing the error"`
}

// RespondWithError writes a JSON error body and adds the error details to the final request log
func RespondWithError(w http.ResponseWriter, r *http.Request, statusCode int, errorCode apperrors.ErrorCode, message string) {
	logger.ContextWithLogAttrs(r.Context(),
		slog.String("error_code", string(errorCode)),
		slog.String("error_message", message),
	)

	errResponse := ErrorResponse{
		ErrorCode: errorCode,
		Message:   message,
	}

	dat, err := json.Marshal(errResponse)
	if err != nil {
		logger.ContextRequestLogger(r.Context()).Error("error marshaling error response", slog.String("error", err.Error()))
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error_code":"internal_error","message":"Internal Server Error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write(dat)
}

func RespondWithJSON(w http.ResponseWriter, status int, payload any) {
	if status == http.StatusNoContent {
		w.WriteHeader(status)
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error_code":"marshal_error","message":"Internal Server Error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
