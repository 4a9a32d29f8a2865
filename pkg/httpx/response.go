package httpx

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the body of every failed API call. Errors repeats Error
// and carries any further messages; Available is set for inventory rejections.
type ErrorResponse struct {
	Success   bool     `json:"success"             example:"false"`
	Error     string   `json:"error"               example:"Only 2 available"`
	Errors    []string `json:"errors"`
	Available *int     `json:"available,omitempty" example:"2"`
} // @name ErrorResponse

// JSON writes v as JSON with the given status code. Content-Type and
// X-Content-Type-Options headers are set automatically. Encoding errors are
// silently discarded; use this for handler responses, not for streaming.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// JSONError writes an ErrorResponse with a single message.
func JSONError(w http.ResponseWriter, status int, message string) {
	JSON(w, status, NewErrorResponse(message))
}

// NewErrorResponse builds a failed-call body. The first message becomes Error.
func NewErrorResponse(messages ...string) ErrorResponse {
	resp := ErrorResponse{Errors: messages}
	if len(messages) > 0 {
		resp.Error = messages[0]
	}
	if resp.Errors == nil {
		resp.Errors = []string{}
	}
	return resp
}

// SafeError returns the error message for client responses.
// In production (isProduction=true), internal server errors (5xx) are replaced
// with a generic message to avoid leaking implementation details.
func SafeError(err error, status int, isProduction bool) string {
	if isProduction && status >= http.StatusInternalServerError {
		return http.StatusText(status)
	}
	return err.Error()
}
