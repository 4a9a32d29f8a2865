package auth

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/Troubladore/silent-auction-sub001/pkg/httpx"
	"github.com/Troubladore/silent-auction-sub001/pkg/logger"
)

const sessionName = "silent_auction_session"
const sessionOperatorKey = "operator"

// RequireAuth is a chi middleware that enforces authentication via session cookies.
// It reads the session cookie, extracts the operator, and injects it into the request context.
// Returns 401 Unauthorized if the session is missing, invalid, or has no operator.
//
// After this middleware, handlers can safely call auth.OperatorFromCtx(r.Context()).
func RequireAuth(store sessions.Store, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := store.Get(r, sessionName)
			if err != nil {
				log.WarnContext(r.Context(), "invalid session cookie", "error", err)
				httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			operator, ok := session.Values[sessionOperatorKey].(string)
			if !ok || operator == "" {
				log.WarnContext(r.Context(), "session missing operator", "path", r.URL.Path)
				httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			ctx := WithOperator(r.Context(), operator)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
