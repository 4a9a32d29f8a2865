package auth

import (
	"context"
	"errors"
)

// contextKey is an unexported type to prevent key collisions in context.
type contextKey string

const operatorKey contextKey = "operator"

// ErrNotAuthenticated is returned when no operator exists in the request context.
// Handlers should return 401 when this error occurs.
var ErrNotAuthenticated = errors.New("operator not found in context")

// OperatorFromCtx returns the username of the signed-in bid-entry operator.
// Returns "" and ErrNotAuthenticated for unauthenticated requests.
func OperatorFromCtx(ctx context.Context) (string, error) {
	op, ok := ctx.Value(operatorKey).(string)
	if !ok || op == "" {
		return "", ErrNotAuthenticated
	}
	return op, nil
}

// WithOperator returns a new context with the operator attached.
// Used by RequireAuth after validating the session.
func WithOperator(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, operatorKey, username)
}
