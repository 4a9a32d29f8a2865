// Package errhttp maps ledger sentinel errors to HTTP status codes and
// error bodies. Add a case to mapErrorToStatus for each new sentinel error.
package errhttp

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Troubladore/silent-auction-sub001/pkg/httpx"
	ledgerdomain "github.com/Troubladore/silent-auction-sub001/services/ledger/domain"
)

// WriteError maps err to an HTTP status code and writes an
// httpx.ErrorResponse. Unrecognized errors become 500 with fallback as the
// message, so driver text never reaches the client.
func WriteError(w http.ResponseWriter, err error, fallback string) {
	status := mapErrorToStatus(err)
	resp := httpx.NewErrorResponse(message(err, status, fallback))

	var inv *ledgerdomain.InsufficientInventoryError
	if errors.As(err, &inv) {
		available := inv.Available
		resp.Available = &available
	}
	httpx.JSON(w, status, resp)
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, ledgerdomain.ErrValidation):
		return http.StatusBadRequest // 400
	case errors.Is(err, ledgerdomain.ErrInsufficientInventory):
		return http.StatusBadRequest // 400
	case errors.Is(err, ledgerdomain.ErrNotFound):
		return http.StatusNotFound // 404
	default:
		return http.StatusInternalServerError // 500
	}
}

func message(err error, status int, fallback string) string {
	var inv *ledgerdomain.InsufficientInventoryError
	switch {
	case status == http.StatusInternalServerError:
		return fallback
	case errors.As(err, &inv):
		return fmt.Sprintf("Insufficient inventory: only %d available", inv.Available)
	case errors.Is(err, ledgerdomain.ErrValidation):
		// "validation failed: quantity_won must be ..." -> "quantity_won must be ..."
		msg := err.Error()
		if i := strings.LastIndex(msg, ledgerdomain.ErrValidation.Error()+": "); i >= 0 {
			msg = msg[i+len(ledgerdomain.ErrValidation.Error())+2:]
		}
		return msg
	default:
		return err.Error()
	}
}
