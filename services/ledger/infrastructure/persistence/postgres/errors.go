package postgres

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	ledgerdomain "github.com/Troubladore/silent-auction-sub001/services/ledger/domain"
)

// PostgreSQL SQLSTATE codes the repositories translate.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// mapWriteError turns constraint violations into domain errors. Anything
// else is wrapped with op and left for the service layer to hide.
func mapWriteError(op string, err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return fmt.Errorf("%s: %w", op, err)
	}

	switch pgErr.Code {
	case pgForeignKeyViolation:
		switch {
		case strings.HasSuffix(pgErr.ConstraintName, "auction_item_fkey"):
			return ledgerdomain.ErrAuctionItemNotFound
		case strings.HasSuffix(pgErr.ConstraintName, "bidder_id_fkey"):
			return ledgerdomain.ErrBidderNotFound
		case strings.HasSuffix(pgErr.ConstraintName, "auction_id_fkey"):
			return ledgerdomain.ErrAuctionNotFound
		case strings.HasSuffix(pgErr.ConstraintName, "item_id_fkey"):
			return ledgerdomain.ErrItemNotFound
		default:
			return fmt.Errorf("%s: %w", op, ledgerdomain.ErrNotFound)
		}
	case pgCheckViolation:
		return ledgerdomain.Validationf("value rejected by %s", pgErr.ConstraintName)
	case pgUniqueViolation:
		return ledgerdomain.Validationf("duplicate record for %s", pgErr.ConstraintName)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// narrow converts an int64 identifier to the SERIAL column width. Values
// outside int32 cannot exist in the table.
func narrow(id int64) (int32, bool) {
	if id <= 0 || id > math.MaxInt32 {
		return 0, false
	}
	return int32(id), true
}
