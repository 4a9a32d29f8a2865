package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the ledger domain. Use errors.Is() to check these.
var (
	// ErrValidation marks missing or malformed input.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is the parent of every "does not exist" error below.
	ErrNotFound = errors.New("not found")

	ErrItemNotFound    = fmt.Errorf("item %w", ErrNotFound)
	ErrAuctionNotFound = fmt.Errorf("auction %w", ErrNotFound)
	ErrBidderNotFound  = fmt.Errorf("bidder %w", ErrNotFound)
	ErrBidNotFound     = fmt.Errorf("bid %w", ErrNotFound)

	// ErrAuctionItemNotFound means the item is not enrolled in the auction.
	ErrAuctionItemNotFound = fmt.Errorf("auction item %w", ErrNotFound)

	// ErrInsufficientInventory is matched by *InsufficientInventoryError.
	ErrInsufficientInventory = errors.New("insufficient inventory")

	// ErrDatastore hides driver failures from callers. The raw error is logged
	// where it is converted.
	ErrDatastore = errors.New("datastore failure")
)

// InsufficientInventoryError reports a quantity request that would push the
// allocated total of an item past its quantity.
type InsufficientInventoryError struct {
	Requested int
	Available int
}

func (e *InsufficientInventoryError) Error() string {
	return fmt.Sprintf("insufficient inventory: requested %d, available %d", e.Requested, e.Available)
}

// Is lets errors.Is(err, ErrInsufficientInventory) match.
func (e *InsufficientInventoryError) Is(target error) bool {
	return target == ErrInsufficientInventory
}

// Validationf returns an ErrValidation carrying a human-readable message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
