package models

import (
	"strings"
	"time"
)

// Item is the catalog view the ledger reads. Quantity is items.item_quantity.
type Item struct {
	ID          int64
	Name        string
	Description string
	Quantity    int
	CreatedAt   time.Time
}

// Bidder carries the fields needed to label bids.
type Bidder struct {
	ID        int64
	FirstName string
	LastName  string
}

// DisplayName joins first and last name, trimmed.
func (b Bidder) DisplayName() string {
	return DisplayName(b.FirstName, b.LastName)
}

// DisplayName formats a bidder label; empty when both parts are empty.
func DisplayName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}
