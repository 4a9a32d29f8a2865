package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Price is an optional money amount. It accepts a JSON number, a numeric
// string, null or "" (the last two leave it unset).
type Price struct {
	Value decimal.Decimal
	Set   bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Price) UnmarshalJSON(data []byte) error {
	*p = Price{}
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			return nil
		}
	}

	v, err := decimal.NewFromString(raw)
	if err != nil {
		return fmt.Errorf("winning_price must be a number: %q", raw)
	}
	p.Value, p.Set = v, true
	return nil
}

// Ptr returns the amount or nil when unset.
func (p Price) Ptr() *decimal.Decimal {
	if !p.Set {
		return nil
	}
	v := p.Value
	return &v
}

// queryID reads a positive integer query parameter. Missing, malformed and
// non-positive values all return 0 and are rejected by the service.
func queryID(r *http.Request, name string) int64 {
	id, err := strconv.ParseInt(strings.TrimSpace(r.URL.Query().Get(name)), 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id
}
