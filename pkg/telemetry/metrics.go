package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Outcome labels for ledger_bid_writes_total.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// LedgerMetrics holds the ledger's OTel instruments. A nil *LedgerMetrics
// records nothing.
type LedgerMetrics struct {
	bidWrites    metric.Int64Counter
	cacheLookups metric.Int64Counter
	payments     metric.Int64Counter
}

// NewLedgerMetrics registers the ledger instruments on the global meter
// provider. Call after Setup so they are exported on /metrics.
func NewLedgerMetrics() (*LedgerMetrics, error) {
	return NewLedgerMetricsWithMeter(otel.Meter("silent-auction/ledger"))
}

// NewLedgerMetricsWithMeter registers the instruments on meter.
func NewLedgerMetricsWithMeter(meter metric.Meter) (*LedgerMetrics, error) {
	bidWrites, err := meter.Int64Counter("ledger_bid_writes_total",
		metric.WithDescription("Winning bid writes by operation and outcome"))
	if err != nil {
		return nil, fmt.Errorf("bid writes counter: %w", err)
	}
	cacheLookups, err := meter.Int64Counter("ledger_inventory_cache_lookups_total",
		metric.WithDescription("Inventory cache lookups by result"))
	if err != nil {
		return nil, fmt.Errorf("cache lookups counter: %w", err)
	}
	payments, err := meter.Int64Counter("ledger_payments_recorded_total",
		metric.WithDescription("Payments recorded by method"))
	if err != nil {
		return nil, fmt.Errorf("payments counter: %w", err)
	}
	return &LedgerMetrics{bidWrites: bidWrites, cacheLookups: cacheLookups, payments: payments}, nil
}

// BidWrite counts one save, update or delete.
func (m *LedgerMetrics) BidWrite(ctx context.Context, op, outcome string) {
	if m == nil {
		return
	}
	m.bidWrites.Add(ctx, 1, metric.WithAttributes(
		attribute.String("op", op),
		attribute.String("outcome", outcome),
	))
}

// CacheLookup counts an inventory cache hit or miss.
func (m *LedgerMetrics) CacheLookup(ctx context.Context, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}

// PaymentRecorded counts one appended payment.
func (m *LedgerMetrics) PaymentRecorded(ctx context.Context, method string) {
	if m == nil {
		return
	}
	m.payments.Add(ctx, 1, metric.WithAttributes(attribute.String("method", method)))
}
