package services

import (
	"time"

	"github.com/Troubladore/silent-auction-sub001/pkg/app"
	"github.com/Troubladore/silent-auction-sub001/pkg/cache"
	"github.com/Troubladore/silent-auction-sub001/services/ledger/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for the ledger.
type Services struct {
	Ledger   *LedgerService
	Payments *PaymentService
}

// New wires the ledger services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	bids := postgres.NewBidRepository(a.Db, a.EventBus)
	payments := postgres.NewPaymentRepository(a.Db, a.EventBus)

	// Left as a nil interface without Redis; a typed nil would look configured.
	var inventoryCache InventorySnapshots
	if a.Redis != nil {
		var ttl time.Duration
		if a.Config != nil {
			ttl = a.Config.InventoryCacheTTL
		}
		inventoryCache = cache.NewInventoryCache(a.Redis.Client(), ttl)
	}

	return &Services{
		Ledger:   NewLedgerService(bids, bids, inventoryCache, a.Logger, a.Metrics),
		Payments: NewPaymentService(payments, a.Logger, a.Metrics),
	}
}
