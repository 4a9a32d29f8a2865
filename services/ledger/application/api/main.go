package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/Troubladore/silent-auction-sub001/pkg/app"
	"github.com/Troubladore/silent-auction-sub001/pkg/auth"
	"github.com/Troubladore/silent-auction-sub001/services/ledger/application/handlers"
	appsvcs "github.com/Troubladore/silent-auction-sub001/services/ledger/application/services"
)

// LedgerRoutes registers the bid-entry endpoints on the provided chi router.
// Everything except login and logout requires an operator session.
func LedgerRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	Register(r, svcs.Ledger, svcs.Payments, a)
}

// Register mounts the handlers for the given ledger ports.
func Register(r chi.Router, ledger handlers.BidLedger, payments handlers.PaymentLedger, a *app.Application) {
	login := auth.NewHandlers(a.SessionStore, a.Credentials, a.Logger)
	r.Post("/login", login.Login)
	r.Post("/logout", login.Logout)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(a.SessionStore, a.Logger))

		r.Get("/inventory-check", handlers.NewInventoryCheckHandler(ledger).Execute)
		r.Get("/check-item-in-auction", handlers.NewCheckItemInAuctionHandler(ledger).Execute)
		r.Post("/save-bid", handlers.NewSaveBidHandler(ledger, a.Logger).Execute)

		update := handlers.NewUpdateBidHandler(ledger, a.Logger).Execute
		r.Post("/update-bid", update)
		r.Patch("/update-bid", update)

		r.Post("/payments", handlers.NewRecordPaymentHandler(payments).Execute)
		r.Get("/bidders/{bidderID}/payments", handlers.NewListPaymentsHandler(payments).Execute)
	})
}
