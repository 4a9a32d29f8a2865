// Package app holds the infrastructure shared by every bounded context.
package app

import (
	"github.com/gorilla/sessions"

	"github.com/Troubladore/silent-auction-sub001/pkg/auth"
	"github.com/Troubladore/silent-auction-sub001/pkg/cache"
	"github.com/Troubladore/silent-auction-sub001/pkg/config"
	"github.com/Troubladore/silent-auction-sub001/pkg/database"
	"github.com/Troubladore/silent-auction-sub001/pkg/events"
	"github.com/Troubladore/silent-auction-sub001/pkg/logger"
	"github.com/Troubladore/silent-auction-sub001/pkg/telemetry"
)

// Application is passed to each context's route and subscriber setup.
//
// Logger is trace-aware: use the *Context methods inside requests and event
// handlers so trace_id, span_id and request_id are attached:
//
//	a.Logger.InfoContext(ctx, "bid saved", "bid_id", id)
//
// Redis, Metrics and SessionStore may be nil (tests, or the worker for
// SessionStore); consumers must tolerate that.
type Application struct {
	Config       *config.Config
	Db           *database.Database
	Logger       logger.Logger
	EventBus     *events.EventBus
	Redis        *cache.RedisClient
	Metrics      *telemetry.LedgerMetrics
	SessionStore sessions.Store
	Credentials  *auth.Credentials
}
