// Command ledger migrates the auction schema to the latest version.
package main

import (
	"context"
	"embed"
	"log/slog"
	"os"
	"time"

	"github.com/Troubladore/silent-auction-sub001/pkg/config"
	"github.com/Troubladore/silent-auction-sub001/pkg/logger"
	"github.com/Troubladore/silent-auction-sub001/pkg/migrator"
)

//go:embed *.sql
var MigrationsFS embed.FS

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	version, err := migrator.RunMigrations(ctx, cfg.DatabaseURL, MigrationsFS)
	if err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	log.Info("schema up to date", "version", version)
}
