// Command seed provisions the baseline RBAC catalogue and bootstrap
// superadmin account. It runs the same routine the server runs on startup,
// for environments that deploy with SEED_ON_START disabled.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/pressgate/pressgate/internal/app"
	"github.com/pressgate/pressgate/internal/platform/db"
	"github.com/pressgate/pressgate/internal/rbac"
	"github.com/pressgate/pressgate/internal/seed"
)

func main() {
	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	vocab := rbac.NewVocabulary(cfg.PermissionResources)
	if err := seed.Run(ctx, seed.NewRepository(pool), vocab, logger); err != nil {
		logger.Error("seed", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("seed complete", slog.String("bootstrap_email", seed.BootstrapEmail))
}
