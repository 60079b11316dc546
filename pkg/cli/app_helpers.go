package cli

import (
	"context"
	"log/slog"

	"flowplan/internal/app"
	"flowplan/internal/config"
)

// newOfflineApp wires the planning services from environment configuration.
// Cloud sample fetchers come up only when their credentials are present; the
// CLI stays silent about it and surfaces "no fetcher registered" on use.
func newOfflineApp(ctx context.Context) (*app.App, error) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, err
	}
	return app.New(ctx, app.Deps{Cfg: cfg, Logger: slog.New(slog.DiscardHandler)})
}
