package bootstrap

import (
	"context"
	"log/slog"

	"table-reserve/internal/lock"
	"table-reserve/internal/pkg/clock"
	"table-reserve/internal/pkg/config"

	"go.uber.org/fx"
)

var LockModule = fx.Module("lock",
	fx.Provide(
		NewLockRegistry,
	),
)

func NewLockRegistry(lc fx.Lifecycle, cfg config.LockConfig, clk clock.Clock, logger *slog.Logger) *lock.Registry {
	registry := lock.NewRegistry(cfg, clk, logger)

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			registry.StartSweeper()
			return nil
		},
		OnStop: func(_ context.Context) error {
			registry.Shutdown()
			return nil
		},
	})

	return registry
}
