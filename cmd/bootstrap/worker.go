package bootstrap

import (
	"context"

	"table-reserve/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		worker.NewReconciler,
	),
	fx.Invoke(registerReconciler),
)

func registerReconciler(lc fx.Lifecycle, reconciler *worker.Reconciler) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			reconciler.Start()
			return nil
		},
		OnStop: func(_ context.Context) error {
			reconciler.Stop()
			return nil
		},
	})
}
