package bootstrap

import (
	"table-reserve/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	LockModule,
	WorkerModule,
	components.RepositoryModule,
	components.UseCaseModule,
	components.HandlerModule,
)
