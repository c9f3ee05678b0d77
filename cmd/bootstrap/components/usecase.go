package components

import (
	"member-portal/internal/domain/purchase"
	"member-portal/internal/infra/functions"
	"member-portal/internal/pkg/clock"
	"member-portal/internal/pkg/config"
	"member-portal/internal/usecase/commands"
	"member-portal/internal/usecase/queries"
	"member-portal/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		NewFeatureGate,
		fx.As(new(purchase.FeatureGate)),
	),
	fx.Annotate(
		NewFunctionsClient,
		fx.As(new(commands.FunctionsGateway)),
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewCatalogQueries,
		queries.NewPurchaseQueries,
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewPurchaseUseCase,
		commands.NewBookingUseCase,
	),
)

func NewFeatureGate(cfg config.Config) *shared.ConfigFeatureGate {
	return shared.NewConfigFeatureGate(cfg.Features)
}

func NewFunctionsClient(cfg config.Config) *functions.Client {
	return functions.NewClient(cfg.Functions)
}
