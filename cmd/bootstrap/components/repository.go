package components

import (
	"member-portal/internal/infra/draftstore"
	"member-portal/internal/infra/readstore"
	repo_impl "member-portal/internal/infra/repository"
	"member-portal/internal/pkg/config"
	"member-portal/internal/usecase/queries"
	"member-portal/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		// Read side
		fx.Annotate(
			readstore.NewProgramReadStore,
			fx.As(new(queries.ProgramReadStore)),
		),
		fx.Annotate(
			readstore.NewVoucherReadStore,
			fx.As(new(queries.VoucherReadStore)),
		),
		fx.Annotate(
			readstore.NewOrganizationReadStore,
			fx.As(new(queries.OrganizationReadStore)),
		),
		fx.Annotate(
			readstore.NewEventReadStore,
			fx.As(new(queries.EventReadStore)),
		),
		fx.Annotate(
			readstore.NewPurchaseReadStore,
			fx.As(new(queries.PurchaseReadStore)),
		),
		// Write side
		fx.Annotate(
			repo_impl.NewPurchaseRepository,
			fx.As(new(shared.PurchaseRepository)),
		),
		fx.Annotate(
			repo_impl.NewIdempotencyRepository,
			fx.As(new(shared.IdempotencyRepository)),
		),
		fx.Annotate(
			repo_impl.NewRefreshJobRepository,
			fx.As(new(shared.RefreshJobRepository)),
		),
		// Drafts
		fx.Annotate(
			NewDraftStore,
			fx.As(new(shared.DraftStore)),
		),
	),
)

func NewDraftStore(client *redis.Client, cfg config.Config) *draftstore.RedisStore {
	return draftstore.NewRedisStore(client, cfg.Redis.DraftTTL)
}
