package queries

import (
	"context"

	"github.com/google/uuid"
)

type ProgramReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ProgramView, error)
	FindByTag(ctx context.Context, tag string) (*ProgramView, error)
	List(ctx context.Context) ([]*ProgramView, error)
}

type VoucherReadStore interface {
	FindActiveByOrganization(ctx context.Context, organizationID uuid.UUID) ([]*VoucherView, error)
}

type OrganizationReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*OrganizationView, error)
}

type EventReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*EventView, error)
	ListUpcoming(ctx context.Context, limit int32) ([]*EventView, error)
}

// CatalogQueries is the read surface for programs, events, vouchers and
// the organization training-fund balance that the purchase form fetches
// read-only per session.
type CatalogQueries interface {
	ListPrograms(ctx context.Context) ([]*ProgramView, error)
	GetProgram(ctx context.Context, id uuid.UUID) (*ProgramView, error)
	GetProgramByTag(ctx context.Context, tag string) (*ProgramView, error)
	ListUpcomingEvents(ctx context.Context, limit int) ([]*EventView, error)
	ListVouchers(ctx context.Context, organizationID uuid.UUID) ([]*VoucherView, error)
	GetOrganization(ctx context.Context, organizationID uuid.UUID) (*OrganizationView, error)
}

type catalogQueriesImpl struct {
	programs      ProgramReadStore
	vouchers      VoucherReadStore
	organizations OrganizationReadStore
	events        EventReadStore
}

func NewCatalogQueries(
	programs ProgramReadStore,
	vouchers VoucherReadStore,
	organizations OrganizationReadStore,
	events EventReadStore,
) CatalogQueries {
	return &catalogQueriesImpl{
		programs:      programs,
		vouchers:      vouchers,
		organizations: organizations,
		events:        events,
	}
}

func (q *catalogQueriesImpl) ListPrograms(ctx context.Context) ([]*ProgramView, error) {
	return q.programs.List(ctx)
}

func (q *catalogQueriesImpl) GetProgram(ctx context.Context, id uuid.UUID) (*ProgramView, error) {
	return q.programs.FindByID(ctx, id)
}

func (q *catalogQueriesImpl) GetProgramByTag(ctx context.Context, tag string) (*ProgramView, error) {
	return q.programs.FindByTag(ctx, tag)
}

func (q *catalogQueriesImpl) ListUpcomingEvents(ctx context.Context, limit int) ([]*EventView, error) {
	if limit <= 0 {
		limit = 50
	}
	return q.events.ListUpcoming(ctx, int32(limit))
}

func (q *catalogQueriesImpl) ListVouchers(ctx context.Context, organizationID uuid.UUID) ([]*VoucherView, error) {
	return q.vouchers.FindActiveByOrganization(ctx, organizationID)
}

func (q *catalogQueriesImpl) GetOrganization(ctx context.Context, organizationID uuid.UUID) (*OrganizationView, error) {
	return q.organizations.FindByID(ctx, organizationID)
}
