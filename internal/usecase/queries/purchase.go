package queries

import (
	"context"

	"member-portal/internal/infra"
	"member-portal/internal/pkg/errs"

	"github.com/google/uuid"
)

type PurchaseReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseView, error)
	FindByMember(ctx context.Context, memberEmail string, limit int32) ([]*PurchaseView, error)
}

type PurchaseQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*PurchaseView, error)
	ListByMember(ctx context.Context, memberEmail string, limit int) ([]*PurchaseView, error)
}

type purchaseQueriesImpl struct {
	store PurchaseReadStore
}

func NewPurchaseQueries(store PurchaseReadStore) PurchaseQueries {
	return &purchaseQueriesImpl{store: store}
}

func (q *purchaseQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*PurchaseView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrPurchaseNotFound)
		}
		return nil, err
	}
	return view, nil
}

func (q *purchaseQueriesImpl) ListByMember(ctx context.Context, memberEmail string, limit int) ([]*PurchaseView, error) {
	if limit <= 0 {
		limit = 50
	}
	return q.store.FindByMember(ctx, memberEmail, int32(limit))
}
