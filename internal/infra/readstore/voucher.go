package readstore

import (
	"context"

	"member-portal/internal/infra"
	"member-portal/internal/pkg/pgconv"
	"member-portal/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type VoucherReadStore struct {
	pool *pgxpool.Pool
}

func NewVoucherReadStore(pool *pgxpool.Pool) *VoucherReadStore {
	return &VoucherReadStore{pool: pool}
}

// FindActiveByOrganization returns only vouchers the member can select:
// active status and unexpired.
func (r *VoucherReadStore) FindActiveByOrganization(ctx context.Context, organizationID uuid.UUID) ([]*queries.VoucherView, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, organization_id, value, expires_at, status, created_at
		FROM vouchers
		WHERE organization_id = $1
		  AND status = 'active'
		  AND (expires_at IS NULL OR expires_at > now())
		ORDER BY expires_at NULLS LAST`, organizationID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list vouchers", err)
	}
	defer rows.Close()

	var result []*queries.VoucherView
	for rows.Next() {
		var (
			view      queries.VoucherView
			value     pgtype.Numeric
			expiresAt pgtype.Timestamptz
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(&view.ID, &view.OrganizationID, &value, &expiresAt, &view.Status, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan voucher row", err)
		}
		valueVal, convErr := pgconv.Float64FromNumeric(value)
		if convErr != nil {
			return nil, infra.WrapRepoErr("invalid voucher value", convErr)
		}
		view.Value = valueVal
		view.ExpiresAt = pgconv.TimePtrFromPgtype(expiresAt)
		view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		result = append(result, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate voucher rows", err)
	}
	return result, nil
}

type OrganizationReadStore struct {
	pool *pgxpool.Pool
}

func NewOrganizationReadStore(pool *pgxpool.Pool) *OrganizationReadStore {
	return &OrganizationReadStore{pool: pool}
}

func (r *OrganizationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.OrganizationView, error) {
	var (
		view    queries.OrganizationView
		balance pgtype.Numeric
	)
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, training_fund_balance
		FROM organizations WHERE id = $1`, id).Scan(&view.ID, &view.Name, &balance)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("organization not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find organization", err)
	}
	balanceVal, err := pgconv.Float64FromNumeric(balance)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid training fund balance", err)
	}
	view.TrainingFundBalance = balanceVal
	return &view, nil
}
