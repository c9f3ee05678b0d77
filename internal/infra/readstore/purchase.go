package readstore

import (
	"context"

	"member-portal/internal/infra"
	"member-portal/internal/pkg/pgconv"
	"member-portal/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const purchaseColumns = `
	p.id, p.member_email, p.program_id, pr.tag, p.quantity, p.free_tickets,
	p.total_tickets, p.total_cost, p.voucher_amount, p.training_fund_amount,
	p.account_amount, p.payment_method, p.purchase_order_number,
	p.stripe_payment_intent_id, p.applied_discount_id, p.status, p.created_at
`

type PurchaseReadStore struct {
	pool *pgxpool.Pool
}

func NewPurchaseReadStore(pool *pgxpool.Pool) *PurchaseReadStore {
	return &PurchaseReadStore{pool: pool}
}

func (r *PurchaseReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.PurchaseView, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+purchaseColumns+`
		FROM purchases p JOIN programs pr ON pr.id = p.program_id
		WHERE p.id = $1`, id)
	view, err := scanPurchase(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("purchase not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find purchase by ID", err)
	}
	return view, nil
}

func (r *PurchaseReadStore) FindByMember(ctx context.Context, memberEmail string, limit int32) ([]*queries.PurchaseView, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+purchaseColumns+`
		FROM purchases p JOIN programs pr ON pr.id = p.program_id
		WHERE p.member_email = $1
		ORDER BY p.created_at DESC
		LIMIT $2`, memberEmail, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list purchases by member", err)
	}
	defer rows.Close()

	var result []*queries.PurchaseView
	for rows.Next() {
		view, scanErr := scanPurchase(rows)
		if scanErr != nil {
			return nil, infra.WrapRepoErr("failed to scan purchase row", scanErr)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate purchase rows", err)
	}
	return result, nil
}

func scanPurchase(row pgx.Row) (*queries.PurchaseView, error) {
	var (
		view          queries.PurchaseView
		totalCost     pgtype.Numeric
		voucherAmt    pgtype.Numeric
		fundAmt       pgtype.Numeric
		accountAmt    pgtype.Numeric
		poNumber      pgtype.Text
		paymentIntent pgtype.Text
		discountID    pgtype.Text
		createdAt     pgtype.Timestamptz
	)
	if err := row.Scan(
		&view.ID, &view.MemberEmail, &view.ProgramID, &view.ProgramTag,
		&view.Quantity, &view.FreeTickets, &view.TotalTickets,
		&totalCost, &voucherAmt, &fundAmt, &accountAmt,
		&view.PaymentMethod, &poNumber, &paymentIntent, &discountID,
		&view.Status, &createdAt,
	); err != nil {
		return nil, err
	}

	for _, pair := range []struct {
		src pgtype.Numeric
		dst *float64
	}{
		{totalCost, &view.TotalCost},
		{voucherAmt, &view.VoucherAmount},
		{fundAmt, &view.TrainingFundAmount},
		{accountAmt, &view.AccountAmount},
	} {
		val, err := pgconv.Float64FromNumeric(pair.src)
		if err != nil {
			return nil, err
		}
		*pair.dst = val
	}

	view.PurchaseOrderNumber = pgconv.StringPtrFromPgtype(poNumber)
	view.StripePaymentIntentID = pgconv.StringPtrFromPgtype(paymentIntent)
	view.AppliedDiscountID = pgconv.StringPtrFromPgtype(discountID)
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	return &view, nil
}
