package repository

import (
	"context"
	"errors"

	"member-portal/internal/infra"
	"member-portal/internal/pkg/pgconv"
	"member-portal/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgErrCodeUniqueViolation     = "23505"
	pgErrCodeForeignKeyViolation = "23503"
)

type PurchaseRepository struct{}

func NewPurchaseRepository() *PurchaseRepository {
	return &PurchaseRepository{}
}

func (r *PurchaseRepository) Create(ctx context.Context, db infra.DBTX, rec *shared.PurchaseRecord) (uuid.UUID, error) {
	id := rec.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	_, err := db.Exec(ctx, `
		INSERT INTO purchases (
			id, member_email, program_id, quantity, free_tickets, total_tickets,
			total_cost, voucher_amount, training_fund_amount, account_amount,
			payment_method, purchase_order_number, stripe_payment_intent_id,
			applied_discount_id, status, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,now())`,
		id, rec.MemberEmail, rec.ProgramID, rec.Quantity, rec.FreeTickets, rec.TotalTickets,
		pgconv.Float64ToNumeric(rec.TotalCost),
		pgconv.Float64ToNumeric(rec.VoucherAmount),
		pgconv.Float64ToNumeric(rec.TrainingFundAmount),
		pgconv.Float64ToNumeric(rec.AccountAmount),
		rec.PaymentMethod,
		pgconv.StringPtrToPgtype(rec.PurchaseOrderNumber),
		pgconv.StringPtrToPgtype(rec.StripePaymentIntentID),
		pgconv.StringPtrToPgtype(rec.AppliedDiscountID),
		rec.Status,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgErrCodeUniqueViolation:
				return uuid.Nil, infra.WrapRepoErr("duplicate purchase", err, infra.KindDuplicateKey)
			case pgErrCodeForeignKeyViolation:
				return uuid.Nil, infra.WrapRepoErr("unknown program for purchase", err, infra.KindForeignKeyViolated)
			}
		}
		return uuid.Nil, infra.WrapRepoErr("failed to create purchase", err)
	}
	return id, nil
}
