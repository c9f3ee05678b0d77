package repository

import (
	"context"
	"time"

	"member-portal/internal/infra"
	"member-portal/internal/pkg/pgconv"
	"member-portal/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type IdempotencyRepository struct {
	pool *pgxpool.Pool
}

func NewIdempotencyRepository(pool *pgxpool.Pool) *IdempotencyRepository {
	return &IdempotencyRepository{pool: pool}
}

// TryInsert claims the key in "processing" state. An existing row is
// left untouched; the caller inspects it via Get to distinguish replay
// from conflict.
func (r *IdempotencyRepository) TryInsert(ctx context.Context, key uuid.UUID, memberEmail, endpoint, requestHash string, expiresAt time.Time) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO idempotency_keys (key, member_email, endpoint, request_hash, status, expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 'processing', $5, now(), now())
		ON CONFLICT (key, member_email) DO NOTHING`,
		key, memberEmail, endpoint, requestHash, pgconv.TimeToPgtype(expiresAt))
	if err != nil {
		return infra.WrapRepoErr("failed to claim idempotency key", err)
	}
	return nil
}

func (r *IdempotencyRepository) Get(ctx context.Context, key uuid.UUID, memberEmail string) (*shared.IdempotencyRecord, error) {
	var (
		rec        shared.IdempotencyRecord
		purchaseID pgtype.UUID
		expiresAt  pgtype.Timestamptz
	)
	err := r.pool.QueryRow(ctx, `
		SELECT key, member_email, status, request_hash, result_purchase_id, expires_at
		FROM idempotency_keys
		WHERE key = $1 AND member_email = $2`,
		key, memberEmail).Scan(&rec.Key, &rec.MemberEmail, &rec.Status, &rec.RequestHash, &purchaseID, &expiresAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get idempotency key", err)
	}
	rec.ResultPurchaseID = pgconv.UUIDPtrFromPgtype(purchaseID)
	rec.ExpiresAt = pgconv.TimeFromPgtype(expiresAt)
	return &rec, nil
}

func (r *IdempotencyRepository) UpdateStatusCompleted(ctx context.Context, db infra.DBTX, key uuid.UUID, memberEmail, responseHash string, resultPurchaseID uuid.UUID) error {
	_, err := db.Exec(ctx, `
		UPDATE idempotency_keys
		SET status = 'completed', response_body_hash = $3, result_purchase_id = $4, updated_at = now()
		WHERE key = $1 AND member_email = $2`,
		key, memberEmail, responseHash, resultPurchaseID)
	if err != nil {
		return infra.WrapRepoErr("failed to complete idempotency key", err)
	}
	return nil
}
