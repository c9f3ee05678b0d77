package repository

import (
	"context"
	"time"

	"member-portal/internal/infra"
	"member-portal/internal/pkg/pgconv"

	"github.com/google/uuid"
)

// RefreshJobRepository writes balance-refresh outbox rows. Inserting in
// the same transaction as the purchase guarantees a successful purchase
// always schedules a refresh.
type RefreshJobRepository struct{}

func NewRefreshJobRepository() *RefreshJobRepository {
	return &RefreshJobRepository{}
}

func (r *RefreshJobRepository) CreateJob(ctx context.Context, db infra.DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	_, err := db.Exec(ctx, `
		INSERT INTO refresh_jobs (id, kind, topic, payload, run_at, attempts, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, 0, 'queued', now(), now())`,
		uuid.New(), kind, topic, payload, pgconv.TimeToPgtype(runAt))
	if err != nil {
		return infra.WrapRepoErr("failed to enqueue refresh job", err)
	}
	return nil
}
