package shared

import (
	"context"
	"time"

	"member-portal/internal/infra"

	"github.com/google/uuid"
)

// PurchaseRecord is the write-side snapshot persisted when a ticket
// purchase is finalized. The monetary redemption itself happens in the
// purchase-finalization function; this row is the portal's own ledger.
type PurchaseRecord struct {
	ID                    uuid.UUID
	MemberEmail           string
	ProgramID             uuid.UUID
	Quantity              int
	FreeTickets           int
	TotalTickets          int
	TotalCost             float64
	VoucherAmount         float64
	TrainingFundAmount    float64
	AccountAmount         float64
	PaymentMethod         string
	PurchaseOrderNumber   *string
	StripePaymentIntentID *string
	AppliedDiscountID     *string
	Status                string
}

type IdempotencyRecord struct {
	Key              uuid.UUID
	MemberEmail      string
	Status           string
	RequestHash      string
	ResultPurchaseID *uuid.UUID
	ExpiresAt        time.Time
}

type PurchaseRepository interface {
	Create(ctx context.Context, db infra.DBTX, rec *PurchaseRecord) (uuid.UUID, error)
}

type IdempotencyRepository interface {
	TryInsert(ctx context.Context, key uuid.UUID, memberEmail, endpoint, requestHash string, expiresAt time.Time) error
	Get(ctx context.Context, key uuid.UUID, memberEmail string) (*IdempotencyRecord, error)
	UpdateStatusCompleted(ctx context.Context, db infra.DBTX, key uuid.UUID, memberEmail, responseHash string, resultPurchaseID uuid.UUID) error
}

// RefreshJobRepository is the outbox for balance-refresh work enqueued
// in the purchase transaction and drained out of band.
type RefreshJobRepository interface {
	CreateJob(ctx context.Context, db infra.DBTX, kind, topic string, payload []byte, runAt time.Time) error
}
