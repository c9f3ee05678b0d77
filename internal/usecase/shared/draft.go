package shared

import (
	"context"
	"encoding/json"

	"member-portal/internal/pkg/errs"

	"github.com/google/uuid"
)

// DraftStore holds resumable purchase and registration drafts keyed per
// program or event. Drafts are ephemeral (single writer per member
// session) and cleared on successful submission. The interface is
// deliberately narrow so tests can swap in an in-memory store.
type DraftStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Clear(ctx context.Context, key string) error
}

func PurchaseDraftKey(memberEmail string, programID uuid.UUID) string {
	return memberEmail + ":program_purchase_" + programID.String()
}

func RegistrationDraftKey(memberEmail string, eventID uuid.UUID) string {
	return memberEmail + ":event_registration_" + eventID.String()
}

// PurchaseDraft is the full allocation snapshot persisted on every
// field change while a purchase form is being filled in.
type PurchaseDraft struct {
	ProgramID        uuid.UUID      `json:"programId"`
	Quantity         int            `json:"qty"`
	SelectedVouchers []uuid.UUID    `json:"selectedVouchers"`
	TrainingFund     float64        `json:"trainingFund"`
	PaymentMethod    string         `json:"paymentMethod"`
	PurchaseOrder    string         `json:"po"`
	Discount         *DraftDiscount `json:"appliedDiscount,omitempty"`
	// PaymentIntentID and PaymentIntentAmount survive the round trip to
	// the card-entry UI so confirmation can be matched to the intent
	// that was issued and to the balance it was issued for.
	PaymentIntentID     string  `json:"paymentIntentId,omitempty"`
	PaymentIntentAmount float64 `json:"paymentIntentAmount,omitempty"`
}

// DraftDiscount records an applied discount together with the program
// and quantity it was issued for. A mismatch at any later point means
// the discount is stale and must be dropped, never silently re-applied.
type DraftDiscount struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	TotalAfter  float64   `json:"totalCostAfterDiscount"`
	Amount      float64   `json:"discountAmount"`
	ForProgram  uuid.UUID `json:"forProgram"`
	ForQuantity int       `json:"forQuantity"`
}

// RegistrationDraft mirrors the event registration form.
type RegistrationDraft struct {
	EventID          uuid.UUID          `json:"eventId"`
	RegistrationMode string             `json:"registrationMode"`
	MemberAttending  bool               `json:"memberAttending"`
	NumberOfLinks    int                `json:"numberOfLinks"`
	Attendees        []RegistrationSeat `json:"attendees"`
}

type RegistrationSeat struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

func LoadDraft[T any](ctx context.Context, store DraftStore, key string) (*T, error) {
	raw, ok, err := store.Get(ctx, key)
	if err != nil {
		return nil, errs.Wrap(err, "failed to load draft")
	}
	if !ok {
		return nil, nil
	}
	var draft T
	if err := json.Unmarshal(raw, &draft); err != nil {
		// A corrupt draft is discarded rather than blocking the form.
		return nil, nil
	}
	return &draft, nil
}

func SaveDraft[T any](ctx context.Context, store DraftStore, key string, draft T) error {
	raw, err := json.Marshal(draft)
	if err != nil {
		return errs.Wrap(err, "failed to marshal draft")
	}
	return errs.Wrap(store.Set(ctx, key, raw), "failed to save draft")
}
