package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type ProgramView struct {
	ID                     uuid.UUID `json:"id"`
	Tag                    string    `json:"tag"`
	Name                   string    `json:"name"`
	Price                  float64   `json:"price"`
	OfferType              string    `json:"offer_type"`
	BogoBuyQuantity        *int32    `json:"bogo_buy_quantity,omitempty"`
	BogoGetFreeQuantity    *int32    `json:"bogo_get_free_quantity,omitempty"`
	BogoLogicType          *string   `json:"bogo_logic_type,omitempty"`
	BulkDiscountQuantity   *int32    `json:"bulk_discount_quantity,omitempty"`
	BulkDiscountPercentage *float64  `json:"bulk_discount_percentage,omitempty"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

type VoucherView struct {
	ID             uuid.UUID  `json:"id"`
	OrganizationID uuid.UUID  `json:"organization_id"`
	Value          float64    `json:"value"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
}

type OrganizationView struct {
	ID                  uuid.UUID `json:"id"`
	Name                string    `json:"name"`
	TrainingFundBalance float64   `json:"training_fund_balance"`
}

type EventView struct {
	ID              uuid.UUID  `json:"id"`
	Title           string     `json:"title"`
	StartsAt        time.Time  `json:"starts_at"`
	ProgramTag      *string    `json:"program_tag,omitempty"`
	TicketsRequired int32      `json:"tickets_required"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	CanceledAt      *time.Time `json:"canceled_at,omitempty"`
}

type PurchaseView struct {
	ID                    uuid.UUID `json:"id"`
	MemberEmail           string    `json:"member_email"`
	ProgramID             uuid.UUID `json:"program_id"`
	ProgramTag            string    `json:"program_tag"`
	Quantity              int32     `json:"quantity"`
	FreeTickets           int32     `json:"free_tickets"`
	TotalTickets          int32     `json:"total_tickets"`
	TotalCost             float64   `json:"total_cost"`
	VoucherAmount         float64   `json:"voucher_amount"`
	TrainingFundAmount    float64   `json:"training_fund_amount"`
	AccountAmount         float64   `json:"account_amount"`
	PaymentMethod         string    `json:"payment_method"`
	PurchaseOrderNumber   *string   `json:"purchase_order_number,omitempty"`
	StripePaymentIntentID *string   `json:"stripe_payment_intent_id,omitempty"`
	AppliedDiscountID     *string   `json:"applied_discount_id,omitempty"`
	Status                string    `json:"status"`
	CreatedAt             time.Time `json:"created_at"`
}
