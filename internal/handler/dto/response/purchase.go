package response

import (
	"time"

	"member-portal/internal/usecase/commands"
	"member-portal/internal/usecase/queries"

	"github.com/google/uuid"
)

type PurchaseResponse struct {
	ID                  uuid.UUID `json:"id"`
	ProgramID           uuid.UUID `json:"programId"`
	ProgramTag          string    `json:"programTag"`
	Quantity            int32     `json:"quantity"`
	FreeTickets         int32     `json:"freeTickets"`
	TotalTickets        int32     `json:"totalTickets"`
	TotalCost           float64   `json:"totalCost"`
	VoucherAmount       float64   `json:"voucherAmount"`
	TrainingFundAmount  float64   `json:"trainingFundAmount"`
	AccountAmount       float64   `json:"accountAmount"`
	PaymentMethod       string    `json:"paymentMethod"`
	PurchaseOrderNumber *string   `json:"purchaseOrderNumber,omitempty"`
	Status              string    `json:"status"`
	CreatedAt           time.Time `json:"createdAt"`
}

func FromPurchaseView(rm *queries.PurchaseView) *PurchaseResponse {
	return &PurchaseResponse{
		ID:                  rm.ID,
		ProgramID:           rm.ProgramID,
		ProgramTag:          rm.ProgramTag,
		Quantity:            rm.Quantity,
		FreeTickets:         rm.FreeTickets,
		TotalTickets:        rm.TotalTickets,
		TotalCost:           rm.TotalCost,
		VoucherAmount:       rm.VoucherAmount,
		TrainingFundAmount:  rm.TrainingFundAmount,
		AccountAmount:       rm.AccountAmount,
		PaymentMethod:       rm.PaymentMethod,
		PurchaseOrderNumber: rm.PurchaseOrderNumber,
		Status:              rm.Status,
		CreatedAt:           rm.CreatedAt,
	}
}

// SubmitPurchaseResponse covers both submission outcomes: either the
// completed purchase, or the payment-intent handoff the card entry UI
// needs to confirm.
type SubmitPurchaseResponse struct {
	RequiresCardPayment bool              `json:"requiresCardPayment"`
	ClientSecret        string            `json:"clientSecret,omitempty"`
	PaymentIntentID     string            `json:"paymentIntentId,omitempty"`
	Purchase            *PurchaseResponse `json:"purchase,omitempty"`
}

func FromSubmitResult(result *commands.SubmitPurchaseResult) *SubmitPurchaseResponse {
	resp := &SubmitPurchaseResponse{
		RequiresCardPayment: result.RequiresCardPayment,
		ClientSecret:        result.ClientSecret,
		PaymentIntentID:     result.PaymentIntentID,
	}
	if result.Purchase != nil {
		resp.Purchase = FromPurchaseView(result.Purchase)
	}
	return resp
}
