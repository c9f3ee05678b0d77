package request

import (
	"strings"

	"member-portal/internal/usecase/commands"

	"github.com/google/uuid"
)

type UpdateAllocationRequest struct {
	Quantity         int         `json:"quantity" binding:"required,min=1"`
	SelectedVouchers []uuid.UUID `json:"selected_vouchers"`
	TrainingFund     float64     `json:"training_fund" binding:"min=0"`
	PaymentMethod    string      `json:"payment_method" binding:"omitempty,oneof=account card"`
	PurchaseOrder    string      `json:"purchase_order"`
}

func (r UpdateAllocationRequest) ToParams() commands.UpdateAllocationParams {
	return commands.UpdateAllocationParams{
		Quantity:         r.Quantity,
		SelectedVouchers: r.SelectedVouchers,
		TrainingFund:     r.TrainingFund,
		PaymentMethod:    r.PaymentMethod,
		PurchaseOrder:    strings.TrimSpace(r.PurchaseOrder),
	}
}

type ApplyDiscountRequest struct {
	Code string `json:"code" binding:"required"`
}

type ConfirmCardPaymentRequest struct {
	PaymentIntentID string `json:"payment_intent_id" binding:"required"`
}
