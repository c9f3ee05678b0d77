package response

import (
	"time"

	"member-portal/internal/usecase/queries"

	"github.com/google/uuid"
)

type ProgramResponse struct {
	ID                     uuid.UUID `json:"id"`
	Tag                    string    `json:"tag"`
	Name                   string    `json:"name"`
	Price                  float64   `json:"price"`
	OfferType              string    `json:"offerType"`
	BogoBuyQuantity        *int32    `json:"bogoBuyQuantity,omitempty"`
	BogoGetFreeQuantity    *int32    `json:"bogoGetFreeQuantity,omitempty"`
	BogoLogicType          *string   `json:"bogoLogicType,omitempty"`
	BulkDiscountQuantity   *int32    `json:"bulkDiscountQuantity,omitempty"`
	BulkDiscountPercentage *float64  `json:"bulkDiscountPercentage,omitempty"`
}

func FromProgramView(rm *queries.ProgramView) *ProgramResponse {
	return &ProgramResponse{
		ID:                     rm.ID,
		Tag:                    rm.Tag,
		Name:                   rm.Name,
		Price:                  rm.Price,
		OfferType:              rm.OfferType,
		BogoBuyQuantity:        rm.BogoBuyQuantity,
		BogoGetFreeQuantity:    rm.BogoGetFreeQuantity,
		BogoLogicType:          rm.BogoLogicType,
		BulkDiscountQuantity:   rm.BulkDiscountQuantity,
		BulkDiscountPercentage: rm.BulkDiscountPercentage,
	}
}

type EventResponse struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	StartsAt        time.Time `json:"startsAt"`
	ProgramTag      *string   `json:"programTag,omitempty"`
	TicketsRequired int32     `json:"ticketsRequired"`
}

func FromEventView(rm *queries.EventView) *EventResponse {
	return &EventResponse{
		ID:              rm.ID,
		Title:           rm.Title,
		StartsAt:        rm.StartsAt,
		ProgramTag:      rm.ProgramTag,
		TicketsRequired: rm.TicketsRequired,
	}
}

type VoucherResponse struct {
	ID        uuid.UUID  `json:"id"`
	Value     float64    `json:"value"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	Status    string     `json:"status"`
}

func FromVoucherView(rm *queries.VoucherView) *VoucherResponse {
	return &VoucherResponse{
		ID:        rm.ID,
		Value:     rm.Value,
		ExpiresAt: rm.ExpiresAt,
		Status:    rm.Status,
	}
}

type OrganizationResponse struct {
	ID                  uuid.UUID `json:"id"`
	Name                string    `json:"name"`
	TrainingFundBalance float64   `json:"trainingFundBalance"`
}

func FromOrganizationView(rm *queries.OrganizationView) *OrganizationResponse {
	return &OrganizationResponse{
		ID:                  rm.ID,
		Name:                rm.Name,
		TrainingFundBalance: rm.TrainingFundBalance,
	}
}
