package commands

import (
	"context"

	"member-portal/internal/infra/functions"
)

// FunctionsGateway is the boundary to the hosted backend functions.
// Implementations return success:false responses as data; only
// transport-level failures are errors.
type FunctionsGateway interface {
	ApplyDiscountCode(ctx context.Context, req functions.ApplyDiscountCodeRequest) (*functions.ApplyDiscountCodeResponse, error)
	CreateStripePaymentIntent(ctx context.Context, req functions.CreateStripePaymentIntentRequest) (*functions.CreateStripePaymentIntentResponse, error)
	ProcessProgramTicketPurchase(ctx context.Context, req functions.ProcessProgramTicketPurchaseRequest) (*functions.Result, error)
	CreateBooking(ctx context.Context, req functions.CreateBookingRequest) (*functions.Result, error)
	ValidateColleague(ctx context.Context, req functions.ValidateColleagueRequest) (*functions.ValidateColleagueResponse, error)
	CancelTicketViaFlow(ctx context.Context, req functions.CancelTicketRequest) (*functions.Result, error)
	SyncOrganizationContacts(ctx context.Context, req functions.SyncOrganizationContactsRequest) (*functions.Result, error)
}
