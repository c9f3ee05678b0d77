package functions

import "github.com/google/uuid"

// Request/response contracts of the hosted backend functions. Only the
// shapes are known here; the implementations live upstream.

type ApplyDiscountCodeRequest struct {
	Code        string  `json:"code"`
	TotalCost   float64 `json:"totalCost"`
	ProgramTag  string  `json:"programTag"`
	MemberEmail string  `json:"memberEmail"`
}

type ApplyDiscountCodeResponse struct {
	Success                bool    `json:"success"`
	TotalCostAfterDiscount float64 `json:"totalCostAfterDiscount"`
	DiscountAmount         float64 `json:"discountAmount"`
	DiscountID             string  `json:"discountId"`
	Code                   string  `json:"code"`
	Type                   string  `json:"type"`
	Value                  float64 `json:"value"`
	Message                string  `json:"message"`
	Error                  string  `json:"error,omitempty"`
}

type CreateStripePaymentIntentRequest struct {
	Amount      float64           `json:"amount"`
	Currency    string            `json:"currency"`
	MemberEmail string            `json:"memberEmail"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

type CreateStripePaymentIntentResponse struct {
	Success         bool   `json:"success"`
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
	Error           string `json:"error,omitempty"`
}

type ProcessProgramTicketPurchaseRequest struct {
	MemberEmail           string      `json:"memberEmail"`
	ProgramName           string      `json:"programName"`
	Quantity              int         `json:"quantity"`
	PurchaseOrderNumber   *string     `json:"purchaseOrderNumber"`
	SelectedVoucherIDs    []uuid.UUID `json:"selectedVoucherIds"`
	TrainingFundAmount    float64     `json:"trainingFundAmount"`
	AccountAmount         float64     `json:"accountAmount"`
	PaymentMethod         string      `json:"paymentMethod"`
	StripePaymentIntentID *string     `json:"stripePaymentIntentId,omitempty"`
	AppliedDiscountID     *string     `json:"appliedDiscountId,omitempty"`
}

type BookingAttendee struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type CreateBookingRequest struct {
	EventID          uuid.UUID         `json:"eventId"`
	MemberEmail      string            `json:"memberEmail"`
	Attendees        []BookingAttendee `json:"attendees"`
	RegistrationMode string            `json:"registrationMode"`
	NumberOfLinks    int               `json:"numberOfLinks"`
	TicketsRequired  int               `json:"ticketsRequired"`
	ProgramTag       string            `json:"programTag"`
}

type ValidateColleagueRequest struct {
	Email          string    `json:"email"`
	MemberEmail    string    `json:"memberEmail"`
	OrganizationID uuid.UUID `json:"organizationId"`
}

type ValidateColleagueResponse struct {
	Valid     bool   `json:"valid"`
	Status    string `json:"status"`
	Message   string `json:"message"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Error     string `json:"error,omitempty"`
}

type CancelTicketRequest struct {
	OrderID      uuid.UUID `json:"orderId"`
	CancelReason string    `json:"cancelReason"`
	MemberID     uuid.UUID `json:"memberId"`
}

type SyncOrganizationContactsRequest struct {
	OrganizationID uuid.UUID `json:"organizationId"`
}

// Result is the generic success envelope shared by functions that
// return no payload beyond the flag.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
