package shared

import "github.com/google/uuid"

// Member is the authenticated portal member extracted from the JWT.
// Email is the identity the hosted functions key on; OrganizationID is
// nil for members without an organization (no vouchers, no fund).
type Member struct {
	ID             uuid.UUID
	Email          string
	OrganizationID *uuid.UUID
}
