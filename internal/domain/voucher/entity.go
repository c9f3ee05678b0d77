package voucher

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNegativeValue = errors.New("voucher value cannot be negative")

type Status string

const (
	StatusActive   Status = "active"
	StatusRedeemed Status = "redeemed"
	StatusExpired  Status = "expired"
	StatusRevoked  Status = "revoked"
)

// Voucher is a fixed-value expiring credit owned by an organization.
// Selection during allocation does not consume it; redemption happens
// in the purchase-finalization function.
type Voucher struct {
	id             uuid.UUID
	organizationID uuid.UUID
	value          float64
	expiresAt      *time.Time
	status         Status
	createdAt      time.Time
}

func NewVoucher(id, organizationID uuid.UUID, value float64, expiresAt *time.Time, status Status) (*Voucher, error) {
	if value < 0 {
		return nil, ErrNegativeValue
	}
	return &Voucher{
		id:             id,
		organizationID: organizationID,
		value:          value,
		expiresAt:      expiresAt,
		status:         status,
	}, nil
}

func ReconstructVoucher(id, organizationID uuid.UUID, value float64, expiresAt *time.Time, status Status, createdAt time.Time) *Voucher {
	return &Voucher{
		id:             id,
		organizationID: organizationID,
		value:          value,
		expiresAt:      expiresAt,
		status:         status,
		createdAt:      createdAt,
	}
}

// Selectable reports whether the voucher may contribute to an
// allocation at time t.
func (v *Voucher) Selectable(t time.Time) bool {
	if v.status != StatusActive {
		return false
	}
	if v.expiresAt != nil && t.After(*v.expiresAt) {
		return false
	}
	return true
}

func (v *Voucher) ID() uuid.UUID             { return v.id }
func (v *Voucher) OrganizationID() uuid.UUID { return v.organizationID }
func (v *Voucher) Value() float64            { return v.value }
func (v *Voucher) ExpiresAt() *time.Time     { return v.expiresAt }
func (v *Voucher) Status() Status            { return v.status }
func (v *Voucher) CreatedAt() time.Time      { return v.createdAt }
