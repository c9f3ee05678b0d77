package purchase

import (
	"math"

	"member-portal/internal/domain/voucher"

	"github.com/google/uuid"
)

// Payment channels a deployment may disable. A disabled channel
// contributes nothing to an allocation and the freed amount shifts to
// the remaining balance.
const (
	FeatureVouchers     = "vouchers"
	FeatureTrainingFund = "training_fund"
)

// FeatureGate answers whether a payment channel is excluded for the
// current deployment or organization.
type FeatureGate interface {
	IsExcluded(feature string) bool
}

// PaymentMethod settles whatever remains after vouchers and training
// fund are applied.
type PaymentMethod string

const (
	PaymentAccount PaymentMethod = "account"
	PaymentCard    PaymentMethod = "card"
)

func (m PaymentMethod) IsValid() bool {
	return m == PaymentAccount || m == PaymentCard
}

// Allocation is an ephemeral derived value, never persisted as such: it
// is recomputed from current selections on every change and discarded
// once a purchase is submitted.
type Allocation struct {
	VoucherAmount      float64
	TrainingFundAmount float64
	RemainingBalance   float64
}

// Tolerance for currency comparison.
const amountEpsilon = 0.01

// Allocate derives voucher, training-fund and remaining-balance amounts
// for a total cost. Selected voucher ids not present in vouchers
// contribute 0 (stale selections are tolerated, not rejected). The
// voucher amount never exceeds the total; the training fund never
// exceeds what the fund balance and the unpaid remainder allow.
func Allocate(
	totalCost float64,
	selectedVoucherIDs []uuid.UUID,
	vouchers []*voucher.Voucher,
	trainingFundRequested float64,
	fundBalance float64,
	gate FeatureGate,
) Allocation {
	if totalCost < 0 {
		totalCost = 0
	}

	voucherAmount := 0.0
	if gate == nil || !gate.IsExcluded(FeatureVouchers) {
		byID := make(map[uuid.UUID]float64, len(vouchers))
		for _, v := range vouchers {
			byID[v.ID()] = v.Value()
		}
		for _, id := range selectedVoucherIDs {
			voucherAmount += byID[id]
		}
		voucherAmount = math.Min(voucherAmount, totalCost)
	}

	trainingFundAmount := 0.0
	if gate == nil || !gate.IsExcluded(FeatureTrainingFund) {
		maxFund := math.Min(fundBalance, totalCost-voucherAmount)
		trainingFundAmount = clamp(trainingFundRequested, 0, maxFund)
	}

	remaining := totalCost - voucherAmount - trainingFundAmount
	if remaining < 0 {
		remaining = 0
	}

	return Allocation{
		VoucherAmount:      voucherAmount,
		TrainingFundAmount: trainingFundAmount,
		RemainingBalance:   remaining,
	}
}

// IsFullyPaid reports whether the three channels cover the total cost
// within currency tolerance. Checked before any submission.
func (a Allocation) IsFullyPaid(totalCost float64) bool {
	sum := a.VoucherAmount + a.TrainingFundAmount + a.RemainingBalance
	return math.Abs(sum-totalCost) < amountEpsilon
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
