//go:build unit

package purchase_test

import (
	"testing"
	"time"

	"member-portal/internal/domain/purchase"
	"member-portal/internal/domain/voucher"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGate struct {
	excluded map[string]bool
}

func (g stubGate) IsExcluded(feature string) bool {
	return g.excluded[feature]
}

func makeVoucher(t *testing.T, value float64) *voucher.Voucher {
	t.Helper()
	v, err := voucher.NewVoucher(uuid.New(), uuid.New(), value, nil, voucher.StatusActive)
	require.NoError(t, err)
	return v
}

func ids(vs ...*voucher.Voucher) []uuid.UUID {
	out := make([]uuid.UUID, len(vs))
	for i, v := range vs {
		out[i] = v.ID()
	}
	return out
}

func TestAllocate(t *testing.T) {
	t.Run("channels sum to total cost", func(t *testing.T) {
		v1 := makeVoucher(t, 30)
		v2 := makeVoucher(t, 20)
		vouchers := []*voucher.Voucher{v1, v2}

		alloc := purchase.Allocate(100, ids(v1, v2), vouchers, 25, 40, nil)

		assert.InDelta(t, 50, alloc.VoucherAmount, 0.001)
		assert.InDelta(t, 25, alloc.TrainingFundAmount, 0.001)
		assert.InDelta(t, 25, alloc.RemainingBalance, 0.001)
		assert.True(t, alloc.IsFullyPaid(100))
	})

	t.Run("voucher amount capped at total cost", func(t *testing.T) {
		v1 := makeVoucher(t, 80)
		v2 := makeVoucher(t, 50)
		vouchers := []*voucher.Voucher{v1, v2}

		alloc := purchase.Allocate(100, ids(v1, v2), vouchers, 0, 0, nil)

		assert.InDelta(t, 100, alloc.VoucherAmount, 0.001)
		assert.InDelta(t, 0, alloc.RemainingBalance, 0.001)
		assert.True(t, alloc.IsFullyPaid(100))
	})

	t.Run("stale voucher ids contribute nothing", func(t *testing.T) {
		v1 := makeVoucher(t, 30)
		staleID := uuid.New()

		alloc := purchase.Allocate(100, []uuid.UUID{v1.ID(), staleID}, []*voucher.Voucher{v1}, 0, 0, nil)

		assert.InDelta(t, 30, alloc.VoucherAmount, 0.001)
		assert.InDelta(t, 70, alloc.RemainingBalance, 0.001)
	})

	t.Run("training fund clamped to balance", func(t *testing.T) {
		alloc := purchase.Allocate(100, nil, nil, 500, 60, nil)

		assert.InDelta(t, 60, alloc.TrainingFundAmount, 0.001)
		assert.InDelta(t, 40, alloc.RemainingBalance, 0.001)
	})

	t.Run("training fund clamped to unpaid remainder", func(t *testing.T) {
		v := makeVoucher(t, 90)

		alloc := purchase.Allocate(100, ids(v), []*voucher.Voucher{v}, 50, 200, nil)

		assert.InDelta(t, 90, alloc.VoucherAmount, 0.001)
		assert.InDelta(t, 10, alloc.TrainingFundAmount, 0.001)
		assert.InDelta(t, 0, alloc.RemainingBalance, 0.001)
	})

	t.Run("negative training fund request treated as zero", func(t *testing.T) {
		alloc := purchase.Allocate(100, nil, nil, -10, 50, nil)

		assert.InDelta(t, 0, alloc.TrainingFundAmount, 0.001)
		assert.InDelta(t, 100, alloc.RemainingBalance, 0.001)
	})

	t.Run("excluded voucher channel contributes nothing", func(t *testing.T) {
		v := makeVoucher(t, 50)
		gate := stubGate{excluded: map[string]bool{purchase.FeatureVouchers: true}}

		alloc := purchase.Allocate(100, ids(v), []*voucher.Voucher{v}, 0, 0, gate)

		assert.InDelta(t, 0, alloc.VoucherAmount, 0.001)
		assert.InDelta(t, 100, alloc.RemainingBalance, 0.001)
	})

	t.Run("excluded training fund channel contributes nothing", func(t *testing.T) {
		gate := stubGate{excluded: map[string]bool{purchase.FeatureTrainingFund: true}}

		alloc := purchase.Allocate(100, nil, nil, 50, 200, gate)

		assert.InDelta(t, 0, alloc.TrainingFundAmount, 0.001)
		assert.InDelta(t, 100, alloc.RemainingBalance, 0.001)
	})

	t.Run("zero total cost yields zero allocation", func(t *testing.T) {
		v := makeVoucher(t, 50)

		alloc := purchase.Allocate(0, ids(v), []*voucher.Voucher{v}, 50, 200, nil)

		assert.InDelta(t, 0, alloc.VoucherAmount, 0.001)
		assert.InDelta(t, 0, alloc.TrainingFundAmount, 0.001)
		assert.InDelta(t, 0, alloc.RemainingBalance, 0.001)
		assert.True(t, alloc.IsFullyPaid(0))
	})
}

func TestIsFullyPaidTolerance(t *testing.T) {
	alloc := purchase.Allocation{VoucherAmount: 33.33, TrainingFundAmount: 33.33, RemainingBalance: 33.335}

	assert.True(t, alloc.IsFullyPaid(99.99))
	assert.False(t, alloc.IsFullyPaid(100.10))
}

func TestVoucherSelectable(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	t.Run("active unexpired voucher is selectable", func(t *testing.T) {
		v := voucher.ReconstructVoucher(uuid.New(), uuid.New(), 10, &future, voucher.StatusActive, past)
		assert.True(t, v.Selectable(now))
	})

	t.Run("expired voucher is not selectable", func(t *testing.T) {
		v := voucher.ReconstructVoucher(uuid.New(), uuid.New(), 10, &past, voucher.StatusActive, past)
		assert.False(t, v.Selectable(now))
	})

	t.Run("redeemed voucher is not selectable", func(t *testing.T) {
		v := voucher.ReconstructVoucher(uuid.New(), uuid.New(), 10, nil, voucher.StatusRedeemed, past)
		assert.False(t, v.Selectable(now))
	})
}
