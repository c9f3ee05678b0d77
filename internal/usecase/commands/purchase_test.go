//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"member-portal/internal/infra"
	"member-portal/internal/infra/draftstore"
	"member-portal/internal/infra/functions"
	"member-portal/internal/pkg/clock"
	"member-portal/internal/pkg/config"
	"member-portal/internal/pkg/errs"
	"member-portal/internal/usecase/commands"
	"member-portal/internal/usecase/queries"
	"member-portal/internal/usecase/shared"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProgramStore struct {
	programs map[uuid.UUID]*queries.ProgramView
}

func (f *fakeProgramStore) FindByID(_ context.Context, id uuid.UUID) (*queries.ProgramView, error) {
	p, ok := f.programs[id]
	if !ok {
		return nil, infra.WrapRepoErr("program not found", nil, infra.KindNotFound)
	}
	return p, nil
}

func (f *fakeProgramStore) FindByTag(_ context.Context, tag string) (*queries.ProgramView, error) {
	for _, p := range f.programs {
		if p.Tag == tag {
			return p, nil
		}
	}
	return nil, infra.WrapRepoErr("program not found", nil, infra.KindNotFound)
}

func (f *fakeProgramStore) List(_ context.Context) ([]*queries.ProgramView, error) {
	out := make([]*queries.ProgramView, 0, len(f.programs))
	for _, p := range f.programs {
		out = append(out, p)
	}
	return out, nil
}

type fakeVoucherStore struct {
	vouchers []*queries.VoucherView
}

func (f *fakeVoucherStore) FindActiveByOrganization(_ context.Context, _ uuid.UUID) ([]*queries.VoucherView, error) {
	return f.vouchers, nil
}

type fakeOrgStore struct {
	org *queries.OrganizationView
}

func (f *fakeOrgStore) FindByID(_ context.Context, _ uuid.UUID) (*queries.OrganizationView, error) {
	if f.org == nil {
		return nil, infra.WrapRepoErr("organization not found", nil, infra.KindNotFound)
	}
	return f.org, nil
}

type fakeGateway struct {
	discountResp *functions.ApplyDiscountCodeResponse
	intentResp   *functions.CreateStripePaymentIntentResponse
	// onApplyDiscount runs before the discount response resolves, to
	// simulate the form changing while the request is in flight.
	onApplyDiscount func()

	discountCalls []functions.ApplyDiscountCodeRequest
	intentCalls   []functions.CreateStripePaymentIntentRequest
}

func (f *fakeGateway) ApplyDiscountCode(_ context.Context, req functions.ApplyDiscountCodeRequest) (*functions.ApplyDiscountCodeResponse, error) {
	f.discountCalls = append(f.discountCalls, req)
	if f.onApplyDiscount != nil {
		f.onApplyDiscount()
	}
	return f.discountResp, nil
}

func (f *fakeGateway) CreateStripePaymentIntent(_ context.Context, req functions.CreateStripePaymentIntentRequest) (*functions.CreateStripePaymentIntentResponse, error) {
	f.intentCalls = append(f.intentCalls, req)
	return f.intentResp, nil
}

func (f *fakeGateway) ProcessProgramTicketPurchase(_ context.Context, _ functions.ProcessProgramTicketPurchaseRequest) (*functions.Result, error) {
	return &functions.Result{Success: true}, nil
}

func (f *fakeGateway) CreateBooking(_ context.Context, _ functions.CreateBookingRequest) (*functions.Result, error) {
	return &functions.Result{Success: true}, nil
}

func (f *fakeGateway) ValidateColleague(_ context.Context, _ functions.ValidateColleagueRequest) (*functions.ValidateColleagueResponse, error) {
	return &functions.ValidateColleagueResponse{Valid: true}, nil
}

func (f *fakeGateway) CancelTicketViaFlow(_ context.Context, _ functions.CancelTicketRequest) (*functions.Result, error) {
	return &functions.Result{Success: true}, nil
}

func (f *fakeGateway) SyncOrganizationContacts(_ context.Context, _ functions.SyncOrganizationContactsRequest) (*functions.Result, error) {
	return &functions.Result{Success: true}, nil
}

type purchaseFixture struct {
	uc        commands.PurchaseCommands
	member    shared.Member
	programID uuid.UUID
	drafts    *draftstore.MemoryStore
	gateway   *fakeGateway
	voucherID uuid.UUID
}

func newPurchaseFixture(t *testing.T) *purchaseFixture {
	t.Helper()

	orgID := uuid.New()
	programID := uuid.New()
	voucherID := uuid.New()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	expires := now.Add(30 * 24 * time.Hour)

	bogoBuy := int32(3)
	bogoFree := int32(1)
	programs := &fakeProgramStore{programs: map[uuid.UUID]*queries.ProgramView{
		programID: {
			ID:                  programID,
			Tag:                 "leadership-2026",
			Name:                "Leadership Series",
			Price:               10,
			OfferType:           "bogo",
			BogoBuyQuantity:     &bogoBuy,
			BogoGetFreeQuantity: &bogoFree,
		},
	}}
	vouchers := &fakeVoucherStore{vouchers: []*queries.VoucherView{
		{ID: voucherID, OrganizationID: orgID, Value: 15, ExpiresAt: &expires, Status: "active"},
	}}
	orgs := &fakeOrgStore{org: &queries.OrganizationView{ID: orgID, Name: "Acme", TrainingFundBalance: 40}}

	drafts := draftstore.NewMemoryStore()
	gateway := &fakeGateway{}

	uc := commands.NewPurchaseUseCase(
		programs,
		vouchers,
		orgs,
		nil, // purchase queries: finalization is not exercised here
		nil,
		nil,
		nil,
		drafts,
		gateway,
		shared.NewConfigFeatureGate(config.FeaturesConfig{}),
		nil,
		clock.NewMockClock(now),
	)

	return &purchaseFixture{
		uc:        uc,
		member:    shared.Member{ID: uuid.New(), Email: "pat@acme.example", OrganizationID: &orgID},
		programID: programID,
		drafts:    drafts,
		gateway:   gateway,
		voucherID: voucherID,
	}
}

func TestStartPurchase(t *testing.T) {
	t.Run("initializes a fresh draft at quantity one", func(t *testing.T) {
		f := newPurchaseFixture(t)

		state, err := f.uc.StartPurchase(context.Background(), f.member, f.programID)
		require.NoError(t, err)

		assert.Equal(t, 1, state.Quantity)
		assert.Equal(t, "account", state.PaymentMethod)
		assert.InDelta(t, 10, state.TotalCost, 0.001)
		assert.InDelta(t, 10, state.Allocation.RemainingBalance, 0.001)
		assert.Nil(t, state.Discount)
		assert.True(t, state.FullyPaid)
	})

	t.Run("restores the persisted draft", func(t *testing.T) {
		f := newPurchaseFixture(t)
		ctx := context.Background()

		_, err := f.uc.UpdateAllocation(ctx, f.member, f.programID, commands.UpdateAllocationParams{
			Quantity:         3,
			SelectedVouchers: []uuid.UUID{f.voucherID},
			TrainingFund:     5,
		})
		require.NoError(t, err)

		state, err := f.uc.StartPurchase(ctx, f.member, f.programID)
		require.NoError(t, err)

		assert.Equal(t, 3, state.Quantity)
		assert.Equal(t, []uuid.UUID{f.voucherID}, state.SelectedVouchers)
		assert.InDelta(t, 15, state.Allocation.VoucherAmount, 0.001)
		assert.InDelta(t, 5, state.Allocation.TrainingFundAmount, 0.001)
		assert.InDelta(t, 10, state.Allocation.RemainingBalance, 0.001)
	})

	t.Run("unknown program", func(t *testing.T) {
		f := newPurchaseFixture(t)

		_, err := f.uc.StartPurchase(context.Background(), f.member, uuid.New())
		assert.True(t, errs.Is(err, errs.ErrProgramNotFound))
	})
}

func TestUpdateAllocation(t *testing.T) {
	t.Run("derives pricing from the offer", func(t *testing.T) {
		f := newPurchaseFixture(t)

		state, err := f.uc.UpdateAllocation(context.Background(), f.member, f.programID, commands.UpdateAllocationParams{Quantity: 3})
		require.NoError(t, err)

		assert.InDelta(t, 30, state.TotalCost, 0.001)
		assert.Equal(t, 1, state.FreeTickets)
		assert.Equal(t, 4, state.TotalTickets)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		f := newPurchaseFixture(t)

		_, err := f.uc.UpdateAllocation(context.Background(), f.member, f.programID, commands.UpdateAllocationParams{Quantity: 0})
		assert.True(t, errs.Is(err, errs.ErrInvalidQuantity))
	})

	t.Run("quantity change invalidates an applied discount", func(t *testing.T) {
		f := newPurchaseFixture(t)
		ctx := context.Background()

		_, err := f.uc.UpdateAllocation(ctx, f.member, f.programID, commands.UpdateAllocationParams{Quantity: 3})
		require.NoError(t, err)

		f.gateway.discountResp = &functions.ApplyDiscountCodeResponse{
			Success:                true,
			DiscountID:             "disc_1",
			Code:                   "SPRING10",
			TotalCostAfterDiscount: 27,
			DiscountAmount:         3,
		}
		discounted, err := f.uc.ApplyDiscount(ctx, f.member, f.programID, "SPRING10")
		require.NoError(t, err)
		require.NotNil(t, discounted.Discount)
		assert.InDelta(t, 27, discounted.TotalCost, 0.001)

		changed, err := f.uc.UpdateAllocation(ctx, f.member, f.programID, commands.UpdateAllocationParams{Quantity: 4})
		require.NoError(t, err)

		assert.Nil(t, changed.Discount)
		assert.InDelta(t, 40, changed.TotalCost, 0.001)
	})
}

func TestApplyDiscount(t *testing.T) {
	t.Run("validates against the undiscounted total", func(t *testing.T) {
		f := newPurchaseFixture(t)
		ctx := context.Background()

		_, err := f.uc.UpdateAllocation(ctx, f.member, f.programID, commands.UpdateAllocationParams{Quantity: 3})
		require.NoError(t, err)

		f.gateway.discountResp = &functions.ApplyDiscountCodeResponse{
			Success:                true,
			DiscountID:             "disc_1",
			Code:                   "SPRING10",
			TotalCostAfterDiscount: 27,
			DiscountAmount:         3,
		}

		state, err := f.uc.ApplyDiscount(ctx, f.member, f.programID, "SPRING10")
		require.NoError(t, err)

		require.Len(t, f.gateway.discountCalls, 1)
		assert.InDelta(t, 30, f.gateway.discountCalls[0].TotalCost, 0.001)
		assert.Equal(t, "leadership-2026", f.gateway.discountCalls[0].ProgramTag)

		require.NotNil(t, state.Discount)
		assert.InDelta(t, 27, state.TotalCost, 0.001)
		assert.InDelta(t, 30, state.BaseCost, 0.001)
	})

	t.Run("surfaces the rejection message", func(t *testing.T) {
		f := newPurchaseFixture(t)

		f.gateway.discountResp = &functions.ApplyDiscountCodeResponse{
			Success: false,
			Error:   "code expired on 2026-01-31",
		}

		_, err := f.uc.ApplyDiscount(context.Background(), f.member, f.programID, "OLD")
		require.True(t, errs.Is(err, errs.ErrDiscountRejected))
		assert.Contains(t, err.Error(), "code expired on 2026-01-31")
	})

	t.Run("drops a response that resolves for a stale quantity", func(t *testing.T) {
		f := newPurchaseFixture(t)
		ctx := context.Background()

		_, err := f.uc.UpdateAllocation(ctx, f.member, f.programID, commands.UpdateAllocationParams{Quantity: 3})
		require.NoError(t, err)

		f.gateway.discountResp = &functions.ApplyDiscountCodeResponse{
			Success:                true,
			DiscountID:             "disc_1",
			Code:                   "SPRING10",
			TotalCostAfterDiscount: 27,
			DiscountAmount:         3,
		}
		// The member bumps quantity while the discount request is in flight.
		f.gateway.onApplyDiscount = func() {
			_, bumpErr := f.uc.UpdateAllocation(ctx, f.member, f.programID, commands.UpdateAllocationParams{Quantity: 5})
			require.NoError(t, bumpErr)
		}

		_, err = f.uc.ApplyDiscount(ctx, f.member, f.programID, "SPRING10")
		assert.True(t, errs.Is(err, errs.ErrStaleDiscount))

		state, err := f.uc.StartPurchase(ctx, f.member, f.programID)
		require.NoError(t, err)
		assert.Nil(t, state.Discount)
		assert.InDelta(t, 50, state.TotalCost, 0.001)
	})
}

func TestStateDerivationIsStable(t *testing.T) {
	// Re-opening the form must never change the derived state.
	f := newPurchaseFixture(t)
	ctx := context.Background()

	_, err := f.uc.UpdateAllocation(ctx, f.member, f.programID, commands.UpdateAllocationParams{
		Quantity:         3,
		SelectedVouchers: []uuid.UUID{f.voucherID},
		TrainingFund:     5,
	})
	require.NoError(t, err)

	first, err := f.uc.StartPurchase(ctx, f.member, f.programID)
	require.NoError(t, err)
	second, err := f.uc.StartPurchase(ctx, f.member, f.programID)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("derived state mismatch (-first +second):\n%s", diff)
	}
}

func TestSubmitPurchase(t *testing.T) {
	t.Run("card payment with a balance hands off to the intent", func(t *testing.T) {
		f := newPurchaseFixture(t)
		ctx := context.Background()

		_, err := f.uc.UpdateAllocation(ctx, f.member, f.programID, commands.UpdateAllocationParams{
			Quantity:      3,
			PaymentMethod: "card",
		})
		require.NoError(t, err)

		f.gateway.intentResp = &functions.CreateStripePaymentIntentResponse{
			Success:         true,
			ClientSecret:    "pi_secret",
			PaymentIntentID: "pi_123",
		}

		result, err := f.uc.SubmitPurchase(ctx, f.member, f.programID, uuid.New())
		require.NoError(t, err)

		assert.True(t, result.RequiresCardPayment)
		assert.Equal(t, "pi_secret", result.ClientSecret)
		assert.Equal(t, "pi_123", result.PaymentIntentID)

		require.Len(t, f.gateway.intentCalls, 1)
		assert.InDelta(t, 30, f.gateway.intentCalls[0].Amount, 0.001)

		// The draft survives the handoff with the intent attached.
		raw, ok, err := f.drafts.Get(ctx, shared.PurchaseDraftKey(f.member.Email, f.programID))
		require.NoError(t, err)
		require.True(t, ok)
		assert.Contains(t, string(raw), "pi_123")
	})

	t.Run("account payment requires a purchase order", func(t *testing.T) {
		f := newPurchaseFixture(t)
		ctx := context.Background()

		_, err := f.uc.UpdateAllocation(ctx, f.member, f.programID, commands.UpdateAllocationParams{
			Quantity:      3,
			PaymentMethod: "account",
		})
		require.NoError(t, err)

		_, err = f.uc.SubmitPurchase(ctx, f.member, f.programID, uuid.New())
		assert.True(t, errs.Is(err, errs.ErrPurchaseOrderRequired))
	})

	t.Run("mismatched payment intent is rejected on confirmation", func(t *testing.T) {
		f := newPurchaseFixture(t)
		ctx := context.Background()

		_, err := f.uc.UpdateAllocation(ctx, f.member, f.programID, commands.UpdateAllocationParams{
			Quantity:      3,
			PaymentMethod: "card",
		})
		require.NoError(t, err)

		f.gateway.intentResp = &functions.CreateStripePaymentIntentResponse{
			Success:         true,
			ClientSecret:    "pi_secret",
			PaymentIntentID: "pi_123",
		}
		_, err = f.uc.SubmitPurchase(ctx, f.member, f.programID, uuid.New())
		require.NoError(t, err)

		_, err = f.uc.ConfirmCardPayment(ctx, f.member, f.programID, "pi_other", uuid.New())
		assert.Error(t, err)
	})

	t.Run("allocation change after the handoff invalidates the intent", func(t *testing.T) {
		f := newPurchaseFixture(t)
		ctx := context.Background()

		_, err := f.uc.UpdateAllocation(ctx, f.member, f.programID, commands.UpdateAllocationParams{
			Quantity:      3,
			PaymentMethod: "card",
		})
		require.NoError(t, err)

		f.gateway.intentResp = &functions.CreateStripePaymentIntentResponse{
			Success:         true,
			ClientSecret:    "pi_secret",
			PaymentIntentID: "pi_123",
		}
		_, err = f.uc.SubmitPurchase(ctx, f.member, f.programID, uuid.New())
		require.NoError(t, err)

		// Same quantity, but a voucher drops the remaining balance from
		// 30 to 15. The intent was issued for 30 and must not survive.
		_, err = f.uc.UpdateAllocation(ctx, f.member, f.programID, commands.UpdateAllocationParams{
			Quantity:         3,
			SelectedVouchers: []uuid.UUID{f.voucherID},
			PaymentMethod:    "card",
		})
		require.NoError(t, err)

		raw, ok, err := f.drafts.Get(ctx, shared.PurchaseDraftKey(f.member.Email, f.programID))
		require.NoError(t, err)
		require.True(t, ok)
		assert.NotContains(t, string(raw), "pi_123")

		_, err = f.uc.ConfirmCardPayment(ctx, f.member, f.programID, "pi_123", uuid.New())
		assert.Error(t, err)
	})

	t.Run("confirmation rejects a balance that no longer matches the intent", func(t *testing.T) {
		f := newPurchaseFixture(t)
		ctx := context.Background()

		// A surviving intent issued for a different balance must not
		// finalize; the card was charged the issued amount.
		err := shared.SaveDraft(ctx, f.drafts, shared.PurchaseDraftKey(f.member.Email, f.programID), shared.PurchaseDraft{
			ProgramID:           f.programID,
			Quantity:            3,
			PaymentMethod:       "card",
			PaymentIntentID:     "pi_123",
			PaymentIntentAmount: 12,
		})
		require.NoError(t, err)

		_, err = f.uc.ConfirmCardPayment(ctx, f.member, f.programID, "pi_123", uuid.New())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "allocation changed")
	})
}
