package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"member-portal/internal/domain/program"
	"member-portal/internal/domain/purchase"
	"member-portal/internal/domain/voucher"
	"member-portal/internal/infra"
	"member-portal/internal/infra/functions"
	"member-portal/internal/pkg/clock"
	"member-portal/internal/pkg/errs"
	"member-portal/internal/usecase/queries"
	"member-portal/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UpdateAllocationParams struct {
	Quantity         int
	SelectedVouchers []uuid.UUID
	TrainingFund     float64
	PaymentMethod    string
	PurchaseOrder    string
}

type AppliedDiscount struct {
	ID         string  `json:"id"`
	Code       string  `json:"code"`
	Amount     float64 `json:"amount"`
	TotalAfter float64 `json:"total_after"`
}

// PurchaseState is the synchronously derived view of the purchase form:
// pricing and allocation always reflect the latest persisted draft.
type PurchaseState struct {
	ProgramID        uuid.UUID           `json:"program_id"`
	ProgramTag       string              `json:"program_tag"`
	Quantity         int                 `json:"quantity"`
	FreeTickets      int                 `json:"free_tickets"`
	TotalTickets     int                 `json:"total_tickets"`
	BaseCost         float64             `json:"base_cost"`
	TotalCost        float64             `json:"total_cost"`
	Allocation       purchase.Allocation `json:"allocation"`
	SelectedVouchers []uuid.UUID         `json:"selected_vouchers"`
	TrainingFund     float64             `json:"training_fund"`
	PaymentMethod    string              `json:"payment_method"`
	PurchaseOrder    string              `json:"purchase_order"`
	Discount         *AppliedDiscount    `json:"discount,omitempty"`
	FullyPaid        bool                `json:"fully_paid"`
}

type SubmitPurchaseResult struct {
	// RequiresCardPayment: a payment intent was created and the card
	// entry UI must confirm it before finalization.
	RequiresCardPayment bool
	ClientSecret        string
	PaymentIntentID     string
	Purchase            *queries.PurchaseView
	IsReplayed          bool
}

type PurchaseCommands interface {
	StartPurchase(ctx context.Context, member shared.Member, programID uuid.UUID) (*PurchaseState, error)
	UpdateAllocation(ctx context.Context, member shared.Member, programID uuid.UUID, params UpdateAllocationParams) (*PurchaseState, error)
	ApplyDiscount(ctx context.Context, member shared.Member, programID uuid.UUID, code string) (*PurchaseState, error)
	SubmitPurchase(ctx context.Context, member shared.Member, programID, idempotencyKey uuid.UUID) (*SubmitPurchaseResult, error)
	ConfirmCardPayment(ctx context.Context, member shared.Member, programID uuid.UUID, paymentIntentID string, idempotencyKey uuid.UUID) (*SubmitPurchaseResult, error)
}

type purchaseUseCaseImpl struct {
	programs        queries.ProgramReadStore
	vouchers        queries.VoucherReadStore
	organizations   queries.OrganizationReadStore
	purchaseQueries queries.PurchaseQueries
	purchaseRepo    shared.PurchaseRepository
	idempotencyRepo shared.IdempotencyRepository
	refreshRepo     shared.RefreshJobRepository
	drafts          shared.DraftStore
	fns             FunctionsGateway
	gate            purchase.FeatureGate
	db              *pgxpool.Pool
	clock           clock.Clock
	currency        string
}

func NewPurchaseUseCase(
	programs queries.ProgramReadStore,
	vouchers queries.VoucherReadStore,
	organizations queries.OrganizationReadStore,
	purchaseQueries queries.PurchaseQueries,
	purchaseRepo shared.PurchaseRepository,
	idempotencyRepo shared.IdempotencyRepository,
	refreshRepo shared.RefreshJobRepository,
	drafts shared.DraftStore,
	fns FunctionsGateway,
	gate purchase.FeatureGate,
	db *pgxpool.Pool,
	clk clock.Clock,
) PurchaseCommands {
	return &purchaseUseCaseImpl{
		programs:        programs,
		vouchers:        vouchers,
		organizations:   organizations,
		purchaseQueries: purchaseQueries,
		purchaseRepo:    purchaseRepo,
		idempotencyRepo: idempotencyRepo,
		refreshRepo:     refreshRepo,
		drafts:          drafts,
		fns:             fns,
		gate:            gate,
		db:              db,
		clock:           clk,
		currency:        "usd",
	}
}

// StartPurchase restores the session-persisted draft for the program,
// or initializes quantity 1 with a zeroed allocation.
func (u *purchaseUseCaseImpl) StartPurchase(ctx context.Context, member shared.Member, programID uuid.UUID) (*PurchaseState, error) {
	prog, err := u.loadProgram(ctx, programID)
	if err != nil {
		return nil, err
	}

	draft, err := u.loadOrInitDraft(ctx, member, programID)
	if err != nil {
		return nil, err
	}

	return u.deriveState(ctx, member, prog, draft, true)
}

// UpdateAllocation re-derives cost and allocation from the changed
// fields and persists the full snapshot. A quantity change invalidates
// any previously applied discount.
func (u *purchaseUseCaseImpl) UpdateAllocation(ctx context.Context, member shared.Member, programID uuid.UUID, params UpdateAllocationParams) (*PurchaseState, error) {
	if params.Quantity <= 0 {
		return nil, errs.ErrInvalidQuantity
	}
	method := purchase.PaymentMethod(params.PaymentMethod)
	if params.PaymentMethod != "" && !method.IsValid() {
		return nil, errs.New("unknown payment method: " + params.PaymentMethod)
	}

	prog, err := u.loadProgram(ctx, programID)
	if err != nil {
		return nil, err
	}

	draft, err := u.loadOrInitDraft(ctx, member, programID)
	if err != nil {
		return nil, err
	}

	if draft.Quantity != params.Quantity {
		// Stale-discount invalidation: a discount never carries over to
		// a different total.
		draft.Discount = nil
	}
	if allocationMoved(draft, params) {
		// An intent issued against the old remaining balance must not
		// survive any change that can move it.
		draft.PaymentIntentID = ""
		draft.PaymentIntentAmount = 0
	}
	draft.Quantity = params.Quantity
	draft.SelectedVouchers = params.SelectedVouchers
	draft.TrainingFund = params.TrainingFund
	if params.PaymentMethod != "" {
		draft.PaymentMethod = params.PaymentMethod
	}
	draft.PurchaseOrder = params.PurchaseOrder

	return u.deriveState(ctx, member, prog, draft, true)
}

// ApplyDiscount validates a code against the current total. The request
// is tagged with the program and quantity it was issued for; if the
// draft has moved on by the time the response resolves, the response is
// discarded instead of re-applying a stale discount.
func (u *purchaseUseCaseImpl) ApplyDiscount(ctx context.Context, member shared.Member, programID uuid.UUID, code string) (*PurchaseState, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, errs.ErrDiscountRejected
	}

	prog, err := u.loadProgram(ctx, programID)
	if err != nil {
		return nil, err
	}

	draft, err := u.loadOrInitDraft(ctx, member, programID)
	if err != nil {
		return nil, err
	}

	issuedForQuantity := draft.Quantity
	domainProgram := toDomainProgram(prog)
	baseCost := program.CalculateCost(domainProgram, issuedForQuantity)

	resp, err := u.fns.ApplyDiscountCode(ctx, functions.ApplyDiscountCodeRequest{
		Code:        code,
		TotalCost:   baseCost,
		ProgramTag:  prog.Tag,
		MemberEmail: member.Email,
	})
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, errs.Mark(errs.New(resp.Error), errs.ErrDiscountRejected)
	}

	// Resolution-time staleness check: reload the draft and drop the
	// response if quantity or program changed while the call was in
	// flight.
	current, err := u.loadOrInitDraft(ctx, member, programID)
	if err != nil {
		return nil, err
	}
	if current.Quantity != issuedForQuantity || current.ProgramID != programID {
		slog.Info("discarding stale discount response",
			"program_id", programID, "issued_for_quantity", issuedForQuantity, "current_quantity", current.Quantity)
		return nil, errs.ErrStaleDiscount
	}

	current.Discount = &shared.DraftDiscount{
		ID:          resp.DiscountID,
		Code:        resp.Code,
		TotalAfter:  resp.TotalCostAfterDiscount,
		Amount:      resp.DiscountAmount,
		ForProgram:  programID,
		ForQuantity: issuedForQuantity,
	}

	return u.deriveState(ctx, member, prog, current, true)
}

// SubmitPurchase runs the Submitting step of the form state machine:
// card payments with an outstanding balance get a payment intent first;
// account payments need a purchase order number; a fully covered bill
// finalizes immediately.
func (u *purchaseUseCaseImpl) SubmitPurchase(ctx context.Context, member shared.Member, programID, idempotencyKey uuid.UUID) (*SubmitPurchaseResult, error) {
	prog, err := u.loadProgram(ctx, programID)
	if err != nil {
		return nil, err
	}
	draft, err := u.loadOrInitDraft(ctx, member, programID)
	if err != nil {
		return nil, err
	}
	if draft.Quantity <= 0 {
		return nil, errs.ErrInvalidQuantity
	}

	state, err := u.deriveState(ctx, member, prog, draft, false)
	if err != nil {
		return nil, err
	}
	if !state.FullyPaid {
		return nil, errs.ErrUnallocatedBalance
	}

	remaining := state.Allocation.RemainingBalance
	method := purchase.PaymentMethod(state.PaymentMethod)

	if remaining > 0 && method == purchase.PaymentCard {
		intent, intentErr := u.fns.CreateStripePaymentIntent(ctx, functions.CreateStripePaymentIntentRequest{
			Amount:      remaining,
			Currency:    u.currency,
			MemberEmail: member.Email,
			Metadata: map[string]string{
				"program_tag": prog.Tag,
				"quantity":    fmt.Sprintf("%d", state.Quantity),
			},
		})
		if intentErr != nil {
			return nil, intentErr
		}
		if !intent.Success {
			return nil, errs.Mark(errs.New(intent.Error), errs.ErrUpstreamFunctionFailed)
		}

		draft.PaymentIntentID = intent.PaymentIntentID
		draft.PaymentIntentAmount = remaining
		if saveErr := shared.SaveDraft(ctx, u.drafts, shared.PurchaseDraftKey(member.Email, programID), *draft); saveErr != nil {
			return nil, saveErr
		}
		return &SubmitPurchaseResult{
			RequiresCardPayment: true,
			ClientSecret:        intent.ClientSecret,
			PaymentIntentID:     intent.PaymentIntentID,
		}, nil
	}

	if remaining > 0 && method == purchase.PaymentAccount && strings.TrimSpace(state.PurchaseOrder) == "" {
		return nil, errs.ErrPurchaseOrderRequired
	}

	return u.finalize(ctx, member, prog, state, idempotencyKey, nil)
}

// ConfirmCardPayment finalizes the purchase after the card-entry UI has
// confirmed the intent issued by SubmitPurchase.
func (u *purchaseUseCaseImpl) ConfirmCardPayment(ctx context.Context, member shared.Member, programID uuid.UUID, paymentIntentID string, idempotencyKey uuid.UUID) (*SubmitPurchaseResult, error) {
	prog, err := u.loadProgram(ctx, programID)
	if err != nil {
		return nil, err
	}
	draft, err := u.loadOrInitDraft(ctx, member, programID)
	if err != nil {
		return nil, err
	}
	if draft.PaymentIntentID == "" || draft.PaymentIntentID != paymentIntentID {
		return nil, errs.New("payment intent does not match the pending purchase")
	}

	state, err := u.deriveState(ctx, member, prog, draft, false)
	if err != nil {
		return nil, err
	}
	// The card was charged the amount the intent was issued for; the
	// derived balance must still equal it at confirmation time.
	if math.Abs(state.Allocation.RemainingBalance-draft.PaymentIntentAmount) > 0.01 {
		return nil, errs.New("allocation changed after the payment intent was issued")
	}

	return u.finalize(ctx, member, prog, state, idempotencyKey, &paymentIntentID)
}

// finalize invokes the purchase-finalization function and records the
// purchase. On failure nothing is cleared so the member can retry
// without re-entering data; on success the draft is cleared and a
// balance refresh is scheduled.
func (u *purchaseUseCaseImpl) finalize(
	ctx context.Context,
	member shared.Member,
	prog *queries.ProgramView,
	state *PurchaseState,
	idempotencyKey uuid.UUID,
	paymentIntentID *string,
) (*SubmitPurchaseResult, error) {
	requestHash := u.calculateRequestHash(member.Email, state)
	expiresAt := u.clock.Now().Add(24 * time.Hour)

	replayed, err := u.handleIdempotency(ctx, idempotencyKey, member.Email, requestHash, expiresAt)
	if err != nil {
		return nil, err
	}
	if replayed != nil {
		return &SubmitPurchaseResult{Purchase: replayed, IsReplayed: true}, nil
	}

	var poNumber *string
	if po := strings.TrimSpace(state.PurchaseOrder); po != "" {
		poNumber = &po
	}
	var discountID *string
	if state.Discount != nil && state.Discount.ID != "" {
		id := state.Discount.ID
		discountID = &id
	}

	resp, err := u.fns.ProcessProgramTicketPurchase(ctx, functions.ProcessProgramTicketPurchaseRequest{
		MemberEmail:           member.Email,
		ProgramName:           prog.Name,
		Quantity:              state.Quantity,
		PurchaseOrderNumber:   poNumber,
		SelectedVoucherIDs:    state.SelectedVouchers,
		TrainingFundAmount:    state.Allocation.TrainingFundAmount,
		AccountAmount:         state.Allocation.RemainingBalance,
		PaymentMethod:         state.PaymentMethod,
		StripePaymentIntentID: paymentIntentID,
		AppliedDiscountID:     discountID,
	})
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, errs.Mark(errs.New(resp.Error), errs.ErrUpstreamFunctionFailed)
	}

	record := &shared.PurchaseRecord{
		MemberEmail:           member.Email,
		ProgramID:             prog.ID,
		Quantity:              state.Quantity,
		FreeTickets:           state.FreeTickets,
		TotalTickets:          state.TotalTickets,
		TotalCost:             state.TotalCost,
		VoucherAmount:         state.Allocation.VoucherAmount,
		TrainingFundAmount:    state.Allocation.TrainingFundAmount,
		AccountAmount:         state.Allocation.RemainingBalance,
		PaymentMethod:         state.PaymentMethod,
		PurchaseOrderNumber:   poNumber,
		StripePaymentIntentID: paymentIntentID,
		AppliedDiscountID:     discountID,
		Status:                "completed",
	}

	purchaseID, err := u.recordPurchase(ctx, record, idempotencyKey, member)
	if err != nil {
		return nil, err
	}

	if clearErr := u.drafts.Clear(ctx, shared.PurchaseDraftKey(member.Email, prog.ID)); clearErr != nil {
		// The purchase went through; a lingering draft only means the
		// form re-opens pre-filled once.
		slog.Warn("failed to clear purchase draft", "program_id", prog.ID, "error", clearErr)
	}

	view, err := u.purchaseQueries.GetByID(ctx, purchaseID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return &SubmitPurchaseResult{Purchase: view}, nil
}

func (u *purchaseUseCaseImpl) recordPurchase(ctx context.Context, record *shared.PurchaseRecord, idempotencyKey uuid.UUID, member shared.Member) (uuid.UUID, error) {
	tx, err := u.db.Begin(ctx)
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			slog.Warn("failed to rollback purchase transaction", "error", rollbackErr)
		}
	}()

	purchaseID, err := u.purchaseRepo.Create(ctx, tx, record)
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	payload, err := json.Marshal(map[string]any{
		"purchase_id":  purchaseID,
		"member_email": member.Email,
		"type":         "purchase_completed",
	})
	if err != nil {
		return uuid.Nil, errs.Wrap(err, "failed to marshal refresh payload")
	}
	if err := u.refreshRepo.CreateJob(ctx, tx, "balance_refresh", "purchase_completed", payload, u.clock.Now()); err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	responseHash := u.calculateIDHash(purchaseID)
	if err := u.idempotencyRepo.UpdateStatusCompleted(ctx, tx, idempotencyKey, member.Email, responseHash, purchaseID); err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return purchaseID, nil
}

func (u *purchaseUseCaseImpl) handleIdempotency(ctx context.Context, key uuid.UUID, memberEmail, requestHash string, expiresAt time.Time) (*queries.PurchaseView, error) {
	if err := u.idempotencyRepo.TryInsert(ctx, key, memberEmail, "POST /purchases/submit", requestHash, expiresAt); err != nil {
		return nil, errs.Mark(err, errs.ErrIdempotencyCheckFailed)
	}

	existing, err := u.idempotencyRepo.Get(ctx, key, memberEmail)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrIdempotencyCheckFailed)
	}

	switch existing.Status {
	case "completed":
		if existing.ResultPurchaseID != nil {
			return u.purchaseQueries.GetByID(ctx, *existing.ResultPurchaseID)
		}
		return nil, errs.New("completed request missing result purchase ID")
	case "processing":
		if existing.RequestHash == requestHash {
			// First claim of this key falls through to processing.
			return nil, nil
		}
		return nil, errs.ErrIdempotencyInProgress
	default:
		return nil, errs.New("invalid idempotency key status")
	}
}

// deriveState computes pricing and allocation from the draft. When
// persist is set, the snapshot is written back to the draft store so
// every field change survives keyed by program id.
func (u *purchaseUseCaseImpl) deriveState(ctx context.Context, member shared.Member, prog *queries.ProgramView, draft *shared.PurchaseDraft, persist bool) (*PurchaseState, error) {
	domainProgram := toDomainProgram(prog)

	vouchers, fundBalance, err := u.loadOrganizationContext(ctx, member)
	if err != nil {
		return nil, err
	}

	baseCost := program.CalculateCost(domainProgram, draft.Quantity)
	totalCost := baseCost

	var applied *AppliedDiscount
	if draft.Discount != nil {
		if draft.Discount.ForProgram == prog.ID && draft.Discount.ForQuantity == draft.Quantity {
			totalCost = draft.Discount.TotalAfter
			applied = &AppliedDiscount{
				ID:         draft.Discount.ID,
				Code:       draft.Discount.Code,
				Amount:     draft.Discount.Amount,
				TotalAfter: draft.Discount.TotalAfter,
			}
		} else {
			draft.Discount = nil
		}
	}

	alloc := purchase.Allocate(totalCost, draft.SelectedVouchers, vouchers, draft.TrainingFund, fundBalance, u.gate)

	if persist {
		if err := shared.SaveDraft(ctx, u.drafts, shared.PurchaseDraftKey(member.Email, prog.ID), *draft); err != nil {
			return nil, err
		}
	}

	return &PurchaseState{
		ProgramID:        prog.ID,
		ProgramTag:       prog.Tag,
		Quantity:         draft.Quantity,
		FreeTickets:      program.CalculateFreeTickets(domainProgram, draft.Quantity),
		TotalTickets:     program.CalculateTotalTickets(domainProgram, draft.Quantity),
		BaseCost:         baseCost,
		TotalCost:        totalCost,
		Allocation:       alloc,
		SelectedVouchers: draft.SelectedVouchers,
		TrainingFund:     draft.TrainingFund,
		PaymentMethod:    draft.PaymentMethod,
		PurchaseOrder:    draft.PurchaseOrder,
		Discount:         applied,
		FullyPaid:        alloc.IsFullyPaid(totalCost),
	}, nil
}

func (u *purchaseUseCaseImpl) loadProgram(ctx context.Context, programID uuid.UUID) (*queries.ProgramView, error) {
	prog, err := u.programs.FindByID(ctx, programID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrProgramNotFound
		}
		return nil, errs.Mark(err, errs.ErrProgramNotFound)
	}
	return prog, nil
}

func (u *purchaseUseCaseImpl) loadOrInitDraft(ctx context.Context, member shared.Member, programID uuid.UUID) (*shared.PurchaseDraft, error) {
	draft, err := shared.LoadDraft[shared.PurchaseDraft](ctx, u.drafts, shared.PurchaseDraftKey(member.Email, programID))
	if err != nil {
		return nil, err
	}
	if draft == nil || draft.ProgramID != programID {
		return &shared.PurchaseDraft{
			ProgramID:     programID,
			Quantity:      1,
			PaymentMethod: string(purchase.PaymentAccount),
		}, nil
	}
	if draft.Quantity <= 0 {
		draft.Quantity = 1
	}
	return draft, nil
}

func (u *purchaseUseCaseImpl) loadOrganizationContext(ctx context.Context, member shared.Member) ([]*voucher.Voucher, float64, error) {
	if member.OrganizationID == nil {
		return nil, 0, nil
	}

	voucherViews, err := u.vouchers.FindActiveByOrganization(ctx, *member.OrganizationID)
	if err != nil {
		return nil, 0, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	vouchers := make([]*voucher.Voucher, 0, len(voucherViews))
	now := u.clock.Now()
	for _, v := range voucherViews {
		entity := voucher.ReconstructVoucher(v.ID, v.OrganizationID, v.Value, v.ExpiresAt, voucher.Status(v.Status), v.CreatedAt)
		if entity.Selectable(now) {
			vouchers = append(vouchers, entity)
		}
	}

	org, err := u.organizations.FindByID(ctx, *member.OrganizationID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return vouchers, 0, nil
		}
		return nil, 0, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return vouchers, org.TrainingFundBalance, nil
}

func (u *purchaseUseCaseImpl) calculateRequestHash(memberEmail string, state *PurchaseState) string {
	data, _ := json.Marshal(map[string]any{
		"member":   memberEmail,
		"program":  state.ProgramID,
		"quantity": state.Quantity,
		"total":    state.TotalCost,
		"vouchers": state.SelectedVouchers,
		"fund":     state.Allocation.TrainingFundAmount,
		"method":   state.PaymentMethod,
	})
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func (u *purchaseUseCaseImpl) calculateIDHash(id uuid.UUID) string {
	hash := sha256.Sum256([]byte(id.String()))
	return hex.EncodeToString(hash[:])
}

// allocationMoved reports whether the incoming form fields change any
// input that feeds the remaining-balance calculation. A purchase order
// edit alone does not move the allocation.
func allocationMoved(draft *shared.PurchaseDraft, params UpdateAllocationParams) bool {
	if draft.Quantity != params.Quantity || draft.TrainingFund != params.TrainingFund {
		return true
	}
	if params.PaymentMethod != "" && draft.PaymentMethod != params.PaymentMethod {
		return true
	}
	return !sameVoucherSelection(draft.SelectedVouchers, params.SelectedVouchers)
}

func sameVoucherSelection(a, b []uuid.UUID) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[uuid.UUID]int, len(a))
	for _, id := range a {
		counts[id]++
	}
	for _, id := range b {
		if counts[id] == 0 {
			return false
		}
		counts[id]--
	}
	return true
}

func toDomainProgram(view *queries.ProgramView) *program.Program {
	spec := program.Spec{
		ID:        view.ID,
		Tag:       view.Tag,
		Name:      view.Name,
		Price:     view.Price,
		OfferType: program.OfferType(view.OfferType),
	}
	if view.BogoBuyQuantity != nil {
		spec.BogoBuyQuantity = int(*view.BogoBuyQuantity)
	}
	if view.BogoGetFreeQuantity != nil {
		spec.BogoGetFreeQuantity = int(*view.BogoGetFreeQuantity)
	}
	if view.BogoLogicType != nil {
		spec.BogoLogic = program.BogoLogic(*view.BogoLogicType)
	}
	if view.BulkDiscountQuantity != nil {
		spec.BulkQuantity = int(*view.BulkDiscountQuantity)
	}
	if view.BulkDiscountPercentage != nil {
		spec.BulkPercentage = *view.BulkDiscountPercentage
	}
	return program.ReconstructProgram(spec, view.CreatedAt, view.UpdatedAt)
}
