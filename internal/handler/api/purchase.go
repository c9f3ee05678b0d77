package api

import (
	"errors"
	"net/http"

	reqdto "member-portal/internal/handler/dto/request"
	resdto "member-portal/internal/handler/dto/response"
	"member-portal/internal/handler/middleware"
	"member-portal/internal/pkg/errs"
	"member-portal/internal/usecase/commands"
	"member-portal/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PurchaseHandler struct {
	purchaseUseCase commands.PurchaseCommands
	purchaseQueries queries.PurchaseQueries
}

func NewPurchaseHandler(purchaseUseCase commands.PurchaseCommands, purchaseQueries queries.PurchaseQueries) *PurchaseHandler {
	return &PurchaseHandler{
		purchaseUseCase: purchaseUseCase,
		purchaseQueries: purchaseQueries,
	}
}

// @Summary Open purchase form
// @Description Restore the saved draft for the program or start a new one
// @Tags purchases
// @Produce json
// @Security BearerAuth
// @Param id path string true "Program ID"
// @Success 200 {object} commands.PurchaseState
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /programs/{id}/purchase [post]
func (h *PurchaseHandler) StartPurchase(c *gin.Context) {
	member, ok := middleware.GetMember(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	programID, ok := h.parseProgramID(c)
	if !ok {
		return
	}

	state, err := h.purchaseUseCase.StartPurchase(c.Request.Context(), member, programID)
	if err != nil {
		h.respondPurchaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// @Summary Update purchase allocation
// @Description Recompute cost and allocation from the changed form fields
// @Tags purchases
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Program ID"
// @Param request body reqdto.UpdateAllocationRequest true "Allocation fields"
// @Success 200 {object} commands.PurchaseState
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /programs/{id}/purchase [put]
func (h *PurchaseHandler) UpdateAllocation(c *gin.Context) {
	member, ok := middleware.GetMember(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	programID, ok := h.parseProgramID(c)
	if !ok {
		return
	}

	var req reqdto.UpdateAllocationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	state, err := h.purchaseUseCase.UpdateAllocation(c.Request.Context(), member, programID, req.ToParams())
	if err != nil {
		h.respondPurchaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// @Summary Apply discount code
// @Description Validate a discount code against the current total
// @Tags purchases
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Program ID"
// @Param request body reqdto.ApplyDiscountRequest true "Discount code"
// @Success 200 {object} commands.PurchaseState
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /programs/{id}/purchase/discount [post]
func (h *PurchaseHandler) ApplyDiscount(c *gin.Context) {
	member, ok := middleware.GetMember(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	programID, ok := h.parseProgramID(c)
	if !ok {
		return
	}

	var req reqdto.ApplyDiscountRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	state, err := h.purchaseUseCase.ApplyDiscount(c.Request.Context(), member, programID, req.Code)
	if err != nil {
		switch {
		case errs.Is(err, errs.ErrDiscountRejected):
			// Surface the validation function's own message.
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errs.Is(err, errs.ErrStaleDiscount):
			c.JSON(http.StatusConflict, gin.H{"error": "Purchase changed while the discount was being validated"})
		default:
			h.respondPurchaseError(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, state)
}

// @Summary Submit purchase
// @Description Finalize the purchase, or hand off to card payment when a balance remains
// @Tags purchases
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string true "Idempotency key for duplicate prevention"
// @Param id path string true "Program ID"
// @Success 200 {object} resdto.SubmitPurchaseResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /programs/{id}/purchase/submit [post]
func (h *PurchaseHandler) SubmitPurchase(c *gin.Context) {
	member, ok := middleware.GetMember(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	programID, ok := h.parseProgramID(c)
	if !ok {
		return
	}
	idempotencyKey, err := getIdempotencyKey(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.purchaseUseCase.SubmitPurchase(c.Request.Context(), member, programID, idempotencyKey)
	if err != nil {
		h.respondSubmitError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSubmitResult(result))
}

// @Summary Confirm card payment
// @Description Finalize a purchase after the card payment intent was confirmed
// @Tags purchases
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string true "Idempotency key for duplicate prevention"
// @Param id path string true "Program ID"
// @Param request body reqdto.ConfirmCardPaymentRequest true "Payment intent"
// @Success 200 {object} resdto.SubmitPurchaseResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /programs/{id}/purchase/confirm [post]
func (h *PurchaseHandler) ConfirmCardPayment(c *gin.Context) {
	member, ok := middleware.GetMember(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	programID, ok := h.parseProgramID(c)
	if !ok {
		return
	}
	idempotencyKey, err := getIdempotencyKey(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req reqdto.ConfirmCardPaymentRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.purchaseUseCase.ConfirmCardPayment(c.Request.Context(), member, programID, req.PaymentIntentID, idempotencyKey)
	if err != nil {
		h.respondSubmitError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSubmitResult(result))
}

// @Summary Get purchase
// @Description Get a completed purchase by ID
// @Tags purchases
// @Produce json
// @Security BearerAuth
// @Param id path string true "Purchase ID"
// @Success 200 {object} resdto.PurchaseResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /purchases/{id} [get]
func (h *PurchaseHandler) GetPurchase(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid purchase ID format"})
		return
	}

	view, err := h.purchaseQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		if errs.Is(err, errs.ErrPurchaseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Purchase not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, resdto.FromPurchaseView(view))
}

// @Summary List member purchases
// @Description List completed purchases for the current member
// @Tags purchases
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.PurchaseResponse
// @Failure 401 {object} map[string]string
// @Router /purchases [get]
func (h *PurchaseHandler) ListPurchases(c *gin.Context) {
	member, ok := middleware.GetMember(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	views, err := h.purchaseQueries.ListByMember(c.Request.Context(), member.Email, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	response := make([]*resdto.PurchaseResponse, len(views))
	for i, rm := range views {
		response[i] = resdto.FromPurchaseView(rm)
	}
	c.JSON(http.StatusOK, response)
}

func (h *PurchaseHandler) parseProgramID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid program ID format"})
		return uuid.Nil, false
	}
	return id, true
}

func (h *PurchaseHandler) respondPurchaseError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, errs.ErrProgramNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Program not found"})
	case errs.Is(err, errs.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be a positive integer"})
	case errs.Is(err, errs.ErrUpstreamFunctionFailed):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func (h *PurchaseHandler) respondSubmitError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, errs.ErrProgramNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Program not found"})
	case errs.Is(err, errs.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be a positive integer"})
	case errs.Is(err, errs.ErrPurchaseOrderRequired):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Purchase order number is required for account payment"})
	case errs.Is(err, errs.ErrUnallocatedBalance):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Allocation does not cover the total cost"})
	case errs.Is(err, errs.ErrIdempotencyInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": "Purchase request is currently being processed"})
	case errs.Is(err, errs.ErrUpstreamFunctionFailed):
		// Surface the finalization function's own message.
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func getIdempotencyKey(c *gin.Context) (uuid.UUID, error) {
	keyStr := c.GetHeader("Idempotency-Key")
	if keyStr == "" {
		return uuid.Nil, errs.ErrIdempotencyKeyRequired
	}

	key, err := uuid.Parse(keyStr)
	if err != nil {
		return uuid.Nil, errors.New("invalid idempotency key format")
	}

	return key, nil
}
