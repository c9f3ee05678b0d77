//go:build unit

package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"member-portal/internal/handler/api"
	"member-portal/internal/pkg/errs"
	"member-portal/internal/usecase/commands"
	"member-portal/internal/usecase/queries"
	"member-portal/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type stubPurchaseCommands struct {
	state  *commands.PurchaseState
	submit *commands.SubmitPurchaseResult
	err    error
}

func (s *stubPurchaseCommands) StartPurchase(_ context.Context, _ shared.Member, _ uuid.UUID) (*commands.PurchaseState, error) {
	return s.state, s.err
}

func (s *stubPurchaseCommands) UpdateAllocation(_ context.Context, _ shared.Member, _ uuid.UUID, _ commands.UpdateAllocationParams) (*commands.PurchaseState, error) {
	return s.state, s.err
}

func (s *stubPurchaseCommands) ApplyDiscount(_ context.Context, _ shared.Member, _ uuid.UUID, _ string) (*commands.PurchaseState, error) {
	return s.state, s.err
}

func (s *stubPurchaseCommands) SubmitPurchase(_ context.Context, _ shared.Member, _, _ uuid.UUID) (*commands.SubmitPurchaseResult, error) {
	return s.submit, s.err
}

func (s *stubPurchaseCommands) ConfirmCardPayment(_ context.Context, _ shared.Member, _ uuid.UUID, _ string, _ uuid.UUID) (*commands.SubmitPurchaseResult, error) {
	return s.submit, s.err
}

type stubPurchaseQueries struct {
	view *queries.PurchaseView
	err  error
}

func (s *stubPurchaseQueries) GetByID(_ context.Context, _ uuid.UUID) (*queries.PurchaseView, error) {
	return s.view, s.err
}

func (s *stubPurchaseQueries) ListByMember(_ context.Context, _ string, _ int) ([]*queries.PurchaseView, error) {
	if s.view == nil {
		return nil, s.err
	}
	return []*queries.PurchaseView{s.view}, s.err
}

type PurchaseHandlerTestSuite struct {
	suite.Suite
	router   *gin.Engine
	commands *stubPurchaseCommands
	queries  *stubPurchaseQueries
}

func (s *PurchaseHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.commands = &stubPurchaseCommands{}
	s.queries = &stubPurchaseQueries{}
	handler := api.NewPurchaseHandler(s.commands, s.queries)

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("member_id", uuid.New())
		c.Set("member_email", "pat@acme.example")
		c.Next()
	}

	s.router.POST("/programs/:id/purchase", authMiddleware, handler.StartPurchase)
	s.router.PUT("/programs/:id/purchase", authMiddleware, handler.UpdateAllocation)
	s.router.POST("/programs/:id/purchase/discount", authMiddleware, handler.ApplyDiscount)
	s.router.POST("/programs/:id/purchase/submit", authMiddleware, handler.SubmitPurchase)
	s.router.GET("/purchases/:id", authMiddleware, handler.GetPurchase)
}

func (s *PurchaseHandlerTestSuite) request(method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", "Bearer test-token")
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *PurchaseHandlerTestSuite) TestStartPurchaseReturnsState() {
	programID := uuid.New()
	s.commands.state = &commands.PurchaseState{ProgramID: programID, Quantity: 1, PaymentMethod: "account"}

	w := s.request(http.MethodPost, "/programs/"+programID.String()+"/purchase", "", nil)

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), programID.String())
}

func (s *PurchaseHandlerTestSuite) TestStartPurchaseUnknownProgram() {
	s.commands.err = errs.ErrProgramNotFound

	w := s.request(http.MethodPost, "/programs/"+uuid.NewString()+"/purchase", "", nil)

	s.Equal(http.StatusNotFound, w.Code)
}

func (s *PurchaseHandlerTestSuite) TestStartPurchaseInvalidID() {
	w := s.request(http.MethodPost, "/programs/not-a-uuid/purchase", "", nil)

	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *PurchaseHandlerTestSuite) TestUpdateAllocationRejectsBadBody() {
	w := s.request(http.MethodPut, "/programs/"+uuid.NewString()+"/purchase", `{"quantity": "three"}`, nil)

	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *PurchaseHandlerTestSuite) TestApplyDiscountSurfacesRejection() {
	s.commands.err = errs.Mark(errs.New("code expired"), errs.ErrDiscountRejected)

	w := s.request(http.MethodPost, "/programs/"+uuid.NewString()+"/purchase/discount", `{"code":"OLD"}`, nil)

	s.Equal(http.StatusUnprocessableEntity, w.Code)
	s.Contains(w.Body.String(), "code expired")
}

func (s *PurchaseHandlerTestSuite) TestSubmitRequiresIdempotencyKey() {
	w := s.request(http.MethodPost, "/programs/"+uuid.NewString()+"/purchase/submit", "", nil)

	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *PurchaseHandlerTestSuite) TestSubmitCardHandoff() {
	s.commands.submit = &commands.SubmitPurchaseResult{
		RequiresCardPayment: true,
		ClientSecret:        "pi_secret",
		PaymentIntentID:     "pi_123",
	}

	w := s.request(http.MethodPost, "/programs/"+uuid.NewString()+"/purchase/submit", "", map[string]string{
		"Idempotency-Key": uuid.NewString(),
	})

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "pi_secret")
}

func (s *PurchaseHandlerTestSuite) TestSubmitInProgressConflict() {
	s.commands.err = errs.ErrIdempotencyInProgress

	w := s.request(http.MethodPost, "/programs/"+uuid.NewString()+"/purchase/submit", "", map[string]string{
		"Idempotency-Key": uuid.NewString(),
	})

	s.Equal(http.StatusConflict, w.Code)
}

func (s *PurchaseHandlerTestSuite) TestSubmitUpstreamFailureSurfacesMessage() {
	s.commands.err = errs.Mark(errs.New("finalization declined"), errs.ErrUpstreamFunctionFailed)

	w := s.request(http.MethodPost, "/programs/"+uuid.NewString()+"/purchase/submit", "", map[string]string{
		"Idempotency-Key": uuid.NewString(),
	})

	s.Equal(http.StatusBadGateway, w.Code)
	s.Contains(w.Body.String(), "finalization declined")
}

func (s *PurchaseHandlerTestSuite) TestGetPurchaseNotFound() {
	s.queries.err = errs.Mark(errs.New("no rows"), errs.ErrPurchaseNotFound)

	w := s.request(http.MethodGet, "/purchases/"+uuid.NewString(), "", nil)

	s.Equal(http.StatusNotFound, w.Code)
}

func (s *PurchaseHandlerTestSuite) TestGetPurchaseReadFailure() {
	s.queries.err = errs.New("connection refused")

	w := s.request(http.MethodGet, "/purchases/"+uuid.NewString(), "", nil)

	s.Equal(http.StatusInternalServerError, w.Code)
}

func (s *PurchaseHandlerTestSuite) TestUnauthorizedWithoutToken() {
	req := httptest.NewRequest(http.MethodPost, "/programs/"+uuid.NewString()+"/purchase", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusUnauthorized, w.Code)
}

func TestPurchaseHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(PurchaseHandlerTestSuite))
}
