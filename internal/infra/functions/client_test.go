//go:build unit

package functions_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"member-portal/internal/infra/functions"
	"member-portal/internal/pkg/config"
	"member-portal/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *functions.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return functions.NewClient(config.FunctionsConfig{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Timeout: 5 * time.Second,
	})
}

func TestApplyDiscountCode(t *testing.T) {
	t.Run("decodes a success response", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/applyDiscountCode", r.URL.Path)
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

			var req functions.ApplyDiscountCodeRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "SPRING10", req.Code)
			assert.InDelta(t, 30, req.TotalCost, 0.001)

			_ = json.NewEncoder(w).Encode(functions.ApplyDiscountCodeResponse{
				Success:                true,
				TotalCostAfterDiscount: 27,
				DiscountAmount:         3,
				DiscountID:             "disc_1",
				Code:                   "SPRING10",
			})
		})

		resp, err := client.ApplyDiscountCode(context.Background(), functions.ApplyDiscountCodeRequest{
			Code:        "SPRING10",
			TotalCost:   30,
			ProgramTag:  "leadership-2026",
			MemberEmail: "pat@acme.example",
		})
		require.NoError(t, err)

		assert.True(t, resp.Success)
		assert.InDelta(t, 27, resp.TotalCostAfterDiscount, 0.001)
		assert.Equal(t, "disc_1", resp.DiscountID)
	})

	t.Run("success false is data, not an error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(w).Encode(functions.ApplyDiscountCodeResponse{
				Success: false,
				Error:   "code expired",
			})
		})

		resp, err := client.ApplyDiscountCode(context.Background(), functions.ApplyDiscountCodeRequest{Code: "OLD"})
		require.NoError(t, err)

		assert.False(t, resp.Success)
		assert.Equal(t, "code expired", resp.Error)
	})
}

func TestInvokeErrorHandling(t *testing.T) {
	t.Run("structured error body is surfaced", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"member not found"}`))
		})

		_, err := client.ProcessProgramTicketPurchase(context.Background(), functions.ProcessProgramTicketPurchaseRequest{})
		require.True(t, errs.Is(err, errs.ErrUpstreamFunctionFailed))
		assert.Contains(t, err.Error(), "member not found")
	})

	t.Run("non-2xx without a body falls back to the status", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		_, err := client.CreateBooking(context.Background(), functions.CreateBookingRequest{})
		require.True(t, errs.Is(err, errs.ErrUpstreamFunctionFailed))
		assert.Contains(t, err.Error(), "502")
	})

	t.Run("malformed response body is an upstream failure", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("not json"))
		})

		_, err := client.SyncOrganizationContacts(context.Background(), functions.SyncOrganizationContactsRequest{})
		assert.True(t, errs.Is(err, errs.ErrUpstreamFunctionFailed))
	})

	t.Run("context cancellation aborts the call", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_ = json.NewEncoder(w).Encode(functions.Result{Success: true})
		})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := client.CancelTicketViaFlow(ctx, functions.CancelTicketRequest{})
		assert.Error(t, err)
	})
}
