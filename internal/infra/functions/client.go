package functions

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"member-portal/internal/pkg/config"
	"member-portal/internal/pkg/errs"
)

// Client invokes hosted backend functions by name over HTTP. A
// success:false response is returned as data for the caller to surface;
// transport and non-2xx failures come back as errors. No retries: every
// failure is recoverable at the form level by explicit re-submission.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(cfg config.FunctionsConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

func (c *Client) ApplyDiscountCode(ctx context.Context, req ApplyDiscountCodeRequest) (*ApplyDiscountCodeResponse, error) {
	var resp ApplyDiscountCodeResponse
	if err := c.invoke(ctx, "applyDiscountCode", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) CreateStripePaymentIntent(ctx context.Context, req CreateStripePaymentIntentRequest) (*CreateStripePaymentIntentResponse, error) {
	var resp CreateStripePaymentIntentResponse
	if err := c.invoke(ctx, "createStripePaymentIntent", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ProcessProgramTicketPurchase(ctx context.Context, req ProcessProgramTicketPurchaseRequest) (*Result, error) {
	var resp Result
	if err := c.invoke(ctx, "processProgramTicketPurchase", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) CreateBooking(ctx context.Context, req CreateBookingRequest) (*Result, error) {
	var resp Result
	if err := c.invoke(ctx, "createBooking", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ValidateColleague(ctx context.Context, req ValidateColleagueRequest) (*ValidateColleagueResponse, error) {
	var resp ValidateColleagueResponse
	if err := c.invoke(ctx, "validateColleague", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) CancelTicketViaFlow(ctx context.Context, req CancelTicketRequest) (*Result, error) {
	var resp Result
	if err := c.invoke(ctx, "cancelTicketViaFlow", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) SyncOrganizationContacts(ctx context.Context, req SyncOrganizationContactsRequest) (*Result, error) {
	var resp Result
	if err := c.invoke(ctx, "syncOrganizationContacts", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) invoke(ctx context.Context, name string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errs.Wrap(err, "failed to marshal function request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+name, bytes.NewReader(body))
	if err != nil {
		return errs.Wrap(err, "failed to build function request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return errs.Mark(errs.Wrap(err, "function call failed: "+name), errs.ErrUpstreamFunctionFailed)
	}
	defer func() {
		if closeErr := httpResp.Body.Close(); closeErr != nil {
			slog.Warn("failed to close function response body", "function", name, "error", closeErr)
		}
	}()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return errs.Mark(errs.Wrap(err, "failed to read function response: "+name), errs.ErrUpstreamFunctionFailed)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		// Surface the structured error body when present, fall back to a
		// generic message otherwise.
		var structured struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &structured) == nil && structured.Error != "" {
			return errs.Mark(errs.Newf("%s: %s", name, structured.Error), errs.ErrUpstreamFunctionFailed)
		}
		slog.Error("function returned unexpected status", "function", name, "status", httpResp.StatusCode)
		return errs.Mark(errs.Newf("%s: unexpected status %d", name, httpResp.StatusCode), errs.ErrUpstreamFunctionFailed)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return errs.Mark(errs.Wrap(err, "failed to decode function response: "+name), errs.ErrUpstreamFunctionFailed)
	}
	return nil
}
