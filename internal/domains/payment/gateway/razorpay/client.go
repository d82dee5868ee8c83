package razorpay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"megamart-backend/internal/domains/payment/gateway"
	"megamart-backend/internal/domains/payment/model"
)

// =====================================================
// RAZORPAY CLIENT IMPLEMENTATION
// =====================================================

const (
	requestTimeout = 10 * time.Second
	maxAttempts    = 2 // one retry on transport failure
)

type Client struct {
	config     *Config
	httpClient *http.Client
}

// NewClient creates new Razorpay client
func NewClient(config *Config) (gateway.RazorpayGateway, error) {
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}, nil
}

// VerifySignature verifies a checkout callback signature
func (c *Client) VerifySignature(gatewayOrderID, paymentID, signature string) bool {
	return VerifyPaymentSignature(gatewayOrderID, paymentID, signature, c.config.KeySecret)
}

// KeyID returns the publishable key id
func (c *Client) KeyID() string {
	return c.config.KeyID
}

// Configured reports whether credentials are present
func (c *Client) Configured() bool {
	return c.config.Configured()
}

// SecretConfigured reports whether the signing secret is present
func (c *Client) SecretConfigured() bool {
	return c.config.KeySecret != ""
}

// =====================================================
// CREATE ORDER
// =====================================================

type orderAPIResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type errorEnvelope struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// CreateOrder creates a gateway order via POST /v1/orders.
// Transport failures are retried once; HTTP error responses are not,
// since the gateway has already seen the request.
func (c *Client) CreateOrder(
	ctx context.Context,
	req gateway.CreateOrderRequest,
) (*gateway.CreateOrderResponse, error) {
	if !c.config.Configured() {
		return nil, model.ErrGatewayNotReady
	}

	// Step 1: Build request body
	currency := req.Currency
	if currency == "" {
		currency = c.config.Currency
	}
	requestBody := map[string]interface{}{
		"amount":          req.AmountMinor,
		"currency":        currency,
		"receipt":         req.Receipt,
		"payment_capture": 1,
	}
	bodyJSON, err := json.Marshal(requestBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	// Step 2: Call Razorpay API, retrying once on transport errors
	var resp *http.Response
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		resp, lastErr = c.doCreateOrder(ctx, bodyJSON)
		if lastErr == nil {
			break
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}
	if lastErr != nil {
		return nil, fmt.Errorf("failed to call Razorpay API: %w", lastErr)
	}
	defer resp.Body.Close()

	// Step 3: Parse response
	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var envelope errorEnvelope
		if err := json.Unmarshal(bodyBytes, &envelope); err != nil || envelope.Error.Description == "" {
			return nil, &model.GatewayError{
				StatusCode:  resp.StatusCode,
				GatewayCode: "UNKNOWN",
				Description: fmt.Sprintf("unexpected gateway response (http %d)", resp.StatusCode),
			}
		}
		return nil, &model.GatewayError{
			StatusCode:  resp.StatusCode,
			GatewayCode: envelope.Error.Code,
			Description: envelope.Error.Description,
		}
	}

	var apiResp orderAPIResponse
	if err := json.Unmarshal(bodyBytes, &apiResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if apiResp.ID == "" {
		return nil, fmt.Errorf("gateway order id missing in response")
	}

	return &gateway.CreateOrderResponse{
		ID:          apiResp.ID,
		AmountMinor: apiResp.Amount,
		Currency:    apiResp.Currency,
		Receipt:     apiResp.Receipt,
		Status:      apiResp.Status,
	}, nil
}

func (c *Client) doCreateOrder(ctx context.Context, body []byte) (*http.Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.OrdersURL(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.SetBasicAuth(c.config.KeyID, c.config.KeySecret)

	return c.httpClient.Do(httpReq)
}
