package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"megamart-backend/internal/domains/payment/model"
	"megamart-backend/internal/shared/response"
)

// =====================================================
// MOCKS
// =====================================================

type mockPaymentService struct {
	createGatewayOrder func(ctx context.Context, req model.CreateGatewayOrderRequest) (*model.CreateGatewayOrderResponse, error)
	verifyPayment      func(ctx context.Context, req model.VerifyPaymentRequest) (*model.VerifyPaymentResponse, error)
}

func (m *mockPaymentService) CreateGatewayOrder(ctx context.Context, req model.CreateGatewayOrderRequest) (*model.CreateGatewayOrderResponse, error) {
	return m.createGatewayOrder(ctx, req)
}

func (m *mockPaymentService) VerifyPayment(ctx context.Context, req model.VerifyPaymentRequest) (*model.VerifyPaymentResponse, error) {
	return m.verifyPayment(ctx, req)
}

func (m *mockPaymentService) Config() model.PaymentConfigResponse {
	return model.PaymentConfigResponse{KeyID: "rzp_test_key", Configured: true}
}

// =====================================================
// HELPERS
// =====================================================

func performCreate(t *testing.T, svc *mockPaymentService, body string) (*httptest.ResponseRecorder, response.Response) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/payments/orders", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")

	NewPaymentHandler(svc).CreateGatewayOrder(c)

	var envelope response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return w, envelope
}

// =====================================================
// ERROR MAPPING
// =====================================================

func TestCreateGatewayOrderErrorStatuses(t *testing.T) {
	t.Run("gateway error reuses the upstream status", func(t *testing.T) {
		svc := &mockPaymentService{
			createGatewayOrder: func(ctx context.Context, req model.CreateGatewayOrderRequest) (*model.CreateGatewayOrderResponse, error) {
				return nil, model.NewGatewayError(&model.GatewayError{
					StatusCode:  http.StatusBadRequest,
					GatewayCode: "BAD_REQUEST_ERROR",
					Description: "Order amount less than minimum amount allowed",
				})
			},
		}

		w, envelope := performCreate(t, svc, `{"amount":"0.01","orderId":"order_1"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotNil(t, envelope.Error)
		assert.Equal(t, model.ErrCodeGateway, envelope.Error.Code)
		assert.Equal(t, "Order amount less than minimum amount allowed", envelope.Error.Message)
	})

	t.Run("gateway error without a status answers 502", func(t *testing.T) {
		svc := &mockPaymentService{
			createGatewayOrder: func(ctx context.Context, req model.CreateGatewayOrderRequest) (*model.CreateGatewayOrderResponse, error) {
				return nil, model.NewGatewayError(&model.GatewayError{
					Description: "connection reset by peer",
				})
			},
		}

		w, envelope := performCreate(t, svc, `{"amount":"100","orderId":"order_1"}`)

		assert.Equal(t, http.StatusBadGateway, w.Code)
		require.NotNil(t, envelope.Error)
		assert.Equal(t, model.ErrCodeGateway, envelope.Error.Code)
	})

	t.Run("unknown order answers 404", func(t *testing.T) {
		svc := &mockPaymentService{
			createGatewayOrder: func(ctx context.Context, req model.CreateGatewayOrderRequest) (*model.CreateGatewayOrderResponse, error) {
				return nil, model.NewOrderNotFoundError("order_1")
			},
		}

		w, envelope := performCreate(t, svc, `{"amount":"100","orderId":"order_1"}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
		require.NotNil(t, envelope.Error)
		assert.Equal(t, model.ErrCodeOrderNotFound, envelope.Error.Code)
	})

	t.Run("missing credentials answer 500", func(t *testing.T) {
		svc := &mockPaymentService{
			createGatewayOrder: func(ctx context.Context, req model.CreateGatewayOrderRequest) (*model.CreateGatewayOrderResponse, error) {
				return nil, model.NewConfigError()
			},
		}

		w, envelope := performCreate(t, svc, `{"amount":"100","orderId":"order_1"}`)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		require.NotNil(t, envelope.Error)
		assert.Equal(t, model.ErrCodeConfig, envelope.Error.Code)
	})
}
