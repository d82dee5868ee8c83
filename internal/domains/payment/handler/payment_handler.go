package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"megamart-backend/internal/domains/payment/model"
	"megamart-backend/internal/domains/payment/service"
	"megamart-backend/internal/shared/response"
)

type PaymentHandler struct {
	paymentService service.PaymentService
}

// NewPaymentHandler creates new payment handler
func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// =====================================================
// CHECKOUT ENDPOINTS
// =====================================================

// CreateGatewayOrder creates a Razorpay order for checkout
// POST /api/v1/payments/orders
func (h *PaymentHandler) CreateGatewayOrder(c *gin.Context) {
	// Step 1: Bind request body
	var req model.CreateGatewayOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	// Step 2: Call service (validation happens there)
	resp, err := h.paymentService.CreateGatewayOrder(c.Request.Context(), req)
	if err != nil {
		writePaymentError(c, err)
		return
	}

	// Step 3: Return response
	response.Success(c, http.StatusCreated, resp)
}

// VerifyPayment verifies a checkout callback signature
// POST /api/v1/payments/verify
func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	// Step 1: Bind request body
	var req model.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	// Step 2: Call service
	resp, err := h.paymentService.VerifyPayment(c.Request.Context(), req)
	if err != nil {
		writePaymentError(c, err)
		return
	}

	// Step 3: Return response
	response.Success(c, http.StatusOK, resp)
}

// GetConfig reports whether checkout is configured
// GET /api/v1/payments/config
func (h *PaymentHandler) GetConfig(c *gin.Context) {
	response.Success(c, http.StatusOK, h.paymentService.Config())
}

// =====================================================
// ERROR MAPPING
// =====================================================

// writePaymentError maps service error codes to HTTP statuses. Gateway
// failures keep the upstream description so checkout clients can show
// the gateway's own message.
func writePaymentError(c *gin.Context, err error) {
	var payErr *model.PaymentError
	if !errors.As(err, &payErr) {
		response.InternalServerError(c, "payment processing failed")
		return
	}

	switch payErr.Code {
	case model.ErrCodeValidation:
		response.ErrorResponse(c, http.StatusBadRequest, payErr.Code, payErr.Message)
	case model.ErrCodeOrderNotFound:
		response.ErrorResponse(c, http.StatusNotFound, payErr.Code, payErr.Message)
	case model.ErrCodeInvalidSignature:
		response.ErrorResponse(c, http.StatusBadRequest, payErr.Code, payErr.Message)
	case model.ErrCodeConfig:
		response.ErrorResponse(c, http.StatusInternalServerError, payErr.Code, payErr.Message)
	case model.ErrCodeGateway:
		var gwErr *model.GatewayError
		if errors.As(payErr, &gwErr) {
			// Reuse the gateway's own HTTP status; 502 only when the
			// request never produced one.
			status := gwErr.StatusCode
			if status == 0 {
				status = http.StatusBadGateway
			}
			response.ErrorWithDetails(c, status, payErr.Code, gwErr.Description, gin.H{
				"gateway_code": gwErr.GatewayCode,
			})
			return
		}
		response.ErrorResponse(c, http.StatusBadGateway, payErr.Code, payErr.Message)
	default:
		response.InternalServerError(c, "payment processing failed")
	}
}
