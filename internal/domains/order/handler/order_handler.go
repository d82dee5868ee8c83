package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"megamart-backend/internal/domains/order/model"
	"megamart-backend/internal/domains/order/service"
	"megamart-backend/internal/shared/response"
)

type OrderHandler struct {
	orderService service.OrderService
}

// NewOrderHandler creates new order handler
func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// =====================================================
// ORDER ENDPOINTS
// =====================================================

// CreateOrder places a new order from the submitted cart
// POST /api/v1/orders
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	// Step 1: Get caller identity
	userID, userEmail, ok := callerIdentity(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	// Step 2: Bind request body
	var req model.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	// Step 3: Call service (validation happens there)
	resp, err := h.orderService.CreateOrder(c.Request.Context(), userID, userEmail, req)
	if err != nil {
		writeOrderError(c, err)
		return
	}

	// Step 4: Return response
	response.Success(c, http.StatusCreated, resp)
}

// GetOrder returns one of the caller's orders
// GET /api/v1/orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, _, ok := callerIdentity(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid order id")
		return
	}

	resp, err := h.orderService.GetOrder(c.Request.Context(), orderID, userID)
	if err != nil {
		writeOrderError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// ListOrders returns the caller's orders, newest first
// GET /api/v1/orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	userID, _, ok := callerIdentity(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	resp, err := h.orderService.ListOrders(c.Request.Context(), userID)
	if err != nil {
		writeOrderError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// ReturnOrder flips a delivered order to returned
// PUT /api/v1/orders/:id/return
func (h *OrderHandler) ReturnOrder(c *gin.Context) {
	userID, _, ok := callerIdentity(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid order id")
		return
	}

	resp, err := h.orderService.ReturnOrder(c.Request.Context(), orderID, userID)
	if err != nil {
		writeOrderError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// =====================================================
// HELPERS
// =====================================================

// callerIdentity pulls the authenticated user from the gin context
// (set by the auth middleware).
func callerIdentity(c *gin.Context) (uuid.UUID, string, bool) {
	rawID, exists := c.Get("userID")
	if !exists {
		return uuid.Nil, "", false
	}
	userID, ok := rawID.(uuid.UUID)
	if !ok {
		return uuid.Nil, "", false
	}

	userEmail := ""
	if rawEmail, exists := c.Get("userEmail"); exists {
		userEmail, _ = rawEmail.(string)
	}
	return userID, userEmail, true
}

// writeOrderError maps service error codes to HTTP statuses
func writeOrderError(c *gin.Context, err error) {
	if errors.Is(err, model.ErrOrderNotFound) {
		response.NotFound(c, "order not found")
		return
	}

	var orderErr *model.OrderError
	if !errors.As(err, &orderErr) {
		response.InternalServerError(c, "order processing failed")
		return
	}

	switch orderErr.Code {
	case model.ErrCodeInvalidOrder:
		response.ErrorResponse(c, http.StatusBadRequest, orderErr.Code, orderErr.Message)
	case model.ErrCodeOrderNotFound:
		response.ErrorResponse(c, http.StatusNotFound, orderErr.Code, orderErr.Message)
	case model.ErrCodeOrderNotDelivered, model.ErrCodeOrderReturned:
		response.ErrorResponse(c, http.StatusConflict, orderErr.Code, orderErr.Message)
	case model.ErrCodeUnauthorized:
		response.ErrorResponse(c, http.StatusForbidden, orderErr.Code, orderErr.Message)
	default:
		response.InternalServerError(c, "order processing failed")
	}
}
