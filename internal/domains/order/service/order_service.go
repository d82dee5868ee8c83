package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"megamart-backend/internal/domains/cart/pricing"
	"megamart-backend/internal/domains/order/model"
	repo "megamart-backend/internal/domains/order/repository"
	"megamart-backend/internal/infrastructure/email"
	"megamart-backend/internal/infrastructure/queue"
	"megamart-backend/pkg/cache"
	"megamart-backend/pkg/logger"
)

const orderCacheTTL = 5 * time.Minute

// =====================================================
// ORDER SERVICE IMPLEMENTATION
// =====================================================
type orderService struct {
	orderRepo repo.OrderRepository
	cache     cache.Cache
	enqueuer  queue.Enqueuer

	pricingCfg        pricing.Config
	fulfillmentWindow time.Duration
}

func NewOrderService(
	orderRepo repo.OrderRepository,
	cache cache.Cache,
	enqueuer queue.Enqueuer,
	pricingCfg pricing.Config,
	fulfillmentWindow time.Duration,
) OrderService {
	return &orderService{
		orderRepo:         orderRepo,
		cache:             cache,
		enqueuer:          enqueuer,
		pricingCfg:        pricingCfg,
		fulfillmentWindow: fulfillmentWindow,
	}
}

// =====================================================
// CREATE ORDER
// =====================================================

// CreateOrder places a new order.
//
// Business Logic Flow:
// 1. Validate request (non-empty cart, valid items, known method)
// 2. Snapshot line items as submitted
// 3. Compute totals via cart pricing; they are frozen from here on
// 4. Persist order (unpaid, undelivered)
// 5. Enqueue confirmation email (fire-and-forget)
func (s *orderService) CreateOrder(
	ctx context.Context,
	userID uuid.UUID,
	userEmail string,
	req model.CreateOrderRequest,
) (*model.OrderDetailResponse, error) {
	// Step 1: Validate request
	if err := req.Validate(); err != nil {
		return nil, model.NewOrderError(model.ErrCodeInvalidOrder, "Invalid order request", err)
	}

	// Step 2: Snapshot line items
	items := make([]model.OrderItem, 0, len(req.Items))
	priceItems := make([]pricing.Item, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, model.OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			Price:     it.Price,
			Image:     it.Image,
		})
		priceItems = append(priceItems, pricing.Item{
			Price:    it.Price,
			Quantity: it.Quantity,
		})
	}

	// Step 3: Compute totals (immutable once stored)
	quote := pricing.Compute(priceItems, s.pricingCfg)

	// Step 4: Persist
	order := &model.Order{
		ID:              uuid.New(),
		OrderCode:       fmt.Sprintf("order_%d", time.Now().UnixMilli()),
		UserID:          userID,
		UserEmail:       userEmail,
		Items:           items,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		ItemsPrice:      quote.ItemsPrice,
		TaxPrice:        quote.TaxPrice,
		ShippingPrice:   quote.ShippingPrice,
		TotalPrice:      quote.TotalPrice,
		Version:         1,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// Step 5: Confirmation email - best effort, never blocks checkout
	if s.enqueuer != nil && userEmail != "" {
		err := s.enqueuer.EnqueueOrderConfirmation(email.OrderConfirmationData{
			Email:         userEmail,
			OrderCode:     order.OrderCode,
			Total:         order.TotalPrice.StringFixed(2),
			PaymentMethod: order.PaymentMethod,
			PlacedAt:      order.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			logger.Error("Failed to enqueue order confirmation email", err)
		}
	}

	return model.NewOrderDetailResponse(order), nil
}

// =====================================================
// GET ORDER
// =====================================================

func (s *orderService) GetOrder(ctx context.Context, orderID, userID uuid.UUID) (*model.OrderDetailResponse, error) {
	cacheKey := model.OrderDetailCacheKey(orderID)

	if s.cache != nil {
		var cached model.Order
		if found, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && found {
			if cached.UserID != userID {
				return nil, model.ErrOrderNotFound
			}
			return model.NewOrderDetailResponse(&cached), nil
		}
	}

	order, err := s.orderRepo.GetByIDAndUserID(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, order, orderCacheTTL); err != nil {
			logger.Error("Failed to cache order detail", err)
		}
	}

	return model.NewOrderDetailResponse(order), nil
}

func (s *orderService) ListOrders(ctx context.Context, userID uuid.UUID) ([]model.OrderSummaryResponse, error) {
	orders, err := s.orderRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	summaries := make([]model.OrderSummaryResponse, 0, len(orders))
	for i := range orders {
		summaries = append(summaries, model.NewOrderSummaryResponse(&orders[i]))
	}

	return summaries, nil
}

// =====================================================
// RETURN ORDER
// =====================================================

// ReturnOrder performs the delivered -> returned transition.
//
// Guards:
// - order must belong to the caller
// - order must already be delivered
// - order must not already be returned
func (s *orderService) ReturnOrder(ctx context.Context, orderID, userID uuid.UUID) (*model.OrderDetailResponse, error) {
	order, err := s.orderRepo.GetByIDAndUserID(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}

	if !order.IsDelivered {
		return nil, model.NewOrderError(model.ErrCodeOrderNotDelivered,
			"Only delivered orders can be returned", model.ErrOrderNotDelivered)
	}
	if order.IsReturned {
		return nil, model.NewOrderError(model.ErrCodeOrderReturned,
			"Order has already been returned", model.ErrOrderAlreadyReturned)
	}

	returnedAt := time.Now()
	if err := s.orderRepo.MarkReturned(ctx, orderID, userID, returnedAt); err != nil {
		return nil, fmt.Errorf("failed to return order: %w", err)
	}

	s.invalidate(ctx, orderID)

	order.IsReturned = true
	order.ReturnedAt = &returnedAt
	return model.NewOrderDetailResponse(order), nil
}

// =====================================================
// DELIVER DUE ORDERS
// =====================================================

// DeliverDueOrders runs the scheduled placed -> delivered transition
// for every order older than the fulfillment window.
func (s *orderService) DeliverDueOrders(ctx context.Context) (int, error) {
	cutoff := time.Now().Add(-s.fulfillmentWindow)

	ids, err := s.orderRepo.MarkDeliveredDue(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to deliver due orders: %w", err)
	}

	for _, id := range ids {
		s.invalidate(ctx, id)
	}

	if len(ids) > 0 {
		logger.Info("Delivered due orders", map[string]interface{}{
			"count":  len(ids),
			"cutoff": cutoff.Format(time.RFC3339),
		})
	}

	return len(ids), nil
}

func (s *orderService) invalidate(ctx context.Context, orderID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, model.OrderDetailCacheKey(orderID)); err != nil {
		logger.Error("Failed to invalidate order cache", err)
	}
}
