package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"megamart-backend/internal/domains/cart/pricing"
	"megamart-backend/internal/domains/order/model"
	"megamart-backend/internal/infrastructure/email"
)

// =====================================================
// MOCKS
// =====================================================

type mockOrderRepo struct {
	create           func(ctx context.Context, order *model.Order) error
	getByIDAndUserID func(ctx context.Context, orderID, userID uuid.UUID) (*model.Order, error)
	listByUserID     func(ctx context.Context, userID uuid.UUID) ([]model.Order, error)
	markDeliveredDue func(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error)
	markReturned     func(ctx context.Context, orderID, userID uuid.UUID, returnedAt time.Time) error
}

func (m *mockOrderRepo) Create(ctx context.Context, order *model.Order) error {
	if m.create == nil {
		return errors.New("not implemented")
	}
	return m.create(ctx, order)
}

func (m *mockOrderRepo) GetByID(ctx context.Context, orderID uuid.UUID) (*model.Order, error) {
	return nil, model.ErrOrderNotFound
}

func (m *mockOrderRepo) GetByIDAndUserID(ctx context.Context, orderID, userID uuid.UUID) (*model.Order, error) {
	if m.getByIDAndUserID == nil {
		return nil, model.ErrOrderNotFound
	}
	return m.getByIDAndUserID(ctx, orderID, userID)
}

func (m *mockOrderRepo) GetByOrderCode(ctx context.Context, orderCode string) (*model.Order, error) {
	return nil, model.ErrOrderNotFound
}

func (m *mockOrderRepo) GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*model.Order, error) {
	return nil, model.ErrOrderNotFound
}

func (m *mockOrderRepo) GetByCreatedWithin(ctx context.Context, center time.Time, window time.Duration) (*model.Order, error) {
	return nil, model.ErrOrderNotFound
}

func (m *mockOrderRepo) ListByUserID(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	if m.listByUserID == nil {
		return nil, errors.New("not implemented")
	}
	return m.listByUserID(ctx, userID)
}

func (m *mockOrderRepo) AttachGatewayOrder(ctx context.Context, orderID uuid.UUID, paymentMethod string, result *model.PaymentResult) error {
	return errors.New("not implemented")
}

func (m *mockOrderRepo) MarkPaid(ctx context.Context, orderID uuid.UUID, paidAt time.Time, result *model.PaymentResult) (bool, error) {
	return false, errors.New("not implemented")
}

func (m *mockOrderRepo) MarkDeliveredDue(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error) {
	if m.markDeliveredDue == nil {
		return nil, errors.New("not implemented")
	}
	return m.markDeliveredDue(ctx, cutoff)
}

func (m *mockOrderRepo) MarkReturned(ctx context.Context, orderID, userID uuid.UUID, returnedAt time.Time) error {
	if m.markReturned == nil {
		return errors.New("not implemented")
	}
	return m.markReturned(ctx, orderID, userID, returnedAt)
}

type mockCache struct {
	entries map[string]*model.Order
	deleted []string
}

func newMockCache() *mockCache {
	return &mockCache{entries: make(map[string]*model.Order)}
}

func (m *mockCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	order, ok := m.entries[key]
	if !ok {
		return false, nil
	}
	if out, ok := dest.(*model.Order); ok {
		*out = *order
	}
	return true, nil
}

func (m *mockCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if order, ok := value.(*model.Order); ok {
		m.entries[key] = order
	}
	return nil
}

func (m *mockCache) Delete(ctx context.Context, keys ...string) error {
	m.deleted = append(m.deleted, keys...)
	for _, k := range keys {
		delete(m.entries, k)
	}
	return nil
}

func (m *mockCache) Ping(ctx context.Context) error                          { return nil }

type mockEnqueuer struct {
	confirmations []email.OrderConfirmationData
}

func (m *mockEnqueuer) EnqueueOrderConfirmation(data email.OrderConfirmationData) error {
	m.confirmations = append(m.confirmations, data)
	return nil
}
func (m *mockEnqueuer) EnqueuePaymentReceipt(data email.PaymentReceiptData) error { return nil }
func (m *mockEnqueuer) Close() error                                              { return nil }

// =====================================================
// HELPERS
// =====================================================

func newTestService(repo *mockOrderRepo, cache *mockCache, enq *mockEnqueuer) OrderService {
	return NewOrderService(repo, cache, enq, pricing.DefaultConfig(), 48*time.Hour)
}

func validCreateRequest() model.CreateOrderRequest {
	return model.CreateOrderRequest{
		Items: []model.CreateOrderItem{
			{
				ProductID: uuid.New(),
				Name:      "Wireless Headphones",
				Quantity:  2,
				Price:     decimal.RequireFromString("499.99"),
			},
			{
				ProductID: uuid.New(),
				Name:      "Phone Case",
				Quantity:  1,
				Price:     decimal.RequireFromString("150.00"),
			},
		},
		ShippingAddress: model.ShippingAddress{
			Line1:      "12 MG Road",
			City:       "Bengaluru",
			State:      "Karnataka",
			PostalCode: "560001",
			Country:    "India",
		},
		PaymentMethod: model.PaymentMethodRazorpay,
	}
}

// =====================================================
// CREATE ORDER
// =====================================================

func TestCreateOrder(t *testing.T) {
	t.Run("computes and freezes totals", func(t *testing.T) {
		var created *model.Order
		repo := &mockOrderRepo{
			create: func(ctx context.Context, order *model.Order) error {
				order.CreatedAt = time.Now()
				order.UpdatedAt = order.CreatedAt
				created = order
				return nil
			},
		}
		enq := &mockEnqueuer{}
		svc := newTestService(repo, newMockCache(), enq)

		resp, err := svc.CreateOrder(context.Background(), uuid.New(), "buyer@example.com", validCreateRequest())
		require.NoError(t, err)
		require.NotNil(t, created)

		// subtotal 1149.98, 10% tax, free shipping above 1000
		assert.Equal(t, "1149.98", created.ItemsPrice.StringFixed(2))
		assert.Equal(t, "115.00", created.TaxPrice.StringFixed(2))
		assert.Equal(t, "0.00", created.ShippingPrice.StringFixed(2))
		assert.Equal(t, "1264.98", created.TotalPrice.StringFixed(2))

		assert.True(t, strings.HasPrefix(created.OrderCode, "order_"))
		assert.Len(t, created.Items, 2)
		assert.False(t, created.IsPaid)
		assert.False(t, created.IsDelivered)
		assert.Equal(t, model.OrderStatusPlaced, resp.Status)

		require.Len(t, enq.confirmations, 1)
		assert.Equal(t, "buyer@example.com", enq.confirmations[0].Email)
		assert.Equal(t, created.OrderCode, enq.confirmations[0].OrderCode)
	})

	t.Run("charges flat shipping at the threshold", func(t *testing.T) {
		var created *model.Order
		repo := &mockOrderRepo{
			create: func(ctx context.Context, order *model.Order) error {
				created = order
				return nil
			},
		}
		svc := newTestService(repo, newMockCache(), &mockEnqueuer{})

		req := validCreateRequest()
		req.Items = []model.CreateOrderItem{{
			ProductID: uuid.New(),
			Name:      "Bluetooth Speaker",
			Quantity:  1,
			Price:     decimal.RequireFromString("1000.00"),
		}}

		_, err := svc.CreateOrder(context.Background(), uuid.New(), "buyer@example.com", req)
		require.NoError(t, err)
		assert.Equal(t, "100.00", created.ShippingPrice.StringFixed(2))
	})

	t.Run("rejects an empty cart", func(t *testing.T) {
		svc := newTestService(&mockOrderRepo{}, newMockCache(), &mockEnqueuer{})

		req := validCreateRequest()
		req.Items = nil

		_, err := svc.CreateOrder(context.Background(), uuid.New(), "buyer@example.com", req)
		assertOrderCode(t, err, model.ErrCodeInvalidOrder)
	})

	t.Run("rejects an unknown payment method", func(t *testing.T) {
		svc := newTestService(&mockOrderRepo{}, newMockCache(), &mockEnqueuer{})

		req := validCreateRequest()
		req.PaymentMethod = "barter"

		_, err := svc.CreateOrder(context.Background(), uuid.New(), "buyer@example.com", req)
		assertOrderCode(t, err, model.ErrCodeInvalidOrder)
	})
}

// =====================================================
// GET ORDER
// =====================================================

func TestGetOrder(t *testing.T) {
	t.Run("caches the order after a repository hit", func(t *testing.T) {
		order := deliveredOrder()
		repo := &mockOrderRepo{
			getByIDAndUserID: func(ctx context.Context, orderID, userID uuid.UUID) (*model.Order, error) {
				return order, nil
			},
		}
		cache := newMockCache()
		svc := newTestService(repo, cache, &mockEnqueuer{})

		resp, err := svc.GetOrder(context.Background(), order.ID, order.UserID)
		require.NoError(t, err)
		assert.Equal(t, order.ID, resp.ID)

		_, ok := cache.entries[model.OrderDetailCacheKey(order.ID)]
		assert.True(t, ok)
	})

	t.Run("cache hit for another user's order reports not found", func(t *testing.T) {
		order := deliveredOrder()
		cache := newMockCache()
		cache.entries[model.OrderDetailCacheKey(order.ID)] = order

		svc := newTestService(&mockOrderRepo{}, cache, &mockEnqueuer{})

		_, err := svc.GetOrder(context.Background(), order.ID, uuid.New())
		assert.ErrorIs(t, err, model.ErrOrderNotFound)
	})
}

// =====================================================
// RETURN ORDER
// =====================================================

func deliveredOrder() *model.Order {
	deliveredAt := time.Now().Add(-time.Hour)
	return &model.Order{
		ID:            uuid.New(),
		OrderCode:     "order_1700000000000",
		UserID:        uuid.New(),
		UserEmail:     "buyer@example.com",
		PaymentMethod: model.PaymentMethodRazorpay,
		TotalPrice:    decimal.RequireFromString("1264.98"),
		IsDelivered:   true,
		DeliveredAt:   &deliveredAt,
		CreatedAt:     time.Now().Add(-72 * time.Hour),
	}
}

func TestReturnOrder(t *testing.T) {
	t.Run("returns a delivered order and invalidates cache", func(t *testing.T) {
		order := deliveredOrder()
		repo := &mockOrderRepo{
			getByIDAndUserID: func(ctx context.Context, orderID, userID uuid.UUID) (*model.Order, error) {
				return order, nil
			},
			markReturned: func(ctx context.Context, orderID, userID uuid.UUID, returnedAt time.Time) error {
				assert.Equal(t, order.ID, orderID)
				assert.Equal(t, order.UserID, userID)
				return nil
			},
		}
		cache := newMockCache()
		svc := newTestService(repo, cache, &mockEnqueuer{})

		resp, err := svc.ReturnOrder(context.Background(), order.ID, order.UserID)
		require.NoError(t, err)
		assert.True(t, resp.IsReturned)
		assert.Equal(t, model.OrderStatusReturned, resp.Status)
		assert.Contains(t, cache.deleted, model.OrderDetailCacheKey(order.ID))
	})

	t.Run("rejects an undelivered order", func(t *testing.T) {
		order := deliveredOrder()
		order.IsDelivered = false
		order.DeliveredAt = nil
		repo := &mockOrderRepo{
			getByIDAndUserID: func(ctx context.Context, orderID, userID uuid.UUID) (*model.Order, error) {
				return order, nil
			},
		}
		svc := newTestService(repo, newMockCache(), &mockEnqueuer{})

		_, err := svc.ReturnOrder(context.Background(), order.ID, order.UserID)
		assertOrderCode(t, err, model.ErrCodeOrderNotDelivered)
	})

	t.Run("rejects a second return", func(t *testing.T) {
		order := deliveredOrder()
		returnedAt := time.Now().Add(-time.Minute)
		order.IsReturned = true
		order.ReturnedAt = &returnedAt
		repo := &mockOrderRepo{
			getByIDAndUserID: func(ctx context.Context, orderID, userID uuid.UUID) (*model.Order, error) {
				return order, nil
			},
		}
		svc := newTestService(repo, newMockCache(), &mockEnqueuer{})

		_, err := svc.ReturnOrder(context.Background(), order.ID, order.UserID)
		assertOrderCode(t, err, model.ErrCodeOrderReturned)
	})
}

// =====================================================
// DELIVER DUE ORDERS
// =====================================================

func TestDeliverDueOrders(t *testing.T) {
	t.Run("uses the fulfillment window as cutoff", func(t *testing.T) {
		due := []uuid.UUID{uuid.New(), uuid.New()}
		var gotCutoff time.Time
		repo := &mockOrderRepo{
			markDeliveredDue: func(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error) {
				gotCutoff = cutoff
				return due, nil
			},
		}
		cache := newMockCache()
		svc := newTestService(repo, cache, &mockEnqueuer{})

		count, err := svc.DeliverDueOrders(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		expected := time.Now().Add(-48 * time.Hour)
		assert.WithinDuration(t, expected, gotCutoff, 5*time.Second)

		for _, id := range due {
			assert.Contains(t, cache.deleted, model.OrderDetailCacheKey(id))
		}
	})

	t.Run("no due orders is a quiet no-op", func(t *testing.T) {
		repo := &mockOrderRepo{
			markDeliveredDue: func(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error) {
				return nil, nil
			},
		}
		svc := newTestService(repo, newMockCache(), &mockEnqueuer{})

		count, err := svc.DeliverDueOrders(context.Background())
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func assertOrderCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var orderErr *model.OrderError
	require.ErrorAs(t, err, &orderErr)
	assert.Equal(t, code, orderErr.Code)
}
