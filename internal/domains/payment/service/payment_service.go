package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	ordermodel "megamart-backend/internal/domains/order/model"
	orderrepo "megamart-backend/internal/domains/order/repository"
	"megamart-backend/internal/domains/payment/gateway"
	"megamart-backend/internal/domains/payment/model"
	"megamart-backend/internal/infrastructure/email"
	"megamart-backend/internal/infrastructure/queue"
	"megamart-backend/pkg/cache"
	"megamart-backend/pkg/logger"
)

// timestampMatchWindow bounds the created-at fallback lookup for order
// codes of the form "<prefix>_<unix ms>".
const timestampMatchWindow = 2 * time.Second

// =====================================================
// PAYMENT SERVICE IMPLEMENTATION
// =====================================================
type paymentService struct {
	orderRepo orderrepo.OrderRepository
	gateway   gateway.RazorpayGateway
	cache     cache.Cache
	enqueuer  queue.Enqueuer
}

func NewPaymentService(
	orderRepo orderrepo.OrderRepository,
	gw gateway.RazorpayGateway,
	cache cache.Cache,
	enqueuer queue.Enqueuer,
) PaymentService {
	return &paymentService{
		orderRepo: orderRepo,
		gateway:   gw,
		cache:     cache,
		enqueuer:  enqueuer,
	}
}

// =====================================================
// CREATE GATEWAY ORDER
// =====================================================

// CreateGatewayOrder creates a Razorpay order for checkout.
//
// Business Logic Flow:
// 1. Validate request (positive amount, order reference present)
// 2. Check gateway credentials
// 3. Convert amount to minor units (reject sub-paisa precision)
// 4. Resolve the store order the reference points at
// 5. Call the gateway Orders API
// 6. Record the gateway order id on the store order (best-effort)
// 7. Return gateway order + publishable key for the checkout widget
func (s *paymentService) CreateGatewayOrder(
	ctx context.Context,
	req model.CreateGatewayOrderRequest,
) (*model.CreateGatewayOrderResponse, error) {
	// Step 1: Validate
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err)
	}

	// Step 2: Credentials
	if !s.gateway.Configured() {
		return nil, model.NewConfigError()
	}

	// Step 3: Minor units
	amountMinor, err := model.ToMinorUnits(req.Amount)
	if err != nil {
		return nil, model.NewValidationError(err)
	}

	// Step 4: Resolve the store order; the receipt carries its code so
	// gateway records reconcile against ours. Only the exact lookups
	// apply here: linking a gateway order to a merely nearby order
	// would let verification mark the wrong order paid. Resolution is
	// best-effort: an unknown reference still gets a gateway order, it
	// just loses the stored linkage.
	order, resolveErr := s.resolveOrderStrict(ctx, req.OrderRef)
	if resolveErr != nil {
		var payErr *model.PaymentError
		if !errors.As(resolveErr, &payErr) || payErr.Code != model.ErrCodeOrderNotFound {
			return nil, resolveErr
		}
		logger.Warn("gateway order requested for unknown order reference", map[string]interface{}{
			"order_ref": req.OrderRef,
		})
	}

	receipt := req.OrderRef
	if order != nil {
		receipt = order.OrderCode
	}

	// Step 5: Gateway call
	gwOrder, err := s.gateway.CreateOrder(ctx, gateway.CreateOrderRequest{
		AmountMinor: amountMinor,
		Currency:    "INR",
		Receipt:     receipt,
	})
	if err != nil {
		return nil, model.NewGatewayError(err)
	}

	// Step 6: Link gateway order to store order. A failure here only
	// costs us the direct gateway-id lookup during verification; the
	// other resolution strategies still apply.
	if order != nil {
		result := &ordermodel.PaymentResult{
			GatewayOrderID: gwOrder.ID,
			Status:         ordermodel.PaymentResultStatusCreated,
			UpdateTime:     time.Now().UTC().Format(time.RFC3339),
		}
		if err := s.orderRepo.AttachGatewayOrder(ctx, order.ID, ordermodel.PaymentMethodRazorpay, result); err != nil {
			logger.Warn("failed to attach gateway order to store order", map[string]interface{}{
				"order_id":         order.ID.String(),
				"gateway_order_id": gwOrder.ID,
				"error":            err.Error(),
			})
		} else {
			s.invalidateOrderCache(ctx, order.ID)
		}
	}

	// Step 7: Response
	return &model.CreateGatewayOrderResponse{
		Order: model.GatewayOrderInfo{
			ID:       gwOrder.ID,
			Amount:   gwOrder.AmountMinor,
			Currency: gwOrder.Currency,
			Receipt:  gwOrder.Receipt,
		},
		Key: s.gateway.KeyID(),
	}, nil
}

// =====================================================
// VERIFY PAYMENT
// =====================================================

// VerifyPayment verifies a checkout callback and marks the order paid.
//
// Business Logic Flow:
// 1. Validate request (all four callback fields present)
// 2. Resolve the store order (id, code, gateway order id, timestamp)
// 3. Check the signing secret is present
// 4. Verify HMAC signature; a mismatch writes nothing
// 5. Mark paid with a compare-and-swap on the paid flag
// 6. Already-paid duplicates with a valid signature succeed as no-ops
// 7. Invalidate cache, enqueue receipt email (fire-and-forget)
func (s *paymentService) VerifyPayment(
	ctx context.Context,
	req model.VerifyPaymentRequest,
) (*model.VerifyPaymentResponse, error) {
	// Step 1: Validate
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err)
	}

	// Step 2: Resolve
	order, err := s.resolveOrder(ctx, req.OrderRef, req.RazorpayOrderID)
	if err != nil {
		return nil, err
	}

	// Step 3: Signing secret. Verification only needs the secret, not
	// the publishable key id.
	if !s.gateway.SecretConfigured() {
		return nil, model.NewConfigError()
	}

	// Step 4: Signature. The signed payload binds the gateway order id
	// and payment id together; any mutation fails here.
	if !s.gateway.VerifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		return nil, model.NewInvalidSignatureError()
	}

	// Step 5: Compare-and-swap on the paid flag. Exactly one of any
	// set of concurrent duplicate callbacks performs the write.
	now := time.Now().UTC()
	result := &ordermodel.PaymentResult{
		PaymentID:      req.RazorpayPaymentID,
		GatewayOrderID: req.RazorpayOrderID,
		Status:         ordermodel.PaymentResultStatusCompleted,
		UpdateTime:     now.Format(time.RFC3339),
		PayerEmail:     order.UserEmail,
	}
	updated, err := s.orderRepo.MarkPaid(ctx, order.ID, now, result)
	if err != nil {
		return nil, model.NewPaymentError(model.ErrCodeGateway, "failed to record payment", err)
	}

	// Step 6: Lost the race or replayed callback. The signature already
	// checked out, so report the existing paid state.
	if !updated {
		paid, err := s.orderRepo.GetByID(ctx, order.ID)
		if err != nil {
			return nil, model.NewPaymentError(model.ErrCodeGateway, "failed to load paid order", err)
		}
		return &model.VerifyPaymentResponse{
			ID:        paid.ID,
			OrderCode: paid.OrderCode,
			IsPaid:    paid.IsPaid,
			PaidAt:    paid.PaidAt,
		}, nil
	}

	// Step 7: Side effects
	s.invalidateOrderCache(ctx, order.ID)

	receipt := email.PaymentReceiptData{
		Email:     order.UserEmail,
		OrderCode: order.OrderCode,
		PaymentID: req.RazorpayPaymentID,
		Total:     order.TotalPrice.StringFixed(2),
		PaidAt:    now.Format(time.RFC3339),
	}
	if err := s.enqueuer.EnqueuePaymentReceipt(receipt); err != nil {
		logger.Warn("failed to enqueue payment receipt email", map[string]interface{}{
			"order_id": order.ID.String(),
			"error":    err.Error(),
		})
	}

	logger.Info("payment verified", map[string]interface{}{
		"order_id":   order.ID.String(),
		"order_code": order.OrderCode,
		"payment_id": req.RazorpayPaymentID,
	})

	return &model.VerifyPaymentResponse{
		ID:        order.ID,
		OrderCode: order.OrderCode,
		IsPaid:    true,
		PaidAt:    &now,
	}, nil
}

// =====================================================
// CONFIG
// =====================================================

// Config reports checkout configuration. Only the publishable key is
// exposed; the secret stays server-side.
func (s *paymentService) Config() model.PaymentConfigResponse {
	return model.PaymentConfigResponse{
		KeyID:      s.gateway.KeyID(),
		Configured: s.gateway.Configured(),
	}
}

// =====================================================
// ORDER RESOLUTION
// =====================================================

// resolveOrderStrict matches a payment reference to a store order by
// exact identifiers only:
//
//	a) reference parses as an order id (uuid)
//	b) reference matches an order code
//
// Gateway-order creation uses this form; the fuzzier fallbacks below
// are reserved for verification, where the signature check backstops a
// wrong match.
func (s *paymentService) resolveOrderStrict(
	ctx context.Context,
	orderRef string,
) (*ordermodel.Order, error) {
	// Strategy a: uuid primary key
	if id, err := uuid.Parse(orderRef); err == nil {
		order, err := s.orderRepo.GetByID(ctx, id)
		if err == nil {
			return order, nil
		}
		if !errors.Is(err, ordermodel.ErrOrderNotFound) {
			return nil, model.NewPaymentError(model.ErrCodeGateway, "order lookup failed", err)
		}
	}

	// Strategy b: order code
	order, err := s.orderRepo.GetByOrderCode(ctx, orderRef)
	if err == nil {
		return order, nil
	}
	if !errors.Is(err, ordermodel.ErrOrderNotFound) {
		return nil, model.NewPaymentError(model.ErrCodeGateway, "order lookup failed", err)
	}

	return nil, model.NewOrderNotFoundError(orderRef)
}

// resolveOrder matches a payment reference to a store order, trying
// strategies in decreasing order of confidence:
//
//	a) reference parses as an order id (uuid)
//	b) reference matches an order code
//	c) the gateway order id was attached at gateway-order creation
//	d) reference ends in "_<unix ms>": single order created within
//	   ±2s of that timestamp
func (s *paymentService) resolveOrder(
	ctx context.Context,
	orderRef, gatewayOrderID string,
) (*ordermodel.Order, error) {
	order, err := s.resolveOrderStrict(ctx, orderRef)
	if err == nil {
		return order, nil
	}
	var payErr *model.PaymentError
	if !errors.As(err, &payErr) || payErr.Code != model.ErrCodeOrderNotFound {
		return nil, err
	}

	// Strategy c: gateway order id recorded at creation
	if gatewayOrderID != "" {
		order, err = s.orderRepo.GetByGatewayOrderID(ctx, gatewayOrderID)
		if err == nil {
			return order, nil
		}
		if !errors.Is(err, ordermodel.ErrOrderNotFound) {
			return nil, model.NewPaymentError(model.ErrCodeGateway, "order lookup failed", err)
		}
	}

	// Strategy d: embedded creation timestamp
	if center, ok := parseTimestampRef(orderRef); ok {
		order, err = s.orderRepo.GetByCreatedWithin(ctx, center, timestampMatchWindow)
		if err == nil {
			logger.Warn("order resolved by creation timestamp fallback", map[string]interface{}{
				"order_ref": orderRef,
				"order_id":  order.ID.String(),
			})
			return order, nil
		}
		if !errors.Is(err, ordermodel.ErrOrderNotFound) {
			return nil, model.NewPaymentError(model.ErrCodeGateway, "order lookup failed", err)
		}
	}

	return nil, model.NewOrderNotFoundError(orderRef)
}

// parseTimestampRef extracts the unix-millisecond suffix from a
// "<prefix>_<ms>" order reference.
func parseTimestampRef(ref string) (time.Time, bool) {
	idx := strings.LastIndex(ref, "_")
	if idx < 0 || idx == len(ref)-1 {
		return time.Time{}, false
	}
	ms, err := strconv.ParseInt(ref[idx+1:], 10, 64)
	if err != nil || ms <= 0 {
		return time.Time{}, false
	}
	return time.UnixMilli(ms).UTC(), true
}

func (s *paymentService) invalidateOrderCache(ctx context.Context, orderID uuid.UUID) {
	if err := s.cache.Delete(ctx, ordermodel.OrderDetailCacheKey(orderID)); err != nil {
		logger.Warn("failed to invalidate order cache", map[string]interface{}{
			"order_id": orderID.String(),
			"error":    err.Error(),
		})
	}
}
