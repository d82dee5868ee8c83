package container

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"megamart-backend/internal/config"
	"megamart-backend/internal/domains/cart/pricing"
	orderHandler "megamart-backend/internal/domains/order/handler"
	orderJob "megamart-backend/internal/domains/order/job"
	orderRepo "megamart-backend/internal/domains/order/repository"
	orderService "megamart-backend/internal/domains/order/service"
	"megamart-backend/internal/domains/payment/gateway"
	"megamart-backend/internal/domains/payment/gateway/razorpay"
	paymentHandler "megamart-backend/internal/domains/payment/handler"
	paymentService "megamart-backend/internal/domains/payment/service"
	infraCache "megamart-backend/internal/infrastructure/cache"
	"megamart-backend/internal/infrastructure/database"
	"megamart-backend/internal/infrastructure/email"
	emailJob "megamart-backend/internal/infrastructure/email/job"
	"megamart-backend/internal/infrastructure/queue"
	"megamart-backend/pkg/cache"
	"megamart-backend/pkg/jwt"
	"megamart-backend/pkg/logger"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds every application dependency. It is the root of
// the dependency graph; everything in it is a singleton living for
// the process lifetime.
type Container struct {
	// Infrastructure - shared across all domains
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager
	Enqueuer   queue.Enqueuer
	Gateway    gateway.RazorpayGateway

	// Repositories - domain data access
	OrderRepo orderRepo.OrderRepository

	// Services - domain business logic
	OrderService   orderService.OrderService
	PaymentService paymentService.PaymentService
	EmailService   email.EmailService

	// HTTP handlers - thin layer over services
	OrderHandler   *orderHandler.OrderHandler
	PaymentHandler *paymentHandler.PaymentHandler

	// Background job handlers (consumed by cmd/worker)
	OrderConfirmationJob *emailJob.OrderConfirmationHandler
	PaymentReceiptJob    *emailJob.PaymentReceiptHandler
	DeliverDueOrdersJob  *orderJob.DeliverDueOrdersHandler
}

// ========================================
// CONSTRUCTOR
// ========================================

// NewContainer builds the whole dependency graph in order:
// config, infrastructure, repositories, services, handlers.
func NewContainer() (*Container, error) {
	c := &Container{}

	// Step 1: Configuration
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	// Step 2: Database
	db := database.NewPostgresDB(cfg.Database)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	// Step 3: Redis cache
	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	c.Cache = redisCache

	// Step 4: Shared infrastructure
	c.JWTManager = jwt.NewManager(cfg.JWT.Secret)
	c.Enqueuer = queue.NewEnqueuer(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)

	rzpGateway, err := razorpay.NewClient(razorpay.NewConfig(
		cfg.Razorpay.KeyID,
		cfg.Razorpay.KeySecret,
		cfg.Razorpay.APIURL,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create razorpay client: %w", err)
	}
	c.Gateway = rzpGateway
	if !cfg.Razorpay.Configured() {
		logger.Warn("razorpay credentials missing, checkout endpoints will report unconfigured", nil)
	}

	c.EmailService = email.NewSMTPEmailService(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.From)

	// Step 5: Repositories
	c.OrderRepo = orderRepo.NewPostgresOrderRepository(db.Pool)

	// Step 6: Services
	pricingCfg, err := pricingConfig(cfg.Order)
	if err != nil {
		return nil, fmt.Errorf("invalid pricing config: %w", err)
	}
	c.OrderService = orderService.NewOrderService(
		c.OrderRepo,
		c.Cache,
		c.Enqueuer,
		pricingCfg,
		cfg.Order.FulfillmentWindow,
	)
	c.PaymentService = paymentService.NewPaymentService(
		c.OrderRepo,
		c.Gateway,
		c.Cache,
		c.Enqueuer,
	)

	// Step 7: Handlers
	c.OrderHandler = orderHandler.NewOrderHandler(c.OrderService)
	c.PaymentHandler = paymentHandler.NewPaymentHandler(c.PaymentService)

	// Step 8: Job handlers
	c.OrderConfirmationJob = emailJob.NewOrderConfirmationHandler(c.EmailService)
	c.PaymentReceiptJob = emailJob.NewPaymentReceiptHandler(c.EmailService)
	c.DeliverDueOrdersJob = orderJob.NewDeliverDueOrdersHandler(c.OrderService)

	return c, nil
}

// pricingConfig parses the decimal-string pricing knobs once at boot
// so a typo fails startup instead of checkout.
func pricingConfig(cfg config.OrderConfig) (pricing.Config, error) {
	taxRate, err := decimal.NewFromString(cfg.TaxRate)
	if err != nil {
		return pricing.Config{}, fmt.Errorf("tax rate %q: %w", cfg.TaxRate, err)
	}
	flatFee, err := decimal.NewFromString(cfg.ShippingFlatFee)
	if err != nil {
		return pricing.Config{}, fmt.Errorf("shipping flat fee %q: %w", cfg.ShippingFlatFee, err)
	}
	threshold, err := decimal.NewFromString(cfg.FreeShippingThreshold)
	if err != nil {
		return pricing.Config{}, fmt.Errorf("free shipping threshold %q: %w", cfg.FreeShippingThreshold, err)
	}
	return pricing.Config{
		TaxRate:               taxRate,
		ShippingFlatFee:       flatFee,
		FreeShippingThreshold: threshold,
	}, nil
}

// ========================================
// CLEANUP
// ========================================

// Cleanup releases external connections in reverse init order
func (c *Container) Cleanup() {
	if c.Enqueuer != nil {
		if err := c.Enqueuer.Close(); err != nil {
			logger.Error("Failed to close task queue client", err)
		}
	}
	if closer, ok := c.Cache.(interface{ Close() error }); ok && closer != nil {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close redis connection", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
