package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"megamart-backend/internal/domains/order/model"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================
type postgresOrderRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &postgresOrderRepository{
		pool: pool,
	}
}

const orderColumns = `
	id, order_code, user_id, user_email, items, shipping_address,
	payment_method, payment_result,
	items_price, tax_price, shipping_price, total_price,
	is_paid, paid_at, is_delivered, delivered_at, is_returned, returned_at,
	created_at, updated_at, version
`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var order model.Order
	err := row.Scan(
		&order.ID,
		&order.OrderCode,
		&order.UserID,
		&order.UserEmail,
		&order.Items,
		&order.ShippingAddress,
		&order.PaymentMethod,
		&order.PaymentResult,
		&order.ItemsPrice,
		&order.TaxPrice,
		&order.ShippingPrice,
		&order.TotalPrice,
		&order.IsPaid,
		&order.PaidAt,
		&order.IsDelivered,
		&order.DeliveredAt,
		&order.IsReturned,
		&order.ReturnedAt,
		&order.CreatedAt,
		&order.UpdatedAt,
		&order.Version,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// =====================================================
// CREATE ORDER
// =====================================================

func (r *postgresOrderRepository) Create(ctx context.Context, order *model.Order) error {
	query := `
		INSERT INTO orders (
			id, order_code, user_id, user_email, items, shipping_address,
			payment_method,
			items_price, tax_price, shipping_price, total_price,
			version
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7,
			$8, $9, $10, $11,
			$12
		)
		RETURNING created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		order.ID,
		order.OrderCode,
		order.UserID,
		order.UserEmail,
		order.Items,
		order.ShippingAddress,
		order.PaymentMethod,
		order.ItemsPrice,
		order.TaxPrice,
		order.ShippingPrice,
		order.TotalPrice,
		order.Version,
	).Scan(&order.CreatedAt, &order.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

// =====================================================
// GET ORDER
// =====================================================

func (r *postgresOrderRepository) GetByID(ctx context.Context, orderID uuid.UUID) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.pool.QueryRow(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, model.ErrOrderNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get order by id: %w", err)
	}
	return order, nil
}

func (r *postgresOrderRepository) GetByIDAndUserID(ctx context.Context, orderID, userID uuid.UUID) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 AND user_id = $2`

	order, err := scanOrder(r.pool.QueryRow(ctx, query, orderID, userID))
	if err != nil {
		if errors.Is(err, model.ErrOrderNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get order by id and user id: %w", err)
	}
	return order, nil
}

func (r *postgresOrderRepository) GetByOrderCode(ctx context.Context, orderCode string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_code = $1`

	order, err := scanOrder(r.pool.QueryRow(ctx, query, orderCode))
	if err != nil {
		if errors.Is(err, model.ErrOrderNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get order by code: %w", err)
	}
	return order, nil
}

func (r *postgresOrderRepository) GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE payment_result->>'order_id' = $1`

	order, err := scanOrder(r.pool.QueryRow(ctx, query, gatewayOrderID))
	if err != nil {
		if errors.Is(err, model.ErrOrderNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get order by gateway order id: %w", err)
	}
	return order, nil
}

func (r *postgresOrderRepository) GetByCreatedWithin(ctx context.Context, center time.Time, window time.Duration) (*model.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE created_at >= $1 AND created_at < $2
		ORDER BY created_at
		LIMIT 1
	`

	order, err := scanOrder(r.pool.QueryRow(ctx, query, center.Add(-window), center.Add(window)))
	if err != nil {
		if errors.Is(err, model.ErrOrderNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get order by creation window: %w", err)
	}
	return order, nil
}

func (r *postgresOrderRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]model.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order row: %w", err)
		}
		orders = append(orders, *order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate order rows: %w", err)
	}

	return orders, nil
}

// =====================================================
// UPDATE ORDER
// =====================================================

func (r *postgresOrderRepository) AttachGatewayOrder(ctx context.Context, orderID uuid.UUID, paymentMethod string, result *model.PaymentResult) error {
	query := `
		UPDATE orders
		SET payment_method = $1,
		    payment_result = $2,
		    version = version + 1,
		    updated_at = NOW()
		WHERE id = $3
	`

	tag, err := r.pool.Exec(ctx, query, paymentMethod, result, orderID)
	if err != nil {
		return fmt.Errorf("failed to attach gateway order: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrOrderNotFound
	}

	return nil
}

func (r *postgresOrderRepository) MarkPaid(ctx context.Context, orderID uuid.UUID, paidAt time.Time, result *model.PaymentResult) (bool, error) {
	// CAS on is_paid guarantees at most one write under concurrent
	// duplicate verification callbacks.
	query := `
		UPDATE orders
		SET is_paid = TRUE,
		    paid_at = $1,
		    payment_result = $2,
		    version = version + 1,
		    updated_at = NOW()
		WHERE id = $3 AND is_paid = FALSE
	`

	tag, err := r.pool.Exec(ctx, query, paidAt, result, orderID)
	if err != nil {
		return false, fmt.Errorf("failed to mark order as paid: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

func (r *postgresOrderRepository) MarkDeliveredDue(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error) {
	query := `
		UPDATE orders
		SET is_delivered = TRUE,
		    delivered_at = NOW(),
		    version = version + 1,
		    updated_at = NOW()
		WHERE is_delivered = FALSE
		  AND is_returned = FALSE
		  AND created_at <= $1
		RETURNING id
	`

	rows, err := r.pool.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to mark due orders as delivered: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan delivered order id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate delivered order ids: %w", err)
	}

	return ids, nil
}

func (r *postgresOrderRepository) MarkReturned(ctx context.Context, orderID, userID uuid.UUID, returnedAt time.Time) error {
	query := `
		UPDATE orders
		SET is_returned = TRUE,
		    returned_at = $1,
		    version = version + 1,
		    updated_at = NOW()
		WHERE id = $2 AND user_id = $3
		  AND is_delivered = TRUE
		  AND is_returned = FALSE
	`

	tag, err := r.pool.Exec(ctx, query, returnedAt, orderID, userID)
	if err != nil {
		return fmt.Errorf("failed to mark order as returned: %w", err)
	}

	if tag.RowsAffected() == 0 {
		// Guard failed; the service distinguishes the exact reason.
		return model.ErrVersionMismatch
	}

	return nil
}
