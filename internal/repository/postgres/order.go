package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/tmcosta/barbershop-api/internal/model"
)

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	query := `
		INSERT INTO orders (
			id, client_id, items, total, status, pickup_code, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	order.ID = uuid.New()
	order.CreatedAt = time.Now()
	order.UpdatedAt = time.Now()

	_, err := r.ext(ctx).ExecContext(ctx, query,
		order.ID,
		order.ClientID,
		order.Items,
		order.Total,
		order.Status,
		order.PickupCode,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (r *orderRepository) Get(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	query := `
		SELECT id, client_id, items, total, status, pickup_code, delivered_at,
			   created_at, updated_at
		FROM orders
		WHERE id = $1
	`
	var order model.Order
	err := sqlx.GetContext(ctx, r.ext(ctx), &order, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

func (r *orderRepository) GetByPickupCode(ctx context.Context, code string) (*model.Order, error) {
	query := `
		SELECT id, client_id, items, total, status, pickup_code, delivered_at,
			   created_at, updated_at
		FROM orders
		WHERE pickup_code = $1
	`
	var order model.Order
	err := sqlx.GetContext(ctx, r.ext(ctx), &order, query, code)
	if err != nil {
		return nil, fmt.Errorf("failed to get order by pickup code: %w", err)
	}
	return &order, nil
}

func (r *orderRepository) ListForClient(ctx context.Context, clientID uuid.UUID) ([]*model.Order, error) {
	query := `
		SELECT id, client_id, items, total, status, pickup_code, delivered_at,
			   created_at, updated_at
		FROM orders
		WHERE client_id = $1
		ORDER BY created_at DESC
	`
	var orders []*model.Order
	err := sqlx.SelectContext(ctx, r.ext(ctx), &orders, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (r *orderRepository) List(ctx context.Context) ([]*model.Order, error) {
	query := `
		SELECT id, client_id, items, total, status, pickup_code, delivered_at,
			   created_at, updated_at
		FROM orders
		ORDER BY created_at DESC
	`
	var orders []*model.Order
	err := sqlx.SelectContext(ctx, r.ext(ctx), &orders, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (r *orderRepository) MarkDelivered(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE orders
		SET status = $1, delivered_at = $2, updated_at = $2
		WHERE id = $3 AND status = $4
	`
	result, err := r.ext(ctx).ExecContext(ctx, query,
		model.OrderStatusDelivered,
		time.Now(),
		id,
		model.OrderStatusPending,
	)
	if err != nil {
		return fmt.Errorf("failed to mark order delivered: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("order not pending")
	}
	return nil
}
