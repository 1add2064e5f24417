package order

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/tmcosta/barbershop-api/internal/model"
	"github.com/tmcosta/barbershop-api/internal/repository"
	apperrors "github.com/tmcosta/barbershop-api/pkg/errors"
	"github.com/tmcosta/barbershop-api/pkg/metrics"
)

const (
	pickupCodeLength   = 12
	pickupCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

type Service struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	outbox   repository.OutboxRepository
	tx       repository.TxManager
	metrics  *metrics.Metrics
}

func NewService(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	outbox repository.OutboxRepository,
	tx repository.TxManager,
	m *metrics.Metrics,
) *Service {
	return &Service{
		orders:   orders,
		products: products,
		outbox:   outbox,
		tx:       tx,
		metrics:  m,
	}
}

// Checkout reserves stock for every cart line, snapshots item prices and
// creates a pending order with a pickup code for in-store collection. The
// stock decrements, the order row and its outbox event are one transaction:
// a failing line releases every reservation made before it.
func (s *Service) Checkout(ctx context.Context, clientID uuid.UUID, req *model.CheckoutRequest) (*model.Order, error) {
	code, err := generatePickupCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate pickup code: %w", err)
	}

	order := &model.Order{
		ClientID:   clientID,
		Status:     model.OrderStatusPending,
		PickupCode: code,
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		items := make([]model.OrderItem, 0, len(req.Items))
		var total float64

		for _, line := range req.Items {
			product, err := s.products.Get(ctx, line.ProductID)
			if err != nil {
				return apperrors.NotFound(fmt.Sprintf("product %s not found", line.ProductID), err)
			}
			if product.Stock < line.Quantity {
				return apperrors.Conflict(fmt.Sprintf("insufficient stock for %s", product.Name), nil)
			}
			if err := s.products.DecrementStock(ctx, product.ID, line.Quantity); err != nil {
				return apperrors.Conflict(fmt.Sprintf("insufficient stock for %s", product.Name), err)
			}

			items = append(items, model.OrderItem{
				ProductID: product.ID,
				Name:      product.Name,
				Price:     product.Price,
				Quantity:  line.Quantity,
			})
			total += product.Price * float64(line.Quantity)
		}

		payload, err := json.Marshal(items)
		if err != nil {
			return fmt.Errorf("failed to encode order items: %w", err)
		}
		order.Items = payload
		order.Total = total

		if err := s.orders.Create(ctx, order); err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		return s.recordEvent(ctx, model.EventOrderCreated, order)
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.OrdersCreated.Inc()
	}
	return order, nil
}

func (s *Service) GetOrder(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	order, err := s.orders.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("order not found", err)
	}
	return order, nil
}

func (s *Service) ListOrdersForClient(ctx context.Context, clientID uuid.UUID) ([]*model.Order, error) {
	orders, err := s.orders.ListForClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (s *Service) ListOrders(ctx context.Context) ([]*model.Order, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// DeliverByPickupCode marks the order matching the counter code as
// collected. Delivery is a one-way transition.
func (s *Service) DeliverByPickupCode(ctx context.Context, code string) (*model.Order, error) {
	order, err := s.orders.GetByPickupCode(ctx, code)
	if err != nil {
		return nil, apperrors.NotFound("no order matches this pickup code", err)
	}
	if order.Status == model.OrderStatusDelivered {
		return nil, apperrors.Conflict("order already delivered", nil)
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.orders.MarkDelivered(ctx, order.ID); err != nil {
			return fmt.Errorf("failed to mark order delivered: %w", err)
		}
		order.Status = model.OrderStatusDelivered
		return s.recordEvent(ctx, model.EventOrderDelivered, order)
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.OrdersDelivered.Inc()
	}
	return order, nil
}

// recordEvent queues the outbox row inside the caller's transaction so an
// order never commits without its event.
func (s *Service) recordEvent(ctx context.Context, eventType string, order *model.Order) error {
	payload, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", eventType, err)
	}
	if err := s.outbox.Create(ctx, &model.OutboxEvent{
		EventType: eventType,
		Payload:   payload,
		Status:    model.OutboxStatusPending,
	}); err != nil {
		return fmt.Errorf("failed to queue %s event: %w", eventType, err)
	}
	return nil
}

// generatePickupCode returns a 12-character uppercase code. The alphabet
// skips I, O, 0 and 1 to keep codes readable over the counter.
func generatePickupCode() (string, error) {
	buf := make([]byte, pickupCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = pickupCodeAlphabet[int(b)%len(pickupCodeAlphabet)]
	}
	return string(buf), nil
}
