package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ironbark/buildmat/internal/domain"
	"github.com/ironbark/buildmat/internal/store"
	"github.com/ironbark/buildmat/pkg/idx"
)

// OrderService manages customer orders.
type OrderService struct {
	Store store.Store
}

func (s *OrderService) List(ctx context.Context) ([]domain.Order, error) {
	return s.Store.Orders().ListOrders(ctx)
}

func (s *OrderService) Get(ctx context.Context, id string) (domain.Order, error) {
	return s.Store.Orders().GetOrderByID(ctx, id)
}

func (s *OrderService) Create(ctx context.Context, o domain.Order) (domain.Order, error) {
	if o.TotalAmount < 0 {
		return domain.Order{}, fmt.Errorf("%w: total_amount must not be negative", ErrValidation)
	}

	if _, err := s.Store.Customers().GetCustomerByID(ctx, o.CustomerID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Order{}, fmt.Errorf("%w: customer %s", ErrInvalidReference, o.CustomerID)
		}
		return domain.Order{}, err
	}

	o.ID = idx.New().String()
	if o.OrderedAt.IsZero() {
		o.OrderedAt = time.Now()
	}

	if err := s.Store.Orders().CreateOrder(ctx, o); err != nil {
		return domain.Order{}, err
	}
	return o, nil
}

func (s *OrderService) Update(ctx context.Context, o domain.Order) (domain.Order, error) {
	if o.TotalAmount < 0 {
		return domain.Order{}, fmt.Errorf("%w: total_amount must not be negative", ErrValidation)
	}

	if err := s.Store.Orders().UpdateOrder(ctx, o); err != nil {
		return domain.Order{}, err
	}
	return s.Store.Orders().GetOrderByID(ctx, o.ID)
}

func (s *OrderService) Delete(ctx context.Context, id string) error {
	return s.Store.Orders().DeleteOrder(ctx, id)
}
