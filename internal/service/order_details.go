package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ironbark/buildmat/internal/domain"
	"github.com/ironbark/buildmat/internal/store"
	"github.com/ironbark/buildmat/pkg/idx"
)

// OrderDetailService manages the line items that make up an order.
type OrderDetailService struct {
	Store store.Store
}

func (s *OrderDetailService) List(ctx context.Context) ([]domain.OrderDetail, error) {
	return s.Store.OrderDetails().ListOrderDetails(ctx)
}

// ListByOrder returns the line items of a single order.
func (s *OrderDetailService) ListByOrder(ctx context.Context, orderID string) ([]domain.OrderDetail, error) {
	if _, err := s.Store.Orders().GetOrderByID(ctx, orderID); err != nil {
		return nil, err
	}
	return s.Store.OrderDetails().ListOrderDetailsByOrder(ctx, orderID)
}

func (s *OrderDetailService) Get(ctx context.Context, id string) (domain.OrderDetail, error) {
	return s.Store.OrderDetails().GetOrderDetailByID(ctx, id)
}

func (s *OrderDetailService) Create(ctx context.Context, d domain.OrderDetail) (domain.OrderDetail, error) {
	if err := validateOrderDetail(d); err != nil {
		return domain.OrderDetail{}, err
	}

	if _, err := s.Store.Orders().GetOrderByID(ctx, d.OrderID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.OrderDetail{}, fmt.Errorf("%w: order %s", ErrInvalidReference, d.OrderID)
		}
		return domain.OrderDetail{}, err
	}
	if _, err := s.Store.Materials().GetMaterialByID(ctx, d.MaterialID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.OrderDetail{}, fmt.Errorf("%w: material %s", ErrInvalidReference, d.MaterialID)
		}
		return domain.OrderDetail{}, err
	}

	d.ID = idx.New().String()

	if err := s.Store.OrderDetails().CreateOrderDetail(ctx, d); err != nil {
		return domain.OrderDetail{}, err
	}
	return d, nil
}

func (s *OrderDetailService) Update(ctx context.Context, d domain.OrderDetail) (domain.OrderDetail, error) {
	if err := validateOrderDetail(d); err != nil {
		return domain.OrderDetail{}, err
	}

	if err := s.Store.OrderDetails().UpdateOrderDetail(ctx, d); err != nil {
		return domain.OrderDetail{}, err
	}
	return s.Store.OrderDetails().GetOrderDetailByID(ctx, d.ID)
}

func (s *OrderDetailService) Delete(ctx context.Context, id string) error {
	return s.Store.OrderDetails().DeleteOrderDetail(ctx, id)
}

func validateOrderDetail(d domain.OrderDetail) error {
	if d.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}
	if d.Subtotal < 0 {
		return fmt.Errorf("%w: subtotal must not be negative", ErrValidation)
	}
	return nil
}
