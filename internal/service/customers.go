package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ironbark/buildmat/internal/domain"
	"github.com/ironbark/buildmat/internal/store"
	"github.com/ironbark/buildmat/pkg/idx"
)

// CustomerService manages the customer register used by orders.
type CustomerService struct {
	Store store.Store
}

func (s *CustomerService) List(ctx context.Context) ([]domain.Customer, error) {
	return s.Store.Customers().ListCustomers(ctx)
}

func (s *CustomerService) Get(ctx context.Context, id string) (domain.Customer, error) {
	return s.Store.Customers().GetCustomerByID(ctx, id)
}

func (s *CustomerService) Create(ctx context.Context, c domain.Customer) (domain.Customer, error) {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return domain.Customer{}, fmt.Errorf("%w: name is required", ErrValidation)
	}

	c.ID = idx.New().String()
	c.CreatedAt = time.Now()

	if err := s.Store.Customers().CreateCustomer(ctx, c); err != nil {
		return domain.Customer{}, err
	}
	return c, nil
}

func (s *CustomerService) Update(ctx context.Context, c domain.Customer) (domain.Customer, error) {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return domain.Customer{}, fmt.Errorf("%w: name is required", ErrValidation)
	}

	if err := s.Store.Customers().UpdateCustomer(ctx, c); err != nil {
		return domain.Customer{}, err
	}
	return s.Store.Customers().GetCustomerByID(ctx, c.ID)
}

func (s *CustomerService) Delete(ctx context.Context, id string) error {
	return s.Store.Customers().DeleteCustomer(ctx, id)
}
