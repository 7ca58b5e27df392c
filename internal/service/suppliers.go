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

// SupplierService manages the supplier register.
type SupplierService struct {
	Store store.Store
}

func (s *SupplierService) List(ctx context.Context) ([]domain.Supplier, error) {
	return s.Store.Suppliers().ListSuppliers(ctx)
}

func (s *SupplierService) Get(ctx context.Context, id string) (domain.Supplier, error) {
	return s.Store.Suppliers().GetSupplierByID(ctx, id)
}

func (s *SupplierService) Create(ctx context.Context, sup domain.Supplier) (domain.Supplier, error) {
	sup.Name = strings.TrimSpace(sup.Name)
	if sup.Name == "" {
		return domain.Supplier{}, fmt.Errorf("%w: name is required", ErrValidation)
	}

	now := time.Now()
	sup.ID = idx.New().String()
	sup.CreatedAt = now
	sup.UpdatedAt = now

	if err := s.Store.Suppliers().CreateSupplier(ctx, sup); err != nil {
		return domain.Supplier{}, err
	}
	return sup, nil
}

func (s *SupplierService) Update(ctx context.Context, sup domain.Supplier) (domain.Supplier, error) {
	sup.Name = strings.TrimSpace(sup.Name)
	if sup.Name == "" {
		return domain.Supplier{}, fmt.Errorf("%w: name is required", ErrValidation)
	}

	if err := s.Store.Suppliers().UpdateSupplier(ctx, sup); err != nil {
		return domain.Supplier{}, err
	}
	return s.Store.Suppliers().GetSupplierByID(ctx, sup.ID)
}

func (s *SupplierService) Delete(ctx context.Context, id string) error {
	return s.Store.Suppliers().DeleteSupplier(ctx, id)
}
