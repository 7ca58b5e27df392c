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

// MaterialService manages the material catalogue.
type MaterialService struct {
	Store store.Store
}

func (s *MaterialService) List(ctx context.Context) ([]domain.Material, error) {
	return s.Store.Materials().ListMaterials(ctx)
}

func (s *MaterialService) Get(ctx context.Context, id string) (domain.Material, error) {
	return s.Store.Materials().GetMaterialByID(ctx, id)
}

func (s *MaterialService) Create(ctx context.Context, m domain.Material) (domain.Material, error) {
	m.Name = strings.TrimSpace(m.Name)
	if m.Name == "" {
		return domain.Material{}, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if m.Quantity < 0 || m.UnitPrice < 0 {
		return domain.Material{}, fmt.Errorf("%w: quantity and unit_price must not be negative", ErrValidation)
	}

	now := time.Now()
	m.ID = idx.New().String()
	m.CreatedAt = now
	m.UpdatedAt = now

	if err := s.Store.Materials().CreateMaterial(ctx, m); err != nil {
		return domain.Material{}, err
	}
	return m, nil
}

func (s *MaterialService) Update(ctx context.Context, m domain.Material) (domain.Material, error) {
	m.Name = strings.TrimSpace(m.Name)
	if m.Name == "" {
		return domain.Material{}, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if m.Quantity < 0 || m.UnitPrice < 0 {
		return domain.Material{}, fmt.Errorf("%w: quantity and unit_price must not be negative", ErrValidation)
	}

	if err := s.Store.Materials().UpdateMaterial(ctx, m); err != nil {
		return domain.Material{}, err
	}
	return s.Store.Materials().GetMaterialByID(ctx, m.ID)
}

func (s *MaterialService) Delete(ctx context.Context, id string) error {
	return s.Store.Materials().DeleteMaterial(ctx, id)
}
