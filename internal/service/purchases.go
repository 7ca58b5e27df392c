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

// PurchaseService records inbound purchases. Creating a purchase is
// transactional: it writes the purchase row, adds a stock batch, and bumps
// the material's on-hand quantity together.
type PurchaseService struct {
	Store store.Store
}

func (s *PurchaseService) List(ctx context.Context) ([]domain.Purchase, error) {
	return s.Store.Purchases().ListPurchases(ctx)
}

func (s *PurchaseService) Get(ctx context.Context, id string) (domain.Purchase, error) {
	return s.Store.Purchases().GetPurchaseByID(ctx, id)
}

func (s *PurchaseService) Create(ctx context.Context, p domain.Purchase) (domain.Purchase, error) {
	if p.Quantity <= 0 {
		return domain.Purchase{}, fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}
	if p.UnitCost < 0 {
		return domain.Purchase{}, fmt.Errorf("%w: unit_cost must not be negative", ErrValidation)
	}

	now := time.Now()
	p.ID = idx.New().String()
	p.TotalCost = float64(p.Quantity) * p.UnitCost
	if p.PurchasedAt.IsZero() {
		p.PurchasedAt = now
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		m, err := tx.Materials().GetMaterialByID(ctx, p.MaterialID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("%w: material %s", ErrInvalidReference, p.MaterialID)
			}
			return err
		}

		if _, err := tx.Suppliers().GetSupplierByID(ctx, p.SupplierID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("%w: supplier %s", ErrInvalidReference, p.SupplierID)
			}
			return err
		}

		if err := tx.Purchases().CreatePurchase(ctx, p); err != nil {
			return err
		}

		batch := domain.Stock{
			ID:          idx.New().String(),
			MaterialID:  p.MaterialID,
			SupplierID:  p.SupplierID,
			Quantity:    p.Quantity,
			PurchasedAt: p.PurchasedAt,
		}
		if err := tx.Stocks().CreateStock(ctx, batch); err != nil {
			return err
		}

		m.Quantity += p.Quantity
		return tx.Materials().UpdateMaterial(ctx, m)
	})
	if err != nil {
		return domain.Purchase{}, err
	}
	return p, nil
}

// Update adjusts the recorded figures of an existing purchase. It does not
// retroactively rewrite stock; corrections to on-hand quantities go
// through the stock endpoints.
func (s *PurchaseService) Update(ctx context.Context, p domain.Purchase) (domain.Purchase, error) {
	if p.Quantity <= 0 {
		return domain.Purchase{}, fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}
	if p.UnitCost < 0 {
		return domain.Purchase{}, fmt.Errorf("%w: unit_cost must not be negative", ErrValidation)
	}

	p.TotalCost = float64(p.Quantity) * p.UnitCost

	if err := s.Store.Purchases().UpdatePurchase(ctx, p); err != nil {
		return domain.Purchase{}, err
	}
	return s.Store.Purchases().GetPurchaseByID(ctx, p.ID)
}

func (s *PurchaseService) Delete(ctx context.Context, id string) error {
	return s.Store.Purchases().DeletePurchase(ctx, id)
}
