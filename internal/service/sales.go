package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ironbark/buildmat/internal/domain"
	"github.com/ironbark/buildmat/internal/store"
	"github.com/ironbark/buildmat/pkg/idx"
)

// SaleService records outbound sales. Creating a sale is transactional:
// the material's on-hand quantity is checked and decremented in the same
// transaction that writes the sale row.
type SaleService struct {
	Store store.Store
}

func (s *SaleService) List(ctx context.Context) ([]domain.Sale, error) {
	return s.Store.Sales().ListSales(ctx)
}

func (s *SaleService) Get(ctx context.Context, id string) (domain.Sale, error) {
	return s.Store.Sales().GetSaleByID(ctx, id)
}

func (s *SaleService) Create(ctx context.Context, sale domain.Sale) (domain.Sale, error) {
	sale.CustomerName = strings.TrimSpace(sale.CustomerName)
	if sale.CustomerName == "" {
		return domain.Sale{}, fmt.Errorf("%w: customer_name is required", ErrValidation)
	}
	if sale.Quantity <= 0 {
		return domain.Sale{}, fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}
	if sale.TotalPrice < 0 {
		return domain.Sale{}, fmt.Errorf("%w: total_price must not be negative", ErrValidation)
	}

	sale.ID = idx.New().String()
	if sale.SoldAt.IsZero() {
		sale.SoldAt = time.Now()
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		m, err := tx.Materials().GetMaterialByID(ctx, sale.MaterialID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("%w: material %s", ErrInvalidReference, sale.MaterialID)
			}
			return err
		}

		if m.Quantity < sale.Quantity {
			return fmt.Errorf("%w: have %d, want %d", ErrInsufficientStock, m.Quantity, sale.Quantity)
		}

		if err := tx.Sales().CreateSale(ctx, sale); err != nil {
			return err
		}

		m.Quantity -= sale.Quantity
		return tx.Materials().UpdateMaterial(ctx, m)
	})
	if err != nil {
		return domain.Sale{}, err
	}
	return sale, nil
}

// Update adjusts the recorded figures of an existing sale without touching
// on-hand quantities.
func (s *SaleService) Update(ctx context.Context, sale domain.Sale) (domain.Sale, error) {
	sale.CustomerName = strings.TrimSpace(sale.CustomerName)
	if sale.CustomerName == "" {
		return domain.Sale{}, fmt.Errorf("%w: customer_name is required", ErrValidation)
	}
	if sale.Quantity <= 0 {
		return domain.Sale{}, fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}

	if err := s.Store.Sales().UpdateSale(ctx, sale); err != nil {
		return domain.Sale{}, err
	}
	return s.Store.Sales().GetSaleByID(ctx, sale.ID)
}

func (s *SaleService) Delete(ctx context.Context, id string) error {
	return s.Store.Sales().DeleteSale(ctx, id)
}
