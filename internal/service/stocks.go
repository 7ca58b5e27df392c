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

// StockService manages stock batches directly, for stocktake corrections
// and batches that arrive outside the purchase flow.
type StockService struct {
	Store store.Store
}

func (s *StockService) List(ctx context.Context) ([]domain.Stock, error) {
	return s.Store.Stocks().ListStocks(ctx)
}

func (s *StockService) Get(ctx context.Context, id string) (domain.Stock, error) {
	return s.Store.Stocks().GetStockByID(ctx, id)
}

func (s *StockService) Create(ctx context.Context, st domain.Stock) (domain.Stock, error) {
	if st.Quantity < 0 {
		return domain.Stock{}, fmt.Errorf("%w: quantity must not be negative", ErrValidation)
	}

	if _, err := s.Store.Materials().GetMaterialByID(ctx, st.MaterialID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Stock{}, fmt.Errorf("%w: material %s", ErrInvalidReference, st.MaterialID)
		}
		return domain.Stock{}, err
	}
	if _, err := s.Store.Suppliers().GetSupplierByID(ctx, st.SupplierID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Stock{}, fmt.Errorf("%w: supplier %s", ErrInvalidReference, st.SupplierID)
		}
		return domain.Stock{}, err
	}

	st.ID = idx.New().String()
	if st.PurchasedAt.IsZero() {
		st.PurchasedAt = time.Now()
	}

	if err := s.Store.Stocks().CreateStock(ctx, st); err != nil {
		return domain.Stock{}, err
	}
	return st, nil
}

func (s *StockService) Update(ctx context.Context, st domain.Stock) (domain.Stock, error) {
	if st.Quantity < 0 {
		return domain.Stock{}, fmt.Errorf("%w: quantity must not be negative", ErrValidation)
	}

	if err := s.Store.Stocks().UpdateStock(ctx, st); err != nil {
		return domain.Stock{}, err
	}
	return s.Store.Stocks().GetStockByID(ctx, st.ID)
}

func (s *StockService) Delete(ctx context.Context, id string) error {
	return s.Store.Stocks().DeleteStock(ctx, id)
}
