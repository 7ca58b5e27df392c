package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/ironbark/buildmat/internal/domain"
	"github.com/ironbark/buildmat/internal/store"
	"github.com/ironbark/buildmat/pkg/idx"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func TestUsersRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	u := domain.User{
		ID:           idx.New().String(),
		Email:        "alice@example.com",
		PasswordHash: "hash",
		FullName:     "Alice Example",
		Role:         domain.RoleUser,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	require.NoError(t, s.Users().CreateUser(ctx, u))

	got, err := s.Users().GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
	require.Equal(t, "Alice Example", got.FullName)
	require.Equal(t, domain.RoleUser, got.Role)

	got, err = s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u.Email, got.Email)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	u := domain.User{
		ID:           idx.New().String(),
		Email:        "bob@example.com",
		PasswordHash: "hash",
		FullName:     "Bob",
		Role:         domain.RoleUser,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	require.NoError(t, s.Users().CreateUser(ctx, u))

	dup := u
	dup.ID = idx.New().String()
	err := s.Users().CreateUser(ctx, dup)
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	// Email matching is case-insensitive.
	dup.Email = "BOB@example.com"
	err = s.Users().CreateUser(ctx, dup)
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestGetUserNotFound(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.Users().GetUserByEmail(ctx, "ghost@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdatePasswordHash(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	u := domain.User{
		ID:           idx.New().String(),
		Email:        "carol@example.com",
		PasswordHash: "old-hash",
		FullName:     "Carol",
		Role:         domain.RoleUser,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	require.NoError(t, s.Users().CreateUser(ctx, u))

	require.NoError(t, s.Users().UpdatePasswordHash(ctx, u.ID, "new-hash"))

	got, err := s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "new-hash", got.PasswordHash)

	err = s.Users().UpdatePasswordHash(ctx, "missing", "x")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestResetTokensLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	u := domain.User{
		ID:           idx.New().String(),
		Email:        "dave@example.com",
		PasswordHash: "hash",
		FullName:     "Dave",
		Role:         domain.RoleUser,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	require.NoError(t, s.Users().CreateUser(ctx, u))

	tok := domain.PasswordResetToken{
		ID:        idx.New().String(),
		TokenHash: "fingerprint-1",
		UserID:    u.ID,
		ExpiresAt: time.Now().Add(30 * time.Minute),
		CreatedAt: time.Now(),
	}
	require.NoError(t, s.ResetTokens().CreateResetToken(ctx, tok))

	got, err := s.ResetTokens().GetResetTokenByHash(ctx, "fingerprint-1")
	require.NoError(t, err)
	require.Equal(t, tok.ID, got.ID)
	require.Equal(t, u.ID, got.UserID)

	require.NoError(t, s.ResetTokens().DeleteResetToken(ctx, tok.ID))

	_, err = s.ResetTokens().GetResetTokenByHash(ctx, "fingerprint-1")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteUserResetTokensClearsOutstanding(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	u := domain.User{
		ID:           idx.New().String(),
		Email:        "erin@example.com",
		PasswordHash: "hash",
		FullName:     "Erin",
		Role:         domain.RoleUser,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	require.NoError(t, s.Users().CreateUser(ctx, u))

	for i, hash := range []string{"fp-a", "fp-b"} {
		tok := domain.PasswordResetToken{
			ID:        idx.New().String(),
			TokenHash: hash,
			UserID:    u.ID,
			ExpiresAt: time.Now().Add(time.Duration(i+1) * time.Minute),
			CreatedAt: time.Now(),
		}
		require.NoError(t, s.ResetTokens().CreateResetToken(ctx, tok))
	}

	require.NoError(t, s.ResetTokens().DeleteUserResetTokens(ctx, u.ID))

	_, err := s.ResetTokens().GetResetTokenByHash(ctx, "fp-a")
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.ResetTokens().GetResetTokenByHash(ctx, "fp-b")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteExpiredResetTokens(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	u := domain.User{
		ID:           idx.New().String(),
		Email:        "frank@example.com",
		PasswordHash: "hash",
		FullName:     "Frank",
		Role:         domain.RoleUser,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	require.NoError(t, s.Users().CreateUser(ctx, u))

	expired := domain.PasswordResetToken{
		ID:        idx.New().String(),
		TokenHash: "fp-expired",
		UserID:    u.ID,
		ExpiresAt: time.Now().Add(-time.Minute),
		CreatedAt: time.Now().Add(-31 * time.Minute),
	}
	live := domain.PasswordResetToken{
		ID:        idx.New().String(),
		TokenHash: "fp-live",
		UserID:    u.ID,
		ExpiresAt: time.Now().Add(30 * time.Minute),
		CreatedAt: time.Now(),
	}
	require.NoError(t, s.ResetTokens().CreateResetToken(ctx, expired))
	require.NoError(t, s.ResetTokens().CreateResetToken(ctx, live))

	require.NoError(t, s.ResetTokens().DeleteExpiredResetTokens(ctx))

	_, err := s.ResetTokens().GetResetTokenByHash(ctx, "fp-expired")
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.ResetTokens().GetResetTokenByHash(ctx, "fp-live")
	require.NoError(t, err)
}

func TestMaterialsCRUD(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	m := domain.Material{
		ID:        idx.New().String(),
		Name:      "Portland Cement",
		Category:  "cement",
		Quantity:  120,
		UnitPrice: 9.50,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, s.Materials().CreateMaterial(ctx, m))

	list, err := s.Materials().ListMaterials(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	m.Quantity = 90
	m.UnitPrice = 10.25
	require.NoError(t, s.Materials().UpdateMaterial(ctx, m))

	got, err := s.Materials().GetMaterialByID(ctx, m.ID)
	require.NoError(t, err)
	require.EqualValues(t, 90, got.Quantity)
	require.InDelta(t, 10.25, got.UnitPrice, 0.001)

	require.NoError(t, s.Materials().DeleteMaterial(ctx, m.ID))
	_, err = s.Materials().GetMaterialByID(ctx, m.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	err = s.Materials().DeleteMaterial(ctx, m.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestPurchaseReferencesEnforced(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	p := domain.Purchase{
		ID:          idx.New().String(),
		MaterialID:  "missing-material",
		SupplierID:  "missing-supplier",
		Quantity:    5,
		UnitCost:    2.0,
		TotalCost:   10.0,
		PurchasedAt: time.Now(),
	}
	err := s.Purchases().CreatePurchase(ctx, p)
	require.Error(t, err)
}

func TestOrdersAndCustomers(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	c := domain.Customer{
		ID:        idx.New().String(),
		Name:      "Smith Builders",
		Email:     "office@smithbuilders.example",
		Phone:     "0400 000 000",
		Address:   "1 Yard Rd",
		CreatedAt: time.Now(),
	}
	require.NoError(t, s.Customers().CreateCustomer(ctx, c))

	o := domain.Order{
		ID:          idx.New().String(),
		CustomerID:  c.ID,
		TotalAmount: 450.00,
		OrderedAt:   time.Now(),
	}
	require.NoError(t, s.Orders().CreateOrder(ctx, o))

	got, err := s.Orders().GetOrderByID(ctx, o.ID)
	require.NoError(t, err)
	require.Equal(t, c.ID, got.CustomerID)
	require.InDelta(t, 450.00, got.TotalAmount, 0.001)

	orders, err := s.Orders().ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
}

func TestOrderDetailsFollowOrder(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	c := domain.Customer{
		ID:        idx.New().String(),
		Name:      "Smith Builders",
		CreatedAt: time.Now(),
	}
	require.NoError(t, s.Customers().CreateCustomer(ctx, c))

	m := domain.Material{
		ID:        idx.New().String(),
		Name:      "Besser Block",
		Category:  "masonry",
		Quantity:  200,
		UnitPrice: 4.20,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, s.Materials().CreateMaterial(ctx, m))

	o := domain.Order{
		ID:          idx.New().String(),
		CustomerID:  c.ID,
		TotalAmount: 420.00,
		OrderedAt:   time.Now(),
	}
	require.NoError(t, s.Orders().CreateOrder(ctx, o))

	// Line items need a live parent order.
	orphan := domain.OrderDetail{
		ID:         idx.New().String(),
		OrderID:    "no-such-order",
		MaterialID: m.ID,
		Quantity:   1,
		Subtotal:   4.20,
	}
	require.Error(t, s.OrderDetails().CreateOrderDetail(ctx, orphan))

	d := domain.OrderDetail{
		ID:         idx.New().String(),
		OrderID:    o.ID,
		MaterialID: m.ID,
		Quantity:   100,
		Subtotal:   420.00,
	}
	require.NoError(t, s.OrderDetails().CreateOrderDetail(ctx, d))

	lines, err := s.OrderDetails().ListOrderDetailsByOrder(ctx, o.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.EqualValues(t, 100, lines[0].Quantity)

	// Deleting the order cascades to its line items.
	require.NoError(t, s.Orders().DeleteOrder(ctx, o.ID))

	_, err = s.OrderDetails().GetOrderDetailByID(ctx, d.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	boom := domain.Supplier{
		ID:        idx.New().String(),
		Name:      "Roll Back Pty Ltd",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	err := s.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Suppliers().CreateSupplier(ctx, boom); err != nil {
			return err
		}
		return context.Canceled
	})
	require.ErrorIs(t, err, context.Canceled)

	_, err = s.Suppliers().GetSupplierByID(ctx, boom.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestWithTxCommits(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	sup := domain.Supplier{
		ID:        idx.New().String(),
		Name:      "Commit & Co",
		Contact:   "yard@commit.example",
		Address:   "2 Depot St",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	err := s.WithTx(ctx, func(tx store.Tx) error {
		return tx.Suppliers().CreateSupplier(ctx, sup)
	})
	require.NoError(t, err)

	got, err := s.Suppliers().GetSupplierByID(ctx, sup.ID)
	require.NoError(t, err)
	require.Equal(t, "Commit & Co", got.Name)
}
