package store

import (
	"context"
	"errors"

	"github.com/ironbark/buildmat/internal/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users
	ResetTokens() ResetTokens
	Materials() Materials
	Suppliers() Suppliers
	Purchases() Purchases
	Sales() Sales
	Stocks() Stocks
	Customers() Customers
	Orders() Orders
	OrderDetails() OrderDetails

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// Use it for multi-step operations that must be atomic (e.g., purchase
	// plus stock adjustment). The caller MUST call Commit() or Rollback()
	// on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// This is the recommended way to handle transactions as it automatically
	// handles commit/rollback logic.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during login and registration duplicate checks.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	// Returns ErrAlreadyExists when the email is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdatePasswordHash sets the password_hash and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error

	// UpdateRole promotes or demotes an account and bumps updated_at.
	UpdateRole(ctx context.Context, userID string, role string) error
}

type ResetTokens interface {
	// CreateResetToken writes a new password reset token record
	// (token_hash is the SHA-256 fingerprint of the opaque token).
	CreateResetToken(ctx context.Context, t domain.PasswordResetToken) error

	// GetResetTokenByHash returns the token record by its fingerprint.
	GetResetTokenByHash(ctx context.Context, hash string) (domain.PasswordResetToken, error)

	// DeleteResetToken removes a token after redemption or on expiry.
	DeleteResetToken(ctx context.Context, id string) error

	// DeleteUserResetTokens invalidates all outstanding tokens for a user,
	// called before a fresh token is issued.
	DeleteUserResetTokens(ctx context.Context, userID string) error

	// DeleteExpiredResetTokens is housekeeping.
	DeleteExpiredResetTokens(ctx context.Context) error
}

type Materials interface {
	ListMaterials(ctx context.Context) ([]domain.Material, error)
	GetMaterialByID(ctx context.Context, id string) (domain.Material, error)
	CreateMaterial(ctx context.Context, m domain.Material) error
	UpdateMaterial(ctx context.Context, m domain.Material) error
	DeleteMaterial(ctx context.Context, id string) error
}

type Suppliers interface {
	ListSuppliers(ctx context.Context) ([]domain.Supplier, error)
	GetSupplierByID(ctx context.Context, id string) (domain.Supplier, error)
	CreateSupplier(ctx context.Context, s domain.Supplier) error
	UpdateSupplier(ctx context.Context, s domain.Supplier) error
	DeleteSupplier(ctx context.Context, id string) error
}

type Purchases interface {
	ListPurchases(ctx context.Context) ([]domain.Purchase, error)
	GetPurchaseByID(ctx context.Context, id string) (domain.Purchase, error)
	CreatePurchase(ctx context.Context, p domain.Purchase) error
	UpdatePurchase(ctx context.Context, p domain.Purchase) error
	DeletePurchase(ctx context.Context, id string) error
}

type Sales interface {
	ListSales(ctx context.Context) ([]domain.Sale, error)
	GetSaleByID(ctx context.Context, id string) (domain.Sale, error)
	CreateSale(ctx context.Context, s domain.Sale) error
	UpdateSale(ctx context.Context, s domain.Sale) error
	DeleteSale(ctx context.Context, id string) error
}

type Stocks interface {
	ListStocks(ctx context.Context) ([]domain.Stock, error)
	GetStockByID(ctx context.Context, id string) (domain.Stock, error)
	CreateStock(ctx context.Context, s domain.Stock) error
	UpdateStock(ctx context.Context, s domain.Stock) error
	DeleteStock(ctx context.Context, id string) error
}

type Customers interface {
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	GetCustomerByID(ctx context.Context, id string) (domain.Customer, error)
	CreateCustomer(ctx context.Context, c domain.Customer) error
	UpdateCustomer(ctx context.Context, c domain.Customer) error
	DeleteCustomer(ctx context.Context, id string) error
}

type Orders interface {
	ListOrders(ctx context.Context) ([]domain.Order, error)
	GetOrderByID(ctx context.Context, id string) (domain.Order, error)
	CreateOrder(ctx context.Context, o domain.Order) error
	UpdateOrder(ctx context.Context, o domain.Order) error
	DeleteOrder(ctx context.Context, id string) error
}

type OrderDetails interface {
	ListOrderDetails(ctx context.Context) ([]domain.OrderDetail, error)

	// ListOrderDetailsByOrder returns the line items of one order.
	ListOrderDetailsByOrder(ctx context.Context, orderID string) ([]domain.OrderDetail, error)

	GetOrderDetailByID(ctx context.Context, id string) (domain.OrderDetail, error)
	CreateOrderDetail(ctx context.Context, d domain.OrderDetail) error
	UpdateOrderDetail(ctx context.Context, d domain.OrderDetail) error
	DeleteOrderDetail(ctx context.Context, id string) error
}
