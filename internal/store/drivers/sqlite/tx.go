package sqlite

import (
	"context"
	"database/sql"

	"github.com/ironbark/buildmat/internal/store"
)

type txStore struct {
	tx *sql.Tx
}

func newTx(tx *sql.Tx) *txStore {
	return &txStore{tx: tx}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Close() error { return nil } // nothing to close; caller will commit/rollback and outer DB stays open

// Ping is a no-op for transactions. The connection is already established
// when the transaction is created, so we just return nil.
func (t *txStore) Ping(ctx context.Context) error {
	return nil
}

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	// Nested tx not supported; could emulate with SAVEPOINT if needed
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	// Nested tx not supported; could emulate with SAVEPOINT if needed
	return sql.ErrTxDone
}

func (t *txStore) Users() store.Users               { return &usersRepo{db: t.tx} }
func (t *txStore) ResetTokens() store.ResetTokens   { return &resetTokensRepo{db: t.tx} }
func (t *txStore) Materials() store.Materials       { return &materialsRepo{db: t.tx} }
func (t *txStore) Suppliers() store.Suppliers       { return &suppliersRepo{db: t.tx} }
func (t *txStore) Purchases() store.Purchases       { return &purchasesRepo{db: t.tx} }
func (t *txStore) Sales() store.Sales               { return &salesRepo{db: t.tx} }
func (t *txStore) Stocks() store.Stocks             { return &stocksRepo{db: t.tx} }
func (t *txStore) Customers() store.Customers       { return &customersRepo{db: t.tx} }
func (t *txStore) Orders() store.Orders             { return &ordersRepo{db: t.tx} }
func (t *txStore) OrderDetails() store.OrderDetails { return &orderDetailsRepo{db: t.tx} }

func (t *txStore) ApplyMigrations() error { return nil } // no-op; migrations should be applied before starting a tx
