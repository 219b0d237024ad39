package repositories

import "context"

// TxFn is a function that runs within a transaction
type TxFn func(ctx context.Context) error

// TransactionManager handles database transactions
type TransactionManager interface {
	// ExecTx executes a function within a transaction at the store's
	// default isolation level.
	ExecTx(ctx context.Context, fn TxFn) error

	// ExecOrderedTx executes a function within a serializable transaction.
	// Every operation that writes sibling positions runs through this, so
	// two racing mutations under the same parent fail with a serialization
	// error instead of leaving gaps or duplicate positions behind.
	ExecOrderedTx(ctx context.Context, fn TxFn) error
}
