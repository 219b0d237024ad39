package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"tilboard/internal/domain"
	"tilboard/internal/domain/repositories"
)

// TransactionManager implements the TransactionManager interface
type TransactionManager struct {
	pool *pgxpool.Pool
}

// NewTransactionManager creates a new transaction manager
func NewTransactionManager(pool *pgxpool.Pool) repositories.TransactionManager {
	return &TransactionManager{pool: pool}
}

// ExecTx executes a function within a transaction
func (tm *TransactionManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return tm.execTx(ctx, pgx.TxOptions{}, fn)
}

// ExecOrderedTx executes a function within a serializable transaction.
// Position writes go through here: two racing mutations of the same sibling
// set make one transaction fail with SQLSTATE 40001 instead of committing a
// non-contiguous ranking.
func (tm *TransactionManager) ExecOrderedTx(ctx context.Context, fn repositories.TxFn) error {
	return tm.execTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable}, fn)
}

func (tm *TransactionManager) execTx(ctx context.Context, opts pgx.TxOptions, fn repositories.TxFn) error {
	tx, err := tm.pool.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	// Defer rollback - safe even if commit succeeds
	defer func() {
		if err := tx.Rollback(ctx); err != nil && err != pgx.ErrTxClosed {
			slog.Error("rollback failed", "error", err)
		}
	}()

	// Store transaction in context so repositories can access it
	txCtx := repositories.SetTx(ctx, tx)

	if err := fn(txCtx); err != nil {
		if IsSerializationError(err) {
			return fmt.Errorf("concurrent update, retry: %w", domain.ErrConflict)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		if IsSerializationError(err) {
			return fmt.Errorf("concurrent update, retry: %w", domain.ErrConflict)
		}
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
