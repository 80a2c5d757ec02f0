package transaction

import (
	"context"
	"errors"
	Error "hoa/packages/common/errors"
	"hoa/packages/common/logger"
	"hoa/packages/infrastructure/DB/postgres/connection"
	"hoa/packages/infrastructure/DB/postgres/query"

	"github.com/jackc/pgx/v5"
)

var txLogger = logger.NewSource("DB TRANSACTION", logger.Default)

var conManager *connection.Manager

func Init(manager *connection.Manager) {
	if manager == nil {
		txLogger.Panic(
			"Failed to initialize DB transaction module",
			"Connection manager can't be nil",
			nil,
		)
	}
	conManager = manager
}

type Transaction struct {
	queries []*query.Query
}

func New(queries ...*query.Query) *Transaction {
	return &Transaction{queries}
}

// Runs all queries in a single transaction.
// Returns number of rows affected by each query.
func (t *Transaction) Exec(ctx context.Context, conType connection.Type) ([]int64, *Error.Status) {
	if len(t.queries) == 0 {
		txLogger.Warning("Transaction has no queries, execution will be skipped", nil)
		return nil, nil
	}

	for _, q := range t.queries {
		if q == nil {
			txLogger.Panic("Failed to run transaction", "At least one query is nil", nil)
			return nil, Error.StatusInternalError
		}
	}

	tx, err := conManager.Pool(conType).Begin(ctx)
	if err != nil {
		txLogger.Error("Failed to begin transaction", err.Error(), nil)
		return nil, Error.StatusInternalError
	}

	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			txLogger.Error("Rollback failed (non-critical)", err.Error(), nil)
		}
	}()

	affected := make([]int64, len(t.queries))

	for i, q := range t.queries {
		tag, err := tx.Exec(ctx, q.SQL, q.Args...)
		if err != nil {
			return nil, q.ConvertError(err)
		}
		affected[i] = tag.RowsAffected()
	}

	if err := tx.Commit(ctx); err != nil {
		txLogger.Error("Failed to commit transaction", err.Error(), nil)
		return nil, Error.StatusInternalError
	}

	return affected, nil
}
