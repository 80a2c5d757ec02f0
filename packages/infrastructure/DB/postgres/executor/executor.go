package executor

import (
	"context"
	"fmt"
	"hoa/packages/common/config"
	Error "hoa/packages/common/errors"
	"hoa/packages/infrastructure/DB/postgres/connection"
	log "hoa/packages/infrastructure/DB/postgres/logger"
	"hoa/packages/infrastructure/DB/postgres/query"
	"strings"

	"github.com/jackc/pgx/v5"
)

var conManager *connection.Manager

func Init(manager *connection.Manager) {
	if manager == nil {
		log.Executor.Panic(
			"Failed to initialize DB executor module",
			"Connection manager can't be nil",
			nil,
		)
	}
	conManager = manager
}

func logQuery(q *query.Query) {
	if !config.Debug.Enabled || !config.Debug.LogDBQueries {
		return
	}

	args := make([]string, len(q.Args))
	for i, arg := range q.Args {
		args[i] = fmt.Sprint(arg)
	}

	log.Executor.Debug("Running query:\n"+q.SQL+"\n * Query args: "+strings.Join(args, "; "), nil)
}

// Applies default query timeout to ctx, if ctx has no deadline yet.
func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, config.DB.QueryTimeout())
}

// Runs query and collects all resulting rows using scan.
// Returns empty slice (not an error) if there are no rows.
func Collect[T any](
	ctx context.Context,
	conType connection.Type,
	q *query.Query,
	scan func(pgx.CollectableRow) (T, error),
) ([]T, *Error.Status) {
	logQuery(q)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := conManager.Pool(conType).Query(ctx, q.SQL, q.Args...)
	if err != nil {
		return nil, q.ConvertError(err)
	}

	result, err := pgx.CollectRows(rows, scan)
	if err != nil {
		log.Executor.Error("Failed to collect rows", err.Error(), nil)
		return nil, q.ConvertError(err)
	}

	return result, nil
}

// Runs query which must return exactly one row and scans it into dests.
// Returns Error.StatusNotFound if there are no rows.
func Row(ctx context.Context, conType connection.Type, q *query.Query, dests ...any) *Error.Status {
	logQuery(q)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if err := conManager.Pool(conType).QueryRow(ctx, q.SQL, q.Args...).Scan(dests...); err != nil {
		return q.ConvertError(err)
	}

	return nil
}

// Wrapper for '*pgxpool.Pool.Exec'.
// Returns number of affected rows.
func Exec(ctx context.Context, conType connection.Type, q *query.Query) (int64, *Error.Status) {
	logQuery(q)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tag, err := conManager.Pool(conType).Exec(ctx, q.SQL, q.Args...)
	if err != nil {
		return 0, q.ConvertError(err)
	}

	return tag.RowsAffected(), nil
}
