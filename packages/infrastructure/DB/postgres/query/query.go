package query

import (
	"context"
	"errors"
	Error "hoa/packages/common/errors"
	"hoa/packages/common/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var queryLogger = logger.NewSource("QUERY", logger.Default)

type Query struct {
	SQL  string
	Args []any
	// Statuses returned when query violates constraint with the given name.
	constraints map[string]*Error.Status
}

func New(sql string, args ...any) *Query {
	return &Query{
		SQL:  sql,
		Args: args,
	}
}

// Binds status to the constraint, so violation of this constraint
// will be converted into this status instead of internal error.
func (q *Query) OnViolation(constraint string, status *Error.Status) *Query {
	if q.constraints == nil {
		q.constraints = make(map[string]*Error.Status)
	}
	q.constraints[constraint] = status
	return q
}

// Converts err into *Error.Status
func (q *Query) ConvertError(err error) *Error.Status {
	if errors.Is(err, pgx.ErrNoRows) {
		return Error.StatusNotFound
	}

	if errors.Is(err, context.DeadlineExceeded) {
		queryLogger.Error("Query failed", "Operation timeout", nil)
		queryLogger.Debug("Failed query: "+q.SQL, nil)
		return Error.StatusTimeout
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if status, ok := q.constraints[pgErr.ConstraintName]; ok {
			queryLogger.Trace("Constraint '"+pgErr.ConstraintName+"' violated: "+pgErr.Message, nil)
			return status
		}
	}

	queryLogger.Error("Query failed", err.Error(), nil)
	queryLogger.Debug("Failed query: "+q.SQL, nil)

	return Error.StatusInternalError
}
