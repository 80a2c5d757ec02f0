package table

import (
	"context"
	Error "hoa/packages/common/errors"
	"hoa/packages/core/sieve"
	"hoa/packages/infrastructure/DB/postgres/connection"
	"hoa/packages/infrastructure/DB/postgres/executor"
	log "hoa/packages/infrastructure/DB/postgres/logger"
	"hoa/packages/infrastructure/DB/postgres/query"
	"hoa/packages/infrastructure/DB/postgres/transaction"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Describes how entities of type T are stored.
type Schema[T any] struct {
	Select *query.Select[T]
	// Returns scan destinations for the selected columns of a single row
	// and function which builds entity from them after scan.
	Scanner func() ([]any, func() *T)
	ID      func(e *T) uuid.UUID
	Insert  func(e *T) *query.Query
	Update  func(e *T) *query.Query
	// Queries which delete entity with the given id, run in a single transaction.
	// Query which deletes the entity itself must go last.
	Delete func(id uuid.UUID) []*query.Query
}

// Generic CRUD over the entities of type T.
// Reads go to the replica, writes go to the primary.
type Table[T any] struct {
	schema Schema[T]
	entity string
}

func New[T any](entity string, schema Schema[T]) *Table[T] {
	return &Table[T]{
		schema: schema,
		entity: entity,
	}
}

func (t *Table[T]) Page(
	ctx context.Context,
	filters sieve.FilterExpression,
	sorts sieve.SortSpec,
	offset int,
	limit int,
) ([]T, int, error) {
	log.DB.Trace("Selecting "+t.entity+" page (offset "+strconv.Itoa(offset)+", limit "+strconv.Itoa(limit)+")...", nil)

	q, err := t.schema.Select.Page(filters, sorts, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	var total int64

	items, status := executor.Collect(ctx, connection.Replica, q, func(row pgx.CollectableRow) (T, error) {
		dests, build := t.schema.Scanner()

		if err := row.Scan(append(dests, &total)...); err != nil {
			var zero T
			return zero, err
		}

		return *build(), nil
	})
	if status != nil {
		log.DB.Error("Failed to select "+t.entity+" page", status.Error(), nil)
		return nil, 0, status
	}

	// Page is past the end, so window function had nothing to count
	if len(items) == 0 && offset > 0 {
		q, err := t.schema.Select.Count(filters)
		if err != nil {
			return nil, 0, err
		}
		if status := executor.Row(ctx, connection.Replica, q, &total); status != nil {
			log.DB.Error("Failed to count "+t.entity+" entities", status.Error(), nil)
			return nil, 0, status
		}
	}

	log.DB.Trace("Selecting "+t.entity+" page: OK", nil)

	return items, int(total), nil
}

func (t *Table[T]) get(ctx context.Context, conType connection.Type, id uuid.UUID) (*T, *Error.Status) {
	dests, build := t.schema.Scanner()

	if err := executor.Row(ctx, conType, t.schema.Select.ByID(id), dests...); err != nil {
		return nil, err
	}

	return build(), nil
}

func (t *Table[T]) GetByID(ctx context.Context, id uuid.UUID) (*T, *Error.Status) {
	log.DB.Trace("Getting "+t.entity+" "+id.String()+"...", nil)

	e, err := t.get(ctx, connection.Replica, id)
	if err != nil {
		if err != Error.StatusNotFound {
			log.DB.Error("Failed to get "+t.entity+" "+id.String(), err.Error(), nil)
		}
		return nil, err
	}

	log.DB.Trace("Getting "+t.entity+" "+id.String()+": OK", nil)

	return e, nil
}

// Reloads entity from the primary, so it has all of its related records.
func (t *Table[T]) reload(ctx context.Context, e *T) *Error.Status {
	loaded, err := t.get(ctx, connection.Primary, t.schema.ID(e))
	if err != nil {
		return err
	}
	*e = *loaded
	return nil
}

func (t *Table[T]) Create(ctx context.Context, e *T) *Error.Status {
	id := t.schema.ID(e).String()

	log.DB.Info("Creating "+t.entity+" "+id+"...", nil)

	if _, err := executor.Exec(ctx, connection.Primary, t.schema.Insert(e)); err != nil {
		log.DB.Error("Failed to create "+t.entity+" "+id, err.Error(), nil)
		return err
	}

	if err := t.reload(ctx, e); err != nil {
		return err
	}

	log.DB.Info("Creating "+t.entity+" "+id+": OK", nil)

	return nil
}

func (t *Table[T]) Update(ctx context.Context, e *T) *Error.Status {
	id := t.schema.ID(e).String()

	log.DB.Info("Updating "+t.entity+" "+id+"...", nil)

	affected, err := executor.Exec(ctx, connection.Primary, t.schema.Update(e))
	if err != nil {
		log.DB.Error("Failed to update "+t.entity+" "+id, err.Error(), nil)
		return err
	}
	if affected == 0 {
		return Error.StatusNotFound
	}

	if err := t.reload(ctx, e); err != nil {
		return err
	}

	log.DB.Info("Updating "+t.entity+" "+id+": OK", nil)

	return nil
}

func (t *Table[T]) Delete(ctx context.Context, id uuid.UUID) *Error.Status {
	log.DB.Info("Deleting "+t.entity+" "+id.String()+"...", nil)

	queries := t.schema.Delete(id)

	var affected int64
	var err *Error.Status

	if len(queries) == 1 {
		affected, err = executor.Exec(ctx, connection.Primary, queries[0])
	} else {
		var all []int64
		all, err = transaction.New(queries...).Exec(ctx, connection.Primary)
		if err == nil {
			affected = all[len(all)-1]
		}
	}

	if err != nil {
		log.DB.Error("Failed to delete "+t.entity+" "+id.String(), err.Error(), nil)
		return err
	}
	if affected == 0 {
		return Error.StatusNotFound
	}

	log.DB.Info("Deleting "+t.entity+" "+id.String()+": OK", nil)

	return nil
}
