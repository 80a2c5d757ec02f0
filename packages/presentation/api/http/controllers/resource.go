package controller

import (
	"context"
	Error "hoa/packages/common/errors"
	"hoa/packages/core"
	"hoa/packages/core/sieve"
	"hoa/packages/infrastructure/cache"
	"hoa/packages/presentation/api/http/request"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const IDParam = "id"

// Generic CRUD handlers of entity T with create/update payload P.
type Resource[T any, P any] struct {
	Processor *sieve.Processor[T]
	Repo      core.Repository[T]

	// Creates new entity from validated payload on behalf of the user.
	New func(payload *P, userID uuid.UUID) *T
	// Applies validated payload to existing entity.
	Apply func(entity *T, payload *P)
	// Additional payload checks, optional.
	Validate func(payload *P) *Error.Status
	// Called after entity was created, optional.
	AfterCreate func(ctx echo.Context, entity *T)
}

func (r *Resource[T, P]) entity() string {
	return r.Processor.Registry().Entity()
}

func (r *Resource[T, P]) invalidate(ctx echo.Context) {
	if err := cache.Invalidate(r.entity()); err != nil {
		Logger.Error("Failed to invalidate cached "+r.entity()+" pages", err.Error(), request.FindMetadata(ctx))
	}
}

func (r *Resource[T, P]) bind(ctx echo.Context) (*P, error) {
	payload, err := BindAndValidate[P](ctx)
	if err != nil {
		return nil, err
	}

	if r.Validate != nil {
		if err := r.Validate(payload); err != nil {
			return nil, ConvertErrorStatusToHTTP(err)
		}
	}

	return payload, nil
}

// Returns entity identified by path parameter and its id.
func (r *Resource[T, P]) find(ctx echo.Context) (*T, uuid.UUID, error) {
	id, err := ParseID(ctx, IDParam)
	if err != nil {
		return nil, uuid.Nil, err
	}

	entity, e := r.Repo.GetByID(ctx.Request().Context(), id)
	if e != nil {
		return nil, uuid.Nil, ConvertErrorStatusToHTTP(e)
	}

	return entity, id, nil
}

func (r *Resource[T, P]) List(ctx echo.Context) error {
	return List(ctx, r.Processor, r.Repo)
}

// Returns handler which lists entities that belong to the parent identified by path parameter.
// Responds with 404 if parent doesn't exist.
// Query parameters are validated before parent is looked up.
func (r *Resource[T, P]) ListOf(
	exists func(ctx context.Context, id uuid.UUID) *Error.Status,
	scope func(parentID uuid.UUID) sieve.FilterClause,
) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		parentID, err := ParseID(ctx, IDParam)
		if err != nil {
			return err
		}

		conf, err := listConfig(ctx, r.entity())
		if err != nil {
			return err
		}

		q, err := parseListQuery(ctx, conf, r.Processor, []sieve.FilterClause{scope(parentID)})
		if err != nil {
			return err
		}

		if err := exists(ctx.Request().Context(), parentID); err != nil {
			return ConvertErrorStatusToHTTP(err)
		}

		return respondWithPage(ctx, r.Processor, r.Repo, q)
	}
}

func (r *Resource[T, P]) Get(ctx echo.Context) error {
	entity, _, err := r.find(ctx)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, entity)
}

func (r *Resource[T, P]) Create(ctx echo.Context) error {
	reqMeta := request.FindMetadata(ctx)

	payload, err := r.bind(ctx)
	if err != nil {
		return err
	}

	userID, err := UserID(ctx)
	if err != nil {
		return err
	}

	entity := r.New(payload, userID)

	Logger.Trace("Creating "+r.entity()+"...", reqMeta)

	if err := r.Repo.Create(ctx.Request().Context(), entity); err != nil {
		return ConvertErrorStatusToHTTP(err)
	}

	r.invalidate(ctx)

	Logger.Info("Created "+r.entity(), reqMeta)

	if r.AfterCreate != nil {
		r.AfterCreate(ctx, entity)
	}

	return ctx.JSON(http.StatusCreated, entity)
}

func (r *Resource[T, P]) Update(ctx echo.Context) error {
	reqMeta := request.FindMetadata(ctx)

	entity, _, err := r.find(ctx)
	if err != nil {
		return err
	}

	if err := Authorize(ctx, entity); err != nil {
		return err
	}

	payload, err := r.bind(ctx)
	if err != nil {
		return err
	}

	r.Apply(entity, payload)

	Logger.Trace("Updating "+r.entity()+"...", reqMeta)

	if err := r.Repo.Update(ctx.Request().Context(), entity); err != nil {
		return ConvertErrorStatusToHTTP(err)
	}

	r.invalidate(ctx)

	Logger.Info("Updated "+r.entity(), reqMeta)

	return ctx.JSON(http.StatusOK, entity)
}

func (r *Resource[T, P]) Delete(ctx echo.Context) error {
	reqMeta := request.FindMetadata(ctx)

	entity, id, err := r.find(ctx)
	if err != nil {
		return err
	}

	if err := Authorize(ctx, entity); err != nil {
		return err
	}

	Logger.Trace("Deleting "+r.entity()+"...", reqMeta)

	if err := r.Repo.Delete(ctx.Request().Context(), id); err != nil {
		return ConvertErrorStatusToHTTP(err)
	}

	r.invalidate(ctx)

	Logger.Info("Deleted "+r.entity(), reqMeta)

	return ctx.NoContent(http.StatusNoContent)
}
