package controller

import (
	"hoa/packages/common/config"
	"hoa/packages/common/encoding/json"
	"hoa/packages/core/paging"
	"hoa/packages/core/sieve"
	"hoa/packages/infrastructure/cache"
	"hoa/packages/presentation/api/http/request"
	"net/http"
	"slices"
	"strconv"

	"github.com/labstack/echo/v4"
)

// Response header with JSON encoded paging.Metadata of list responses.
const PaginationHeader = "X-Pagination"

var pagingConfigFor = func(entity string) (*paging.Config, error) {
	return config.Paging.For(entity)
}

func listConfig(ctx echo.Context, entity string) (*paging.Config, error) {
	conf, err := pagingConfigFor(entity)
	if err != nil {
		Logger.Error("Invalid paging configuration of "+entity, err.Error(), request.FindMetadata(ctx))
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "Internal Server Error")
	}
	return conf, nil
}

// Responds with the requested page of entities, filtered and sorted by query parameters.
// Scope clauses are always applied before the requested filters.
func List[T any](
	ctx echo.Context,
	processor *sieve.Processor[T],
	source paging.Source[T],
	scope ...sieve.FilterClause,
) error {
	conf, err := listConfig(ctx, processor.Registry().Entity())
	if err != nil {
		return err
	}

	return list(ctx, conf, processor, source, scope)
}

func list[T any](
	ctx echo.Context,
	conf *paging.Config,
	processor *sieve.Processor[T],
	source paging.Source[T],
	scope []sieve.FilterClause,
) error {
	q, err := parseListQuery(ctx, conf, processor, scope)
	if err != nil {
		return err
	}

	return respondWithPage(ctx, processor, source, q)
}

// Filters (scope included), sorts and resolved page request of a list request.
type listQuery struct {
	filters sieve.FilterExpression
	sorts   sieve.SortSpec
	req     paging.Request
	conf    *paging.Config
}

// Parses query parameters of the list request.
// Doesn't touch any data, so malformed requests are rejected before data access.
func parseListQuery[T any](
	ctx echo.Context,
	conf *paging.Config,
	processor *sieve.Processor[T],
	scope []sieve.FilterClause,
) (*listQuery, error) {
	query := ctx.QueryParams()

	filters, err := processor.ParseFilters(query.Get(sieve.FilterParam))
	if err != nil {
		return nil, err
	}

	sorts, err := processor.ParseSorts(query.Get(sieve.SortParam))
	if err != nil {
		return nil, err
	}

	req, err := paging.ParseRequest(query.Get(sieve.PageParam), query.Get(sieve.PageSizeParam))
	if err != nil {
		return nil, err
	}

	return &listQuery{
		filters: append(slices.Clone(sieve.FilterExpression(scope)), filters...),
		sorts:   sorts,
		req:     conf.Resolve(req),
		conf:    conf,
	}, nil
}

func respondWithPage[T any](
	ctx echo.Context,
	processor *sieve.Processor[T],
	source paging.Source[T],
	q *listQuery,
) error {
	reqMeta := request.FindMetadata(ctx)
	entity := processor.Registry().Entity()

	Logger.Trace("Listing "+entity+"...", reqMeta)

	// Generation must be taken before reading the source
	key := cache.ListKey(entity, cache.Generation(entity), q.filters, q.sorts, q.req)

	var meta paging.Metadata

	items, total, hit := cache.GetPage[T](key)
	if hit {
		Logger.Trace("Listing "+entity+": cache hit", reqMeta)
		meta = paging.NewMetadata(q.req.Page, q.req.PageSize, total)
	} else {
		page, err := paging.PaginateSource(ctx.Request().Context(), source, q.filters, q.sorts, q.req, q.conf)
		if err != nil {
			Logger.Error("Failed to list "+entity, err.Error(), reqMeta)
			return convertError(err)
		}

		items, meta = page.Items, page.Metadata

		cache.SetPage(key, items, meta.TotalCount)
	}

	meta = withLinks(ctx, meta)

	header, err := json.MarshalString(meta)
	if err != nil {
		Logger.Error("Failed to encode pagination metadata", err.Error(), reqMeta)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal Server Error")
	}

	ctx.Response().Header().Set(PaginationHeader, header)

	Logger.Trace("Listing "+entity+": OK", reqMeta)

	return ctx.JSON(http.StatusOK, items)
}

// Sets links to the previous and next pages, other query parameters are preserved.
func withLinks(ctx echo.Context, meta paging.Metadata) paging.Metadata {
	if meta.PreviousPageExists {
		meta.PreviousPageLink = pageLink(ctx, meta.CurrentPage-1, meta.PageSize)
	}
	if meta.NextPageExists {
		meta.NextPageLink = pageLink(ctx, meta.CurrentPage+1, meta.PageSize)
	}
	return meta
}

func pageLink(ctx echo.Context, page int, pageSize int) string {
	u := *ctx.Request().URL

	query := u.Query()
	query.Set(sieve.PageParam, strconv.Itoa(page))
	query.Set(sieve.PageSizeParam, strconv.Itoa(pageSize))

	u.RawQuery = query.Encode()

	return u.RequestURI()
}
