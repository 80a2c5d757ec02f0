package paging

import (
	"context"
	"hoa/packages/common/logger"
	"hoa/packages/core/sieve"
	"strconv"
)

var log = logger.NewSource("PAGING", logger.Default)

// Data source which is able to filter, sort and slice entities by itself.
type Source[T any] interface {
	// Returns entities at [offset, offset+limit) of the filtered and sorted sequence
	// together with the total number of entities that satisfy filters.
	// If offset is past the end, then returns empty slice, but total still must be valid.
	Page(ctx context.Context, filters sieve.FilterExpression, sorts sieve.SortSpec, offset int, limit int) ([]T, int, error)
}

// In-memory Source over the fixed entities.
type Slice[T any] struct {
	processor *sieve.Processor[T]
	entities  []T
}

func NewSlice[T any](processor *sieve.Processor[T], entities []T) *Slice[T] {
	return &Slice[T]{
		processor: processor,
		entities:  entities,
	}
}

func (s *Slice[T]) Page(ctx context.Context, filters sieve.FilterExpression, sorts sieve.SortSpec, offset int, limit int) ([]T, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	result := s.processor.Apply(s.entities, filters, sorts)
	total := len(result)

	if offset >= total {
		return []T{}, total, nil
	}

	return result[offset:min(offset+limit, total)], total, nil
}

// Fetches requested page from the source.
// Errors of source are returned as is.
func PaginateSource[T any](
	ctx context.Context,
	source Source[T],
	filters sieve.FilterExpression,
	sorts sieve.SortSpec,
	req Request,
	config *Config,
) (*Page[T], error) {
	page, pageSize := config.resolve(req)

	items, total, err := source.Page(ctx, filters, sorts, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}

	if items == nil {
		items = []T{}
	}

	meta := NewMetadata(page, pageSize, total)

	if page > meta.TotalPages && total != 0 {
		log.Trace("Requested page is out of range ("+strconv.Itoa(page)+" > "+strconv.Itoa(meta.TotalPages)+")", nil)
	}

	return &Page[T]{Items: items, Metadata: meta}, nil
}

// Filters, sorts and slices entities in memory.
func Paginate[T any](
	processor *sieve.Processor[T],
	entities []T,
	filters sieve.FilterExpression,
	sorts sieve.SortSpec,
	req Request,
	config *Config,
) *Page[T] {
	page, err := PaginateSource(context.Background(), NewSlice(processor, entities), filters, sorts, req, config)
	if err != nil {
		// Slice fails only if context is canceled
		log.Panic("Failed to paginate entities", err.Error(), nil)
	}
	return page
}
