package paging_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"hoa/packages/core/paging"
	"hoa/packages/core/sieve"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type notice struct {
	Title   string
	Email   string
	Created time.Time
}

var processor = sieve.New(
	sieve.NewRegistry[notice]("notice", "notice").
		String("Title", "title", func(n notice) string { return n.Title }).
		String("Email", "email", func(n notice) string { return n.Email }).
		Time("Created", "created_at", func(n notice) time.Time { return n.Created }),
)

var base = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// Notices "Notice 1"..."Notice n", created one hour after another.
func notices(n int) []notice {
	r := make([]notice, n)
	for i := range n {
		r[i] = notice{
			Title:   fmt.Sprintf("Notice %d", i+1),
			Email:   fmt.Sprintf("resident%d@example.com", i+1),
			Created: base.Add(time.Duration(i) * time.Hour),
		}
	}
	return r
}

func titles(items []notice) []string {
	r := make([]string, len(items))
	for i, item := range items {
		r[i] = item.Title
	}
	return r
}

func mustConfig(t *testing.T, defaultPageSize, maxPageSize int) *paging.Config {
	t.Helper()
	config, err := paging.NewConfig(defaultPageSize, maxPageSize)
	require.NoError(t, err)
	return config
}

func paginate(t *testing.T, entities []notice, filters, sorts string, req paging.Request, config *paging.Config) *paging.Page[notice] {
	t.Helper()

	expr, err := processor.ParseFilters(filters)
	require.NoError(t, err)
	spec, err := processor.ParseSorts(sorts)
	require.NoError(t, err)

	return paging.Paginate(processor, entities, expr, spec, req, config)
}

func TestPaginate(t *testing.T) {
	t.Run("case-insensitive contains filter", func(t *testing.T) {
		page := paginate(t, notices(7), "Title@=*1", "", paging.Request{Page: 1, PageSize: 10}, mustConfig(t, 5, 10))

		assert.Equal(t, []string{"Notice 1"}, titles(page.Items))
		assert.Equal(t, paging.Metadata{
			CurrentPage: 1,
			PageSize:    10,
			TotalCount:  1,
			TotalPages:  1,
		}, page.Metadata)
	})

	t.Run("middle page of sorted entities", func(t *testing.T) {
		page := paginate(t, notices(11), "", "-Created", paging.Request{Page: 2, PageSize: 5}, mustConfig(t, 5, 10))

		assert.Equal(t, []string{"Notice 6", "Notice 5", "Notice 4", "Notice 3", "Notice 2"}, titles(page.Items))
		assert.Equal(t, paging.Metadata{
			CurrentPage:        2,
			PageSize:           5,
			TotalCount:         11,
			TotalPages:         3,
			PreviousPageExists: true,
			NextPageExists:     true,
		}, page.Metadata)
	})

	t.Run("no matches", func(t *testing.T) {
		page := paginate(t, notices(7), "Email@=zzznomatch", "", paging.Request{}, mustConfig(t, 5, 10))

		assert.NotNil(t, page.Items)
		assert.Empty(t, page.Items)
		assert.Equal(t, 0, page.Metadata.TotalCount)
		assert.Equal(t, 0, page.Metadata.TotalPages)
		assert.False(t, page.Metadata.PreviousPageExists)
		assert.False(t, page.Metadata.NextPageExists)
	})

	t.Run("page out of range", func(t *testing.T) {
		page := paginate(t, notices(10), "", "", paging.Request{Page: 5, PageSize: 5}, mustConfig(t, 5, 10))

		assert.NotNil(t, page.Items)
		assert.Empty(t, page.Items)
		assert.Equal(t, 5, page.Metadata.CurrentPage)
		assert.Equal(t, 2, page.Metadata.TotalPages)
		assert.Equal(t, 10, page.Metadata.TotalCount)
		assert.True(t, page.Metadata.PreviousPageExists)
		assert.False(t, page.Metadata.NextPageExists)
	})

	t.Run("too large page size falls back to default", func(t *testing.T) {
		page := paginate(t, notices(20), "", "", paging.Request{Page: 1, PageSize: 1000}, mustConfig(t, 5, 10))

		assert.Len(t, page.Items, 5)
		assert.Equal(t, 5, page.Metadata.PageSize)
		assert.Equal(t, 4, page.Metadata.TotalPages)
	})

	t.Run("non-positive page is coerced to first", func(t *testing.T) {
		for _, p := range []int{0, -3} {
			page := paginate(t, notices(7), "", "", paging.Request{Page: p}, mustConfig(t, 5, 10))

			assert.Equal(t, 1, page.Metadata.CurrentPage)
			assert.Equal(t, []string{"Notice 1", "Notice 2", "Notice 3", "Notice 4", "Notice 5"}, titles(page.Items))
			assert.False(t, page.Metadata.PreviousPageExists)
			assert.True(t, page.Metadata.NextPageExists)
		}
	})

	t.Run("last partial page", func(t *testing.T) {
		page := paginate(t, notices(11), "", "", paging.Request{Page: 3, PageSize: 5}, mustConfig(t, 5, 10))

		assert.Equal(t, []string{"Notice 11"}, titles(page.Items))
		assert.True(t, page.Metadata.PreviousPageExists)
		assert.False(t, page.Metadata.NextPageExists)
	})

	t.Run("pages concatenate into filtered and sorted sequence", func(t *testing.T) {
		config := mustConfig(t, 5, 10)
		entities := notices(23)
		expected := titles(processor.Apply(entities, mustFilters(t, "Title!_-=7"), mustSorts(t, "-Title")))

		for _, pageSize := range []int{1, 3, 5, 7, 10} {
			all := []string{}

			first := paginate(t, entities, "Title!_-=7", "-Title", paging.Request{Page: 1, PageSize: pageSize}, config)
			for p := 1; p <= first.Metadata.TotalPages; p++ {
				page := paginate(t, entities, "Title!_-=7", "-Title", paging.Request{Page: p, PageSize: pageSize}, config)
				assert.LessOrEqual(t, len(page.Items), pageSize)
				all = append(all, titles(page.Items)...)
			}

			assert.Len(t, expected, first.Metadata.TotalCount)
			assert.Equal(t, expected, all, "page size %d", pageSize)
		}
	})
}

func mustFilters(t *testing.T, raw string) sieve.FilterExpression {
	t.Helper()
	expr, err := processor.ParseFilters(raw)
	require.NoError(t, err)
	return expr
}

func mustSorts(t *testing.T, raw string) sieve.SortSpec {
	t.Helper()
	spec, err := processor.ParseSorts(raw)
	require.NoError(t, err)
	return spec
}

func TestUnknownFieldIsRejectedBeforeReading(t *testing.T) {
	_, err := processor.ParseFilters("Bogus==x")
	require.Error(t, err)

	parseErr, ok := sieve.IsParseError(err)
	require.True(t, ok)
	assert.Equal(t, "Bogus", parseErr.Field)
	assert.Contains(t, err.Error(), "Bogus")
}

func TestConfig(t *testing.T) {
	cases := []struct {
		name            string
		defaultPageSize int
		maxPageSize     int
		valid           bool
	}{
		{"valid", 5, 10, true},
		{"default equals max", 10, 10, true},
		{"missing default", 0, 10, false},
		{"negative max", 5, -1, false},
		{"default greater than max", 20, 10, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			config, err := paging.NewConfig(c.defaultPageSize, c.maxPageSize)

			if c.valid {
				require.NoError(t, err)
				assert.Equal(t, c.defaultPageSize, config.DefaultPageSize)
				return
			}

			assert.Nil(t, config)
			var configErr *paging.ConfigurationError
			assert.True(t, errors.As(err, &configErr))
		})
	}
}

func TestPageSize(t *testing.T) {
	config := mustConfig(t, 5, 10)

	cases := map[int]int{
		-1:   5,
		0:    5,
		1:    1,
		7:    7,
		10:   10,
		11:   5,
		1000: 5,
	}

	for requested, expected := range cases {
		assert.Equal(t, expected, config.PageSize(requested), "requested %d", requested)
	}
}

func TestResolve(t *testing.T) {
	config := mustConfig(t, 5, 10)

	assert.Equal(t, paging.Request{Page: 1, PageSize: 5}, config.Resolve(paging.Request{}))
	assert.Equal(t, paging.Request{Page: 1, PageSize: 5}, config.Resolve(paging.Request{Page: -3, PageSize: 50}))
	assert.Equal(t, paging.Request{Page: 4, PageSize: 7}, config.Resolve(paging.Request{Page: 4, PageSize: 7}))
}

func TestParseRequest(t *testing.T) {
	t.Run("empty values are unset", func(t *testing.T) {
		req, err := paging.ParseRequest("", " ")
		require.NoError(t, err)
		assert.Equal(t, paging.Request{}, req)
	})

	t.Run("numbers", func(t *testing.T) {
		req, err := paging.ParseRequest("3", "25")
		require.NoError(t, err)
		assert.Equal(t, paging.Request{Page: 3, PageSize: 25}, req)
	})

	cases := []struct {
		page     string
		pageSize string
		param    string
	}{
		{"first", "10", sieve.PageParam},
		{"1", "ten", sieve.PageSizeParam},
		{"1.5", "", sieve.PageParam},
		{"99999999999999999999", "", sieve.PageParam},
	}

	for _, c := range cases {
		t.Run(c.page+"/"+c.pageSize, func(t *testing.T) {
			_, err := paging.ParseRequest(c.page, c.pageSize)

			parseErr, ok := sieve.IsParseError(err)
			require.True(t, ok)
			assert.Equal(t, c.param, parseErr.Param)
			assert.Equal(t, c.param, parseErr.Field)
		})
	}
}

func TestNewMetadata(t *testing.T) {
	cases := []struct {
		page, pageSize, total int
		totalPages            int
		prev, next            bool
	}{
		{1, 5, 0, 0, false, false},
		{1, 5, 5, 1, false, false},
		{1, 5, 6, 2, false, true},
		{2, 5, 6, 2, true, false},
		{3, 5, 6, 2, true, false},
		{2, 3, 9, 3, true, true},
	}

	for _, c := range cases {
		t.Run(fmt.Sprintf("%d-%d-%d", c.page, c.pageSize, c.total), func(t *testing.T) {
			meta := paging.NewMetadata(c.page, c.pageSize, c.total)

			assert.Equal(t, c.totalPages, meta.TotalPages)
			assert.Equal(t, c.prev, meta.PreviousPageExists)
			assert.Equal(t, c.next, meta.NextPageExists)
		})
	}
}

type failingSource struct {
	err error
}

func (s failingSource) Page(context.Context, sieve.FilterExpression, sieve.SortSpec, int, int) ([]notice, int, error) {
	return nil, 0, s.err
}

type recordingSource struct {
	offset, limit int
}

func (s *recordingSource) Page(_ context.Context, _ sieve.FilterExpression, _ sieve.SortSpec, offset int, limit int) ([]notice, int, error) {
	s.offset, s.limit = offset, limit
	return nil, 42, nil
}

func TestPaginateSource(t *testing.T) {
	config := mustConfig(t, 5, 10)

	t.Run("source errors are returned as is", func(t *testing.T) {
		sourceErr := errors.New("connection refused")

		page, err := paging.PaginateSource[notice](context.Background(), failingSource{sourceErr}, nil, nil, paging.Request{}, config)

		assert.Nil(t, page)
		assert.Same(t, sourceErr, err)
	})

	t.Run("offset and limit", func(t *testing.T) {
		source := &recordingSource{}

		page, err := paging.PaginateSource[notice](context.Background(), source, nil, nil, paging.Request{Page: 3, PageSize: 7}, config)
		require.NoError(t, err)

		assert.Equal(t, 14, source.offset)
		assert.Equal(t, 7, source.limit)
		assert.NotNil(t, page.Items)
		assert.Equal(t, 42, page.Metadata.TotalCount)
		assert.Equal(t, 6, page.Metadata.TotalPages)
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := paging.PaginateSource[notice](ctx, paging.NewSlice(processor, notices(3)), nil, nil, paging.Request{}, config)

		assert.ErrorIs(t, err, context.Canceled)
	})
}
