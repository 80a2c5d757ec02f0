package controller

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
	"hoa/packages/common/encoding/json"
	Error "hoa/packages/common/errors"
	"hoa/packages/core/paging"
	"hoa/packages/core/sieve"
	"hoa/packages/infrastructure/cache"
	"hoa/packages/infrastructure/token"
	"hoa/packages/presentation/api/http/middleware"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type notice struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	AuthorID uuid.UUID `json:"authorId"`
}

func (n *notice) CreatedBy() uuid.UUID {
	return n.AuthorID
}

type noticePayload struct {
	Title string `json:"title" validate:"required,max=20"`
}

var noticeProcessor = sieve.New(
	sieve.NewRegistry[notice]("notice", "notices").
		UUID("Id", "id", func(n notice) uuid.UUID { return n.ID }).
		String("Title", "title", func(n notice) string { return n.Title }).
		UUID("AuthorId", "author_id", func(n notice) uuid.UUID { return n.AuthorID }),
)

type memoryRepo struct {
	mu       sync.Mutex
	notices  []notice
	failWith error
}

func (r *memoryRepo) Page(ctx context.Context, filters sieve.FilterExpression, sorts sieve.SortSpec, offset int, limit int) ([]notice, int, error) {
	if r.failWith != nil {
		return nil, 0, r.failWith
	}

	r.mu.Lock()
	snapshot := slices.Clone(r.notices)
	r.mu.Unlock()

	return paging.NewSlice(noticeProcessor, snapshot).Page(ctx, filters, sorts, offset, limit)
}

func (r *memoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*notice, *Error.Status) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, n := range r.notices {
		if n.ID == id {
			return &n, nil
		}
	}
	return nil, Error.StatusNotFound
}

func (r *memoryRepo) Create(ctx context.Context, n *notice) *Error.Status {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.notices = append(r.notices, *n)
	return nil
}

func (r *memoryRepo) Update(ctx context.Context, n *notice) *Error.Status {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.notices {
		if r.notices[i].ID == n.ID {
			r.notices[i] = *n
			return nil
		}
	}
	return Error.StatusNotFound
}

func (r *memoryRepo) Delete(ctx context.Context, id uuid.UUID) *Error.Status {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.notices = slices.DeleteFunc(r.notices, func(n notice) bool { return n.ID == id })
	return nil
}

func newRepo(authorID uuid.UUID, n int) *memoryRepo {
	repo := new(memoryRepo)
	for i := range n {
		repo.notices = append(repo.notices, notice{
			ID:       uuid.New(),
			Title:    fmt.Sprintf("Notice %02d", i+1),
			AuthorID: authorID,
		})
	}
	return repo
}

func titles(t *testing.T, body string) []string {
	t.Helper()

	notices, err := json.Unmarshal[[]notice]([]byte(body))
	require.NoError(t, err)

	result := make([]string, len(notices))
	for i, n := range notices {
		result[i] = n.Title
	}
	return result
}

func TestList(t *testing.T) {
	conf, err := paging.NewConfig(5, 10)
	require.NoError(t, err)

	authorID := uuid.New()
	repo := newRepo(authorID, 12)

	serve := func(t *testing.T, target string, scope ...sieve.FilterClause) (*httptest.ResponseRecorder, error) {
		t.Helper()

		rec := httptest.NewRecorder()
		ctx := echo.New().NewContext(httptest.NewRequest(http.MethodGet, target, nil), rec)

		return rec, list(ctx, conf, noticeProcessor, repo, scope)
	}

	metadata := func(t *testing.T, rec *httptest.ResponseRecorder) paging.Metadata {
		t.Helper()

		meta, err := json.Unmarshal[paging.Metadata]([]byte(rec.Header().Get(PaginationHeader)))
		require.NoError(t, err)
		return meta
	}

	t.Run("middle page", func(t *testing.T) {
		rec, err := serve(t, "/v1/notices?sorts=Title&page=2")
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []string{"Notice 06", "Notice 07", "Notice 08", "Notice 09", "Notice 10"}, titles(t, rec.Body.String()))

		meta := metadata(t, rec)
		assert.Equal(t, 2, meta.CurrentPage)
		assert.Equal(t, 5, meta.PageSize)
		assert.Equal(t, 12, meta.TotalCount)
		assert.Equal(t, 3, meta.TotalPages)
		assert.True(t, meta.PreviousPageExists)
		assert.True(t, meta.NextPageExists)
		assert.Equal(t, "/v1/notices?page=1&pageSize=5&sorts=Title", meta.PreviousPageLink)
		assert.Equal(t, "/v1/notices?page=3&pageSize=5&sorts=Title", meta.NextPageLink)
	})

	t.Run("defaults", func(t *testing.T) {
		rec, err := serve(t, "/v1/notices?sorts=-Title")
		require.NoError(t, err)

		assert.Equal(t, []string{"Notice 12", "Notice 11", "Notice 10", "Notice 09", "Notice 08"}, titles(t, rec.Body.String()))

		meta := metadata(t, rec)
		assert.Equal(t, 1, meta.CurrentPage)
		assert.False(t, meta.PreviousPageExists)
		assert.Empty(t, meta.PreviousPageLink)
	})

	t.Run("filters", func(t *testing.T) {
		rec, err := serve(t, "/v1/notices?filters=Title@=1&sorts=Title&pageSize=10")
		require.NoError(t, err)

		assert.Equal(t, []string{"Notice 01", "Notice 10", "Notice 11", "Notice 12"}, titles(t, rec.Body.String()))

		meta := metadata(t, rec)
		assert.Equal(t, 4, meta.TotalCount)
		assert.Equal(t, 1, meta.TotalPages)
		assert.False(t, meta.NextPageExists)
	})

	t.Run("too large page size", func(t *testing.T) {
		rec, err := serve(t, "/v1/notices?pageSize=50")
		require.NoError(t, err)

		assert.Len(t, titles(t, rec.Body.String()), 5)
		assert.Equal(t, 5, metadata(t, rec).PageSize)
	})

	t.Run("page out of range", func(t *testing.T) {
		rec, err := serve(t, "/v1/notices?page=9")
		require.NoError(t, err)

		assert.JSONEq(t, "[]", rec.Body.String())

		meta := metadata(t, rec)
		assert.Equal(t, 9, meta.CurrentPage)
		assert.Equal(t, 12, meta.TotalCount)
		assert.False(t, meta.NextPageExists)
	})

	t.Run("scope", func(t *testing.T) {
		other := uuid.New()
		scoped := &memoryRepo{notices: append(slices.Clone(repo.notices), notice{ID: uuid.New(), Title: "Other", AuthorID: other})}

		rec := httptest.NewRecorder()
		ctx := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/v1/notices?filters=Title@=Ot", nil), rec)

		scope := sieve.FilterClause{Field: "AuthorId", Operator: sieve.Equals, Value: other}
		require.NoError(t, list(ctx, conf, noticeProcessor, scoped, []sieve.FilterClause{scope}))

		assert.Equal(t, []string{"Other"}, titles(t, rec.Body.String()))

		rec = httptest.NewRecorder()
		ctx = echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/v1/notices?filters=Title@=Notice", nil), rec)
		require.NoError(t, list(ctx, conf, noticeProcessor, scoped, []sieve.FilterClause{scope}))

		assert.JSONEq(t, "[]", rec.Body.String())
	})

	cases := []struct {
		name   string
		target string
		param  string
	}{
		{"unknown filter field", "/v1/notices?filters=Unknown==1", sieve.FilterParam},
		{"unknown sort field", "/v1/notices?sorts=-Unknown", sieve.SortParam},
		{"invalid page", "/v1/notices?page=abc", sieve.PageParam},
		{"invalid page size", "/v1/notices?pageSize=1.5", sieve.PageSizeParam},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := serve(t, c.target)
			require.Error(t, err)

			parseErr, ok := sieve.IsParseError(err)
			require.True(t, ok)
			assert.Equal(t, c.param, parseErr.Param)
		})
	}

	t.Run("source failure", func(t *testing.T) {
		rec := httptest.NewRecorder()
		ctx := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/v1/notices", nil), rec)

		err := list(ctx, conf, noticeProcessor, &memoryRepo{failWith: Error.StatusTimeout}, nil)

		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusRequestTimeout, httpErr.Code)
	})

	t.Run("cached page", func(t *testing.T) {
		c := &memoryCache{data: map[string]string{}}
		prev := cache.Client
		cache.Client = c
		t.Cleanup(func() { cache.Client = prev })

		cached := newRepo(authorID, 7)

		first := httptest.NewRecorder()
		require.NoError(t, list(echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/v1/notices?page=2", nil), first), conf, noticeProcessor, cached, nil))

		cached.failWith = Error.StatusTimeout

		second := httptest.NewRecorder()
		require.NoError(t, list(echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/v1/notices?page=2&pageSize=5", nil), second), conf, noticeProcessor, cached, nil))

		assert.Equal(t, first.Body.String(), second.Body.String())

		meta := metadata(t, second)
		assert.Equal(t, 2, meta.CurrentPage)
		assert.Equal(t, 7, meta.TotalCount)
		assert.Equal(t, 2, meta.TotalPages)
		assert.Equal(t, "/v1/notices?page=1&pageSize=5", meta.PreviousPageLink)

		for key, raw := range c.data {
			if strings.Contains(key, ":list:") {
				assert.NotContains(t, raw, "currentPage")
				assert.Contains(t, raw, `"totalCount":7`)
			}
		}
	})
}

type memoryCache struct {
	mu   sync.Mutex
	data map[string]string
}

func (c *memoryCache) Connect()             {}
func (c *memoryCache) Close() *Error.Status { return nil }
func (c *memoryCache) IsConnected() bool    { return true }

func (c *memoryCache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok
}

func (c *memoryCache) Set(key string, value any) *Error.Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch v := value.(type) {
	case string:
		c.data[key] = v
	case []byte:
		c.data[key] = string(v)
	default:
		return Error.StatusInternalError
	}
	return nil
}

func (c *memoryCache) Delete(keys ...string) *Error.Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func (c *memoryCache) DeletePattern(pattern string) *Error.Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range c.data {
		if strings.HasPrefix(k, prefix) {
			delete(c.data, k)
		}
	}
	return nil
}

func (c *memoryCache) FlushAll() *Error.Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.data)
	return nil
}

type session struct {
	key ed25519.PrivateKey
}

func (s session) token(t *testing.T, userID uuid.UUID, roles ...string) string {
	t.Helper()

	now := time.Now()

	signed, err := jwt.NewWithClaims(jwt.SigningMethodEdDSA, token.Claims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
		},
	}).SignedString(s.key)
	require.NoError(t, err)

	return signed
}

func TestResource(t *testing.T) {
	public, private, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	s := session{key: private}

	authorID := uuid.New()
	residentID := uuid.New()
	boardID := uuid.New()

	repo := newRepo(authorID, 1)
	existing := repo.notices[0]

	created := []uuid.UUID{}

	resource := &Resource[notice, noticePayload]{
		Processor: noticeProcessor,
		Repo:      repo,
		New: func(p *noticePayload, userID uuid.UUID) *notice {
			return &notice{ID: uuid.New(), Title: p.Title, AuthorID: userID}
		},
		Apply: func(n *notice, p *noticePayload) {
			n.Title = p.Title
		},
		Validate: func(p *noticePayload) *Error.Status {
			if p.Title == "forbidden" {
				return Error.NewStatusError("Forbidden title", http.StatusBadRequest)
			}
			return nil
		},
		AfterCreate: func(_ echo.Context, n *notice) {
			created = append(created, n.ID)
		},
	}

	router := echo.New()
	auth := middleware.Authenticate(public, "")

	router.GET("/notices/:id", resource.Get)
	router.POST("/notices", resource.Create, auth)
	router.PUT("/notices/:id", resource.Update, auth)
	router.DELETE("/notices/:id", resource.Delete, auth)

	do := func(method string, target string, body string, bearer string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		if bearer != "" {
			req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)
		}

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	t.Run("get", func(t *testing.T) {
		rec := do(http.MethodGet, "/notices/"+existing.ID.String(), "", "")
		assert.Equal(t, http.StatusOK, rec.Code)

		n, err := json.Unmarshal[notice](rec.Body.Bytes())
		require.NoError(t, err)
		assert.Equal(t, existing, n)

		assert.Equal(t, http.StatusBadRequest, do(http.MethodGet, "/notices/not-uuid", "", "").Code)
		assert.Equal(t, http.StatusNotFound, do(http.MethodGet, "/notices/"+uuid.NewString(), "", "").Code)
	})

	t.Run("create", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, do(http.MethodPost, "/notices", `{"title":"Pool"}`, "").Code)
		assert.Equal(t, http.StatusBadRequest, do(http.MethodPost, "/notices", `{"title":""}`, s.token(t, residentID)).Code)
		assert.Equal(t, http.StatusBadRequest, do(http.MethodPost, "/notices", `{"title":"forbidden"}`, s.token(t, residentID)).Code)
		assert.Empty(t, created)

		rec := do(http.MethodPost, "/notices", `{"title":"Pool"}`, s.token(t, residentID))
		require.Equal(t, http.StatusCreated, rec.Code)

		n, err := json.Unmarshal[notice](rec.Body.Bytes())
		require.NoError(t, err)
		assert.Equal(t, "Pool", n.Title)
		assert.Equal(t, residentID, n.AuthorID)
		assert.Equal(t, []uuid.UUID{n.ID}, created)

		stored, status := repo.GetByID(context.Background(), n.ID)
		require.Nil(t, status)
		assert.Equal(t, n, *stored)
	})

	t.Run("update", func(t *testing.T) {
		target := "/notices/" + existing.ID.String()

		assert.Equal(t, http.StatusUnauthorized, do(http.MethodPut, target, `{"title":"A"}`, "").Code)
		assert.Equal(t, http.StatusForbidden, do(http.MethodPut, target, `{"title":"A"}`, s.token(t, residentID)).Code)
		assert.Equal(t, http.StatusNotFound, do(http.MethodPut, "/notices/"+uuid.NewString(), `{"title":"A"}`, s.token(t, authorID)).Code)
		assert.Equal(t, http.StatusBadRequest, do(http.MethodPut, target, `{"title":""}`, s.token(t, authorID)).Code)

		rec := do(http.MethodPut, target, `{"title":"By author"}`, s.token(t, authorID))
		assert.Equal(t, http.StatusOK, rec.Code)

		rec = do(http.MethodPut, target, `{"title":"By board"}`, s.token(t, boardID, "resident", BoardRole))
		assert.Equal(t, http.StatusOK, rec.Code)

		stored, status := repo.GetByID(context.Background(), existing.ID)
		require.Nil(t, status)
		assert.Equal(t, "By board", stored.Title)
		assert.Equal(t, authorID, stored.AuthorID)
	})

	t.Run("delete", func(t *testing.T) {
		target := "/notices/" + existing.ID.String()

		assert.Equal(t, http.StatusForbidden, do(http.MethodDelete, target, "", s.token(t, residentID)).Code)
		assert.Equal(t, http.StatusBadRequest, do(http.MethodDelete, "/notices/42", "", s.token(t, authorID)).Code)

		before := len(repo.notices)

		assert.Equal(t, http.StatusNoContent, do(http.MethodDelete, target, "", s.token(t, authorID)).Code)
		assert.Len(t, repo.notices, before-1)

		_, status := repo.GetByID(context.Background(), existing.ID)
		assert.Equal(t, Error.StatusNotFound, status)
		assert.Equal(t, http.StatusNotFound, do(http.MethodDelete, target, "", s.token(t, authorID)).Code)
	})
}

func TestListOf(t *testing.T) {
	conf, err := paging.NewConfig(5, 10)
	require.NoError(t, err)

	prev := pagingConfigFor
	pagingConfigFor = func(string) (*paging.Config, error) { return conf, nil }
	t.Cleanup(func() { pagingConfigFor = prev })

	parentID := uuid.New()

	repo := newRepo(parentID, 3)
	repo.notices = append(repo.notices, newRepo(uuid.New(), 2).notices...)

	resource := &Resource[notice, noticePayload]{
		Processor: noticeProcessor,
		Repo:      repo,
	}

	var mu sync.Mutex
	parentReads := 0

	exists := func(_ context.Context, id uuid.UUID) *Error.Status {
		mu.Lock()
		parentReads++
		mu.Unlock()

		if id != parentID {
			return Error.StatusNotFound
		}
		return nil
	}
	scope := func(id uuid.UUID) sieve.FilterClause {
		return sieve.FilterClause{Field: "AuthorId", Operator: sieve.Equals, Value: id}
	}

	handler := resource.ListOf(exists, scope)

	e := echo.New()
	e.GET("/parents/:id/notices", handler)

	cases := []struct {
		name   string
		target string
		status int
	}{
		{"invalid parent id", "/parents/abc/notices", http.StatusBadRequest},
		{"missing parent", "/parents/" + uuid.NewString() + "/notices", http.StatusNotFound},
		{"existing parent", "/parents/" + parentID.String() + "/notices", http.StatusOK},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, c.target, nil))
			assert.Equal(t, c.status, rec.Code)
		})
	}

	t.Run("only children of the parent are listed", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/parents/"+parentID.String()+"/notices?sorts=Title", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []string{"Notice 01", "Notice 02", "Notice 03"}, titles(t, rec.Body.String()))
	})

	t.Run("malformed query is rejected before parent lookup", func(t *testing.T) {
		queries := []string{"filters=Bogus==x", "sorts=Bogus", "page=two"}

		for _, query := range queries {
			t.Run(query, func(t *testing.T) {
				mu.Lock()
				parentReads = 0
				mu.Unlock()

				ctx := e.NewContext(httptest.NewRequest(http.MethodGet, "/parents/x/notices?"+query, nil), httptest.NewRecorder())
				ctx.SetParamNames(IDParam)
				ctx.SetParamValues(uuid.NewString())

				parseErr, ok := sieve.IsParseError(handler(ctx))
				require.True(t, ok)
				assert.Equal(t, http.StatusBadRequest, parseErr.Status())

				mu.Lock()
				assert.Zero(t, parentReads)
				mu.Unlock()
			})
		}
	})
}

func TestAuthorize(t *testing.T) {
	ownerID := uuid.New()
	n := &notice{ID: uuid.New(), AuthorID: ownerID}

	newCtx := func() echo.Context {
		return echo.New().NewContext(httptest.NewRequest(http.MethodPut, "/", nil), httptest.NewRecorder())
	}

	t.Run("not authenticated", func(t *testing.T) {
		var httpErr *echo.HTTPError
		require.ErrorAs(t, Authorize(newCtx(), n), &httpErr)
		assert.Equal(t, http.StatusInternalServerError, httpErr.Code)
	})

	t.Run("entity without owner", func(t *testing.T) {
		public, private, err := ed25519.GenerateKey(rand.Reader)
		require.NoError(t, err)

		s := session{key: private}

		e := echo.New()
		e.PUT("/", func(ctx echo.Context) error {
			if err := Authorize(ctx, &noticePayload{}); err != nil {
				return err
			}
			return ctx.NoContent(http.StatusOK)
		}, middleware.Authenticate(public, ""))

		serve := func(bearer string) int {
			req := httptest.NewRequest(http.MethodPut, "/", nil)
			req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			return rec.Code
		}

		assert.Equal(t, http.StatusForbidden, serve(s.token(t, ownerID)))
		assert.Equal(t, http.StatusOK, serve(s.token(t, ownerID, BoardRole)))
	})
}
