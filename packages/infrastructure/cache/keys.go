package cache

import (
	"encoding/hex"
	"fmt"
	"hoa/packages/core/paging"
	"hoa/packages/core/sieve"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
)

const listKeyBase = ":list:"

func formatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case time.Time:
		return v.UTC().Format(time.RFC3339Nano)
	case uuid.UUID:
		return v.String()
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// Clauses are ANDed, so their order doesn't affect result and is dropped.
// Sort keys order matters and is kept.
func normalize(filters sieve.FilterExpression, sorts sieve.SortSpec, req paging.Request) string {
	const sep = "\x1f"

	clauses := make([]string, len(filters))
	for i, f := range filters {
		clauses[i] = strings.Join([]string{
			strings.ToLower(f.Field),
			f.Operator.String(),
			strconv.FormatBool(f.CaseInsensitive),
			formatValue(f.Value),
		}, sep)
	}
	slices.Sort(clauses)
	clauses = slices.Compact(clauses)

	keys := make([]string, len(sorts))
	for i, s := range sorts {
		dir := "asc"
		if s.Descending {
			dir = "desc"
		}
		keys[i] = strings.ToLower(s.Field) + sep + dir
	}

	return strings.Join(clauses, "\x1e") + "\x1d" +
		strings.Join(keys, "\x1e") + "\x1d" +
		strconv.Itoa(req.Page) + sep + strconv.Itoa(req.PageSize)
}

// Key of the list page of entity in the cache generation (see Generation).
// Queries that select the same page produce the same key,
// so req must be already resolved (see paging.Config.Resolve).
func ListKey(entity string, generation string, filters sieve.FilterExpression, sorts sieve.SortSpec, req paging.Request) string {
	sum := blake2b.Sum256([]byte(normalize(filters, sorts, req)))

	return strings.ToLower(entity) + listKeyBase + generation + ":" + hex.EncodeToString(sum[:])
}
