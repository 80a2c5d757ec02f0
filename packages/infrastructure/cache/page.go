package cache

import (
	"hoa/packages/common/encoding/json"
)

// Result of the data source query: items of the page and total count of filtered entities.
// Pagination metadata isn't cached, it's derived from total count on every request.
type cachedPage[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"totalCount"`
}

// Returns cached items and total count stored by key.
// hit is false if cache isn't connected, page isn't cached or it's corrupted.
func GetPage[T any](key string) (items []T, totalCount int, hit bool) {
	if !Client.IsConnected() {
		return nil, 0, false
	}

	raw, hit := Client.Get(key)
	if !hit {
		return nil, 0, false
	}

	cached, err := json.Unmarshal[cachedPage[T]]([]byte(raw))
	if err != nil || cached.TotalCount < 0 {
		log.Warning("Corrupted page in cache: "+key, nil)
		Client.Delete(key)
		return nil, 0, false
	}

	if cached.Items == nil {
		cached.Items = []T{}
	}

	return cached.Items, cached.TotalCount, true
}

// Caches items of the page and total count by key. Does nothing if cache isn't connected.
func SetPage[T any](key string, items []T, totalCount int) {
	if !Client.IsConnected() {
		return
	}

	raw, err := json.Marshal(cachedPage[T]{Items: items, TotalCount: totalCount})
	if err != nil {
		log.Error("Failed to encode page", err.Error(), nil)
		return
	}

	Client.Set(key, raw)
}
