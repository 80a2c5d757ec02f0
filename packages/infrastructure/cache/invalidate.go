package cache

import (
	Error "hoa/packages/common/errors"
	"strings"

	"github.com/google/uuid"
)

const generationKeyBase = ":generation"

// Entities which cached pages embed data of the key entity.
// Users are joined into every list, posts own comments and
// meetings own minutes (and they're deleted together).
var dependents = map[string][]string{
	"user":    {"event", "post", "comment", "meeting", "minutes"},
	"post":    {"comment"},
	"meeting": {"minutes"},
}

// Returns entity and all entities which cache depends on it.
func affected(entity string) []string {
	entity = strings.ToLower(entity)
	return append([]string{entity}, dependents[entity]...)
}

func generationKey(entity string) string {
	return strings.ToLower(entity) + generationKeyBase
}

// Returns current cache generation of entity, it's a part of every list key of entity.
// Must be obtained before reading data which is going to be cached,
// then pages read before invalidation are stored under keys that are never read again.
//
// Generation is a random token, not a counter, so it never repeats after flush or expiration.
// Returns empty string if cache isn't connected.
func Generation(entity string) string {
	if !Client.IsConnected() {
		return ""
	}

	key := generationKey(entity)

	if gen, hit := Client.Get(key); hit && gen != "" {
		return gen
	}

	gen := uuid.NewString()
	if err := Client.Set(key, gen); err != nil {
		return ""
	}

	return gen
}

// Starts new cache generation of entity and all its dependents
// and drops their cached pages.
func Invalidate(entity string) *Error.Status {
	if !Client.IsConnected() {
		return nil
	}

	for _, e := range affected(entity) {
		if err := Client.Set(generationKey(e), uuid.NewString()); err != nil {
			log.Error("Failed to start new cache generation of "+e, err.Error(), nil)
			return err
		}
		if err := Client.DeletePattern(strings.ToLower(e) + listKeyBase + "*"); err != nil {
			log.Error("Failed to invalidate cache of "+e, err.Error(), nil)
			return err
		}
	}

	return nil
}
