package sieve

import (
	"hoa/packages/common/logger"
	"slices"
	"strings"
)

var log = logger.NewSource("SIEVE", logger.Default)

// Parses and applies filters and sorts to the entities of type T.
// Safe for concurrent use.
type Processor[T any] struct {
	registry *Registry[T]
}

func New[T any](registry *Registry[T]) *Processor[T] {
	if registry == nil {
		log.Panic("Failed to create processor", "registry can't be nil", nil)
	}

	return &Processor[T]{registry: registry}
}

func (p *Processor[T]) Registry() *Registry[T] {
	return p.registry
}

// Returns registered field for parsed clause or sort key.
// Fields of parsed expressions always exist, so missing field means
// that expression was built for another entity type.
func (p *Processor[T]) field(name string) *Field[T] {
	f, ok := p.registry.Lookup(name)
	if !ok {
		log.Panic(
			"Failed to resolve field",
			"field '"+name+"' isn't registered in "+p.registry.entity+" registry",
			nil,
		)
	}
	return f
}

func match[T any](f *Field[T], clause *FilterClause, e T) bool {
	v := f.Value(e)

	switch clause.Operator {
	case IsNull:
		return v == nil
	case IsNotNull:
		return v != nil
	}

	// NULL never satisfies comparison, negated or not
	if v == nil {
		return false
	}

	if clause.Operator.IsPattern() {
		haystack := strings.ToLower(text(f.Kind, v))
		needle := strings.ToLower(clause.Value.(string))

		switch clause.Operator {
		case Contains:
			return strings.Contains(haystack, needle)
		case NotContains:
			return !strings.Contains(haystack, needle)
		case StartsWith:
			return strings.HasPrefix(haystack, needle)
		case NotStartsWith:
			return !strings.HasPrefix(haystack, needle)
		case EndsWith:
			return strings.HasSuffix(haystack, needle)
		case NotEndsWith:
			return !strings.HasSuffix(haystack, needle)
		}
	}

	var c int
	if clause.CaseInsensitive && f.Kind == String {
		c = strings.Compare(strings.ToLower(v.(string)), strings.ToLower(clause.Value.(string)))
	} else {
		c = compare(f.Kind, v, clause.Value)
	}

	switch clause.Operator {
	case Equals:
		return c == 0
	case NotEquals:
		return c != 0
	case Greater:
		return c > 0
	case Less:
		return c < 0
	case GreaterOrEqual:
		return c >= 0
	case LessOrEqual:
		return c <= 0
	}

	return false
}

// Returns new slice with entities that satisfy all clauses of expr.
// Order of entities is preserved, entities slice isn't modified.
func (p *Processor[T]) ApplyFilters(entities []T, expr FilterExpression) []T {
	filtered := make([]T, 0, len(entities))

	if len(expr) == 0 {
		return append(filtered, entities...)
	}

	fields := make([]*Field[T], len(expr))
	for i := range expr {
		fields[i] = p.field(expr[i].Field)
	}

	for _, e := range entities {
		ok := true
		for i := range expr {
			if !match(fields[i], &expr[i], e) {
				ok = false
				break
			}
		}
		if ok {
			filtered = append(filtered, e)
		}
	}

	return filtered
}

// Returns new slice with entities sorted by spec.
// Sort is stable: entities that are equal by all keys keep their relative order.
func (p *Processor[T]) ApplySorts(entities []T, spec SortSpec) []T {
	sorted := make([]T, len(entities))
	copy(sorted, entities)

	if len(spec) == 0 {
		return sorted
	}

	fields := make([]*Field[T], len(spec))
	for i, key := range spec {
		fields[i] = p.field(key.Field)
	}

	slices.SortStableFunc(sorted, func(a, b T) int {
		for i, key := range spec {
			c := compareNullable(fields[i].Kind, fields[i].Value(a), fields[i].Value(b))
			if key.Descending {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return 0
	})

	return sorted
}

// Filters and then sorts entities.
func (p *Processor[T]) Apply(entities []T, expr FilterExpression, spec SortSpec) []T {
	return p.ApplySorts(p.ApplyFilters(entities, expr), spec)
}
