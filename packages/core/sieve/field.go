package sieve

import (
	"time"

	"github.com/google/uuid"
)

// Kind of the field value.
// Determines how raw filter values are parsed and how values are ordered.
type Kind byte

const (
	String Kind = 1 + iota
	UUID
	Int
	Float
	Bool
	Time
)

var kindNames = map[Kind]string{
	String: "string",
	UUID:   "uuid",
	Int:    "integer",
	Float:  "number",
	Bool:   "boolean",
	Time:   "date-time",
}

func (k Kind) String() string {
	return kindNames[k]
}

// Describes how related relation is reached from the entity's own relation.
type Join struct {
	Table string
	Alias string
	// SQL join condition, e.g. `"owner".id = "event".owner_id`
	On string
}

type Option byte

const (
	NoFilter Option = 1 << iota
	NoSort
)

// Filterable and sortable field of entity T.
type Field[T any] struct {
	Name string
	// Alias of the relation which contains Column.
	Table      string
	Column     string
	Kind       Kind
	Nullable   bool
	Filterable bool
	Sortable   bool
	// Joins required to reach this field.
	Joins []Join

	// Returns nil if value is NULL, otherwise value has the Go type of the Kind:
	// string, uuid.UUID, int64, float64, bool or time.Time.
	get func(T) any
}

// Returns value of this field for the given entity, nil if it's NULL.
func (f *Field[T]) Value(e T) any {
	return f.get(e)
}

// Qualified SQL expression of this field.
func (f *Field[T]) Expression() string {
	if f.Table == "" {
		return f.Column
	}
	return `"` + f.Table + `".` + f.Column
}

func newField[T any](name, table, column string, kind Kind, nullable bool, get func(T) any, opts []Option) *Field[T] {
	f := &Field[T]{
		Name:       name,
		Table:      table,
		Column:     column,
		Kind:       kind,
		Nullable:   nullable,
		Filterable: true,
		Sortable:   true,
		get:        get,
	}

	for _, opt := range opts {
		if opt&NoFilter != 0 {
			f.Filterable = false
		}
		if opt&NoSort != 0 {
			f.Sortable = false
		}
	}

	return f
}

func stringValue[T any](get func(T) string) func(T) any {
	return func(e T) any { return get(e) }
}

func nullableStringValue[T any](get func(T) *string) func(T) any {
	return func(e T) any {
		if v := get(e); v != nil {
			return *v
		}
		return nil
	}
}

func uuidValue[T any](get func(T) uuid.UUID) func(T) any {
	return func(e T) any { return get(e) }
}

func intValue[T any](get func(T) int64) func(T) any {
	return func(e T) any { return get(e) }
}

func floatValue[T any](get func(T) float64) func(T) any {
	return func(e T) any { return get(e) }
}

func boolValue[T any](get func(T) bool) func(T) any {
	return func(e T) any { return get(e) }
}

func timeValue[T any](get func(T) time.Time) func(T) any {
	return func(e T) any { return get(e) }
}

func nullableTimeValue[T any](get func(T) *time.Time) func(T) any {
	return func(e T) any {
		if v := get(e); v != nil {
			return *v
		}
		return nil
	}
}
