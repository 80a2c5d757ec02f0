package sieve

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Field-accessor table of the entity type T.
// Must be fully built before first use, after that it's read-only and safe for concurrent use.
// Field names are case-insensitive.
type Registry[T any] struct {
	entity string
	table  string
	fields map[string]*Field[T]
	names  []string
}

// Creates a new registry for entity stored in the given table.
// Table is also used as alias of entity's relation in SQL.
func NewRegistry[T any](entity string, table string) *Registry[T] {
	return &Registry[T]{
		entity: entity,
		table:  table,
		fields: make(map[string]*Field[T]),
	}
}

func (r *Registry[T]) Entity() string {
	return r.entity
}

func (r *Registry[T]) Table() string {
	return r.table
}

// Returns field with the given name, name is case-insensitive.
func (r *Registry[T]) Lookup(name string) (*Field[T], bool) {
	f, ok := r.fields[strings.ToLower(name)]
	return f, ok
}

// Names of all registered fields in registration order.
func (r *Registry[T]) Names() []string {
	names := make([]string, len(r.names))
	copy(names, r.names)
	return names
}

// Joins required by at least one of the registered fields, in registration order.
func (r *Registry[T]) Joins() []Join {
	seen := map[string]bool{}
	joins := []Join{}

	for _, name := range r.names {
		for _, join := range r.fields[strings.ToLower(name)].Joins {
			if !seen[join.Alias] {
				seen[join.Alias] = true
				joins = append(joins, join)
			}
		}
	}

	return joins
}

// Operator tokens and separators can't be a part of field name.
var fieldNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]*(\.[A-Za-z][A-Za-z0-9]*)?$`)

func (r *Registry[T]) add(f *Field[T]) *Registry[T] {
	key := strings.ToLower(f.Name)

	if !fieldNamePattern.MatchString(f.Name) {
		panic("sieve: invalid field name '" + f.Name + "' in " + r.entity + " registry")
	}
	if _, exists := r.fields[key]; exists {
		panic("sieve: field '" + f.Name + "' already registered in " + r.entity + " registry")
	}

	r.fields[key] = f
	r.names = append(r.names, f.Name)

	return r
}

func (r *Registry[T]) String(name, column string, get func(T) string, opts ...Option) *Registry[T] {
	return r.add(newField(name, r.table, column, String, false, stringValue(get), opts))
}

func (r *Registry[T]) NullableString(name, column string, get func(T) *string, opts ...Option) *Registry[T] {
	return r.add(newField(name, r.table, column, String, true, nullableStringValue(get), opts))
}

func (r *Registry[T]) UUID(name, column string, get func(T) uuid.UUID, opts ...Option) *Registry[T] {
	return r.add(newField(name, r.table, column, UUID, false, uuidValue(get), opts))
}

func (r *Registry[T]) Int(name, column string, get func(T) int64, opts ...Option) *Registry[T] {
	return r.add(newField(name, r.table, column, Int, false, intValue(get), opts))
}

func (r *Registry[T]) Float(name, column string, get func(T) float64, opts ...Option) *Registry[T] {
	return r.add(newField(name, r.table, column, Float, false, floatValue(get), opts))
}

func (r *Registry[T]) Bool(name, column string, get func(T) bool, opts ...Option) *Registry[T] {
	return r.add(newField(name, r.table, column, Bool, false, boolValue(get), opts))
}

func (r *Registry[T]) Time(name, column string, get func(T) time.Time, opts ...Option) *Registry[T] {
	return r.add(newField(name, r.table, column, Time, false, timeValue(get), opts))
}

func (r *Registry[T]) NullableTime(name, column string, get func(T) *time.Time, opts ...Option) *Registry[T] {
	return r.add(newField(name, r.table, column, Time, true, nullableTimeValue(get), opts))
}

// Registers virtual field with the given name, which refers to already registered target field.
// e.g. Alias("OwnerEmail", "Owner.Email")
func (r *Registry[T]) Alias(name string, target string) *Registry[T] {
	f, ok := r.Lookup(target)
	if !ok {
		panic("sieve: can't create alias '" + name + "': field '" + target + "' isn't registered in " + r.entity + " registry")
	}

	alias := *f
	alias.Name = name

	return r.add(&alias)
}

// Registers all own fields of the related registry as "<name>.<field>".
// Related record is loaded together with the entity via join and get returns it (nil if there are none).
// Only one level of traversal is supported: fields that related registry itself reaches via joins are skipped.
func Relate[T any, U any](r *Registry[T], name string, join Join, get func(T) *U, related *Registry[U]) *Registry[T] {
	for _, relatedName := range related.names {
		rf := related.fields[strings.ToLower(relatedName)]

		if len(rf.Joins) != 0 || rf.Table != related.table {
			continue
		}

		relatedGet := rf.get

		r.add(&Field[T]{
			Name:   name + "." + rf.Name,
			Table:  join.Alias,
			Column: rf.Column,
			Kind:   rf.Kind,
			// LEFT JOIN, related record may not exist
			Nullable:   true,
			Filterable: rf.Filterable,
			Sortable:   rf.Sortable,
			Joins:      []Join{join},
			get: func(e T) any {
				rel := get(e)
				if rel == nil {
					return nil
				}
				return relatedGet(*rel)
			},
		})
	}

	return r
}
