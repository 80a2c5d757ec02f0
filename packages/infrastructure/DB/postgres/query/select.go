package query

import (
	"hoa/packages/core/sieve"
	"strconv"
	"strings"
)

// Base relation of the list queries over entities of type T:
// registry's table joined with every relation its fields refer to.
type Select[T any] struct {
	registry *sieve.Registry[T]
	columns  []string
	// Order applied after requested sorts, so pages never overlap.
	tiebreak []string
}

func NewSelect[T any](registry *sieve.Registry[T], columns ...string) *Select[T] {
	table := Quote(registry.Table())

	return &Select[T]{
		registry: registry,
		columns:  columns,
		tiebreak: []string{table + ".created_at", table + ".id"},
	}
}

func Quote(identifier string) string {
	return `"` + identifier + `"`
}

// Qualifies each column with the relation alias.
func Columns(alias string, columns ...string) []string {
	qualified := make([]string, len(columns))
	for i, column := range columns {
		qualified[i] = Quote(alias) + "." + column
	}
	return qualified
}

func (s *Select[T]) from() string {
	var b strings.Builder

	b.WriteString(" FROM ")
	b.WriteString(Quote(s.registry.Table()))

	for _, join := range s.registry.Joins() {
		b.WriteString(" LEFT JOIN ")
		b.WriteString(Quote(join.Table))
		b.WriteString(" AS ")
		b.WriteString(Quote(join.Alias))
		b.WriteString(" ON ")
		b.WriteString(join.On)
	}

	return b.String()
}

func (s *Select[T]) lookup(name string) (*sieve.Field[T], error) {
	f, ok := s.registry.Lookup(name)
	if !ok {
		return nil, &sieve.ParseError{
			Param:  sieve.FilterParam,
			Token:  name,
			Field:  name,
			Reason: "unknown field",
		}
	}
	return f, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(op sieve.Operator, value string) string {
	value = likeEscaper.Replace(value)

	switch op {
	case sieve.StartsWith, sieve.NotStartsWith:
		return value + "%"
	case sieve.EndsWith, sieve.NotEndsWith:
		return "%" + value
	}
	return "%" + value + "%"
}

var comparisonOperators = map[sieve.Operator]string{
	sieve.Equals:         "=",
	sieve.NotEquals:      "<>",
	sieve.Greater:        ">",
	sieve.Less:           "<",
	sieve.GreaterOrEqual: ">=",
	sieve.LessOrEqual:    "<=",
}

// Translates filters into the SQL condition, clauses are joined with AND.
// Placeholders are numbered starting from firstArg.
// Returns empty condition if there are no filters.
func (s *Select[T]) Where(filters sieve.FilterExpression, firstArg int) (string, []any, error) {
	conds := make([]string, 0, len(filters))
	args := make([]any, 0, len(filters))

	placeholder := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(firstArg+len(args)-1)
	}

	for _, clause := range filters {
		f, err := s.lookup(clause.Field)
		if err != nil {
			return "", nil, err
		}

		expr := f.Expression()

		switch {
		case clause.Operator == sieve.IsNull:
			conds = append(conds, expr+" IS NULL")
		case clause.Operator == sieve.IsNotNull:
			conds = append(conds, expr+" IS NOT NULL")
		case clause.Operator.IsPattern():
			if f.Kind != sieve.String {
				expr += "::text"
			}
			op := " ILIKE "
			if clause.Operator.IsNegation() {
				op = " NOT ILIKE "
			}
			pattern := likePattern(clause.Operator, clause.Value.(string))
			conds = append(conds, expr+op+placeholder(pattern)+` ESCAPE '\'`)
		default:
			op := comparisonOperators[clause.Operator]

			switch {
			case f.Kind == sieve.String && clause.CaseInsensitive:
				conds = append(conds, "LOWER("+expr+`) COLLATE "C" `+op+" LOWER("+placeholder(clause.Value)+")")
			case f.Kind == sieve.String:
				conds = append(conds, expr+` COLLATE "C" `+op+" "+placeholder(clause.Value))
			default:
				conds = append(conds, expr+" "+op+" "+placeholder(clause.Value))
			}
		}
	}

	return strings.Join(conds, " AND "), args, nil
}

// Translates sorts into the SQL ordering followed by the intrinsic order.
func (s *Select[T]) OrderBy(sorts sieve.SortSpec) (string, error) {
	keys := make([]string, 0, len(sorts)+len(s.tiebreak))

	for _, key := range sorts {
		f, ok := s.registry.Lookup(key.Field)
		if !ok {
			return "", &sieve.ParseError{
				Param:  sieve.SortParam,
				Token:  key.Field,
				Field:  key.Field,
				Reason: "unknown field",
			}
		}

		expr := f.Expression()
		if f.Kind == sieve.String {
			expr += ` COLLATE "C"`
		}

		// explicit, so NULL placement doesn't depend on defaults
		if key.Descending {
			expr += " DESC NULLS FIRST"
		} else {
			expr += " ASC NULLS LAST"
		}

		keys = append(keys, expr)
	}

	keys = append(keys, s.tiebreak...)

	return strings.Join(keys, ", "), nil
}

func (s *Select[T]) where(filters sieve.FilterExpression, firstArg int) (string, []any, error) {
	cond, args, err := s.Where(filters, firstArg)
	if err != nil || cond == "" {
		return "", args, err
	}
	return " WHERE " + cond, args, nil
}

// Single query which returns requested page together with the total
// number of rows that satisfy filters (last column of each row).
// If offset is past the end no rows are returned, use Count to get the total in this case.
func (s *Select[T]) Page(filters sieve.FilterExpression, sorts sieve.SortSpec, offset int, limit int) (*Query, error) {
	where, args, err := s.where(filters, 1)
	if err != nil {
		return nil, err
	}

	orderBy, err := s.OrderBy(sorts)
	if err != nil {
		return nil, err
	}

	args = append(args, limit, offset)

	sql := "SELECT " + strings.Join(s.columns, ", ") + ", COUNT(*) OVER() AS total" +
		s.from() +
		where +
		" ORDER BY " + orderBy +
		" LIMIT $" + strconv.Itoa(len(args)-1) + " OFFSET $" + strconv.Itoa(len(args)) + ";"

	return New(sql, args...), nil
}

func (s *Select[T]) Count(filters sieve.FilterExpression) (*Query, error) {
	where, args, err := s.where(filters, 1)
	if err != nil {
		return nil, err
	}

	return New("SELECT COUNT(*)"+s.from()+where+";", args...), nil
}

// Query for a single row with the given value of "id" column.
func (s *Select[T]) ByID(id any) *Query {
	return New(
		"SELECT "+strings.Join(s.columns, ", ")+s.from()+
			" WHERE "+Quote(s.registry.Table())+".id = $1;",
		id,
	)
}
