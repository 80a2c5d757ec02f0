package sieve

import (
	"strings"
)

type FilterClause struct {
	// Field name as it was registered.
	Field    string
	Operator Operator
	// Parsed value, its type is defined by field's kind.
	// For pattern operators it's always a string.
	// Nil for IsNull and IsNotNull.
	Value any
	// Case folding for string equality. Pattern operators are always case-insensitive.
	CaseInsensitive bool
	// Clause as it was received.
	Raw string
}

// Sequence of clauses combined with logical AND.
type FilterExpression []FilterClause

// Splits raw filters by commas, "\," is a comma inside of a value.
func splitClauses(raw string) []string {
	clauses := []string{}

	var b strings.Builder

	for i := 0; i < len(raw); i++ {
		c := raw[i]

		if c == '\\' && i+1 < len(raw) && raw[i+1] == ',' {
			b.WriteByte(',')
			i++
			continue
		}

		if c == ',' {
			clauses = append(clauses, b.String())
			b.Reset()
			continue
		}

		b.WriteByte(c)
	}

	return append(clauses, b.String())
}

// Parses filters like "Title@=*hello,Created>2024-01-01".
// Empty raw string results into empty expression, which matches every entity.
func (p *Processor[T]) ParseFilters(raw string) (FilterExpression, error) {
	if strings.TrimSpace(raw) == "" {
		return FilterExpression{}, nil
	}

	log.Trace("Parsing "+p.registry.entity+" filters '"+raw+"'...", nil)

	clauses := splitClauses(raw)
	expr := make(FilterExpression, 0, len(clauses))

	for _, rawClause := range clauses {
		rawClause = strings.TrimSpace(rawClause)
		if rawClause == "" {
			continue
		}

		clause, err := p.parseClause(rawClause)
		if err != nil {
			log.Trace("Parsing "+p.registry.entity+" filters '"+raw+"': "+err.Error(), nil)
			return nil, err
		}

		expr = append(expr, clause)
	}

	log.Trace("Parsing "+p.registry.entity+" filters '"+raw+"': OK", nil)

	return expr, nil
}

func (p *Processor[T]) parseClause(raw string) (FilterClause, error) {
	idx, token, op := findOperator(raw)
	if idx == -1 {
		err := newFilterError(raw, "", "missing or unknown operator")
		err.Expected = OperatorTokens()
		return FilterClause{}, err
	}

	name := strings.TrimSpace(raw[:idx])
	value := raw[idx+len(token):]

	if name == "" {
		return FilterClause{}, newFilterError(raw, "", "missing field name")
	}

	field, ok := p.registry.Lookup(name)
	if !ok {
		return FilterClause{}, newFilterError(raw, name, "unknown field")
	}
	if !field.Filterable {
		return FilterClause{}, newFilterError(raw, field.Name, "field can't be used in filters")
	}

	caseInsensitive := false
	if strings.HasPrefix(value, caseInsensitiveMarker) {
		caseInsensitive = true
		value = value[len(caseInsensitiveMarker):]
	}

	if field.Nullable && strings.EqualFold(value, nullValue) {
		switch op {
		case Equals:
			op = IsNull
		case NotEquals:
			op = IsNotNull
		}
	}

	if !op.supports(field.Kind, field.Nullable) {
		return FilterClause{}, newFilterError(
			raw,
			field.Name,
			"operator '"+token+"' can't be applied to "+field.Kind.String()+" field",
		)
	}

	clause := FilterClause{
		Field:           field.Name,
		Operator:        op,
		CaseInsensitive: caseInsensitive || op.IsPattern(),
		Raw:             raw,
	}

	switch {
	case op == IsNull || op == IsNotNull:
		// no value
	case op.IsPattern():
		clause.Value = value
	default:
		v, err := parseValue(field.Kind, value)
		if err != nil {
			return FilterClause{}, newFilterError(raw, field.Name, "invalid "+field.Kind.String()+" value '"+value+"'")
		}
		clause.Value = v
	}

	return clause, nil
}
