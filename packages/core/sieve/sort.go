package sieve

import "strings"

const descendingMarker = "-"

type SortKey struct {
	// Field name as it was registered.
	Field      string
	Descending bool
}

// Ordered sort keys, first one is the primary key.
type SortSpec []SortKey

// Parses sorts like "-Created,Title".
// Empty raw string results into empty spec, which preserves original order.
func (p *Processor[T]) ParseSorts(raw string) (SortSpec, error) {
	spec := SortSpec{}

	if strings.TrimSpace(raw) == "" {
		return spec, nil
	}

	log.Trace("Parsing "+p.registry.entity+" sorts '"+raw+"'...", nil)

	for _, token := range strings.Split(raw, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		name, descending := strings.CutPrefix(token, descendingMarker)
		name = strings.TrimSpace(name)

		if name == "" {
			return nil, newSortError(token, "", "missing field name")
		}

		field, ok := p.registry.Lookup(name)
		if !ok {
			return nil, newSortError(token, name, "unknown field")
		}
		if !field.Sortable {
			return nil, newSortError(token, field.Name, "field can't be used in sorts")
		}

		spec = append(spec, SortKey{
			Field:      field.Name,
			Descending: descending,
		})
	}

	log.Trace("Parsing "+p.registry.entity+" sorts '"+raw+"': OK", nil)

	return spec, nil
}
