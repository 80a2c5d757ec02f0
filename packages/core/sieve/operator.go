package sieve

type Operator byte

const (
	Equals Operator = 1 + iota
	NotEquals
	Contains
	NotContains
	StartsWith
	NotStartsWith
	EndsWith
	NotEndsWith
	Greater
	Less
	GreaterOrEqual
	LessOrEqual
	IsNull
	IsNotNull
)

// Longer tokens go first, so "!@=" is never read as "!" + "@=".
var operatorTokens = []struct {
	token string
	op    Operator
}{
	{"!_-=", NotEndsWith},
	{"!@=", NotContains},
	{"!_=", NotStartsWith},
	{"_-=", EndsWith},
	{"==", Equals},
	{"!=", NotEquals},
	{">=", GreaterOrEqual},
	{"<=", LessOrEqual},
	{"@=", Contains},
	{"_=", StartsWith},
	{">", Greater},
	{"<", Less},
}

// Marks operator as case-insensitive, e.g. "==*" or "@=*"
const caseInsensitiveMarker = "*"

const nullValue = "null"

var operatorToStrMap = map[Operator]string{
	Equals:         "==",
	NotEquals:      "!=",
	Contains:       "@=",
	NotContains:    "!@=",
	StartsWith:     "_=",
	NotStartsWith:  "!_=",
	EndsWith:       "_-=",
	NotEndsWith:    "!_-=",
	Greater:        ">",
	Less:           "<",
	GreaterOrEqual: ">=",
	LessOrEqual:    "<=",
	IsNull:         "==null",
	IsNotNull:      "!=null",
}

func (op Operator) String() string {
	return operatorToStrMap[op]
}

// Returns all operator tokens accepted in filters.
func OperatorTokens() []string {
	tokens := make([]string, len(operatorTokens))
	for i, t := range operatorTokens {
		tokens[i] = t.token
	}
	return tokens
}

// Reports whether operator compares text patterns (contains, starts-with, ends-with and their negations).
func (op Operator) IsPattern() bool {
	return op >= Contains && op <= NotEndsWith
}

// Reports whether operator is a negation of another one.
func (op Operator) IsNegation() bool {
	switch op {
	case NotEquals, NotContains, NotStartsWith, NotEndsWith:
		return true
	}
	return false
}

func (op Operator) isOrdering() bool {
	return op >= Greater && op <= LessOrEqual
}

// Reports whether operator can be applied to the field of the given kind.
func (op Operator) supports(kind Kind, nullable bool) bool {
	switch {
	case op == Equals || op == NotEquals:
		return true
	case op == IsNull || op == IsNotNull:
		return nullable
	case op.IsPattern():
		return kind == String || kind == UUID
	case op.isOrdering():
		return kind == String || kind == Int || kind == Float || kind == Time
	}
	return false
}

// Finds first operator token in clause.
// Returns index of the token start, token itself and its operator.
// If there are no operator in clause, then returns -1.
func findOperator(clause string) (int, string, Operator) {
	for i := range len(clause) {
		for _, t := range operatorTokens {
			if len(clause)-i >= len(t.token) && clause[i:i+len(t.token)] == t.token {
				return i, t.token, t.op
			}
		}
	}
	return -1, "", 0
}
