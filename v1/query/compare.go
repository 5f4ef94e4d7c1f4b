package query

import "fmt"

// Compare enumerates the comparison kinds a primitive predicate can use.
// Every kind has a query-by-example operator; only the six ordering and
// equality kinds have a SQL symbol.
type Compare int

const (
	Equals Compare = iota
	NotEquals
	GreaterThan
	LessThan
	GreaterThanOrEquals
	LessThanOrEquals
	HasSubstring
	In
	Instr
	Like
	NotIn
	Regex
	StartsWith
	All
	Between
	Exists
	Contains
)

var qbeOperators = map[Compare]string{
	Equals:              "$eq",
	NotEquals:           "$ne",
	GreaterThan:         "$gt",
	LessThan:            "$lt",
	GreaterThanOrEquals: "$gte",
	LessThanOrEquals:    "$lte",
	HasSubstring:        "$hasSubstring",
	In:                  "$in",
	Instr:               "$instr",
	Like:                "$like",
	NotIn:               "$nin",
	Regex:               "$regex",
	StartsWith:          "$startsWith",
	All:                 "$all",
	Between:             "$between",
	Exists:              "$exists",
	Contains:            "$contains",
}

var sqlOperators = map[Compare]string{
	Equals:              "=",
	NotEquals:           "<>",
	GreaterThan:         ">",
	LessThan:            "<",
	GreaterThanOrEquals: ">=",
	LessThanOrEquals:    "<=",
}

// QBEOperator returns the query-by-example token for the comparison.
func (c Compare) QBEOperator() (string, error) {
	op, ok := qbeOperators[c]
	if !ok {
		return "", fmt.Errorf("%w: %d", ErrInvalidComparison, int(c))
	}
	return op, nil
}

// SQLOperator returns the SQL symbol for the comparison. Kinds that only
// exist in the query-by-example dialect return ErrInvalidComparison.
func (c Compare) SQLOperator() (string, error) {
	op, ok := sqlOperators[c]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrInvalidComparison, c)
	}
	return op, nil
}

// String returns the name of the comparison kind.
func (c Compare) String() string {
	switch c {
	case Equals:
		return "Equals"
	case NotEquals:
		return "NotEquals"
	case GreaterThan:
		return "GreaterThan"
	case LessThan:
		return "LessThan"
	case GreaterThanOrEquals:
		return "GreaterThanOrEquals"
	case LessThanOrEquals:
		return "LessThanOrEquals"
	case HasSubstring:
		return "HasSubstring"
	case In:
		return "In"
	case Instr:
		return "Instr"
	case Like:
		return "Like"
	case NotIn:
		return "NotIn"
	case Regex:
		return "Regex"
	case StartsWith:
		return "StartsWith"
	case All:
		return "All"
	case Between:
		return "Between"
	case Exists:
		return "Exists"
	case Contains:
		return "Contains"
	}
	return fmt.Sprintf("Compare(%d)", int(c))
}
