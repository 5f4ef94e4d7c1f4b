package query

import "errors"

var (
	// ErrStructural is returned when a combinator is rendered with the wrong
	// number of children or a tree is otherwise malformed.
	ErrStructural = errors.New("query: structural error")

	// ErrInvalidComparison is returned when a comparison kind has no symbol
	// in the requested dialect.
	ErrInvalidComparison = errors.New("invalid comparison type")
)

// IsStructuralError checks if the error is a malformed predicate tree error.
func IsStructuralError(err error) bool {
	return errors.Is(err, ErrStructural)
}

// IsInvalidComparisonError checks if the error reports an unsupported comparison kind.
func IsInvalidComparisonError(err error) bool {
	return errors.Is(err, ErrInvalidComparison)
}
