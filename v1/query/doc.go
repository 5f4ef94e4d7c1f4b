// Package query provides the predicate tree used to filter documents and its
// two renderings: a query-by-example (QBE) JSON filter document and a SQL
// boolean predicate over JSON path expressions.
//
// A tree is built from primitives (String, UpperString, Int, Datetime) and
// the combinators And, Or and Not:
//
//	q := query.New().With(
//		query.And().
//			With(query.String("FirstName", "Ada")).
//			With(query.Int("Age", 30, query.GreaterThan)),
//	)
//
//	qbe, err := q.QBE() // {"firstName":{"$eq":"Ada"},"age":{"$gt":30}}
//	sql, err := q.SQL() // (json_textcontains("JSON_DOCUMENT", '$.firstName', 'Ada') AND json_value("JSON_DOCUMENT", '$.age') > '30')
//
// Field keys are camelCased at construction so the same predicate addresses
// the same document field in either dialect. Rendering is deterministic and
// side-effect free.
//
// Errors:
//
// Combinators rendered with the wrong number of children return an error
// wrapping ErrStructural. Comparison kinds without a SQL symbol (for example
// Like or Regex) return ErrInvalidComparison from the SQL rendering.
package query
