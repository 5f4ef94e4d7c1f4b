package query

import "strings"

// Query holds the root operations of a filter. Both renderings are produced
// from the live tree on every call; nothing is cached.
type Query struct {
	roots []*Operation
}

// New returns an empty query.
func New() *Query {
	return &Query{}
}

// With adds a root operation. Several roots are combined with AND.
func (q *Query) With(op *Operation) *Query {
	q.roots = append(q.roots, op)
	return q
}

// Empty reports whether the query has no operations.
func (q *Query) Empty() bool {
	return q == nil || len(q.roots) == 0
}

// QBE renders the query as a query-by-example document. The members of every
// root are merged into one object unless two roots share a key, in which case
// the roots become the items of a "$and" array. An empty query renders as "{}".
func (q *Query) QBE() (string, error) {
	merged := object{}
	if !q.Empty() {
		roots := make([]interface{}, 0, len(q.roots))
		collision := false
		for _, root := range q.roots {
			rendered, err := root.renderQBE()
			if err != nil {
				return "", err
			}
			roots = append(roots, rendered)
			for _, m := range rendered {
				if merged.has(m.key) {
					collision = true
				}
				merged = append(merged, m)
			}
		}
		if collision {
			merged = object{{key: qbeAnd, value: roots}}
		}
	}
	out, err := encodeJSON(merged)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// SQL renders the query as a SQL predicate. An empty query renders as "".
func (q *Query) SQL() (string, error) {
	if q.Empty() {
		return "", nil
	}
	parts := make([]string, 0, len(q.roots))
	for _, root := range q.roots {
		rendered, err := root.renderSQL()
		if err != nil {
			return "", err
		}
		parts = append(parts, rendered)
	}
	if len(parts) == 1 {
		return parts[0], nil
	}
	return "(" + strings.Join(parts, " AND ") + ")", nil
}
