package pagination

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/Aleph-Alpha/docstore/v1/document"
)

// filterSchema describes the envelope of a query-by-example filter. Only the
// wrapper keys are constrained; the predicate itself is opaque.
const filterSchema = `{
	"type": "object",
	"properties": {
		"$query": {"type": "object"},
		"$orderby": {
			"oneOf": [
				{
					"type": "array",
					"items": {
						"type": "object",
						"properties": {
							"path": {"type": "string", "minLength": 1},
							"order": {"type": "string", "enum": ["asc", "desc", "ASC", "DESC"]},
							"datatype": {"type": "string"}
						},
						"required": ["path"]
					}
				},
				{"type": "object"}
			]
		}
	}
}`

var filterValidator = mustSchema(filterSchema)

func mustSchema(schema string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schema))
	if err != nil {
		panic(err)
	}
	return s
}

// Filter is a parsed query-by-example document split into its predicate and
// its explicit order clause.
type Filter struct {
	// Query is the predicate object; nil when the filter was empty.
	Query json.RawMessage

	// OrderBy is the caller's "$orderby" clause; nil when absent.
	OrderBy json.RawMessage
}

// HasOrder reports whether the caller supplied an explicit order.
func (f Filter) HasOrder() bool {
	return len(f.OrderBy) > 0 && !bytes.Equal(f.OrderBy, []byte("null"))
}

// ParseFilter splits a raw filter. A document with a "$query" key is a
// wrapped filter; any other object is the predicate itself. A blank filter
// parses to an empty Filter.
func ParseFilter(raw string) (Filter, error) {
	if strings.TrimSpace(raw) == "" {
		return Filter{}, nil
	}

	result, err := filterValidator.Validate(gojsonschema.NewStringLoader(raw))
	if err != nil {
		return Filter{}, document.Validationf("provided filter is invalid: %v", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return Filter{}, document.Validationf("provided filter is invalid: %s", strings.Join(msgs, "; "))
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &top); err != nil {
		return Filter{}, document.Validationf("provided filter is invalid: %v", err)
	}

	f := Filter{Query: json.RawMessage(raw)}
	if q, ok := top["$query"]; ok && !bytes.Equal(q, []byte("null")) {
		f.Query = q
	}
	if o, ok := top["$orderby"]; ok {
		f.OrderBy = o
	}
	return f, nil
}

func (f Filter) queryOrEmpty() string {
	if len(f.Query) == 0 {
		return "{}"
	}
	return string(f.Query)
}

func (f Filter) orderOrEmpty() string {
	if !f.HasOrder() {
		return "{}"
	}
	return string(f.OrderBy)
}
