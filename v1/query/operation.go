package query

import (
	"strings"
	"time"
)

// Kind identifies the variant of an Operation.
type Kind int

const (
	// KindPrimitive is a leaf comparing one field against one value.
	KindPrimitive Kind = iota
	// KindAnd joins its children with a logical AND.
	KindAnd
	// KindOr joins its children with a logical OR.
	KindOr
	// KindNot negates its single child.
	KindNot
)

// String returns the combinator name.
func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindAnd:
		return "and"
	case KindOr:
		return "or"
	case KindNot:
		return "not"
	}
	return "unknown"
}

type valueKind int

const (
	stringValue valueKind = iota
	intValue
	datetimeValue
	upperStringValue
)

// datetimeLayout is the round-trippable instant format with seven
// fractional digits used for timestamps in both dialects.
const datetimeLayout = "2006-01-02T15:04:05.0000000Z07:00"

// Operation is a node of the predicate tree. Primitive nodes carry a field
// key, a typed value and a comparison; combinator nodes carry children.
// Rendering never mutates the node, so one tree can be rendered into both
// dialects.
type Operation struct {
	kind     Kind
	key      string
	compare  Compare
	valueOf  valueKind
	str      string
	num      int
	instant  time.Time
	children []*Operation
}

// String builds a primitive comparing a string field. The comparison
// defaults to Equals.
func String(key, value string, compare ...Compare) *Operation {
	return primitive(key, stringValue, compare).withString(value)
}

// UpperString builds a case-insensitive string comparison: both the stored
// field and the value are compared upper-cased.
func UpperString(key, value string, compare ...Compare) *Operation {
	return primitive(key, upperStringValue, compare).withString(strings.ToUpper(value))
}

// Int builds a primitive comparing an integer field.
func Int(key string, value int, compare ...Compare) *Operation {
	op := primitive(key, intValue, compare)
	op.num = value
	return op
}

// Datetime builds a primitive comparing a timestamp field.
func Datetime(key string, value time.Time, compare ...Compare) *Operation {
	op := primitive(key, datetimeValue, compare)
	op.instant = value
	return op
}

// And returns an empty AND combinator. Children are added with With.
func And() *Operation { return &Operation{kind: KindAnd} }

// Or returns an empty OR combinator.
func Or() *Operation { return &Operation{kind: KindOr} }

// Not returns an empty NOT combinator. It must receive exactly one child.
func Not() *Operation { return &Operation{kind: KindNot} }

func primitive(key string, v valueKind, compare []Compare) *Operation {
	cmp := Equals
	if len(compare) > 0 {
		cmp = compare[0]
	}
	return &Operation{
		kind:    KindPrimitive,
		key:     camelCase(key),
		compare: cmp,
		valueOf: v,
	}
}

func (o *Operation) withString(value string) *Operation {
	o.str = value
	return o
}

// With appends child and returns the receiver for chaining.
func (o *Operation) With(child *Operation) *Operation {
	o.children = append(o.children, child)
	return o
}

// Kind reports the node variant.
func (o *Operation) Kind() Kind { return o.kind }

// Key returns the camelCased field key of a primitive.
func (o *Operation) Key() string { return o.key }

// Comparison returns the comparison kind of a primitive.
func (o *Operation) Comparison() Compare { return o.compare }

// Children returns a copy of the child list.
func (o *Operation) Children() []*Operation {
	out := make([]*Operation, len(o.children))
	copy(out, o.children)
	return out
}

// QBE renders the node as a query-by-example filter document.
func (o *Operation) QBE() (string, error) {
	obj, err := o.renderQBE()
	if err != nil {
		return "", err
	}
	out, err := encodeJSON(obj)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// SQL renders the node as a SQL boolean predicate over the JSON document column.
func (o *Operation) SQL() (string, error) {
	return o.renderSQL()
}
