package query

import "fmt"

const (
	qbeAnd       = "$and"
	qbeOr        = "$or"
	qbeNot       = "$not"
	qbeTimestamp = "$timestamp"
	qbeUpper     = "$upper"
)

func (o *Operation) renderQBE() (object, error) {
	switch o.kind {
	case KindPrimitive:
		return o.primitiveQBE()
	case KindAnd:
		if merged, ok, err := o.mergedQBE(); ok || err != nil {
			return merged, err
		}
		return o.combinatorQBE(qbeAnd)
	case KindOr:
		return o.combinatorQBE(qbeOr)
	case KindNot:
		if len(o.children) != 1 {
			return nil, fmt.Errorf("%w: -%s- must have a single parameter, got %d", ErrStructural, qbeNot, len(o.children))
		}
		child, err := o.children[0].renderQBE()
		if err != nil {
			return nil, err
		}
		return object{{key: qbeNot, value: child}}, nil
	}
	return nil, fmt.Errorf("%w: unknown operation kind %d", ErrStructural, int(o.kind))
}

func (o *Operation) primitiveQBE() (object, error) {
	if len(o.children) > 0 {
		return nil, fmt.Errorf("%w: primitive %q cannot have parameters", ErrStructural, o.key)
	}
	op, err := o.compare.QBEOperator()
	if err != nil {
		return nil, err
	}

	var condition object
	switch o.valueOf {
	case stringValue:
		condition = object{{key: op, value: o.str}}
	case intValue:
		condition = object{{key: op, value: o.num}}
	case datetimeValue:
		condition = object{{key: qbeTimestamp, value: object{{key: op, value: o.instant.Format(datetimeLayout)}}}}
	case upperStringValue:
		condition = object{{key: qbeUpper, value: object{{key: op, value: o.str}}}}
	}
	return object{{key: o.key, value: condition}}, nil
}

func (o *Operation) combinatorQBE(symbol string) (object, error) {
	if len(o.children) == 0 {
		return nil, fmt.Errorf("%w: -%s- must have some parameters", ErrStructural, symbol)
	}
	items := make([]interface{}, 0, len(o.children))
	for _, child := range o.children {
		rendered, err := child.renderQBE()
		if err != nil {
			return nil, err
		}
		items = append(items, rendered)
	}
	return object{{key: symbol, value: items}}, nil
}

// mergedQBE renders an AND whose children are all primitives on distinct
// keys as a single object, which the store evaluates as an implicit AND.
func (o *Operation) mergedQBE() (object, bool, error) {
	if len(o.children) == 0 {
		return nil, false, nil
	}
	merged := make(object, 0, len(o.children))
	for _, child := range o.children {
		if child.kind != KindPrimitive || merged.has(child.key) {
			return nil, false, nil
		}
		rendered, err := child.primitiveQBE()
		if err != nil {
			return nil, false, err
		}
		merged = append(merged, rendered...)
	}
	return merged, true, nil
}
