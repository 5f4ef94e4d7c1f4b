package query

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DocumentColumn is the column holding the JSON payload in a collection table.
const DocumentColumn = `"JSON_DOCUMENT"`

// sqlPath limits keys to JSON path steps that can be embedded in '$.key'.
var sqlPath = regexp.MustCompile(`^[A-Za-z0-9_.$\[\]*]+$`)

func (o *Operation) renderSQL() (string, error) {
	switch o.kind {
	case KindPrimitive:
		return o.primitiveSQL()
	case KindAnd:
		return o.combinatorSQL("AND")
	case KindOr:
		return o.combinatorSQL("OR")
	case KindNot:
		if len(o.children) != 1 {
			return "", fmt.Errorf("%w: -NOT- must have a single parameter, got %d", ErrStructural, len(o.children))
		}
		child, err := o.children[0].renderSQL()
		if err != nil {
			return "", err
		}
		return "!" + child, nil
	}
	return "", fmt.Errorf("%w: unknown operation kind %d", ErrStructural, int(o.kind))
}

// primitiveSQL renders one comparison. String equality and Contains use
// json_textcontains; hyphens are escaped only in those literals, since plain
// comparison literals are matched verbatim.
func (o *Operation) primitiveSQL() (string, error) {
	if len(o.children) > 0 {
		return "", fmt.Errorf("%w: primitive %q cannot have parameters", ErrStructural, o.key)
	}
	if !sqlPath.MatchString(o.key) {
		return "", fmt.Errorf("%w: key %q is not a valid JSON path", ErrStructural, o.key)
	}
	path := jsonValue(o.key)

	if o.valueOf == stringValue && (o.compare == Equals || o.compare == Contains) {
		return fmt.Sprintf("json_textcontains(%s, '$.%s', '%s')", DocumentColumn, o.key, textContainsLiteral(o.str)), nil
	}

	op, err := o.compare.SQLOperator()
	if err != nil {
		return "", err
	}

	var literal string
	switch o.valueOf {
	case stringValue:
		literal = sqlLiteral(o.str)
	case upperStringValue:
		path = "upper(" + path + ")"
		literal = sqlLiteral(o.str)
	case intValue:
		literal = strconv.Itoa(o.num)
	case datetimeValue:
		literal = o.instant.Format(datetimeLayout)
	}
	return fmt.Sprintf("%s %s '%s'", path, op, literal), nil
}

func (o *Operation) combinatorSQL(keyword string) (string, error) {
	if len(o.children) == 0 {
		return "", fmt.Errorf("%w: -%s- must have some parameters", ErrStructural, keyword)
	}
	parts := make([]string, 0, len(o.children))
	for _, child := range o.children {
		rendered, err := child.renderSQL()
		if err != nil {
			return "", err
		}
		parts = append(parts, rendered)
	}
	return "(" + strings.Join(parts, " "+keyword+" ") + ")", nil
}

func jsonValue(key string) string {
	return fmt.Sprintf("json_value(%s, '$.%s')", DocumentColumn, key)
}
