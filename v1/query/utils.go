package query

import (
	"bytes"
	"encoding/json"
	"strings"
	"unicode"
)

// member is one key/value pair of an ordered JSON object.
type member struct {
	key   string
	value interface{}
}

// object is a JSON object that keeps the order its members were added in,
// so rendering the same tree twice yields byte-identical output.
type object []member

func (o object) has(key string) bool {
	for _, m := range o {
		if m.key == key {
			return true
		}
	}
	return false
}

// MarshalJSON writes the members in insertion order.
func (o object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := encodeJSON(m.key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := encodeJSON(m.value)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// encodeJSON marshals v without HTML escaping so that comparison values such
// as "<" or "&" reach the store unchanged.
func encodeJSON(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// camelCase converts a field name the way JSON property naming does for
// documents: the leading run of upper-case letters is lowered, keeping the
// last one upper-case when it starts the next word ("URLValue" -> "urlValue").
func camelCase(name string) string {
	if name == "" {
		return name
	}
	runes := []rune(name)
	if !unicode.IsUpper(runes[0]) {
		return name
	}
	for i := 0; i < len(runes); i++ {
		if i == 1 && !unicode.IsUpper(runes[i]) {
			break
		}
		hasNext := i+1 < len(runes)
		if i > 0 && hasNext && !unicode.IsUpper(runes[i+1]) {
			if runes[i+1] == ' ' {
				runes[i] = unicode.ToLower(runes[i])
			}
			break
		}
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}

// sqlLiteral doubles single quotes so the value stays inside its SQL string literal.
func sqlLiteral(value string) string {
	return strings.ReplaceAll(value, "'", "''")
}

// textContainsLiteral additionally escapes hyphens, which the full-text
// operator reads as a negation marker.
func textContainsLiteral(value string) string {
	return strings.ReplaceAll(sqlLiteral(value), "-", `\-`)
}
