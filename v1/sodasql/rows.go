package sodasql

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Aleph-Alpha/docstore/v1/document"
)

const (
	columnID           = "ID"
	columnCreated      = "CREATED_ON"
	columnLastModified = "LAST_MODIFIED"
	columnVersion      = "VERSION"
	columnDocument     = "JSON_DOCUMENT"
)

// ReadEnvelopes reads every row into an envelope. The payload comes from
// the JSON_DOCUMENT column, or from the first column when the result has
// no such column; only then are the metadata columns read. Rows whose
// payload is NULL are skipped. The caller closes rows.
func ReadEnvelopes(rows Rows) ([]document.Envelope, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(cols))
	for i, c := range cols {
		index[strings.ToUpper(c)] = i
	}
	docIdx, complete := index[columnDocument]

	envs := []document.Envelope{}
	for rows.Next() {
		values := make([]interface{}, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		if values[docIdx] == nil {
			continue
		}
		text, err := documentText(values[docIdx])
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(text) == "" {
			return nil, document.Validationf("cannot retrieve json data")
		}

		env := document.Envelope{Value: json.RawMessage(text)}
		if complete {
			env.ID = column[string](values, index, columnID, asString)
			env.ETag = column[string](values, index, columnVersion, asString)
			env.Created = column[time.Time](values, index, columnCreated, asTime)
			env.LastModified = column[time.Time](values, index, columnLastModified, asTime)
		}
		envs = append(envs, env)
	}
	return envs, rows.Err()
}

func documentText(v interface{}) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case []byte:
		return string(t), nil
	case fmt.Stringer:
		return t.String(), nil
	}
	return "", document.Validationf("cannot retrieve json data from column of type %T", v)
}

func column[T any](values []interface{}, index map[string]int, name string, conv func(interface{}) T) T {
	i, ok := index[name]
	if !ok {
		var zero T
		return zero
	}
	return conv(values[i])
}

func asString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	}
	return fmt.Sprint(v)
}

func asTime(v interface{}) time.Time {
	if t, ok := v.(time.Time); ok {
		return t.UTC()
	}
	return time.Time{}
}
