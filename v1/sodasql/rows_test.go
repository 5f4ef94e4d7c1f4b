package sodasql

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aleph-Alpha/docstore/v1/document"
)

var envelopeColumns = []string{"ID", "CREATED_ON", "LAST_MODIFIED", "VERSION", "JSON_DOCUMENT"}

// sliceRows serves fixed rows. Scan supports *interface{} and *int64.
type sliceRows struct {
	cols   []string
	data   [][]interface{}
	pos    int
	err    error
	closed bool
}

func (r *sliceRows) Next() bool {
	if r.pos < len(r.data) {
		r.pos++
		return true
	}
	return false
}

func (r *sliceRows) Columns() ([]string, error) { return r.cols, nil }

func (r *sliceRows) Scan(dest ...interface{}) error {
	row := r.data[r.pos-1]
	for i, d := range dest {
		switch p := d.(type) {
		case *interface{}:
			*p = row[i]
		case *int64:
			*p = row[i].(int64)
		}
	}
	return nil
}

func (r *sliceRows) Err() error { return r.err }

func (r *sliceRows) Close() error {
	r.closed = true
	return nil
}

var (
	created  = time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
	modified = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
)

func docRows(docs ...interface{}) *sliceRows {
	r := &sliceRows{cols: envelopeColumns}
	for i, d := range docs {
		id := string(rune('A' + i))
		r.data = append(r.data, []interface{}{id, created, modified, "V" + id, d})
	}
	return r
}

func TestReadEnvelopes(t *testing.T) {
	rows := docRows(`{"title":"a"}`, nil, []byte(`{"title":"c"}`))

	envs, err := ReadEnvelopes(rows)
	require.NoError(t, err)
	require.Len(t, envs, 2)

	assert.Equal(t, "A", envs[0].ID)
	assert.Equal(t, "VA", envs[0].ETag)
	assert.True(t, created.Equal(envs[0].Created))
	assert.True(t, modified.Equal(envs[0].LastModified))
	assert.JSONEq(t, `{"title":"a"}`, string(envs[0].Value))

	assert.Equal(t, "C", envs[1].ID)
	assert.JSONEq(t, `{"title":"c"}`, string(envs[1].Value))
}

func TestReadEnvelopes_DocumentOnly(t *testing.T) {
	rows := &sliceRows{
		cols: []string{"DATA"},
		data: [][]interface{}{{`{"n":1}`}},
	}
	envs, err := ReadEnvelopes(rows)
	require.NoError(t, err)
	require.Len(t, envs, 1)
	assert.Empty(t, envs[0].ID)
	assert.JSONEq(t, `{"n":1}`, string(envs[0].Value))
}

func TestReadEnvelopes_InvalidDocuments(t *testing.T) {
	_, err := ReadEnvelopes(docRows("  "))
	assert.True(t, document.IsValidation(err))

	_, err = ReadEnvelopes(docRows(42))
	assert.True(t, document.IsValidation(err))
}

func TestReadEnvelopes_RowsError(t *testing.T) {
	rows := docRows(`{}`)
	rows.err = assert.AnError
	_, err := ReadEnvelopes(rows)
	assert.ErrorIs(t, err, assert.AnError)
}
