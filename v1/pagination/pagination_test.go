package pagination

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aleph-Alpha/docstore/v1/document"
)

func ordered(path string, o document.Ordering) *document.Page {
	return &document.Page{PageNumber: 2, ItemsPerPage: 5, OrderingPath: path, Ordering: o}
}

func TestREST_AppendURL(t *testing.T) {
	var r REST
	assert.Equal(t, "http://h/c", r.AppendURL(nil, "http://h/c"))
	assert.Equal(t, "http://h/c?offset=0&limit=10", r.AppendURL(document.NewPage(), "http://h/c"))
	assert.Equal(t, "http://h/c?offset=5&limit=5", r.AppendURL(ordered("", document.Ascending), "http://h/c"))
}

func TestREST_ListURL(t *testing.T) {
	var r REST
	u := r.ListURL(ordered("name", document.Descending), "http://h/c")

	parsed, err := url.Parse(u)
	require.NoError(t, err)
	assert.Equal(t, "5", parsed.Query().Get("offset"))
	assert.Equal(t, "5", parsed.Query().Get("limit"))
	assert.JSONEq(t, `{"$orderby":[{"path":"name","order":"desc"}]}`, parsed.Query().Get("q"))

	assert.Equal(t, "http://h/c?offset=0&limit=10", r.ListURL(document.NewPage(), "http://h/c"))
}

func TestREST_ApplyFilter(t *testing.T) {
	var r REST

	u, body, err := r.ApplyFilter(ordered("age", document.Ascending), "http://h/c?action=query", `{"name":"x"}`)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(u, "?offset=5&limit=5"))
	assert.Equal(t, `{"$query":{"name":"x"},"$orderby":[{"path":"age","order":"asc"}]}`, body)

	withOrder := `{"$query":{"name":"x"},"$orderby":[{"path":"b","order":"desc"}]}`
	_, body, err = r.ApplyFilter(ordered("age", document.Ascending), "http://h/c", withOrder)
	require.NoError(t, err)
	assert.Equal(t, withOrder, body)

	_, body, err = r.ApplyFilter(nil, "http://h/c", `{"name":"x"}`)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"x"}`, body)

	_, body, err = r.ApplyFilter(nil, "http://h/c", "")
	require.NoError(t, err)
	assert.Equal(t, "{}", body)

	_, _, err = r.ApplyFilter(nil, "http://h/c", `[1,2]`)
	assert.True(t, document.IsValidation(err))

	_, _, err = r.ApplyFilter(&document.Page{PageNumber: 0, ItemsPerPage: 1}, "http://h/c", `{}`)
	assert.True(t, document.IsValidation(err))
}

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter(`{"a":{"$eq":1}}`)
	require.NoError(t, err)
	assert.Equal(t, `{"a":{"$eq":1}}`, string(f.Query))
	assert.False(t, f.HasOrder())

	f, err = ParseFilter(`{"$query":{"a":1},"$orderby":[{"path":"a","order":"asc"}]}`)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(f.Query))
	assert.True(t, f.HasOrder())

	f, err = ParseFilter("  ")
	require.NoError(t, err)
	assert.Nil(t, f.Query)

	for _, bad := range []string{`not json`, `"text"`, `{"$query":[1]}`, `{"$orderby":[{"order":"asc"}]}`, `{"$orderby":[{"path":"a","order":"sideways"}]}`} {
		_, err := ParseFilter(bad)
		assert.True(t, document.IsValidation(err), bad)
	}
}

func TestClause(t *testing.T) {
	assert.Equal(t, "", Clause(0, 2147483647))
	assert.Equal(t, "OFFSET 0 ROWS FETCH NEXT 10 ROWS ONLY", Clause(0, 10))
	assert.Equal(t, "OFFSET 20 ROWS FETCH NEXT 10 ROWS ONLY", Clause(20, 10))
	assert.Equal(t, "OFFSET 20 ROWS FETCH NEXT 2147483647 ROWS ONLY", Clause(20, 2147483647))
}

func TestSQL_Compute(t *testing.T) {
	var s SQL
	d, err := s.Compute(nil)
	require.NoError(t, err)
	assert.Equal(t, "{}", d.FilterString)
	assert.Nil(t, d.Skip)
	assert.Equal(t, "", d.Clause())

	d, err = s.Compute(&document.Page{PageNumber: 3, ItemsPerPage: 10})
	require.NoError(t, err)
	assert.Equal(t, 20, *d.Skip)
	assert.Equal(t, 10, *d.Limit)
	assert.Equal(t, "OFFSET 20 ROWS FETCH NEXT 10 ROWS ONLY", d.Clause())

	_, err = s.Compute(&document.Page{PageNumber: 1, ItemsPerPage: -1})
	assert.True(t, document.IsValidation(err))
}

func TestQBE_Compute(t *testing.T) {
	var q QBE

	d, err := q.Compute(nil, Filter{})
	require.NoError(t, err)
	assert.Equal(t, `{"$query":{},"$orderby":{}}`, d.FilterString)
	assert.Equal(t, "", d.SkipPart())
	assert.Equal(t, "", d.LimitPart())

	f, err := ParseFilter(`{"a":1}`)
	require.NoError(t, err)
	d, err = q.Compute(ordered("a", document.Descending), f)
	require.NoError(t, err)
	assert.Equal(t, `{"$query":{"a":1},"$orderby":[{"path":"a","order":"desc"}]}`, d.FilterString)
	assert.Equal(t, ".skip(5)", d.SkipPart())
	assert.Equal(t, ".limit(5)", d.LimitPart())

	f, err = ParseFilter(`{"$query":{"a":1},"$orderby":[{"path":"b"}]}`)
	require.NoError(t, err)
	d, err = q.Compute(ordered("a", document.Descending), f)
	require.NoError(t, err)
	assert.Equal(t, `{"$query":{"a":1},"$orderby":[{"path":"b"}]}`, d.FilterString)
}
