package query

import (
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCamelCase(t *testing.T) {
	cases := map[string]string{
		"":          "",
		"One":       "one",
		"firstName": "firstName",
		"FirstName": "firstName",
		"ID":        "id",
		"URLValue":  "urlValue",
		"A":         "a",
		"ABC":       "abc",
	}
	for in, want := range cases {
		assert.Equal(t, want, camelCase(in), in)
	}
}

func TestPrimitive_QBE(t *testing.T) {
	instant := time.Date(2024, 3, 5, 10, 20, 30, 123456700, time.UTC)

	cases := []struct {
		name string
		op   *Operation
		want string
	}{
		{"string default equals", String("One", "X"), `{"one":{"$eq":"X"}}`},
		{"string like", String("Name", "A%", Like), `{"name":{"$like":"A%"}}`},
		{"html characters kept", String("Expr", "a<b&c"), `{"expr":{"$eq":"a<b&c"}}`},
		{"int", Int("Age", 42, GreaterThan), `{"age":{"$gt":42}}`},
		{"datetime", Datetime("CreatedOn", instant, LessThanOrEquals), `{"createdOn":{"$timestamp":{"$lte":"2024-03-05T10:20:30.1234567Z"}}}`},
		{"upper string", UpperString("City", "Berlin", StartsWith), `{"city":{"$upper":{"$startsWith":"BERLIN"}}}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.op.QBE()
			require.NoError(t, err)
			assert.JSONEq(t, tc.want, got)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPrimitive_SQL(t *testing.T) {
	instant := time.Date(2024, 3, 5, 10, 20, 30, 0, time.UTC)

	cases := []struct {
		name string
		op   *Operation
		want string
	}{
		{"string equals uses text search", String("One", "X"), `json_textcontains("JSON_DOCUMENT", '$.one', 'X')`},
		{"string contains uses text search", String("One", "X", Contains), `json_textcontains("JSON_DOCUMENT", '$.one', 'X')`},
		{"hyphen escaped", String("Code", "a-b-c"), `json_textcontains("JSON_DOCUMENT", '$.code', 'a\-b\-c')`},
		{"hyphen verbatim in comparison", String("Code", "a-b", NotEquals), `json_value("JSON_DOCUMENT", '$.code') <> 'a-b'`},
		{"quote doubled", String("Name", "O'Brien", NotEquals), `json_value("JSON_DOCUMENT", '$.name') <> 'O''Brien'`},
		{"string ordering", String("Name", "m", GreaterThan), `json_value("JSON_DOCUMENT", '$.name') > 'm'`},
		{"int", Int("Age", 42, LessThan), `json_value("JSON_DOCUMENT", '$.age') < '42'`},
		{"int equals", Int("Age", 42), `json_value("JSON_DOCUMENT", '$.age') = '42'`},
		{"datetime", Datetime("CreatedOn", instant, GreaterThanOrEquals), `json_value("JSON_DOCUMENT", '$.createdOn') >= '2024-03-05T10:20:30.0000000Z'`},
		{"upper string", UpperString("City", "Berlin"), `upper(json_value("JSON_DOCUMENT", '$.city')) = 'BERLIN'`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.op.SQL()
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPrimitive_SQLRejectsQBEOnlyComparison(t *testing.T) {
	for _, op := range []*Operation{
		String("Name", "A%", Like),
		Int("Age", 1, In),
		String("Name", "^a", Regex),
	} {
		_, err := op.SQL()
		assert.ErrorIs(t, err, ErrInvalidComparison)
	}
}

func TestPrimitive_WithChildrenIsStructuralError(t *testing.T) {
	op := String("One", "X").With(String("Two", "Y"))

	_, err := op.QBE()
	assert.ErrorIs(t, err, ErrStructural)

	_, err = op.SQL()
	assert.ErrorIs(t, err, ErrStructural)
}

func TestCombinators_ZeroChildren(t *testing.T) {
	for _, op := range []*Operation{And(), Or(), Not()} {
		_, err := op.QBE()
		assert.True(t, IsStructuralError(err), op.Kind().String())

		_, err = op.SQL()
		assert.True(t, IsStructuralError(err), op.Kind().String())
	}
}

func TestNot_TwoChildren(t *testing.T) {
	op := Not().With(String("One", "X")).With(String("Two", "Y"))

	_, err := op.QBE()
	assert.ErrorIs(t, err, ErrStructural)

	_, err = op.SQL()
	assert.ErrorIs(t, err, ErrStructural)
}

func TestNot_SingleChild(t *testing.T) {
	op := Not().With(Int("Age", 18, LessThan))

	qbe, err := op.QBE()
	require.NoError(t, err)
	assert.Equal(t, `{"$not":{"age":{"$lt":18}}}`, qbe)

	sql, err := op.SQL()
	require.NoError(t, err)
	assert.Equal(t, `!json_value("JSON_DOCUMENT", '$.age') < '18'`, sql)
}

func TestAnd_SingleChild(t *testing.T) {
	op := And().With(String("One", "X"))

	qbe, err := op.QBE()
	require.NoError(t, err)
	assert.Equal(t, `{"one":{"$eq":"X"}}`, qbe)

	sql, err := op.SQL()
	require.NoError(t, err)
	assert.Equal(t, `(json_textcontains("JSON_DOCUMENT", '$.one', 'X'))`, sql)
}

func TestAnd_DuplicateKeysUseArray(t *testing.T) {
	op := And().
		With(Int("Age", 18, GreaterThanOrEquals)).
		With(Int("Age", 65, LessThan))

	qbe, err := op.QBE()
	require.NoError(t, err)
	assert.Equal(t, `{"$and":[{"age":{"$gte":18}},{"age":{"$lt":65}}]}`, qbe)
}

func TestAnd_NestedCombinatorUsesArray(t *testing.T) {
	op := And().
		With(String("One", "X")).
		With(Or().With(String("Two", "Y")).With(String("Three", "Z")))

	qbe, err := op.QBE()
	require.NoError(t, err)
	assert.Equal(t, `{"$and":[{"one":{"$eq":"X"}},{"$or":[{"two":{"$eq":"Y"}},{"three":{"$eq":"Z"}}]}]}`, qbe)
}

func TestOr_Render(t *testing.T) {
	op := Or().With(String("One", "X")).With(Int("Two", 2))

	qbe, err := op.QBE()
	require.NoError(t, err)
	assert.Equal(t, `{"$or":[{"one":{"$eq":"X"}},{"two":{"$eq":2}}]}`, qbe)

	sql, err := op.SQL()
	require.NoError(t, err)
	assert.Equal(t, `(json_textcontains("JSON_DOCUMENT", '$.one', 'X') OR json_value("JSON_DOCUMENT", '$.two') = '2')`, sql)
}

func TestRender_ErrorInNestedChildPropagates(t *testing.T) {
	op := Or().With(String("One", "X")).With(And())

	_, err := op.QBE()
	assert.ErrorIs(t, err, ErrStructural)

	_, err = op.SQL()
	assert.ErrorIs(t, err, ErrStructural)
}

func TestRender_Deterministic(t *testing.T) {
	op := nestedTree()

	firstQBE, err := op.QBE()
	require.NoError(t, err)
	firstSQL, err := op.SQL()
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		qbe, err := op.QBE()
		require.NoError(t, err)
		sql, err := op.SQL()
		require.NoError(t, err)
		assert.Equal(t, firstQBE, qbe)
		assert.Equal(t, firstSQL, sql)
	}
	assert.Len(t, op.Children(), 2)
}

func TestRender_Golden(t *testing.T) {
	op := nestedTree()

	qbe, err := op.QBE()
	require.NoError(t, err)
	sql, err := op.SQL()
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "nested_tree_qbe", []byte(qbe))
	g.Assert(t, "nested_tree_sql", []byte(sql))
}

func nestedTree() *Operation {
	return Or().
		With(And().
			With(String("Status", "open")).
			With(Int("Priority", 2, GreaterThanOrEquals))).
		With(Not().With(String("Owner", "ops-team", Contains)))
}
