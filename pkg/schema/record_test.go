package schema

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordKeepsKeyOrder(t *testing.T) {
	rec := NewRecord().
		Set("zeta", int64(1)).
		Set("alpha", "a").
		Set("mid", true)

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, rec.Keys())
	assert.Equal(t, 3, rec.Len())
}

func TestRecordResetKeepsPosition(t *testing.T) {
	rec := NewRecord().Set("a", int64(1)).Set("b", int64(2))
	rec.Set("a", "replaced")

	assert.Equal(t, []string{"a", "b"}, rec.Keys())
	val, ok := rec.Get("a")
	require.True(t, ok)
	assert.Equal(t, "replaced", val)
}

func TestRecordGetDistinguishesNullFromMissing(t *testing.T) {
	rec := NewRecord().Set("email", nil)

	val, ok := rec.Get("email")
	assert.True(t, ok)
	assert.Nil(t, val)

	_, ok = rec.Get("name")
	assert.False(t, ok)
}

func TestNilRecordIsEmpty(t *testing.T) {
	var rec *Record

	_, ok := rec.Get("id")
	assert.False(t, ok)
	assert.Equal(t, 0, rec.Len())
	assert.Nil(t, rec.Keys())
}

func TestRecordMarshalJSON(t *testing.T) {
	nested := NewRecord().Set("inner", json.Number("1.5"))
	rec := NewRecord().
		Set("name", "Tom & <Jerry>").
		Set("id", int64(42)).
		Set("ok", false).
		Set("missing", nil).
		Set("nested", nested).
		Set("list", []any{int64(1), "two", nil})

	data, err := rec.MarshalJSON()
	require.NoError(t, err)

	assert.Equal(t,
		`{"name":"Tom & <Jerry>","id":42,"ok":false,"missing":null,"nested":{"inner":1.5},"list":[1,"two",null]}`,
		string(data))
}

func TestRecordMarshalThroughEncoder(t *testing.T) {
	rec := NewRecord().Set("b", int64(2)).Set("a", int64(1))

	data, err := json.Marshal([]*Record{rec})
	require.NoError(t, err)
	assert.Equal(t, `[{"b":2,"a":1}]`, string(data))
}

func TestRecordMarshalJSONLargeInteger(t *testing.T) {
	rec := NewRecord().Set("tokens", decimal.RequireFromString("99999999999999999999"))

	data, err := rec.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"tokens":99999999999999999999}`, string(data))
}

func TestRecordMarshalJSONFloats(t *testing.T) {
	tests := []struct {
		literal string
		want    string
	}{
		{"1.5", "1.5"},
		{"2.50", "2.5"},
		{"1e2", "100.0"},
		{"1.0", "1.0"},
		{"-0.5", "-0.5"},
		{"0.0", "0.0"},
		{"0.0001", "0.0001"},
		{"0.00001", "1.0e-05"},
		{"1.25e-7", "1.25e-07"},
		{"1e15", "1000000000000000.0"},
		{"1e16", "1.0e+16"},
		{"-1.5E20", "-1.5e+20"},
		{"1e400", "1e400"},
	}

	for _, tt := range tests {
		t.Run(tt.literal, func(t *testing.T) {
			data, err := NewRecord().Set("n", json.Number(tt.literal)).MarshalJSON()
			require.NoError(t, err)
			assert.Equal(t, `{"n":`+tt.want+`}`, string(data))
		})
	}
}

func TestRecordMarshalJSONStringEscaping(t *testing.T) {
	rec := NewRecord().Set("text", "a\u2028b é \"q\" back\\slash\ttab\x01</script>")

	data, err := rec.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"text":"a`+"\u2028"+`b é \"q\" back\\slash\ttab\u0001</script>"}`, string(data))
	assert.True(t, json.Valid(data))
}
