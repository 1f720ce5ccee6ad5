package table

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppend_Pads(t *testing.T) {
	tb := New("ads_clicked", "Ads clicked", "Date", "Count")
	tb.Append("01-01-2024")
	assert.Equal(t, [][]any{{"01-01-2024", nil}}, tb.Rows)
	assert.Equal(t, 1, tb.Len())
}

func TestAppend_TooManyValuesPanics(t *testing.T) {
	tb := New("k", "", "only")
	assert.Panics(t, func() { tb.Append(1, 2) })
}

func TestRow(t *testing.T) {
	tb := New("k", "", "Date", "Count")
	tb.Append("01-01-2024", 3)
	assert.Equal(t, map[string]any{"Date": "01-01-2024", "Count": 3}, tb.Row(0))
}

func TestMarshalJSON_KeepsColumnOrder(t *testing.T) {
	tb := New("posts_1", "Posts", "Zeta", "Alpha")
	tb.Append("z", 1)

	data, err := json.Marshal(tb)
	require.NoError(t, err)
	assert.JSONEq(t, `{"key":"posts_1","title":"Posts","columns":["Zeta","Alpha"],"rows":[{"Zeta":"z","Alpha":1}]}`, string(data))
	assert.Contains(t, string(data), `{"Zeta":"z","Alpha":1}`)
}

func TestMarshalJSON_Deterministic(t *testing.T) {
	build := func() *Table {
		tb := New("k", "t", "b", "a", "c")
		tb.Append("1", []string{"x", "y"}, true)
		return tb
	}
	first, err := json.Marshal(build())
	require.NoError(t, err)
	second, err := json.Marshal(build())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestUnmarshalJSON(t *testing.T) {
	tb := New("k", "t", "Date", "Count")
	tb.Append("01-01-2024", 2)
	data, err := json.Marshal(tb)
	require.NoError(t, err)

	var back Table
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, "k", back.Key)
	assert.Equal(t, []string{"Date", "Count"}, back.Columns)
	assert.Equal(t, [][]any{{"01-01-2024", float64(2)}}, back.Rows)
}

func TestMarshalJSON_Empty(t *testing.T) {
	data, err := json.Marshal(&Table{Key: "k"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"key":"k","title":"","columns":[],"rows":[]}`, string(data))
}
