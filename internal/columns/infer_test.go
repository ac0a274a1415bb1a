package columns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfer_FirstItemFieldsInOrder(t *testing.T) {
	got := Infer(fieldList{"a", "b"}, DefaultMetrics())

	require.Len(t, got, 2)

	a := got[0]
	assert.Equal(t, "a", a.Key)
	assert.Equal(t, "a", a.Name)
	assert.Equal(t, "a", a.FieldName)
	assert.True(t, a.IsSorted)
	assert.False(t, a.IsSortedDescending)
	assert.False(t, a.IsCollapsable)
	assert.Equal(t, 220, a.MinWidth)
	assert.Equal(t, 300, a.MaxWidth)

	b := got[1]
	assert.Equal(t, "b", b.Key)
	assert.False(t, b.IsSorted)
	assert.True(t, b.IsCollapsable)
}

func TestInfer_NoItem(t *testing.T) {
	assert.Empty(t, Infer(nil, DefaultMetrics()))
	assert.Empty(t, Infer(fieldList{}, DefaultMetrics()))
}

func TestInfer_TerminalMetrics(t *testing.T) {
	got := Infer(fieldList{"name"}, TerminalMetrics())

	require.Len(t, got, 1)
	assert.Equal(t, 22, got[0].MinWidth)
	assert.Equal(t, 30, got[0].MaxWidth)
}
