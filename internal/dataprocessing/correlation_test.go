package dataprocessing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorrelationMatrix_Sample(t *testing.T) {
	table := normalizedSample(t, sampleRows)
	m := CorrelationMatrix(table)

	require.Equal(t, []string{"unit_price", "quantity", "total", "hour"}, m.Columns)

	for i := range m.Columns {
		assert.Equal(t, 1.0, m.Values[i][i])
		for j := range m.Columns {
			assert.Equal(t, m.Values[i][j], m.Values[j][i])
			assert.LessOrEqual(t, math.Abs(m.Values[i][j]), 1.0)
		}
	}

	a, b, r, ok := m.StrongestPair()
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"unit_price", "total"}, []string{a, b})
	assert.Greater(t, r, 0.5)

	hourPrice, ok := m.At("hour", "unit_price")
	require.True(t, ok)
	assert.Less(t, math.Abs(hourPrice), 0.1)
}

func TestCorrelationMatrix_EdgeCases(t *testing.T) {
	table := mustTable(t, [][]string{
		{"x", "y", "flat", "sparse", "label"},
		{"1", "2", "5", "1", "a"},
		{"2", "4", "5", "NA", "b"},
		{"3", "6", "5", "NA", "c"},
		{"4", "8.5", "5", "NA", "d"},
	})

	m := CorrelationMatrix(table)
	assert.Equal(t, []string{"x", "y", "flat", "sparse"}, m.Columns)

	xy, _ := m.At("x", "y")
	assert.InDelta(t, 1.0, xy, 0.01)

	xFlat, _ := m.At("x", "flat")
	assert.True(t, isNaN(xFlat), "zero variance pairs are NaN")

	flatFlat, _ := m.At("flat", "flat")
	assert.Equal(t, 1.0, flatFlat)

	xSparse, _ := m.At("x", "sparse")
	assert.True(t, isNaN(xSparse), "fewer than two complete rows is NaN")

	_, ok := m.At("x", "label")
	assert.False(t, ok)

	a, b, _, ok := m.StrongestPair()
	require.True(t, ok)
	assert.Equal(t, "x", a)
	assert.Equal(t, "y", b)
}

func TestCorrelationMatrix_PairwiseDeletion(t *testing.T) {
	table := mustTable(t, [][]string{
		{"x", "y"},
		{"1", "10"},
		{"2", "NA"},
		{"3", "30"},
		{"NA", "40"},
		{"5", "50"},
	})

	m := CorrelationMatrix(table)
	r, ok := m.At("x", "y")
	require.True(t, ok)
	assert.InDelta(t, 1.0, r, 1e-12)
}

func TestCorrMatrix_StrongestPair_NoPairs(t *testing.T) {
	m := CorrelationMatrix(mustTable(t, [][]string{{"x", "label"}, {"1", "a"}, {"2", "b"}}))
	_, _, _, ok := m.StrongestPair()
	assert.False(t, ok)
}
