package distance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsWrongLength(t *testing.T) {
	_, err := New(3, []float64{1, 2})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDistance)
}

func TestNewRejectsNegativeEntries(t *testing.T) {
	_, err := New(2, []float64{-1})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDistance)
}

func TestFromDenseRoundTrip(t *testing.T) {
	dense := [][]float64{
		{0, 1, 2},
		{1, 0, 3},
		{2, 3, 0},
	}
	m, err := FromDense(dense, 1e-9)
	require.NoError(t, err)
	assert.Equal(t, 3, m.N())
	assert.Equal(t, 1.0, m.At(0, 1))
	assert.Equal(t, 1.0, m.At(1, 0))
	assert.Equal(t, 2.0, m.At(0, 2))
	assert.Equal(t, 0.0, m.At(2, 2))
}

func TestFromDenseRejectsAsymmetric(t *testing.T) {
	dense := [][]float64{
		{0, 1},
		{2, 0},
	}
	_, err := FromDense(dense, 1e-9)
	require.Error(t, err)
}

func TestFromDenseRejectsNonZeroDiagonal(t *testing.T) {
	dense := [][]float64{
		{1, 1},
		{1, 0},
	}
	_, err := FromDense(dense, 1e-9)
	require.Error(t, err)
}

func TestAtPanicsOutOfRange(t *testing.T) {
	m, err := New(2, []float64{1})
	require.NoError(t, err)
	assert.Panics(t, func() { m.At(0, 2) })
}

func TestSubPreservesPairwiseDistances(t *testing.T) {
	dense := [][]float64{
		{0, 1, 2, 3},
		{1, 0, 4, 5},
		{2, 4, 0, 6},
		{3, 5, 6, 0},
	}
	m, err := FromDense(dense, 1e-9)
	require.NoError(t, err)

	sub := m.Sub([]int{0, 2, 3})
	require.Equal(t, 3, sub.N())
	assert.Equal(t, m.At(0, 2), sub.At(0, 1))
	assert.Equal(t, m.At(0, 3), sub.At(0, 2))
	assert.Equal(t, m.At(2, 3), sub.At(1, 2))
}

func TestRowSum(t *testing.T) {
	dense := [][]float64{
		{0, 1, 2},
		{1, 0, 3},
		{2, 3, 0},
	}
	m, err := FromDense(dense, 1e-9)
	require.NoError(t, err)
	assert.Equal(t, 3.0, m.RowSum(0))
	assert.Equal(t, 4.0, m.RowSum(1))
	assert.Equal(t, 5.0, m.RowSum(2))
}
