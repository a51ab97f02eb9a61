// Package distance provides random-access storage for a symmetric,
// zero-diagonal pairwise distance matrix, addressed as a compact
// lower-triangular array rather than a dense N×N slice.
package distance

import (
	"fmt"
	"math"

	"aswcluster/pkg/clustererr"
)

// ErrInvalidDistance is returned when the backing store cannot represent a
// valid symmetric, zero-diagonal distance matrix. It is the same sentinel
// as clustererr.ErrInvalidDistance.
var ErrInvalidDistance = clustererr.ErrInvalidDistance

// Matrix is an N-point pairwise distance store. Only the lower triangle
// (i<j) is materialised; D(i,i) is always 0 and D(i,j) == D(j,i).
//
// Addressing: for i<j, the pair (i,j) is stored at index
// i*N - i*(i+1)/2 + (j-i-1).
type Matrix struct {
	n     int
	lower []float64
}

// New builds a Matrix from a flattened lower-triangular array of length
// n*(n-1)/2, given in row-major order (row 0 first, then row 1, ...).
func New(n int, lower []float64) (*Matrix, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: n=%d must be non-negative", ErrInvalidDistance, n)
	}
	want := n * (n - 1) / 2
	if len(lower) != want {
		return nil, fmt.Errorf("%w: expected %d lower-triangular entries for n=%d, got %d", ErrInvalidDistance, want, n, len(lower))
	}
	for _, v := range lower {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return nil, fmt.Errorf("%w: entries must be finite and non-negative, got %v", ErrInvalidDistance, v)
		}
	}
	return &Matrix{n: n, lower: lower}, nil
}

// FromDense builds a Matrix from a dense N×N slice, validating symmetry
// and a zero diagonal within tol.
func FromDense(d [][]float64, tol float64) (*Matrix, error) {
	n := len(d)
	for i, row := range d {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has length %d, want %d", ErrInvalidDistance, i, len(row), n)
		}
	}
	lower := make([]float64, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		if math.Abs(d[i][i]) > tol {
			return nil, fmt.Errorf("%w: diagonal entry (%d,%d)=%v is not zero", ErrInvalidDistance, i, i, d[i][i])
		}
		for j := i + 1; j < n; j++ {
			if math.Abs(d[i][j]-d[j][i]) > tol {
				return nil, fmt.Errorf("%w: entries (%d,%d) and (%d,%d) are not symmetric", ErrInvalidDistance, i, j, j, i)
			}
			lower = append(lower, d[i][j])
		}
	}
	return New(n, lower)
}

// N returns the number of points.
func (m *Matrix) N() int { return m.n }

// index returns the storage offset for i<j.
func index(n, i, j int) int {
	return i*n - i*(i+1)/2 + (j - i - 1)
}

// At returns D(i,j), 0 when i==j. Panics on out-of-range indices, as a
// programmer error rather than a recoverable condition.
func (m *Matrix) At(i, j int) float64 {
	if i < 0 || j < 0 || i >= m.n || j >= m.n {
		panic(fmt.Sprintf("distance: index (%d,%d) out of range for n=%d", i, j, m.n))
	}
	if i == j {
		return 0
	}
	if i > j {
		i, j = j, i
	}
	return m.lower[index(m.n, i, j)]
}

// Sub extracts the n×n sub-matrix induced by idx, preserving idx's order:
// the returned Matrix's point a corresponds to the original point idx[a].
func (m *Matrix) Sub(idx []int) *Matrix {
	n := len(idx)
	lower := make([]float64, 0, n*(n-1)/2)
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			lower = append(lower, m.At(idx[a], idx[b]))
		}
	}
	sub, err := New(n, lower)
	if err != nil {
		// Sub only ever copies already-validated entries out of m, so this
		// can only happen on programmer error (e.g. duplicate indices are
		// still valid distances, just not necessarily meaningful).
		panic(err)
	}
	return sub
}

// RowSum returns sum_j D(i,j) for all j != i, the row total used to check
// the sum-matrix invariant in the bookkeeper.
func (m *Matrix) RowSum(i int) float64 {
	var s float64
	for j := 0; j < m.n; j++ {
		if j != i {
			s += m.At(i, j)
		}
	}
	return s
}
