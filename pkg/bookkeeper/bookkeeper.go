// Package bookkeeper maintains the incremental state (labelling L,
// cluster sizes n, and per-point-to-cluster distance sums S) that the
// effOSil and PAMSil engines use to evaluate and commit moves in O(N)
// instead of recomputing silhouettes from scratch.
package bookkeeper

import (
	"errors"

	"aswcluster/pkg/distance"
)

// ErrEmptyCluster is returned by MovePoint when the requested move would
// leave its source cluster empty; the empty-cluster invariant is a hard
// precondition, never silently patched around.
var ErrEmptyCluster = errors.New("bookkeeper: move would empty source cluster")

// State holds (L, n, S) for one engine invocation. It is not safe for
// concurrent mutation; callers that parallelise candidate evaluation must
// only read State and apply the single winning move afterwards.
type State struct {
	D *distance.Matrix
	L []int
	N []int // cluster sizes
	S [][]float64
	K int
}

// Build computes S from scratch for the given labelling: O(N^2*k) worst
// case, but a single O(N^2) pass over all pairs in practice.
func Build(D *distance.Matrix, L []int, k int) *State {
	n := D.N()
	st := &State{
		D: D,
		L: append([]int(nil), L...),
		N: make([]int, k),
		S: make([][]float64, n),
		K: k,
	}
	for i := 0; i < n; i++ {
		st.N[L[i]]++
		st.S[i] = make([]float64, k)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := D.At(i, j)
			st.S[i][L[j]] += d
			st.S[j][L[i]] += d
		}
	}
	return st
}

// MovePoint reassigns point i from its current cluster to cNew, updating S
// and N in place in O(N). It refuses to empty the source cluster.
func (st *State) MovePoint(i, cNew int) error {
	cOld := st.L[i]
	if cOld == cNew {
		return nil
	}
	if st.N[cOld] <= 1 {
		return ErrEmptyCluster
	}

	for j := 0; j < len(st.L); j++ {
		if j == i {
			continue
		}
		d := st.D.At(i, j)
		st.S[j][cOld] -= d
		st.S[j][cNew] += d
	}

	st.N[cOld]--
	st.N[cNew]++
	st.L[i] = cNew
	return nil
}

// Rebuild recomputes S and N from scratch for a new labelling, used by
// PAMSil after a medoid swap is committed (swapping a medoid is not a
// pointwise structural change to S the way moving a single point is: every
// non-medoid point may be reassigned to the new nearest medoid at once).
func (st *State) Rebuild(L []int) {
	fresh := Build(st.D, L, st.K)
	st.L, st.N, st.S = fresh.L, fresh.N, fresh.S
}

// Clone returns a deep copy of the state, used when an engine wants to
// explore a trial labelling without disturbing the committed one.
func (st *State) Clone() *State {
	cp := &State{
		D: st.D,
		L: append([]int(nil), st.L...),
		N: append([]int(nil), st.N...),
		S: make([][]float64, len(st.S)),
		K: st.K,
	}
	for i, row := range st.S {
		cp.S[i] = append([]float64(nil), row...)
	}
	return cp
}
