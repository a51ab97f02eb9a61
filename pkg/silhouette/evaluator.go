// Package silhouette computes the Average Silhouette Width (ASW) of a
// labelling, either from scratch against a distance matrix or from an
// already-maintained per-cluster sum matrix.
//
// See: https://en.wikipedia.org/wiki/Silhouette_(clustering)
package silhouette

import (
	"math"

	"aswcluster/pkg/distance"
)

// PointScore is the per-point silhouette s(i) together with its a(i)/b(i)
// components, useful for diagnostics and for the report renderer.
type PointScore struct {
	A, B, S float64
}

// FromScratch computes the ASW of labelling L directly against D, without
// assuming any auxiliary structure is available. O(N^2).
//
// Singleton clusters contribute s(i)=0 (Rousseeuw's convention); when both
// a(i) and b(i) are zero, s(i)=0 as well.
func FromScratch(L []int, D *distance.Matrix) float64 {
	scores := PerPointFromScratch(L, D)
	return mean(scores)
}

// PerPointFromScratch returns s(i) for every point, computed from scratch.
func PerPointFromScratch(L []int, D *distance.Matrix) []PointScore {
	n := D.N()
	k := 0
	for _, c := range L {
		if c+1 > k {
			k = c + 1
		}
	}

	// Per-cluster sum-of-distances-to-i and sizes, built in one O(N^2) pass.
	sums := make([][]float64, n)
	sizes := make([]int, k)
	for i := range L {
		sums[i] = make([]float64, k)
	}
	for i := 0; i < n; i++ {
		sizes[L[i]]++
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := D.At(i, j)
			sums[i][L[j]] += d
			sums[j][L[i]] += d
		}
	}

	return perPointFromSums(L, sizes, sums)
}

// FromSums computes the ASW assuming S is current: S[i][c] = sum of
// distances from i to every point currently in cluster c. O(N*k).
func FromSums(L []int, n []int, S [][]float64) float64 {
	return mean(perPointFromSums(L, n, S))
}

// PerPoint returns s(i) for every point, given a current sum matrix.
func PerPoint(L []int, n []int, S [][]float64) []PointScore {
	return perPointFromSums(L, n, S)
}

func perPointFromSums(L []int, sizes []int, S [][]float64) []PointScore {
	out := make([]PointScore, len(L))
	for i, c := range L {
		if sizes[c] <= 1 {
			// Rousseeuw's convention: a singleton cluster's sole member
			// contributes s(i)=0, not the degenerate (b-0)/b=1 the generic
			// formula below would otherwise produce.
			out[i] = PointScore{A: 0, B: 0, S: 0}
			continue
		}

		a := S[i][c] / float64(sizes[c]-1)

		b := math.Inf(1)
		for other := range S[i] {
			if other == c || sizes[other] == 0 {
				continue
			}
			cand := S[i][other] / float64(sizes[other])
			if cand < b {
				b = cand
			}
		}
		if math.IsInf(b, 1) {
			b = 0
		}

		var s float64
		if m := math.Max(a, b); m > 0 {
			s = (b - a) / m
		}
		out[i] = PointScore{A: a, B: b, S: s}
	}
	return out
}

func mean(scores []PointScore) float64 {
	if len(scores) == 0 {
		return 0
	}
	var sum float64
	for _, s := range scores {
		sum += s.S
	}
	return sum / float64(len(scores))
}

// TrialDelta evaluates the ASW of the labelling that would result from
// moving point i from its current cluster to cTarget, without mutating L,
// n or S. It builds the two virtual sum-matrix columns that would differ
// (cOld and cTarget) and calls FromSums against the hypothetical state.
//
// This is the O(N*k) trial evaluation that gives effOSil its speedup over
// recomputing ASW from scratch for every candidate move.
func TrialDelta(L []int, n []int, S [][]float64, D *distance.Matrix, i, cTarget int) float64 {
	cOld := L[i]
	if cOld == cTarget {
		return FromSums(L, n, S)
	}

	nn := len(L)
	trialN := append([]int(nil), n...)
	trialN[cOld]--
	trialN[cTarget]++

	trialS := make([][]float64, nn)
	for j := 0; j < nn; j++ {
		if j == i {
			trialS[j] = S[j]
			continue
		}
		row := append([]float64(nil), S[j]...)
		d := D.At(i, j)
		row[cOld] -= d
		row[cTarget] += d
		trialS[j] = row
	}

	trialL := append([]int(nil), L...)
	trialL[i] = cTarget

	return FromSums(trialL, trialN, trialS)
}
