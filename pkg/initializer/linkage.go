// Package initializer implements the concrete "external" initial-partition
// collaborator the ASW engines require: hierarchical single/average/complete
// linkage, and a build+swap PAM (Partitioning Around Medoids) seed.
//
// This package intentionally favours clarity over the incremental tricks
// the ASW engines themselves use — it produces the seed partition the
// engines then improve, and is not part of the optimisation hot path.
package initializer

import (
	"aswcluster/pkg/clustererr"
	"aswcluster/pkg/distance"
)

// Linkage selects how the distance between two clusters is derived from
// the pairwise distances of their members during agglomerative merging.
type Linkage int

const (
	Single Linkage = iota
	Complete
	Average
)

// combine returns the merged distance from cluster distances
// (dAC, dBC) between former clusters A, B (about to merge) and a third
// cluster C, and their sizes.
func (lk Linkage) combine(dAC, dBC float64, sizeA, sizeB int) float64 {
	switch lk {
	case Single:
		return min(dAC, dBC)
	case Complete:
		return max(dAC, dBC)
	default: // Average
		return (float64(sizeA)*dAC + float64(sizeB)*dBC) / float64(sizeA+sizeB)
	}
}

// Agglomerative runs single/average/complete-linkage hierarchical
// clustering on D and cuts the dendrogram at k clusters. It relabels the
// result into a canonical contiguous {0,...,k-1} set.
//
// Complexity: O(N^3) — each of the N-k merges rescans every pair of live
// clusters, O(N^2) pairs, to find the closest one.
func Agglomerative(D *distance.Matrix, k int, lk Linkage) ([]int, error) {
	n := D.N()
	if k < 1 || k > n {
		return nil, clustererr.ErrInvalidK
	}

	// members[c] lists the original point indices currently in cluster c;
	// dist[a][b] is the current inter-cluster distance between live
	// clusters a and b (a<b). live holds the ids of live clusters in
	// ascending order, so every scan below visits candidates in a fixed
	// deterministic order regardless of merge history.
	members := make([][]int, n)
	for i := 0; i < n; i++ {
		members[i] = []int{i}
	}
	live := make([]int, n)
	for i := range live {
		live[i] = i
	}
	dist := make(map[[2]int]float64, n*n)
	key := func(a, b int) [2]int {
		if a > b {
			a, b = b, a
		}
		return [2]int{a, b}
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dist[key(i, j)] = D.At(i, j)
		}
	}

	for len(live) > k {
		// Find the closest live pair, ties broken by ascending (a,b).
		bestAi, bestBi := -1, -1
		best := 0.0
		first := true
		for ai, a := range live {
			for bi := ai + 1; bi < len(live); bi++ {
				b := live[bi]
				d := dist[key(a, b)]
				if first || d < best {
					best, bestAi, bestBi, first = d, ai, bi, false
				}
			}
		}
		a, b := live[bestAi], live[bestBi]

		// Merge b into a.
		sizeA, sizeB := len(members[a]), len(members[b])
		members[a] = append(members[a], members[b]...)
		for _, c := range live {
			if c == a || c == b {
				continue
			}
			dAC := dist[key(a, c)]
			dBC := dist[key(b, c)]
			dist[key(a, c)] = lk.combine(dAC, dBC, sizeA, sizeB)
		}
		live = append(live[:bestBi], live[bestBi+1:]...)
	}

	labels := make([]int, n)
	for label, c := range live {
		for _, p := range members[c] {
			labels[p] = label
		}
	}
	return labels, nil
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
