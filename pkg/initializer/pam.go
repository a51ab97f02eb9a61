package initializer

import (
	"math"
	"math/rand"

	"aswcluster/pkg/clustererr"
	"aswcluster/pkg/distance"
)

// PAM runs a build+swap Partitioning Around Medoids pass minimising total
// within-cluster dissimilarity (the classical PAM objective — ASW
// optimisation itself is PAMSil's job downstream, this only needs to
// produce a reasonable seed). The BUILD phase selects medoids with a
// weighted farthest-point scheme in the spirit of k-means++ seeding, then
// a bounded number of swap passes locally improves the medoid set.
//
// Complexity: O(N^2*k) for BUILD, O(iterCap*k^2*(N-k)*N) for SWAP (each of
// the k*(N-k) candidate swaps recomputes the O(N*k) total cost).
func PAM(D *distance.Matrix, k int, seed uint64, iterCap int) (labels []int, medoids []int, err error) {
	n := D.N()
	if k < 1 || k > n {
		return nil, nil, clustererr.ErrInvalidK
	}
	if iterCap <= 0 {
		iterCap = 100
	}

	r := rand.New(rand.NewSource(int64(seed)))
	medoids = buildMedoids(D, k, r)

	cost := totalCost(D, medoids)
	for iter := 0; iter < iterCap; iter++ {
		improved := false
		bestM, bestH := -1, -1
		bestCost := cost

		isMedoid := make(map[int]bool, k)
		for _, m := range medoids {
			isMedoid[m] = true
		}
		nonMedoid := make([]int, 0, n-k)
		for i := 0; i < n; i++ {
			if !isMedoid[i] {
				nonMedoid = append(nonMedoid, i)
			}
		}

		for mi := range medoids {
			for _, h := range nonMedoid {
				trial := append([]int(nil), medoids...)
				trial[mi] = h
				c := totalCost(D, trial)
				if c < bestCost {
					bestCost, bestM, bestH = c, mi, h
					improved = true
				}
			}
		}

		if !improved {
			break
		}
		medoids[bestM] = bestH
		cost = bestCost
	}

	labels = assignToMedoids(D, medoids)
	return labels, medoids, nil
}

// buildMedoids selects k initial medoids: the first is the point minimising
// total distance to all others, subsequent ones are chosen with
// probability proportional to squared distance to the nearest medoid
// already chosen (k-means++-style weighting, applied to medoid selection).
func buildMedoids(D *distance.Matrix, k int, r *rand.Rand) []int {
	n := D.N()

	first := 0
	best := math.MaxFloat64
	for i := 0; i < n; i++ {
		total := 0.0
		for j := 0; j < n; j++ {
			total += D.At(i, j)
		}
		if total < best {
			best, first = total, i
		}
	}

	medoids := []int{first}
	for len(medoids) < k {
		distSq := make([]float64, n)
		sum := 0.0
		for i := 0; i < n; i++ {
			nearest := math.MaxFloat64
			for _, m := range medoids {
				if d := D.At(i, m); d < nearest {
					nearest = d
				}
			}
			distSq[i] = nearest * nearest
			sum += distSq[i]
		}

		if sum == 0 {
			// All remaining points coincide with existing medoids; fall
			// back to the lowest-index point not yet chosen.
			for i := 0; i < n; i++ {
				if !contains(medoids, i) {
					medoids = append(medoids, i)
					break
				}
			}
			continue
		}

		target := r.Float64() * sum
		running := 0.0
		chosen := n - 1
		for i := 0; i < n; i++ {
			running += distSq[i]
			if running >= target {
				chosen = i
				break
			}
		}
		if !contains(medoids, chosen) {
			medoids = append(medoids, chosen)
		}
	}
	return medoids
}

func contains(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

// totalCost sums, for every point, its distance to the nearest medoid.
func totalCost(D *distance.Matrix, medoids []int) float64 {
	n := D.N()
	total := 0.0
	for i := 0; i < n; i++ {
		best := math.MaxFloat64
		for _, m := range medoids {
			if d := D.At(i, m); d < best {
				best = d
			}
		}
		total += best
	}
	return total
}

// assignToMedoids labels every point with the index (into medoids) of its
// nearest medoid, ties broken by lowest medoid index.
func assignToMedoids(D *distance.Matrix, medoids []int) []int {
	n := D.N()
	labels := make([]int, n)
	for i := 0; i < n; i++ {
		best := math.MaxFloat64
		bestC := 0
		for c, m := range medoids {
			if d := D.At(i, m); d < best {
				best, bestC = d, c
			}
		}
		labels[i] = bestC
	}
	return labels
}
