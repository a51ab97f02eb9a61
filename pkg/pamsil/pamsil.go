// Package pamsil implements PAMSil: a medoid-swap local search that
// maximises the Average Silhouette Width, rather than PAM's usual
// within-cluster dissimilarity objective.
package pamsil

import (
	"context"
	"fmt"
	"sort"

	"aswcluster/internal/workpool"
	"aswcluster/pkg/clustererr"
	"aswcluster/pkg/distance"
	"aswcluster/pkg/initializer"
	"aswcluster/pkg/silhouette"
)

// Options configures one PAMSil run.
type Options struct {
	InitMethods []string
	IterCap     int // 0 means no cap
	Seed        uint64
	// Concurrency bounds how many candidate medoid swaps are evaluated in
	// parallel per scan. 0 runs sequentially; negative uses all CPUs. The
	// committed swap is always the same regardless of this value — see
	// internal/workpool.
	Concurrency int
}

// Result is the outcome of one PAMSil run for a fixed k.
type Result struct {
	Labels  []int
	ASW     float64
	Medoids []int
	NIter   int
}

// Run performs the PAMSil medoid-swap local search for a single k.
func Run(D *distance.Matrix, k int, opts Options) (Result, error) {
	n := D.N()
	if k < 2 || k > n {
		return Result{}, fmt.Errorf("%w: k=%d out of range for N=%d", clustererr.ErrInvalidK, k, n)
	}

	methods := opts.InitMethods
	if len(methods) == 0 {
		methods = []string{initializer.MethodPAM}
	}
	if err := initializer.ValidateMethods(methods); err != nil {
		return Result{}, err
	}

	_, medoids, err := initializer.PAM(D, k, opts.Seed, 0)
	if err != nil {
		return Result{}, err
	}

	medoids = append([]int(nil), medoids...)
	sort.Ints(medoids)
	L := assign(D, medoids)
	asw := silhouette.FromScratch(L, D)

	iterCap := opts.IterCap
	nIter := 0
	for iterCap <= 0 || nIter < iterCap {
		isMedoid := make(map[int]bool, k)
		for _, m := range medoids {
			isMedoid[m] = true
		}
		nonMedoids := make([]int, 0, n-k)
		for i := 0; i < n; i++ {
			if !isMedoid[i] {
				nonMedoids = append(nonMedoids, i)
			}
		}
		sort.Ints(nonMedoids)

		type candidate struct{ mi, h int }
		var pairs []candidate
		for mi := range medoids {
			for _, h := range nonMedoids {
				pairs = append(pairs, candidate{mi, h})
			}
		}

		evaluate := func(p candidate) ([]int, float64) {
			trial := append([]int(nil), medoids...)
			trial[p.mi] = p.h
			trialL := assign(D, trial)
			return trialL, silhouette.FromScratch(trialL, D)
		}

		bestASW := asw
		bestMi, bestH := -1, -1
		var bestL []int

		if opts.Concurrency == 0 {
			for _, p := range pairs {
				trialL, trialASW := evaluate(p)
				if trialASW > bestASW {
					bestASW, bestMi, bestH, bestL = trialASW, p.mi, p.h, trialL
				}
			}
		} else {
			type outcome struct {
				p candidate
				l []int
			}
			jobs := make([]workpool.Job[outcome], len(pairs))
			for idx, p := range pairs {
				p := p
				jobs[idx] = func() (outcome, float64) {
					l, score := evaluate(p)
					return outcome{p: p, l: l}, score
				}
			}
			winner, score, ok := workpool.Best(context.Background(), opts.Concurrency, jobs)
			if ok && score > bestASW {
				bestASW, bestMi, bestH, bestL = score, winner.p.mi, winner.p.h, winner.l
			}
		}

		if bestMi < 0 {
			break
		}
		medoids[bestMi] = bestH
		sort.Ints(medoids)
		L = bestL
		asw = bestASW
		nIter++
	}

	return Result{Labels: L, ASW: asw, Medoids: medoids, NIter: nIter}, nil
}

// assign labels every point with the index (into medoids) of its nearest
// medoid, ties broken by lowest medoid index.
func assign(D *distance.Matrix, medoids []int) []int {
	n := D.N()
	labels := make([]int, n)
	for i := 0; i < n; i++ {
		best := D.At(i, medoids[0])
		bestC := 0
		for c := 1; c < len(medoids); c++ {
			if d := D.At(i, medoids[c]); d < best {
				best, bestC = d, c
			}
		}
		labels[i] = bestC
	}
	return labels
}
