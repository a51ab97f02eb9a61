// Package effosil implements effOSil: an exact point-reassignment local
// search that maximises the Average Silhouette Width, equivalent to the
// published OSil algorithm but evaluating every candidate move in O(N*k)
// against an incrementally maintained sum matrix instead of recomputing
// silhouettes from scratch in O(N^2).
package effosil

import (
	"context"
	"fmt"

	"aswcluster/internal/workpool"
	"aswcluster/pkg/bookkeeper"
	"aswcluster/pkg/clustererr"
	"aswcluster/pkg/distance"
	"aswcluster/pkg/initializer"
	"aswcluster/pkg/silhouette"
)

const (
	// VariantEfficient uses the incrementally maintained sum matrix to
	// evaluate candidates in O(N*k).
	VariantEfficient = "efficient"
	// VariantOriginal recomputes each candidate's ASW from scratch in
	// O(N^2), provided for benchmarking/equivalence testing against the
	// efficient path.
	VariantOriginal = "original"
)

// Options configures one effOSil run.
type Options struct {
	InitMethods []string
	Variant     string // "" defaults to VariantEfficient
	IterCap     int    // 0 means no cap
	Seed        uint64
	// Concurrency bounds how many candidate reassignments are evaluated in
	// parallel per scan. 0 runs sequentially; negative uses all CPUs. The
	// committed move is always the same regardless of this value — see
	// internal/workpool.
	Concurrency int
}

// Result is the outcome of one effOSil run for a fixed k.
type Result struct {
	Labels []int
	ASW    float64
	NIter  int
}

func validateVariant(v string) (string, error) {
	switch v {
	case "":
		return VariantEfficient, nil
	case VariantEfficient, VariantOriginal:
		return v, nil
	default:
		return "", fmt.Errorf("%w: %q", clustererr.ErrInvalidVariant, v)
	}
}

// Run performs the effOSil local search for a single k.
func Run(D *distance.Matrix, k int, opts Options) (Result, error) {
	if k < 2 || k > D.N() {
		return Result{}, fmt.Errorf("%w: k=%d out of range for N=%d", clustererr.ErrInvalidK, k, D.N())
	}

	methods := opts.InitMethods
	if len(methods) == 0 {
		methods = []string{initializer.MethodPAM}
	}
	L0, err := initializer.Seed(D, k, methods, opts.Seed)
	if err != nil {
		return Result{}, err
	}

	return RunFrom(D, k, L0, opts)
}

// RunFrom performs the effOSil local search for a single k, starting from
// a caller-supplied labelling instead of invoking the Initialiser. Used by
// scalOSil's "original" variant to keep refining a partition after the
// sub-sample extension phase.
func RunFrom(D *distance.Matrix, k int, L0 []int, opts Options) (Result, error) {
	variant, err := validateVariant(opts.Variant)
	if err != nil {
		return Result{}, err
	}
	if k < 2 || k > D.N() {
		return Result{}, fmt.Errorf("%w: k=%d out of range for N=%d", clustererr.ErrInvalidK, k, D.N())
	}

	st := bookkeeper.Build(D, L0, k)
	asw := silhouette.FromSums(st.L, st.N, st.S)

	iterCap := opts.IterCap
	nIter := 0
	for iterCap <= 0 || nIter < iterCap {
		type candidate struct{ i, c int }

		var pairs []candidate
		for i := range st.L {
			if st.N[st.L[i]] <= 1 {
				continue
			}
			for c := 0; c < k; c++ {
				if c != st.L[i] {
					pairs = append(pairs, candidate{i, c})
				}
			}
		}

		evaluate := func(p candidate) float64 {
			if variant == VariantEfficient {
				return silhouette.TrialDelta(st.L, st.N, st.S, D, p.i, p.c)
			}
			trial := append([]int(nil), st.L...)
			trial[p.i] = p.c
			return silhouette.FromScratch(trial, D)
		}

		var best candidate
		var bestASW float64
		found := false

		if opts.Concurrency == 0 {
			for _, p := range pairs {
				trialASW := evaluate(p)
				if trialASW > asw && (!found || trialASW > bestASW) {
					best, bestASW, found = p, trialASW, true
				}
			}
		} else {
			jobs := make([]workpool.Job[candidate], len(pairs))
			for idx, p := range pairs {
				p := p
				jobs[idx] = func() (candidate, float64) { return p, evaluate(p) }
			}
			winner, score, ok := workpool.Best(context.Background(), opts.Concurrency, jobs)
			if ok && score > asw {
				best, bestASW, found = winner, score, true
			}
		}

		if !found {
			break
		}
		if err := st.MovePoint(best.i, best.c); err != nil {
			// The scan above only considers clusters with N>1, so this
			// should be unreachable; treat it as end-of-search rather
			// than panicking on a library invariant slip.
			break
		}
		asw = bestASW
		nIter++
	}

	return Result{Labels: st.L, ASW: asw, NIter: nIter}, nil
}
