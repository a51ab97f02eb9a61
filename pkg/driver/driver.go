// Package driver runs one of the ASW-optimising engines across a set of
// candidate cluster counts K and reports the argmax-ASW solution, per the
// component C8 responsibility: dispatch, aggregate, pick a winner.
package driver

import (
	"context"
	"fmt"
	"sort"

	"aswcluster/pkg/clustererr"
	"aswcluster/pkg/distance"
	"aswcluster/pkg/effosil"
	"aswcluster/pkg/pamsil"
	"aswcluster/pkg/scalosil"
)

// Engine tags recognised by Run.
const (
	EnginePAMSil   = "pamsil"
	EngineEffOSil  = "effosil"
	EngineScalOSil = "scalosil"
)

// Options configures a full sweep over K.
type Options struct {
	K           []int
	Engine      string
	Variant     string
	InitMethods []string
	SampleSize  int
	NumSamples  int
	Repeats     int
	IterCap     int
	Seed        uint64
	Concurrency int
}

// KResult is the per-k outcome of a sweep.
type KResult struct {
	K       int
	Labels  []int
	ASW     float64
	Medoids []int
	NIter   int
}

// Result is the sweep's aggregate output: the full table plus the
// argmax-ASW winner (ties broken by the smallest k).
type Result struct {
	Clusterings map[int][]int
	ASW         map[int]float64
	Medoids     map[int][]int
	NIter       map[int]int
	BestK       int
	BestLabels  []int
	BestASW     float64
}

func validateK(k []int, upperBound int) ([]int, error) {
	if len(k) == 0 {
		return nil, fmt.Errorf("%w: K is empty", clustererr.ErrInvalidK)
	}
	seen := make(map[int]bool, len(k))
	sorted := append([]int(nil), k...)
	sort.Ints(sorted)
	for i, v := range sorted {
		if seen[v] {
			return nil, fmt.Errorf("%w: duplicate value %d", clustererr.ErrInvalidK, v)
		}
		seen[v] = true
		if v <= 1 {
			return nil, fmt.Errorf("%w: k=%d must be >1", clustererr.ErrInvalidK, v)
		}
		if v > upperBound {
			return nil, fmt.Errorf("%w: k=%d exceeds bound %d", clustererr.ErrInvalidK, v, upperBound)
		}
		_ = i
	}
	return sorted, nil
}

// Run sweeps every k in Options.K with the chosen engine and returns the
// full result table plus the best (k, labelling, ASW) triple.
func Run(D *distance.Matrix, opts Options) (Result, error) {
	bound := D.N()
	if opts.Engine == EngineScalOSil {
		bound = opts.SampleSize
		if bound == 0 {
			bound = D.N()
		}
	}
	ks, err := validateK(opts.K, bound)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Clusterings: make(map[int][]int, len(ks)),
		ASW:         make(map[int]float64, len(ks)),
		Medoids:     make(map[int][]int, len(ks)),
		NIter:       make(map[int]int, len(ks)),
	}

	for _, k := range ks {
		kr, err := runOne(D, k, opts)
		if err != nil {
			return Result{}, err
		}
		res.Clusterings[k] = kr.Labels
		res.ASW[k] = kr.ASW
		if kr.Medoids != nil {
			res.Medoids[k] = kr.Medoids
		}
		res.NIter[k] = kr.NIter
	}

	best := ks[0]
	for _, k := range ks[1:] {
		if res.ASW[k] > res.ASW[best] {
			best = k
		}
	}
	res.BestK = best
	res.BestLabels = res.Clusterings[best]
	res.BestASW = res.ASW[best]
	return res, nil
}

func runOne(D *distance.Matrix, k int, opts Options) (KResult, error) {
	switch opts.Engine {
	case "", EngineEffOSil:
		r, err := effosil.Run(D, k, effosil.Options{
			InitMethods: opts.InitMethods,
			Variant:     opts.Variant,
			IterCap:     opts.IterCap,
			Seed:        opts.Seed,
			Concurrency: opts.Concurrency,
		})
		if err != nil {
			return KResult{}, err
		}
		return KResult{K: k, Labels: r.Labels, ASW: r.ASW, NIter: r.NIter}, nil

	case EnginePAMSil:
		r, err := pamsil.Run(D, k, pamsil.Options{
			InitMethods: opts.InitMethods,
			IterCap:     opts.IterCap,
			Seed:        opts.Seed,
			Concurrency: opts.Concurrency,
		})
		if err != nil {
			return KResult{}, err
		}
		return KResult{K: k, Labels: r.Labels, ASW: r.ASW, Medoids: r.Medoids, NIter: r.NIter}, nil

	case EngineScalOSil:
		r, err := scalosil.Run(D, k, scalosil.Options{
			InitMethods: opts.InitMethods,
			Variant:     opts.Variant,
			SampleSize:  opts.SampleSize,
			NumSamples:  opts.NumSamples,
			Repeats:     opts.Repeats,
			IterCap:     opts.IterCap,
			Seed:        opts.Seed,
		})
		if err != nil {
			return KResult{}, err
		}
		return KResult{K: k, Labels: r.Labels, ASW: r.ASW}, nil

	default:
		return KResult{}, fmt.Errorf("%w: unknown engine %q", clustererr.ErrInvalidVariant, opts.Engine)
	}
}

// RunStream sweeps every k exactly like Run, but emits each KResult on
// progress as soon as it is computed, so a caller (e.g. the websocket
// handler in internal/api) can stream intermediate results to a client
// instead of waiting for the whole K sweep to finish. progress is closed
// by RunStream before it returns. A cancelled ctx stops the sweep after
// the in-flight k finishes and returns ctx.Err().
func RunStream(ctx context.Context, D *distance.Matrix, opts Options, progress chan<- KResult) (Result, error) {
	defer close(progress)

	bound := D.N()
	if opts.Engine == EngineScalOSil {
		bound = opts.SampleSize
		if bound == 0 {
			bound = D.N()
		}
	}
	ks, err := validateK(opts.K, bound)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Clusterings: make(map[int][]int, len(ks)),
		ASW:         make(map[int]float64, len(ks)),
		Medoids:     make(map[int][]int, len(ks)),
		NIter:       make(map[int]int, len(ks)),
	}

	for _, k := range ks {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		kr, err := runOne(D, k, opts)
		if err != nil {
			return Result{}, err
		}
		res.Clusterings[k] = kr.Labels
		res.ASW[k] = kr.ASW
		if kr.Medoids != nil {
			res.Medoids[k] = kr.Medoids
		}
		res.NIter[k] = kr.NIter

		select {
		case progress <- kr:
		case <-ctx.Done():
			return Result{}, ctx.Err()
		}
	}

	best := ks[0]
	for _, k := range ks[1:] {
		if res.ASW[k] > res.ASW[best] {
			best = k
		}
	}
	res.BestK = best
	res.BestLabels = res.Clusterings[best]
	res.BestASW = res.ASW[best]
	return res, nil
}

// ToOneBased converts a 0-based label vector into the 1-based output
// contract of spec.md section 6.
func ToOneBased(labels []int) []int {
	out := make([]int, len(labels))
	for i, l := range labels {
		out[i] = l + 1
	}
	return out
}
