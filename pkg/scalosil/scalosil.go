// Package scalosil implements scalOSil: a scalable variant of effOSil that
// runs the exact point-reassignment search on a random sub-sample, then
// extends the resulting partition to the remaining points by nearest
// per-cluster-mean-distance assignment. It is equivalent to the published
// FOSil algorithm with the same incremental bookkeeping trick applied to
// the sub-sample phase.
package scalosil

import (
	"fmt"
	"math"
	"math/rand"

	"aswcluster/pkg/clustererr"
	"aswcluster/pkg/distance"
	"aswcluster/pkg/effosil"
	"aswcluster/pkg/silhouette"
)

const (
	// VariantScalable performs the extension in a single O(k*N*n) pass
	// and never re-optimises the extended points.
	VariantScalable = "scalable"
	// VariantOriginal matches FOSil: after the single-pass extension, it
	// keeps running the full-N point-reassignment search (the exact OSil
	// objective) including the newly extended points.
	VariantOriginal = "original"
)

// Options configures one scalOSil run.
type Options struct {
	InitMethods []string
	Variant     string // "" defaults to VariantScalable
	SampleSize  int    // n; 0 means ceil(0.1*N), but at least 2
	NumSamples  int    // ns; 0 means 10
	Repeats     int    // rep; 0 means 1
	IterCap     int
	Seed        uint64
}

// Result is the outcome of one scalOSil run for a fixed k.
type Result struct {
	Labels []int
	ASW    float64
}

func validateVariant(v string) (string, error) {
	switch v {
	case "":
		return VariantScalable, nil
	case VariantScalable, VariantOriginal:
		return v, nil
	default:
		return "", fmt.Errorf("%w: %q", clustererr.ErrInvalidVariant, v)
	}
}

// Run performs the scalOSil two-phase search for a single k.
func Run(D *distance.Matrix, k int, opts Options) (Result, error) {
	n := D.N()
	variant, err := validateVariant(opts.Variant)
	if err != nil {
		return Result{}, err
	}

	sampleSize := opts.SampleSize
	if sampleSize == 0 {
		sampleSize = int(math.Ceil(0.1 * float64(n)))
		if sampleSize < 2 {
			sampleSize = 2
		}
	}
	if sampleSize < 2 || sampleSize > n {
		return Result{}, fmt.Errorf("%w: sample size %d invalid for N=%d", clustererr.ErrInvalidSampleSize, sampleSize, n)
	}
	if k < 2 || k > sampleSize {
		return Result{}, fmt.Errorf("%w: k=%d out of range for sample size %d", clustererr.ErrInvalidK, k, sampleSize)
	}

	numSamples := opts.NumSamples
	if numSamples == 0 {
		numSamples = 10
	}
	repeats := opts.Repeats
	if repeats == 0 {
		repeats = 1
	}
	if numSamples < 1 || repeats < 1 {
		return Result{}, fmt.Errorf("%w: ns=%d rep=%d must both be >=1", clustererr.ErrInvalidRepeats, numSamples, repeats)
	}

	methods := opts.InitMethods

	rng := rand.New(rand.NewSource(int64(opts.Seed)))

	var bestLabels []int
	bestASW := 0.0
	first := true

	for repIdx := 0; repIdx < repeats; repIdx++ {
		var bestTrialLP []int
		var bestTrialIP, bestTrialIC []int
		bestTrialASW := 0.0
		trialFirst := true

		for s := 0; s < numSamples; s++ {
			perm := rng.Perm(n)
			ip := append([]int(nil), perm[:sampleSize]...)
			ic := append([]int(nil), perm[sampleSize:]...)

			dp := D.Sub(ip)
			res, err := effosil.Run(dp, k, effosil.Options{
				InitMethods: methods,
				Seed:        opts.Seed + uint64(s) + uint64(repIdx)*1000003,
			})
			if err != nil {
				return Result{}, err
			}

			if trialFirst || res.ASW > bestTrialASW {
				bestTrialASW, bestTrialLP, bestTrialIP, bestTrialIC, trialFirst = res.ASW, res.Labels, ip, ic, false
			}
		}

		labelsFull := extend(D, k, bestTrialIP, bestTrialLP, bestTrialIC)

		if variant == VariantOriginal {
			labelsFull = refine(D, k, labelsFull, opts.IterCap)
		}

		fullASW := silhouette.FromScratch(labelsFull, D)
		if first || fullASW > bestASW {
			bestLabels, bestASW, first = labelsFull, fullASW, false
		}
	}

	return Result{Labels: bestLabels, ASW: bestASW}, nil
}

// extend assigns every point in ic to the cluster c minimising the mean
// distance from that point to the members of c within ip, ties broken by
// lowest cluster index. It then maps the combined (ip, ic) labelling back
// to original point order.
func extend(D *distance.Matrix, k int, ip []int, lp []int, ic []int) []int {
	n := D.N()
	labels := make([]int, n)

	members := make([][]int, k)
	for idx, c := range lp {
		members[c] = append(members[c], ip[idx])
		labels[ip[idx]] = c
	}

	for _, j := range ic {
		bestC := 0
		bestMean := math.Inf(1)
		for c := 0; c < k; c++ {
			if len(members[c]) == 0 {
				continue
			}
			sum := 0.0
			for _, p := range members[c] {
				sum += D.At(j, p)
			}
			mean := sum / float64(len(members[c]))
			if mean < bestMean {
				bestMean, bestC = mean, c
			}
		}
		labels[j] = bestC
	}
	return labels
}

// refine continues the exact point-reassignment search over the full
// distance matrix starting from labels, matching FOSil's "original"
// semantics of re-running the full OSil objective after extension.
func refine(D *distance.Matrix, k int, labels []int, iterCap int) []int {
	res, err := effosil.RunFrom(D, k, labels, effosil.Options{IterCap: iterCap})
	if err != nil {
		return labels
	}
	return res.Labels
}
