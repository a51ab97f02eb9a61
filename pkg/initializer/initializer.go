package initializer

import (
	"fmt"

	"aswcluster/pkg/clustererr"
	"aswcluster/pkg/distance"
	"aswcluster/pkg/silhouette"
)

// Method tags recognised by Seed, matching the external Initialiser
// contract: single/average/complete linkage, or build+swap PAM.
const (
	MethodSingle   = "single"
	MethodAverage  = "average"
	MethodComplete = "complete"
	MethodPAM      = "pam"
)

var validMethods = map[string]bool{
	MethodSingle:   true,
	MethodAverage:  true,
	MethodComplete: true,
	MethodPAM:      true,
}

// ValidateMethods checks every tag against the recognised set.
func ValidateMethods(methods []string) error {
	if len(methods) == 0 {
		return fmt.Errorf("%w: no init method supplied", clustererr.ErrInvalidInitMethod)
	}
	for _, m := range methods {
		if !validMethods[m] {
			return fmt.Errorf("%w: %q", clustererr.ErrInvalidInitMethod, m)
		}
	}
	return nil
}

// Seed produces an initial partition of D into k clusters. When more than
// one method tag is supplied, every one is run and the partition with the
// highest from-scratch ASW is kept.
func Seed(D *distance.Matrix, k int, methods []string, seed uint64) ([]int, error) {
	if err := ValidateMethods(methods); err != nil {
		return nil, err
	}

	var best []int
	bestASW := 0.0
	first := true
	for _, m := range methods {
		labels, err := seedOne(D, k, m, seed)
		if err != nil {
			return nil, err
		}
		asw := silhouette.FromScratch(labels, D)
		if first || asw > bestASW {
			best, bestASW, first = labels, asw, false
		}
	}
	return best, nil
}

func seedOne(D *distance.Matrix, k int, method string, seed uint64) ([]int, error) {
	switch method {
	case MethodSingle:
		return Agglomerative(D, k, Single)
	case MethodAverage:
		return Agglomerative(D, k, Average)
	case MethodComplete:
		return Agglomerative(D, k, Complete)
	case MethodPAM:
		labels, _, err := PAM(D, k, seed, 0)
		return labels, err
	default:
		return nil, fmt.Errorf("%w: %q", clustererr.ErrInvalidInitMethod, method)
	}
}
