package scalosil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aswcluster/pkg/distance"
)

func eightPointsTwoClusters(t *testing.T) *distance.Matrix {
	t.Helper()
	n := 8
	dense := make([][]float64, n)
	for i := range dense {
		dense[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			sameHalf := (i < 4) == (j < 4)
			if sameHalf {
				dense[i][j] = 1
			} else {
				dense[i][j] = 20
			}
		}
	}
	m, err := distance.FromDense(dense, 1e-9)
	require.NoError(t, err)
	return m
}

func TestRunRecoversWellSeparatedPartitionAfterExtension(t *testing.T) {
	D := eightPointsTwoClusters(t)
	res, err := Run(D, 2, Options{SampleSize: 4, NumSamples: 5, Seed: 1})
	require.NoError(t, err)
	for i := 1; i < 4; i++ {
		assert.Equal(t, res.Labels[0], res.Labels[i])
	}
	for i := 5; i < 8; i++ {
		assert.Equal(t, res.Labels[4], res.Labels[i])
	}
	assert.NotEqual(t, res.Labels[0], res.Labels[4])
}

func TestOriginalVariantRefinesAtLeastAsWellAsScalable(t *testing.T) {
	D := eightPointsTwoClusters(t)
	scalable, err := Run(D, 2, Options{SampleSize: 4, NumSamples: 5, Seed: 2, Variant: VariantScalable})
	require.NoError(t, err)
	original, err := Run(D, 2, Options{SampleSize: 4, NumSamples: 5, Seed: 2, Variant: VariantOriginal})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, original.ASW, scalable.ASW-1e-9)
}

func TestRunRejectsInvalidSampleSize(t *testing.T) {
	D := eightPointsTwoClusters(t)
	_, err := Run(D, 2, Options{SampleSize: 1})
	require.Error(t, err)
	_, err = Run(D, 2, Options{SampleSize: 100})
	require.Error(t, err)
}

func TestRunRejectsInvalidRepeatCounts(t *testing.T) {
	D := eightPointsTwoClusters(t)
	_, err := Run(D, 2, Options{SampleSize: 4, NumSamples: 0})
	require.NoError(t, err) // 0 defaults to 10, not an error
	_, err = Run(D, 2, Options{SampleSize: 4, Repeats: -1})
	require.Error(t, err)
}
