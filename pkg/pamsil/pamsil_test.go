package pamsil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aswcluster/pkg/distance"
	"aswcluster/pkg/silhouette"
)

func twoTightPairs(t *testing.T) *distance.Matrix {
	t.Helper()
	dense := [][]float64{
		{0, 1, 10, 10},
		{1, 0, 10, 10},
		{10, 10, 0, 1},
		{10, 10, 1, 0},
	}
	m, err := distance.FromDense(dense, 1e-9)
	require.NoError(t, err)
	return m
}

func TestRunFindsWellSeparatedPartition(t *testing.T) {
	D := twoTightPairs(t)
	res, err := Run(D, 2, Options{Seed: 1})
	require.NoError(t, err)
	assert.Equal(t, res.Labels[0], res.Labels[1])
	assert.Equal(t, res.Labels[2], res.Labels[3])
	assert.NotEqual(t, res.Labels[0], res.Labels[2])
	assert.InDelta(t, 0.9, res.ASW, 1e-9)
}

func TestReportedASWMatchesFromScratch(t *testing.T) {
	D := twoTightPairs(t)
	res, err := Run(D, 2, Options{Seed: 99})
	require.NoError(t, err)
	assert.InDelta(t, silhouette.FromScratch(res.Labels, D), res.ASW, 1e-9)
}

func TestConcurrencyDoesNotChangeTheCommittedResult(t *testing.T) {
	D := twoTightPairs(t)
	sequential, err := Run(D, 2, Options{Seed: 3})
	require.NoError(t, err)
	parallel, err := Run(D, 2, Options{Seed: 3, Concurrency: 4})
	require.NoError(t, err)
	assert.Equal(t, sequential.Labels, parallel.Labels)
	assert.Equal(t, sequential.Medoids, parallel.Medoids)
	assert.InDelta(t, sequential.ASW, parallel.ASW, 1e-9)
}

func TestRunRejectsOutOfRangeK(t *testing.T) {
	D := twoTightPairs(t)
	_, err := Run(D, 1, Options{})
	require.Error(t, err)
	_, err = Run(D, 5, Options{})
	require.Error(t, err)
}

func TestIterCapBoundsIterationCount(t *testing.T) {
	D := twoTightPairs(t)
	res, err := Run(D, 2, Options{Seed: 1, IterCap: 1})
	require.NoError(t, err)
	assert.LessOrEqual(t, res.NIter, 1)
}
