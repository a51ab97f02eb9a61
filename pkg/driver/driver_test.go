package driver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aswcluster/pkg/distance"
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

func TestRunSweepsEveryKAndPicksTheBest(t *testing.T) {
	D := twoTightPairs(t)
	res, err := Run(D, Options{K: []int{2, 3}, Engine: EngineEffOSil, Seed: 1})
	require.NoError(t, err)
	assert.Contains(t, res.Clusterings, 2)
	assert.Contains(t, res.Clusterings, 3)
	assert.Equal(t, 2, res.BestK)
	assert.InDelta(t, 0.9, res.BestASW, 1e-9)
}

func TestRunRejectsEmptyK(t *testing.T) {
	D := twoTightPairs(t)
	_, err := Run(D, Options{K: nil, Engine: EngineEffOSil})
	require.Error(t, err)
}

func TestRunRejectsDuplicateK(t *testing.T) {
	D := twoTightPairs(t)
	_, err := Run(D, Options{K: []int{2, 2}, Engine: EngineEffOSil})
	require.Error(t, err)
}

func TestRunRejectsUnknownEngine(t *testing.T) {
	D := twoTightPairs(t)
	_, err := Run(D, Options{K: []int{2}, Engine: "bogus"})
	require.Error(t, err)
}

func TestToOneBasedShiftsEveryLabel(t *testing.T) {
	assert.Equal(t, []int{1, 1, 2, 2}, ToOneBased([]int{0, 0, 1, 1}))
}

func TestRunStreamMatchesRun(t *testing.T) {
	D := twoTightPairs(t)
	opts := Options{K: []int{2, 3}, Engine: EngineEffOSil, Seed: 7}

	want, err := Run(D, opts)
	require.NoError(t, err)

	progress := make(chan KResult)
	var got Result
	var streamErr error
	done := make(chan struct{})
	go func() {
		defer close(done)
		got, streamErr = RunStream(context.Background(), D, opts, progress)
	}()

	seen := map[int]bool{}
	for kr := range progress {
		seen[kr.K] = true
	}
	<-done

	require.NoError(t, streamErr)
	assert.True(t, seen[2])
	assert.True(t, seen[3])
	assert.Equal(t, want.BestK, got.BestK)
	assert.InDelta(t, want.BestASW, got.BestASW, 1e-9)
	assert.Equal(t, want.Clusterings, got.Clusterings)
}

func TestRunWithPAMSilEngine(t *testing.T) {
	D := twoTightPairs(t)
	res, err := Run(D, Options{K: []int{2}, Engine: EnginePAMSil, Seed: 1})
	require.NoError(t, err)
	require.Contains(t, res.Medoids, 2)
	assert.Len(t, res.Medoids[2], 2)
}

func TestRunWithScalOSilEngine(t *testing.T) {
	D := twoTightPairs(t)
	res, err := Run(D, Options{K: []int{2}, Engine: EngineScalOSil, SampleSize: 3, NumSamples: 3, Seed: 1})
	require.NoError(t, err)
	assert.InDelta(t, 0.9, res.ASW[2], 1e-9)
}
