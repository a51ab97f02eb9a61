package initializer

import (
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

func TestAgglomerativeRecoversWellSeparatedClusters(t *testing.T) {
	D := twoTightPairs(t)
	for _, lk := range []Linkage{Single, Complete, Average} {
		labels, err := Agglomerative(D, 2, lk)
		require.NoError(t, err)
		assert.Equal(t, labels[0], labels[1])
		assert.Equal(t, labels[2], labels[3])
		assert.NotEqual(t, labels[0], labels[2])
	}
}

func TestAgglomerativeRejectsInvalidK(t *testing.T) {
	D := twoTightPairs(t)
	_, err := Agglomerative(D, 0, Single)
	require.Error(t, err)
	_, err = Agglomerative(D, 5, Single)
	require.Error(t, err)
}

func TestAgglomerativeIsDeterministicAcrossRepeatedRuns(t *testing.T) {
	D := twoTightPairs(t)
	first, err := Agglomerative(D, 2, Average)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Agglomerative(D, 2, Average)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
