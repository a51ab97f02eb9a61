package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aswcluster/pkg/driver"
)

func TestSilhouetteLineHTMLRenders(t *testing.T) {
	html := SilhouetteLineHTML(map[int]float64{2: 0.8, 3: 0.6, 4: 0.7})
	assert.Contains(t, string(html), "<div")
}

func TestScatter3DRejectsMismatchedLengths(t *testing.T) {
	res := driver.Result{BestLabels: []int{0, 1}}
	_, err := Scatter3D(res, [][]float64{{0, 0, 0}}, [3]string{"x", "y", "z"})
	require.Error(t, err)
}

func TestScatter3DRejectsNonThreeDimensionalCoordinates(t *testing.T) {
	res := driver.Result{BestLabels: []int{0}}
	_, err := Scatter3D(res, [][]float64{{0, 0}}, [3]string{"x", "y", "z"})
	require.Error(t, err)
}

func TestScatter3DHTMLRenders(t *testing.T) {
	res := driver.Result{BestLabels: []int{0, 1, 0}}
	coords := [][]float64{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}
	html, err := Scatter3DHTML(res, coords, [3]string{"x", "y", "z"})
	require.NoError(t, err)
	assert.Contains(t, string(html), "<div")
}
