// Package loader builds a distance.Matrix from a raw observation table,
// the "external feature-to-distance collaborator" spec.md's core leaves
// unimplemented. It reads an xlsx workbook the way the teacher's Index
// controller reads "论文数据8月前-未加权.xlsx": a header row followed by
// numeric feature columns.
package loader

import (
	"fmt"
	"math"

	"github.com/spf13/cast"
	"github.com/xuri/excelize/v2"

	"aswcluster/pkg/distance"
	"aswcluster/pkg/stats"
)

// Metric is a distance tag recognised by FromXLSX and FromVectors.
type Metric string

const (
	Euclidean Metric = "euclidean"
	Manhattan Metric = "manhattan"
)

// Summary reports the ingest outcome alongside the built matrix: how many
// data rows were read, how many were skipped for unparseable cells, and
// descriptive statistics per feature column.
type Summary struct {
	NRows     int
	NSkipped  int
	NFeatures int
	PerColumn []stats.Indicators
}

func distanceFunc(metric Metric) (func(a, b []float64) float64, error) {
	switch metric {
	case "", Euclidean:
		return func(a, b []float64) float64 {
			var sum float64
			for i := range a {
				d := a[i] - b[i]
				sum += d * d
			}
			return math.Sqrt(sum)
		}, nil
	case Manhattan:
		return func(a, b []float64) float64 {
			var sum float64
			for i := range a {
				sum += math.Abs(a[i] - b[i])
			}
			return sum
		}, nil
	default:
		return nil, fmt.Errorf("loader: unrecognised metric %q", metric)
	}
}

// FromXLSX opens an xlsx workbook, reads every row of sheet after the
// header row, coerces each feature cell with cast.ToFloat64 the way the
// teacher coerces RFM spreadsheet cells, and builds a distance matrix over
// the named feature columns under metric. Rows with any unparseable cell
// are skipped rather than aborting the whole load; the count is reported
// in Summary.
func FromXLSX(path, sheet string, featureCols []int, metric Metric) (*distance.Matrix, Summary, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, Summary{}, fmt.Errorf("loader: open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, Summary{}, fmt.Errorf("loader: read sheet %s: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, Summary{}, fmt.Errorf("loader: sheet %s has no data rows", sheet)
	}

	vectors := make([][]float64, 0, len(rows)-1)
	skipped := 0
	for _, row := range rows[1:] {
		vec, ok := extractRow(row, featureCols)
		if !ok {
			skipped++
			continue
		}
		vectors = append(vectors, vec)
	}
	if len(vectors) < 2 {
		return nil, Summary{}, fmt.Errorf("loader: fewer than 2 usable rows after skipping %d", skipped)
	}

	m, err := FromVectors(vectors, metric)
	if err != nil {
		return nil, Summary{}, err
	}

	return m, summarize(vectors, skipped), nil
}

func extractRow(row []string, cols []int) ([]float64, bool) {
	vec := make([]float64, len(cols))
	for i, col := range cols {
		if col >= len(row) {
			return nil, false
		}
		v, err := cast.ToFloat64E(row[col])
		if err != nil {
			return nil, false
		}
		vec[i] = v
	}
	return vec, true
}

// FromVectors builds a distance matrix directly from already-parsed
// feature vectors, bypassing the xlsx path. Used by FromXLSX and
// available to callers who already hold tabular data in memory (JSON
// bodies, CSV, etc.).
func FromVectors(vectors [][]float64, metric Metric) (*distance.Matrix, error) {
	dist, err := distanceFunc(metric)
	if err != nil {
		return nil, err
	}
	n := len(vectors)
	dense := make([][]float64, n)
	for i := range dense {
		dense[i] = make([]float64, n)
		for j := range dense[i] {
			if i != j {
				dense[i][j] = dist(vectors[i], vectors[j])
			}
		}
	}
	return distance.FromDense(dense, 1e-9)
}

func summarize(vectors [][]float64, skipped int) Summary {
	if len(vectors) == 0 {
		return Summary{NSkipped: skipped}
	}
	nFeatures := len(vectors[0])
	cols := make([][]float64, nFeatures)
	for c := range cols {
		cols[c] = make([]float64, len(vectors))
	}
	for r, vec := range vectors {
		for c, v := range vec {
			cols[c][r] = v
		}
	}
	perColumn := make([]stats.Indicators, nFeatures)
	for c, col := range cols {
		perColumn[c] = stats.Describe(col)
	}
	return Summary{
		NRows:     len(vectors),
		NSkipped:  skipped,
		NFeatures: nFeatures,
		PerColumn: perColumn,
	}
}
