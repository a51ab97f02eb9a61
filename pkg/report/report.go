// Package report renders the ASW-vs-k curve and a 3D scatter of a
// partition, the way the teacher renders the RFM silhouette line chart
// and clustered/original scatter3d charts with go-echarts.
package report

import (
	"bytes"
	"fmt"
	"html/template"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"aswcluster/pkg/driver"
)

var colors = []string{
	"#ff5722",
	"#ffb800",
	"#16baaa",
	"#1e9fff",
	"#a233c6",
	"#2f363c",
	"#c2c2c2",
}

// SilhouetteLine renders the ASW-vs-k curve with a max/average/min
// mark-point overlay, one data point per entry of asw, ordered by k.
func SilhouetteLine(asw map[int]float64) *charts.Line {
	ks := make([]int, 0, len(asw))
	for k := range asw {
		ks = append(ks, k)
	}
	sort.Ints(ks)

	titles := make([]string, 0, len(ks))
	lineData := make([]opts.LineData, 0, len(ks))
	for _, k := range ks {
		titles = append(titles, fmt.Sprintf("k = %d", k))
		lineData = append(lineData, opts.LineData{Value: asw[k]})
	}

	line := charts.NewLine()
	line.AssetsHost = "/statics/echarts/"
	line.SetXAxis(titles).AddSeries("ASW", lineData).
		SetSeriesOptions(
			charts.WithMarkPointNameTypeItemOpts(
				opts.MarkPointNameTypeItem{Name: "Maximum", Type: "max"},
				opts.MarkPointNameTypeItem{Name: "Average", Type: "average"},
				opts.MarkPointNameTypeItem{Name: "Minimum", Type: "min"},
			),
			charts.WithMarkPointStyleOpts(
				opts.MarkPointStyle{Label: &opts.Label{Show: opts.Bool(true)}}),
		)
	return line
}

// SilhouetteLineHTML renders SilhouetteLine to a standalone HTML fragment,
// matching the teacher's template.HTML-returning chart helpers.
func SilhouetteLineHTML(asw map[int]float64) template.HTML {
	return template.HTML(SilhouetteLine(asw).RenderContent())
}

// Scatter3D renders the best partition of res over caller-supplied 3D
// coordinates, one point per row of coords (coordinates are a
// visualisation concern kept out of the distance-matrix-only core, so the
// renderer accepts them as a parameter instead of deriving them from D).
func Scatter3D(res driver.Result, coords [][]float64, axisNames [3]string) (*charts.Scatter3D, error) {
	labels := res.BestLabels
	if len(labels) != len(coords) {
		return nil, fmt.Errorf("report: %d labels but %d coordinate rows", len(labels), len(coords))
	}

	data := make([]opts.Chart3DData, len(coords))
	for i, c := range coords {
		if len(c) != 3 {
			return nil, fmt.Errorf("report: coordinate row %d has %d dims, want 3", i, len(c))
		}
		color := colors[labels[i]%len(colors)]
		data[i] = opts.Chart3DData{
			Value:     []interface{}{c[0], c[1], c[2]},
			ItemStyle: &opts.ItemStyle{Color: color},
		}
	}

	scatter3d := charts.NewScatter3D()
	scatter3d.AssetsHost = "/statics/echarts/"
	scatter3d.SetGlobalOptions(
		charts.WithXAxis3DOpts(opts.XAxis3D{Name: axisNames[0], Show: opts.Bool(true)}),
		charts.WithYAxis3DOpts(opts.YAxis3D{Name: axisNames[1], Show: opts.Bool(true)}),
		charts.WithZAxis3DOpts(opts.ZAxis3D{Name: axisNames[2], Show: opts.Bool(true)}),
	)
	scatter3d.AddSeries("", data)
	return scatter3d, nil
}

// Scatter3DHTML renders Scatter3D to a standalone HTML fragment.
func Scatter3DHTML(res driver.Result, coords [][]float64, axisNames [3]string) (template.HTML, error) {
	scatter3d, err := Scatter3D(res, coords, axisNames)
	if err != nil {
		return "", err
	}
	buf := bytes.NewBuffer(nil)
	if err := scatter3d.Render(buf); err != nil {
		return "", fmt.Errorf("report: render scatter3d: %w", err)
	}
	return template.HTML(buf.String()), nil
}
