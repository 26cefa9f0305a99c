// Package report renders an HTML convergence chart for a completed solver
// run, plotting best feasible distance against generation number.
package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// WriteConvergenceChart renders bestCostHistory (one entry per generation,
// a negative value meaning "no feasible solution yet") as an HTML line
// chart and writes it to w.
func WriteConvergenceChart(w io.Writer, instanceName string, bestCostHistory []float64) error {
	if len(bestCostHistory) == 0 {
		return fmt.Errorf("convergence chart: no generations recorded for %s", instanceName)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: fmt.Sprintf("HGS Convergence for %s", instanceName),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "generation",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "best feasible distance",
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}),
	)

	generations := make([]string, len(bestCostHistory))
	points := make([]opts.LineData, len(bestCostHistory))
	for i, cost := range bestCostHistory {
		generations[i] = fmt.Sprintf("%d", i)
		value := cost
		if value < 0 {
			value = 0
		}
		points[i] = opts.LineData{Value: value}
	}

	line.SetXAxis(generations).
		AddSeries("best distance", points).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(false)}),
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(false)}),
		)

	return line.Render(w)
}
