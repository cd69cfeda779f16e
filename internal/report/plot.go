package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Sumatoshi-tech/algotrace/internal/replay"
)

const (
	chartWidth  = "100%"
	chartHeight = "500px"
	dataZoomEnd = 100
)

// WritePlot renders an HTML page charting the recording: a bar chart of
// steps per operation and a line chart of structure size over time.
func WritePlot(w io.Writer, rec *replay.Recording) error {
	page := components.NewPage()
	page.PageTitle = "algotrace " + rec.Structure
	page.SetLayout(components.PageCenterLayout)
	page.AddCharts(StepsChart(rec), SizeChart(rec))

	if err := page.Render(w); err != nil {
		return fmt.Errorf("render plot page: %w", err)
	}

	return nil
}

// StepsChart builds the steps-per-operation bar chart.
func StepsChart(rec *replay.Recording) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Steps per Operation",
			Subtitle: "How much narration each operation produced",
			Left:     "center",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithDataZoomOpts(
			opts.DataZoom{Type: "slider", Start: 0, End: dataZoomEnd},
			opts.DataZoom{Type: "inside"},
		),
		charts.WithYAxisOpts(opts.YAxis{Name: "Steps"}),
	)

	bar.SetXAxis(operationLabels(rec))

	data := make([]opts.BarData, len(rec.Traces))
	for i, trace := range rec.Traces {
		data[i] = opts.BarData{Value: len(trace)}
	}

	bar.AddSeries("Steps", data)

	return bar
}

// SizeChart builds the structure-size-over-time line chart.
func SizeChart(rec *replay.Recording) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Structure Size",
			Subtitle: "Element count after each operation",
			Left:     "center",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithDataZoomOpts(
			opts.DataZoom{Type: "slider", Start: 0, End: dataZoomEnd},
			opts.DataZoom{Type: "inside"},
		),
		charts.WithYAxisOpts(opts.YAxis{Name: "Size"}),
	)

	line.SetXAxis(operationLabels(rec))

	data := make([]opts.LineData, len(rec.Stats.SizeAfter))
	for i, size := range rec.Stats.SizeAfter {
		data[i] = opts.LineData{Value: size}
	}

	line.AddSeries("Size", data)

	return line
}

// operationLabels names the x-axis ticks "#n kind:args".
func operationLabels(rec *replay.Recording) []string {
	labels := make([]string, len(rec.Operations))
	for i, op := range rec.Operations {
		labels[i] = fmt.Sprintf("#%d %s", i+1, op)
	}

	return labels
}
