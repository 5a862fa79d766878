package render

import (
	"log"
	"math"
	"strconv"
	"strings"

	"ksfit/domain/fit"
	"ksfit/internal/view"
)

// SignificanceLevel is the p-value at or above which the null hypothesis is kept
const SignificanceLevel = 0.05

const (
	conclusionKeep   = "Fails to reject the null hypothesis (the data may follow the distribution)"
	conclusionReject = "Rejects the null hypothesis (the data do not follow the distribution)"
)

// ChartDrawer is the chart step driven after the table is shown
type ChartDrawer interface {
	Draw(sample fit.Sample) error
}

// Renderer turns analysis results into the results region of a view
type Renderer struct {
	view  view.Binding
	chart ChartDrawer
}

// NewRenderer creates a renderer bound to a view and a chart
func NewRenderer(b view.Binding, chart ChartDrawer) *Renderer {
	return &Renderer{view: b, chart: chart}
}

// Render shows the report, draws the analyzed sample and reveals the
// results. A chart failure is logged; the table stays visible.
func (r *Renderer) Render(result *fit.Result, sample fit.Sample) view.Report {
	report := BuildReport(result, sample)
	r.view.ShowResults(report)

	if r.chart != nil {
		if err := r.chart.Draw(sample); err != nil {
			log.Printf("[ResultRenderer] chart draw failed: %v", err)
		}
	}

	r.view.RevealResults()
	return report
}

// BuildReport formats a result. Statistic and p-value use six decimals,
// descriptive statistics four.
func BuildReport(result *fit.Result, sample fit.Sample) view.Report {
	report := view.Report{
		Title:        "Kolmogorov–Smirnov test results",
		Distribution: fit.DisplayName(result.Distribution),
		Statistic:    FormatFixed(result.Statistic, 6),
		PValue:       FormatFixed(result.PValue, 6),
	}

	if result.PValue >= SignificanceLevel {
		report.Conclusion = conclusionKeep
		report.ConclusionStyle = view.StyleSuccess
	} else {
		report.Conclusion = conclusionReject
		report.ConclusionStyle = view.StyleDanger
	}

	s := result.Stats
	report.Descriptive = []view.Row{
		{Label: "Sample size", Value: strconv.Itoa(sample.Len())},
		{Label: "Mean", Value: FormatFixed(s.Mean, 4)},
		{Label: "Standard deviation", Value: FormatFixed(s.Std, 4)},
		{Label: "Minimum", Value: FormatFixed(s.Min, 4)},
		{Label: "Maximum", Value: FormatFixed(s.Max, 4)},
	}
	for _, opt := range []struct {
		label string
		value float64
	}{
		{"Median", s.Median},
		{"First quartile", s.Q1},
		{"Third quartile", s.Q3},
		{"Variance", s.Variance},
	} {
		if !math.IsNaN(opt.value) {
			report.Descriptive = append(report.Descriptive, view.Row{Label: opt.label, Value: FormatFixed(opt.value, 4)})
		}
	}

	if len(result.Params) > 0 {
		parts := make([]string, len(result.Params))
		for i, p := range result.Params {
			parts[i] = FormatFixed(p, 4)
		}
		report.Params = strings.Join(parts, ", ")
	}

	return report
}
