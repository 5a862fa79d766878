package chart

import (
	"bytes"
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// maxLabeledTicks caps the x axis labels regardless of sample size
const maxLabeledTicks = 20

var (
	barFill   = drawing.Color{R: 54, G: 162, B: 235, A: 128}
	barStroke = drawing.Color{R: 54, G: 162, B: 235, A: 255}
)

// SVGRenderer draws bar charts with go-chart
type SVGRenderer struct {
	Width  int
	Height int
}

// NewSVGRenderer creates a renderer for a canvas of the given pixel size
func NewSVGRenderer(width, height int) *SVGRenderer {
	return &SVGRenderer{Width: width, Height: height}
}

// Render draws the spec as an SVG bar chart whose y axis includes zero.
// All bars share one path so output grows by a few bytes per value.
func (s *SVGRenderer) Render(spec Spec) ([]byte, error) {
	n := len(spec.Values)
	if n == 0 {
		return nil, fmt.Errorf("no values to draw")
	}

	lo, hi, err := valueRange(spec.Values)
	if err != nil {
		return nil, err
	}

	ch := gochart.Chart{
		Width:  s.Width,
		Height: s.Height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: gochart.XAxis{
			Name:  spec.XTitle,
			Ticks: indexTicks(spec.Labels),
			Range: &gochart.ContinuousRange{Min: 0.5, Max: float64(n) + 0.5},
		},
		YAxis: gochart.YAxis{
			Name:  spec.YTitle,
			Range: &gochart.ContinuousRange{Min: lo, Max: hi},
		},
		Series: []gochart.Series{barSeries{name: spec.Series, values: spec.Values}},
	}

	var buf bytes.Buffer
	if err := ch.Render(gochart.SVG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// indexTicks labels every ceil(n/maxLabeledTicks)-th bar, always starting at 1
func indexTicks(labels []string) []gochart.Tick {
	step := (len(labels) + maxLabeledTicks - 1) / maxLabeledTicks
	if step < 1 {
		step = 1
	}
	ticks := make([]gochart.Tick, 0, maxLabeledTicks)
	for i := 0; i < len(labels); i += step {
		ticks = append(ticks, gochart.Tick{Value: float64(i + 1), Label: labels[i]})
	}
	if len(ticks) == 1 {
		// go-chart needs two ticks to lay out the axis
		ticks = append(ticks, gochart.Tick{Value: float64(len(labels)) + 0.5, Label: ""})
	}
	return ticks
}

// valueRange spans the data and zero, like a chart that begins at zero
func valueRange(values []float64) (float64, float64, error) {
	data := stats.Float64Data(values)
	lo, err := data.Min()
	if err != nil {
		return 0, 0, err
	}
	hi, err := data.Max()
	if err != nil {
		return 0, 0, err
	}
	lo, hi = math.Min(lo, 0), math.Max(hi, 0)
	if hi == lo {
		hi = lo + 1
	}
	return lo, hi, nil
}

// barSeries draws value i as a bar centred on x = i+1, rising from zero
type barSeries struct {
	name   string
	values []float64
}

func (b barSeries) GetName() string { return b.name }
func (b barSeries) GetYAxis() gochart.YAxisType { return gochart.YAxisPrimary }
func (b barSeries) GetStyle() gochart.Style { return gochart.Style{FillColor: barFill, StrokeColor: barStroke} }
func (b barSeries) Len() int { return len(b.values) }
func (b barSeries) GetValues(i int) (x, y float64) { return float64(i + 1), b.values[i] }

func (b barSeries) Validate() error {
	if len(b.values) == 0 {
		return fmt.Errorf("bar series %q has no values", b.name)
	}
	return nil
}

func (b barSeries) Render(r gochart.Renderer, box gochart.Box, xrange, yrange gochart.Range, _ gochart.Style) {
	width := barWidth(box.Width(), len(b.values))
	base := box.Bottom - yrange.Translate(0)

	r.SetFillColor(barFill)
	r.SetStrokeColor(barStroke)
	r.SetStrokeWidth(1)
	for i, v := range b.values {
		left := box.Left + xrange.Translate(float64(i+1)) - width/2
		top := box.Bottom - yrange.Translate(v)
		r.MoveTo(left, base)
		r.LineTo(left, top)
		r.LineTo(left+width, top)
		r.LineTo(left+width, base)
		r.Close()
	}
	r.FillStroke()
}

// barWidth leaves a quarter of each slot as spacing, never below one pixel
func barWidth(plotWidth, n int) int {
	w := plotWidth / n * 3 / 4
	if w < 1 {
		return 1
	}
	return w
}
