package chart

import (
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"ksfit/domain/fit"
	"ksfit/internal/view"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRenderer records the specs it was asked to draw
type stubRenderer struct {
	specs []Spec
	err   error
}

func (s *stubRenderer) Render(spec Spec) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.specs = append(s.specs, spec)
	return []byte(fmt.Sprintf("<svg>%v</svg>", spec.Values)), nil
}

func TestNewSpecIndexesFromOne(t *testing.T) {
	spec := NewSpec(fit.Sample{9.5, -1, 9.5})

	assert.Equal(t, []string{"1", "2", "3"}, spec.Labels)
	assert.Equal(t, []float64{9.5, -1, 9.5}, spec.Values)
	assert.Equal(t, "Valor", spec.YTitle)
	assert.Equal(t, "Índice", spec.XTitle)
}

func TestDrawTwiceLeavesOneLiveChart(t *testing.T) {
	canvas := view.NewMemoryCanvas()
	renderer := &stubRenderer{}
	a := NewAdapter(canvas, renderer)

	require.NoError(t, a.Draw(fit.Sample{1, 2, 3, 4, 5}))
	firstID, _ := canvas.Current()
	require.NoError(t, a.Draw(fit.Sample{5, 4, 3, 2, 1, 0}))

	assert.Equal(t, 1, canvas.Live())
	id, svg := canvas.Current()
	assert.NotEqual(t, firstID, id)
	assert.Equal(t, "<svg>[5 4 3 2 1 0]</svg>", string(svg))

	values, ok := a.Values()
	require.True(t, ok)
	assert.Equal(t, []float64{5, 4, 3, 2, 1, 0}, values)
}

func TestDrawDoesNotAliasSample(t *testing.T) {
	a := NewAdapter(view.NewMemoryCanvas(), &stubRenderer{})
	sample := fit.Sample{1, 2, 3, 4, 5}
	require.NoError(t, a.Draw(sample))

	sample[0] = 100
	values, _ := a.Values()
	assert.Equal(t, 1.0, values[0])
}

func TestDrawFailureKeepsPreviousChart(t *testing.T) {
	canvas := view.NewMemoryCanvas()
	renderer := &stubRenderer{}
	a := NewAdapter(canvas, renderer)
	require.NoError(t, a.Draw(fit.Sample{1, 2, 3, 4, 5}))

	renderer.err = fmt.Errorf("boom")
	assert.Error(t, a.Draw(fit.Sample{6, 7, 8, 9, 10}))

	assert.Equal(t, 1, canvas.Live())
	values, _ := a.Values()
	assert.Equal(t, []float64{1, 2, 3, 4, 5}, values)
}

func TestDispose(t *testing.T) {
	canvas := view.NewMemoryCanvas()
	a := NewAdapter(canvas, &stubRenderer{})
	require.NoError(t, a.Draw(fit.Sample{1, 2, 3, 4, 5}))

	a.Dispose()
	a.Dispose()

	assert.Equal(t, 0, canvas.Live())
	_, ok := a.Values()
	assert.False(t, ok)
}

func TestDrawEmptySample(t *testing.T) {
	a := NewAdapter(view.NewMemoryCanvas(), &stubRenderer{})
	assert.Error(t, a.Draw(nil))
}

func TestSVGRendererDrawsBars(t *testing.T) {
	r := NewSVGRenderer(800, 400)

	for _, sample := range []fit.Sample{
		{1, 2, 3, 4, 5},
		{-2.5, 3, 0, 1, -1},
		{7, 7, 7, 7, 7},
		{0, 0, 0, 0, 0},
	} {
		svg, err := r.Render(NewSpec(sample))
		require.NoError(t, err, "sample %v", sample)
		assert.Contains(t, string(svg), "<svg")
		assert.Contains(t, string(svg), "Valor")
	}
}

func TestValueRangeIncludesZero(t *testing.T) {
	lo, hi, err := valueRange([]float64{3, 5, 4})
	require.NoError(t, err)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 5.0, hi)

	lo, hi, err = valueRange([]float64{-3, -1})
	require.NoError(t, err)
	assert.Equal(t, -3.0, lo)
	assert.Equal(t, 0.0, hi)

	lo, hi, err = valueRange([]float64{0, 0})
	require.NoError(t, err)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 1.0, hi)
}

func TestIndexTicksCapsLabels(t *testing.T) {
	small := indexTicks(NewSpec(fit.Sample{1, 2, 3, 4, 5}).Labels)
	require.Len(t, small, 5)
	assert.Equal(t, "1", small[0].Label)
	assert.Equal(t, "5", small[4].Label)

	sample := make(fit.Sample, 5000)
	ticks := indexTicks(NewSpec(sample).Labels)
	assert.LessOrEqual(t, len(ticks), maxLabeledTicks)
	assert.Equal(t, "1", ticks[0].Label)
	assert.Equal(t, "251", ticks[1].Label)
}

func TestSVGRendererLargeSample(t *testing.T) {
	sample := make(fit.Sample, 5000)
	for i := range sample {
		sample[i] = math.Sin(float64(i)) * 10
	}

	start := time.Now()
	svg, err := NewSVGRenderer(800, 400).Render(NewSpec(sample))
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Less(t, len(svg), 512*1024, "svg size %d bytes", len(svg))
	assert.Less(t, elapsed, 3*time.Second)
	assert.Equal(t, 1, strings.Count(string(svg), ">251<"))
	assert.NotContains(t, string(svg), ">250<")
}

func TestBarWidth(t *testing.T) {
	assert.Equal(t, 75, barWidth(500, 5))
	assert.Equal(t, 1, barWidth(700, 5000))
}
