package chart

import (
	"fmt"
	"log"
	"strconv"
	"sync"

	"ksfit/domain/fit"
	"ksfit/internal/view"

	"github.com/google/uuid"
)

const (
	// AxisValue titles the y axis
	AxisValue = "Valor"
	// AxisIndex titles the x axis
	AxisIndex = "Índice"
	// SeriesLabel names the single bar series
	SeriesLabel = "Datos"
)

// Spec is a renderer-independent description of the sample bar chart
type Spec struct {
	Labels []string
	Values []float64
	XTitle string
	YTitle string
	Series string
}

// NewSpec encodes a sample as bars indexed 1..N
func NewSpec(sample fit.Sample) Spec {
	labels := make([]string, sample.Len())
	for i := range labels {
		labels[i] = strconv.Itoa(i + 1)
	}
	return Spec{
		Labels: labels,
		Values: append([]float64(nil), sample...),
		XTitle: AxisIndex,
		YTitle: AxisValue,
		Series: SeriesLabel,
	}
}

// Renderer turns a chart spec into an SVG document
type Renderer interface {
	Render(spec Spec) ([]byte, error)
}

type instance struct {
	id   string
	spec Spec
}

// Adapter owns the single live chart. Drawing replaces, never updates:
// the previous instance is disposed before the new one is mounted.
type Adapter struct {
	mu       sync.Mutex
	canvas   view.Canvas
	renderer Renderer
	current  *instance
}

// NewAdapter creates an adapter drawing on the given canvas
func NewAdapter(canvas view.Canvas, renderer Renderer) *Adapter {
	return &Adapter{canvas: canvas, renderer: renderer}
}

// Draw renders the sample and mounts it as the only live chart
func (a *Adapter) Draw(sample fit.Sample) error {
	if sample.Len() == 0 {
		return fmt.Errorf("cannot chart an empty sample")
	}

	spec := NewSpec(sample)
	svg, err := a.renderer.Render(spec)
	if err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.disposeLocked()
	next := &instance{id: "chart-" + uuid.NewString(), spec: spec}
	if err := a.canvas.Mount(next.id, svg); err != nil {
		return fmt.Errorf("failed to mount chart: %w", err)
	}
	a.current = next
	log.Printf("[ChartAdapter] mounted %s (%d bars)", next.id, len(spec.Values))
	return nil
}

// Dispose removes the live chart, if any
func (a *Adapter) Dispose() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.disposeLocked()
}

func (a *Adapter) disposeLocked() {
	if a.current == nil {
		return
	}
	a.canvas.Clear(a.current.id)
	a.current = nil
}

// Values returns a copy of the data behind the live chart
func (a *Adapter) Values() ([]float64, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.current == nil {
		return nil, false
	}
	return append([]float64(nil), a.current.spec.Values...), true
}
