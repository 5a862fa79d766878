package view

import (
	"sync"
)

// Recorder is a headless Binding that keeps the latest presentation state.
// The web UI uses one per request and renders it once the run completes.
type Recorder struct {
	mu sync.Mutex

	busy           bool
	triggerEnabled bool
	resultsVisible bool
	revealed       bool
	report         *Report
	notices        []Notice
	busyToggles    int

	canvas *MemoryCanvas
}

// NewRecorder creates a recorder in the idle presentation state
func NewRecorder() *Recorder {
	return &Recorder{
		triggerEnabled: true,
		canvas:         NewMemoryCanvas(),
	}
}

func (r *Recorder) SetBusy(busy bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.busy != busy {
		r.busyToggles++
	}
	r.busy = busy
}

func (r *Recorder) SetTriggerEnabled(enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.triggerEnabled = enabled
}

func (r *Recorder) Notify(n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

func (r *Recorder) HideResults() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resultsVisible = false
	r.revealed = false
}

func (r *Recorder) ShowResults(rep Report) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.report = &rep
	r.resultsVisible = true
}

func (r *Recorder) RevealResults() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resultsVisible = true
	r.revealed = true
}

func (r *Recorder) Canvas() Canvas {
	return r.canvas
}

// Snapshot is a copy of the recorded presentation state
type Snapshot struct {
	Busy           bool
	TriggerEnabled bool
	ResultsVisible bool
	Revealed       bool
	Report         *Report
	Notices        []Notice
	BusyToggles    int
	ChartID        string
	ChartSVG       []byte
}

// Snapshot returns the current state
func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := Snapshot{
		Busy:           r.busy,
		TriggerEnabled: r.triggerEnabled,
		ResultsVisible: r.resultsVisible,
		Revealed:       r.revealed,
		Notices:        append([]Notice(nil), r.notices...),
		BusyToggles:    r.busyToggles,
	}
	if r.report != nil {
		rep := *r.report
		s.Report = &rep
	}
	s.ChartID, s.ChartSVG = r.canvas.Current()
	return s
}

// MemoryCanvas keeps mounted charts in memory
type MemoryCanvas struct {
	mu      sync.Mutex
	mounted map[string][]byte
	order   []string
}

// NewMemoryCanvas creates an empty canvas
func NewMemoryCanvas() *MemoryCanvas {
	return &MemoryCanvas{mounted: make(map[string][]byte)}
}

func (c *MemoryCanvas) Mount(id string, svg []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.mounted[id]; !ok {
		c.order = append(c.order, id)
	}
	c.mounted[id] = append([]byte(nil), svg...)
	return nil
}

func (c *MemoryCanvas) Clear(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.mounted, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Live returns the number of charts currently mounted
func (c *MemoryCanvas) Live() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.mounted)
}

// Current returns the most recently mounted chart, if any
func (c *MemoryCanvas) Current() (string, []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.order) == 0 {
		return "", nil
	}
	id := c.order[len(c.order)-1]
	return id, c.mounted[id]
}
