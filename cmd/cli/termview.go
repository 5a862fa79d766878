package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"ksfit/internal/view"
)

const busyMessage = "Processing..."

// terminalView binds the pipeline to a terminal: notices and the busy
// spinner go to errOut, the report is kept for printing once the run ends
type terminalView struct {
	mu     sync.Mutex
	errOut io.Writer
	spin   *spinner

	busy     bool
	report   *view.Report
	revealed bool
	canvas   view.Canvas
}

func newTerminalView(errOut io.Writer, animate bool) *terminalView {
	v := &terminalView{errOut: errOut, canvas: discardCanvas{}}
	if animate {
		v.spin = newSpinner(errOut, busyMessage)
	}
	return v
}

func (v *terminalView) SetBusy(busy bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if busy == v.busy {
		return
	}
	v.busy = busy
	switch {
	case v.spin == nil:
		if busy {
			fmt.Fprintln(v.errOut, busyMessage)
		}
	case busy:
		v.spin.Start()
	default:
		v.spin.Stop()
	}
}

// SetTriggerEnabled is a no-op: a command line has no trigger to disable
func (v *terminalView) SetTriggerEnabled(bool) {}

func (v *terminalView) Notify(n view.Notice) {
	v.mu.Lock()
	defer v.mu.Unlock()
	line := fmt.Sprintf("%s: %s", strings.ToUpper(string(n.Level)), n.Message)
	if v.spin != nil {
		v.spin.Println(line)
		return
	}
	fmt.Fprintln(v.errOut, line)
}

func (v *terminalView) HideResults() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.report = nil
	v.revealed = false
}

func (v *terminalView) ShowResults(r view.Report) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.report = &r
}

func (v *terminalView) RevealResults() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.revealed = true
}

func (v *terminalView) Canvas() view.Canvas {
	return v.canvas
}

// Report returns the revealed report, if the run produced one
func (v *terminalView) Report() (view.Report, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.report == nil || !v.revealed {
		return view.Report{}, false
	}
	return *v.report, true
}

// fileCanvas writes the mounted chart to a file. A new mount replaces the
// file contents, so the file always holds the live chart.
type fileCanvas struct {
	path string
}

func (c *fileCanvas) Mount(id string, svg []byte) error {
	return os.WriteFile(c.path, svg, 0o644)
}

func (c *fileCanvas) Clear(id string) {}

type discardCanvas struct{}

func (discardCanvas) Mount(string, []byte) error { return nil }

func (discardCanvas) Clear(string) {}
