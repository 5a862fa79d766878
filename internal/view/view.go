// Package view defines the binding between the analysis pipeline and
// whatever presents it (the web page, the terminal). Components receive a
// Binding at construction and never look up presentation elements on
// their own.
package view

// Level is the severity of a user notice
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelDanger  Level = "danger"
)

// Notice is a dismissible message shown to the user
type Notice struct {
	Level   Level  `json:"level" yaml:"level"`
	Message string `json:"message" yaml:"message"`
}

// Style marks how the conclusion should be highlighted
type Style string

const (
	StyleSuccess Style = "success"
	StyleDanger  Style = "danger"
)

// Row is one label/value line of a results table
type Row struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// Report is the display fragment of a goodness-of-fit result. All values
// are preformatted strings, so every binding shows exactly the same text.
type Report struct {
	Title           string `json:"title" yaml:"title"`
	Distribution    string `json:"distribution" yaml:"distribution"`
	Statistic       string `json:"statistic" yaml:"statistic"`
	PValue          string `json:"p_value" yaml:"p_value"`
	Conclusion      string `json:"conclusion" yaml:"conclusion"`
	ConclusionStyle Style  `json:"conclusion_style" yaml:"conclusion_style"`
	Descriptive     []Row  `json:"descriptive" yaml:"descriptive"`
	Params          string `json:"params,omitempty" yaml:"params,omitempty"`
}

// Canvas is the surface the single chart instance is mounted on
type Canvas interface {
	// Mount shows a rendered chart (SVG document) under the given instance id
	Mount(id string, svg []byte) error
	// Clear removes the chart with the given instance id
	Clear(id string)
}

// Binding is the set of presentation handles the pipeline drives
type Binding interface {
	// SetBusy toggles the busy indicator
	SetBusy(busy bool)
	// SetTriggerEnabled enables or disables the control that starts an analysis
	SetTriggerEnabled(enabled bool)
	// Notify shows a dismissible notice
	Notify(n Notice)
	// HideResults hides the results region
	HideResults()
	// ShowResults fills the results content area
	ShowResults(r Report)
	// RevealResults makes the results region visible and scrolls to it
	RevealResults()
	// Canvas returns the chart canvas
	Canvas() Canvas
}
