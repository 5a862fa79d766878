package fit

import (
	"fmt"
	"strings"

	"ksfit/internal/errors"
)

// MinSampleSize is the smallest sample the analysis service accepts
const MinSampleSize = 5

// Sample is the ordered numeric dataset submitted for analysis.
// Order and duplicates are preserved from the input.
type Sample []float64

// Len returns the number of observations
func (s Sample) Len() int { return len(s) }

// Clone returns an independent copy of the sample
func (s Sample) Clone() Sample {
	if s == nil {
		return nil
	}
	out := make(Sample, len(s))
	copy(out, s)
	return out
}

// Distribution is the reference distribution code of a goodness-of-fit test
type Distribution string

const (
	DistributionNormal      Distribution = "norm"
	DistributionUniform     Distribution = "uniform"
	DistributionExponential Distribution = "expon"
)

// Distributions lists the supported codes in display order
var Distributions = []Distribution{
	DistributionNormal,
	DistributionUniform,
	DistributionExponential,
}

var displayNames = map[Distribution]string{
	DistributionNormal:      "Normal",
	DistributionUniform:     "Uniform",
	DistributionExponential: "Exponential",
}

// DisplayName maps a distribution code to its human name.
// Unknown codes pass through verbatim.
func DisplayName(code string) string {
	if name, ok := displayNames[Distribution(code)]; ok {
		return name
	}
	return code
}

// ParseDistribution validates a distribution code supplied by a shell
func ParseDistribution(s string) (Distribution, error) {
	d := Distribution(strings.TrimSpace(s))
	if _, ok := displayNames[d]; ok {
		return d, nil
	}
	return "", errors.InvalidInput(fmt.Sprintf("unsupported distribution %q (use norm, uniform or expon)", s))
}

// Request is the payload sent to the analysis service. It is immutable
// once built: NewRequest takes its own copy of the sample.
type Request struct {
	Data         Sample       `json:"data"`
	Distribution Distribution `json:"distribution"`
}

// NewRequest builds an analysis request
func NewRequest(sample Sample, dist Distribution) Request {
	return Request{
		Data:         sample.Clone(),
		Distribution: dist,
	}
}

// Stats holds the descriptive statistics returned by the service.
// Missing fields are NaN.
type Stats struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`

	// Optional fields, NaN when the service omits them
	Size     float64 `json:"size,omitempty"`
	Variance float64 `json:"variance,omitempty"`
	Median   float64 `json:"median,omitempty"`
	Q1       float64 `json:"q1,omitempty"`
	Q3       float64 `json:"q3,omitempty"`
}

// Result is the goodness-of-fit result returned by the analysis service.
// It is external data: nothing beyond field presence is enforced.
type Result struct {
	Distribution     string    `json:"distribution"`
	DistributionName string    `json:"distribution_name,omitempty"`
	Statistic        float64   `json:"statistic"`
	PValue           float64   `json:"p_value"`
	Params           []float64 `json:"params,omitempty"`
	Stats            Stats     `json:"stats"`
}

// UIState is the visible state of one pipeline run
type UIState int

const (
	StateIdle UIState = iota
	StateLoading
	StateResultsShown
	StateErrorShown
)

func (s UIState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateResultsShown:
		return "results_shown"
	case StateErrorShown:
		return "error_shown"
	default:
		return fmt.Sprintf("UIState(%d)", int(s))
	}
}
