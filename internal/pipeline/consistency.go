package pipeline

import (
	"math"

	"ksfit/domain/fit"
	"ksfit/internal"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// consistencyTolerance is the relative gap tolerated between local and remote statistics
const consistencyTolerance = 1e-6

// Mismatch is a descriptive statistic on which the service disagrees with
// the sample that was sent
type Mismatch struct {
	Field  string
	Local  float64
	Remote float64
}

// CompareStats recomputes mean, std (n-1), min and max of the sample and
// reports the fields the service got differently. NaN remote fields are
// treated as absent.
func CompareStats(sample fit.Sample, remote fit.Stats) []Mismatch {
	if sample.Len() == 0 {
		return nil
	}
	checks := []Mismatch{
		{Field: "mean", Local: stat.Mean(sample, nil), Remote: remote.Mean},
		{Field: "min", Local: floats.Min(sample), Remote: remote.Min},
		{Field: "max", Local: floats.Max(sample), Remote: remote.Max},
	}
	if sample.Len() > 1 {
		checks = append(checks, Mismatch{Field: "std", Local: stat.StdDev(sample, nil), Remote: remote.Std})
	}

	var out []Mismatch
	for _, c := range checks {
		if math.IsNaN(c.Remote) || closeEnough(c.Local, c.Remote) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func closeEnough(a, b float64) bool {
	if a == b {
		return true
	}
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	return math.Abs(a-b) <= consistencyTolerance*scale
}

func checkConsistency(logger *internal.Logger, id fit.RunID, sample fit.Sample, remote fit.Stats) {
	for _, m := range CompareStats(sample, remote) {
		logger.Warn("run %s: service %s=%g, sample gives %g", id.Short(), m.Field, m.Remote, m.Local)
	}
}
