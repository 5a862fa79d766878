package validation

import (
	"ksfit/domain/fit"
	"ksfit/internal/datasource"
	"ksfit/internal/errors"
)

// Validator gates a run before and after the sample is resolved.
// Both checks are pure and synchronous.
type Validator struct {
	minSize int
}

// NewValidator creates a validator enforcing fit.MinSampleSize
func NewValidator() *Validator {
	return &Validator{minSize: fit.MinSampleSize}
}

// CheckChannels requires exactly one populated input channel. Content is
// not inspected: a selected file counts as populated even when empty.
func (v *Validator) CheckChannels(ch datasource.Channels) error {
	hasText, hasFile := ch.HasText(), ch.HasFile()
	switch {
	case hasText && hasFile:
		return errors.MutuallyExclusiveInput()
	case !hasText && !hasFile:
		return errors.MissingInput()
	default:
		return nil
	}
}

// CheckSize rejects samples smaller than the minimum, whatever the channel
func (v *Validator) CheckSize(sample fit.Sample) error {
	if sample.Len() < v.minSize {
		return errors.InsufficientData(v.minSize, sample.Len())
	}
	return nil
}
