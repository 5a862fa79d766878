package datasource

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	"ksfit/domain/fit"
	"ksfit/internal/errors"

	"github.com/xuri/excelize/v2"
)

// DefaultMaxFileBytes bounds the whole-file read of the file channel
const DefaultMaxFileBytes = 10 * 1024 * 1024

// Resolver extracts a Sample from whichever input channel is populated
type Resolver struct {
	maxFileBytes int64
}

// NewResolver creates a resolver; maxFileBytes <= 0 selects the default limit
func NewResolver(maxFileBytes int64) *Resolver {
	if maxFileBytes <= 0 {
		maxFileBytes = DefaultMaxFileBytes
	}
	return &Resolver{maxFileBytes: maxFileBytes}
}

// MaxFileBytes returns the file channel size limit
func (r *Resolver) MaxFileBytes() int64 {
	return r.maxFileBytes
}

// Resolve produces the sample of one run. The text channel wins when it is
// populated; callers are expected to have rejected the both-populated case.
func (r *Resolver) Resolve(ch Channels) (fit.Sample, error) {
	switch {
	case ch.HasText():
		sample := ParseText(ch.Text)
		log.Printf("[DataSource] text channel yielded %d values", len(sample))
		return sample, nil
	case ch.HasFile():
		return r.resolveFile(ch.File)
	default:
		return nil, errors.EmptyInput()
	}
}

// ParseText splits pasted text on runs of commas and whitespace and keeps
// every token that is a number. Unparseable tokens are dropped silently,
// so a wholly non-numeric paste gives an empty sample.
func ParseText(text string) fit.Sample {
	tokens := strings.FieldsFunc(text, isSeparator)
	sample := make(fit.Sample, 0, len(tokens))
	for _, token := range tokens {
		if v, ok := parseToken(token); ok {
			sample = append(sample, v)
		}
	}
	return sample
}

// ParseCSV reads "value[,label...]" lines: blank lines are dropped, the text
// before the first comma is parsed, and lines without a numeric prefix are
// skipped.
func ParseCSV(content string) fit.Sample {
	var sample fit.Sample
	for _, line := range strings.Split(content, "\n") {
		if v, ok := parseLine(line); ok {
			sample = append(sample, v)
		}
	}
	return sample
}

func parseLine(line string) (float64, bool) {
	if strings.TrimSpace(line) == "" {
		return 0, false
	}
	first, _, _ := strings.Cut(line, ",")
	return parseLeading(strings.TrimSpace(first))
}

func (r *Resolver) resolveFile(file File) (fit.Sample, error) {
	name := file.Name()
	data, err := r.readAll(file)
	if err != nil {
		log.Printf("[DataSource] failed to read %s: %v", name, err)
		return nil, errors.FileUnreadable(err)
	}

	var sample fit.Sample
	if strings.EqualFold(filepath.Ext(name), ".xlsx") {
		sample, err = parseWorkbook(data)
		if err != nil {
			log.Printf("[DataSource] failed to open workbook %s: %v", name, err)
			return nil, errors.FileUnreadable(err)
		}
	} else {
		sample = ParseCSV(string(data))
	}

	log.Printf("[DataSource] file %s (%d bytes) yielded %d values", name, len(data), len(sample))
	if len(sample) == 0 {
		return nil, errors.NoNumericData()
	}
	return sample, nil
}

func (r *Resolver) readAll(file File) ([]byte, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, r.maxFileBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > r.maxFileBytes {
		return nil, FileTooLarge(r.maxFileBytes)
	}
	return data, nil
}

// parseWorkbook reads the first column of the first worksheet, applying the
// same per-line rule as CSV content.
func parseWorkbook(data []byte) (fit.Sample, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", sheets[0], err)
	}

	var sample fit.Sample
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		if v, ok := parseLine(row[0]); ok {
			sample = append(sample, v)
		}
	}
	return sample, nil
}
