package analysis

import (
	"fmt"
	"math"

	"ksfit/domain/fit"
	"ksfit/internal/errors"

	"github.com/tidwall/gjson"
)

// decodeResult reads a success body. Missing or null numeric fields become
// NaN so partial payloads still render; present fields of the wrong JSON
// type make the whole body malformed.
func decodeResult(body []byte) (*fit.Result, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.MalformedResponse("the analysis response is not valid JSON", nil)
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, errors.MalformedResponse("the analysis response is not a JSON object", nil)
	}

	d := decoder{}
	result := &fit.Result{
		Distribution:     d.str(root, "distribution"),
		DistributionName: d.str(root, "distribution_name"),
		Statistic:        d.num(root, "statistic"),
		PValue:           d.num(root, "p_value"),
		Params:           d.nums(root, "params"),
	}

	stats := root.Get("stats")
	switch {
	case !stats.Exists() || stats.Type == gjson.Null:
		stats = gjson.Parse("{}")
	case !stats.IsObject():
		d.fail("stats")
	}
	result.Stats = fit.Stats{
		Mean:     d.num(stats, "mean"),
		Std:      d.num(stats, "std"),
		Min:      d.num(stats, "min"),
		Max:      d.num(stats, "max"),
		Size:     d.num(stats, "size"),
		Variance: d.num(stats, "variance"),
		Median:   d.num(stats, "median"),
		Q1:       d.num(stats, "q1"),
		Q3:       d.num(stats, "q3"),
	}

	if d.bad != "" {
		return nil, errors.MalformedResponse(fmt.Sprintf("the analysis response has an invalid %q field", d.bad), nil)
	}
	return result, nil
}

// decoder remembers the first field with an unexpected type
type decoder struct {
	bad string
}

func (d *decoder) fail(field string) {
	if d.bad == "" {
		d.bad = field
	}
}

func (d *decoder) num(obj gjson.Result, field string) float64 {
	v := obj.Get(field)
	switch v.Type {
	case gjson.Number:
		return v.Float()
	case gjson.Null:
		return math.NaN()
	default:
		if v.Exists() {
			d.fail(field)
		}
		return math.NaN()
	}
}

func (d *decoder) str(obj gjson.Result, field string) string {
	v := obj.Get(field)
	switch v.Type {
	case gjson.String:
		return v.Str
	case gjson.Null:
		return ""
	default:
		if v.Exists() {
			d.fail(field)
		}
		return ""
	}
}

func (d *decoder) nums(obj gjson.Result, field string) []float64 {
	v := obj.Get(field)
	if !v.Exists() || v.Type == gjson.Null {
		return nil
	}
	if !v.IsArray() {
		d.fail(field)
		return nil
	}
	var out []float64
	for _, item := range v.Array() {
		if item.Type != gjson.Number {
			d.fail(field)
			return nil
		}
		out = append(out, item.Float())
	}
	return out
}

// serviceMessage extracts the human message an error body may carry
func serviceMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	return gjson.GetBytes(body, "message").String()
}
