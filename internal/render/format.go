package render

import (
	"math"
	"strconv"
)

// FormatFixed prints v with the given number of decimals. Non-finite values
// print as NaN, Infinity or -Infinity instead of failing, and negative zero
// prints without its sign.
func FormatFixed(v float64, decimals int) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}
