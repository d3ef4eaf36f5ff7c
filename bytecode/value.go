package bytecode

import (
	"math"
	"strconv"
)

// Value is a runtime value. Only double-precision numbers exist for now.
type Value float64

// String formats the value with the fewest digits that round-trip, so 14.0
// prints as "14" and 0.1 as "0.1".
func (v Value) String() string {
	f := float64(v)
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
