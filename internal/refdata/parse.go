package refdata

import (
	"math"
	"strconv"
	"strings"

	"github.com/onflyair/cargofit/internal/feasibility"
)

// numberCleaner strips thousands separators and "approximately" markers.
var numberCleaner = strings.NewReplacer(",", "", "~", "", " ", "", "\u00a0", "")

// ParseMeasure turns a spreadsheet cell into a measure. Blank, unparseable,
// negative and non-finite cells are unknown, never zero.
//
//	"1,200" -> 1200
//	"~350"  -> 350
//	"n/a"   -> unknown
func ParseMeasure(cell string) feasibility.Measure {
	s := numberCleaner.Replace(strings.TrimSpace(cell))
	if s == "" {
		return feasibility.Unknown()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return feasibility.Unknown()
	}
	return feasibility.Known(v)
}

// ParseCount parses a whole-number cell such as a seat count. Fractions are
// unknown, like any other unusable cell.
func ParseCount(cell string) feasibility.Measure {
	m := ParseMeasure(cell)
	if v, ok := m.Value(); ok && v != math.Trunc(v) {
		return feasibility.Unknown()
	}
	return m
}

// normalizeHeader lower-cases and collapses whitespace so that
// " Door Width  (in)" and "door width (in)" match.
func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	return strings.ToLower(strings.Join(strings.Fields(h), " "))
}
