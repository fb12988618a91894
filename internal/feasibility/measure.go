package feasibility

import (
	"fmt"
	"math"
)

// Measure is a dimension (in) or weight (lbs) that may be unknown.
// The zero value is unknown, so fields that are never set stay unknown
// instead of silently becoming zero.
type Measure struct {
	value float64
	known bool
}

// Known returns a known measure. NaN and infinities are treated as unknown.
func Known(v float64) Measure {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Measure{}
	}
	return Measure{value: v, known: true}
}

// Unknown returns a measure with no value.
func Unknown() Measure {
	return Measure{}
}

// Value returns the measure and whether it is known.
func (m Measure) Value() (float64, bool) {
	return m.value, m.known
}

// IsKnown reports whether the measure carries a value.
func (m Measure) IsKnown() bool {
	return m.known
}

// Or returns the value, or fallback when unknown.
func (m Measure) Or(fallback float64) float64 {
	if !m.known {
		return fallback
	}
	return m.value
}

// Add returns m + o, unknown if either side is unknown.
func (m Measure) Add(o Measure) Measure {
	if !m.known || !o.known {
		return Measure{}
	}
	return Known(m.value + o.value)
}

// Scale returns m * k, unknown if m is unknown.
func (m Measure) Scale(k float64) Measure {
	if !m.known {
		return Measure{}
	}
	return Known(m.value * k)
}

// AtMost reports whether m <= limit. Equality passes.
func (m Measure) AtMost(limit Measure) Verdict {
	if !m.known || !limit.known {
		return VerdictUnknown
	}
	return verdictOf(m.value <= limit.value)
}

func (m Measure) String() string {
	if !m.known {
		return "unknown"
	}
	return fmt.Sprintf("%.1f", m.value)
}

// Verdict is a three-valued answer: yes, no, or cannot be determined.
type Verdict int

const (
	VerdictUnknown Verdict = iota
	VerdictYes
	VerdictNo
)

func verdictOf(b bool) Verdict {
	if b {
		return VerdictYes
	}
	return VerdictNo
}

// Known reports whether the verdict is yes or no.
func (v Verdict) Known() bool {
	return v != VerdictUnknown
}

// Bool returns the verdict as a bool and whether it is known.
func (v Verdict) Bool() (bool, bool) {
	return v == VerdictYes, v.Known()
}

func (v Verdict) String() string {
	switch v {
	case VerdictYes:
		return "yes"
	case VerdictNo:
		return "no"
	default:
		return "unknown"
	}
}

// Or combines verdicts with three-valued OR: any yes wins, then unknown.
func Or(vs ...Verdict) Verdict {
	out := VerdictNo
	for _, v := range vs {
		switch v {
		case VerdictYes:
			return VerdictYes
		case VerdictUnknown:
			out = VerdictUnknown
		}
	}
	return out
}

// And combines verdicts with three-valued AND: any no wins, then unknown.
// And of no verdicts is yes.
func And(vs ...Verdict) Verdict {
	out := VerdictYes
	for _, v := range vs {
		switch v {
		case VerdictNo:
			return VerdictNo
		case VerdictUnknown:
			out = VerdictUnknown
		}
	}
	return out
}
