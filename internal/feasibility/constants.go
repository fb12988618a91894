package feasibility

// Payload defaults used by the fit tool

const (
	// DefaultMechanicWeight is the planning weight per traveling mechanic (lbs),
	// used when a mission does not state one.
	DefaultMechanicWeight = 180.0
)

// SeatWeightPolicy decides what removed seats contribute to available payload
// when the aircraft's seat weight is unknown.
type SeatWeightPolicy int

const (
	// SeatWeightPropagate makes available payload unknown.
	SeatWeightPropagate SeatWeightPolicy = iota
	// SeatWeightAsZero counts each removed seat as 0 lbs.
	SeatWeightAsZero
)

// ParseSeatWeightPolicy maps a config value ("unknown" or "zero") to a policy.
func ParseSeatWeightPolicy(s string) (SeatWeightPolicy, bool) {
	switch s {
	case "", "unknown", "propagate":
		return SeatWeightPropagate, true
	case "zero":
		return SeatWeightAsZero, true
	default:
		return SeatWeightPropagate, false
	}
}

func (p SeatWeightPolicy) String() string {
	if p == SeatWeightAsZero {
		return "zero"
	}
	return "unknown"
}
