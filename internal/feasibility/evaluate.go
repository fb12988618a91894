package feasibility

import "fmt"

// Evaluator computes fit and payload verdicts. The zero value uses
// SeatWeightPropagate and is safe for concurrent use.
type Evaluator struct {
	SeatWeight SeatWeightPolicy
}

var defaultEvaluator Evaluator

// EvaluateDoorFit reports whether the item's footprint (length × width)
// passes through the door in either axis-aligned orientation. Height is
// ignored and diagonal tilting is not modeled.
func EvaluateDoorFit(item CargoItem, aircraft AircraftSpec) Verdict {
	dw, okW := aircraft.DoorWidth.Value()
	dh, okH := aircraft.DoorHeight.Value()
	l, okL := item.Length.Value()
	w, okWi := item.Width.Value()
	if !okW || !okH || !okL || !okWi {
		return VerdictUnknown
	}
	return verdictOf((l <= dw && w <= dh) || (l <= dh && w <= dw))
}

// EvaluateCabinFit reports whether the item fits the cabin in the
// orientation given. No rotation is attempted.
func EvaluateCabinFit(item CargoItem, aircraft AircraftSpec) Verdict {
	cl, ok1 := aircraft.CabinLength.Value()
	cw, ok2 := aircraft.CabinWidth.Value()
	ch, ok3 := aircraft.CabinHeight.Value()
	l, ok4 := item.Length.Value()
	w, ok5 := item.Width.Value()
	h, ok6 := item.Height.Value()
	if !ok1 || !ok2 || !ok3 || !ok4 || !ok5 || !ok6 {
		return VerdictUnknown
	}
	return verdictOf(l <= cl && w <= cw && h <= ch)
}

// ComputeRequiredPayload is item weight plus mechanics and tools.
// Missing extras contribute nothing.
func ComputeRequiredPayload(item CargoItem, extras MissionExtras) Measure {
	return item.Weight.Add(Known(extrasWeight(extras)))
}

// ComputeAvailablePayload is max payload plus the weight of removed seats.
// An unknown seat weight with seats removed makes the result unknown.
func ComputeAvailablePayload(aircraft AircraftSpec, seats SeatRemoval) Measure {
	return defaultEvaluator.AvailablePayload(aircraft, seats)
}

// Evaluate runs every check for a single item.
func Evaluate(aircraft AircraftSpec, item CargoItem, extras MissionExtras, seats SeatRemoval) Result {
	return defaultEvaluator.Evaluate(aircraft, item, extras, seats)
}

// EvaluateManifest runs every check for several items flown together.
func EvaluateManifest(aircraft AircraftSpec, items []CargoItem, extras MissionExtras, seats SeatRemoval) ManifestResult {
	return defaultEvaluator.EvaluateManifest(aircraft, items, extras, seats)
}

// AvailablePayload applies the evaluator's seat weight policy.
func (e Evaluator) AvailablePayload(aircraft AircraftSpec, seats SeatRemoval) Measure {
	if !aircraft.MaxPayload.IsKnown() {
		return Unknown()
	}
	if seats.SeatsRemoved <= 0 {
		return aircraft.MaxPayload
	}
	seatWeight := aircraft.SeatWeight
	if !seatWeight.IsKnown() && e.SeatWeight == SeatWeightAsZero {
		seatWeight = Known(0)
	}
	return aircraft.MaxPayload.Add(seatWeight.Scale(float64(seats.SeatsRemoved)))
}

// Evaluate runs every check for a single item.
func (e Evaluator) Evaluate(aircraft AircraftSpec, item CargoItem, extras MissionExtras, seats SeatRemoval) Result {
	r := Result{
		FitsDoor:         EvaluateDoorFit(item, aircraft),
		FitsCabin:        EvaluateCabinFit(item, aircraft),
		RequiredPayload:  ComputeRequiredPayload(item, extras),
		AvailablePayload: e.AvailablePayload(aircraft, seats),
	}
	r.PayloadOK = r.RequiredPayload.AtMost(r.AvailablePayload)

	r.Notes = append(r.Notes, itemNotes(item, aircraft, r.FitsDoor, r.FitsCabin)...)
	r.Notes = append(r.Notes, e.payloadNotes(aircraft, seats, r.RequiredPayload, []CargoItem{item})...)
	return r
}

// EvaluateManifest checks each item against door and cabin and the summed
// weight of all items plus extras against available payload.
func (e Evaluator) EvaluateManifest(aircraft AircraftSpec, items []CargoItem, extras MissionExtras, seats SeatRemoval) ManifestResult {
	m := ManifestResult{
		Items:            make([]ItemResult, 0, len(items)),
		AvailablePayload: e.AvailablePayload(aircraft, seats),
	}

	required := Known(extrasWeight(extras))
	for _, item := range items {
		ir := ItemResult{
			Item:      item,
			FitsDoor:  EvaluateDoorFit(item, aircraft),
			FitsCabin: EvaluateCabinFit(item, aircraft),
		}
		m.Items = append(m.Items, ir)
		m.Notes = append(m.Notes, itemNotes(item, aircraft, ir.FitsDoor, ir.FitsCabin)...)
		required = required.Add(item.Weight)
	}
	m.RequiredPayload = required
	m.PayloadOK = m.RequiredPayload.AtMost(m.AvailablePayload)
	m.Notes = append(m.Notes, e.payloadNotes(aircraft, seats, required, items)...)
	return m
}

func extrasWeight(extras MissionExtras) float64 {
	perMechanic := extras.WeightPerMechanic.Or(DefaultMechanicWeight)
	return float64(extras.MechanicCount)*perMechanic + extras.ToolWeight
}

func itemNotes(item CargoItem, aircraft AircraftSpec, door, cabin Verdict) []string {
	var notes []string
	label := item.Name
	if label == "" {
		label = "cargo"
	}
	if !door.Known() {
		switch {
		case !aircraft.DoorWidth.IsKnown() || !aircraft.DoorHeight.IsKnown():
			notes = append(notes, fmt.Sprintf("%s: door dimensions unknown for %s", label, aircraftLabel(aircraft)))
		default:
			notes = append(notes, fmt.Sprintf("%s: length or width unknown, door fit cannot be checked", label))
		}
	}
	if !cabin.Known() {
		switch {
		case !aircraft.CabinLength.IsKnown() || !aircraft.CabinWidth.IsKnown() || !aircraft.CabinHeight.IsKnown():
			notes = append(notes, fmt.Sprintf("%s: cabin dimensions unknown for %s", label, aircraftLabel(aircraft)))
		default:
			notes = append(notes, fmt.Sprintf("%s: dimensions unknown, cabin fit cannot be checked", label))
		}
	}
	return notes
}

func (e Evaluator) payloadNotes(aircraft AircraftSpec, seats SeatRemoval, required Measure, items []CargoItem) []string {
	var notes []string
	if !required.IsKnown() {
		for _, item := range items {
			if !item.Weight.IsKnown() {
				notes = append(notes, fmt.Sprintf("weight unknown for %q", item.Name))
			}
		}
	}
	if !aircraft.MaxPayload.IsKnown() {
		notes = append(notes, fmt.Sprintf("max payload unknown for %s", aircraftLabel(aircraft)))
	} else if seats.SeatsRemoved > 0 && !aircraft.SeatWeight.IsKnown() {
		if e.SeatWeight == SeatWeightAsZero {
			notes = append(notes, fmt.Sprintf("seat weight unknown for %s, removed seats counted as 0 lbs", aircraftLabel(aircraft)))
		} else {
			notes = append(notes, fmt.Sprintf("seat weight unknown for %s, cannot credit %d removed seats", aircraftLabel(aircraft), seats.SeatsRemoved))
		}
	}
	return notes
}

func aircraftLabel(a AircraftSpec) string {
	if a.Name == "" {
		return "aircraft"
	}
	return a.Name
}
