package feasibility

import "fmt"

// AircraftSpec describes the cargo-relevant limits of one aircraft type.
// Dimensions are in inches, weights in pounds. Any field may be unknown.
type AircraftSpec struct {
	Name string

	// Door opening
	DoorWidth  Measure
	DoorHeight Measure

	// Usable cabin volume
	CabinLength Measure
	CabinWidth  Measure
	CabinHeight Measure

	// Payload
	MaxPayload         Measure
	SeatWeight         Measure // weight of one removable seat
	RemovableSeatCount Measure // whole number of seats that may be taken out
}

// CargoItem is one part to be carried. Length and width may be swapped for
// the door check; the cabin check uses the orientation as given.
type CargoItem struct {
	Name   string
	Length Measure
	Width  Measure
	Height Measure
	Weight Measure
}

// NewCargoItem builds an item from fully known user input.
func NewCargoItem(name string, length, width, height, weight float64) CargoItem {
	return CargoItem{
		Name:   name,
		Length: Known(length),
		Width:  Known(width),
		Height: Known(height),
		Weight: Known(weight),
	}
}

// Rotated returns a copy of the item turned 90° in plan (length and width swapped).
func (c CargoItem) Rotated() CargoItem {
	c.Length, c.Width = c.Width, c.Length
	return c
}

// MissionExtras is payload carried alongside the cargo.
type MissionExtras struct {
	MechanicCount     int
	WeightPerMechanic Measure // unknown means DefaultMechanicWeight
	ToolWeight        float64
}

// SeatRemoval is the number of seats taken out to free payload.
type SeatRemoval struct {
	SeatsRemoved int
}

// Result is the verdict for a single cargo item on an aircraft.
type Result struct {
	FitsDoor  Verdict
	FitsCabin Verdict

	RequiredPayload  Measure
	AvailablePayload Measure
	PayloadOK        Verdict

	// Notes explain every unknown verdict.
	Notes []string
}

// Feasible is the overall verdict: door, cabin and payload all pass.
func (r Result) Feasible() Verdict {
	return And(r.FitsDoor, r.FitsCabin, r.PayloadOK)
}

// ItemResult is the door and cabin verdict for one item of a manifest.
type ItemResult struct {
	Item      CargoItem
	FitsDoor  Verdict
	FitsCabin Verdict
}

// ManifestResult is the verdict for several items flown together.
type ManifestResult struct {
	Items []ItemResult

	RequiredPayload  Measure
	AvailablePayload Measure
	PayloadOK        Verdict

	Notes []string
}

// Feasible is yes only if every item fits and the combined payload passes.
func (m ManifestResult) Feasible() Verdict {
	vs := make([]Verdict, 0, 2*len(m.Items)+1)
	for _, it := range m.Items {
		vs = append(vs, it.FitsDoor, it.FitsCabin)
	}
	vs = append(vs, m.PayloadOK)
	return And(vs...)
}

// Validate rejects negative dimensions and weights.
func (c CargoItem) Validate() error {
	fields := []struct {
		name string
		m    Measure
	}{
		{"length", c.Length},
		{"width", c.Width},
		{"height", c.Height},
		{"weight", c.Weight},
	}
	for _, f := range fields {
		if v, ok := f.m.Value(); ok && v < 0 {
			return &ValidationError{msg: fmt.Sprintf("%s must not be negative (got %.2f)", f.name, v)}
		}
	}
	return nil
}

// Validate rejects negative mechanic counts and weights.
func (e MissionExtras) Validate() error {
	if e.MechanicCount < 0 {
		return &ValidationError{msg: fmt.Sprintf("mechanic count must not be negative (got %d)", e.MechanicCount)}
	}
	if v, ok := e.WeightPerMechanic.Value(); ok && v < 0 {
		return &ValidationError{msg: fmt.Sprintf("weight per mechanic must not be negative (got %.2f)", v)}
	}
	if e.ToolWeight < 0 {
		return &ValidationError{msg: fmt.Sprintf("tool weight must not be negative (got %.2f)", e.ToolWeight)}
	}
	return nil
}

// Validate checks the seat count against what the aircraft allows.
// An unknown removable seat count does not limit removal.
func (s SeatRemoval) Validate(aircraft AircraftSpec) error {
	if s.SeatsRemoved < 0 {
		return &ValidationError{msg: fmt.Sprintf("seats removed must not be negative (got %d)", s.SeatsRemoved)}
	}
	if limit, ok := aircraft.RemovableSeatCount.Value(); ok && float64(s.SeatsRemoved) > limit {
		return &ValidationError{msg: fmt.Sprintf("cannot remove %d seats: %s has %.0f removable", s.SeatsRemoved, aircraftLabel(aircraft), limit)}
	}
	return nil
}

// ValidationError represents rejected user input
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}
