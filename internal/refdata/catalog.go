package refdata

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/onflyair/cargofit/internal/feasibility"
)

var (
	ErrUnknownAircraft = errors.New("unknown aircraft")
	ErrUnknownPart     = errors.New("unknown part")
)

// Column headers as they appear in the fleet and parts sheets.
var (
	colAircraft       = []string{"Aircraft"}
	colDoorWidth      = []string{"Door Width (in)"}
	colDoorHeight     = []string{"Door Height (in)"}
	colCabinLength    = []string{"Cabin Length (in)"}
	colCabinWidth     = []string{"Cabin Width (in)"}
	colCabinHeight    = []string{"Cabin Height (in)"}
	colMaxPayload     = []string{"Max Payload (lbs)", "Max Payload (lbs.)"}
	colSeatWeight     = []string{"Seat Weight (lbs)", "Seat Weight (lbs.)"}
	colRemovableSeats = []string{"Removable Seats", "Removable Seat Count"}

	colPart   = []string{"Part", "Name"}
	colLength = []string{"Length (in)"}
	colWidth  = []string{"Width (in)"}
	colHeight = []string{"Height (in)"}
	colWeight = []string{"Weight (lbs.)", "Weight (lbs)"}
)

// Catalog is the reference data available for one session: the fleet and
// the historical parts list. It is read-only once built.
type Catalog struct {
	aircraft []feasibility.AircraftSpec
	parts    []feasibility.CargoItem
}

// NewCatalog builds a catalog. Records with blank names are dropped and the
// first record wins for duplicate names.
func NewCatalog(aircraft []feasibility.AircraftSpec, parts []feasibility.CargoItem) *Catalog {
	c := &Catalog{}
	seen := make(map[string]bool)
	for _, a := range aircraft {
		key := strings.ToLower(strings.TrimSpace(a.Name))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		c.aircraft = append(c.aircraft, a)
	}

	seen = make(map[string]bool)
	for _, p := range parts {
		key := strings.ToLower(strings.TrimSpace(p.Name))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		c.parts = append(c.parts, p)
	}
	sort.SliceStable(c.parts, func(i, j int) bool {
		return c.parts[i].Name < c.parts[j].Name
	})
	return c
}

// AircraftList returns the fleet in sheet order.
func (c *Catalog) AircraftList() []feasibility.AircraftSpec {
	return append([]feasibility.AircraftSpec(nil), c.aircraft...)
}

// Aircraft finds an aircraft by name, case-insensitively.
func (c *Catalog) Aircraft(name string) (feasibility.AircraftSpec, error) {
	name = strings.TrimSpace(name)
	for _, a := range c.aircraft {
		if strings.EqualFold(a.Name, name) {
			return a, nil
		}
	}
	return feasibility.AircraftSpec{}, fmt.Errorf("%w: %q", ErrUnknownAircraft, name)
}

// Parts returns the parts list sorted by name.
func (c *Catalog) Parts() []feasibility.CargoItem {
	return append([]feasibility.CargoItem(nil), c.parts...)
}

// Part finds a part template by name, case-insensitively.
func (c *Catalog) Part(name string) (feasibility.CargoItem, error) {
	name = strings.TrimSpace(name)
	for _, p := range c.parts {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return feasibility.CargoItem{}, fmt.Errorf("%w: %q", ErrUnknownPart, name)
}

// aircraftFromTable maps fleet sheet rows. Only the name column is required;
// any other missing column leaves that field unknown on every aircraft.
func aircraftFromTable(t *table) ([]feasibility.AircraftSpec, error) {
	nameCol, err := t.requireColumn(colAircraft...)
	if err != nil {
		return nil, err
	}
	idx := func(aliases []string) int {
		i, _ := t.column(aliases...)
		return i
	}
	var (
		dw = idx(colDoorWidth)
		dh = idx(colDoorHeight)
		cl = idx(colCabinLength)
		cw = idx(colCabinWidth)
		ch = idx(colCabinHeight)
		mp = idx(colMaxPayload)
		sw = idx(colSeatWeight)
		rs = idx(colRemovableSeats)
	)

	var out []feasibility.AircraftSpec
	for _, row := range t.rows {
		name := cell(row, nameCol)
		if name == "" {
			continue
		}
		out = append(out, feasibility.AircraftSpec{
			Name:               name,
			DoorWidth:          ParseMeasure(cell(row, dw)),
			DoorHeight:         ParseMeasure(cell(row, dh)),
			CabinLength:        ParseMeasure(cell(row, cl)),
			CabinWidth:         ParseMeasure(cell(row, cw)),
			CabinHeight:        ParseMeasure(cell(row, ch)),
			MaxPayload:         ParseMeasure(cell(row, mp)),
			SeatWeight:         ParseMeasure(cell(row, sw)),
			RemovableSeatCount: ParseCount(cell(row, rs)),
		})
	}
	return out, nil
}

// partsFromTable maps parts sheet rows.
func partsFromTable(t *table) ([]feasibility.CargoItem, error) {
	nameCol, err := t.requireColumn(colPart...)
	if err != nil {
		return nil, err
	}
	l, _ := t.column(colLength...)
	w, _ := t.column(colWidth...)
	h, _ := t.column(colHeight...)
	wt, _ := t.column(colWeight...)

	var out []feasibility.CargoItem
	for _, row := range t.rows {
		name := cell(row, nameCol)
		if name == "" {
			continue
		}
		out = append(out, feasibility.CargoItem{
			Name:   name,
			Length: ParseMeasure(cell(row, l)),
			Width:  ParseMeasure(cell(row, w)),
			Height: ParseMeasure(cell(row, h)),
			Weight: ParseMeasure(cell(row, wt)),
		})
	}
	return out, nil
}
