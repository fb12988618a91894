package report

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflyair/cargofit/internal/feasibility"
)

func caravan() feasibility.AircraftSpec {
	return feasibility.AircraftSpec{
		Name:               "Cessna 208 Caravan",
		DoorWidth:          feasibility.Known(49),
		DoorHeight:         feasibility.Known(50),
		CabinLength:        feasibility.Known(154),
		CabinWidth:         feasibility.Known(64),
		CabinHeight:        feasibility.Known(54),
		MaxPayload:         feasibility.Known(2500),
		SeatWeight:         feasibility.Known(30),
		RemovableSeatCount: feasibility.Known(4),
	}
}

func TestRenderer_ManifestFeasible(t *testing.T) {
	var buf bytes.Buffer
	ac := caravan()
	items := []feasibility.CargoItem{feasibility.NewCargoItem("APU", 38, 24, 22, 120)}
	m := Mission{Aircraft: ac, Extras: feasibility.MissionExtras{MechanicCount: 1}, Seats: feasibility.SeatRemoval{SeatsRemoved: 1}}

	New(&buf, false).Manifest(m, feasibility.EvaluateManifest(ac, items, m.Extras, m.Seats))

	out := buf.String()
	assert.Contains(t, out, "CARGO FIT CHECK - CESSNA 208 CARAVAN")
	assert.Contains(t, out, "Total Required Payload:  300.0 lbs")
	assert.Contains(t, out, "Available Payload:       2530.0 lbs")
	assert.Contains(t, out, "✓ Payload check passed")
	assert.Contains(t, out, "✓ Fits through door")
	assert.Contains(t, out, "✓ Fits in cabin")
	assert.Contains(t, out, "✓ FEASIBLE")
	assert.NotContains(t, out, "NOTES:")
	assert.NotContains(t, out, "\x1b[", "plain output has no escape codes")
}

func TestRenderer_ManifestUnknown(t *testing.T) {
	var buf bytes.Buffer
	ac := feasibility.AircraftSpec{Name: "Mystery Jet", DoorWidth: feasibility.Known(30)}
	items := []feasibility.CargoItem{feasibility.NewCargoItem("Box", 10, 10, 10, 10)}
	m := Mission{Aircraft: ac, Rotated: true}

	New(&buf, false).Manifest(m, feasibility.EvaluateManifest(ac, items, m.Extras, m.Seats))

	out := buf.String()
	assert.Contains(t, out, "? Door fit unknown")
	assert.Contains(t, out, "? Cabin fit unknown")
	assert.Contains(t, out, "? Payload cannot be determined")
	assert.Contains(t, out, "Available Payload:       unknown lbs")
	assert.Contains(t, out, "NOTES:")
	assert.Contains(t, out, "max payload unknown for Mystery Jet")
	assert.Contains(t, out, "length and width swapped")
	assert.Contains(t, out, "CANNOT DETERMINE")
}

func TestRenderer_ManifestBlocked(t *testing.T) {
	var buf bytes.Buffer
	ac := caravan()
	items := []feasibility.CargoItem{feasibility.NewCargoItem("Wing", 200, 60, 10, 3000)}

	New(&buf, false).Manifest(Mission{Aircraft: ac}, feasibility.EvaluateManifest(ac, items, feasibility.MissionExtras{}, feasibility.SeatRemoval{}))

	out := buf.String()
	assert.Contains(t, out, "✗ Too big for door")
	assert.Contains(t, out, "✗ Too big for cabin")
	assert.Contains(t, out, "✗ Over max payload")
	assert.Contains(t, out, "✗ NOT FEASIBLE")
}

func TestRenderer_AircraftAndParts(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, false)

	r.Aircraft(caravan())
	r.AircraftList([]feasibility.AircraftSpec{caravan(), {Name: "Unlisted"}})
	r.Parts("SAVED PARTS:", nil)
	r.Parts("CATALOG PARTS:", []feasibility.CargoItem{{Name: "Strut", Length: feasibility.Known(48)}})

	out := buf.String()
	assert.Contains(t, out, "Door:"+strings.Repeat(" ", 13)+"49.0\" W × 50.0\" H")
	assert.Contains(t, out, "Removable Seats:  4")
	assert.Contains(t, out, "Unlisted")
	assert.Contains(t, out, "(none)")
	assert.Contains(t, out, "Strut")
	assert.Contains(t, out, "unknown")
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	items := []feasibility.CargoItem{
		feasibility.NewCargoItem("APU", 38, 24, 22.5, 120),
		{Name: "Crate, large", Weight: feasibility.Known(15)},
	}

	require.NoError(t, WriteCSV(&buf, "Cessna 208 Caravan", items))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Name,Aircraft,Length,Width,Height,Weight", lines[0])
	assert.Equal(t, "APU,Cessna 208 Caravan,38,24,22.5,120", lines[1])
	assert.Equal(t, `"Crate, large",Cessna 208 Caravan,,,,15`, lines[2])
}

func TestColorEnabled(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, ColorEnabled(&buf))

	t.Setenv("NO_COLOR", "1")
	assert.False(t, ColorEnabled(os.Stdout))
}
