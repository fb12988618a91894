package diagram

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflyair/cargofit/internal/feasibility"
)

func TestLayoutCabin_RowsAndOverflow(t *testing.T) {
	items := []feasibility.CargoItem{
		feasibility.NewCargoItem("A", 40, 20, 10, 1),
		feasibility.NewCargoItem("B", 40, 30, 10, 1),
		feasibility.NewCargoItem("C", 30, 10, 10, 1), // starts row 2
		feasibility.NewCargoItem("D", 60, 30, 10, 1), // would pass cabin width
	}

	layout := LayoutCabin(100, 60, DefaultSpacing, items)

	require.Len(t, layout.Placements, 3)
	assert.Equal(t, Placement{Name: "A", X: 0, Y: 0, Length: 40, Width: 20}, layout.Placements[0])
	assert.Equal(t, Placement{Name: "B", X: 45, Y: 0, Length: 40, Width: 30}, layout.Placements[1])
	assert.Equal(t, Placement{Name: "C", X: 0, Y: 35, Length: 30, Width: 10}, layout.Placements[2])
	assert.True(t, layout.Overflow)
	assert.Equal(t, []string{"D"}, layout.Unplaced)
}

func TestLayoutCabin_UnknownAndTooLong(t *testing.T) {
	items := []feasibility.CargoItem{
		{Name: "mystery"},
		feasibility.NewCargoItem("spar", 300, 10, 10, 1),
		feasibility.NewCargoItem("box", 10, 10, 10, 1),
	}

	layout := LayoutCabin(150, 60, DefaultSpacing, items)

	require.Len(t, layout.Placements, 1)
	assert.Equal(t, "box", layout.Placements[0].Name)
	assert.Equal(t, []string{"mystery", "spar"}, layout.Unplaced)
}

func TestLayoutCabin_AllFit(t *testing.T) {
	layout := LayoutCabin(150, 60, DefaultSpacing, []feasibility.CargoItem{
		feasibility.NewCargoItem("only", 150, 60, 10, 1),
	})
	assert.False(t, layout.Overflow)
	assert.Len(t, layout.Placements, 1)
}

func TestDrawDoorDiagram(t *testing.T) {
	fits := DrawDoorDiagram(DoorDiagramData{Name: "Starter", DoorWidth: 60, DoorHeight: 50, Length: 55, Width: 45})
	assert.Contains(t, fits, "STARTER vs DOOR")
	assert.Contains(t, fits, "▓")
	assert.Contains(t, fits, "clears as shown")
	assert.Contains(t, fits, "┌")
	assert.Contains(t, fits, "Door 60.0 W × 50.0 H in")

	blocked := DrawDoorDiagram(DoorDiagramData{DoorWidth: 60, DoorHeight: 50, Length: 45, Width: 65})
	assert.Contains(t, blocked, "CARGO vs DOOR")
	assert.Contains(t, blocked, "╳")
	assert.Contains(t, blocked, "blocked as shown")
}

func TestDoorDiagramData_Rotated(t *testing.T) {
	d := DoorDiagramData{DoorWidth: 60, DoorHeight: 50, Length: 45, Width: 58}
	assert.False(t, d.FitsAsPresented())
	assert.True(t, d.Rotated().FitsAsPresented())
}

func TestDrawCabinLayout(t *testing.T) {
	layout := LayoutCabin(100, 60, DefaultSpacing, []feasibility.CargoItem{
		feasibility.NewCargoItem("Engine", 60, 25, 25, 330),
		feasibility.NewCargoItem("Wheel", 20, 20, 10, 40),
		feasibility.NewCargoItem("Wing", 90, 50, 5, 200),
	})

	out := DrawCabinLayout(layout)
	assert.Contains(t, out, "A = Engine")
	assert.Contains(t, out, "B = Wheel")
	assert.Contains(t, out, "Not all parts fit in cabin!")
	assert.Contains(t, out, "- Wing")
	assert.Contains(t, out, "Cabin 100.0 L × 60.0 W in")
}

func TestPayloadMarginChart(t *testing.T) {
	ac := feasibility.AircraftSpec{
		Name:               "Caravan",
		MaxPayload:         feasibility.Known(500),
		SeatWeight:         feasibility.Known(30),
		RemovableSeatCount: feasibility.Known(4),
	}

	out, err := PayloadMarginChart(ac, feasibility.Known(560), feasibility.Evaluator{})
	require.NoError(t, err)
	assert.Contains(t, out, "PAYLOAD MARGIN BY SEATS REMOVED")
	assert.Contains(t, out, "fits once 2 seat(s) are removed")

	out, err = PayloadMarginChart(ac, feasibility.Known(400), feasibility.Evaluator{})
	require.NoError(t, err)
	assert.Contains(t, out, "fits with all seats installed")

	out, err = PayloadMarginChart(ac, feasibility.Known(5000), feasibility.Evaluator{})
	require.NoError(t, err)
	assert.Contains(t, out, "even with all 4 seats removed")
}

func TestPayloadMarginChart_Unavailable(t *testing.T) {
	ac := feasibility.AircraftSpec{Name: "X", MaxPayload: feasibility.Known(500), RemovableSeatCount: feasibility.Known(2)}

	_, err := PayloadMarginChart(ac, feasibility.Known(100), feasibility.Evaluator{})
	assert.True(t, errors.Is(err, ErrChartUnavailable), "unknown seat weight")

	out, err := PayloadMarginChart(ac, feasibility.Known(100), feasibility.Evaluator{SeatWeight: feasibility.SeatWeightAsZero})
	require.NoError(t, err)
	assert.NotEmpty(t, out)

	_, err = PayloadMarginChart(feasibility.AircraftSpec{}, feasibility.Known(1), feasibility.Evaluator{})
	assert.ErrorIs(t, err, ErrChartUnavailable)

	_, err = PayloadMarginChart(ac, feasibility.Unknown(), feasibility.Evaluator{SeatWeight: feasibility.SeatWeightAsZero})
	assert.ErrorIs(t, err, ErrChartUnavailable)
}

func TestDrawSummaryBox(t *testing.T) {
	out := DrawSummaryBox("VERDICT", []string{"Door: ✓", "Cabin fit check: ✗"})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 6)

	width := len([]rune(lines[0]))
	for _, l := range lines {
		assert.Equal(t, width, len([]rune(l)), "box edges line up: %q", l)
	}
}

func TestExportImages(t *testing.T) {
	dir := t.TempDir()

	doorPath := filepath.Join(dir, "out", "door.png")
	written, err := ExportDoorDiagram(DoorDiagramData{Name: "APU", DoorWidth: 49, DoorHeight: 50, Length: 38, Width: 24}, doorPath)
	require.NoError(t, err)
	assert.Equal(t, doorPath, written)
	info, err := os.Stat(doorPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	layout := LayoutCabin(154, 64, DefaultSpacing, []feasibility.CargoItem{
		feasibility.NewCargoItem("APU", 38, 24, 22, 120),
		feasibility.NewCargoItem("Strut", 48, 14, 12, 85),
	})
	svgPath := filepath.Join(dir, "layout.svg")
	written, err = ExportCabinLayout(layout, svgPath)
	require.NoError(t, err)
	assert.Equal(t, svgPath, written)
	_, err = os.Stat(svgPath)
	require.NoError(t, err)
}

func TestExportImages_ReportsWrittenPath(t *testing.T) {
	dir := t.TempDir()
	layout := LayoutCabin(154, 64, DefaultSpacing, []feasibility.CargoItem{
		feasibility.NewCargoItem("APU", 38, 24, 22, 120),
	})

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no extension", "layout", "layout.png"},
		{"unsupported extension", "layout.bmp", "layout.bmp.png"},
		{"upper case extension", "LAYOUT.PNG", "LAYOUT.PNG"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			written, err := ExportCabinLayout(layout, filepath.Join(dir, tt.in))
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, tt.want), written)
			_, err = os.Stat(written)
			require.NoError(t, err)
		})
	}
}
