package diagram

import (
	"errors"
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/onflyair/cargofit/internal/feasibility"
)

// ErrChartUnavailable is returned when the aircraft data cannot support a
// payload margin chart.
var ErrChartUnavailable = errors.New("payload chart unavailable")

// PayloadMarginChart plots available payload against the number of seats
// removed (0..removable), with the required payload as a flat second line.
func PayloadMarginChart(aircraft feasibility.AircraftSpec, required feasibility.Measure, ev feasibility.Evaluator) (string, error) {
	seats, ok := aircraft.RemovableSeatCount.Value()
	if !ok || seats < 1 {
		return "", fmt.Errorf("%w: removable seat count unknown or zero for %s", ErrChartUnavailable, aircraft.Name)
	}
	req, ok := required.Value()
	if !ok {
		return "", fmt.Errorf("%w: required payload unknown", ErrChartUnavailable)
	}

	n := int(seats)
	available := make([]float64, 0, n+1)
	requiredLine := make([]float64, 0, n+1)
	firstOK := -1
	for i := 0; i <= n; i++ {
		avail, ok := ev.AvailablePayload(aircraft, feasibility.SeatRemoval{SeatsRemoved: i}).Value()
		if !ok {
			return "", fmt.Errorf("%w: available payload unknown for %s", ErrChartUnavailable, aircraft.Name)
		}
		available = append(available, avail)
		requiredLine = append(requiredLine, req)
		if firstOK < 0 && req <= avail {
			firstOK = i
		}
	}

	graph := asciigraph.PlotMany(
		[][]float64{available, requiredLine},
		asciigraph.Height(10),
		asciigraph.Width(48),
		asciigraph.Precision(0),
		asciigraph.Caption(fmt.Sprintf("rising: available lbs, flat: required lbs (0 to %d seats removed)", n)),
	)

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString("  PAYLOAD MARGIN BY SEATS REMOVED\n")
	sb.WriteString("  ───────────────────────────────\n\n")
	sb.WriteString(graph)
	sb.WriteString("\n\n")
	switch {
	case firstOK == 0:
		sb.WriteString("  Payload fits with all seats installed.\n")
	case firstOK > 0:
		sb.WriteString(fmt.Sprintf("  Payload fits once %d seat(s) are removed.\n", firstOK))
	default:
		sb.WriteString(fmt.Sprintf("  Payload exceeds capacity even with all %d seats removed.\n", n))
	}
	return sb.String(), nil
}
