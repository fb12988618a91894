package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/onflyair/cargofit/internal/diagram"
	"github.com/onflyair/cargofit/internal/feasibility"
)

const (
	rule    = "═══════════════════════════════════════════════════════════════"
	subrule = "───────────────────────────────────────────────────────────────"
)

// Mission is everything the user chose besides the cargo itself.
type Mission struct {
	Aircraft feasibility.AircraftSpec
	Extras   feasibility.MissionExtras
	Seats    feasibility.SeatRemoval
	Rotated  bool
}

// Renderer writes human readable reports.
type Renderer struct {
	w      io.Writer
	styles Styles
}

// New creates a renderer. Color should come from ColorEnabled.
func New(w io.Writer, color bool) *Renderer {
	styles := PlainStyles()
	if color {
		styles = DefaultStyles()
	}
	return &Renderer{w: w, styles: styles}
}

func (r *Renderer) println(a ...any) {
	fmt.Fprintln(r.w, a...)
}

func (r *Renderer) section(title string) {
	r.println(r.styles.Header.Render(title))
	r.println(subrule)
}

func (r *Renderer) tab() *tabwriter.Writer {
	return tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)
}

// Manifest prints the full feasibility report for a mission.
func (r *Renderer) Manifest(m Mission, res feasibility.ManifestResult) {
	r.println()
	r.println(rule)
	r.println("     CARGO FIT CHECK - " + strings.ToUpper(aircraftName(m.Aircraft)))
	r.println(rule)
	r.println()

	r.section("AIRCRAFT:")
	r.aircraftRows(m.Aircraft)
	r.println()

	r.section("CARGO:")
	w := r.tab()
	fmt.Fprintf(w, "  Part\tL × W × H (in)\tWeight (lbs)\n")
	fmt.Fprintf(w, "  ────\t──────────────\t────────────\n")
	for _, it := range res.Items {
		fmt.Fprintf(w, "  %s\t%s × %s × %s\t%s\n", it.Item.Name, it.Item.Length, it.Item.Width, it.Item.Height, it.Item.Weight)
	}
	w.Flush()
	if m.Rotated {
		r.println("  (length and width swapped by request)")
	}
	r.println()

	r.section("PAYLOAD:")
	w = r.tab()
	perMechanic := m.Extras.WeightPerMechanic.Or(feasibility.DefaultMechanicWeight)
	fmt.Fprintf(w, "  Mechanics:\t%d × %.0f lbs\n", m.Extras.MechanicCount, perMechanic)
	fmt.Fprintf(w, "  Tools:\t%.1f lbs\n", m.Extras.ToolWeight)
	fmt.Fprintf(w, "  Seats removed:\t%d\n", m.Seats.SeatsRemoved)
	fmt.Fprintf(w, "  Total Required Payload:\t%s lbs\n", res.RequiredPayload)
	fmt.Fprintf(w, "  Available Payload:\t%s lbs\n", res.AvailablePayload)
	w.Flush()
	r.println("  " + r.payloadLine(res.PayloadOK))
	r.println()

	r.section("DOOR & CABIN FIT:")
	for _, it := range res.Items {
		r.println("  " + it.Item.Name)
		r.println("    " + r.doorLine(it.FitsDoor))
		r.println("    " + r.cabinLine(it.FitsCabin))
	}
	r.println()

	if len(res.Notes) > 0 {
		r.section("NOTES:")
		for _, n := range res.Notes {
			r.println("  " + r.styles.Dim.Render("• "+n))
		}
		r.println()
	}

	fmt.Fprint(r.w, diagram.DrawSummaryBox("VERDICT", []string{r.overallLine(res.Feasible())}))
	r.println()
}

// Aircraft prints one aircraft's reference data.
func (r *Renderer) Aircraft(a feasibility.AircraftSpec) {
	r.println()
	r.section(strings.ToUpper(aircraftName(a)))
	r.aircraftRows(a)
	r.println()
}

func (r *Renderer) aircraftRows(a feasibility.AircraftSpec) {
	w := r.tab()
	fmt.Fprintf(w, "  Door:\t%s\" W × %s\" H\n", a.DoorWidth, a.DoorHeight)
	fmt.Fprintf(w, "  Cabin:\t%s\" L × %s\" W × %s\" H\n", a.CabinLength, a.CabinWidth, a.CabinHeight)
	fmt.Fprintf(w, "  Max Payload:\t%s lbs\n", a.MaxPayload)
	fmt.Fprintf(w, "  Seat Weight:\t%s lbs\n", a.SeatWeight)
	fmt.Fprintf(w, "  Removable Seats:\t%s\n", countString(a.RemovableSeatCount))
	w.Flush()
}

// AircraftList prints the fleet as a table.
func (r *Renderer) AircraftList(fleet []feasibility.AircraftSpec) {
	w := r.tab()
	fmt.Fprintf(w, "  Aircraft\tDoor W×H (in)\tCabin L×W×H (in)\tMax Payload (lbs)\n")
	fmt.Fprintf(w, "  ────────\t─────────────\t────────────────\t─────────────────\n")
	for _, a := range fleet {
		fmt.Fprintf(w, "  %s\t%s × %s\t%s × %s × %s\t%s\n",
			a.Name, a.DoorWidth, a.DoorHeight, a.CabinLength, a.CabinWidth, a.CabinHeight, a.MaxPayload)
	}
	w.Flush()
}

// Parts prints a titled table of cargo templates.
func (r *Renderer) Parts(title string, items []feasibility.CargoItem) {
	r.println()
	r.section(title)
	if len(items) == 0 {
		r.println("  (none)")
		r.println()
		return
	}
	w := r.tab()
	fmt.Fprintf(w, "  Part\tLength (in)\tWidth (in)\tHeight (in)\tWeight (lbs)\n")
	fmt.Fprintf(w, "  ────\t───────────\t──────────\t───────────\t────────────\n")
	for _, it := range items {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%s\n", it.Name, it.Length, it.Width, it.Height, it.Weight)
	}
	w.Flush()
	r.println()
}

func (r *Renderer) doorLine(v feasibility.Verdict) string {
	switch v {
	case feasibility.VerdictYes:
		return r.styles.Pass.Render("✓ Fits through door")
	case feasibility.VerdictNo:
		return r.styles.Fail.Render("✗ Too big for door")
	default:
		return r.styles.Unknown.Render("? Door fit unknown")
	}
}

func (r *Renderer) cabinLine(v feasibility.Verdict) string {
	switch v {
	case feasibility.VerdictYes:
		return r.styles.Pass.Render("✓ Fits in cabin")
	case feasibility.VerdictNo:
		return r.styles.Fail.Render("✗ Too big for cabin")
	default:
		return r.styles.Unknown.Render("? Cabin fit unknown")
	}
}

func (r *Renderer) payloadLine(v feasibility.Verdict) string {
	switch v {
	case feasibility.VerdictYes:
		return r.styles.Pass.Render("✓ Payload check passed")
	case feasibility.VerdictNo:
		return r.styles.Fail.Render("✗ Over max payload")
	default:
		return r.styles.Unknown.Render("? Payload cannot be determined")
	}
}

func (r *Renderer) overallLine(v feasibility.Verdict) string {
	switch v {
	case feasibility.VerdictYes:
		return r.styles.Pass.Render("✓ FEASIBLE")
	case feasibility.VerdictNo:
		return r.styles.Fail.Render("✗ NOT FEASIBLE")
	default:
		return r.styles.Unknown.Render("? CANNOT DETERMINE (missing data)")
	}
}

// WriteCSV exports the manifest, one row per part, in the column layout of
// the parts sheet plus the aircraft it was checked against.
func WriteCSV(w io.Writer, aircraft string, items []feasibility.CargoItem) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Name", "Aircraft", "Length", "Width", "Height", "Weight"}); err != nil {
		return err
	}
	for _, it := range items {
		row := []string{
			it.Name,
			aircraft,
			csvNumber(it.Length),
			csvNumber(it.Width),
			csvNumber(it.Height),
			csvNumber(it.Weight),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvNumber(m feasibility.Measure) string {
	v, ok := m.Value()
	if !ok {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func countString(m feasibility.Measure) string {
	v, ok := m.Value()
	if !ok {
		return "unknown"
	}
	return strconv.FormatFloat(v, 'f', 0, 64)
}

func aircraftName(a feasibility.AircraftSpec) string {
	if a.Name == "" {
		return "custom aircraft"
	}
	return a.Name
}
