package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/onflyair/cargofit/internal/diagram"
	"github.com/onflyair/cargofit/internal/feasibility"
	"github.com/onflyair/cargofit/internal/refdata"
	"github.com/onflyair/cargofit/internal/report"
)

var (
	// Aircraft selection and manual overrides
	checkAircraft       string
	checkDoorWidth      float64
	checkDoorHeight     float64
	checkCabinLength    float64
	checkCabinWidth     float64
	checkCabinHeight    float64
	checkMaxPayload     float64
	checkSeatWeight     float64
	checkRemovableSeats int

	// Cargo
	checkParts  []string
	checkName   string
	checkLength float64
	checkWidth  float64
	checkHeight float64
	checkWeight float64
	checkRotate bool

	// Mission extras
	checkMechanics      int
	checkMechanicWeight float64
	checkTools          float64
	checkSeatsRemoved   int

	// Output
	checkDiagram      bool
	checkChart        bool
	checkOutput       string
	checkLayoutOutput string
	checkExportCSV    string
)

var aircraftOverrideFlags = []string{
	"door-width", "door-height", "cabin-length", "cabin-width", "cabin-height",
	"max-payload", "seat-weight", "removable-seats",
}

var manualItemFlags = []string{"name", "length", "width", "height", "weight"}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check whether cargo fits an aircraft",
	Long: `Check door fit, cabin fit and payload for one or more parts.

The aircraft comes from the fleet sheet (--aircraft), from manual
dimensions, or from both: manual values override the sheet. Cargo comes
from catalog or saved parts (--part, repeatable) and/or one manually
entered item, which needs all of --length, --width, --height and --weight.

The part may be turned to pass through the door, but must fit the cabin
as oriented (use --rotate to swap its length and width). Any value missing
from the sheets makes the affected check "unknown" instead of guessing.

Examples:
  # A catalog part in a fleet aircraft
  cargofit check --aircraft "Cessna 208 Caravan" --part APU

  # Two parts, two mechanics with 40 lbs of tools, two seats removed
  cargofit check -a "Pilatus PC-12" -p "PT6A-67P Engine" -p "Starter Generator" \
      --mechanics 2 --tools 40 --seats-removed 2 --diagram --chart

  # Fully manual
  cargofit check --door-width 49 --door-height 50 --cabin-length 154 \
      --cabin-width 64 --cabin-height 54 --max-payload 2500 \
      --name Crate --length 40 --width 30 --height 20 --weight 150`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	f := checkCmd.Flags()

	// Aircraft flags
	f.StringVarP(&checkAircraft, "aircraft", "a", "", "Aircraft name from the fleet sheet")
	f.Float64Var(&checkDoorWidth, "door-width", 0, "Door width (in)")
	f.Float64Var(&checkDoorHeight, "door-height", 0, "Door height (in)")
	f.Float64Var(&checkCabinLength, "cabin-length", 0, "Cabin length (in)")
	f.Float64Var(&checkCabinWidth, "cabin-width", 0, "Cabin width (in)")
	f.Float64Var(&checkCabinHeight, "cabin-height", 0, "Cabin height (in)")
	f.Float64Var(&checkMaxPayload, "max-payload", 0, "Max payload (lbs)")
	f.Float64Var(&checkSeatWeight, "seat-weight", 0, "Weight of one removable seat (lbs)")
	f.IntVar(&checkRemovableSeats, "removable-seats", 0, "Number of removable seats")

	// Cargo flags
	f.StringArrayVarP(&checkParts, "part", "p", nil, "Catalog or saved part name (repeatable)")
	f.StringVarP(&checkName, "name", "n", "", "Manual item name")
	f.Float64VarP(&checkLength, "length", "l", 0, "Manual item length (in)")
	f.Float64VarP(&checkWidth, "width", "w", 0, "Manual item width (in)")
	f.Float64Var(&checkHeight, "height", 0, "Manual item height (in)")
	f.Float64Var(&checkWeight, "weight", 0, "Manual item weight (lbs)")
	f.BoolVarP(&checkRotate, "rotate", "r", false, "Swap length and width of every item")

	// Mission flags
	f.IntVarP(&checkMechanics, "mechanics", "m", 0, "Number of mechanics on board")
	f.Float64Var(&checkMechanicWeight, "mechanic-weight", 0, "Weight per mechanic (lbs) [default from payload.mechanic_weight]")
	f.Float64Var(&checkTools, "tools", 0, "Tool weight (lbs)")
	f.IntVarP(&checkSeatsRemoved, "seats-removed", "s", 0, "Seats removed to free payload")

	// Output flags
	f.BoolVar(&checkDiagram, "diagram", false, "Print door and cabin layout diagrams")
	f.BoolVar(&checkChart, "chart", false, "Print payload margin by seats removed")
	f.StringVarP(&checkOutput, "output", "o", "", "Export the door diagram to an image (png, svg, pdf)")
	f.StringVar(&checkLayoutOutput, "layout-output", "", "Export the cabin layout to an image (png, svg, pdf)")
	f.StringVar(&checkExportCSV, "export-csv", "", "Export the cargo manifest to CSV")
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	flags := cmd.Flags()

	needCatalog := checkAircraft != "" || len(checkParts) > 0
	if checkAircraft == "" && !anyChanged(flags, aircraftOverrideFlags...) {
		return errors.New("no aircraft: use --aircraft or give door and cabin dimensions")
	}
	if len(checkParts) == 0 && !anyChanged(flags, manualItemFlags...) {
		return errors.New("no cargo: use --part or give --length, --width, --height and --weight")
	}

	var catalog *refdata.Catalog
	if needCatalog {
		var err error
		if catalog, err = loadCatalog(ctx); err != nil {
			return err
		}
	}

	// Aircraft
	var aircraft feasibility.AircraftSpec
	if checkAircraft != "" {
		var err error
		if aircraft, err = catalog.Aircraft(checkAircraft); err != nil {
			return err
		}
	}
	aircraft = applyAircraftOverrides(flags, aircraft)

	// Cargo
	var items []feasibility.CargoItem
	if len(checkParts) > 0 {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore(store)

		for _, name := range checkParts {
			item, err := resolvePart(ctx, store, catalog, name)
			if err != nil {
				return err
			}
			items = append(items, item)
		}
	}
	if anyChanged(flags, manualItemFlags...) {
		item, err := manualItem(flags)
		if err != nil {
			return err
		}
		items = append(items, item)
	}
	if checkRotate {
		for i := range items {
			items[i] = items[i].Rotated()
		}
	}

	// Mission
	mechanicWeight := cfg.Payload.MechanicWeight
	if flags.Changed("mechanic-weight") {
		mechanicWeight = checkMechanicWeight
	}
	extras := feasibility.MissionExtras{
		MechanicCount:     checkMechanics,
		WeightPerMechanic: feasibility.Known(mechanicWeight),
		ToolWeight:        checkTools,
	}
	seats := feasibility.SeatRemoval{SeatsRemoved: checkSeatsRemoved}

	if err := validateCheck(aircraft, items, extras, seats); err != nil {
		return err
	}

	ev := evaluator()
	res := ev.EvaluateManifest(aircraft, items, extras, seats)
	logger.Infow("manifest evaluated",
		"aircraft", aircraft.Name,
		"items", len(items),
		"required_payload", res.RequiredPayload.String(),
		"available_payload", res.AvailablePayload.String(),
		"feasible", res.Feasible().String())

	newRenderer(cmd).Manifest(report.Mission{
		Aircraft: aircraft,
		Extras:   extras,
		Seats:    seats,
		Rotated:  checkRotate,
	}, res)

	out := cmd.OutOrStdout()
	if checkDiagram {
		printDiagrams(out, aircraft, items)
	}
	if checkChart {
		chart, err := diagram.PayloadMarginChart(aircraft, res.RequiredPayload, ev)
		if err != nil {
			fmt.Fprintf(out, "Payload chart not shown: %v\n\n", err)
		} else {
			fmt.Fprintln(out, chart)
		}
	}

	return exportCheck(out, aircraft, items)
}

func validateCheck(aircraft feasibility.AircraftSpec, items []feasibility.CargoItem, extras feasibility.MissionExtras, seats feasibility.SeatRemoval) error {
	limits := []struct {
		name string
		m    feasibility.Measure
	}{
		{"door width", aircraft.DoorWidth},
		{"door height", aircraft.DoorHeight},
		{"cabin length", aircraft.CabinLength},
		{"cabin width", aircraft.CabinWidth},
		{"cabin height", aircraft.CabinHeight},
		{"max payload", aircraft.MaxPayload},
		{"seat weight", aircraft.SeatWeight},
		{"removable seats", aircraft.RemovableSeatCount},
	}
	for _, l := range limits {
		if v, ok := l.m.Value(); ok && v < 0 {
			return fmt.Errorf("%s must not be negative (got %.2f)", l.name, v)
		}
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("%s: %w", item.Name, err)
		}
	}
	if err := extras.Validate(); err != nil {
		return err
	}
	return seats.Validate(aircraft)
}

func applyAircraftOverrides(flags *pflag.FlagSet, a feasibility.AircraftSpec) feasibility.AircraftSpec {
	override := func(name string, dst *feasibility.Measure, v float64) {
		if flags.Changed(name) {
			*dst = feasibility.Known(v)
		}
	}
	override("door-width", &a.DoorWidth, checkDoorWidth)
	override("door-height", &a.DoorHeight, checkDoorHeight)
	override("cabin-length", &a.CabinLength, checkCabinLength)
	override("cabin-width", &a.CabinWidth, checkCabinWidth)
	override("cabin-height", &a.CabinHeight, checkCabinHeight)
	override("max-payload", &a.MaxPayload, checkMaxPayload)
	override("seat-weight", &a.SeatWeight, checkSeatWeight)
	override("removable-seats", &a.RemovableSeatCount, float64(checkRemovableSeats))
	return a
}

// manualItem builds the item given on the command line. All four
// measurements are required.
func manualItem(flags *pflag.FlagSet) (feasibility.CargoItem, error) {
	var missing []string
	for _, n := range manualItemFlags[1:] {
		if !flags.Changed(n) {
			missing = append(missing, "--"+n)
		}
	}
	if len(missing) > 0 {
		return feasibility.CargoItem{}, fmt.Errorf("manual item needs --length, --width, --height and --weight (missing %s)",
			strings.Join(missing, ", "))
	}

	name := strings.TrimSpace(checkName)
	if name == "" {
		name = "Manual item"
	}
	return feasibility.NewCargoItem(name, checkLength, checkWidth, checkHeight, checkWeight), nil
}

// flagMeasure is v when the flag was given, unknown otherwise.
func flagMeasure(flags *pflag.FlagSet, name string, v float64) feasibility.Measure {
	if !flags.Changed(name) {
		return feasibility.Unknown()
	}
	return feasibility.Known(v)
}

func anyChanged(flags *pflag.FlagSet, names ...string) bool {
	for _, n := range names {
		if flags.Changed(n) {
			return true
		}
	}
	return false
}

// doorData returns the door drawing for item, turned when only the turned
// footprint clears. ok is false when a needed value is unknown.
func doorData(a feasibility.AircraftSpec, item feasibility.CargoItem) (diagram.DoorDiagramData, bool) {
	dw, ok1 := a.DoorWidth.Value()
	dh, ok2 := a.DoorHeight.Value()
	l, ok3 := item.Length.Value()
	w, ok4 := item.Width.Value()
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return diagram.DoorDiagramData{}, false
	}
	d := diagram.DoorDiagramData{Name: item.Name, DoorWidth: dw, DoorHeight: dh, Length: l, Width: w}
	if !d.FitsAsPresented() && d.Rotated().FitsAsPresented() {
		d = d.Rotated()
	}
	return d, true
}

func cabinLayout(a feasibility.AircraftSpec, items []feasibility.CargoItem) (diagram.CabinLayout, bool) {
	cl, ok1 := a.CabinLength.Value()
	cw, ok2 := a.CabinWidth.Value()
	if !ok1 || !ok2 {
		return diagram.CabinLayout{}, false
	}
	return diagram.LayoutCabin(cl, cw, diagram.DefaultSpacing, items), true
}

func printDiagrams(out io.Writer, a feasibility.AircraftSpec, items []feasibility.CargoItem) {
	for _, item := range items {
		d, ok := doorData(a, item)
		if !ok {
			fmt.Fprintf(out, "Door diagram for %s not shown: dimensions unknown\n\n", item.Name)
			continue
		}
		fmt.Fprintln(out, diagram.DrawDoorDiagram(d))
	}

	layout, ok := cabinLayout(a, items)
	if !ok {
		fmt.Fprintln(out, "Cabin layout not shown: cabin dimensions unknown")
		fmt.Fprintln(out)
		return
	}
	fmt.Fprintln(out, diagram.DrawCabinLayout(layout))
}

func exportCheck(out io.Writer, a feasibility.AircraftSpec, items []feasibility.CargoItem) error {
	if checkOutput != "" {
		var written []string
		for i, item := range items {
			d, ok := doorData(a, item)
			if !ok {
				logger.Warnw("door diagram skipped", "part", item.Name, "reason", "dimensions unknown")
				continue
			}
			path, err := diagram.ExportDoorDiagram(d, numbered(checkOutput, i, len(items)))
			if err != nil {
				return fmt.Errorf("failed to export door diagram: %w", err)
			}
			written = append(written, path)
		}
		if len(written) == 0 {
			return errors.New("cannot export door diagram: door or cargo dimensions unknown")
		}
		for _, path := range written {
			fmt.Fprintf(out, "Door diagram exported to %s\n", path)
		}
	}

	if checkLayoutOutput != "" {
		layout, ok := cabinLayout(a, items)
		if !ok {
			return errors.New("cannot export cabin layout: cabin dimensions unknown")
		}
		path, err := diagram.ExportCabinLayout(layout, checkLayoutOutput)
		if err != nil {
			return fmt.Errorf("failed to export cabin layout: %w", err)
		}
		fmt.Fprintf(out, "Cabin layout exported to %s\n", path)
	}

	if checkExportCSV != "" {
		if err := writeManifestCSV(checkExportCSV, a, items); err != nil {
			return fmt.Errorf("failed to export CSV: %w", err)
		}
		fmt.Fprintf(out, "Manifest exported to %s\n", checkExportCSV)
	}
	return nil
}

func writeManifestCSV(path string, a feasibility.AircraftSpec, items []feasibility.CargoItem) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.WriteCSV(f, a.Name, items); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// numbered inserts -N before the extension when there is more than one file.
func numbered(path string, i, n int) string {
	if n <= 1 {
		return path
	}
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(path, ext), i+1, ext)
}
