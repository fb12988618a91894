package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var aircraftCmd = &cobra.Command{
	Use:   "aircraft",
	Short: "Browse the fleet reference data",
	Long: `Browse the aircraft sheet configured under data.aircraft.

Subcommands:
  list    Show every aircraft with door, cabin and payload limits
  show    Show one aircraft in detail`,
}

var aircraftListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all aircraft",
	Args:  cobra.NoArgs,
	RunE:  runAircraftList,
}

var aircraftShowCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Show one aircraft",
	Long: `Show door, cabin, payload and seat data for one aircraft.
Names are matched without regard to case.

Examples:
  cargofit aircraft show "Cessna 208 Caravan"
  cargofit aircraft show pilatus pc-12`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAircraftShow,
}

func init() {
	rootCmd.AddCommand(aircraftCmd)
	aircraftCmd.AddCommand(aircraftListCmd)
	aircraftCmd.AddCommand(aircraftShowCmd)
}

func runAircraftList(cmd *cobra.Command, args []string) error {
	catalog, err := loadCatalog(cmd.Context())
	if err != nil {
		return err
	}

	fleet := catalog.AircraftList()
	out := cmd.OutOrStdout()
	if len(fleet) == 0 {
		fmt.Fprintf(out, "No aircraft found in %s\n", cfg.Data.Aircraft)
		return nil
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "FLEET:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	newRenderer(cmd).AircraftList(fleet)
	fmt.Fprintln(out)
	return nil
}

func runAircraftShow(cmd *cobra.Command, args []string) error {
	catalog, err := loadCatalog(cmd.Context())
	if err != nil {
		return err
	}

	a, err := catalog.Aircraft(strings.Join(args, " "))
	if err != nil {
		return err
	}
	newRenderer(cmd).Aircraft(a)
	return nil
}
