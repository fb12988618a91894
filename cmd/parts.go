package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/onflyair/cargofit/internal/feasibility"
)

var (
	// Saved part inputs
	saveName   string
	saveLength float64
	saveWidth  float64
	saveHeight float64
	saveWeight float64
)

var partsCmd = &cobra.Command{
	Use:   "parts",
	Short: "Browse catalog parts and manage saved parts",
	Long: `Browse the parts sheet configured under data.parts, and keep your own
part templates in a local database (store.path).

Saved parts take precedence over catalog parts with the same name.

Subcommands:
  list     Show catalog and saved parts
  show     Show one part
  save     Save or replace a custom part
  delete   Delete a saved part`,
}

var partsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog and saved parts",
	Args:  cobra.NoArgs,
	RunE:  runPartsList,
}

var partsShowCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Show one part",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPartsShow,
}

var partsSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save or replace a custom part",
	Long: `Save a part template for later checks. Dimensions you leave out are
stored as unknown, and checks using the part will say so.

Examples:
  # A fully measured crate
  cargofit parts save --name "Avionics Crate" --length 30 --width 20 --height 18 --weight 65

  # Weight not known yet
  cargofit parts save --name "Flap Section" -l 96 -w 18 --height 8`,
	Args: cobra.NoArgs,
	RunE: runPartsSave,
}

var partsDeleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Delete a saved part",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPartsDelete,
}

func init() {
	rootCmd.AddCommand(partsCmd)
	partsCmd.AddCommand(partsListCmd)
	partsCmd.AddCommand(partsShowCmd)
	partsCmd.AddCommand(partsSaveCmd)
	partsCmd.AddCommand(partsDeleteCmd)

	partsSaveCmd.Flags().StringVarP(&saveName, "name", "n", "", "Part name [required]")
	partsSaveCmd.Flags().Float64VarP(&saveLength, "length", "l", 0, "Length (in)")
	partsSaveCmd.Flags().Float64VarP(&saveWidth, "width", "w", 0, "Width (in)")
	partsSaveCmd.Flags().Float64Var(&saveHeight, "height", 0, "Height (in)")
	partsSaveCmd.Flags().Float64Var(&saveWeight, "weight", 0, "Weight (lbs)")
	partsSaveCmd.MarkFlagRequired("name")
}

func runPartsList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	catalog, err := loadCatalog(ctx)
	if err != nil {
		return err
	}
	store, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(store)

	saved, err := store.List(ctx)
	if err != nil {
		return err
	}

	r := newRenderer(cmd)
	r.Parts("CATALOG PARTS:", catalog.Parts())
	r.Parts(fmt.Sprintf("SAVED PARTS (%s):", cfg.Store.Owner), saved)
	return nil
}

func runPartsShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	catalog, err := loadCatalog(ctx)
	if err != nil {
		return err
	}
	store, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(store)

	item, err := resolvePart(ctx, store, catalog, strings.Join(args, " "))
	if err != nil {
		return err
	}
	newRenderer(cmd).Parts(strings.ToUpper(item.Name)+":", []feasibility.CargoItem{item})
	return nil
}

func runPartsSave(cmd *cobra.Command, args []string) error {
	name := strings.TrimSpace(saveName)
	if name == "" {
		return fmt.Errorf("--name must not be blank")
	}

	flags := cmd.Flags()
	item := feasibility.CargoItem{
		Name:   name,
		Length: flagMeasure(flags, "length", saveLength),
		Width:  flagMeasure(flags, "width", saveWidth),
		Height: flagMeasure(flags, "height", saveHeight),
		Weight: flagMeasure(flags, "weight", saveWeight),
	}
	if err := item.Validate(); err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(store)

	if err := store.Save(cmd.Context(), item); err != nil {
		return err
	}
	logger.Infow("part saved", "name", item.Name, "owner", cfg.Store.Owner)
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %q (%s × %s × %s in, %s lbs)\n",
		item.Name, item.Length, item.Width, item.Height, item.Weight)
	return nil
}

func runPartsDelete(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(store)

	name := strings.Join(args, " ")
	if err := store.Delete(cmd.Context(), name); err != nil {
		return fmt.Errorf("cannot delete %q: %w", name, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q\n", name)
	return nil
}
