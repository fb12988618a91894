package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/onflyair/cargofit/internal/config"
	"github.com/onflyair/cargofit/internal/feasibility"
	"github.com/onflyair/cargofit/internal/logging"
	"github.com/onflyair/cargofit/internal/partstore"
	"github.com/onflyair/cargofit/internal/refdata"
	"github.com/onflyair/cargofit/internal/report"
	"github.com/onflyair/cargofit/internal/version"
)

var (
	cfgFile  string
	logLevel string
	refresh  bool

	cfg    *config.Config
	logger = logging.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "cargofit",
	Short: "Aircraft cargo fit and payload checker",
	Long: `cargofit - will it fit, and can we carry it?

A CLI tool for maintenance and charter crews that checks whether a part
can be flown in a given aircraft:
  - Door fit (the part may be turned to pass through the door)
  - Cabin fit (length, width and height against the cabin)
  - Payload (cargo, mechanics and tools against max payload,
    with credit for removed seats)

Aircraft and parts come from CSV or XLSX sheets, local or published online.
Any dimension the sheets leave blank is reported as unknown rather than guessed.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Fprintln(out, "  ║                                                           ║")
		fmt.Fprintf(out, "  ║   cargofit v%-46s║\n", version.Version)
		fmt.Fprintln(out, "  ║   Aircraft Cargo Fit & Payload Checker                    ║")
		fmt.Fprintln(out, "  ║                                                           ║")
		fmt.Fprintln(out, "  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Features:")
		fmt.Fprintln(out, "    • Door and cabin fit checks with rotation through the door")
		fmt.Fprintln(out, "    • Payload check with mechanics, tools and removed seats")
		fmt.Fprintln(out, "    • Fleet and parts sheets from CSV, XLSX or Google Sheets")
		fmt.Fprintln(out, "    • Saved custom parts, door and cabin diagrams")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Use 'cargofit --help' to see available commands.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  ─────────────────────────────────────────────────────────────")
		fmt.Fprintf(out, "  Copyright © %s %s.\n", version.Year, version.Author)
		fmt.Fprintln(out)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default ./cargofit.yaml or ~/.cargofit/cargofit.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level override (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&refresh, "refresh", false, "Download online fleet and parts sheets again instead of using the cache")
}

// setup loads .env, configuration and the logger before any command runs.
func setup(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	c, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if logLevel != "" {
		c.Log.Level = logLevel
	}

	l, err := logging.New(c.Log.Level, c.Log.Format)
	if err != nil {
		return err
	}

	cfg, logger = c, l
	logger.Debugw("configuration loaded",
		"aircraft_source", cfg.Data.Aircraft,
		"parts_source", cfg.Data.Parts,
		"store", cfg.Store.Path,
		"seat_weight_policy", cfg.Payload.MissingSeatWeight.String())
	return nil
}

func loadCatalog(ctx context.Context) (*refdata.Catalog, error) {
	loader := refdata.NewLoader(
		refdata.WithLogger(logger.Named("refdata")),
		refdata.WithCacheTTL(cfg.Data.CacheTTL),
		refdata.WithCacheDir(cfg.Data.CacheDir),
		refdata.WithHTTPClient(&http.Client{Timeout: cfg.Data.Timeout}),
	)
	if refresh {
		loader.Invalidate(cfg.Data.Aircraft)
		loader.Invalidate(cfg.Data.Parts)
	}
	catalog, err := loader.Load(ctx, cfg.Data.Aircraft, cfg.Data.Parts)
	if err != nil {
		return nil, fmt.Errorf("failed to load reference data: %w", err)
	}
	logger.Debugw("catalog loaded",
		"aircraft", len(catalog.AircraftList()),
		"parts", len(catalog.Parts()))
	return catalog, nil
}

func openStore() (*partstore.SQLiteStore, error) {
	store, err := partstore.Open(cfg.Store.Path, cfg.Store.Owner)
	if err != nil {
		return nil, fmt.Errorf("failed to open saved parts: %w", err)
	}
	return store, nil
}

func evaluator() feasibility.Evaluator {
	return feasibility.Evaluator{SeatWeight: cfg.Payload.MissingSeatWeight}
}

func newRenderer(cmd *cobra.Command) *report.Renderer {
	out := cmd.OutOrStdout()
	return report.New(out, report.ColorEnabled(out))
}

// resolvePart looks a part up in the saved parts first, then the catalog.
func resolvePart(ctx context.Context, store partstore.Store, catalog *refdata.Catalog, name string) (feasibility.CargoItem, error) {
	item, err := store.Get(ctx, name)
	if err == nil {
		return item, nil
	}
	if !errors.Is(err, partstore.ErrNotFound) {
		return feasibility.CargoItem{}, err
	}
	return catalog.Part(name)
}

func closeStore(store partstore.Store) {
	if err := store.Close(); err != nil {
		logger.Warnw("failed to close saved parts", zap.Error(err))
	}
}
