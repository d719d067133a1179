package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"pv-feasibility/internal/config"
	"pv-feasibility/internal/model"
	"pv-feasibility/internal/scenario"
	"pv-feasibility/internal/sweep"
)

var log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

var (
	flagConfig string
	flagOut    string

	flagMin   float64
	flagMax   float64
	flagSteps int
	flagLog   bool

	flagVariable string
	flagSecMin   float64
	flagSecMax   float64
	flagSecSteps int
)

func main() {
	root := &cobra.Command{
		Use:          "pvcli",
		Short:        "PV pre-feasibility scenario and sizing tool",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "scenario config file (YAML)")
	root.PersistentFlags().StringVarP(&flagOut, "out", "o", ".", "output directory for CSV tables")
	_ = root.MarkPersistentFlagRequired("config")

	scenarioCmd := &cobra.Command{
		Use:   "scenario",
		Short: "Run a single scenario and write its tables",
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "Sweep PV capacity and report the best candidate by NPV",
		RunE:  runSweep,
	}
	addSweepFlags(sweepCmd)

	sensitivityCmd := &cobra.Command{
		Use:   "sensitivity",
		Short: "Sweep capacity across a grid of a second input variable",
		RunE:  runSensitivity,
	}
	addSweepFlags(sensitivityCmd)
	sensitivityCmd.Flags().StringVar(&flagVariable, "variable", "", "secondary variable (e.g. import_tariff, discount_rate)")
	sensitivityCmd.Flags().Float64Var(&flagSecMin, "sec-min", 0, "secondary grid minimum (%-variables on the 0-100 scale)")
	sensitivityCmd.Flags().Float64Var(&flagSecMax, "sec-max", 0, "secondary grid maximum")
	sensitivityCmd.Flags().IntVar(&flagSecSteps, "sec-steps", 5, "secondary grid steps")
	_ = sensitivityCmd.MarkFlagRequired("variable")

	root.AddCommand(scenarioCmd, sweepCmd, sensitivityCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSweepFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&flagMin, "min", 100, "minimum PV capacity (kWp)")
	cmd.Flags().Float64Var(&flagMax, "max", 10000, "maximum PV capacity (kWp)")
	cmd.Flags().IntVar(&flagSteps, "steps", 20, "capacity grid steps")
	cmd.Flags().BoolVar(&flagLog, "log", true, "log-spaced capacity grid")
}

func loadSpec() (*model.InputSpec, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	return cfg.InputSpec()
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runScenario(cmd *cobra.Command, args []string) error {
	in, err := loadSpec()
	if err != nil {
		return err
	}
	sc, err := scenario.Build(in)
	if err != nil {
		return err
	}

	for _, t := range sc.Tables() {
		name := strings.ToLower(strings.ReplaceAll(t.Name, " ", "_")) + ".csv"
		path := filepath.Join(flagOut, name)
		if err := scenario.WriteTableCSV(path, t); err != nil {
			return err
		}
		log.Info().Str("table", t.Name).Str("path", path).Msg("wrote table")
	}

	s := sc.Summary
	log.Info().
		Float64("npv", s.NPV).
		Float64("lcoe_per_mwh", s.LCOE).
		Float64("blcoe_per_mwh", s.BLCOE).
		Float64("payback_yrs", s.PaybackYears).
		Msg("scenario complete")
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	in, err := loadSpec()
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	res, err := sweep.Capacity(ctx, in, flagMin, flagMax, flagSteps, flagLog)
	if err != nil {
		return err
	}

	path := filepath.Join(flagOut, "capacity_sweep.csv")
	if err := scenario.WriteTableCSV(path, aggregateTable("Capacity Sweep", res)); err != nil {
		return err
	}

	best := res.Best.Summary
	log.Info().
		Int("candidates", len(res.Capacities)).
		Float64("best_capacity_kwp", best.PVCapacityKWp).
		Float64("best_npv", best.NPV).
		Str("path", path).
		Msg("sweep complete")
	return nil
}

func runSensitivity(cmd *cobra.Command, args []string) error {
	variable, err := model.ParseVariable(flagVariable)
	if err != nil {
		return err
	}
	in, err := loadSpec()
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	res, err := sweep.Sensitivity(ctx, in, sweep.SensitivitySpec{
		Variable:    variable,
		SecMin:      flagSecMin,
		SecMax:      flagSecMax,
		SecSteps:    flagSecSteps,
		CapMin:      flagMin,
		CapMax:      flagMax,
		CapSteps:    flagSteps,
		CapLogScale: flagLog,
	})
	if err != nil {
		return err
	}

	for _, v := range res.Grid {
		name := fmt.Sprintf("sensitivity_%s_%s.csv", flagVariable,
			strings.ReplaceAll(strconv.FormatFloat(v, 'g', -1, 64), ".", "p"))
		path := filepath.Join(flagOut, name)
		title := fmt.Sprintf("Capacity Sweep (%s = %g)", flagVariable, v)
		if err := scenario.WriteTableCSV(path, aggregateTable(title, res.Sweeps[v])); err != nil {
			return err
		}
		best := res.Sweeps[v].Best.Summary
		log.Info().
			Float64("secondary", v).
			Float64("best_capacity_kwp", best.PVCapacityKWp).
			Float64("best_npv", best.NPV).
			Str("path", path).
			Msg("sensitivity point complete")
	}
	return nil
}

// aggregateTable renders a sweep's summary rows as one table indexed by
// capacity.
func aggregateTable(name string, res *sweep.CapacityResult) scenario.Table {
	t := scenario.Table{
		Name: name,
		Header: []string{
			"pv_capacity_kwp",
			"load_mwh",
			"pv_total_mwh",
			"pv_self_cons_mwh",
			"grid_import_mwh",
			"grid_export_mwh",
			"self_cons_pct",
			"utilisation_pct",
			"capex",
			"mean_opex",
			"lcoe",
			"blcoe",
			"npv",
			"irr_pct",
			"payback_yrs",
		},
	}
	for _, s := range res.Aggregate {
		t.Rows = append(t.Rows, []string{
			strconv.FormatFloat(s.PVCapacityKWp, 'f', 0, 64),
			strconv.FormatFloat(s.LoadMWh, 'f', 6, 64),
			strconv.FormatFloat(s.PVTotalMWh, 'f', 6, 64),
			strconv.FormatFloat(s.PVSelfConsMWh, 'f', 6, 64),
			strconv.FormatFloat(s.GridImportMWh, 'f', 6, 64),
			strconv.FormatFloat(s.GridExportMWh, 'f', 6, 64),
			strconv.FormatFloat(s.SelfConsPct, 'f', 6, 64),
			strconv.FormatFloat(s.UtilisationPct, 'f', 6, 64),
			strconv.FormatFloat(s.CapEx, 'f', 2, 64),
			strconv.FormatFloat(s.MeanOpEx, 'f', 2, 64),
			strconv.FormatFloat(s.LCOE, 'f', 6, 64),
			strconv.FormatFloat(s.BLCOE, 'f', 6, 64),
			strconv.FormatFloat(s.NPV, 'f', 2, 64),
			strconv.FormatFloat(s.IRR, 'f', 6, 64),
			strconv.FormatFloat(s.PaybackYears, 'f', 2, 64),
		})
	}
	return t
}
