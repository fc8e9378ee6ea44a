package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"grasplab/internal/config"
	"grasplab/internal/diag"
	"grasplab/internal/experiment"
	"grasplab/internal/export"
	"grasplab/internal/optim"
	"grasplab/internal/storage"
	"grasplab/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	dt         float64
	steps      int
	integrator string
	controller string
	period     int
	interval   int
	debug      bool
	noSave     bool
	// sweep
	sweepParam  string
	sweepMin    float64
	sweepMax    float64
	sweepCount  int
	sweepMetric string
	// scene
	asSVG    float64
	stateCol int
	plotSVG  bool
)

var stateCaptions = []string{
	"gripper z (slider position)",
	"finger l (jaw position)",
	"finger r (jaw position)",
	"box z (joint position)",
	"gripper z velocity",
	"finger l velocity",
	"finger r velocity",
	"box z velocity",
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "grasplab",
		Short: "tabletop gripper simulation lab",
		RunE:  runDemo,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".grasplab", "data directory")

	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "run the open-loop grasp cycle with contact diagnostics",
		RunE:  runDemo,
	}
	addRunFlags(demoCmd)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation with a chosen controller",
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)
	runCmd.Flags().StringVar(&controller, "controller", "grasp_cycle", "controller")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch the grasp cycle in the terminal",
		RunE:  runLive,
	}
	addRunFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&stateCol, "var", -1, "plot a single state index instead of all")
	plotCmd.Flags().BoolVar(&plotSVG, "svg", false, "emit the trajectory as SVG on stdout")

	contactsCmd := &cobra.Command{
		Use:   "contacts [run_id]",
		Short: "show the contact events of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  showContacts,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run trajectory as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	sceneCmd := &cobra.Command{
		Use:   "scene",
		Short: "print the assembled scene as MJCF-flavored XML",
		RunE:  printScene,
	}
	sceneCmd.Flags().Float64Var(&asSVG, "svg", 0, "emit an SVG snapshot at this scale (px/m) instead")
	sceneCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	sceneCmd.Flags().StringVar(&preset, "preset", "", "preset configuration")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "grid-sweep a parameter, scoring each run by a metric",
		RunE:  runSweep,
	}
	addRunFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "contact_stiffness", "parameter to sweep (contact_stiffness, contact_damping, period, z_low)")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 200, "range start")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 800, "range end")
	sweepCmd.Flags().IntVar(&sweepCount, "num", 5, "number of grid points")
	sweepCmd.Flags().StringVar(&sweepMetric, "metric", "lift_height", "metric to maximize")

	compareCmd := &cobra.Command{
		Use:   "compare [integrator...]",
		Short: "compare integrators on the grasp cycle",
		Args:  cobra.MinimumNArgs(1),
		RunE:  compareIntegrators,
	}
	addRunFlags(compareCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset configurations",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range config.ListPresets() {
				fmt.Println(p)
			}
			return nil
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default configuration to a file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "grasplab.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			if err := config.Save(path, config.Default()); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}

	rootCmd.AddCommand(demoCmd, runCmd, liveCmd, listCmd, plotCmd, contactsCmd,
		exportCmd, exportCSVCmd, sceneCmd, sweepCmd, compareCmd, presetsCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "preset configuration")
	cmd.Flags().Float64Var(&dt, "dt", 0, "timestep override")
	cmd.Flags().IntVar(&steps, "steps", 0, "step count override")
	cmd.Flags().StringVar(&integrator, "integrator", "", "integrator override")
	cmd.Flags().IntVar(&period, "period", 0, "steps per plan phase override")
	cmd.Flags().IntVar(&interval, "interval", 0, "diagnostic print interval override")
	cmd.Flags().BoolVar(&debug, "debug", false, "debug logging")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "skip saving the run")
}

// loadConfig resolves preset, config file and flag overrides, in that order.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if dt > 0 {
		cfg.Sim.Dt = dt
	}
	if steps > 0 {
		cfg.Sim.Steps = steps
	}
	if integrator != "" {
		cfg.Sim.Integrator = integrator
	}
	if period > 0 {
		cfg.Cycle.Period = period
	}
	if interval > 0 {
		cfg.Diag.Interval = interval
	}
	cfg.Diag.Debug = cfg.Diag.Debug || debug
	return cfg, nil
}

func runDemo(cmd *cobra.Command, args []string) error {
	controller = "grasp_cycle"
	return runSimulation(cmd, args)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if controller == "" {
		controller = "grasp_cycle"
	}

	setup, err := experiment.Build(cfg, controller)
	if err != nil {
		return err
	}

	logger, err := diag.NewLogger(cfg.Diag.Debug)
	if err != nil {
		return err
	}
	defer logger.Sync()
	setup.AttachDiagnostics(logger)

	start := time.Now()
	result, err := setup.Run(context.Background())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	logger.Info("simulation finished",
		zap.Int("steps", result.StepsTaken),
		zap.Duration("elapsed", elapsed),
		zap.Float64("box_z", setup.Model.BoxHeight(result.States[len(result.States)-1])),
	)
	for name, val := range result.Metrics {
		logger.Info("metric", zap.String("name", name), zap.Float64("value", val))
	}

	if noSave {
		return nil
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	defer st.Close()

	runID, err := st.Save("grasp", cfg.Sim.Dt, cfg.Sim.Integrator, controller, result, setup.Contacts())
	if err != nil {
		return err
	}
	logger.Info("run saved", zap.String("id", runID))
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	setup, err := experiment.Build(cfg, "grasp_cycle")
	if err != nil {
		return err
	}
	return viz.Run(setup)
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tSTEPS\tDT\tINTEG\tCTRL")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.4fs\t%s\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.Dt,
			run.Integrator,
			run.Controller,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	states, times, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	if plotSVG {
		idx := stateCol
		if idx < 0 {
			idx = 0
		}
		if idx >= len(states[0]) {
			return fmt.Errorf("state index %d out of range (dim %d)", idx, len(states[0]))
		}
		points := make([]struct{ X, Y float64 }, len(states))
		for i := range states {
			points[i].X = times[i]
			points[i].Y = states[i][idx]
		}
		fmt.Println(export.TrajectoryToSVG(points, 800, 400, "#ff3030"))
		return nil
	}

	fmt.Printf("run: %s\n", runID)
	fmt.Printf("samples: %d over %.2fs\n\n", len(states), times[len(times)-1])

	plotOne := func(idx int) {
		data := make([]float64, len(states))
		for i := range states {
			if idx < len(states[i]) {
				data[i] = states[i][idx]
			}
		}
		caption := fmt.Sprintf("x%d vs time", idx)
		if idx < len(stateCaptions) {
			caption = stateCaptions[idx]
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	if stateCol >= 0 {
		if stateCol >= len(states[0]) {
			return fmt.Errorf("state index %d out of range (dim %d)", stateCol, len(states[0]))
		}
		plotOne(stateCol)
		return nil
	}
	// Positions only; velocities on request via --var.
	n := len(states[0]) / 2
	for idx := 0; idx < n; idx++ {
		plotOne(idx)
	}
	return nil
}

func showContacts(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	events, err := st.LoadContacts(runID)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		fmt.Println("no contact events recorded")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tTIME\tGEOM1\tGEOM2\tDEPTH\tFORCE")
	for _, ev := range events {
		fmt.Fprintf(w, "%d\t%.3fs\t%s\t%s\t%.5f\t%.3f\n",
			ev.Step, ev.Time, ev.Contact.Geom1, ev.Contact.Geom2, ev.Contact.Depth, ev.Contact.Force)
	}
	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	states, times, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"time"}
	for i := range states[0] {
		header = append(header, fmt.Sprintf("x%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for i := range states {
		row := []string{strconv.FormatFloat(times[i], 'f', 6, 64)}
		for _, val := range states[i] {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func printScene(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	setup, err := experiment.Build(cfg, "none")
	if err != nil {
		return err
	}

	if asSVG > 0 {
		fmt.Println(export.SceneSVG(setup.Model, setup.Model.InitialState(), asSVG))
		return nil
	}

	data, err := setup.World.MarshalXML("gripper_demo")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	baseCfg, err := loadConfig()
	if err != nil {
		return err
	}

	build := func(params map[string]float64) (*experiment.Setup, error) {
		cfg := *baseCfg
		for name, v := range params {
			switch name {
			case "contact_stiffness":
				cfg.Scene.ContactStiffness = v
			case "contact_damping":
				cfg.Scene.ContactDamping = v
			case "period":
				cfg.Cycle.Period = int(v)
			case "z_low":
				cfg.Cycle.ZLow = v
			default:
				return nil, fmt.Errorf("unknown sweep parameter: %s", name)
			}
		}
		return experiment.Build(&cfg, "grasp_cycle")
	}

	gs := optim.NewGridSearch([]string{sweepParam}, [][]float64{optim.Range(sweepMin, sweepMax, sweepCount)})
	gs.Maximize = true

	fmt.Printf("sweeping %s over [%g, %g] in %d points, maximizing %s\n",
		sweepParam, sweepMin, sweepMax, sweepCount, sweepMetric)
	start := time.Now()
	best, val, err := gs.Search(context.Background(), build, sweepMetric)
	if err != nil {
		return err
	}
	fmt.Printf("done in %v\n", time.Since(start))
	fmt.Printf("best %s = %g with %s = %.6f\n", sweepParam, best[sweepParam], sweepMetric, val)
	return nil
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tFINAL_BOX_Z\tLIFT_HEIGHT\tENERGY_DRIFT\tTIME")
	for _, name := range args {
		runCfg := *cfg
		runCfg.Sim.Integrator = name

		setup, err := experiment.Build(&runCfg, "grasp_cycle")
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", name, err)
			continue
		}

		start := time.Now()
		result, err := setup.Run(context.Background())
		elapsed := time.Since(start)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", name, err)
			continue
		}

		final := setup.Model.BoxHeight(result.States[len(result.States)-1])
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.2e\t%v\n",
			name, final, result.Metrics["lift_height"], result.EnergyDrift, elapsed.Round(time.Millisecond))
	}
	return w.Flush()
}
