package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/pidloop/internal/config"
	"github.com/san-kum/pidloop/internal/integrator"
	"github.com/san-kum/pidloop/internal/loop"
	"github.com/san-kum/pidloop/internal/metrics"
	"github.com/san-kum/pidloop/internal/pid"
	"github.com/san-kum/pidloop/internal/plant"
	"github.com/san-kum/pidloop/internal/storage"
	"github.com/san-kum/pidloop/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir     string
	sampleTime  float64
	duration    float64
	setpoint    float64
	kp          float64
	ki          float64
	kd          float64
	tf          float64
	outMin      float64
	outMax      float64
	integralMin float64
	integralMax float64
	stepper     string
	configFile  string
	preset      string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pidloop",
		Short: "discrete-time PID control loop lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".pidloop", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [plant]",
		Short: "run a closed loop and save the traces",
		Args:  cobra.ExactArgs(1),
		RunE:  runLoop,
	}
	addLoopFlags(runCmd)

	stepCmd := &cobra.Command{
		Use:   "step [plant]",
		Short: "print a closed-loop step response table",
		Args:  cobra.ExactArgs(1),
		RunE:  stepResponse,
	}
	addLoopFlags(stepCmd)

	liveCmd := &cobra.Command{
		Use:   "live [plant]",
		Short: "watch a loop run with live-tunable gains",
		Args:  cobra.ExactArgs(1),
		RunE:  liveLoop,
	}
	addLoopFlags(liveCmd)

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

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [plant]",
		Short: "list presets for a plant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if presets == nil {
				return fmt.Errorf("unknown plant: %s", args[0])
			}
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, stepCmd, liveCmd, listCmd, plotCmd, exportCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addLoopFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&sampleTime, "sample-time", config.DefaultSampleTime, "sample period in seconds")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "run duration in seconds")
	cmd.Flags().Float64Var(&setpoint, "setpoint", config.DefaultSetpoint, "setpoint")
	cmd.Flags().Float64Var(&kp, "kp", config.DefaultKp, "proportional gain")
	cmd.Flags().Float64Var(&ki, "ki", config.DefaultKi, "integral gain")
	cmd.Flags().Float64Var(&kd, "kd", config.DefaultKd, "derivative gain")
	cmd.Flags().Float64Var(&tf, "tf", config.DefaultTf, "derivative filter time constant")
	cmd.Flags().Float64Var(&outMin, "out-min", -20, "output lower bound")
	cmd.Flags().Float64Var(&outMax, "out-max", 20, "output upper bound")
	cmd.Flags().Float64Var(&integralMin, "integral-min", -10, "integrator lower bound")
	cmd.Flags().Float64Var(&integralMax, "integral-max", 10, "integrator upper bound")
	cmd.Flags().StringVar(&stepper, "integrator", "rk4", "plant integrator (euler, rk4)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig merges defaults, preset, config file and flags into one
// run configuration. Flags win over the file, the file wins over the
// preset.
func resolveConfig(cmd *cobra.Command, plantName string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Plant = plantName

	if preset != "" {
		p := config.GetPreset(plantName, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(plantName))
		}
		*cfg = *p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		*cfg = *loaded
		cfg.Plant = plantName
	}

	flags := cmd.Flags()
	if flags.Changed("sample-time") {
		cfg.SampleTime = sampleTime
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("setpoint") {
		cfg.Setpoint = setpoint
	}
	if flags.Changed("integrator") {
		cfg.Integrator = stepper
	}
	if flags.Changed("kp") {
		cfg.Gains.Kp = kp
	}
	if flags.Changed("ki") {
		cfg.Gains.Ki = ki
	}
	if flags.Changed("kd") {
		cfg.Gains.Kd = kd
	}
	if flags.Changed("tf") {
		cfg.Gains.Tf = tf
	}
	if flags.Changed("out-min") {
		cfg.Limits.OutMin = outMin
	}
	if flags.Changed("out-max") {
		cfg.Limits.OutMax = outMax
	}
	if flags.Changed("integral-min") {
		cfg.Limits.IntegralMin = integralMin
	}
	if flags.Changed("integral-max") {
		cfg.Limits.IntegralMax = integralMax
	}

	return cfg, nil
}

func buildPlant(name string) (loop.Plant, error) {
	switch name {
	case "first_order":
		return plant.NewFirstOrder(), nil
	case "spring_mass":
		return plant.NewSpringMass(), nil
	case "motor":
		return plant.NewMotor(), nil
	default:
		return nil, fmt.Errorf("unknown plant: %s", name)
	}
}

func buildStepper(name string) (loop.Stepper, error) {
	switch name {
	case "euler":
		return integrator.NewEuler(), nil
	case "rk4":
		return integrator.NewRK4(), nil
	default:
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
}

func buildController(cfg *config.Config) *pid.Controller[float64] {
	return pid.New(
		pid.Range[float64]{Start: cfg.Limits.OutMin, End: cfg.Limits.OutMax},
		cfg.SamplePeriod(),
		pid.NewProportional(cfg.Gains.Kp),
		pid.NewIntegrator(cfg.Gains.Ki, pid.Range[float64]{Start: cfg.Limits.IntegralMin, End: cfg.Limits.IntegralMax}),
		pid.NewDifferentiator(cfg.Gains.Kd, cfg.Gains.Tf),
	)
}

func buildRunner(cmd *cobra.Command, plantName string) (*loop.Runner, *config.Config, error) {
	cfg, err := resolveConfig(cmd, plantName)
	if err != nil {
		return nil, nil, err
	}

	p, err := buildPlant(cfg.Plant)
	if err != nil {
		return nil, nil, err
	}

	st, err := buildStepper(cfg.Integrator)
	if err != nil {
		return nil, nil, err
	}

	return loop.New(p, st, buildController(cfg)), cfg, nil
}

func runLoop(cmd *cobra.Command, args []string) error {
	runner, cfg, err := buildRunner(cmd, args[0])
	if err != nil {
		return err
	}

	runner.AddMetric(metrics.NewControlEffort())
	runner.AddMetric(metrics.NewOvershoot())
	runner.AddMetric(metrics.NewSettlingTime(0.02))
	runner.AddMetric(metrics.NewSteadyStateError())

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	loopCfg := loop.Config{
		Setpoint:      cfg.Setpoint,
		Duration:      cfg.Duration,
		ValidateState: true,
	}

	fmt.Printf("running %s loop...\n", cfg.Plant)
	start := time.Now()

	result, err := runner.Run(context.Background(), cfg.GetInitState(), loopCfg)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	meta := storage.RunMetadata{
		Plant:      cfg.Plant,
		SampleTime: cfg.SampleTime,
		Duration:   cfg.Duration,
		Setpoint:   cfg.Setpoint,
		Integrator: cfg.Integrator,
		Kp:         cfg.Gains.Kp,
		Ki:         cfg.Gains.Ki,
		Kd:         cfg.Gains.Kd,
	}
	runID, err := st.Save(meta, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d\n", result.StepsTaken)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func stepResponse(cmd *cobra.Command, args []string) error {
	runner, cfg, err := buildRunner(cmd, args[0])
	if err != nil {
		return err
	}

	loopCfg := loop.Config{
		Setpoint:      cfg.Setpoint,
		Duration:      cfg.Duration,
		ValidateState: true,
	}

	// Thin the table to roughly fifty rows regardless of sample rate.
	every := int(cfg.Duration / cfg.SampleTime / 50)
	if every < 1 {
		every = 1
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tSETPOINT\tMEASUREMENT\tOUTPUT")

	sample := 0
	err = runner.RunWithCallback(context.Background(), cfg.GetInitState(), loopCfg, func(y, u, t float64) bool {
		if sample%every == 0 {
			fmt.Fprintf(w, "%.3fs\t%.4f\t%.4f\t%.4f\n", t, cfg.Setpoint, y, u)
		}
		sample++
		return true
	})
	if err != nil {
		return err
	}

	return w.Flush()
}

func liveLoop(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	p, err := buildPlant(cfg.Plant)
	if err != nil {
		return err
	}

	st, err := buildStepper(cfg.Integrator)
	if err != nil {
		return err
	}

	return viz.Run(p, st, buildController(cfg), cfg.GetInitState(), cfg.Setpoint, cfg.Plant)
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPLANT\tTIME\tDURATION\tSAMPLE\tINTEG\tKP\tKI\tKD")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%s\t%.3f\t%.3f\t%.3f\n",
			run.ID,
			run.Plant,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.SampleTime,
			run.Integrator,
			run.Kp,
			run.Ki,
			run.Kd,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	traces, err := st.LoadTraces(runID)
	if err != nil {
		return err
	}

	if traces.StepsTaken == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("plant: %s\n", meta.Plant)
	fmt.Printf("samples: %d\n\n", traces.StepsTaken)

	graph := asciigraph.PlotMany(
		[][]float64{traces.Setpoints, traces.Measurements},
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("setpoint / measurement"),
	)
	fmt.Println(graph)
	fmt.Println()

	graph = asciigraph.Plot(traces.Outputs,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("control output"),
	)
	fmt.Println(graph)

	return nil
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
