package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/attsim/attsim/internal/config"
	"github.com/attsim/attsim/internal/integrators"
	"github.com/attsim/attsim/internal/kinematics"
	"github.com/attsim/attsim/internal/rotation"
	"github.com/attsim/attsim/internal/storage"
	"github.com/attsim/attsim/internal/viz"
)

var (
	dataDir    string
	dt         float64
	duration   float64
	integrator string
	frameName  string
	yaw        float64
	pitch      float64
	roll       float64
	wx         float64
	wy         float64
	wz         float64
	profile    string
	freq       float64
	amplitude  []float64
	inertia    []float64
	configFile string
	preset     string
	frameRate  int
	// convert inputs
	quatVals      []float64
	eulerVals     []float64
	axisAngleVals []float64
	dcmVals       []float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "attsim",
		Short: "attitude representation and propagation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".attsim", "data directory")

	convertCmd := &cobra.Command{
		Use:   "convert",
		Short: "convert between rotation representations",
		RunE:  runConvert,
	}
	convertCmd.Flags().Float64SliceVar(&quatVals, "quat", nil, "quaternion w,x,y,z")
	convertCmd.Flags().Float64SliceVar(&eulerVals, "euler", nil, "euler angles yaw,pitch,roll (rad)")
	convertCmd.Flags().Float64SliceVar(&axisAngleVals, "axis-angle", nil, "axis-angle vector x,y,z (norm = angle, rad)")
	convertCmd.Flags().Float64SliceVar(&dcmVals, "dcm", nil, "rotation matrix, 9 values row-major")

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "propagate an attitude scenario",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScenario,
	}
	addScenarioFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot euler angle traces of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [integrator1] [integrator2] ...",
		Short: "compare integrators on the same scenario",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareIntegrators,
	}
	addScenarioFlags(compareCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenario presets",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("presets:")
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
		},
	}

	liveCmd := &cobra.Command{
		Use:   "live [scenario]",
		Short: "propagate with a live terminal view",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	rootCmd.AddCommand(convertCmd, runCmd, listCmd, plotCmd, exportCmd,
		exportCSVCmd, exportJSONCmd, compareCmd, presetsCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().StringVar(&integrator, "integrator", "rk4", "integrator (euler, rk4)")
	cmd.Flags().StringVar(&frameName, "frame", "body", "rate frame (body, inertial)")
	cmd.Flags().Float64Var(&yaw, "yaw", 0, "initial yaw (rad)")
	cmd.Flags().Float64Var(&pitch, "pitch", 0, "initial pitch (rad)")
	cmd.Flags().Float64Var(&roll, "roll", 0, "initial roll (rad)")
	cmd.Flags().Float64Var(&wx, "wx", 0, "x angular rate (rad/s)")
	cmd.Flags().Float64Var(&wy, "wy", 0, "y angular rate (rad/s)")
	cmd.Flags().Float64Var(&wz, "wz", 0, "z angular rate (rad/s)")
	cmd.Flags().StringVar(&profile, "profile", "constant", "rate profile (constant, sine, free_body)")
	cmd.Flags().Float64Var(&freq, "freq", config.DefaultFreq, "sine profile frequency (Hz)")
	cmd.Flags().Float64SliceVar(&amplitude, "amplitude", nil, "sine profile amplitude ax,ay,az")
	cmd.Flags().Float64SliceVar(&inertia, "inertia", nil, "free_body principal inertias I1,I2,I3")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// buildConfig resolves the scenario configuration: preset, then config
// file, then explicit flags.
func buildConfig(cmd *cobra.Command) (*config.Config, string, error) {
	cfg := config.DefaultConfig()
	name := "custom"

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		*cfg = *p
		name = preset
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		name = "config"
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("frame") {
		cfg.Frame = frameName
	}
	if flags.Changed("yaw") {
		cfg.Attitude.Yaw = yaw
	}
	if flags.Changed("pitch") {
		cfg.Attitude.Pitch = pitch
	}
	if flags.Changed("roll") {
		cfg.Attitude.Roll = roll
	}
	if flags.Changed("wx") {
		cfg.Rate.WX = wx
	}
	if flags.Changed("wy") {
		cfg.Rate.WY = wy
	}
	if flags.Changed("wz") {
		cfg.Rate.WZ = wz
	}
	if flags.Changed("profile") {
		cfg.Rate.Profile = profile
	}
	if flags.Changed("freq") {
		cfg.Rate.Freq = freq
	}
	if flags.Changed("amplitude") {
		cfg.Rate.Amplitude = amplitude
	}
	if flags.Changed("inertia") {
		cfg.Rate.Inertia = inertia
	}

	return cfg, name, nil
}

func getStepper(name string) (kinematics.Stepper, error) {
	switch name {
	case "euler":
		return integrators.NewEuler(), nil
	case "rk4", "":
		return integrators.NewRK4(), nil
	default:
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
}

func runConvert(cmd *cobra.Command, args []string) error {
	var q rotation.Quat

	switch {
	case len(quatVals) > 0:
		if len(quatVals) != 4 {
			return fmt.Errorf("--quat needs 4 values, got %d", len(quatVals))
		}
		q = rotation.Quat{W: quatVals[0], X: quatVals[1], Y: quatVals[2], Z: quatVals[3]}.Normalized()
	case len(eulerVals) > 0:
		if len(eulerVals) != 3 {
			return fmt.Errorf("--euler needs 3 values, got %d", len(eulerVals))
		}
		q = rotation.FromEuler(rotation.Euler{Yaw: eulerVals[0], Pitch: eulerVals[1], Roll: eulerVals[2]})
	case len(axisAngleVals) > 0:
		if len(axisAngleVals) != 3 {
			return fmt.Errorf("--axis-angle needs 3 values, got %d", len(axisAngleVals))
		}
		q = rotation.FromAxisAngle(rotation.AxisAngle{X: axisAngleVals[0], Y: axisAngleVals[1], Z: axisAngleVals[2]})
	case len(dcmVals) > 0:
		if len(dcmVals) != 9 {
			return fmt.Errorf("--dcm needs 9 values, got %d", len(dcmVals))
		}
		var m rotation.DCM
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				m[i][j] = dcmVals[i*3+j]
			}
		}
		q = rotation.FromDCM(m).Normalized()
	default:
		return fmt.Errorf("provide one of --quat, --euler, --axis-angle, --dcm")
	}

	e := q.Euler()
	rollDeg, pitchDeg, yawDeg := e.Degrees()
	aa := q.AxisAngle()
	m := q.DCM()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "quaternion\t(%.6f, %.6f, %.6f, %.6f)\n", q.W, q.X, q.Y, q.Z)
	fmt.Fprintf(w, "euler (rad)\tyaw=%.6f pitch=%.6f roll=%.6f\n", e.Yaw, e.Pitch, e.Roll)
	fmt.Fprintf(w, "euler (deg)\tyaw=%.2f pitch=%.2f roll=%.2f\n", yawDeg, pitchDeg, rollDeg)
	fmt.Fprintf(w, "axis\t(%.6f, %.6f, %.6f)\n", aa.Axis().X, aa.Axis().Y, aa.Axis().Z)
	fmt.Fprintf(w, "angle (rad)\t%.6f\n", aa.Angle())
	for i := 0; i < 3; i++ {
		fmt.Fprintf(w, "dcm[%d]\t[%+.6f %+.6f %+.6f]\n", i, m[i][0], m[i][1], m[i][2])
	}
	return w.Flush()
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, name, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		name = args[0]
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	stepper, err := getStepper(cfg.Integrator)
	if err != nil {
		return err
	}
	frame, err := kinematics.ParseFrame(cfg.Frame)
	if err != nil {
		return err
	}
	rates, err := cfg.RateSource()
	if err != nil {
		return err
	}

	prop := kinematics.New(stepper, rates)

	fmt.Printf("propagating %s scenario...\n", name)
	start := time.Now()

	result, err := prop.Run(context.Background(), cfg.InitialAttitude(), kinematics.Config{
		Dt:       cfg.Dt,
		Duration: cfg.Duration,
		Frame:    frame,
	})
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(name, cfg.Dt, cfg.Duration, cfg.Integrator, frame.String(), result)
	if err != nil {
		return err
	}

	final := result.Attitudes[len(result.Attitudes)-1]
	e := final.Euler()
	rollDeg, pitchDeg, yawDeg := e.Degrees()

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", len(result.Times)-1)
	fmt.Printf("norm drift: %.2e\n", result.NormDrift)
	fmt.Printf("final attitude: yaw=%.2f pitch=%.2f roll=%.2f deg\n", yawDeg, pitchDeg, rollDeg)

	return nil
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
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tDURATION\tDT\tINTEG\tFRAME\tDRIFT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%s\t%s\t%.2e\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Integrator,
			run.Frame,
			run.NormDrift,
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

	states, _, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("samples: %d\n\n", len(states))

	for _, col := range []string{"yaw", "pitch", "roll"} {
		idx := storage.StateColumn(col)
		data := make([]float64, len(states))
		for i := range states {
			if idx < len(states[i]) {
				data[i] = states[i][idx] * 180 / math.Pi
			}
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(col+" (deg)"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "id\t%s\n", meta.ID)
	fmt.Fprintf(w, "scenario\t%s\n", meta.Scenario)
	fmt.Fprintf(w, "timestamp\t%s\n", meta.Timestamp.Format(time.RFC3339))
	fmt.Fprintf(w, "dt\t%f\n", meta.Dt)
	fmt.Fprintf(w, "duration\t%f\n", meta.Duration)
	fmt.Fprintf(w, "integrator\t%s\n", meta.Integrator)
	fmt.Fprintf(w, "frame\t%s\n", meta.Frame)
	fmt.Fprintf(w, "norm drift\t%.2e\n", meta.NormDrift)
	return w.Flush()
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	states, times, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	if len(states) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"time", "qw", "qx", "qy", "qz", "yaw", "pitch", "roll", "wx", "wy", "wz"}
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

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	states, times, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	result := &kinematics.Result{
		Times:     times,
		Attitudes: make([]rotation.Quat, len(states)),
		Rates:     make([]rotation.Vec3, len(states)),
		NormDrift: meta.NormDrift,
	}
	for i, s := range states {
		if len(s) < 10 {
			continue
		}
		result.Attitudes[i] = rotation.Quat{W: s[0], X: s[1], Y: s[2], Z: s[3]}
		result.Rates[i] = rotation.Vec3{X: s[7], Y: s[8], Z: s[9]}
	}

	return storage.ExportJSONStdout(meta.Scenario, meta.Integrator, meta.Frame, meta.Dt, meta.Duration, result)
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, name, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	frame, err := kinematics.ParseFrame(cfg.Frame)
	if err != nil {
		return err
	}
	kcfg := kinematics.Config{Dt: cfg.Dt, Duration: cfg.Duration, Frame: frame}
	q0 := cfg.InitialAttitude()

	// Fine-dt RK4 run as reference.
	rates, err := cfg.RateSource()
	if err != nil {
		return err
	}
	refCfg := kcfg
	refCfg.Dt = kcfg.Dt / 10
	refResult, err := kinematics.New(integrators.NewRK4(), rates).Run(context.Background(), q0, refCfg)
	if err != nil {
		return err
	}
	ref := refResult.Attitudes[len(refResult.Attitudes)-1]

	fmt.Printf("comparing integrators on %s (dt=%.4f, duration=%.1fs)\n\n", name, cfg.Dt, cfg.Duration)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tFINAL_YAW\tATT_ERR_RAD\tNORM_DRIFT\tTIME_MS")

	for _, intName := range args {
		stepper, err := getStepper(intName)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", intName, err)
			continue
		}

		// Each run needs a fresh rate source; stateful profiles advance.
		rates, err := cfg.RateSource()
		if err != nil {
			return err
		}

		start := time.Now()
		result, err := kinematics.New(stepper, rates).Run(context.Background(), q0, kcfg)
		elapsed := time.Since(start)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", intName, err)
			continue
		}

		final := result.Attitudes[len(result.Attitudes)-1]
		attErr := math.Abs(ref.Inverse().Mul(final).AxisAngle().Angle())

		fmt.Fprintf(w, "%s\t%.4f\t%.2e\t%.2e\t%.2f\n",
			intName,
			final.Euler().Yaw,
			attErr,
			result.NormDrift,
			float64(elapsed.Microseconds())/1000,
		)
	}

	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, name, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		name = args[0]
	}

	stepper, err := getStepper(cfg.Integrator)
	if err != nil {
		return err
	}
	frame, err := kinematics.ParseFrame(cfg.Frame)
	if err != nil {
		return err
	}
	rates, err := cfg.RateSource()
	if err != nil {
		return err
	}

	m := viz.NewModel(stepper, rates, cfg.InitialAttitude(), cfg.Dt, frame, name, frameRate)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
