package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/geodesic-lab/geotrace/internal/analysis"
	"github.com/geodesic-lab/geotrace/internal/config"
	"github.com/geodesic-lab/geotrace/internal/export"
	"github.com/geodesic-lab/geotrace/internal/geodesic"
	"github.com/geodesic-lab/geotrace/internal/storage"
	"github.com/geodesic-lab/geotrace/internal/surface"
	"github.com/geodesic-lab/geotrace/internal/viz"
)

var (
	dataDir    string
	dt         float64
	steps      int
	maxLength  float64
	integrator string
	normalize  bool
	u0, v0     float64
	du0, dv0   float64
	subSteps   int
	frameRate  int
	configFile string
	preset     string
	// Formula surface expressions
	exprX, exprY, exprZ string
	// Plot axis selection
	coord int
	// Shooting target
	toU, toV  float64
	tolerance float64
	// SVG output
	svgWidth  int
	svgHeight int
	outFile   string
	// Fan rays
	rayCount int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "geotrace",
		Short: "geodesic tracing on parametric surfaces",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".geotrace", "data directory")

	traceCmd := &cobra.Command{
		Use:   "trace [surface]",
		Short: "trace a geodesic and store the run",
		Args:  cobra.ExactArgs(1),
		RunE:  runTrace,
	}
	addTraceFlags(traceCmd)
	traceCmd.Flags().Float64Var(&maxLength, "max-length", 0, "stop after this arc length (0 = unlimited)")

	liveCmd := &cobra.Command{
		Use:   "live [surface]",
		Short: "animate a geodesic in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addTraceFlags(liveCmd)
	liveCmd.Flags().IntVar(&subSteps, "substeps", config.DefaultSubSteps, "integration steps per frame")
	liveCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFrameRate, "frame rate")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot coordinate history of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "parameter-space scatter plot of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a coordinate",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&coord, "coord", 0, "coordinate (0 = u, 1 = v)")

	compareCmd := &cobra.Command{
		Use:   "compare [surface] [integrator1] [integrator2] ...",
		Short: "compare integrators on the same surface",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareIntegrators,
	}
	addTraceFlags(compareCmd)

	shootCmd := &cobra.Command{
		Use:   "shoot [surface]",
		Short: "find the geodesic connecting two points",
		Args:  cobra.ExactArgs(1),
		RunE:  runShoot,
	}
	shootCmd.Flags().Float64Var(&u0, "u", 0, "start u")
	shootCmd.Flags().Float64Var(&v0, "v", 0, "start v")
	shootCmd.Flags().Float64Var(&toU, "to-u", 1, "target u")
	shootCmd.Flags().Float64Var(&toV, "to-v", 0, "target v")
	shootCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	shootCmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "step budget per attempt")
	shootCmd.Flags().Float64Var(&tolerance, "tolerance", 0.02, "acceptable miss distance")

	fanCmd := &cobra.Command{
		Use:   "fan [surface]",
		Short: "trace a fan of geodesics radiating from one point",
		Args:  cobra.ExactArgs(1),
		RunE:  runFan,
	}
	addTraceFlags(fanCmd)
	fanCmd.Flags().IntVar(&rayCount, "rays", 12, "number of headings")
	fanCmd.Flags().StringVarP(&outFile, "out", "o", "", "write the frame as SVG instead of printing")

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
		RunE:  exportJSONRun,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export the parameter trace as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 640, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 480, "image height")
	exportSVGCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets [surface]",
		Short: "list available presets for a surface",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets(args[0])
			if len(names) == 0 {
				fmt.Printf("no presets for surface: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range names {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	surfacesCmd := &cobra.Command{
		Use:   "surfaces",
		Short: "list builtin surfaces",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range surface.Names() {
				fmt.Println(name)
			}
			fmt.Println("\nany surface also accepts --x/--y/--z formula expressions")
			return nil
		},
	}

	rootCmd.AddCommand(traceCmd, liveCmd, listCmd, plotCmd, phaseCmd, analyzeCmd,
		compareCmd, shootCmd, fanCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, presetsCmd, surfacesCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addTraceFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "step budget")
	cmd.Flags().StringVar(&integrator, "integrator", geodesic.DefaultIntegrator, "integrator (euler, rk4)")
	cmd.Flags().BoolVar(&normalize, "normalize", false, "rescale initial velocity to unit metric speed")
	cmd.Flags().Float64Var(&u0, "u", 0, "initial u")
	cmd.Flags().Float64Var(&v0, "v", 0, "initial v")
	cmd.Flags().Float64Var(&du0, "du", 1, "initial du/dt")
	cmd.Flags().Float64Var(&dv0, "dv", 0, "initial dv/dt")
	cmd.Flags().StringVar(&exprX, "x", "", "x(u,v) formula expression")
	cmd.Flags().StringVar(&exprY, "y", "", "y(u,v) formula expression")
	cmd.Flags().StringVar(&exprZ, "z", "", "z(u,v) formula expression")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig merges preset, config file and flags, in rising
// priority: defaults < preset < file < explicitly set flags.
func resolveConfig(cmd *cobra.Command, surfaceName string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Surface = surfaceName

	if preset != "" {
		p := config.GetPreset(surfaceName, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(surfaceName))
		}
		c := *p
		cfg = &c
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		loaded.Surface = surfaceName
		cfg = loaded
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("steps") {
		cfg.Steps = steps
	}
	if cmd.Flags().Changed("max-length") {
		cfg.MaxLength = maxLength
	}
	if cmd.Flags().Changed("integrator") {
		cfg.Integrator = integrator
	}
	if cmd.Flags().Changed("normalize") {
		cfg.Normalize = normalize
	}
	if cmd.Flags().Changed("u") {
		cfg.Init.U = u0
	}
	if cmd.Flags().Changed("v") {
		cfg.Init.V = v0
	}
	if cmd.Flags().Changed("du") {
		cfg.Init.DU = du0
	}
	if cmd.Flags().Changed("dv") {
		cfg.Init.DV = dv0
	}
	if cmd.Flags().Changed("substeps") {
		cfg.SubSteps = subSteps
	}
	if cmd.Flags().Changed("fps") {
		cfg.FrameRate = frameRate
	}
	if cfg.SubSteps <= 0 {
		cfg.SubSteps = config.DefaultSubSteps
	}
	if cfg.FrameRate <= 0 {
		cfg.FrameRate = config.DefaultFrameRate
	}
	if exprX != "" || exprY != "" || exprZ != "" {
		if exprX == "" || exprY == "" || exprZ == "" {
			return nil, fmt.Errorf("formula surfaces need all of --x, --y, --z")
		}
		cfg.Formula = &config.FormulaConfig{X: exprX, Y: exprY, Z: exprZ}
	}

	return cfg, nil
}

func runTrace(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	surf, _, _, err := cfg.BuildSurface()
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("tracing geodesic on %s...\n", cfg.Surface)
	start := time.Now()

	path, err := geodesic.Trace(context.Background(), surf, cfg.InitState(), cfg.TraceConfig())
	if err != nil {
		return err
	}

	elapsed := time.Since(start)
	stats := analysis.Stats(surf, path, cfg.Dt)

	runID, err := st.Save(storage.RunMetadata{
		Surface:    cfg.Surface,
		Dt:         cfg.Dt,
		Steps:      cfg.Steps,
		MaxLength:  cfg.MaxLength,
		Integrator: cfg.Integrator,
		Normalized: cfg.Normalize,
		InitU:      cfg.Init.U,
		InitV:      cfg.Init.V,
		InitDU:     cfg.Init.DU,
		InitDV:     cfg.Init.DV,
		ArcLength:  stats.ArcLength,
	}, path, surf)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("points: %d\n", stats.Points)
	if stats.ValidPrefix < stats.Points {
		fmt.Printf("degenerate after point %d (NaN state)\n", stats.ValidPrefix)
	}
	fmt.Printf("arc length: %.6f\n", stats.ArcLength)
	fmt.Printf("mean metric speed: %.6f\n", stats.MeanSpeed)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	surf, uRange, vRange, err := cfg.BuildSurface()
	if err != nil {
		return err
	}

	m := viz.NewModel(surf, uRange, vRange, cfg.Surface, cfg.Integrator, cfg.InitState(), cfg.SubSteps, cfg.FrameRate)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
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
	fmt.Fprintln(w, "ID\tSURFACE\tTIME\tSTEPS\tDT\tINTEG\tLENGTH")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.4f\t%s\t%.4f\n",
			run.ID,
			run.Surface,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.Dt,
			run.Integrator,
			run.ArcLength,
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

	path, _, _, err := st.LoadPath(runID)
	if err != nil {
		return err
	}
	if len(path) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("surface: %s\n", meta.Surface)
	fmt.Printf("samples: %d\n\n", len(path))

	captions := []string{"u vs time", "v vs time"}
	for c := 0; c < 2; c++ {
		data := analysis.CoordinateHistory(path, c)
		if len(data) < 2 {
			fmt.Println("nothing to plot (path degenerate at start)")
			break
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(captions[c]),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	path, _, _, err := st.LoadPath(runID)
	if err != nil {
		return err
	}

	uData := analysis.CoordinateHistory(path, 0)
	vData := analysis.CoordinateHistory(path, 1)
	if len(uData) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("parameter trace: %s\n", meta.ID)
	fmt.Printf("surface: %s\n\n", meta.Surface)

	uMin, uMax := uData[0], uData[0]
	vMin, vMax := vData[0], vData[0]
	for i := range uData {
		if uData[i] < uMin {
			uMin = uData[i]
		}
		if uData[i] > uMax {
			uMax = uData[i]
		}
		if vData[i] < vMin {
			vMin = vData[i]
		}
		if vData[i] > vMax {
			vMax = vData[i]
		}
	}
	uRange := uMax - uMin
	vRange := vMax - vMin
	if uRange == 0 {
		uRange = 1
	}
	if vRange == 0 {
		vRange = 1
	}

	width := 70
	height := 20
	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = make([]rune, width)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	for i := range uData {
		px := int(float64(width-1) * (uData[i] - uMin) / uRange)
		py := int(float64(height-1) * (vData[i] - vMin) / vRange)
		py = height - 1 - py
		if px < 0 || px >= width || py < 0 || py >= height {
			continue
		}
		switch {
		case i < len(uData)/3:
			grid[py][px] = '.'
		case i < 2*len(uData)/3:
			grid[py][px] = 'o'
		default:
			grid[py][px] = '●'
		}
	}

	fmt.Printf("  %.2f ┌", vMax)
	for i := 0; i < width; i++ {
		fmt.Print("─")
	}
	fmt.Println("┐")
	for i := range grid {
		if i == height/2 {
			fmt.Printf("  %.2f │", (vMax+vMin)/2)
		} else {
			fmt.Print("       │")
		}
		fmt.Print(string(grid[i]))
		fmt.Println("│")
	}
	fmt.Printf("  %.2f └", vMin)
	for i := 0; i < width; i++ {
		fmt.Print("─")
	}
	fmt.Println("┘")
	fmt.Printf("       %.2f", uMin)
	for i := 0; i < width-20; i++ {
		fmt.Print(" ")
	}
	fmt.Printf("%.2f\n", uMax)
	fmt.Printf("\nlegend: . = early, o = middle, ● = late (u horizontal, v vertical)\n")

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	path, _, times, err := st.LoadPath(runID)
	if err != nil {
		return err
	}

	data := analysis.CoordinateHistory(path, coord)
	if len(data) < 2 {
		return fmt.Errorf("no data")
	}

	name := "u"
	if coord == 1 {
		name = "v"
	}
	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("surface: %s, coordinate: %s\n\n", meta.Surface, name)

	ps := analysis.PowerSpectrum(analysis.Pad(data))

	graph := asciigraph.Plot(analysis.SpectrumWindow(ps),
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("power spectrum (%s)", name)),
	)
	fmt.Println(graph)
	fmt.Println()

	duration := meta.Dt * float64(len(data))
	if len(times) > 1 {
		duration = times[len(times)-1] - times[0]
	}
	freq := analysis.DominantFrequency(ps, duration)
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}

	return nil
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}
	integrators := args[1:]

	surf, _, _, err := cfg.BuildSurface()
	if err != nil {
		return err
	}

	fmt.Printf("comparing integrators on %s (dt=%.4f, steps=%d)\n\n", cfg.Surface, cfg.Dt, cfg.Steps)
	fmt.Printf("%-10s  %12s  %12s  %12s  %10s\n", "integrator", "final_u", "final_v", "arc_length", "time_ms")

	for _, name := range integrators {
		tc := cfg.TraceConfig()
		tc.Integrator = name

		start := time.Now()
		path, err := geodesic.Trace(context.Background(), surf, cfg.InitState(), tc)
		elapsed := time.Since(start)
		if err != nil {
			fmt.Printf("%-10s  error: %v\n", name, err)
			continue
		}

		last := path[len(path)-1]
		fmt.Printf("%-10s  %12.6f  %12.6f  %12.6f  %10.2f\n",
			name, last.U, last.V, path.Length(surf), float64(elapsed.Microseconds())/1000)
	}

	return nil
}

func runShoot(cmd *cobra.Command, args []string) error {
	surf, err := surface.Lookup(args[0])
	if err != nil {
		return err
	}

	sc := geodesic.DefaultShootConfig()
	sc.Dt = dt
	sc.MaxSteps = steps
	sc.Tolerance = tolerance

	from := geodesic.Point{U: u0, V: v0}
	to := geodesic.Point{U: toU, V: toV}

	fmt.Printf("shooting from (%.3f, %.3f) to (%.3f, %.3f) on %s...\n", from.U, from.V, to.U, to.V, args[0])
	start := time.Now()

	res, err := geodesic.Shoot(context.Background(), surf, from, to, sc)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", time.Since(start))
	fmt.Printf("heading: %.6f rad\n", res.Heading)
	fmt.Printf("miss distance: %.6f\n", res.Miss)
	fmt.Printf("path points: %d\n", len(res.Path))
	fmt.Printf("arc length: %.6f\n", res.Path.Length(surf))
	return nil
}

func runFan(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	surf, uRange, vRange, err := cfg.BuildSurface()
	if err != nil {
		return err
	}

	origin := geodesic.Point{U: cfg.Init.U, V: cfg.Init.V}
	fmt.Printf("tracing %d rays from (%.3f, %.3f) on %s...\n", rayCount, origin.U, origin.V, cfg.Surface)

	paths, err := geodesic.Fan(context.Background(), surf, origin, rayCount, cfg.TraceConfig())
	if err != nil {
		return err
	}

	canvas := viz.NewCanvas(100, 30)
	camera := viz.NewCamera()
	mesh := viz.SurfaceWireframe(surf, uRange, vRange, 28, 28)
	camera.Zoom = viz.FitZoom(mesh)
	viz.Render(canvas, mesh, camera)
	for _, p := range paths {
		viz.Render(canvas, viz.PathWireframe(surf, p), camera)
	}

	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := export.CanvasSVG(f, canvas, 4); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", outFile)
		return nil
	}

	fmt.Println(canvas.String())
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	path, positions, times, err := st.LoadPath(runID)
	if err != nil {
		return err
	}
	if len(path) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"time", "u", "v", "x", "y", "z"}); err != nil {
		return err
	}
	for i := range path {
		row := []string{
			strconv.FormatFloat(times[i], 'f', 6, 64),
			strconv.FormatFloat(path[i].U, 'f', 6, 64),
			strconv.FormatFloat(path[i].V, 'f', 6, 64),
			strconv.FormatFloat(positions[i].X, 'f', 6, 64),
			strconv.FormatFloat(positions[i].Y, 'f', 6, 64),
			strconv.FormatFloat(positions[i].Z, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportJSONRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	path, positions, times, err := st.LoadPath(runID)
	if err != nil {
		return err
	}

	return storage.ExportJSON(os.Stdout, meta, path, positions, times)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	path, _, _, err := st.LoadPath(runID)
	if err != nil {
		return err
	}

	out := os.Stdout
	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	if err := export.PathSVG(out, path, svgWidth, svgHeight); err != nil {
		return err
	}
	if outFile != "" {
		fmt.Printf("wrote %s\n", outFile)
	}
	return nil
}
