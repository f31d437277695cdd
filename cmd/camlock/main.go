package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/san-kum/camlock/internal/config"
	"github.com/san-kum/camlock/internal/export"
	"github.com/san-kum/camlock/internal/geom"
	"github.com/san-kum/camlock/internal/optim"
	"github.com/san-kum/camlock/internal/sampler"
	"github.com/san-kum/camlock/internal/storage"
	"github.com/san-kum/camlock/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir      string
	startAngle   float64
	endAngle     float64
	displacement float64
	radius       float64
	segments     int
	samples      int
	law          string
	quadratic    bool
	pointsFile   string
	frictionFile string
	pngFile      string
	configFile   string
	preset       string
	saveRun      bool
	jsonOut      string
	availableMu  float64
	axes         []string
	workers      int
)

// Friction chart size in inches.
const pngWidth, pngHeight = 8.0, 5.0

func main() {
	rootCmd := &cobra.Command{
		Use:           "camlock",
		Short:         "friction locking cam profile generator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".camlock", "run archive directory")

	generateCmd := &cobra.Command{
		Use:   "generate [output.svg]",
		Short: "generate a cam profile drawing",
		Args:  cobra.ExactArgs(1),
		RunE:  generate,
	}
	f := generateCmd.Flags()
	f.Float64VarP(&startAngle, "start-angle", "s", config.DefaultStartAngle, "start angle in degrees")
	f.Float64VarP(&endAngle, "end-angle", "e", config.DefaultEndAngle, "end angle in degrees")
	f.Float64VarP(&displacement, "displacement", "d", config.DefaultDisplacement, "support distance gained over the sweep, inches")
	f.Float64VarP(&radius, "radius", "r", config.DefaultRadius, "support distance at the start angle, inches")
	f.IntVar(&segments, "segments", config.DefaultSegments, "spline segments")
	f.IntVar(&samples, "samples", config.DefaultSamples, "samples per segment")
	f.StringVar(&law, "law", config.DefaultLaw, "displacement law ("+strings.Join(geom.LawNames(), ", ")+")")
	f.BoolVarP(&quadratic, "quadratic", "q", false, "shorthand for --law quadratic")
	f.StringVarP(&pointsFile, "pts", "p", "", "write sampled points to file")
	f.StringVarP(&frictionFile, "friction", "f", "", "write required friction to file")
	f.StringVar(&pngFile, "png", "", "write a friction chart PNG")
	f.StringVar(&configFile, "config", "", "config file (yaml)")
	f.StringVar(&preset, "preset", "", "start from a named preset")
	f.BoolVar(&saveRun, "save", false, "archive the run under --data")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list archived runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot support distance and friction of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&jsonOut, "output", "o", "", "output file (default stdout)")

	inspectCmd := &cobra.Command{
		Use:   "inspect [run_id]",
		Short: "browse a run in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  inspectRun,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "search a parameter grid for the largest locking displacement",
		Args:  cobra.NoArgs,
		RunE:  sweep,
	}
	sweepCmd.Flags().Float64Var(&availableMu, "mu", 0.1, "available friction coefficient")
	sweepCmd.Flags().StringArrayVar(&axes, "axis", nil, "axis as name=lo:hi:n or name=v1,v2 (repeatable)")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "concurrent evaluations (default: number of CPUs)")
	sweepCmd.Flags().StringVar(&configFile, "config", "", "base config file (yaml)")
	sweepCmd.Flags().StringVar(&preset, "preset", "", "base preset")

	rootCmd.AddCommand(generateCmd, presetsCmd, listCmd, plotCmd, exportJSONCmd, inspectCmd, sweepCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, viz.ErrorStyle.Render("error: ")+err.Error())
		os.Exit(1)
	}
}

// resolveConfig layers preset, config file and explicitly set flags on top
// of the defaults, in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("start-angle") {
		cfg.StartAngle = startAngle
	}
	if flags.Changed("end-angle") {
		cfg.EndAngle = endAngle
	}
	if flags.Changed("displacement") {
		cfg.Displacement = displacement
	}
	if flags.Changed("radius") {
		cfg.Radius = radius
	}
	if flags.Changed("segments") {
		cfg.Segments = segments
	}
	if flags.Changed("samples") {
		cfg.Samples = samples
	}
	if flags.Changed("law") {
		cfg.Law = law
	}
	if quadratic {
		cfg.Law = geom.Quadratic.String()
	}
	if flags.Changed("pts") {
		cfg.Output.Points = pointsFile
	}
	if flags.Changed("friction") {
		cfg.Output.Friction = frictionFile
	}
	if flags.Changed("png") {
		cfg.Output.PNG = pngFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func generate(cmd *cobra.Command, args []string) error {
	output := args[0]

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	needFriction := cfg.Output.Friction != "" || cfg.Output.PNG != "" || saveRun
	sc, err := cfg.Sampler(needFriction)
	if err != nil {
		return err
	}
	res, err := sampler.Run(sc)
	if err != nil {
		return err
	}

	if err := writeFile(output, func(w io.Writer) error {
		return export.WriteSVG(w, res, cfg.Output.DPI)
	}); err != nil {
		return err
	}
	if cfg.Output.Points != "" {
		if err := writeFile(cfg.Output.Points, func(w io.Writer) error {
			return export.WritePoints(w, res.Points)
		}); err != nil {
			return err
		}
	}
	if cfg.Output.Friction != "" {
		if err := writeFile(cfg.Output.Friction, func(w io.Writer) error {
			return export.WriteFriction(w, res.Friction)
		}); err != nil {
			return err
		}
	}
	if cfg.Output.PNG != "" {
		if err := writeFile(cfg.Output.PNG, func(w io.Writer) error {
			return export.WritePNG(w, res.Friction, pngWidth, pngHeight, cfg.Output.DPI)
		}); err != nil {
			return err
		}
	}

	fmt.Fprintln(os.Stderr, viz.Subtle.Render(fmt.Sprintf("rms error: %.3g in", res.RMSError)))
	for _, w := range res.Warnings {
		fmt.Fprintln(os.Stderr, viz.WarnStyle.Render("warning: "+w.String()))
	}

	fmt.Printf("%s %s\n", viz.TitleStyle.Render("wrote"), output)
	fmt.Printf("law: %s, %d points\n", cfg.Law, len(res.Points))
	if lo, hi, ok := sampler.MuRange(res.Friction); ok {
		fmt.Printf("mu: %.4f to %.4f\n", lo, hi)
	}

	if saveRun {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		name := strings.TrimSuffix(filepath.Base(output), filepath.Ext(output))
		runID, err := st.Save(name, res)
		if err != nil {
			return err
		}
		fmt.Printf("saved: %s\n", runID)
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tLAW\tANGLES\tRADIUS\tDISPLACEMENT\tGRID")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%.0f-%.0f\t%.3f\t%.3f\t%dx%d\n",
			name, p.Law, p.StartAngle, p.EndAngle, p.Radius, p.Displacement, p.Segments, p.Samples)
	}
	return w.Flush()
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
	fmt.Fprintln(w, "ID\tLAW\tANGLES\tRADIUS\tDISPLACEMENT\tMU")
	for _, run := range runs {
		mu := "-"
		if run.Friction != nil {
			mu = fmt.Sprintf("%.4f-%.4f", run.Friction.Min, run.Friction.Max)
		}
		fmt.Fprintf(w, "%s\t%s\t%.1f-%.1f\t%.3f\t%.3f\t%s\n",
			run.ID, run.Law, run.StartAngle, run.EndAngle, run.Radius, run.Displacement, mu)
	}
	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, []storage.Sample, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	smp, err := st.LoadSamples(runID)
	if err != nil {
		return nil, nil, err
	}
	return meta, smp, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, smp, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if len(smp) == 0 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("law: %s\n", meta.Law)
	fmt.Printf("samples: %d\n\n", len(smp))

	fmt.Println(viz.SupportChart(smp, 80, 10))
	fmt.Println()
	if chart := viz.FrictionChart(smp, 80, 10); chart != "" {
		fmt.Println(chart)
		fmt.Println()
	}
	fmt.Print(viz.ProfileCanvas(smp, 40, 20).String())
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, smp, err := loadRun(args[0])
	if err != nil {
		return err
	}
	doc := export.NewDocument(meta, smp)

	if jsonOut == "" {
		return export.WriteJSON(os.Stdout, doc)
	}
	if err := writeFile(jsonOut, func(w io.Writer) error {
		return export.WriteJSON(w, doc)
	}); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", jsonOut)
	return nil
}

func inspectRun(cmd *cobra.Command, args []string) error {
	meta, smp, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return viz.RunInspector(meta, smp)
}

func sweep(cmd *cobra.Command, args []string) error {
	if len(axes) == 0 {
		return fmt.Errorf("at least one --axis is required")
	}
	base, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	parsed := make([]optim.Axis, 0, len(axes))
	for _, spec := range axes {
		name, values, ok := strings.Cut(spec, "=")
		if !ok {
			return fmt.Errorf("invalid axis %q, want name=values", spec)
		}
		axis, err := optim.ParseAxis(name, values)
		if err != nil {
			return err
		}
		parsed = append(parsed, axis)
	}

	g := optim.NewGridSearch(base, parsed...)
	if workers > 0 {
		g.SetWorkers(workers)
	}
	best, all, err := g.Search(context.Background(), availableMu)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	header := make([]string, 0, len(parsed)+2)
	for _, a := range parsed {
		header = append(header, strings.ToUpper(a.Name))
	}
	fmt.Fprintln(w, strings.Join(append(header, "MU_MAX", "LOCKS"), "\t"))
	for _, c := range all {
		row := make([]string, 0, len(parsed)+2)
		for _, a := range parsed {
			row = append(row, fmt.Sprintf("%g", c.Values[a.Name]))
		}
		status := fmt.Sprintf("%t", c.Locks)
		if c.Err != nil {
			status = viz.ErrorStyle.Render(c.Err.Error())
		}
		row = append(row, fmt.Sprintf("%.4f", c.MuMax), status)
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	if ferr := w.Flush(); ferr != nil {
		return ferr
	}

	if err != nil {
		return err
	}
	fmt.Printf("\n%s displacement %.4f in over %.1f-%.1f deg, mu max %.4f\n",
		viz.TitleStyle.Render("best:"), best.Config.Displacement, best.Config.StartAngle, best.Config.EndAngle, best.MuMax)
	return nil
}
