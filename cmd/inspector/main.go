package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/inspector/internal/config"
	"github.com/san-kum/inspector/internal/driver"
	"github.com/san-kum/inspector/internal/logging"
	"github.com/san-kum/inspector/internal/physics"
	"github.com/san-kum/inspector/internal/plot"
	"github.com/san-kum/inspector/internal/props"
	"github.com/san-kum/inspector/internal/storage"
	"github.com/san-kum/inspector/internal/tui"
	"github.com/san-kum/inspector/internal/watch"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configFile string
	function   string
	preset     string
	template   string
	plotMode   bool
	plotMin    string
	plotMax    string
	samples    int
	resolution int
	autosave   bool
	watchFile  bool
	sets       []string
	logFile    string
	logLevel   string
	verbose    bool
	dataDir    string
	savePlot   bool
	outPath    string
	asJSON     bool
)

// main registers the inspector commands and runs the interactive window
// when no subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:          "inspector",
		Short:        "live parameter panel for numeric functions",
		SilenceUsage: true,
		RunE:         runInteractive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVarP(&function, "function", "f", "", "function to inspect")
	pf.StringVar(&preset, "preset", "", "use preset parameters")
	pf.StringVar(&template, "template", "", "result template containing $result")
	pf.StringArrayVar(&sets, "set", nil, "edit a field before starting (key=value)")
	pf.StringVar(&plotMin, "min", "", "sweep lower bound (number or parameter name)")
	pf.StringVar(&plotMax, "max", "", "sweep upper bound (number or parameter name)")
	pf.IntVar(&samples, "samples", 0, "sweep sample count")
	pf.IntVar(&resolution, "resolution", 0, "plot resolution")
	pf.StringVar(&logFile, "log-file", "", "log file path (stderr, stdout or a file)")
	pf.StringVar(&logLevel, "log-level", "", "log level")
	pf.StringVar(&dataDir, "data", "", "saved sweep directory")

	rootCmd.Flags().BoolVar(&plotMode, "plot", false, "sweep mode")
	rootCmd.Flags().BoolVar(&autosave, "autosave", true, "apply on every edit")
	rootCmd.Flags().BoolVar(&watchFile, "watch", false, "reload parameters when the config file changes")

	calcCmd := &cobra.Command{
		Use:   "calc",
		Short: "calculate a single result",
		Args:  cobra.NoArgs,
		RunE:  runCalc,
	}
	calcCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log to stderr")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep the plot variable and draw the result",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	sweepCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log to stderr")
	sweepCmd.Flags().BoolVar(&savePlot, "save", false, "store the sweep in the data directory")
	sweepCmd.Flags().StringVarP(&outPath, "out", "o", "", "also write the plot here (.png or .svg)")

	functionsCmd := &cobra.Command{
		Use:   "functions",
		Short: "list functions",
		Args:  cobra.NoArgs,
		RunE:  listFunctions,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [function]",
		Short: "list available presets for a function",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for function: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %-10s %s\n", p, describeParams(config.GetPreset(args[0], p).Params.Store()))
			}
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved sweeps",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "plot a saved sweep",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
	showCmd.Flags().BoolVar(&asJSON, "json", false, "print the run as JSON")

	rootCmd.AddCommand(calcCmd, sweepCmd, functionsCmd, presetsCmd, listCmd, showCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

type session struct {
	cfg    *config.Config
	target physics.Target
	in     *driver.Inspector
	logger *zap.Logger
}

// loadConfig reads --config and lays the command-line flags over it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if function != "" {
		cfg.Function = function
	}
	if preset != "" {
		cfg.Preset = preset
	}
	if template != "" {
		cfg.Template = template
	}
	if flags.Changed("plot") {
		cfg.Plot.Enabled = &plotMode
	}
	if flags.Changed("autosave") {
		cfg.Autosave = &autosave
	}
	if plotMin != "" {
		b := parseBound(plotMin)
		cfg.Plot.Min = &b
	}
	if plotMax != "" {
		b := parseBound(plotMax)
		cfg.Plot.Max = &b
	}
	if samples != 0 {
		cfg.Plot.Samples = samples
	}
	if resolution != 0 {
		cfg.Plot.Resolution = resolution
	}
	if logFile != "" {
		cfg.Log.File = logFile
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if dataDir != "" {
		cfg.Data = dataDir
	}
	return cfg, nil
}

func parseBound(s string) config.Bound {
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return config.Bound{Value: v}
	}
	return config.Bound{Ref: s}
}

// newSession builds the inspector. forcePlot, when non-nil, pins the mode.
func newSession(cmd *cobra.Command, forcePlot *bool) (*session, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if forcePlot != nil {
		cfg.Plot.Enabled = forcePlot
	}
	if verbose && cfg.Log.File == "" {
		cfg.Log.File = "stderr"
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return nil, err
	}

	target, err := physics.NewRegistry().Get(cfg.Function)
	if err != nil {
		return nil, err
	}
	params, opts, err := cfg.Resolve(target)
	if err != nil {
		return nil, err
	}
	opts.Logger = logger

	// A sweep target calculated once still needs its variable, now as an
	// ordinary field.
	if !opts.Plot.Enabled && target.Plot.Enabled && !params.Has(opts.Plot.Variable) {
		x, err := opts.Plot.Min.Resolve(params)
		if err != nil {
			return nil, err
		}
		params.Add(opts.Plot.Variable, props.Float(x))
	}

	in, err := driver.New(target.Func, params, opts)
	if err != nil {
		return nil, err
	}

	for _, kv := range sets {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("--set %q: expected key=value", kv)
		}
		if err := in.Form().Set(strings.TrimSpace(key), value); err != nil {
			return nil, err
		}
	}
	if len(sets) > 0 {
		in.Apply()
	}

	logger.Debug("session ready",
		zap.String("function", target.Name),
		zap.Bool("plot", opts.Plot.Enabled),
		zap.Strings("params", params.Keys()))
	return &session{cfg: cfg, target: target, in: in, logger: logger}, nil
}

func runInteractive(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, nil)
	if err != nil {
		return err
	}

	var w *watch.Watcher
	if watchFile {
		if configFile == "" {
			return fmt.Errorf("--watch needs --config")
		}
		w, err = watch.New(configFile, s.logger)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		if err := w.Start(ctx); err != nil {
			return err
		}
		defer w.Stop()
	}

	return tui.Run(s.in, s.target, w, s.logger)
}

func runCalc(cmd *cobra.Command, args []string) error {
	off := false
	s, err := newSession(cmd, &off)
	if err != nil {
		return err
	}
	defer s.in.Close()

	out := s.in.Calculate()
	fmt.Println(out.Message)
	return out.Err
}

func runSweep(cmd *cobra.Command, args []string) error {
	on := true
	s, err := newSession(cmd, &on)
	if err != nil {
		return err
	}
	defer s.in.Close()

	out := s.in.Calculate()
	if out.Err != nil {
		fmt.Println(out.Message)
		return out.Err
	}

	opts := s.in.Options()
	fmt.Println(plot.Terminal(out.Points, 70, 12, opts.Plot.Variable))
	fmt.Println()
	fmt.Println(out.Message)
	if out.PlotPath != "" {
		fmt.Printf("plot: %s\n", out.PlotPath)
	}

	if outPath != "" {
		if err := plot.Write(outPath, out.Points); err != nil {
			return err
		}
		fmt.Printf("wrote: %s\n", outPath)
	}

	if savePlot {
		lo, _ := opts.Plot.Min.Resolve(s.in.Store())
		hi, _ := opts.Plot.Max.Resolve(s.in.Store())
		st := storage.New(s.cfg.Data)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(storage.Run{
			Function: s.target.Name,
			Variable: opts.Plot.Variable,
			Min:      lo,
			Max:      hi,
			Params:   s.in.Store(),
			Points:   out.Points,
			Message:  out.Message,
		})
		if err != nil {
			return err
		}
		fmt.Printf("saved: %s\n", runID)
	}
	return nil
}

func describeParams(st *props.Store) string {
	parts := make([]string, 0, st.Len())
	for _, p := range st.Properties() {
		parts = append(parts, fmt.Sprintf("%s=%s", p.Name, p.Value))
	}
	return strings.Join(parts, " ")
}

func listFunctions(cmd *cobra.Command, args []string) error {
	reg := physics.NewRegistry()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tMODE\tDESCRIPTION\tDEFAULTS")
	for _, name := range reg.List() {
		t, _ := reg.Get(name)
		mode := "single"
		if t.Plot.Enabled {
			mode = fmt.Sprintf("sweep %s→%s", t.Plot.Min, t.Plot.Max)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, mode, t.Description, describeParams(t.Defaults()))
	}
	return w.Flush()
}

func storeFor(cmd *cobra.Command) (*storage.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return storage.New(cfg.Data), nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := storeFor(cmd)
	if err != nil {
		return err
	}
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no saved sweeps")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFUNCTION\tRANGE\tSAMPLES\tTIMESTAMP")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s [%g, %g]\t%d\t%s\n",
			r.ID, r.Function, r.Variable, r.Min, r.Max, r.Samples,
			r.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st, err := storeFor(cmd)
	if err != nil {
		return err
	}
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	points, err := st.LoadPoints(args[0])
	if err != nil {
		return err
	}

	if asJSON {
		return storage.ExportJSON(os.Stdout, meta, points)
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("function: %s  %s over [%g, %g]\n", meta.Function, meta.Variable, meta.Min, meta.Max)
	for _, p := range meta.Params {
		fmt.Printf("  %-12s %-8s %s\n", p.Name, p.Kind, p.Value)
	}
	fmt.Println()

	if len(points) == 0 {
		fmt.Println("no points")
		return nil
	}
	graph := asciigraph.Plot(plot.Ys(points),
		asciigraph.Height(12),
		asciigraph.Width(70),
		asciigraph.Caption(fmt.Sprintf("%s (%s)", meta.Function, meta.Variable)),
	)
	fmt.Println(graph)
	fmt.Println()
	fmt.Println(meta.Message)
	return nil
}
