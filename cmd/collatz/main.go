package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/san-kum/collatzlab/internal/catalog"
	"github.com/san-kum/collatzlab/internal/collatz"
	"github.com/san-kum/collatzlab/internal/compare"
	"github.com/san-kum/collatzlab/internal/config"
	"github.com/san-kum/collatzlab/internal/export"
	"github.com/san-kum/collatzlab/internal/logging"
	"github.com/san-kum/collatzlab/internal/store"
	"github.com/san-kum/collatzlab/internal/tui"
	"github.com/san-kum/collatzlab/internal/viz"
)

// app carries the resolved configuration shared by every command.
type app struct {
	cfg        *config.Config
	configFile string
	preset     string
	verbose    bool

	gen   *collatz.Generator
	store *store.Store
	theme viz.Theme
	warn  *big.Int

	// interactive reports whether the bare command should open the menu.
	interactive func() bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(isTerminal).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "collatz:", err)
		stop()
		os.Exit(1)
	}
}

func isTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) && isatty.IsTerminal(os.Stdin.Fd())
}

// newRootCmd builds the command tree. interactive decides whether the bare
// command opens the menu or prints help.
func newRootCmd(interactive func() bool) *cobra.Command {
	a := &app{cfg: config.DefaultConfig(), interactive: interactive}

	rootCmd := &cobra.Command{
		Use:           "collatz",
		Short:         "Collatz sequence explorer with arbitrary-precision integers",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.interactive() {
				return a.runMenu(cmd, args)
			}
			return cmd.Help()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file (.yaml or .toml)")
	pf.StringVar(&a.preset, "preset", "", "start from a named preset")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")
	pf.StringVar(&a.cfg.DataDir, "data", config.DefaultDataDir, "data directory for saved sequences")
	pf.StringVar(&a.cfg.Ceiling, "ceiling", config.DefaultCeiling, "recommended maximum start value")
	pf.StringVar(&a.cfg.WarnThreshold, "warn-threshold", config.DefaultWarnThreshold, "start value above which a notice is logged")
	pf.IntVar(&a.cfg.MaxSteps, "max-steps", 0, "abort after this many steps (0 = unbounded)")
	pf.IntVar(&a.cfg.Head, "head", config.DefaultHead, "leading values shown in statistics")
	pf.IntVar(&a.cfg.Tail, "tail", config.DefaultTail, "trailing values shown in statistics")
	pf.StringVar(&a.cfg.Theme, "theme", config.DefaultTheme, "colour theme: "+strings.Join(viz.ThemeNames(), ", "))
	pf.IntVar(&a.cfg.FrameDelayMs, "frame-delay", config.DefaultFrameDelayMs, "animation frame delay in milliseconds")
	pf.Int64Var(&a.cfg.Seed, "seed", 0, "seed for reproducible random draws (0 = crypto random)")

	var (
		example  string
		modeName string
		saveName string
		svgPath  string
		verify   bool
		csvOut   string
	)
	addViewFlags := func(cmd *cobra.Command) {
		cmd.Flags().StringVarP(&modeName, "mode", "m", "static", "view: static, animation, spiral or tree")
		cmd.Flags().StringVar(&svgPath, "svg", "", "also write the view as SVG to this path")
	}

	runCmd := &cobra.Command{
		Use:   "run [number]",
		Short: "analyze a start value",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := resolveStart(args, example)
			if err != nil {
				return err
			}
			return a.analyze(cmd, start, modeName, saveName, svgPath)
		},
	}
	runCmd.Flags().StringVarP(&example, "example", "e", "", "use a catalog sample by key or label")
	runCmd.Flags().StringVarP(&saveName, "save", "s", "", "save the sequence under this name")
	addViewFlags(runCmd)

	randomCmd := &cobra.Command{
		Use:   "random",
		Short: "analyze a random start value up to the ceiling",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := a.randomStart()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "random start: %s\n", collatz.FormatGrouped(start))
			return a.analyze(cmd, start, modeName, saveName, svgPath)
		},
	}
	randomCmd.Flags().StringVarP(&saveName, "save", "s", "", "save the sequence under this name")
	addViewFlags(randomCmd)

	examplesCmd := &cobra.Command{
		Use:   "examples",
		Short: "list the sample start values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "KEY\tLABEL\tSTART")
			for _, e := range catalog.Entries() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", e.Key, e.Label, collatz.FormatGrouped(e.Value))
			}
			return w.Flush()
		},
	}

	loadCmd := &cobra.Command{
		Use:   "load [file]",
		Short: "display a saved sequence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd, args[0], verify, modeName, svgPath)
		},
	}
	loadCmd.Flags().BoolVar(&verify, "verify", false, "fail if the stored sequence breaks the Collatz rule")
	addViewFlags(loadCmd)

	compareCmd := &cobra.Command{
		Use:   "compare [a] [b]",
		Short: "compare two start values",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.compare(cmd, args[0], args[1])
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved sequences",
		Args:  cobra.NoArgs,
		RunE:  a.list,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [file]",
		Short: "export a saved sequence as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.exportCSV(cmd, args[0], csvOut)
		},
	}
	exportCSVCmd.Flags().StringVarP(&csvOut, "out", "o", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list configuration presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tMAX STEPS\tHEAD\tTAIL\tTHEME\tFRAME")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\t%dms\n", name, p.MaxSteps, p.Head, p.Tail, p.Theme, p.FrameDelayMs)
			}
			return w.Flush()
		},
	}

	menuCmd := &cobra.Command{
		Use:   "menu",
		Short: "open the interactive menu",
		Args:  cobra.NoArgs,
		RunE:  a.runMenu,
	}

	rootCmd.AddCommand(runCmd, randomCmd, examplesCmd, loadCmd, compareCmd, listCmd, exportCSVCmd, presetsCmd, menuCmd)
	return rootCmd
}

// setup layers preset, config file and explicit flags, then builds the
// shared generator and store.
func (a *app) setup(cmd *cobra.Command) error {
	logging.SetOutput(cmd.ErrOrStderr())
	logging.SetVerbose(a.verbose)
	log := logging.Logger()

	changed := make(map[string]bool)
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if a.preset != "" {
		p := config.GetPreset(a.preset)
		if p == nil {
			return fmt.Errorf("unknown preset: %s (available: %s)", a.preset, strings.Join(config.ListPresets(), ", "))
		}
		a.cfg.Merge(p, changed)
		log.Debug().Str("preset", a.preset).Msg("preset applied")
	}
	if a.configFile != "" {
		fc, err := config.Load(a.configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		a.cfg.Merge(fc, changed)
		log.Debug().Str("path", a.configFile).Msg("config loaded")
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	opts, err := a.cfg.GeneratorOptions()
	if err != nil {
		return err
	}
	a.warn, err = a.cfg.WarnThresholdInt()
	if err != nil {
		return err
	}
	opts = append(opts, collatz.WithAdvisor(func(adv collatz.Advisory) {
		log := logging.Logger()
		log.Warn().
			Str("start", adv.Start.String()).
			Str("ceiling", adv.Ceiling.String()).
			Msg("start value exceeds the recommended ceiling; processing may take a long time")
	}))

	a.gen = collatz.NewGenerator(opts...)
	a.store = store.New(a.cfg.DataDir)
	a.theme = viz.GetTheme(a.cfg.Theme)
	return nil
}

func resolveStart(args []string, example string) (*big.Int, error) {
	switch {
	case example != "" && len(args) > 0:
		return nil, errors.New("give either a number or --example, not both")
	case example != "":
		e, ok := catalog.Lookup(example)
		if !ok {
			return nil, fmt.Errorf("unknown example %q (available: %s)", example, strings.Join(catalog.Keys(), ", "))
		}
		return e.Value, nil
	case len(args) == 1:
		return collatz.ParseStart(args[0])
	}
	return nil, errors.New("a start value or --example is required")
}

func (a *app) randomStart() (*big.Int, error) {
	ceiling, err := a.cfg.CeilingInt()
	if err != nil {
		return nil, err
	}
	var src io.Reader
	if a.cfg.Seed != 0 {
		src = catalog.SeededSource(a.cfg.Seed)
	}
	return catalog.RandomStart(ceiling, src)
}

func (a *app) generate(ctx context.Context, start *big.Int) (collatz.Trajectory, error) {
	if err := a.gen.Validate(start); err != nil {
		return nil, err
	}
	log := logging.Logger()
	if !a.gen.ExceedsCeiling(start) && a.warn != nil && start.Cmp(a.warn) > 0 {
		log.Info().Str("start", start.String()).Msg("large start value; this may take a moment")
	}

	began := time.Now()
	traj, err := a.gen.Generate(ctx, start)
	if err != nil {
		return nil, err
	}
	log.Debug().
		Str("start", start.String()).
		Int("length", traj.Len()).
		Dur("elapsed", time.Since(began)).
		Msg("sequence generated")
	return traj, nil
}

func (a *app) analyze(cmd *cobra.Command, start *big.Int, modeName, saveName, svgPath string) error {
	mode, err := viz.ParseMode(modeName)
	if err != nil {
		return err
	}
	traj, err := a.generate(cmd.Context(), start)
	if err != nil {
		return err
	}
	if saveName != "" {
		path, err := a.store.Save(saveName, store.NewRecord(traj))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", path)
	}
	return a.display(cmd, traj, mode, svgPath)
}

func (a *app) load(cmd *cobra.Command, name string, verify bool, modeName, svgPath string) error {
	mode, err := viz.ParseMode(modeName)
	if err != nil {
		return err
	}
	rec, err := a.store.Load(name)
	if err != nil {
		return err
	}
	if err := rec.Verify(); err != nil {
		if verify {
			return err
		}
		log := logging.Logger()
		log.Warn().Err(err).Str("path", a.store.Path(name)).Msg("stored sequence does not follow the Collatz rule")
	}
	return a.display(cmd, rec.Sequence, mode, svgPath)
}

func (a *app) display(cmd *cobra.Command, traj collatz.Trajectory, mode viz.Mode, svgPath string) error {
	if svgPath != "" {
		if err := export.SaveTrajectory(svgPath, mode, traj, export.Options{Theme: a.theme}); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", svgPath)
	}

	if mode == viz.ModeAnimation {
		return viz.RunAnimation(traj, viz.AnimationOptions{
			Delay: time.Duration(a.cfg.FrameDelayMs) * time.Millisecond,
			Theme: a.theme,
			Head:  a.cfg.Head,
			Tail:  a.cfg.Tail,
		})
	}

	stats, err := collatz.Summarize(traj, a.cfg.Head, a.cfg.Tail)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), viz.Render(mode, traj, stats, a.theme, viz.PlotWidth, viz.PlotHeight))
	return nil
}

func (a *app) compare(cmd *cobra.Command, first, second string) error {
	x, err := collatz.ParseStart(first)
	if err != nil {
		return err
	}
	y, err := collatz.ParseStart(second)
	if err != nil {
		return err
	}

	began := time.Now()
	r, err := compare.New(a.gen, a.cfg.Head, a.cfg.Tail).Compare(cmd.Context(), x, y)
	if err != nil {
		return err
	}
	log := logging.Logger()
	log.Debug().Dur("elapsed", time.Since(began)).Msg("comparison done")

	out := cmd.OutOrStdout()
	fmt.Fprint(out, viz.PlotComparison(r.A.Trajectory, r.B.Trajectory, viz.PlotWidth, viz.PlotHeight))
	fmt.Fprintln(out)
	fmt.Fprintln(out, viz.RenderComparison(r, a.theme))
	return nil
}

func (a *app) list(cmd *cobra.Command, args []string) error {
	records, err := a.store.List()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "no saved sequences in %s\n", a.store.Dir())
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSTART\tLENGTH\tMODIFIED")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
			r.Name,
			collatz.FormatGrouped(r.Start),
			r.Length,
			r.Modified.Format("2006-01-02 15:04:05"),
		)
	}
	return w.Flush()
}

func (a *app) exportCSV(cmd *cobra.Command, name, out string) (err error) {
	rec, err := a.store.Load(name)
	if err != nil {
		return err
	}
	if out == "" {
		return store.WriteCSV(cmd.OutOrStdout(), rec.Sequence)
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err := store.WriteCSV(f, rec.Sequence); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "exported %d rows to %s\n", len(rec.Sequence), out)
	return nil
}

func (a *app) runMenu(cmd *cobra.Command, args []string) error {
	// the menu owns the screen; keep log lines out of it
	logging.SetOutput(io.Discard)
	defer logging.SetOutput(cmd.ErrOrStderr())

	var src io.Reader
	if a.cfg.Seed != 0 {
		src = catalog.SeededSource(a.cfg.Seed)
	}
	return tui.Run(tui.Options{
		Generator:  a.gen,
		Store:      a.store,
		Theme:      a.theme,
		Head:       a.cfg.Head,
		Tail:       a.cfg.Tail,
		FrameDelay: time.Duration(a.cfg.FrameDelayMs) * time.Millisecond,
		Random:     src,
	})
}
