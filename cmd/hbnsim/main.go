package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/sadpig70/PAT-System/internal/config"
	"github.com/sadpig70/PAT-System/internal/export"
	"github.com/sadpig70/PAT-System/internal/logging"
	"github.com/sadpig70/PAT-System/internal/sim"
	"github.com/sadpig70/PAT-System/internal/stats"
	"github.com/sadpig70/PAT-System/internal/storage"
	"github.com/sadpig70/PAT-System/internal/viz"
	"github.com/spf13/cobra"
)

type plotOptions struct {
	x, y   string
	output string
	width  int
	height int
}

type options struct {
	seed       int64
	reference  string
	configFile string
	preset     string
	noReclip   bool
	logLevel   string
	logFormat  string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "hbnsim <output_basename> [sample_count]",
		Short: "hBN CVD process-structure-property data generator",
		Long: "Generates synthetic hBN CVD growth samples and writes them to <output_basename>.csv.\n" +
			"sample_count defaults to 1000.\n\n" +
			"Subcommand names (compare, plot, summary, view, presets, config, help) are\n" +
			"reserved and cannot be used as a bare basename; use ./<name> instead.",
		Example: "  hbnsim hbn_data 5000",
		Args:    cobra.RangeArgs(1, 2),
		RunE:    opts.generate,
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.Flags().Int64Var(&opts.seed, "seed", config.DefaultSeed, "random seed")
	rootCmd.Flags().StringVar(&opts.reference, "reference", "", "experimental reference csv for calibration")
	rootCmd.Flags().StringVar(&opts.configFile, "config", "", "config file path (yaml)")
	rootCmd.Flags().StringVar(&opts.preset, "preset", "", "use preset configuration")
	rootCmd.Flags().BoolVar(&opts.noReclip, "no-reclip", false, "leave calibrated values unclipped")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", config.DefaultLogLevel, "log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", config.DefaultLogFormat, "log format (text|json)")

	var jsonPath string
	compareCmd := &cobra.Command{
		Use:   "compare <table.csv> <reference.csv>",
		Short: "check agreement of a generated table with experimental means",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return compareTables(cmd, args, jsonPath)
		},
	}
	compareCmd.Flags().StringVar(&jsonPath, "json", "", "also write the report as json to this path")

	plot := &plotOptions{}
	plotCmd := &cobra.Command{
		Use:   "plot <table.csv>",
		Short: "scatter plot of two columns as svg",
		Args:  cobra.ExactArgs(1),
		RunE:  plot.run,
	}
	plotCmd.Flags().StringVar(&plot.x, "x", "temperature", "x-axis column")
	plotCmd.Flags().StringVar(&plot.y, "y", "crystallite_size", "y-axis column")
	plotCmd.Flags().StringVarP(&plot.output, "output", "o", "", "svg output path (default <table>_<x>_<y>.svg)")
	plotCmd.Flags().IntVar(&plot.width, "width", 800, "image width")
	plotCmd.Flags().IntVar(&plot.height, "height", 600, "image height")

	summaryCmd := &cobra.Command{
		Use:   "summary <table.csv>",
		Short: "column statistics and property histograms",
		Args:  cobra.ExactArgs(1),
		RunE:  summarizeTable,
	}

	viewCmd := &cobra.Command{
		Use:   "view <table.csv>",
		Short: "browse column distributions interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := storage.LoadTable(args[0])
			if err != nil {
				return err
			}
			cmd.SilenceUsage = true
			return viz.RunViewer(t)
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PRESET\tSAMPLES\tSEED")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%d\n", name, p.Samples, p.Seed)
			}
			return w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage configuration files",
	}
	configCmd.AddCommand(&cobra.Command{
		Use:   "init <path>",
		Short: "write the default configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Save(args[0], config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
			return nil
		},
	})

	rootCmd.AddCommand(compareCmd, plotCmd, summaryCmd, viewCmd, presetsCmd, configCmd)
	return rootCmd
}

// resolveConfig layers defaults, preset, config file and explicitly set
// flags, in that order.
func (o *options) resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if o.preset != "" {
		cfg = config.GetPreset(o.preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", o.preset, config.ListPresets())
		}
	}

	if o.configFile != "" {
		loaded, err := config.LoadOver(o.configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = o.seed
	}
	if flags.Changed("reference") {
		cfg.Reference = o.reference
	}
	if flags.Changed("no-reclip") {
		cfg.Reclip = !o.noReclip
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = o.logFormat
	}

	return cfg, cfg.Validate()
}

func (o *options) generate(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	cfg, err := o.resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())

	samples := cfg.Samples
	if len(args) > 1 {
		samples = parseSampleCount(args[1], cmd.ErrOrStderr())
	}

	var ref sim.Reference
	if cfg.Reference != "" {
		ref, err = storage.LoadReference(cfg.Reference)
		if err != nil {
			return err
		}
		logger.Info("loaded reference data", "path", cfg.Reference, "columns", len(ref))
	}

	s := sim.New(sim.Config{
		Seed:      cfg.Seed,
		Reference: ref,
		Reclip:    cfg.Reclip,
		Logger:    logger,
	})

	table, err := s.Generate(samples)
	if err != nil {
		return err
	}

	path := storage.OutputPath(args[0])
	if err := storage.SaveTable(path, table); err != nil {
		return err
	}
	logger.Debug("wrote table", "path", path, "rows", table.Len(), "seed", cfg.Seed)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "[done] %d samples saved to %s\n", table.Len(), path)

	report, err := s.CheckAgreement(table)
	switch {
	case errors.Is(err, sim.ErrNoReferenceData):
		if ref != nil {
			logger.Warn("agreement check skipped", "reason", err)
		}
		return nil
	case err != nil:
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprint(out, viz.RenderReport(report))
	return nil
}

// parseSampleCount falls back to the default count when arg is not an
// integer. The warning is written regardless of log level. Non-positive
// integers are passed through and rejected by the simulator.
func parseSampleCount(arg string, w io.Writer) int {
	n, err := strconv.Atoi(arg)
	if err != nil {
		fmt.Fprintf(w, "warning: invalid sample count %q, using default %d\n", arg, config.DefaultSamples)
		return config.DefaultSamples
	}
	return n
}

func compareTables(cmd *cobra.Command, args []string, jsonPath string) error {
	t, err := storage.LoadTable(args[0])
	if err != nil {
		return err
	}
	ref, err := storage.LoadReference(args[1])
	if err != nil {
		return err
	}
	cmd.SilenceUsage = true

	report, err := sim.CompareAgreement(t, ref)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), viz.RenderReport(report))
	if jsonPath != "" {
		if err := storage.ExportReportJSON(jsonPath, t.Len(), report); err != nil {
			return err
		}
	}
	if !report.Passed() {
		return errors.New("agreement check failed")
	}
	return nil
}

func (p *plotOptions) run(cmd *cobra.Command, args []string) error {
	x, ok := sim.ParseColumn(p.x)
	if !ok {
		return fmt.Errorf("unknown column: %s (available: %v)", p.x, sim.ColumnNames())
	}
	y, ok := sim.ParseColumn(p.y)
	if !ok {
		return fmt.Errorf("unknown column: %s (available: %v)", p.y, sim.ColumnNames())
	}

	t, err := storage.LoadTable(args[0])
	if err != nil {
		return err
	}
	cmd.SilenceUsage = true

	if t.Len() == 0 {
		return errors.New("no data to plot")
	}

	path := p.output
	if path == "" {
		path = fmt.Sprintf("%s_%s_%s.svg", strings.TrimSuffix(args[0], storage.Extension), x, y)
	}
	if err := os.WriteFile(path, []byte(export.ScatterSVG(t, x, y, p.width, p.height)), 0644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}

func summarizeTable(cmd *cobra.Command, args []string) error {
	t, err := storage.LoadTable(args[0])
	if err != nil {
		return err
	}
	cmd.SilenceUsage = true

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "file: %s\n\n", args[0])
	fmt.Fprint(out, viz.RenderSummary(t))
	if t.Len() == 0 {
		return nil
	}

	for _, p := range sim.Properties() {
		fmt.Fprintln(out)
		fmt.Fprintln(out, viz.ColumnHistogram(t, p, viz.DefaultBins, 60, 10))
		writeRangeNote(out, t, p)
	}
	return nil
}

// writeRangeNote reports how many samples sit on the clip bounds.
func writeRangeNote(w io.Writer, t *sim.Table, p sim.Column) {
	r := sim.DefaultPropertyRanges()[p]
	atMin, atMax := 0, 0
	for _, v := range t.Column(p) {
		switch {
		case v <= r.Min:
			atMin++
		case v >= r.Max:
			atMax++
		}
	}
	lo, hi := stats.MinMax(t.Column(p))
	fmt.Fprintf(w, "  observed [%.6g, %.6g], bounds [%.6g, %.6g], %d at min, %d at max\n", lo, hi, r.Min, r.Max, atMin, atMax)
}
