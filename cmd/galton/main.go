package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/san-kum/galton/internal/board"
	"github.com/san-kum/galton/internal/config"
	"github.com/san-kum/galton/internal/galton"
	"github.com/san-kum/galton/internal/render"
	"github.com/san-kum/galton/internal/stats"
	"github.com/san-kum/galton/internal/storage"
	"github.com/san-kum/galton/internal/viz"
)

const (
	coinSeeded = "seeded"
	coinCrypto = "crypto"

	// bins expecting fewer balls are left out of the goodness-of-fit test
	minExpected = 5
)

var (
	dataDir string
	verbose bool

	rows    int
	balls   int
	width   int
	height  int
	seed    int64
	walk    string
	workers int
	coin    string

	output     string
	format     string
	configFile string
	preset     string
	save       bool

	batch int
)

var logger log.Logger

// main registers the commands and runs the default board when no
// subcommand is given. Any error exits with status 1.
func main() {
	rootCmd := &cobra.Command{
		Use:           "galton",
		Short:         "bean machine simulator",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = newLogger(verbose)
		},
		RunE: runBoard,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".galton", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	addBoardFlags(rootCmd)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "drop balls and write the histogram chart",
		Args:  cobra.NoArgs,
		RunE:  runBoard,
	}
	addBoardFlags(runCmd)
	runCmd.Flags().IntVar(&workers, "workers", config.DefaultWorkers, "parallel workers")
	runCmd.Flags().BoolVar(&save, "save", false, "store the run under the data directory")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored histogram in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	renderCmd := &cobra.Command{
		Use:   "render [run_id]",
		Short: "render a stored histogram to png or svg",
		Args:  cobra.ExactArgs(1),
		RunE:  renderRun,
	}
	renderCmd.Flags().StringVarP(&output, "out", "o", "", "output file (default <run_id>.png)")
	renderCmd.Flags().StringVar(&format, "format", "", "png or svg (default from extension)")

	statsCmd := &cobra.Command{
		Use:   "stats [run_id]",
		Short: "summarise a stored histogram",
		Args:  cobra.ExactArgs(1),
		RunE:  statsRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "write a stored histogram as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tROWS\tBALLS\tWIDTH\tHEIGHT\tWALK\tWORKERS")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%s\t%d\n",
					name, p.Board.Rows, p.Board.Balls, p.Board.Width, p.Board.Height, p.Board.Walk, p.Workers)
			}
			return w.Flush()
		},
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "drop balls with a live terminal histogram",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addBoardFlags(liveCmd)
	liveCmd.Flags().IntVar(&batch, "batch", 500, "balls dropped per frame")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, renderCmd, statsCmd, exportCSVCmd, presetsCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		if logger == nil {
			logger = newLogger(false)
		}
		level.Error(logger).Log("err", err)
		os.Exit(1)
	}
}

func addBoardFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&rows, "rows", board.DefaultRows, "number of peg rows")
	cmd.Flags().IntVar(&balls, "balls", board.DefaultBalls, "number of balls")
	cmd.Flags().IntVar(&width, "width", board.DefaultWidth, "board width in pixels (one bin per pixel)")
	cmd.Flags().IntVar(&height, "height", board.DefaultHeight, "board height in pixels")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	cmd.Flags().StringVar(&walk, "walk", string(board.WalkHeight), "walk length: height or rows")
	cmd.Flags().StringVar(&coin, "coin", coinSeeded, "coin source: seeded or crypto")
	cmd.Flags().StringVarP(&output, "out", "o", board.DefaultOutput, "output file")
	cmd.Flags().StringVar(&format, "format", "", "png or svg (default from extension)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

func newLogger(debug bool) log.Logger {
	l := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	l = log.With(l, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)
	if debug {
		return level.NewFilter(l, level.AllowDebug())
	}
	return level.NewFilter(l, level.AllowInfo())
}

// progressLogger reports in the form "Simulated 10000/50000 balls".
func progressLogger(l log.Logger) galton.Observer {
	return galton.ProgressFunc(func(completed, total int) {
		level.Info(l).Log("msg", fmt.Sprintf("Simulated %d/%d balls", completed, total))
	})
}

// resolveConfig layers preset, config file and explicitly set flags, in
// that order.
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
	if flags.Changed("rows") {
		cfg.Board.Rows = rows
	}
	if flags.Changed("balls") {
		cfg.Board.Balls = balls
	}
	if flags.Changed("width") {
		cfg.Board.Width = width
	}
	if flags.Changed("height") {
		cfg.Board.Height = height
	}
	if flags.Changed("walk") {
		cfg.Board.Walk = walk
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("out") {
		cfg.Output = output
	}
	if flags.Changed("format") {
		cfg.Format = format
	}
	return cfg, nil
}

func boardConfig(cfg *config.Config) (board.Config, error) {
	bc, err := cfg.BoardConfig()
	if err != nil {
		return board.Config{}, err
	}
	if err := bc.Validate(); err != nil {
		return board.Config{}, err
	}
	if bc.Seed == 0 {
		bc.Seed = time.Now().UnixNano()
	}
	return bc, nil
}

func newCoin(name string, seed int64) (galton.Coin, error) {
	switch name {
	case "", coinSeeded:
		return galton.NewSeededCoin(seed), nil
	case coinCrypto:
		return galton.NewCryptoCoin(nil), nil
	}
	return nil, fmt.Errorf("unknown coin: %s (available: %s, %s)", name, coinSeeded, coinCrypto)
}

func simulate(ctx context.Context, cfg board.Config, n int, c galton.Coin) ([]int, error) {
	progress := progressLogger(logger)

	if n > 1 {
		if _, ok := c.(*galton.SeededCoin); !ok {
			return nil, errors.New("parallel runs need the seeded coin")
		}
		ens, err := galton.NewEnsemble(cfg, n)
		if err != nil {
			return nil, err
		}
		ens.AddObserver(progress)
		level.Debug(logger).Log("msg", "starting ensemble", "workers", ens.Workers(), "seed", cfg.Seed)
		return ens.Run(ctx)
	}

	sim, err := galton.New(cfg, galton.WithCoin(c), galton.WithObserver(progress))
	if err != nil {
		return nil, err
	}
	level.Debug(logger).Log("msg", "starting simulation", "walk", cfg.WalkLength(), "seed", cfg.Seed)
	if err := sim.Run(ctx); err != nil {
		return nil, err
	}
	return sim.Counts(), nil
}

func runBoard(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	bc, err := boardConfig(cfg)
	if err != nil {
		return err
	}
	out, err := render.ParseFormat(cfg.Format, cfg.Output)
	if err != nil {
		return err
	}
	c, err := newCoin(coin, bc.Seed)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	counts, err := simulate(ctx, bc, cfg.Workers, c)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if err := render.Save(cfg.Output, out, bc, counts); err != nil {
		return err
	}
	level.Info(logger).Log("msg", "Galton board image saved as "+cfg.Output)

	summary := stats.Summarize(counts)
	fmt.Println(viz.RenderSummary(bc, summary, elapsed))

	if !save {
		return nil
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	meta := storage.NewRunMetadata(bc)
	meta.Workers = max(cfg.Workers, 1)
	meta.Elapsed = elapsed
	meta.Mean = summary.Mean
	meta.StdDev = summary.StdDev
	meta.Image = cfg.Output
	runID, err := st.Save(meta, counts)
	if err != nil {
		return err
	}
	fmt.Printf("run id: %s\n", runID)
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
	fmt.Fprintln(w, "ID\tTIME\tBALLS\tBOARD\tWALK\tSEED\tMEAN\tSTDDEV")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%dx%d\t%s\t%d\t%.2f\t%.2f\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Balls,
			run.Width, run.Height,
			run.Walk,
			run.Seed,
			run.Mean,
			run.StdDev,
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, []int, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	counts, err := st.LoadCounts(runID)
	if err != nil {
		return nil, nil, err
	}
	return meta, counts, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, counts, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if len(counts) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("balls: %d\n\n", meta.Balls)
	fmt.Println(viz.PlotHistogram(counts, 80, 15, fmt.Sprintf("balls per bin (%d bins)", len(counts))))
	return nil
}

func renderRun(cmd *cobra.Command, args []string) error {
	meta, counts, err := loadRun(args[0])
	if err != nil {
		return err
	}

	path := meta.ID + ".png"
	if cmd.Flags().Changed("out") {
		path = output
	}
	out, err := render.ParseFormat(format, path)
	if err != nil {
		return err
	}
	if err := render.Save(path, out, meta.Board(), counts); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func statsRun(cmd *cobra.Command, args []string) error {
	meta, counts, err := loadRun(args[0])
	if err != nil {
		return err
	}

	cfg := meta.Board()
	summary := stats.Summarize(counts)
	fmt.Println(viz.RenderSummary(cfg, summary, meta.Elapsed))

	expected := stats.Theoretical(summary.Total, len(counts), cfg.WalkLength())
	chi2, bins := stats.ChiSquare(counts, expected, minExpected)
	fmt.Printf("center offset: %.4f\n", stats.CenterOffset(summary, cfg.Width))
	if bins < 2 {
		fmt.Println("chi-square: not enough populated bins")
		return nil
	}
	// the fitted distribution has no free parameters
	dist := distuv.ChiSquared{K: float64(bins - 1)}
	fmt.Printf("chi-square: %.2f over %d bins (p=%.4f)\n", chi2, bins, dist.Survival(chi2))
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, counts, err := loadRun(args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	if err := w.Write([]string{"bin", "count"}); err != nil {
		return err
	}
	for i, c := range counts {
		if err := w.Write([]string{strconv.Itoa(i), strconv.Itoa(c)}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	bc, err := boardConfig(cfg)
	if err != nil {
		return err
	}
	out, err := render.ParseFormat(cfg.Format, cfg.Output)
	if err != nil {
		return err
	}
	c, err := newCoin(coin, bc.Seed)
	if err != nil {
		return err
	}

	sim, err := galton.New(bc, galton.WithCoin(c), galton.WithProgressEvery(0))
	if err != nil {
		return err
	}

	p := tea.NewProgram(viz.NewLiveModel(sim, batch))
	final, err := p.Run()
	if err != nil {
		return err
	}

	m, ok := final.(viz.LiveModel)
	if !ok || !m.Finished() {
		level.Warn(logger).Log("msg", "stopped early, no image written", "dropped", sim.Completed(), "total", bc.Balls)
		return nil
	}

	if err := render.Save(cfg.Output, out, bc, m.Counts()); err != nil {
		return err
	}
	level.Info(logger).Log("msg", "Galton board image saved as "+cfg.Output, "elapsed", m.Elapsed())
	return nil
}
