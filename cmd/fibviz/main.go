package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/fibviz/internal/config"
	"github.com/san-kum/fibviz/internal/driver"
	"github.com/san-kum/fibviz/internal/export"
	"github.com/san-kum/fibviz/internal/fib"
	"github.com/san-kum/fibviz/internal/logging"
	"github.com/san-kum/fibviz/internal/tui"
	"github.com/san-kum/fibviz/internal/viz"
	"github.com/spf13/cobra"
)

var (
	configFile string
	logFile    string
	logLevel   string
	// seq
	check bool
	// bars / plot
	rows int
	// export
	format  string
	outFile string
	// play
	maxTicks int
	autoPlay bool
	terms    int
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "fibviz",
		Short:         "fibonacci sequence visualizer",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTUI,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "log file (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive list and bar view",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}
	addStartFlags(tuiCmd)
	addStartFlags(rootCmd)

	seqCmd := &cobra.Command{
		Use:   "seq [terms]",
		Short: "print the sequence as a table",
		Args:  cobra.MaximumNArgs(1),
		RunE:  printSeq,
	}
	seqCmd.Flags().BoolVar(&check, "check", false, "verify the recurrence and cap")

	barsCmd := &cobra.Command{
		Use:   "bars [terms]",
		Short: "print the scaled bar view",
		Args:  cobra.MaximumNArgs(1),
		RunE:  printBars,
	}
	barsCmd.Flags().IntVar(&rows, "rows", 12, "bar height in rows")

	plotCmd := &cobra.Command{
		Use:   "plot [terms]",
		Short: "plot log10(value+1) against index",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotSeq,
	}
	plotCmd.Flags().IntVar(&rows, "rows", 12, "plot height in rows")

	exportCmd := &cobra.Command{
		Use:   "export [terms]",
		Short: "write the sequence as csv, json or svg bars",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportSeq,
	}
	exportCmd.Flags().StringVar(&format, "format", "csv", "output format: csv, json, svg")
	exportCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	verifyCmd := &cobra.Command{
		Use:   "verify <file.csv>",
		Short: "check a csv export against the recurrence and cap",
		Args:  cobra.ExactArgs(1),
		RunE:  verifyExport,
	}

	playCmd := &cobra.Command{
		Use:   "play",
		Short: "auto-play without the interactive view",
		Args:  cobra.NoArgs,
		RunE:  playHeadless,
	}
	playCmd.Flags().IntVar(&maxTicks, "ticks", 0, "stop after this many ticks (0 runs until interrupted)")
	playCmd.Flags().IntVar(&terms, "terms", 0, "starting term count (1-50)")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage the config file",
	}
	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "write a default config file",
		Args:  cobra.NoArgs,
		RunE:  initConfig,
	})
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "print the effective config",
		Args:  cobra.NoArgs,
		RunE:  showConfig,
	})

	rootCmd.AddCommand(tuiCmd, seqCmd, barsCmd, plotCmd, exportCmd, verifyCmd, playCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addStartFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&terms, "terms", 0, "starting term count (1-50)")
	cmd.Flags().BoolVar(&autoPlay, "play", false, "start with auto-play on")
}

func configPath() string {
	if configFile != "" {
		return configFile
	}
	return config.DefaultPath()
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath())
	if err != nil {
		return nil, err
	}
	if f := cmd.Flags().Lookup("terms"); f != nil && f.Changed {
		cfg.Terms = terms
	}
	if f := cmd.Flags().Lookup("play"); f != nil && f.Changed {
		cfg.AutoPlay = autoPlay
	}
	if logFile != "" {
		cfg.Log.File = logFile
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func openLogger(cfg *config.Config) (*logging.Logger, error) {
	return logging.New(cfg.Log.File, cfg.Log.Level)
}

// termsArg parses the optional [terms] argument, defaulting to the
// configured count.
func termsArg(cmd *cobra.Command, args []string) (int, error) {
	if len(args) == 0 {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return 0, err
		}
		return cfg.Terms, nil
	}
	n, err := fib.ParseTerms(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid terms argument: %w", err)
	}
	return n, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("starting tui", "terms", cfg.Terms, "autoplay", cfg.AutoPlay)
	drv := driver.New(append(cfg.DriverOptions(), driver.WithLogger(log))...)
	if err := tui.Run(ctx, drv, log); err != nil {
		log.Error("tui exited", "error", err)
		return err
	}
	return nil
}

func printSeq(cmd *cobra.Command, args []string) error {
	n, err := termsArg(cmd, args)
	if err != nil {
		return err
	}
	seq := fib.Generate(n)

	rowsOut := make([][]string, 0, len(seq))
	for i, v := range seq {
		rowsOut = append(rowsOut, []string{strconv.Itoa(i), viz.FormatValue(v)})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#334155"))).
		Headers("N", "VALUE").
		Rows(rowsOut...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return s.Bold(true).Foreground(lipgloss.Color("#cbd5e1"))
			}
			if col == 1 {
				return s.Align(lipgloss.Right).Foreground(viz.ColorAt(row))
			}
			return s.Foreground(lipgloss.Color("#64748b"))
		})
	fmt.Println(t.Render())

	if fib.Truncated(n, seq) {
		fmt.Printf("capped at %d terms (next value exceeds %s)\n", len(seq), viz.FormatValue(fib.Cap))
	}
	if check {
		if err := fib.Verify(seq); err != nil {
			return err
		}
		fmt.Println("ok: recurrence and cap hold")
	}
	return nil
}

func printBars(cmd *cobra.Command, args []string) error {
	n, err := termsArg(cmd, args)
	if err != nil {
		return err
	}
	fmt.Println(viz.RenderBars(fib.Generate(n), rows))
	return nil
}

func plotSeq(cmd *cobra.Command, args []string) error {
	n, err := termsArg(cmd, args)
	if err != nil {
		return err
	}
	seq := fib.Generate(n)
	if len(seq) < 2 {
		return fmt.Errorf("need at least 2 terms to plot")
	}

	graph := asciigraph.Plot(viz.LogValues(seq),
		asciigraph.Height(rows),
		asciigraph.Width(min(len(seq)*2, 100)),
		asciigraph.Precision(1),
		asciigraph.Caption(fmt.Sprintf("log10(F(n)+1), n=0..%d", len(seq)-1)),
	)
	fmt.Println(graph)
	return nil
}

func exportSeq(cmd *cobra.Command, args []string) error {
	n, err := termsArg(cmd, args)
	if err != nil {
		return err
	}
	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}
	if err := export.WriteFile(outFile, f, export.NewData(n)); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if outFile != "" {
		fmt.Fprintf(os.Stderr, "wrote %s\n", outFile)
	}
	return nil
}

func verifyExport(cmd *cobra.Command, args []string) error {
	values, err := export.VerifyCSVFile(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("ok: %d values\n", len(values))
	return nil
}

func playHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	states := make(chan driver.State, 8)
	drv := driver.New(driver.WithInitial(cfg.Terms, false), driver.WithLogger(log))
	defer drv.Close()
	drv.Subscribe(func(s driver.State) {
		select {
		case states <- s:
		default:
			log.Warn("dropped frame", "count", s.Count)
		}
	})

	printFrame(drv.State())
	started := drv.Toggle()

	shown := 0
	for {
		select {
		case <-ctx.Done():
			fmt.Println()
			return nil
		case s := <-states:
			if !s.Playing || s.Version <= started.Version {
				continue
			}
			printFrame(s)
			shown++
			if maxTicks > 0 && shown >= maxTicks {
				return nil
			}
		}
	}
}

func printFrame(s driver.State) {
	last := s.Sequence[len(s.Sequence)-1]
	shown := min(len(s.Sequence), viz.MaxBars)
	fmt.Printf("n=%-2d %s %s\n", s.Count, viz.Sparkline(viz.LogValues(s.Sequence[:shown]), viz.MaxBars), viz.FormatValue(last))
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := configPath()
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config already exists: %s", path)
	}
	if err := config.Save(path, config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func showConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	fmt.Printf("config:    %s\n", configPath())
	fmt.Printf("terms:     %d\n", cfg.Terms)
	fmt.Printf("autoplay:  %v\n", cfg.AutoPlay)
	fmt.Printf("log file:  %s\n", cfg.Log.File)
	fmt.Printf("log level: %s\n", cfg.Log.Level)
	return nil
}
