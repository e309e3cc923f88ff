package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lost-woods/randtest/src/battery"
	"github.com/lost-woods/randtest/src/bits"
	"github.com/lost-woods/randtest/src/config"
	"github.com/lost-woods/randtest/src/logger"
	"github.com/lost-woods/randtest/src/report"
	"github.com/lost-woods/randtest/src/server"
	"github.com/lost-woods/randtest/src/source"
)

type app struct {
	stdout io.Writer
	stderr io.Writer

	cfg config.Config
	log *zap.SugaredLogger

	unpacked, packed, text bool
	format                 string
	parallel               bool
	noColor                bool
	captureBytes           int
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	rootCmd := &cobra.Command{
		Use:   "randtest [-u|-p|-t] sequencefile [reportfile]",
		Short: "Run classical randomness tests against a bit sequence",
		Long: `randtest runs the frequency, serial, poker (8 and 16 bit), runs,
autocorrelation and linear complexity tests on a bit sequence.

-p packed mode, -u unpacked mode, -t text mode.
sequencefile is mandatory ("-" reads stdin), reportfile is optional;
if no reportfile is given, the report is presented on standard output.`,
		Args:              usageArgs(cobra.RangeArgs(1, 2)),
		PersistentPreRunE: a.setup,
		RunE:              a.runFile,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usageError{err} })

	rootCmd.Flags().BoolVarP(&a.unpacked, "unpacked", "u", false, "one byte per bit")
	rootCmd.Flags().BoolVarP(&a.packed, "packed", "p", false, "eight bits per byte, most significant first")
	rootCmd.Flags().BoolVarP(&a.text, "text", "t", false, "ASCII '0'/'1' characters, everything else ignored")
	rootCmd.MarkFlagsMutuallyExclusive("unpacked", "packed", "text")

	rootCmd.PersistentFlags().StringVar(&a.format, "format", "text", "report format: text, json or latex")
	rootCmd.PersistentFlags().BoolVar(&a.parallel, "parallel", false, "run the tests concurrently")
	rootCmd.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "never color verdicts")

	serialCmd := &cobra.Command{
		Use:   "serial [reportfile]",
		Short: "Capture bytes from the serial TRNG (SERIAL_* env vars) and test them in packed mode",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		RunE:  a.runSerial,
	}
	serialCmd.Flags().IntVarP(&a.captureBytes, "bytes", "n", 2500, "number of bytes to capture")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the battery over HTTP on RANDTEST_PORT, limited to RANDTEST_HTTP_MAX_BITS per request",
		Args:  usageArgs(cobra.NoArgs),
		RunE:  a.runServe,
	}

	rootCmd.AddCommand(serialCmd, serveCmd)
	return rootCmd
}

func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(".env")
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("parallel") {
		cfg.Battery.Parallel = a.parallel
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	a.cfg, a.log = cfg, log
	return nil
}

func (a *app) mode() (bits.Mode, error) {
	switch {
	case a.unpacked:
		return bits.Unpacked, nil
	case a.packed:
		return bits.Packed, nil
	case a.text:
		return bits.Text, nil
	}
	return 0, fmt.Errorf("%w: one of -u, -p or -t is required", bits.ErrInvalidMode)
}

func (a *app) runFile(_ *cobra.Command, args []string) error {
	defer a.log.Sync() //nolint:errcheck

	mode, err := a.mode()
	if err != nil {
		return err
	}

	seq, name, err := source.Load(args[0], mode)
	if err != nil {
		return fmt.Errorf("sequence '%s' could not be read: %w", args[0], err)
	}
	a.log.Debugw("sequence decoded", "input", name, "mode", mode.String(), "bits", seq.Len())

	reportPath := ""
	if len(args) == 2 {
		reportPath = args[1]
	}
	return a.emit(seq, name, reportPath)
}

func (a *app) runSerial(_ *cobra.Command, args []string) error {
	defer a.log.Sync() //nolint:errcheck

	port, err := source.OpenSerial(a.cfg.Serial)
	if err != nil {
		return err
	}
	defer port.Close()

	buf, err := source.Capture(port, a.captureBytes)
	if err != nil {
		return err
	}
	if err := source.CheckSample(buf); err != nil {
		a.log.Warnw("captured sample looks suspicious", "device", a.cfg.Serial.Name, "error", err)
	}

	seq, err := bits.Decode(bytes.NewReader(buf), bits.Packed)
	if err != nil {
		return err
	}

	reportPath := ""
	if len(args) == 1 {
		reportPath = args[0]
	}
	return a.emit(seq, a.cfg.Serial.Name, reportPath)
}

func (a *app) runServe(_ *cobra.Command, _ []string) error {
	defer a.log.Sync() //nolint:errcheck

	return server.New(a.cfg.HTTP, a.cfg.Battery, a.log).Run()
}

// emit checks seq, opens the report destination, runs the battery and
// writes every result.
func (a *app) emit(seq bits.Sequence, name, reportPath string) error {
	format, err := report.ParseFormat(a.format)
	if err != nil {
		return usageError{err}
	}

	b := battery.New(a.cfg.Battery, a.log)
	if err := b.Check(seq); err != nil {
		return err
	}

	out := a.stdout
	color := false
	if reportPath != "" {
		f, err := report.OpenAppend(reportPath)
		if err != nil {
			return fmt.Errorf("can't open report file '%s': %w", reportPath, err)
		}
		defer f.Close()
		out = f
	} else if f, ok := a.stdout.(*os.File); ok && !a.noColor {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}

	results, err := b.Run(seq)
	if err != nil {
		return err
	}

	w := report.New(out, format, color && format == report.FormatText)
	if err := w.Banner(name, seq.Len()); err != nil {
		return fmt.Errorf("%w: %v", report.ErrOutputUnavailable, err)
	}
	for _, res := range results {
		if err := w.Result(res); err != nil {
			return fmt.Errorf("%w: %v", report.ErrOutputUnavailable, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("%w: %v", report.ErrOutputUnavailable, err)
	}
	return nil
}
