package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/tetratelabs/wazero"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/wippyai/utf8cell"
	"github.com/wippyai/utf8cell/errors"
	"github.com/wippyai/utf8cell/host"
	"github.com/wippyai/utf8cell/internal/config"
	"github.com/wippyai/utf8cell/internal/guest"
	"github.com/wippyai/utf8cell/output"
)

func main() {
	os.Exit(run())
}

// run executes the command and returns the exit status. Fatal output
// errors do not return: output.Fatal aborts after syncing the logger.
func run() int {
	var (
		configFile  = flag.String("config", "", "Path to YAML settings file")
		width       = flag.String("width", "", "Cell width: 8, 16, 32 or 64")
		format      = flag.String("format", "", "Output format: raw, hex or auto")
		strict      = flag.Bool("strict", false, "Treat code points above U+10FFFF as errors")
		classify    = flag.Bool("classify", false, "Print the UTF-8 length of each value and exit")
		runFile     = flag.String("run", "", "Run a wasm guest against the utf8cell host module")
		emitFile    = flag.String("emit", "", "Write a wasm guest that prints the given values")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	settings, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if err := applyFlags(&settings, *width, *format, *strict); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	log := newLogger(settings.LogLevel)
	defer func() { _ = log.Sync() }()
	output.SetLogger(log)
	host.SetLogger(log)

	args := flag.Args()
	switch {
	case *interactive:
		err = runInteractive(settings)
	case *runFile != "":
		err = runGuest(*runFile, settings)
	case len(args) == 0:
		fmt.Fprintln(os.Stderr, "Usage: utf8cell [-width N] [-format raw|hex|auto] [-strict] value...")
		fmt.Fprintln(os.Stderr, "       utf8cell -classify value...")
		fmt.Fprintln(os.Stderr, "       utf8cell -emit out.wasm value...")
		fmt.Fprintln(os.Stderr, "       utf8cell -run guest.wasm")
		fmt.Fprintln(os.Stderr, "       utf8cell -i  (interactive mode)")
		return 1
	case *classify:
		err = classifyValues(os.Stdout, args)
	case *emitFile != "":
		err = emitGuest(*emitFile, args, settings)
	default:
		err = encodeValues(args, settings)
	}

	if err != nil {
		if isFatal(err) {
			output.Fatal(err)
		}
		log.Debug("command failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func applyFlags(s *config.Settings, width, format string, strict bool) error {
	if width != "" {
		w, ok := utf8cell.ParseWidth(width)
		if !ok {
			return errors.InvalidInput(errors.PhaseConfig, fmt.Sprintf("invalid width %q", width))
		}
		s.Width = uint8(w)
	}
	if format != "" {
		s.Format = format
	}
	if strict {
		s.Strict = true
	}
	return s.Validate()
}

func newLogger(level string) *zap.Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.WarnLevel
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

// isFatal reports whether err comes from the output path, where the
// process aborts rather than exiting with a usage error.
func isFatal(err error) bool {
	return errors.HasKind(err, errors.KindOutOfRange) ||
		errors.HasKind(err, errors.KindIO) ||
		errors.HasKind(err, errors.KindInvalidCodePoint)
}

func writerOptions(s config.Settings) []output.Option {
	if s.Strict {
		return []output.Option{output.WithStrict()}
	}
	return nil
}

func encodeValues(args []string, s config.Settings) error {
	values, err := parseValues(args)
	if err != nil {
		return err
	}

	hex := s.Format == config.FormatHex ||
		(s.Format == config.FormatAuto && term.IsTerminal(int(os.Stdout.Fd())))
	if hex {
		return writeHex(os.Stdout, s.CellWidth(), values, writerOptions(s)...)
	}

	w := output.NewWriter(os.Stdout, writerOptions(s)...)
	for _, v := range values {
		if _, err := w.Put(s.CellWidth(), v); err != nil {
			return err
		}
	}
	return nil
}

func emitGuest(path string, args []string, s config.Settings) error {
	values, err := parseValues(args)
	if err != nil {
		return err
	}
	b := guest.NewBuilder(s.Module)
	for _, v := range values {
		if err := b.Put(s.CellWidth(), v); err != nil {
			return err
		}
	}
	if err := os.WriteFile(path, b.Build(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func runGuest(path string, s config.Settings) error {
	ctx := context.Background()

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)

	mod, err := host.Instantiate(ctx, rt, output.NewWriter(os.Stdout, writerOptions(s)...),
		host.WithModuleName(s.Module))
	if err != nil {
		return err
	}
	return mod.Run(ctx, rt, data)
}
