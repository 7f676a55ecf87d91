// Command bbsplit splits a merged blackbox flight-data-recorder dump into
// its individual sessions, per the splitting half of the CLI contract every
// blackbox collaborator tool shares (positional path, -i/--index,
// -o/--output, -a/--allow-invalid-header, -v).
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/flightlog/blackbox"
	"github.com/flightlog/blackbox/compress"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		index              int
		output             string
		allowInvalidHeader bool
		verbosity          int
	)

	cmd := &cobra.Command{
		Use:   "bbsplit <path>",
		Short: "Split a merged blackbox dump into its individual sessions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(verbosity)

			return run(logger, args[0], index, output, allowInvalidHeader)
		},
	}

	cmd.Flags().IntVarP(&index, "index", "i", 0, "1-based session index to extract, or 0 for all sessions")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path, or \"-\" for stdout (single session only)")
	cmd.Flags().BoolVarP(&allowInvalidHeader, "allow-invalid-header", "a", false, "tolerate a missing or garbled product signature")
	cmd.Flags().CountVarP(&verbosity, "verbose", "v", "increase logging verbosity (repeatable)")

	return cmd
}

func run(logger *slog.Logger, path string, index int, output string, allowInvalidHeader bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	p, err := blackbox.Open(data, blackbox.WithAllowInvalidHeader(allowInvalidHeader))
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}

	logger.Info("opened dump", slog.String("path", path), slog.Int("sessions", p.Reader().LogCount()))

	if index == 0 {
		return splitAll(logger, p.Reader(), output)
	}

	return splitOne(logger, p.Reader(), index, output)
}

func splitOne(logger *slog.Logger, r *blackbox.Reader, index int, output string) error {
	w, closeFn, err := openOutput(output)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := r.ExportSession(index, w, compress.NewNoOpCompressor()); err != nil {
		return fmt.Errorf("export session %d: %w", index, err)
	}

	logger.Info("exported session", slog.Int("index", index), slog.String("output", outputLabel(output)))

	return nil
}

func splitAll(logger *slog.Logger, r *blackbox.Reader, output string) error {
	if output == "-" {
		return fmt.Errorf("bbsplit: -o - is only valid with a single session (-i > 0)")
	}

	base := output
	if base == "" {
		base = "session"
	}

	for i := 1; i <= r.LogCount(); i++ {
		name := fmt.Sprintf("%s.%d", base, i)

		f, err := os.Create(name)
		if err != nil {
			return fmt.Errorf("create %s: %w", name, err)
		}

		err = r.ExportSession(i, f, compress.NewNoOpCompressor())
		closeErr := f.Close()
		if err != nil {
			return fmt.Errorf("export session %d: %w", i, err)
		}
		if closeErr != nil {
			return fmt.Errorf("close %s: %w", name, closeErr)
		}

		logger.Info("exported session", slog.Int("index", i), slog.String("output", name))
	}

	return nil
}

func openOutput(output string) (io.Writer, func() error, error) {
	if output == "" || output == "-" {
		return os.Stdout, func() error { return nil }, nil
	}

	f, err := os.Create(output)
	if err != nil {
		return nil, nil, fmt.Errorf("create %s: %w", output, err)
	}

	return f, f.Close, nil
}

func outputLabel(output string) string {
	if output == "" || output == "-" {
		return "stdout"
	}

	return output
}

// newLogger returns a slog.Logger writing text records to stderr; each -v
// lowers the minimum logged level by one step from Warn (Info, then Debug).
func newLogger(verbosity int) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case verbosity >= 2:
		level = slog.LevelDebug
	case verbosity == 1:
		level = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
