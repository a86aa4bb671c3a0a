// Command tcsv prints the typed rows of a delimited text file, one row per
// line with fields separated by spaces.
//
// Usage:
//
//	tcsv -schema int,string,string [-offset N] [-record C] [-comma C] [-escape C] FILE
//
// Files ending in .lz4 are decompressed before parsing.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"unicode/utf8"

	"github.com/shapestone/shape-tcsv/internal/source"
	"github.com/shapestone/shape-tcsv/pkg/csv"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// config holds the parsed command line.
type config struct {
	path     string
	schema   string
	offset   int
	record   rune
	comma    rune
	escape   rune
	logLevel string
}

func parseFlags(args []string, stderr io.Writer) (config, error) {
	var cfg config
	var record, comma, escape string

	fs := flag.NewFlagSet("tcsv", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.schema, "schema", "", "comma-separated column types, e.g. int,string,string")
	fs.IntVar(&cfg.offset, "offset", 0, "index of the first row to print")
	fs.StringVar(&record, "record", `\n`, "record delimiter")
	fs.StringVar(&comma, "comma", ",", "column delimiter")
	fs.StringVar(&escape, "escape", `"`, "escape character (empty disables escaping)")
	fs.StringVar(&cfg.logLevel, "log-level", getEnv("TCSV_LOG_LEVEL", "info"), "log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if fs.NArg() != 1 {
		return cfg, errors.New("expected exactly one input file")
	}
	if cfg.schema == "" {
		return cfg, errors.New("-schema is required")
	}
	cfg.path = fs.Arg(0)

	var err error
	if cfg.record, err = parseChar(record); err != nil {
		return cfg, fmt.Errorf("-record: %w", err)
	}
	if cfg.comma, err = parseChar(comma); err != nil {
		return cfg, fmt.Errorf("-comma: %w", err)
	}
	if cfg.escape, err = parseChar(escape); err != nil {
		return cfg, fmt.Errorf("-escape: %w", err)
	}
	return cfg, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(stderr, "tcsv: %v\n", err)
		}
		return 2
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.logLevel),
	}))

	if err := printRows(cfg, stdout, logger); err != nil {
		logger.Error("parse failed", "file", cfg.path, "error", err)
		return 1
	}
	return 0
}

func printRows(cfg config, stdout io.Writer, logger *slog.Logger) error {
	schema, err := csv.ParseSchema(cfg.schema)
	if err != nil {
		return err
	}

	f, err := source.Open(cfg.path)
	if err != nil {
		return err
	}
	defer f.Close()

	logger.Debug("opened input",
		"file", cfg.path,
		"compressed", f.Compressed(),
		"version", Version,
	)

	p, err := csv.New(f, schema, csv.Options{
		Offset:          cfg.offset,
		RecordDelimiter: cfg.record,
		Comma:           cfg.comma,
		Escape:          cfg.escape,
		Logger:          logger,
	})
	if err != nil {
		return err
	}

	w := bufio.NewWriter(stdout)
	for row, err := range p.All() {
		if err != nil {
			w.Flush()
			return err
		}
		if err := writeRow(w, row); err != nil {
			w.Flush()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	logger.Info("done", "file", cfg.path, "rows", p.Len())
	return nil
}

func writeRow(w *bufio.Writer, row csv.Valuer) error {
	if err := csv.Render(w, row); err != nil {
		return err
	}
	return w.WriteByte('\n')
}

// parseChar reads a single-character flag value. The escapes \n, \r, \t and
// \\ are accepted; an empty value means "none".
func parseChar(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case `\n`:
		return '\n', nil
	case `\r`:
		return '\r', nil
	case `\t`:
		return '\t', nil
	case `\\`:
		return '\\', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if size != len(s) {
		return 0, fmt.Errorf("%q is not a single character", s)
	}
	return r, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
