package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/wippyai/deparse"
)

func main() {
	var (
		opName      = flag.String("op", deparse.OpStatements, "Entry point to call")
		sqlText     = flag.String("sql", "", "SQL text to parse and deparse")
		sqlFile     = flag.String("file", "", "Read SQL text from file")
		payloadFile = flag.String("payload", "", "Deparse an encoded payload file instead of SQL")
		emitFile    = flag.String("emit", "", "Write the encoded payload to file")
		configFile  = flag.String("config", "", "Path to YAML config file")
		stats       = flag.Bool("stats", false, "Print arena and heap statistics")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	cfg := deparse.DefaultConfig()
	if *configFile != "" {
		var err error
		if cfg, err = deparse.LoadConfig(*configFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	log, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()
	cfg.Logger = log

	d, err := deparse.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *interactive {
		if err := runInteractive(d); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	op, err := lookup(*opName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	payload, err := readPayload(op, *sqlText, *sqlFile, *payloadFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Usage: deparse [-op name] -sql 'SELECT 1' | -file query.sql | -payload tree.pb")
		fmt.Fprintln(os.Stderr, "       echo 'SELECT 1' | deparse")
		fmt.Fprintln(os.Stderr, "       deparse -i  (interactive mode)")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *emitFile != "" {
		if err := os.WriteFile(*emitFile, payload, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error: write payload: %v\n", err)
			os.Exit(1)
		}
	}

	code := run(d, op, payload, os.Stdout, os.Stderr)
	if *stats {
		printStats(os.Stderr, d.Stats())
	}
	os.Exit(code)
}

// run deparses payload and prints the text or the error record. It
// returns the process exit code.
func run(d *deparse.Deparser, op operation, payload []byte, stdout, stderr io.Writer) int {
	res := op.call(d, payload)
	defer res.Free()

	if rec := res.Error; rec != nil {
		printRecord(stderr, rec)
		return 2
	}
	fmt.Fprintln(stdout, res.Text)
	return 0
}

func readPayload(op operation, sqlText, sqlFile, payloadFile string) ([]byte, error) {
	if payloadFile != "" {
		data, err := os.ReadFile(payloadFile)
		if err != nil {
			return nil, fmt.Errorf("read payload: %w", err)
		}
		return data, nil
	}

	sql := sqlText
	switch {
	case sql != "":
	case sqlFile != "":
		data, err := os.ReadFile(sqlFile)
		if err != nil {
			return nil, fmt.Errorf("read file: %w", err)
		}
		sql = string(data)
	case !term.IsTerminal(int(os.Stdin.Fd())):
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		sql = string(data)
	default:
		return nil, fmt.Errorf("no input")
	}

	payload, err := op.encode(sql)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return payload, nil
}

func printRecord(w io.Writer, rec *deparse.ErrorRecord) {
	fmt.Fprintf(w, "Error: [%s] %s: %s\n", rec.Phase, rec.Kind, rec.Message)
	if rec.CursorPosition > 0 {
		fmt.Fprintf(w, "  position: %d\n", rec.CursorPosition)
	}
	if rec.SourceFile != "" {
		fmt.Fprintf(w, "  raised at: %s:%d (%s)\n", rec.SourceFile, rec.LineNumber, rec.SourceFunction)
	}
	if rec.Context != "" {
		fmt.Fprintf(w, "  context:\n")
		for _, line := range strings.Split(rec.Context, "\n") {
			fmt.Fprintf(w, "    %s\n", line)
		}
	}
}

func printStats(w io.Writer, s deparse.Stats) {
	fmt.Fprintf(w, "arena: entered=%d live=%d idle_chunks=%d allocated=%d reused=%d\n",
		s.Arena.Entered, s.Arena.Live, s.Arena.IdleChunks, s.Arena.ChunksAllocated, s.Arena.ChunksReused)
	fmt.Fprintf(w, "heap: objects=%d bytes=%d\n", s.Heap.Objects, s.Heap.Bytes)
}

func newLogger(cfg deparse.Config) (*zap.Logger, error) {
	lvl, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	if lvl == zapcore.DebugLevel {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.OutputPaths = []string{"stderr"}
	return zc.Build()
}
