// Command planar quantizes a telemetry CSV export, writes every segment
// transform variant to an output directory and prints how well each variant
// compresses.
//
// Usage:
//
//	planar -input pui.org.csv -lines 102400 -segments 10 -out out
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/arloliu/planar/endian"
	"github.com/arloliu/planar/format"
	"github.com/arloliu/planar/ingest"
	"github.com/arloliu/planar/pipeline"
	"github.com/arloliu/planar/segment"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}

type options struct {
	input       string
	lines       int
	segments    int
	out         string
	channels    string
	codecs      string
	verify      bool
	parallel    int
	writeInputs bool
	bigEndian   bool
	detail      bool
	logLevel    string
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options

	fs := flag.NewFlagSet("planar", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.input, "input", "pui.org.csv", "Telemetry CSV file (index,power,voltage,current)")
	fs.IntVar(&o.lines, "lines", 102400, "Maximum number of samples to read")
	fs.IntVar(&o.segments, "segments", pipeline.DefaultSegments, "Number of segments per channel")
	fs.StringVar(&o.out, "out", "out", "Output directory for artifacts")
	fs.StringVar(&o.channels, "channels", "pui,p,u,i", "Comma-separated channels to process")
	fs.StringVar(&o.codecs, "codecs", "none,zstd,s2,lz4,deflate", "Comma-separated codecs to measure (empty to skip)")
	fs.BoolVar(&o.verify, "verify", false, "Round-trip every segment before writing it")
	fs.IntVar(&o.parallel, "parallel", 1, "Concurrent segment transforms and compressions")
	fs.BoolVar(&o.writeInputs, "write-inputs", false, "Also write the quantized input channels")
	fs.BoolVar(&o.bigEndian, "big-endian", false, "Pack records big-endian instead of little-endian")
	fs.BoolVar(&o.detail, "detail", false, "Print one line per artifact and codec")
	fs.StringVar(&o.logLevel, "log-level", "info", "Log level: debug, info, warn or error")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	if o.lines <= 0 {
		return options{}, errors.New("-lines must be positive")
	}
	if o.segments <= 0 {
		return options{}, errors.New("-segments must be positive")
	}

	return o, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(o.logLevel)); err != nil {
		return fmt.Errorf("invalid -log-level: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	fields, err := parseList(o.channels, format.ParseField)
	if err != nil {
		return fmt.Errorf("invalid -channels: %w", err)
	}
	codecs, err := parseList(o.codecs, format.ParseCompression)
	if err != nil {
		return fmt.Errorf("invalid -codecs: %w", err)
	}

	engine := endian.GetLittleEndianEngine()
	if o.bigEndian {
		engine = endian.GetBigEndianEngine()
	}

	read, err := ingest.NewReader(o.lines, logger).ReadFile(ctx, o.input)
	if err != nil {
		return err
	}

	runner, err := pipeline.New(segment.NewDirSink(o.out),
		pipeline.WithSegments(o.segments),
		pipeline.WithFields(fields...),
		pipeline.WithCodecs(codecs...),
		pipeline.WithParallelism(o.parallel),
		pipeline.WithVerify(o.verify),
		pipeline.WithWriteInputs(o.writeInputs),
		pipeline.WithEngine(engine),
		pipeline.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	result, err := runner.Run(ctx, read.Samples)
	if err != nil {
		return err
	}

	logger.Info("run complete",
		slog.Int("samples", result.Samples),
		slog.Int("artifacts", len(result.Artifacts)),
		slog.Int("clamped", result.Clamped),
		slog.String("out", o.out),
		slog.String("xxh64", fmt.Sprintf("%016x", result.Digest)))

	if result.Report == nil {
		return nil
	}
	if o.detail {
		if err := result.Report.WriteDetail(stdout); err != nil {
			return err
		}
		fmt.Fprintln(stdout)
	}

	return result.Report.WriteTable(stdout)
}

func parseList[T any](value string, parse func(string) (T, error)) ([]T, error) {
	var out []T
	for item := range strings.SplitSeq(value, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		v, err := parse(item)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}

	return out, nil
}
