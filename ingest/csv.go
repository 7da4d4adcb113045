// Package ingest reads raw telemetry samples from CSV exports.
//
// Each data line carries "index,power,voltage,current". Lines that do not
// parse, the column header included, are skipped and counted rather than
// treated as errors.
package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/arloliu/planar/quantize"
)

// Result is the outcome of a CSV read.
type Result struct {
	Samples []quantize.Sample
	Lines   int // records read, accepted or not
	Skipped int // records that did not parse
}

// Reader parses telemetry CSV.
type Reader struct {
	maxLines int
	logger   *slog.Logger
}

// NewReader creates a Reader that stops after maxLines accepted samples.
// maxLines <= 0 reads the whole input.
func NewReader(maxLines int, logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Reader{maxLines: maxLines, logger: logger}
}

// ReadCSV reads samples from r with a discarding logger.
func ReadCSV(ctx context.Context, r io.Reader, maxLines int) (Result, error) {
	return NewReader(maxLines, nil).Read(ctx, r)
}

// ReadFile opens path and reads samples from it.
func (rd *Reader) ReadFile(ctx context.Context, path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to open telemetry file: %w", err)
	}
	defer f.Close()

	return rd.Read(ctx, f)
}

// Read parses samples from r until EOF or the line limit.
//
// Context cancellation is checked between records. Errors from the underlying
// reader are returned together with the samples accepted so far.
func (rd *Reader) Read(ctx context.Context, r io.Reader) (Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true

	var result Result
	if rd.maxLines > 0 {
		result.Samples = make([]quantize.Sample, 0, rd.maxLines)
	}

	for rd.maxLines <= 0 || len(result.Samples) < rd.maxLines {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		result.Lines++

		if err != nil {
			var pe *csv.ParseError
			if !errors.As(err, &pe) {
				return result, fmt.Errorf("failed to read csv: %w", err)
			}

			result.Skipped++
			rd.logger.Debug("skipping malformed csv line", slog.Int("line", pe.Line), slog.String("error", pe.Err.Error()))

			continue
		}

		sample, err := parseRecord(record)
		if err != nil {
			result.Skipped++
			rd.logger.Debug("skipping invalid line",
				slog.Int("line", result.Lines),
				slog.String("record", strings.Join(record, ",")),
				slog.String("error", err.Error()))

			continue
		}

		result.Samples = append(result.Samples, sample)
	}

	rd.logger.Info("telemetry read",
		slog.Int("samples", len(result.Samples)),
		slog.Int("lines", result.Lines),
		slog.Int("skipped", result.Skipped))

	return result, nil
}

func parseRecord(record []string) (quantize.Sample, error) {
	if len(record) < 4 {
		return quantize.Sample{}, fmt.Errorf("expected 4 fields, got %d", len(record))
	}

	index, err := strconv.Atoi(strings.TrimSpace(record[0]))
	if err != nil {
		return quantize.Sample{}, fmt.Errorf("invalid index: %w", err)
	}

	var values [3]float64
	for i := range values {
		values[i], err = strconv.ParseFloat(strings.TrimSpace(record[i+1]), 64)
		if err != nil {
			return quantize.Sample{}, fmt.Errorf("invalid field %d: %w", i+1, err)
		}
	}

	return quantize.Sample{
		Index:   index,
		Power:   values[0],
		Voltage: values[1],
		Current: values[2],
	}, nil
}
