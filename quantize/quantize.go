// Package quantize converts floating-point power/voltage/current samples into the
// packed fixed-point records and channels consumed by the transform pipeline.
//
// # Record layout
//
// A FixedPoint record occupies RecordSize (10) bytes with no padding:
//
//	offset 0: power   uint32  truncate(power   * 10)
//	offset 4: voltage uint16  truncate(voltage * 10)
//	offset 6: current uint32  truncate(current * 1000)
//
// Every field is stored in the quantizer's byte order (little-endian unless
// configured otherwise). Scaling truncates toward zero and narrowing to the field
// width keeps the low-order bits, so out-of-range readings wrap silently.
package quantize

import (
	"fmt"
	"log/slog"

	"github.com/arloliu/planar/channel"
	"github.com/arloliu/planar/endian"
	"github.com/arloliu/planar/errs"
	"github.com/arloliu/planar/format"
)

// Scale factors applied before truncation.
const (
	PowerScale   = 10
	VoltageScale = 10
	CurrentScale = 1000
)

// Field widths and offsets of the packed record.
const (
	PowerWidth   = 4
	VoltageWidth = 2
	CurrentWidth = 4
	RecordSize   = PowerWidth + VoltageWidth + CurrentWidth

	powerOffset   = 0
	voltageOffset = powerOffset + PowerWidth
	currentOffset = voltageOffset + VoltageWidth
)

// sampleLogLimit is the number of leading samples reported at debug level.
const sampleLogLimit = 10

// Sample is one ingested telemetry reading.
type Sample struct {
	Index   int
	Power   float64
	Voltage float64
	Current float64
}

// FixedPoint is the quantized form of a Sample.
type FixedPoint struct {
	Power   uint32
	Voltage uint16
	Current uint32
}

// Truncate scales value by factor and drops the fractional part (rounds toward zero).
func Truncate(value float64, factor int) int64 {
	return int64(value * float64(factor))
}

// Quantize maps a sample to its fixed-point record.
//
// Narrowing from the truncated int64 keeps the low-order bits of each field.
func Quantize(s Sample) FixedPoint {
	return FixedPoint{
		Power:   uint32(Truncate(s.Power, PowerScale)),     //nolint:gosec
		Voltage: uint16(Truncate(s.Voltage, VoltageScale)), //nolint:gosec
		Current: uint32(Truncate(s.Current, CurrentScale)), //nolint:gosec
	}
}

// FieldWidth returns the element width in bytes of the channel selected by f.
func FieldWidth(f format.Field) (int, error) {
	switch f {
	case format.FieldRecord:
		return RecordSize, nil
	case format.FieldPower:
		return PowerWidth, nil
	case format.FieldVoltage:
		return VoltageWidth, nil
	case format.FieldCurrent:
		return CurrentWidth, nil
	default:
		return 0, fmt.Errorf("%w: field %s", errs.ErrInvalidArgument, f)
	}
}

func fieldOffset(f format.Field) int {
	switch f {
	case format.FieldVoltage:
		return voltageOffset
	case format.FieldCurrent:
		return currentOffset
	default:
		return powerOffset
	}
}

// Channels holds the four channels produced from one batch of samples.
type Channels struct {
	Records channel.Channel // full records, width RecordSize
	Power   channel.Channel // width PowerWidth
	Voltage channel.Channel // width VoltageWidth
	Current channel.Channel // width CurrentWidth
}

// Get returns the channel selected by f.
func (c Channels) Get(f format.Field) (channel.Channel, error) {
	switch f {
	case format.FieldRecord:
		return c.Records, nil
	case format.FieldPower:
		return c.Power, nil
	case format.FieldVoltage:
		return c.Voltage, nil
	case format.FieldCurrent:
		return c.Current, nil
	default:
		return channel.Channel{}, fmt.Errorf("%w: field %s", errs.ErrInvalidArgument, f)
	}
}

// Quantizer packs samples using a fixed byte order.
type Quantizer struct {
	engine endian.EndianEngine
	logger *slog.Logger
}

// NewQuantizer creates a quantizer. The default byte order is little-endian.
func NewQuantizer(opts ...Option) (*Quantizer, error) {
	q := &Quantizer{
		engine: endian.GetLittleEndianEngine(),
		logger: slog.New(slog.DiscardHandler),
	}

	if err := applyOptions(q, opts...); err != nil {
		return nil, err
	}

	return q, nil
}

// Engine returns the byte order used for packing.
func (q *Quantizer) Engine() endian.EndianEngine {
	return q.engine
}

// AppendRecord appends the packed 10-byte form of fp to dst.
func (q *Quantizer) AppendRecord(dst []byte, fp FixedPoint) []byte {
	dst = q.engine.AppendUint32(dst, fp.Power)
	dst = q.engine.AppendUint16(dst, fp.Voltage)
	dst = q.engine.AppendUint32(dst, fp.Current)

	return dst
}

// PutRecord writes the packed form of fp into b[:RecordSize].
func (q *Quantizer) PutRecord(b []byte, fp FixedPoint) {
	q.engine.PutUint32(b[powerOffset:], fp.Power)
	q.engine.PutUint16(b[voltageOffset:], fp.Voltage)
	q.engine.PutUint32(b[currentOffset:], fp.Current)
}

// DecodeRecord parses the first RecordSize bytes of b.
func (q *Quantizer) DecodeRecord(b []byte) (FixedPoint, error) {
	if len(b) < RecordSize {
		return FixedPoint{}, fmt.Errorf("%w: got %d bytes, want %d", errs.ErrInvalidRecord, len(b), RecordSize)
	}

	return FixedPoint{
		Power:   q.engine.Uint32(b[powerOffset:]),
		Voltage: q.engine.Uint16(b[voltageOffset:]),
		Current: q.engine.Uint32(b[currentOffset:]),
	}, nil
}

// Channels quantizes samples in one pass into pre-sized record and field channels.
func (q *Quantizer) Channels(samples []Sample) Channels {
	n := len(samples)
	records := make([]byte, n*RecordSize)
	power := make([]byte, n*PowerWidth)
	voltage := make([]byte, n*VoltageWidth)
	current := make([]byte, n*CurrentWidth)

	for i, s := range samples {
		fp := Quantize(s)
		q.PutRecord(records[i*RecordSize:], fp)
		q.engine.PutUint32(power[i*PowerWidth:], fp.Power)
		q.engine.PutUint16(voltage[i*VoltageWidth:], fp.Voltage)
		q.engine.PutUint32(current[i*CurrentWidth:], fp.Current)

		if s.Index < sampleLogLimit {
			q.logger.Debug("quantized sample",
				slog.Int("index", s.Index),
				slog.Float64("power", s.Power),
				slog.Float64("voltage", s.Voltage),
				slog.Float64("current", s.Current),
				slog.Uint64("p", uint64(fp.Power)),
				slog.Uint64("u", uint64(fp.Voltage)),
				slog.Uint64("i", uint64(fp.Current)),
			)
		}
	}

	return Channels{
		Records: mustChannel(records, RecordSize),
		Power:   mustChannel(power, PowerWidth),
		Voltage: mustChannel(voltage, VoltageWidth),
		Current: mustChannel(current, CurrentWidth),
	}
}

// ExtractField copies one scalar field out of a record channel.
func (q *Quantizer) ExtractField(records channel.Channel, f format.Field) (channel.Channel, error) {
	if records.Width() != RecordSize {
		return channel.Channel{}, fmt.Errorf("%w: record channel width %d, want %d", errs.ErrInvalidWidth, records.Width(), RecordSize)
	}

	width, err := FieldWidth(f)
	if err != nil {
		return channel.Channel{}, err
	}
	if f == format.FieldRecord {
		return records.Clone(), nil
	}

	offset := fieldOffset(f)
	n := records.Len()
	out := make([]byte, n*width)
	for i := range n {
		copy(out[i*width:(i+1)*width], records.Element(i)[offset:offset+width])
	}

	return channel.New(out, width)
}

func mustChannel(data []byte, width int) channel.Channel {
	c, err := channel.New(data, width)
	if err != nil {
		panic(err)
	}

	return c
}
