package pipeline

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/planar/endian"
	"github.com/arloliu/planar/errs"
	"github.com/arloliu/planar/format"
	"github.com/arloliu/planar/quantize"
	"github.com/arloliu/planar/segment"
)

func telemetry(n int) []quantize.Sample {
	samples := make([]quantize.Sample, n)
	for i := range samples {
		phase := float64(i) / 50
		samples[i] = quantize.Sample{
			Index:   i,
			Power:   2100 + 30*math.Sin(phase),
			Voltage: 223.9 + math.Sin(phase*3),
			Current: 14.3 + 0.2*math.Cos(phase),
		}
	}

	return samples
}

func TestVariants(t *testing.T) {
	bases := func(f format.Field) []string {
		var out []string
		for _, v := range Variants(f) {
			out = append(out, v.Base)
		}

		return out
	}

	require.Equal(t, []string{"byte", "bit"}, bases(format.FieldRecord))
	require.Equal(t, []string{"raw_u", "byte_u", "bit_u", "diff_u", "diff_byte_u", "diff_bit_u"}, bases(format.FieldVoltage))

	for _, v := range Variants(format.FieldPower) {
		if v.Plan.Kind == format.TransformDelta {
			require.Equal(t, format.DeltaZigzag, v.Plan.Delta, v.Base)
		}
	}
	for _, v := range Variants(format.FieldCurrent) {
		if v.Plan.Kind == format.TransformDelta {
			require.Equal(t, format.DeltaSignMagnitude, v.Plan.Delta, v.Base)
		}
	}

	require.Equal(t, "pui_input.b", InputName(format.FieldRecord))
	require.Equal(t, "i_input.b", InputName(format.FieldCurrent))
}

func TestNew_Options(t *testing.T) {
	_, err := New(nil)
	require.ErrorIs(t, err, errs.ErrNilSink)

	r, err := New(segment.NewMemorySink())
	require.NoError(t, err)
	cfg := r.Config()
	require.Equal(t, DefaultSegments, cfg.Segments)
	require.Len(t, cfg.Fields, 4)
	require.Empty(t, cfg.Codecs)

	_, err = New(segment.NewMemorySink(), WithSegments(0))
	require.ErrorIs(t, err, errs.ErrSegmentFactor)

	_, err = New(segment.NewMemorySink(), WithFields())
	require.Error(t, err)

	_, err = New(segment.NewMemorySink(), WithFields(format.Field(0x9)))
	require.ErrorIs(t, err, errs.ErrInvalidArgument)

	r, err = New(segment.NewMemorySink(), WithFields(format.FieldPower, format.FieldPower))
	require.NoError(t, err)
	require.Equal(t, []format.Field{format.FieldPower}, r.Config().Fields)
}

func TestRunner_Run(t *testing.T) {
	sink := segment.NewMemorySink()
	r, err := New(sink,
		WithSegments(4),
		WithVerify(true),
		WithWriteInputs(true),
		WithParallelism(3),
		WithCodecs(format.CompressionZstd, format.CompressionLZ4),
	)
	require.NoError(t, err)

	samples := telemetry(400)
	result, err := r.Run(context.Background(), samples)
	require.NoError(t, err)

	// 2 record variants + 3 fields * 6 variants, 4 segments each
	require.Len(t, result.Artifacts, (2+3*6)*4)
	require.Equal(t, result.Artifacts, sink.Artifacts())
	require.Equal(t, 400, result.Samples)
	require.Zero(t, result.Clamped)

	require.Equal(t, "byte.00", result.Artifacts[0].Name)
	require.Equal(t, "diff_bit_i.03", result.Artifacts[len(result.Artifacts)-1].Name)

	for _, f := range []format.Field{format.FieldRecord, format.FieldPower, format.FieldVoltage, format.FieldCurrent} {
		data, ok := sink.File(InputName(f))
		require.True(t, ok, f.String())

		width, err := quantize.FieldWidth(f)
		require.NoError(t, err)
		require.Len(t, data, 400*width)
	}

	readme, ok := sink.File(ReadmeName)
	require.True(t, ok)
	lines := strings.Split(strings.TrimSpace(string(readme)), "\n")
	require.Len(t, lines, 5)
	require.Equal(t, "####  test puis, segments 4, segsize 10*100  ####", lines[0])
	require.Equal(t, "####  test current, segments 4, segsize 4*100  ####", lines[3])
	require.True(t, strings.HasPrefix(lines[4], "xxh64 "))

	require.NotNil(t, result.Report)
	require.Len(t, result.Report.Entries, len(result.Artifacts)*2)
	require.Len(t, result.Report.Summary(), 20*2)
}

func TestRunner_RunRestoresChannels(t *testing.T) {
	sink := segment.NewMemorySink()
	r, err := New(sink, WithSegments(5), WithFields(format.FieldPower, format.FieldVoltage))
	require.NoError(t, err)

	samples := telemetry(200)
	_, err = r.Run(context.Background(), samples)
	require.NoError(t, err)

	q, err := quantize.NewQuantizer()
	require.NoError(t, err)
	channels := q.Channels(samples)

	engine := endian.GetLittleEndianEngine()
	for _, f := range []format.Field{format.FieldPower, format.FieldVoltage} {
		want, err := channels.Get(f)
		require.NoError(t, err)

		for _, v := range Variants(f) {
			restored, err := segment.Restore(engine, sink.ArtifactsOf(v.Base)...)
			require.NoError(t, err, v.Base)
			require.Equal(t, want.Bytes(), restored.Bytes(), v.Base)
		}
	}
}

func TestRunner_RunDeterministicDigest(t *testing.T) {
	samples := telemetry(80)

	run := func(parallelism int) uint64 {
		r, err := New(segment.NewMemorySink(), WithSegments(2), WithParallelism(parallelism))
		require.NoError(t, err)

		result, err := r.Run(context.Background(), samples)
		require.NoError(t, err)

		return result.Digest
	}

	require.Equal(t, run(1), run(4))
}

func TestRunner_RunValidatesBeforeWriting(t *testing.T) {
	tests := []struct {
		name    string
		samples int
		opts    []Option
		wantErr error
	}{
		{name: "segments do not divide", samples: 99, wantErr: errs.ErrSegmentFactor},
		{name: "bit-plane segment too short", samples: 30, opts: []Option{WithSegments(10)}, wantErr: errs.ErrInvalidLength},
		{name: "no samples", samples: 0, wantErr: errs.ErrEmptyBuffer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := segment.NewMemorySink()
			r, err := New(sink, append([]Option{WithWriteInputs(true)}, tt.opts...)...)
			require.NoError(t, err)

			_, err = r.Run(context.Background(), telemetry(tt.samples))
			require.ErrorIs(t, err, tt.wantErr)
			require.Empty(t, sink.Artifacts())

			_, ok := sink.File(InputName(format.FieldRecord))
			require.False(t, ok)
		})
	}
}

func TestRunner_WriteInputsNeedsFileWriter(t *testing.T) {
	sink := segment.SinkFunc(func(context.Context, segment.Artifact) error { return nil })
	r, err := New(sink, WithSegments(1), WithWriteInputs(true))
	require.NoError(t, err)

	_, err = r.Run(context.Background(), telemetry(8))
	require.ErrorIs(t, err, errs.ErrInvalidArgument)
}

func TestRunner_RunToDirectory(t *testing.T) {
	dir := t.TempDir()
	r, err := New(segment.NewDirSink(dir), WithSegments(2), WithFields(format.FieldVoltage), WithWriteInputs(true))
	require.NoError(t, err)

	_, err = r.Run(context.Background(), telemetry(16))
	require.NoError(t, err)

	for _, name := range []string{"u_input.b", "raw_u.00", "diff_bit_u.01", ReadmeName} {
		_, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
	}

	data, err := os.ReadFile(filepath.Join(dir, "raw_u.01"))
	require.NoError(t, err)
	require.Len(t, data, 16)
}
