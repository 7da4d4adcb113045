package measure

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/planar/channel"
	"github.com/arloliu/planar/format"
	"github.com/arloliu/planar/internal/hash"
	"github.com/arloliu/planar/segment"
)

func sampleArtifacts(t *testing.T) []segment.Artifact {
	t.Helper()

	data := make([]byte, 4*512)
	for i := range 512 {
		data[i*4] = byte(i)
		data[i*4+1] = byte(i >> 8)
	}
	ch, err := channel.New(data, 4)
	require.NoError(t, err)

	ctx := context.Background()
	var out []segment.Artifact
	for _, kind := range []format.TransformKind{format.TransformRaw, format.TransformBytePlane} {
		d, err := segment.NewDispatcher(segment.WithFactor(2), segment.WithKind(kind))
		require.NoError(t, err)

		base := "raw_i"
		if kind == format.TransformBytePlane {
			base = "byte_i"
		}
		artifacts, err := d.Dispatch(ctx, ch, base, segment.NewMemorySink())
		require.NoError(t, err)
		out = append(out, artifacts...)
	}

	return out
}

func TestNewMeasurer_Defaults(t *testing.T) {
	m, err := NewMeasurer()
	require.NoError(t, err)
	require.Equal(t, []format.CompressionType{
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
		format.CompressionDeflate,
	}, m.Codecs())
}

func TestNewMeasurer_WithCodecs(t *testing.T) {
	m, err := NewMeasurer(WithCodecs(format.CompressionS2, format.CompressionS2, format.CompressionNone))
	require.NoError(t, err)
	require.Equal(t, []format.CompressionType{format.CompressionS2, format.CompressionNone}, m.Codecs())

	_, err = NewMeasurer(WithCodecs())
	require.Error(t, err)

	_, err = NewMeasurer(WithCodecs(format.CompressionType(0xEE)))
	require.Error(t, err)
}

func TestMeasurer_Measure(t *testing.T) {
	artifacts := sampleArtifacts(t)
	m, err := NewMeasurer(
		WithCodecs(format.CompressionZstd, format.CompressionNone),
		WithParallelism(3),
	)
	require.NoError(t, err)

	report, err := m.Measure(context.Background(), artifacts)
	require.NoError(t, err)
	require.Len(t, report.Entries, len(artifacts)*2)

	names := make([]string, 0, len(report.Entries))
	for _, e := range report.Entries {
		names = append(names, e.Artifact+"/"+e.Algorithm.String())
	}
	require.Equal(t, []string{
		"byte_i.00/None", "byte_i.00/Zstd",
		"byte_i.01/None", "byte_i.01/Zstd",
		"raw_i.00/None", "raw_i.00/Zstd",
		"raw_i.01/None", "raw_i.01/Zstd",
	}, names)

	byName := make(map[string]segment.Artifact)
	for _, a := range artifacts {
		byName[a.Name] = a
	}
	for _, e := range report.Entries {
		a := byName[e.Artifact]
		require.Equal(t, hash.Checksum(a.Data), e.Checksum)
		require.Equal(t, int64(len(a.Data)), e.OriginalSize)
		require.Equal(t, a.Base, e.Base)
		require.Equal(t, a.Index, e.Index)
		if e.Algorithm == format.CompressionNone {
			require.Equal(t, e.OriginalSize, e.CompressedSize)
		}
	}
}

func TestMeasurer_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m, err := NewMeasurer()
	require.NoError(t, err)

	_, err = m.Measure(ctx, sampleArtifacts(t))
	require.ErrorIs(t, err, context.Canceled)
}

func TestReport_Summary(t *testing.T) {
	report := Report{Entries: []Entry{
		entry("bit_p.00", "bit_p", format.CompressionZstd, 100, 40),
		entry("bit_p.00", "bit_p", format.CompressionS2, 100, 60),
		entry("bit_p.01", "bit_p", format.CompressionZstd, 100, 20),
		entry("bit_p.01", "bit_p", format.CompressionS2, 100, 50),
		entry("raw_p.00", "raw_p", format.CompressionZstd, 100, 90),
	}}

	totals := report.Summary()
	require.Len(t, totals, 3)

	require.Equal(t, Total{Base: "bit_p", Algorithm: format.CompressionZstd, Artifacts: 2, OriginalSize: 200, CompressedSize: 60}, totals[0])
	require.Equal(t, Total{Base: "bit_p", Algorithm: format.CompressionS2, Artifacts: 2, OriginalSize: 200, CompressedSize: 110}, totals[1])
	require.Equal(t, "raw_p", totals[2].Base)
	require.InDelta(t, 0.3, totals[0].Ratio(), 1e-9)
	require.Zero(t, Total{}.Ratio())

	best := report.Best()
	require.Equal(t, format.CompressionZstd, best["bit_p"].Algorithm)
	require.Equal(t, int64(90), best["raw_p"].CompressedSize)
}

func TestReport_WriteTable(t *testing.T) {
	report := Report{Entries: []Entry{
		entry("diff_u.00", "diff_u", format.CompressionLZ4, 2048, 512),
	}}

	var buf bytes.Buffer
	require.NoError(t, report.WriteTable(&buf))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	require.Contains(t, lines[0], "compressed")
	require.Contains(t, lines[1], "diff_u")
	require.Contains(t, lines[1], "LZ4")
	require.Contains(t, lines[1], "0.2500")
	require.Contains(t, lines[1], "75.00%")

	buf.Reset()
	require.NoError(t, report.WriteDetail(&buf))
	require.Contains(t, buf.String(), "diff_u.00")
	require.Contains(t, buf.String(), "00000000000000ab")
}

func entry(name, base string, ct format.CompressionType, original, compressed int64) Entry {
	e := Entry{Artifact: name, Base: base, Checksum: 0xab}
	e.Algorithm = ct
	e.OriginalSize = original
	e.CompressedSize = compressed

	return e
}
