package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/planar/quantize"
)

const sampleCSV = `,pa,ua,ia
0,2107.267332,223.9,14.387
1, 2106.5 ,224.1,14.301
not,a,sample,line
2,2105.1,223.8

3,-1.5,0,0.001,extra
`

func TestReadCSV(t *testing.T) {
	result, err := ReadCSV(context.Background(), strings.NewReader(sampleCSV), 0)
	require.NoError(t, err)

	require.Equal(t, []quantize.Sample{
		{Index: 0, Power: 2107.267332, Voltage: 223.9, Current: 14.387},
		{Index: 1, Power: 2106.5, Voltage: 224.1, Current: 14.301},
		{Index: 3, Power: -1.5, Voltage: 0, Current: 0.001},
	}, result.Samples)
	require.Equal(t, 6, result.Lines)
	require.Equal(t, 3, result.Skipped)
}

func TestReadCSV_MaxLines(t *testing.T) {
	result, err := ReadCSV(context.Background(), strings.NewReader(sampleCSV), 2)
	require.NoError(t, err)
	require.Len(t, result.Samples, 2)
	require.Equal(t, 1, result.Samples[1].Index)
	require.Equal(t, 3, result.Lines)
}

func TestReadCSV_Empty(t *testing.T) {
	result, err := ReadCSV(context.Background(), strings.NewReader(""), 10)
	require.NoError(t, err)
	require.Empty(t, result.Samples)
	require.Zero(t, result.Lines)
}

func TestReadCSV_MalformedQuote(t *testing.T) {
	input := "0,1,2,3\n1,2\"3,4,5\n2,1,2,3\n"
	result, err := ReadCSV(context.Background(), strings.NewReader(input), 0)
	require.NoError(t, err)
	require.Len(t, result.Samples, 2)
	require.Equal(t, 1, result.Skipped)
}

func TestReadCSV_ReaderError(t *testing.T) {
	errBroken := errors.New("broken pipe")
	_, err := ReadCSV(context.Background(), iotest.ErrReader(errBroken), 0)
	require.ErrorIs(t, err, errBroken)
}

func TestReadCSV_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ReadCSV(ctx, strings.NewReader(sampleCSV), 0)
	require.ErrorIs(t, err, context.Canceled)
}

func TestReader_ReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pui.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o600))

	result, err := NewReader(0, nil).ReadFile(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, result.Samples, 3)

	_, err = NewReader(0, nil).ReadFile(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
}
