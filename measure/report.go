package measure

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"text/tabwriter"

	"github.com/arloliu/planar/format"
)

// Report holds the measured entries of one Measure call, sorted by artifact
// name and codec.
type Report struct {
	Entries []Entry
}

// Total aggregates every segment of one base name under one codec.
type Total struct {
	Base           string
	Algorithm      format.CompressionType
	Artifacts      int
	OriginalSize   int64
	CompressedSize int64
}

// Ratio returns CompressedSize / OriginalSize, or 0 when nothing was measured.
func (t Total) Ratio() float64 {
	if t.OriginalSize == 0 {
		return 0
	}

	return float64(t.CompressedSize) / float64(t.OriginalSize)
}

// Summary aggregates entries per (base name, codec), sorted the same way.
func (r Report) Summary() []Total {
	index := make(map[string]map[format.CompressionType]int)
	var totals []Total

	for _, e := range r.Entries {
		byCodec, ok := index[e.Base]
		if !ok {
			byCodec = make(map[format.CompressionType]int)
			index[e.Base] = byCodec
		}

		i, ok := byCodec[e.Algorithm]
		if !ok {
			i = len(totals)
			byCodec[e.Algorithm] = i
			totals = append(totals, Total{Base: e.Base, Algorithm: e.Algorithm})
		}

		totals[i].Artifacts++
		totals[i].OriginalSize += e.OriginalSize
		totals[i].CompressedSize += e.CompressedSize
	}

	slices.SortFunc(totals, func(a, b Total) int {
		return cmp.Or(cmp.Compare(a.Base, b.Base), cmp.Compare(a.Algorithm, b.Algorithm))
	})

	return totals
}

// Best returns, for each base name, the total of the codec with the smallest
// compressed size. Ties go to the lower compression type.
func (r Report) Best() map[string]Total {
	best := make(map[string]Total)
	for _, t := range r.Summary() {
		if cur, ok := best[t.Base]; !ok || t.CompressedSize < cur.CompressedSize {
			best[t.Base] = t
		}
	}

	return best
}

// WriteTable prints Summary as an aligned text table.
func (r Report) WriteTable(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	fmt.Fprintln(tw, "base\tcodec\tsegments\toriginal\tcompressed\tratio\tsavings\t")
	for _, t := range r.Summary() {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%.4f\t%.2f%%\t\n",
			t.Base, t.Algorithm, t.Artifacts, t.OriginalSize, t.CompressedSize,
			t.Ratio(), (1-t.Ratio())*100)
	}

	return tw.Flush()
}

// WriteDetail prints one line per entry, including the artifact checksum.
func (r Report) WriteDetail(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "artifact\tcodec\toriginal\tcompressed\tratio\txxh64")
	for _, e := range r.Entries {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%.4f\t%016x\n",
			e.Artifact, e.Algorithm, e.OriginalSize, e.CompressedSize,
			e.CompressionRatio(), e.Checksum)
	}

	return tw.Flush()
}
