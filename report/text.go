package report

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"internbench/harness"
)

// TextReporter 类似 JMH 的表格输出
type TextReporter struct {
	w      io.Writer
	closer io.Closer
}

func NewText(w io.Writer) *TextReporter {
	return &TextReporter{w: w, closer: nopCloser{}}
}

func (r *TextReporter) Report(_ context.Context, results []harness.Result) error {
	tw := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Strategy\tStringCount\tCacheHit\tThreads\tCnt\tScore\t\tError\tns/string\tTable\tUnits\t")
	for _, res := range results {
		table := "-"
		if res.TableSize >= 0 {
			table = fmt.Sprint(res.TableSize)
		}
		fmt.Fprintf(tw, "%s\t%d\t%t\t%d\t%d\t%.3f\t±\t%.3f\t%.3f\t%s\tns/op\t\n",
			res.Strategy, res.StringCount, res.CacheHit, res.Threads, len(res.Scores),
			res.Mean, res.Error, res.NsPerString, table)
	}
	return tw.Flush()
}

func (r *TextReporter) Close() error {
	return r.closer.Close()
}
