package report

import (
	"context"
	"fmt"
	"io"

	"github.com/bytedance/sonic"

	"internbench/harness"
)

// JSONReporter 把全部结果写成一个 JSON 数组
type JSONReporter struct {
	w      io.Writer
	closer io.Closer
}

func NewJSON(w io.Writer) *JSONReporter {
	return &JSONReporter{w: w, closer: nopCloser{}}
}

func (r *JSONReporter) Report(_ context.Context, results []harness.Result) error {
	if results == nil {
		results = []harness.Result{}
	}
	data, err := sonic.ConfigStd.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("report: marshal json: %w", err)
	}
	data = append(data, '\n')
	if _, err := r.w.Write(data); err != nil {
		return fmt.Errorf("report: write json: %w", err)
	}
	return nil
}

func (r *JSONReporter) Close() error {
	return r.closer.Close()
}
