package report

import (
	"fmt"
	"io"

	"github.com/TimeWtr/batch_scheduler"
)

// Reporter 输出调度结果
type Reporter interface {
	// Name 输出格式名称
	Name() string
	// Report 写出一次调度的结果
	Report(w io.Writer, res batch_scheduler.Result) error
}

func New(format string) (Reporter, error) {
	switch format {
	case "", "text":
		return &TextReporter{}, nil
	case "table":
		return &TableReporter{}, nil
	default:
		return nil, fmt.Errorf("unknown report format %q", format)
	}
}

// ReportAll 依次输出多个结果，每个结果前输出算法名称作为标题
func ReportAll(w io.Writer, r Reporter, results []batch_scheduler.Result) error {
	for i, res := range results {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "=== %s ===\n", res.Algorithm); err != nil {
			return err
		}
		if err := r.Report(w, res); err != nil {
			return err
		}
	}
	return nil
}
