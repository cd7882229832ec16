package report

import (
	"bufio"
	"fmt"
	"io"

	"github.com/TimeWtr/batch_scheduler"
)

// TextReporter 执行顺序每行一个作业ID，随后是平均周转时间和平均等待时间
type TextReporter struct{}

func (t *TextReporter) Name() string {
	return "text"
}

func (t *TextReporter) Report(w io.Writer, res batch_scheduler.Result) error {
	bw := bufio.NewWriter(w)
	_, _ = fmt.Fprintln(bw, "PID ORDER OF EXECUTION")
	for _, id := range res.Schedule.Order() {
		_, _ = fmt.Fprintln(bw, id)
	}
	_, _ = fmt.Fprintf(bw, "Average Process Turnaround Time: %.2f\n", res.Report.AverageTurnaround)
	_, _ = fmt.Fprintf(bw, "Average Process Wait Time: %.2f\n", res.Report.AverageWait)
	return bw.Flush()
}
