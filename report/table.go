package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/TimeWtr/batch_scheduler"
	_const "github.com/TimeWtr/batch_scheduler/const"
	"github.com/TimeWtr/batch_scheduler/domain"
	"github.com/olekukonko/tablewriter"
)

// TableReporter 甘特图加上每个作业的指标表格
type TableReporter struct{}

func (t *TableReporter) Name() string {
	return "table"
}

func (t *TableReporter) Report(w io.Writer, res batch_scheduler.Result) error {
	if err := outputGantt(w, res.Schedule.Segments); err != nil {
		return err
	}
	return outputSchedule(w, res.Report)
}

func outputGantt(w io.Writer, segments []domain.Segment) error {
	var bars, scale strings.Builder
	bars.WriteString("|")
	for _, seg := range segments {
		pid := fmt.Sprint(seg.JobID)
		if seg.Status == _const.SegmentPreempted {
			pid += "*"
		}
		padding := strings.Repeat(" ", max(0, (8-len(pid))/2))
		bars.WriteString(padding + pid + padding + "|")
		scale.WriteString(fmt.Sprint(seg.Start) + "\t")
	}
	if n := len(segments); n > 0 {
		scale.WriteString(fmt.Sprint(segments[n-1].End()))
	}

	_, err := fmt.Fprintf(w, "Gantt schedule\n%s\n%s\n\n", bars.String(), scale.String())
	return err
}

func outputSchedule(w io.Writer, r batch_scheduler.Report) error {
	if _, err := fmt.Fprintln(w, "Schedule table"); err != nil {
		return err
	}

	rows := make([][]string, 0, len(r.Jobs))
	for _, m := range r.Jobs {
		rows = append(rows, []string{
			fmt.Sprint(m.JobID),
			fmt.Sprint(m.ArrivalTime),
			fmt.Sprint(m.ServiceTime),
			fmt.Sprint(m.Completion),
			fmt.Sprint(m.Turnaround),
			fmt.Sprint(m.Wait),
		})
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Arrival", "Service", "Exit", "Turnaround", "Wait"})
	table.AppendBulk(rows)
	table.SetFooter([]string{"", "", "",
		fmt.Sprintf("Utilization\n%.2f", r.Utilization),
		fmt.Sprintf("Average\n%.2f", r.AverageTurnaround),
		fmt.Sprintf("Average\n%.2f", r.AverageWait)})
	table.Render()
	return nil
}
