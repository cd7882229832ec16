package batch_scheduler

import (
	"errors"
	"fmt"

	"github.com/TimeWtr/batch_scheduler/domain"
)

var (
	ErrEmptyBatch        = errors.New("empty batch")
	ErrMissingCompletion = errors.New("job missing from schedule")
)

// JobMetrics 单个作业的时间指标
type JobMetrics struct {
	JobID       int `json:"job_id"`
	ArrivalTime int `json:"arrival_time"`
	ServiceTime int `json:"service_time"`
	Completion  int `json:"completion"`
	// Turnaround 完成时间 - 到达时间
	Turnaround int `json:"turnaround"`
	// Wait 周转时间 - 服务时间
	Wait int `json:"wait"`
}

// Report 一次调度的指标汇总
type Report struct {
	Jobs              []JobMetrics `json:"jobs"`
	AverageTurnaround float64      `json:"average_turnaround"`
	AverageWait       float64      `json:"average_wait"`
	Makespan          int          `json:"makespan"`
	Busy              int          `json:"busy"`
	Idle              int          `json:"idle"`
	Utilization       float64      `json:"utilization"`
	Throughput        float64      `json:"throughput"`
	Preemptions       int          `json:"preemptions"`
}

// Evaluate 计算每个作业的周转时间和等待时间，Jobs 保持传入的顺序
// 等待时间使用作业原始的服务时间，与各片段执行时间之和相等
func Evaluate(jobs []domain.Job, schedule domain.Schedule) (Report, error) {
	if len(jobs) == 0 {
		return Report{}, ErrEmptyBatch
	}

	report := Report{
		Jobs:        make([]JobMetrics, 0, len(jobs)),
		Makespan:    schedule.Makespan(),
		Busy:        schedule.Busy(),
		Preemptions: schedule.Preemptions(),
	}

	var totalTurnaround, totalWait int
	for _, job := range jobs {
		completion, ok := schedule.CompletionOf(job.ID)
		if !ok {
			return Report{}, fmt.Errorf("%w: %d", ErrMissingCompletion, job.ID)
		}

		turnaround := completion - job.ArrivalTime
		wait := turnaround - job.ServiceTime
		totalTurnaround += turnaround
		totalWait += wait

		report.Jobs = append(report.Jobs, JobMetrics{
			JobID:       job.ID,
			ArrivalTime: job.ArrivalTime,
			ServiceTime: job.ServiceTime,
			Completion:  completion,
			Turnaround:  turnaround,
			Wait:        wait,
		})
	}

	count := float64(len(jobs))
	report.AverageTurnaround = float64(totalTurnaround) / count
	report.AverageWait = float64(totalWait) / count
	report.Idle = report.Makespan - report.Busy
	if report.Makespan > 0 {
		report.Utilization = float64(report.Busy) / float64(report.Makespan)
		report.Throughput = count / float64(report.Makespan)
	}

	return report, nil
}
