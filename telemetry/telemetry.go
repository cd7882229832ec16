package telemetry

import (
	"context"

	"github.com/TimeWtr/batch_scheduler"
	"github.com/prometheus/client_golang/prometheus"
)

// Collector 将每次调度结果记录为Prometheus指标
type Collector struct {
	runs        *prometheus.CounterVec
	segments    *prometheus.CounterVec
	turnaround  *prometheus.GaugeVec
	wait        *prometheus.GaugeVec
	makespan    *prometheus.GaugeVec
	utilization *prometheus.GaugeVec
}

func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "batch_scheduler_runs_total",
				Help: "Total number of simulation runs.",
			},
			[]string{"algorithm"},
		),
		segments: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "batch_scheduler_segments_total",
				Help: "Execution segments produced, by final status.",
			},
			[]string{"algorithm", "status"},
		),
		turnaround: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "batch_scheduler_average_turnaround",
				Help: "Average turnaround time of the last run.",
			},
			[]string{"algorithm"},
		),
		wait: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "batch_scheduler_average_wait",
				Help: "Average wait time of the last run.",
			},
			[]string{"algorithm"},
		),
		makespan: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "batch_scheduler_makespan",
				Help: "Completion time of the last segment of the last run.",
			},
			[]string{"algorithm"},
		),
		utilization: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "batch_scheduler_cpu_utilization",
				Help: "Busy time over makespan of the last run.",
			},
			[]string{"algorithm"},
		),
	}

	reg.MustRegister(c.runs, c.segments, c.turnaround, c.wait, c.makespan, c.utilization)
	return c
}

func (c *Collector) Name() string {
	return "prometheus"
}

func (c *Collector) Observe(_ context.Context, res batch_scheduler.Result) {
	alg := res.Algorithm.String()
	c.runs.WithLabelValues(alg).Inc()
	for _, seg := range res.Schedule.Segments {
		c.segments.WithLabelValues(alg, seg.Status.String()).Inc()
	}
	c.turnaround.WithLabelValues(alg).Set(res.Report.AverageTurnaround)
	c.wait.WithLabelValues(alg).Set(res.Report.AverageWait)
	c.makespan.WithLabelValues(alg).Set(float64(res.Report.Makespan))
	c.utilization.WithLabelValues(alg).Set(res.Report.Utilization)
}
