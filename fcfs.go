package batch_scheduler

import (
	"sort"

	_const "github.com/TimeWtr/batch_scheduler/const"
	"github.com/TimeWtr/batch_scheduler/domain"
)

// FCFSStrategy 先来先服务，按到达时间执行，到达时间相同时ID小的先执行，不抢占
type FCFSStrategy struct{}

func NewFCFSStrategy() *FCFSStrategy {
	return &FCFSStrategy{}
}

func (s *FCFSStrategy) Name() _const.Algorithm {
	return _const.AlgorithmFCFS
}

func (s *FCFSStrategy) Schedule(jobs []domain.Job) domain.Schedule {
	sorted := make([]domain.Job, len(jobs))
	copy(sorted, jobs)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		return a.ArrivalTime < b.ArrivalTime ||
			a.ArrivalTime == b.ArrivalTime && a.ID < b.ID
	})

	res := domain.NewSchedule(len(sorted))
	clock := 0
	for _, job := range sorted {
		// CPU空闲，等待作业到达
		if job.ArrivalTime > clock {
			clock = job.ArrivalTime
		}
		res.Append(domain.Segment{
			JobID:    job.ID,
			Start:    clock,
			Duration: job.ServiceTime,
			Status:   _const.SegmentCompleted,
		})
		clock += job.ServiceTime
	}

	return res
}
