package batch_scheduler

import (
	_const "github.com/TimeWtr/batch_scheduler/const"
	"github.com/TimeWtr/batch_scheduler/domain"
)

// PriorityStrategy 优先级调度
// 优先级更高(数值更小)的作业到达时打断当前作业，优先级相同不打断
type PriorityStrategy struct {
	policy _const.PreemptPolicy
}

func NewPriorityStrategy(policy _const.PreemptPolicy) *PriorityStrategy {
	return &PriorityStrategy{policy: policy}
}

func (s *PriorityStrategy) Name() _const.Algorithm {
	return _const.AlgorithmPriority
}

func (s *PriorityStrategy) Schedule(jobs []domain.Job) domain.Schedule {
	return preemptive{rule: priorityRule{}, policy: s.policy}.schedule(jobs)
}

type priorityRule struct{}

func (priorityRule) less(a, b domain.Job) bool {
	if a.Priority != b.Priority {
		return a.Priority.Less(b.Priority)
	}
	if a.ArrivalTime != b.ArrivalTime {
		return a.ArrivalTime < b.ArrivalTime
	}
	return a.ID < b.ID
}

func (priorityRule) preempts(cur domain.Job, _ int, q domain.Job, _ int) bool {
	return q.Priority.Less(cur.Priority)
}
