package batch_scheduler

import (
	_const "github.com/TimeWtr/batch_scheduler/const"
	"github.com/TimeWtr/batch_scheduler/domain"
)

// ShortestFirstStrategy 短作业优先
// 新作业如果能在当前作业结束之前完成则打断当前作业，相等时当前作业继续执行
type ShortestFirstStrategy struct {
	policy _const.PreemptPolicy
}

func NewShortestFirstStrategy(policy _const.PreemptPolicy) *ShortestFirstStrategy {
	return &ShortestFirstStrategy{policy: policy}
}

func (s *ShortestFirstStrategy) Name() _const.Algorithm {
	return _const.AlgorithmShortestFirst
}

func (s *ShortestFirstStrategy) Schedule(jobs []domain.Job) domain.Schedule {
	return preemptive{rule: shortestRule{}, policy: s.policy}.schedule(jobs)
}

type shortestRule struct{}

func (shortestRule) less(a, b domain.Job) bool {
	if a.ServiceTime != b.ServiceTime {
		return a.ServiceTime < b.ServiceTime
	}
	if a.ArrivalTime != b.ArrivalTime {
		return a.ArrivalTime < b.ArrivalTime
	}
	return a.ID < b.ID
}

func (shortestRule) preempts(_ domain.Job, end int, q domain.Job, at int) bool {
	return end > at+q.ServiceTime
}
