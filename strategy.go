package batch_scheduler

import (
	"fmt"

	_const "github.com/TimeWtr/batch_scheduler/const"
	"github.com/TimeWtr/batch_scheduler/domain"
)

// Strategy 调度算法
// Schedule 不修改传入的作业列表，也不在多次调用之间保留状态
type Strategy interface {
	Name() _const.Algorithm
	Schedule(jobs []domain.Job) domain.Schedule
}

func NewStrategy(alg _const.Algorithm, policy _const.PreemptPolicy) (Strategy, error) {
	switch alg {
	case _const.AlgorithmFCFS:
		return NewFCFSStrategy(), nil
	case _const.AlgorithmShortestFirst:
		return NewShortestFirstStrategy(policy), nil
	case _const.AlgorithmPriority:
		return NewPriorityStrategy(policy), nil
	default:
		return nil, fmt.Errorf("%w: %s", _const.ErrUnknownAlgorithm, alg)
	}
}
