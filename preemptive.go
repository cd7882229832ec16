package batch_scheduler

import (
	"container/heap"

	_const "github.com/TimeWtr/batch_scheduler/const"
	"github.com/TimeWtr/batch_scheduler/domain"
)

// preemptRule 到达触发重新评估的调度规则
type preemptRule interface {
	// less 同一时刻竞争CPU的作业的先后顺序，必须是全序
	less(a, b domain.Job) bool
	// preempts q在at时刻开始执行时是否应当打断cur，cur不被打断将在end时刻结束
	preempts(cur domain.Job, end int, q domain.Job, at int) bool
}

// run 正在执行或被挂起的作业
type run struct {
	job       domain.Job
	remaining int
	// 已经产生的被抢占片段数量
	splits int
}

// preemptive 到达触发重新评估的调度过程
// 就绪的作业放在小顶堆中，被打断的作业剩余部分压栈，
// 栈顶的剩余部分在打断它的作业结束后立即恢复执行
type preemptive struct {
	rule   preemptRule
	policy _const.PreemptPolicy
}

func (p preemptive) schedule(jobs []domain.Job) domain.Schedule {
	res := domain.NewSchedule(len(jobs))
	pending := NewArrivals(jobs, p.rule.less)
	ready := NewReadyQueue(len(jobs), p.rule.less)
	var suspended []run
	clock := 0

	for !pending.Empty() || !ready.Empty() || len(suspended) > 0 {
		pending.Admit(clock, ready)

		var cur run
		if n := len(suspended); n > 0 {
			cur = suspended[n-1]
			suspended = suspended[:n-1]
		} else {
			if ready.Empty() {
				// CPU空闲，等待下一个作业到达
				clock = pending.Peek().ArrivalTime
				pending.Admit(clock, ready)
			}
			cur = newRun(heap.Pop(ready).(domain.Job))
		}

		for {
			next, at, ok := p.interrupt(cur, clock, pending, ready)
			if !ok {
				break
			}
			if at > clock {
				res.Append(domain.Segment{
					JobID:    cur.job.ID,
					Start:    clock,
					Duration: at - clock,
					Status:   _const.SegmentPreempted,
				})
				cur.remaining -= at - clock
				cur.splits++
			}
			suspended = append(suspended, cur)
			clock = at
			cur = next
		}

		res.Append(domain.Segment{
			JobID:    cur.job.ID,
			Start:    clock,
			Duration: cur.remaining,
			Status:   _const.SegmentCompleted,
		})
		clock += cur.remaining
	}

	return res
}

// interrupt 查找在cur结束之前打断它的作业，返回该作业及打断时刻
// 已就绪的作业在当前时刻打断，未到达的作业在到达时刻打断，取最早的一个
func (p preemptive) interrupt(cur run, clock int, pending *Arrivals, ready *ReadyQueue) (run, int, bool) {
	if p.policy == _const.PreemptOnce && cur.splits > 0 {
		return run{}, 0, false
	}

	end := clock + cur.remaining
	if !ready.Empty() && p.rule.preempts(cur.job, end, ready.Peek(), clock) {
		return newRun(heap.Pop(ready).(domain.Job)), clock, true
	}

	for i, q := range pending.Pending() {
		if q.ArrivalTime >= end {
			break
		}
		if p.rule.preempts(cur.job, end, q, q.ArrivalTime) {
			return newRun(pending.Take(i, ready)), q.ArrivalTime, true
		}
	}

	return run{}, 0, false
}

func newRun(job domain.Job) run {
	return run{
		job:       job,
		remaining: job.ServiceTime,
	}
}
