package batch_scheduler

import (
	"container/heap"
	"sort"

	"github.com/TimeWtr/batch_scheduler/domain"
)

// lessFunc 同一时刻竞争CPU的作业之间的先后顺序
type lessFunc func(a, b domain.Job) bool

// ReadyQueue 已到达但尚未开始执行的作业，小顶堆
// 堆顶为按调度算法排序最靠前的作业
type ReadyQueue struct {
	jobs []domain.Job
	less lessFunc
}

func NewReadyQueue(size int, less lessFunc) *ReadyQueue {
	return &ReadyQueue{
		jobs: make([]domain.Job, 0, size),
		less: less,
	}
}

func (h *ReadyQueue) Len() int {
	return len(h.jobs)
}

func (h *ReadyQueue) Less(i, j int) bool {
	return h.less(h.jobs[i], h.jobs[j])
}

func (h *ReadyQueue) Swap(i, j int) {
	h.jobs[i], h.jobs[j] = h.jobs[j], h.jobs[i]
}

func (h *ReadyQueue) Push(x any) {
	h.jobs = append(h.jobs, x.(domain.Job))
}

func (h *ReadyQueue) Pop() any {
	old := h.jobs
	n := len(old)
	x := old[n-1]
	h.jobs = old[:n-1]
	return x
}

// Peek 查看堆顶作业，调用方需要保证队列非空
func (h *ReadyQueue) Peek() domain.Job {
	return h.jobs[0]
}

func (h *ReadyQueue) Empty() bool {
	return len(h.jobs) == 0
}

// Arrivals 尚未到达的作业，按到达时间排序，next之前的作业已经进入就绪队列
type Arrivals struct {
	jobs []domain.Job
	next int
}

// NewArrivals 复制并排序，不修改调用方的切片
// 条件：
// 1. 到达时间较小者在前
// 2. 到达时间相同的情况下按调度算法的顺序
func NewArrivals(jobs []domain.Job, less lessFunc) *Arrivals {
	sorted := make([]domain.Job, len(jobs))
	copy(sorted, jobs)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		return a.ArrivalTime < b.ArrivalTime ||
			a.ArrivalTime == b.ArrivalTime && less(a, b)
	})

	return &Arrivals{jobs: sorted}
}

func (a *Arrivals) Empty() bool {
	return a.next >= len(a.jobs)
}

// Peek 下一个到达的作业，调用方需要保证非空
func (a *Arrivals) Peek() domain.Job {
	return a.jobs[a.next]
}

// Pending 尚未到达的作业，只读
func (a *Arrivals) Pending() []domain.Job {
	return a.jobs[a.next:]
}

// Admit 将到达时间不晚于until的作业放入就绪队列
func (a *Arrivals) Admit(until int, ready *ReadyQueue) {
	for !a.Empty() && a.Peek().ArrivalTime <= until {
		heap.Push(ready, a.Peek())
		a.next++
	}
}

// Take 取出Pending()中下标为i的作业，同时把不晚于它到达的其他作业放入就绪队列
func (a *Arrivals) Take(i int, ready *ReadyQueue) domain.Job {
	i += a.next
	q := a.jobs[i]
	j := a.next
	for ; j < len(a.jobs) && a.jobs[j].ArrivalTime <= q.ArrivalTime; j++ {
		if j != i {
			heap.Push(ready, a.jobs[j])
		}
	}
	a.next = j

	return q
}
