package domain

import (
	_const "github.com/TimeWtr/batch_scheduler/const"
)

// Job 批处理作业描述，加载后不可修改
type Job struct {
	// ID 作业唯一标识，也是最终的排序依据
	ID int `json:"id"`
	// ArrivalTime 作业到达时间，之后才可以被调度
	ArrivalTime int `json:"arrival_time"`
	// ServiceTime 作业需要的CPU时间，可能被拆分为多个片段
	ServiceTime int `json:"service_time"`
	// Priority 优先级，数值越小优先级越高
	Priority _const.Priority `json:"priority"`
}

// Segment 一次连续的执行片段
type Segment struct {
	JobID    int                  `json:"job_id"`
	Start    int                  `json:"start"`
	Duration int                  `json:"duration"`
	Status   _const.SegmentStatus `json:"status"`
}

func (s Segment) End() int {
	return s.Start + s.Duration
}

// Schedule 调度结果
// Segments 按执行顺序排列，Completion 记录每个作业最后一个片段的结束时间
type Schedule struct {
	Segments   []Segment   `json:"segments"`
	Completion map[int]int `json:"completion"`
}

func NewSchedule(size int) Schedule {
	return Schedule{
		Segments:   make([]Segment, 0, size),
		Completion: make(map[int]int, size),
	}
}

// Append 追加片段，片段以完成状态结束时记录作业的完成时间
func (s *Schedule) Append(seg Segment) {
	s.Segments = append(s.Segments, seg)
	if seg.Status == _const.SegmentCompleted {
		s.Completion[seg.JobID] = seg.End()
	}
}

// Order 执行顺序，被拆分的作业会出现多次
func (s Schedule) Order() []int {
	res := make([]int, 0, len(s.Segments))
	for _, seg := range s.Segments {
		res = append(res, seg.JobID)
	}
	return res
}

func (s Schedule) CompletionOf(id int) (int, bool) {
	v, ok := s.Completion[id]
	return v, ok
}

// Makespan 最后一个片段的结束时间
func (s Schedule) Makespan() int {
	if len(s.Segments) == 0 {
		return 0
	}
	return s.Segments[len(s.Segments)-1].End()
}

// Busy CPU处于执行状态的总时间
func (s Schedule) Busy() int {
	var total int
	for _, seg := range s.Segments {
		total += seg.Duration
	}
	return total
}

// Preemptions 被抢占的片段数量
func (s Schedule) Preemptions() int {
	var n int
	for _, seg := range s.Segments {
		if seg.Status == _const.SegmentPreempted {
			n++
		}
	}
	return n
}

// Served 按作业汇总各片段的执行时间
func (s Schedule) Served() map[int]int {
	res := make(map[int]int, len(s.Completion))
	for _, seg := range s.Segments {
		res[seg.JobID] += seg.Duration
	}
	return res
}
