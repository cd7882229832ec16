package domain

import (
	"reflect"
	"testing"

	_const "github.com/TimeWtr/batch_scheduler/const"
)

func TestSchedule(t *testing.T) {
	s := NewSchedule(3)
	s.Append(Segment{JobID: 1, Start: 0, Duration: 2, Status: _const.SegmentPreempted})
	s.Append(Segment{JobID: 2, Start: 2, Duration: 3, Status: _const.SegmentCompleted})
	s.Append(Segment{JobID: 1, Start: 7, Duration: 4, Status: _const.SegmentCompleted})

	if !reflect.DeepEqual(s.Order(), []int{1, 2, 1}) {
		t.Errorf("unexpected order %v", s.Order())
	}
	if c, ok := s.CompletionOf(1); !ok || c != 11 {
		t.Errorf("expected job 1 to complete at 11, got %d %v", c, ok)
	}
	if _, ok := s.CompletionOf(3); ok {
		t.Error("job 3 never ran")
	}
	if s.Makespan() != 11 || s.Busy() != 9 || s.Preemptions() != 1 {
		t.Errorf("unexpected totals: makespan %d busy %d preemptions %d",
			s.Makespan(), s.Busy(), s.Preemptions())
	}
	if !reflect.DeepEqual(s.Served(), map[int]int{1: 6, 2: 3}) {
		t.Errorf("unexpected served %v", s.Served())
	}
	if NewSchedule(0).Makespan() != 0 {
		t.Error("empty schedule has no makespan")
	}
}
