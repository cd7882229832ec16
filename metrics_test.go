package batch_scheduler

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"testing"

	_const "github.com/TimeWtr/batch_scheduler/const"
	"github.com/TimeWtr/batch_scheduler/domain"
)

func TestEvaluate(t *testing.T) {
	jobs := []domain.Job{job(1, 0, 5, 1), job(2, 2, 3, 2), job(3, 4, 1, 3)}
	report, err := Evaluate(jobs, NewFCFSStrategy().Schedule(jobs))
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	var turnaround, wait []int
	for _, m := range report.Jobs {
		turnaround = append(turnaround, m.Turnaround)
		wait = append(wait, m.Wait)
	}
	if !reflect.DeepEqual(turnaround, []int{5, 6, 5}) {
		t.Errorf("expected turnaround [5 6 5], got %v", turnaround)
	}
	if !reflect.DeepEqual(wait, []int{0, 3, 4}) {
		t.Errorf("expected wait [0 3 4], got %v", wait)
	}
	if got := fmt.Sprintf("%.2f", report.AverageTurnaround); got != "5.33" {
		t.Errorf("expected average turnaround 5.33, got %s", got)
	}
	if got := fmt.Sprintf("%.2f", report.AverageWait); got != "2.33" {
		t.Errorf("expected average wait 2.33, got %s", got)
	}
	if report.Makespan != 9 || report.Busy != 9 || report.Idle != 0 {
		t.Errorf("unexpected timeline totals: %+v", report)
	}
}

func TestEvaluate_Preemptive(t *testing.T) {
	jobs := []domain.Job{job(1, 0, 8, 0), job(2, 1, 4, 0), job(3, 2, 9, 0), job(4, 3, 5, 0)}
	report, err := Evaluate(jobs, NewShortestFirstStrategy(_const.PreemptUnbounded).Schedule(jobs))
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	if report.AverageTurnaround != 13 {
		t.Errorf("expected average turnaround 13, got %v", report.AverageTurnaround)
	}
	if report.AverageWait != 6.5 {
		t.Errorf("expected average wait 6.5, got %v", report.AverageWait)
	}
	if report.Preemptions != 1 {
		t.Errorf("expected 1 preemption, got %d", report.Preemptions)
	}
	if math.Abs(report.Throughput-4.0/26.0) > 1e-9 {
		t.Errorf("expected throughput 4/26, got %v", report.Throughput)
	}
}

func TestEvaluate_Idle(t *testing.T) {
	jobs := []domain.Job{job(1, 0, 2, 0), job(2, 5, 1, 0)}
	report, err := Evaluate(jobs, NewFCFSStrategy().Schedule(jobs))
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if report.Makespan != 6 || report.Busy != 3 || report.Idle != 3 {
		t.Fatalf("unexpected timeline totals: %+v", report)
	}
	if report.Utilization != 0.5 {
		t.Errorf("expected utilization 0.5, got %v", report.Utilization)
	}
}

func TestEvaluate_EmptyBatch(t *testing.T) {
	_, err := Evaluate(nil, domain.NewSchedule(0))
	if !errors.Is(err, ErrEmptyBatch) {
		t.Fatalf("expected ErrEmptyBatch, got %v", err)
	}
}

func TestEvaluate_MissingCompletion(t *testing.T) {
	jobs := []domain.Job{job(1, 0, 2, 0), job(2, 0, 1, 0)}
	schedule := NewFCFSStrategy().Schedule(jobs[:1])
	_, err := Evaluate(jobs, schedule)
	if !errors.Is(err, ErrMissingCompletion) {
		t.Fatalf("expected ErrMissingCompletion, got %v", err)
	}
}
