package batch_scheduler

import (
	"testing"

	"github.com/TimeWtr/batch_scheduler/domain"
)

func TestLocalCache(t *testing.T) {
	c := NewLocalCache(2)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("a", 3)

	if v, ok := c.Get("a"); !ok || v.(int) != 3 {
		t.Fatalf("expected a=3, got %v %v", v, ok)
	}

	// 超过容量后淘汰最早写入的键
	c.Set("c", 4)
	if _, ok := c.Get("a"); ok {
		t.Fatal("expected a to be evicted")
	}
	if c.Len() != 2 {
		t.Fatalf("expected len 2, got %d", c.Len())
	}

	c.Del("b")
	c.Del("missing")
	if _, ok := c.Get("b"); ok {
		t.Fatal("expected b to be deleted")
	}
	c.Set("d", 5)
	if _, ok := c.Get("c"); !ok {
		t.Fatal("expected c to survive after deleting b")
	}
}

func TestCloneSchedule(t *testing.T) {
	s := NewFCFSStrategy().Schedule([]domain.Job{job(1, 0, 2, 0)})
	c := cloneSchedule(s)
	c.Segments[0].Duration = 9
	c.Completion[1] = 9
	if s.Segments[0].Duration != 2 || s.Completion[1] != 2 {
		t.Fatalf("clone shares storage with original: %+v", s)
	}
}
