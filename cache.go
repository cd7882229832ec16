package batch_scheduler

import (
	"sync"

	"github.com/TimeWtr/batch_scheduler/domain"
)

type Cache interface {
	Set(key string, value any)
	Get(key string) (any, bool)
	Del(key string)
	Len() int
}

func NewLocalCache(size int) Cache {
	return &LocalCache{
		mp:   make(map[string]any, size),
		keys: make([]string, 0, size),
		size: size,
		mu:   &sync.RWMutex{},
	}
}

// LocalCache 本地缓存，超过容量后淘汰最早写入的键
type LocalCache struct {
	mp   map[string]any
	keys []string
	size int
	mu   *sync.RWMutex
}

func (l *LocalCache) Set(key string, value any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.mp[key]; !ok {
		l.keys = append(l.keys, key)
	}
	l.mp[key] = value

	for l.size > 0 && len(l.keys) > l.size {
		delete(l.mp, l.keys[0])
		l.keys = l.keys[1:]
	}
}

func (l *LocalCache) Get(key string) (any, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	v, ok := l.mp[key]
	return v, ok
}

func (l *LocalCache) Del(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.mp[key]; !ok {
		return
	}
	delete(l.mp, key)
	for i, k := range l.keys {
		if k == key {
			l.keys = append(l.keys[:i], l.keys[i+1:]...)
			break
		}
	}
}

func (l *LocalCache) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.mp)
}

// cloneSchedule 缓存中的调度结果不能被调用方修改
func cloneSchedule(s domain.Schedule) domain.Schedule {
	res := domain.Schedule{
		Segments:   make([]domain.Segment, len(s.Segments)),
		Completion: make(map[int]int, len(s.Completion)),
	}
	copy(res.Segments, s.Segments)
	for k, v := range s.Completion {
		res.Completion[k] = v
	}
	return res
}
