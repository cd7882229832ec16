package batch_scheduler

import "context"

type ObserverFunc func(ctx context.Context, res Result)

// Observer 调度完成后的观察者抽象
type Observer interface {
	// Name Observer名称
	Name() string
	// Observe 每次调度完成后调用，不能修改结果
	Observe(ctx context.Context, res Result)
}

type namedObserver struct {
	name string
	fn   ObserverFunc
}

// NewObserver 将函数包装为Observer
func NewObserver(name string, fn ObserverFunc) Observer {
	return &namedObserver{name: name, fn: fn}
}

func (o *namedObserver) Name() string {
	return o.name
}

func (o *namedObserver) Observe(ctx context.Context, res Result) {
	o.fn(ctx, res)
}
