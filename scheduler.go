package batch_scheduler

import (
	"context"
	"fmt"
	"time"

	_const "github.com/TimeWtr/batch_scheduler/const"
	"github.com/TimeWtr/batch_scheduler/domain"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

type Simulator interface {
	// Run 使用指定算法调度一批作业
	Run(ctx context.Context, batch *Batch, alg _const.Algorithm) (Result, error)
	// Compare 并发运行多个算法，结果按传入顺序返回，未指定算法时运行全部算法
	Compare(ctx context.Context, batch *Batch, algs ..._const.Algorithm) ([]Result, error)
}

// Result 一次调度的结果
type Result struct {
	RunID     string               `json:"run_id"`
	Algorithm _const.Algorithm     `json:"algorithm"`
	Policy    _const.PreemptPolicy `json:"policy"`
	Schedule  domain.Schedule      `json:"schedule"`
	Report    Report               `json:"report"`
}

type Options func(core *SimulatorCore)

func WithPreemptPolicy(policy _const.PreemptPolicy) Options {
	return func(c *SimulatorCore) {
		c.policy = policy
	}
}

// WithLimiter 设置对比模式下同时运行的算法数量
func WithLimiter(limiter int64) Options {
	return func(c *SimulatorCore) {
		if limiter > 0 {
			c.limiter = semaphore.NewWeighted(limiter)
		}
	}
}

func WithObserver(observers ...Observer) Options {
	return func(c *SimulatorCore) {
		c.observers = append(c.observers, observers...)
	}
}

func WithCache(cache Cache) Options {
	return func(c *SimulatorCore) {
		c.cache = cache
	}
}

type SimulatorCore struct {
	logger Logger
	// 抢占策略
	policy _const.PreemptPolicy
	// 限流
	limiter *semaphore.Weighted
	// 本地缓存，相同批次和算法的调度结果不重复计算
	cache Cache
	// 调度完成后的观察者
	observers []Observer
}

func NewSimulatorCore(logger Logger, opts ...Options) Simulator {
	s := &SimulatorCore{
		logger: logger,
		policy: _const.PreemptUnbounded,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = NewNopLogger()
	}
	if s.limiter == nil {
		s.limiter = semaphore.NewWeighted(_const.DefaultLimiter)
	}
	if s.cache == nil {
		s.cache = NewLocalCache(_const.DefaultCacheSize)
	}

	return s
}

func (s *SimulatorCore) Run(ctx context.Context, batch *Batch, alg _const.Algorithm) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if batch == nil || batch.Empty() {
		return Result{}, ErrEmptyBatch
	}

	strategy, err := NewStrategy(alg, s.policy)
	if err != nil {
		return Result{}, err
	}

	start := time.Now()
	jobs := batch.Jobs()
	schedule := s.schedule(batch.ID(), strategy, jobs)

	report, err := Evaluate(jobs, schedule)
	if err != nil {
		s.logger.Error("failed to evaluate schedule",
			Field{Key: "algorithm", Val: alg.String()},
			Field{Key: "err", Val: err})
		return Result{}, err
	}

	res := Result{
		RunID:     uuid.NewString(),
		Algorithm: alg,
		Policy:    s.policy,
		Schedule:  schedule,
		Report:    report,
	}

	s.logger.Info("simulation finished",
		Field{Key: "run_id", Val: res.RunID},
		Field{Key: "algorithm", Val: alg.String()},
		Field{Key: "jobs", Val: batch.Len()},
		Field{Key: "segments", Val: len(schedule.Segments)},
		Field{Key: "avg_turnaround", Val: report.AverageTurnaround},
		Field{Key: "avg_wait", Val: report.AverageWait},
		Field{Key: "elapsed", Val: time.Since(start)})

	for _, o := range s.observers {
		o.Observe(ctx, res)
	}

	return res, nil
}

func (s *SimulatorCore) schedule(batchID string, strategy Strategy, jobs []domain.Job) domain.Schedule {
	key := fmt.Sprintf("%s/%s/%s", batchID, strategy.Name(), s.policy)
	if v, ok := s.cache.Get(key); ok {
		if cached, ok := v.(domain.Schedule); ok {
			s.logger.Debug("schedule cache hit", Field{Key: "key", Val: key})
			return cloneSchedule(cached)
		}
	}

	schedule := strategy.Schedule(jobs)
	s.cache.Set(key, cloneSchedule(schedule))
	return schedule
}

func (s *SimulatorCore) Compare(ctx context.Context, batch *Batch, algs ..._const.Algorithm) ([]Result, error) {
	if len(algs) == 0 {
		algs = _const.Algorithms
	}

	results := make([]Result, len(algs))
	eg, ctx := errgroup.WithContext(ctx)
	for i, alg := range algs {
		if err := s.limiter.Acquire(ctx, 1); err != nil {
			if werr := eg.Wait(); werr != nil {
				return nil, werr
			}
			return nil, err
		}

		eg.Go(func() error {
			defer s.limiter.Release(1)
			res, err := s.Run(ctx, batch, alg)
			if err != nil {
				s.logger.Error("failed to run simulation",
					Field{Key: "algorithm", Val: alg.String()},
					Field{Key: "err", Val: err})
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
