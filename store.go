package batch_scheduler

import (
	"errors"
	"fmt"

	"github.com/TimeWtr/batch_scheduler/domain"
	"github.com/google/uuid"
)

var (
	ErrInvalidJob     = errors.New("invalid job")
	ErrDuplicateJobID = errors.New("duplicate job id")
)

// Batch 一批作业记录，创建后不可修改
// 所有读取方法返回副本，多个调度算法之间不会互相影响
type Batch struct {
	id   string
	jobs []domain.Job
	idx  map[int]int
}

func NewBatch(jobs []domain.Job) (*Batch, error) {
	b := &Batch{
		id:   uuid.NewString(),
		jobs: make([]domain.Job, 0, len(jobs)),
		idx:  make(map[int]int, len(jobs)),
	}

	for _, job := range jobs {
		if err := validateJob(job); err != nil {
			return nil, err
		}
		if _, ok := b.idx[job.ID]; ok {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateJobID, job.ID)
		}
		b.idx[job.ID] = len(b.jobs)
		b.jobs = append(b.jobs, job)
	}

	return b, nil
}

func validateJob(job domain.Job) error {
	if job.ServiceTime <= 0 {
		return fmt.Errorf("%w: job %d service time %d must be positive",
			ErrInvalidJob, job.ID, job.ServiceTime)
	}
	if job.ArrivalTime < 0 {
		return fmt.Errorf("%w: job %d arrival time %d must not be negative",
			ErrInvalidJob, job.ID, job.ArrivalTime)
	}
	return nil
}

// ID 批次的唯一标识，用作调度结果的缓存键
func (b *Batch) ID() string {
	return b.id
}

func (b *Batch) Len() int {
	return len(b.jobs)
}

func (b *Batch) Empty() bool {
	return len(b.jobs) == 0
}

// Jobs 按加载顺序返回作业的副本
func (b *Batch) Jobs() []domain.Job {
	res := make([]domain.Job, len(b.jobs))
	copy(res, b.jobs)
	return res
}

func (b *Batch) Job(id int) (domain.Job, bool) {
	i, ok := b.idx[id]
	if !ok {
		return domain.Job{}, false
	}
	return b.jobs[i], true
}
