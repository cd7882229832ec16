package repository

import (
	"context"
	"fmt"

	"github.com/TimeWtr/batch_scheduler/domain"
	"github.com/TimeWtr/batch_scheduler/repository/dao"
)

// DBRepository 从数据库中读取指定批次的作业
type DBRepository struct {
	dao   *dao.JobDAO
	batch string
}

func NewDBRepository(d *dao.JobDAO, batch string) *DBRepository {
	return &DBRepository{dao: d, batch: batch}
}

func (r *DBRepository) Load(ctx context.Context) ([]domain.Job, error) {
	records, err := r.dao.Load(ctx, r.batch)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrBatchNotFound, r.batch)
	}

	jobs := make([]domain.Job, 0, len(records))
	for _, rec := range records {
		jobs = append(jobs, rec.ToDomain())
	}
	return jobs, nil
}

// Save 覆盖保存指定批次的作业
func (r *DBRepository) Save(ctx context.Context, jobs []domain.Job) error {
	return r.dao.Save(ctx, r.batch, jobs)
}

// Batches 数据库中保存的所有批次名称
func (r *DBRepository) Batches(ctx context.Context) ([]string, error) {
	return r.dao.Batches(ctx)
}
