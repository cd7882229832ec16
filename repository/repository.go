package repository

import (
	"context"
	"errors"

	"github.com/TimeWtr/batch_scheduler/domain"
)

var (
	ErrInputFileMissing = errors.New("input file missing")
	ErrMalformedRecord  = errors.New("malformed record")
	ErrBatchNotFound    = errors.New("batch not found")
)

// JobRepository 作业记录的来源
type JobRepository interface {
	Load(ctx context.Context) ([]domain.Job, error)
}
