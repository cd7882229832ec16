package dao

import (
	"context"

	_const "github.com/TimeWtr/batch_scheduler/const"
	"github.com/TimeWtr/batch_scheduler/domain"
	"gorm.io/gorm"
)

type JobDAO struct {
	db *gorm.DB
}

func NewJobDAO(db *gorm.DB) *JobDAO {
	return &JobDAO{db: db}
}

// Migrate 创建或更新作业表
func (d *JobDAO) Migrate(ctx context.Context) error {
	return d.db.WithContext(ctx).AutoMigrate(&JobRecord{})
}

// Save 在一个事务内替换整个批次的作业
func (d *JobDAO) Save(ctx context.Context, batch string, jobs []domain.Job) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("batch = ?", batch).Delete(&JobRecord{}).Error; err != nil {
			return err
		}
		if len(jobs) == 0 {
			return nil
		}

		records := make([]JobRecord, 0, len(jobs))
		for i, job := range jobs {
			records = append(records, newJobRecord(batch, i, job))
		}
		return tx.Create(&records).Error
	})
}

// Load 按写入顺序读取批次中的作业
func (d *JobDAO) Load(ctx context.Context, batch string) ([]JobRecord, error) {
	var records []JobRecord
	err := d.db.WithContext(ctx).Where("batch = ?", batch).
		Order("seq ASC").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Batches 所有批次名称
func (d *JobDAO) Batches(ctx context.Context) ([]string, error) {
	var batches []string
	err := d.db.WithContext(ctx).Model(&JobRecord{}).
		Distinct().Order("batch ASC").Pluck("batch", &batches).Error
	return batches, err
}

type JobRecord struct {
	// ID 在数据库中的ID信息
	ID int `gorm:"column:id;type:integer;primaryKey;autoIncrement" json:"id"`
	// Batch 批次名称
	Batch string `gorm:"column:batch;type:varchar(255);not null;uniqueIndex:idx_batch_job" json:"batch"`
	// Seq 作业在批次文件中的顺序
	Seq int `gorm:"column:seq;type:int;not null" json:"seq"`
	// JobID 作业在批次内的唯一标识
	JobID int `gorm:"column:job_id;type:int;not null;uniqueIndex:idx_batch_job" json:"job_id"`
	// ArrivalTime 到达时间
	ArrivalTime int `gorm:"column:arrival_time;type:int;not null" json:"arrival_time"`
	// ServiceTime 服务时间
	ServiceTime int `gorm:"column:service_time;type:int;not null" json:"service_time"`
	// Priority 优先级
	Priority int `gorm:"column:priority;type:int;not null" json:"priority"`
}

func (JobRecord) TableName() string {
	return "batch_jobs"
}

func newJobRecord(batch string, seq int, job domain.Job) JobRecord {
	return JobRecord{
		Batch:       batch,
		Seq:         seq,
		JobID:       job.ID,
		ArrivalTime: job.ArrivalTime,
		ServiceTime: job.ServiceTime,
		Priority:    int(job.Priority),
	}
}

func (r JobRecord) ToDomain() domain.Job {
	return domain.Job{
		ID:          r.JobID,
		ArrivalTime: r.ArrivalTime,
		ServiceTime: r.ServiceTime,
		Priority:    _const.Priority(r.Priority),
	}
}
