package service

import (
	"context"
	"errors"

	"github.com/sysu-ecnc-dev/job-hub/backend/internal/domain"
	"github.com/sysu-ecnc-dev/job-hub/backend/internal/repository"
)

type CreateJobInput struct {
	Title        string `json:"title" validate:"required"`
	Company      string `json:"company" validate:"required"`
	Location     string `json:"location" validate:"required"`
	Description  string `json:"description" validate:"required"`
	Requirements string `json:"requirements" validate:"required"`
	Salary       string `json:"salary" validate:"required"`
}

// Catalog 管理职位，只有管理员可以发布职位
type Catalog struct {
	jobs      JobRepository
	validator *Validator
}

func NewCatalog(jobs JobRepository, validator *Validator) *Catalog {
	return &Catalog{
		jobs:      jobs,
		validator: validator,
	}
}

func (s *Catalog) CreateJob(ctx context.Context, sess *domain.Session, input CreateJobInput) (*domain.Job, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}

	if err := s.validator.Struct(input); err != nil {
		return nil, err
	}

	job := &domain.Job{
		Title:        input.Title,
		Company:      input.Company,
		Location:     input.Location,
		Description:  input.Description,
		Requirements: input.Requirements,
		Salary:       input.Salary,
	}

	if err := s.jobs.CreateJob(ctx, job); err != nil {
		return nil, storageError(err)
	}

	return job, nil
}

// ListJobs 按发布时间倒序返回所有职位，没有职位时返回空切片
func (s *Catalog) ListJobs(ctx context.Context) ([]*domain.Job, error) {
	jobs, err := s.jobs.GetAllJobs(ctx)
	if err != nil {
		return nil, storageError(err)
	}
	if jobs == nil {
		jobs = make([]*domain.Job, 0)
	}
	return jobs, nil
}

func (s *Catalog) GetJob(ctx context.Context, id int64) (*domain.Job, error) {
	job, err := s.jobs.GetJobByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, newError(ErrNotFound, "职位不存在")
		}
		return nil, storageError(err)
	}
	return job, nil
}

func (s *Catalog) JobsByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Job, error) {
	if len(ids) == 0 {
		return make(map[int64]*domain.Job), nil
	}

	jobs, err := s.jobs.GetJobsByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return nil, storageError(err)
	}

	result := make(map[int64]*domain.Job, len(jobs))
	for _, job := range jobs {
		result[job.ID] = job
	}
	return result, nil
}
