package repository

import (
	"context"

	"github.com/sysu-ecnc-dev/job-hub/backend/internal/domain"
)

const jobColumns = `id, title, company, location, description, requirements, salary, created_at`

func jobDst(job *domain.Job) []any {
	return []any{&job.ID, &job.Title, &job.Company, &job.Location, &job.Description, &job.Requirements, &job.Salary, &job.CreatedAt}
}

func (r *Repository) CreateJob(ctx context.Context, job *domain.Job) error {
	ctx, cancel := r.withQueryTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO jobs (title, company, location, description, requirements, salary)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	args := []any{job.Title, job.Company, job.Location, job.Description, job.Requirements, job.Salary}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&job.ID, &job.CreatedAt); err != nil {
		return translateError(err)
	}

	return nil
}

func (r *Repository) GetJobByID(ctx context.Context, id int64) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`

	ctx, cancel := r.withQueryTimeout(ctx)
	defer cancel()

	job := &domain.Job{}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(jobDst(job)...); err != nil {
		return nil, translateError(err)
	}

	return job, nil
}

// GetAllJobs 按发布时间倒序返回所有职位
func (r *Repository) GetAllJobs(ctx context.Context) ([]*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs ORDER BY created_at DESC, id DESC`

	return r.queryJobs(ctx, query)
}

func (r *Repository) GetJobsByIDs(ctx context.Context, ids []int64) ([]*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = ANY($1)`

	return r.queryJobs(ctx, query, ids)
}

func (r *Repository) queryJobs(ctx context.Context, query string, args ...any) ([]*domain.Job, error) {
	ctx, cancel := r.withQueryTimeout(ctx)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := make([]*domain.Job, 0)
	for rows.Next() {
		job := &domain.Job{}
		if err := rows.Scan(jobDst(job)...); err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return jobs, nil
}
