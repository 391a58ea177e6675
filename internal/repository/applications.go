package repository

import (
	"context"

	"github.com/sysu-ecnc-dev/job-hub/backend/internal/domain"
)

const applicationColumns = `id, job_id, user_id, status, created_at`

func applicationDst(app *domain.Application) []any {
	return []any{&app.ID, &app.JobID, &app.UserID, &app.Status, &app.CreatedAt}
}

// CreateApplication 依赖 (job_id, user_id) 唯一约束，重复申请会返回 ErrDuplicateApplication
func (r *Repository) CreateApplication(ctx context.Context, app *domain.Application) error {
	ctx, cancel := r.withQueryTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO applications (job_id, user_id)
		VALUES ($1, $2)
		RETURNING id, status, created_at
	`

	if err := r.dbpool.QueryRowContext(ctx, query, app.JobID, app.UserID).Scan(&app.ID, &app.Status, &app.CreatedAt); err != nil {
		return translateError(err)
	}

	return nil
}

func (r *Repository) GetApplicationByID(ctx context.Context, id int64) (*domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`

	ctx, cancel := r.withQueryTimeout(ctx)
	defer cancel()

	app := &domain.Application{}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(applicationDst(app)...); err != nil {
		return nil, translateError(err)
	}

	return app, nil
}

func (r *Repository) CheckApplicationIfExists(ctx context.Context, jobID int64, userID int64) (bool, error) {
	isExists := false

	ctx, cancel := r.withQueryTimeout(ctx)
	defer cancel()

	query := `
		SELECT EXISTS (SELECT 1 FROM applications WHERE job_id = $1 AND user_id = $2)
	`
	if err := r.dbpool.QueryRowContext(ctx, query, jobID, userID).Scan(&isExists); err != nil {
		return false, err
	}

	return isExists, nil
}

func (r *Repository) GetAllApplications(ctx context.Context) ([]*domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications ORDER BY created_at DESC, id DESC`

	return r.queryApplications(ctx, query)
}

func (r *Repository) GetApplicationsByUserID(ctx context.Context, userID int64) ([]*domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE user_id = $1 ORDER BY created_at DESC, id DESC`

	return r.queryApplications(ctx, query, userID)
}

// UpdateApplicationStatus 只修改状态，不校验状态之间的转换
func (r *Repository) UpdateApplicationStatus(ctx context.Context, id int64, status domain.ApplicationStatus) (*domain.Application, error) {
	ctx, cancel := r.withQueryTimeout(ctx)
	defer cancel()

	query := `
		UPDATE applications
		SET status = $1
		WHERE id = $2
		RETURNING ` + applicationColumns

	app := &domain.Application{}
	if err := r.dbpool.QueryRowContext(ctx, query, string(status), id).Scan(applicationDst(app)...); err != nil {
		return nil, translateError(err)
	}

	return app, nil
}

func (r *Repository) queryApplications(ctx context.Context, query string, args ...any) ([]*domain.Application, error) {
	ctx, cancel := r.withQueryTimeout(ctx)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := make([]*domain.Application, 0)
	for rows.Next() {
		app := &domain.Application{}
		if err := rows.Scan(applicationDst(app)...); err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return apps, nil
}
