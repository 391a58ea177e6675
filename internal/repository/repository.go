package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sysu-ecnc-dev/job-hub/backend/internal/config"
)

var (
	ErrRecordNotFound       = errors.New("记录不存在")
	ErrDuplicateUsername    = errors.New("用户名已存在")
	ErrDuplicateApplication = errors.New("已经申请过该职位")
	ErrReferenceNotFound    = errors.New("引用的职位或用户不存在")
)

// 约束名由 postgres 自动生成，见 schema.go
const (
	constraintUsersUsername         = "users_username_key"
	constraintApplicationsJobUser   = "applications_job_id_user_id_key"
	constraintApplicationsJobIDFKey = "applications_job_id_fkey"
	constraintApplicationsUserFKey  = "applications_user_id_fkey"
)

type Repository struct {
	cfg    *config.Config
	dbpool *sql.DB
}

func NewRepository(cfg *config.Config, dbpool *sql.DB) *Repository {
	return &Repository{
		cfg:    cfg,
		dbpool: dbpool,
	}
}

func (r *Repository) withQueryTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
}

// translateError 把驱动返回的错误转换为本包定义的错误，其余错误原样返回
func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return ErrRecordNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.ConstraintName {
		case constraintUsersUsername:
			return ErrDuplicateUsername
		case constraintApplicationsJobUser:
			return ErrDuplicateApplication
		case constraintApplicationsJobIDFKey, constraintApplicationsUserFKey:
			return ErrReferenceNotFound
		}
	}

	return err
}
