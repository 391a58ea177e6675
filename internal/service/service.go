package service

import (
	"context"

	"github.com/sysu-ecnc-dev/job-hub/backend/internal/domain"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	GetUsersByIDs(ctx context.Context, ids []int64) ([]*domain.User, error)
	CheckUsernameIfExists(ctx context.Context, username string) (bool, error)
}

type JobRepository interface {
	CreateJob(ctx context.Context, job *domain.Job) error
	GetJobByID(ctx context.Context, id int64) (*domain.Job, error)
	GetAllJobs(ctx context.Context) ([]*domain.Job, error)
	GetJobsByIDs(ctx context.Context, ids []int64) ([]*domain.Job, error)
}

type ApplicationRepository interface {
	CreateApplication(ctx context.Context, app *domain.Application) error
	CheckApplicationIfExists(ctx context.Context, jobID int64, userID int64) (bool, error)
	GetAllApplications(ctx context.Context) ([]*domain.Application, error)
	GetApplicationsByUserID(ctx context.Context, userID int64) ([]*domain.Application, error)
	UpdateApplicationStatus(ctx context.Context, id int64, status domain.ApplicationStatus) (*domain.Application, error)
}

type SchemaRepository interface {
	EnsureSchema(ctx context.Context) error
	EnsureDefaultAdmin(ctx context.Context, admin *domain.User) (bool, error)
}

// Store 由 repository.Repository 和 memory.Store 实现
type Store interface {
	UserRepository
	JobRepository
	ApplicationRepository
	SchemaRepository
}

// requireSession 在未登录时返回 ErrAuthentication
func requireSession(sess *domain.Session) error {
	if sess == nil {
		return newError(ErrAuthentication, "用户未登录")
	}
	return nil
}

func requireAdmin(sess *domain.Session) error {
	if err := requireSession(sess); err != nil {
		return err
	}
	if !sess.IsAdmin {
		return newError(ErrAuthorization, "权限不足")
	}
	return nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	result := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			result = append(result, id)
		}
	}
	return result
}
