// Package memory 提供与 repository.Repository 行为一致的内存存储，
// 用于本地开发（DATABASE_DRIVER=memory）和测试。进程退出后数据丢失。
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/sysu-ecnc-dev/job-hub/backend/internal/domain"
	"github.com/sysu-ecnc-dev/job-hub/backend/internal/repository"
)

type applicationKey struct {
	jobID  int64
	userID int64
}

type Store struct {
	mu sync.RWMutex

	users      map[int64]domain.User
	usernames  map[string]int64
	jobs       map[int64]domain.Job
	apps       map[int64]domain.Application
	appsByPair map[applicationKey]int64

	nextUserID int64
	nextJobID  int64
	nextAppID  int64

	now func() time.Time
}

func New() *Store {
	return &Store{
		users:      make(map[int64]domain.User),
		usernames:  make(map[string]int64),
		jobs:       make(map[int64]domain.Job),
		apps:       make(map[int64]domain.Application),
		appsByPair: make(map[applicationKey]int64),
		now:        time.Now,
	}
}

// EnsureSchema 对内存存储没有意义，仅为了满足与 postgres 相同的启动流程
func (s *Store) EnsureSchema(ctx context.Context) error {
	return nil
}

func (s *Store) EnsureDefaultAdmin(ctx context.Context, admin *domain.User) (bool, error) {
	existing, err := s.GetUserByUsername(ctx, admin.Username)
	switch {
	case err == nil:
		*admin = *existing
		return false, nil
	case !errors.Is(err, repository.ErrRecordNotFound):
		return false, err
	}

	admin.IsAdmin = true
	if err := s.CreateUser(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

/**********************************************
 * users
 **********************************************/

func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.usernames[user.Username]; exists {
		return repository.ErrDuplicateUsername
	}

	s.nextUserID++
	user.ID = s.nextUserID
	user.CreatedAt = s.now()

	s.users[user.ID] = *user
	s.usernames[user.Username] = user.ID
	return nil
}

func (s *Store) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.users[id]
	if !exists {
		return nil, repository.ErrRecordNotFound
	}
	return &user, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, exists := s.usernames[username]
	if !exists {
		return nil, repository.ErrRecordNotFound
	}
	user := s.users[id]
	return &user, nil
}

func (s *Store) GetUsersByIDs(ctx context.Context, ids []int64) ([]*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*domain.User, 0, len(ids))
	for _, id := range ids {
		if user, exists := s.users[id]; exists {
			users = append(users, &user)
		}
	}
	return users, nil
}

func (s *Store) GetAllUsers(ctx context.Context) ([]*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*domain.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, &user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (s *Store) CheckUsernameIfExists(ctx context.Context, username string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.usernames[username]
	return exists, nil
}

/**********************************************
 * jobs
 **********************************************/

func (s *Store) CreateJob(ctx context.Context, job *domain.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextJobID++
	job.ID = s.nextJobID
	job.CreatedAt = s.now()

	s.jobs[job.ID] = *job
	return nil
}

func (s *Store) GetJobByID(ctx context.Context, id int64) (*domain.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, exists := s.jobs[id]
	if !exists {
		return nil, repository.ErrRecordNotFound
	}
	return &job, nil
}

func (s *Store) GetAllJobs(ctx context.Context) ([]*domain.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	jobs := make([]*domain.Job, 0, len(s.jobs))
	for _, job := range s.jobs {
		jobs = append(jobs, &job)
	}
	sort.Slice(jobs, func(i, j int) bool {
		if !jobs[i].CreatedAt.Equal(jobs[j].CreatedAt) {
			return jobs[i].CreatedAt.After(jobs[j].CreatedAt)
		}
		return jobs[i].ID > jobs[j].ID
	})
	return jobs, nil
}

func (s *Store) GetJobsByIDs(ctx context.Context, ids []int64) ([]*domain.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	jobs := make([]*domain.Job, 0, len(ids))
	for _, id := range ids {
		if job, exists := s.jobs[id]; exists {
			jobs = append(jobs, &job)
		}
	}
	return jobs, nil
}

/**********************************************
 * applications
 **********************************************/

func (s *Store) CreateApplication(ctx context.Context, app *domain.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[app.JobID]; !exists {
		return repository.ErrReferenceNotFound
	}
	if _, exists := s.users[app.UserID]; !exists {
		return repository.ErrReferenceNotFound
	}

	key := applicationKey{jobID: app.JobID, userID: app.UserID}
	if _, exists := s.appsByPair[key]; exists {
		return repository.ErrDuplicateApplication
	}

	s.nextAppID++
	app.ID = s.nextAppID
	app.Status = domain.ApplicationStatusPending
	app.CreatedAt = s.now()

	s.apps[app.ID] = *app
	s.appsByPair[key] = app.ID
	return nil
}

func (s *Store) GetApplicationByID(ctx context.Context, id int64) (*domain.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	app, exists := s.apps[id]
	if !exists {
		return nil, repository.ErrRecordNotFound
	}
	return &app, nil
}

func (s *Store) CheckApplicationIfExists(ctx context.Context, jobID int64, userID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.appsByPair[applicationKey{jobID: jobID, userID: userID}]
	return exists, nil
}

func (s *Store) GetAllApplications(ctx context.Context) ([]*domain.Application, error) {
	return s.filterApplications(func(*domain.Application) bool { return true }), nil
}

func (s *Store) GetApplicationsByUserID(ctx context.Context, userID int64) ([]*domain.Application, error) {
	return s.filterApplications(func(app *domain.Application) bool { return app.UserID == userID }), nil
}

func (s *Store) UpdateApplicationStatus(ctx context.Context, id int64, status domain.ApplicationStatus) (*domain.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	app, exists := s.apps[id]
	if !exists {
		return nil, repository.ErrRecordNotFound
	}
	app.Status = status
	s.apps[id] = app
	return &app, nil
}

func (s *Store) filterApplications(keep func(*domain.Application) bool) []*domain.Application {
	s.mu.RLock()
	defer s.mu.RUnlock()

	apps := make([]*domain.Application, 0)
	for _, app := range s.apps {
		if keep(&app) {
			apps = append(apps, &app)
		}
	}
	sort.Slice(apps, func(i, j int) bool {
		if !apps[i].CreatedAt.Equal(apps[j].CreatedAt) {
			return apps[i].CreatedAt.After(apps[j].CreatedAt)
		}
		return apps[i].ID > apps[j].ID
	})
	return apps
}
