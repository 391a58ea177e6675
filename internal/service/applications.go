package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/sysu-ecnc-dev/job-hub/backend/internal/domain"
	"github.com/sysu-ecnc-dev/job-hub/backend/internal/notify"
	"github.com/sysu-ecnc-dev/job-hub/backend/internal/repository"
)

type SetStatusInput struct {
	Status string `json:"status" validate:"required"`
}

// Applications 管理求职者对职位的申请。
// 职位和用户信息只通过 Catalog 和 Identity 读取，本服务不会修改它们
type Applications struct {
	apps      ApplicationRepository
	catalog   *Catalog
	identity  *Identity
	notifier  notify.Notifier
	validator *Validator
}

func NewApplications(apps ApplicationRepository, catalog *Catalog, identity *Identity, notifier notify.Notifier, validator *Validator) *Applications {
	return &Applications{
		apps:      apps,
		catalog:   catalog,
		identity:  identity,
		notifier:  notifier,
		validator: validator,
	}
}

// Apply 为当前用户创建一条待处理的申请。管理员不能申请职位，每个用户对每个职位只能申请一次
func (s *Applications) Apply(ctx context.Context, sess *domain.Session, jobID int64) (*domain.Application, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	if sess.IsAdmin {
		return nil, newError(ErrAuthorization, "管理员不能申请职位")
	}

	if _, err := s.catalog.GetJob(ctx, jobID); err != nil {
		return nil, err
	}

	applied, err := s.HasApplied(ctx, jobID, sess.UserID)
	if err != nil {
		return nil, err
	}
	if applied {
		return nil, newError(ErrConflict, "您已经申请过该职位")
	}

	// 并发的重复申请由 (job_id, user_id) 唯一约束兜底
	app := &domain.Application{
		JobID:  jobID,
		UserID: sess.UserID,
		Status: domain.ApplicationStatusPending,
	}
	if err := s.apps.CreateApplication(ctx, app); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateApplication):
			return nil, newError(ErrConflict, "您已经申请过该职位")
		case errors.Is(err, repository.ErrReferenceNotFound):
			return nil, newError(ErrNotFound, "职位不存在")
		default:
			return nil, storageError(err)
		}
	}

	return app, nil
}

func (s *Applications) HasApplied(ctx context.Context, jobID int64, userID int64) (bool, error) {
	isExists, err := s.apps.CheckApplicationIfExists(ctx, jobID, userID)
	if err != nil {
		return false, storageError(err)
	}
	return isExists, nil
}

// ListApplicationsForAdmin 按申请时间倒序返回所有申请，并附带职位名称和申请人信息
func (s *Applications) ListApplicationsForAdmin(ctx context.Context, sess *domain.Session) ([]*domain.ApplicationDetail, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}

	apps, err := s.apps.GetAllApplications(ctx)
	if err != nil {
		return nil, storageError(err)
	}

	return s.project(ctx, apps)
}

// ListMyApplications 返回当前用户自己的申请
func (s *Applications) ListMyApplications(ctx context.Context, sess *domain.Session) ([]*domain.ApplicationDetail, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}

	apps, err := s.apps.GetApplicationsByUserID(ctx, sess.UserID)
	if err != nil {
		return nil, storageError(err)
	}

	return s.project(ctx, apps)
}

// SetStatus 修改申请状态。三种状态之间可以任意切换，包括切换到当前状态
func (s *Applications) SetStatus(ctx context.Context, sess *domain.Session, applicationID int64, input SetStatusInput) (*domain.Application, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}

	if err := s.validator.Struct(input); err != nil {
		return nil, err
	}
	status := domain.ApplicationStatus(input.Status)
	if !status.Valid() {
		return nil, newValidationError("status", "status 必须是 pending、accepted 或 rejected 中的一个")
	}

	app, err := s.apps.UpdateApplicationStatus(ctx, applicationID, status)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, newError(ErrNotFound, "申请不存在")
		}
		return nil, storageError(err)
	}

	s.notifyStatusChanged(ctx, app)

	return app, nil
}

func (s *Applications) notifyStatusChanged(ctx context.Context, app *domain.Application) {
	user, err := s.identity.GetUser(ctx, app.UserID)
	if err != nil {
		slog.Warn("无法获取申请人信息", "application_id", app.ID, "error", err)
		return
	}
	job, err := s.catalog.GetJob(ctx, app.JobID)
	if err != nil {
		slog.Warn("无法获取职位信息", "application_id", app.ID, "error", err)
		return
	}

	mailMessage := domain.MailMessage{
		Type: domain.MailTypeStatusChanged,
		To:   s.identity.mailAddress(user),
		Data: domain.StatusChangedMailData{
			FullName: user.FullName,
			JobTitle: job.Title,
			Company:  job.Company,
			Status:   app.Status,
		},
	}
	if err := s.notifier.Notify(ctx, mailMessage); err != nil {
		slog.Warn("无法投递申请状态变更邮件", "application_id", app.ID, "error", err)
	}
}

// project 通过 id 读取职位和用户，拼接成只读视图
func (s *Applications) project(ctx context.Context, apps []*domain.Application) ([]*domain.ApplicationDetail, error) {
	jobIDs := make([]int64, 0, len(apps))
	userIDs := make([]int64, 0, len(apps))
	for _, app := range apps {
		jobIDs = append(jobIDs, app.JobID)
		userIDs = append(userIDs, app.UserID)
	}

	jobs, err := s.catalog.JobsByIDs(ctx, jobIDs)
	if err != nil {
		return nil, err
	}
	users, err := s.identity.UsersByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	details := make([]*domain.ApplicationDetail, 0, len(apps))
	for _, app := range apps {
		detail := &domain.ApplicationDetail{Application: *app}
		if job, ok := jobs[app.JobID]; ok {
			detail.JobTitle = job.Title
		}
		if user, ok := users[app.UserID]; ok {
			detail.FullName = user.FullName
			detail.Username = user.Username
		}
		details = append(details, detail)
	}

	return details, nil
}
