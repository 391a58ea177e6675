package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sysu-ecnc-dev/job-hub/backend/internal/config"
	"github.com/sysu-ecnc-dev/job-hub/backend/internal/domain"
	"github.com/sysu-ecnc-dev/job-hub/backend/internal/notify"
	"github.com/sysu-ecnc-dev/job-hub/backend/internal/repository"
	"github.com/sysu-ecnc-dev/job-hub/backend/internal/session"
	"golang.org/x/crypto/bcrypt"
)

type RegisterInput struct {
	Username    string `json:"username" validate:"required"`
	Password    string `json:"password" validate:"required"`
	FullName    string `json:"fullName" validate:"required"`
	FirstName   string `json:"firstName" validate:"required"`
	DateOfBirth string `json:"dateOfBirth" validate:"required"`
	Gender      string `json:"gender" validate:"required"`
}

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type Identity struct {
	users      UserRepository
	sessions   session.Store
	notifier   notify.Notifier
	validator  *Validator
	hasher     PasswordHasher
	sessionTTL time.Duration
	userDomain string

	now func() time.Time
}

func NewIdentity(cfg *config.Config, users UserRepository, sessions session.Store, notifier notify.Notifier, validator *Validator) *Identity {
	return &Identity{
		users:      users,
		sessions:   sessions,
		notifier:   notifier,
		validator:  validator,
		hasher:     BcryptHasher{Cost: cfg.Password.BcryptCost},
		sessionTTL: time.Duration(cfg.Session.Expiration) * time.Second,
		userDomain: cfg.Email.UserDomain,
		now:        time.Now,
	}
}

func (s *Identity) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, err
	}

	// 先检查用户名，使得重复用户名和其他存储错误可以区分开
	isExists, err := s.users.CheckUsernameIfExists(ctx, input.Username)
	if err != nil {
		return nil, storageError(err)
	}
	if isExists {
		return nil, newError(ErrConflict, "用户名已存在")
	}

	passwordHash, err := s.hasher.Hash(input.Password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			// bcrypt 按字节计算长度，validator 的 max 按字符计算，因此在这里处理
			return nil, newValidationError("password", "密码长度不能超过 72 字节")
		}
		return nil, err
	}

	user := &domain.User{
		Username:     input.Username,
		PasswordHash: passwordHash,
		FullName:     input.FullName,
		FirstName:    input.FirstName,
		DateOfBirth:  input.DateOfBirth,
		Gender:       input.Gender,
		IsAdmin:      false,
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, newError(ErrConflict, "用户名已存在")
		}
		return nil, storageError(err)
	}

	mailMessage := domain.MailMessage{
		Type: domain.MailTypeWelcome,
		To:   s.mailAddress(user),
		Data: domain.WelcomeMailData{
			FullName: user.FullName,
			Username: user.Username,
		},
	}
	if err := s.notifier.Notify(ctx, mailMessage); err != nil {
		// 注册本身已经成功，邮件发送失败只记录日志
		slog.Warn("无法投递欢迎邮件", "username", user.Username, "error", err)
	}

	return user, nil
}

// Login 成功时创建并保存新的会话。用户名不存在和密码错误返回相同的错误
func (s *Identity) Login(ctx context.Context, input LoginInput) (*domain.Session, error) {
	user, err := s.users.GetUserByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, newError(ErrAuthentication, "用户名不存在或密码错误")
		}
		return nil, storageError(err)
	}

	ok, err := s.hasher.Compare(user.PasswordHash, input.Password)
	if err != nil {
		// 存储中的哈希已损坏
		return nil, storageError(err)
	}
	if !ok {
		return nil, newError(ErrAuthentication, "用户名不存在或密码错误")
	}

	now := s.now()
	sess := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Username:  user.Username,
		FullName:  user.FullName,
		IsAdmin:   user.IsAdmin,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}

	if err := s.sessions.Save(ctx, sess, s.sessionTTL); err != nil {
		return nil, storageError(err)
	}

	return sess, nil
}

// Logout 注销会话，会话不存在时不返回错误
func (s *Identity) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return storageError(err)
	}
	return nil
}

// CurrentSession 恢复之前保存的会话
func (s *Identity) CurrentSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return nil, newError(ErrAuthentication, "登录已失效，请重新登录")
		}
		return nil, storageError(err)
	}

	return sess, nil
}

// UsersByIDs 供申请列表拼接申请人信息使用，不存在的 id 会被忽略
func (s *Identity) UsersByIDs(ctx context.Context, ids []int64) (map[int64]*domain.User, error) {
	if len(ids) == 0 {
		return make(map[int64]*domain.User), nil
	}

	users, err := s.users.GetUsersByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return nil, storageError(err)
	}

	result := make(map[int64]*domain.User, len(users))
	for _, user := range users {
		result[user.ID] = user
	}
	return result, nil
}

func (s *Identity) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, newError(ErrNotFound, "用户不存在")
		}
		return nil, storageError(err)
	}
	return user, nil
}

func (s *Identity) mailAddress(user *domain.User) string {
	return user.Username + "@" + s.userDomain
}
