// Package session 保存登录后的会话，使会话可以在进程重启后恢复，也可以被主动注销。
package session

import (
	"context"
	"errors"
	"time"

	"github.com/sysu-ecnc-dev/job-hub/backend/internal/domain"
)

var ErrSessionNotFound = errors.New("会话不存在或已过期")

type Store interface {
	Save(ctx context.Context, s *domain.Session, ttl time.Duration) error
	Get(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}
