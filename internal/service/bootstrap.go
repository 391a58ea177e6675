package service

import (
	"context"
	"log/slog"

	"github.com/sysu-ecnc-dev/job-hub/backend/internal/config"
	"github.com/sysu-ecnc-dev/job-hub/backend/internal/domain"
)

// Bootstrap 确保表结构存在，并确保数据库中存在初始管理员。
// 每次进程启动时在其他组件使用存储之前调用一次
func Bootstrap(ctx context.Context, cfg *config.Config, store SchemaRepository, hasher PasswordHasher) error {
	if err := store.EnsureSchema(ctx); err != nil {
		return storageError(err)
	}

	passwordHash, err := hasher.Hash(cfg.InitialAdmin.Password)
	if err != nil {
		return err
	}

	admin := &domain.User{
		Username:     cfg.InitialAdmin.Username,
		PasswordHash: passwordHash,
		FullName:     cfg.InitialAdmin.FullName,
		FirstName:    cfg.InitialAdmin.FirstName,
		DateOfBirth:  cfg.InitialAdmin.DateOfBirth,
		Gender:       cfg.InitialAdmin.Gender,
		IsAdmin:      true,
	}

	created, err := store.EnsureDefaultAdmin(ctx, admin)
	if err != nil {
		return storageError(err)
	}

	if created {
		slog.Info("已创建初始管理员", "username", admin.Username)
	}

	return nil
}
