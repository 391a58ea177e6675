package repository

import (
	"context"
	"errors"
	"time"

	"github.com/sysu-ecnc-dev/job-hub/backend/internal/domain"
)

var schema = []string{
	`
	CREATE TABLE IF NOT EXISTS users (
		id            BIGSERIAL PRIMARY KEY,
		username      TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		full_name     TEXT NOT NULL,
		first_name    TEXT NOT NULL,
		date_of_birth TEXT NOT NULL,
		gender        TEXT NOT NULL,
		is_admin      BOOLEAN NOT NULL DEFAULT FALSE,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
	`,
	`
	CREATE TABLE IF NOT EXISTS jobs (
		id           BIGSERIAL PRIMARY KEY,
		title        TEXT NOT NULL,
		company      TEXT NOT NULL,
		location     TEXT NOT NULL,
		description  TEXT NOT NULL,
		requirements TEXT NOT NULL,
		salary       TEXT NOT NULL,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
	`,
	`
	CREATE TABLE IF NOT EXISTS applications (
		id         BIGSERIAL PRIMARY KEY,
		job_id     BIGINT NOT NULL REFERENCES jobs (id),
		user_id    BIGINT NOT NULL REFERENCES users (id),
		status     TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'accepted', 'rejected')),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (job_id, user_id)
	)
	`,
	`CREATE INDEX IF NOT EXISTS applications_user_id_idx ON applications (user_id)`,
}

// EnsureSchema 在每次启动时调用，表已存在时不做任何修改
func (r *Repository) EnsureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, stmt := range schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// EnsureDefaultAdmin 在数据库中不存在初始管理员时插入 admin，返回是否真正插入了记录
func (r *Repository) EnsureDefaultAdmin(ctx context.Context, admin *domain.User) (bool, error) {
	existing, err := r.GetUserByUsername(ctx, admin.Username)
	switch {
	case err == nil:
		*admin = *existing
		return false, nil
	case !errors.Is(err, ErrRecordNotFound):
		return false, err
	}

	admin.IsAdmin = true
	if err := r.CreateUser(ctx, admin); err != nil {
		if errors.Is(err, ErrDuplicateUsername) {
			// 另一个进程同时完成了插入
			return false, nil
		}
		return false, err
	}

	return true, nil
}
