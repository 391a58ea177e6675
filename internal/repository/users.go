package repository

import (
	"context"

	"github.com/sysu-ecnc-dev/job-hub/backend/internal/domain"
)

const userColumns = `id, username, password_hash, full_name, first_name, date_of_birth, gender, is_admin, created_at`

func userDst(user *domain.User) []any {
	return []any{&user.ID, &user.Username, &user.PasswordHash, &user.FullName, &user.FirstName, &user.DateOfBirth, &user.Gender, &user.IsAdmin, &user.CreatedAt}
}

func (r *Repository) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	ctx, cancel := r.withQueryTimeout(ctx)
	defer cancel()

	user := &domain.User{}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(userDst(user)...); err != nil {
		return nil, translateError(err)
	}

	return user, nil
}

func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	ctx, cancel := r.withQueryTimeout(ctx)
	defer cancel()

	user := &domain.User{}
	if err := r.dbpool.QueryRowContext(ctx, query, username).Scan(userDst(user)...); err != nil {
		return nil, translateError(err)
	}

	return user, nil
}

func (r *Repository) GetUsersByIDs(ctx context.Context, ids []int64) ([]*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ANY($1)`

	ctx, cancel := r.withQueryTimeout(ctx)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*domain.User, 0, len(ids))
	for rows.Next() {
		user := &domain.User{}
		if err := rows.Scan(userDst(user)...); err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

func (r *Repository) GetAllUsers(ctx context.Context) ([]*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id`

	ctx, cancel := r.withQueryTimeout(ctx)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		user := &domain.User{}
		if err := rows.Scan(userDst(user)...); err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

func (r *Repository) CreateUser(ctx context.Context, user *domain.User) error {
	ctx, cancel := r.withQueryTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO users (username, password_hash, full_name, first_name, date_of_birth, gender, is_admin)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	args := []any{user.Username, user.PasswordHash, user.FullName, user.FirstName, user.DateOfBirth, user.Gender, user.IsAdmin}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&user.ID, &user.CreatedAt); err != nil {
		return translateError(err)
	}

	return nil
}

func (r *Repository) CheckUsernameIfExists(ctx context.Context, username string) (bool, error) {
	isExists := false

	ctx, cancel := r.withQueryTimeout(ctx)
	defer cancel()

	query := `
		SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)
	`
	if err := r.dbpool.QueryRowContext(ctx, query, username).Scan(&isExists); err != nil {
		return false, err
	}

	return isExists, nil
}
