package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"healthconnect/internal/domain"
)

type UserRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepo {
	return &UserRepo{
		db: db,
	}
}

const userColumns = `id, email, display_name, photo_url, password_hash, role, is_email_verified, is_mobile_verified, is_active, created_at, updated_at`

func (r *UserRepo) Create(ctx context.Context, dto domain.CreateUserDTO, passwordHash string) (int64, error) {
	var id int64
	query := `
		INSERT INTO users (email, display_name, photo_url, password_hash, role, is_email_verified, is_mobile_verified, is_active, created_at, updated_at)
		VALUES ($1, $2, '', $3, $4, false, false, true, $5, $5)
		RETURNING id
	`

	err := r.db.QueryRow(
		ctx,
		query,
		strings.ToLower(dto.Email),
		dto.DisplayName,
		passwordHash,
		dto.Role,
		time.Now(),
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("ошибка создания пользователя: %w", err)
	}

	return id, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := r.scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения пользователя: %w", err)
	}

	return user, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := r.scanUser(r.db.QueryRow(ctx, query, strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения пользователя: %w", err)
	}

	return user, nil
}

func (r *UserRepo) Update(ctx context.Context, id int64, dto domain.UpdateUserDTO) error {
	var sets []string
	var args []interface{}
	argCount := 1

	if dto.DisplayName != nil {
		sets = append(sets, fmt.Sprintf("display_name = $%d", argCount))
		args = append(args, *dto.DisplayName)
		argCount++
	}

	if dto.PhotoURL != nil {
		sets = append(sets, fmt.Sprintf("photo_url = $%d", argCount))
		args = append(args, *dto.PhotoURL)
		argCount++
	}

	if dto.Email != nil {
		sets = append(sets, fmt.Sprintf("email = $%d", argCount))
		args = append(args, strings.ToLower(*dto.Email))
		argCount++
	}

	if dto.IsEmailVerified != nil {
		sets = append(sets, fmt.Sprintf("is_email_verified = $%d", argCount))
		args = append(args, *dto.IsEmailVerified)
		argCount++
	}

	if dto.IsMobileVerified != nil {
		sets = append(sets, fmt.Sprintf("is_mobile_verified = $%d", argCount))
		args = append(args, *dto.IsMobileVerified)
		argCount++
	}

	if len(sets) == 0 {
		return nil
	}

	sets = append(sets, fmt.Sprintf("updated_at = $%d", argCount))
	args = append(args, time.Now())
	argCount++

	args = append(args, id)
	query := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d", strings.Join(sets, ", "), argCount)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка обновления пользователя: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *UserRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	query := `UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3`

	tag, err := r.db.Exec(ctx, query, passwordHash, time.Now(), id)
	if err != nil {
		return fmt.Errorf("ошибка обновления пароля: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	query := `UPDATE users SET is_active = false, updated_at = $1 WHERE id = $2`

	_, err := r.db.Exec(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("ошибка удаления пользователя: %w", err)
	}

	return nil
}

func (r *UserRepo) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка пользователей: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, err := r.scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования пользователя: %w", err)
		}
		users = append(users, *user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при обработке результатов: %w", err)
	}

	return users, nil
}

func (r *UserRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("ошибка подсчета пользователей: %w", err)
	}
	return count, nil
}

func (r *UserRepo) scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.DisplayName,
		&user.PhotoURL,
		&user.PasswordHash,
		&user.Role,
		&user.IsEmailVerified,
		&user.IsMobileVerified,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
