package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	usererror "github.com/atulsm/user-service/internal/errors"
	"github.com/atulsm/user-service/internal/user/domain"
)

// DBTX is the subset of pgxpool.Pool the repository depends on. pgxmock's
// pool satisfies it too.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresRepository struct {
	db DBTX
}

func NewPostgresRepository(db DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `id, email, password_hash, first_name, last_name, COALESCE(phone_number, ''), created_at, updated_at`

func (r *PostgresRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO users (id, email, password_hash, first_name, last_name, phone_number, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8)
    `, user.ID, user.Email, user.PasswordHash, user.FirstName, user.LastName, user.PhoneNumber, user.CreatedAt, user.UpdatedAt)

	return err
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1 LIMIT 1;`, userColumns)

	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1 LIMIT 1;`, userColumns)

	return r.scanOne(r.db.QueryRow(ctx, query, email))
}

func (r *PostgresRepository) scanOne(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.FirstName,
		&user.LastName, &user.PhoneNumber, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

func (r *PostgresRepository) Update(ctx context.Context, user *domain.User) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE users
        SET email = $1,
            first_name = $2,
            last_name = $3,
            phone_number = NULLIF($4, ''),
            updated_at = $5
        WHERE id = $6
    `, user.Email, user.FirstName, user.LastName, user.PhoneNumber, user.UpdatedAt, user.ID)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return usererror.ErrUserNotFound
	}

	return nil
}

func (r *PostgresRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE users
        SET password_hash = $1,
            updated_at = now()
        WHERE id = $2
    `, passwordHash, id)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return usererror.ErrUserNotFound
	}

	return nil
}

func (r *PostgresRepository) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2;`, userColumns)

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []*domain.User{}
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.FirstName,
			&user.LastName, &user.PhoneNumber, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, &user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read users: %w", err)
	}

	return users, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return usererror.ErrUserNotFound
	}

	return nil
}

// Activity buckets signups (created_at) and activity (updated_at) per day
// over the inclusive [start, end] date range.
func (r *PostgresRepository) Activity(ctx context.Context, start, end time.Time) ([]domain.ActivityPoint, error) {
	rows, err := r.db.Query(ctx, `
        SELECT gs.day::date,
               (SELECT COUNT(*) FROM users WHERE created_at::date = gs.day::date),
               (SELECT COUNT(*) FROM users WHERE updated_at::date = gs.day::date)
        FROM generate_series($1::date, $2::date, interval '1 day') AS gs(day)
        ORDER BY gs.day;
    `, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity: %w", err)
	}
	defer rows.Close()

	points := []domain.ActivityPoint{}
	for rows.Next() {
		var p domain.ActivityPoint
		if err := rows.Scan(&p.Date, &p.NewUsers, &p.ActiveUsers); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read activity: %w", err)
	}

	return points, nil
}

func (r *PostgresRepository) Stats(ctx context.Context) (*domain.UserStats, error) {
	row := r.db.QueryRow(ctx, `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE updated_at >= now() - interval '30 days'),
               COUNT(*) FILTER (WHERE created_at >= now() - interval '7 days')
        FROM users;
    `)

	var stats domain.UserStats
	if err := row.Scan(&stats.TotalUsers, &stats.ActiveUsers, &stats.NewUsers); err != nil {
		return nil, fmt.Errorf("failed to query stats: %w", err)
	}

	return &stats, nil
}
