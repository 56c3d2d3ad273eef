package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devfolio/portfolio-api/internal/core/domain"
)

const uniqueViolation = "23505"

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	const query = `INSERT INTO users (id, identifier, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, identifier, password_hash, created_at`

	var u domain.User
	err := r.pool.QueryRow(ctx, query,
		user.ID, domain.NormalizeIdentifier(user.Identifier), user.PasswordHash, user.CreatedAt,
	).Scan(&u.ID, &u.Identifier, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrIdentifierAlreadyExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}

func (r *UserRepository) FindByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	const query = `SELECT id, identifier, password_hash, created_at FROM users WHERE identifier = $1`

	var u domain.User
	err := r.pool.QueryRow(ctx, query, domain.NormalizeIdentifier(identifier)).
		Scan(&u.ID, &u.Identifier, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}
