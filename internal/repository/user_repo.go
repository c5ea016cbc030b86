package repository

import (
	"context"

	"meal-tracker/internal/domain"
)

// UserRepository define el contrato de persistencia para usuarios.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) error
	GetByID(ctx context.Context, id string) (domain.User, error)
	GetByUserID(ctx context.Context, userID string) (domain.User, error)
	UpdatePasswordHash(ctx context.Context, id, hash string) error
}

// PgUserRepository implementa UserRepository usando pgx.
type PgUserRepository struct {
	db DBTX
}

func NewPgUserRepository(db DBTX) *PgUserRepository {
	return &PgUserRepository{db: db}
}

func (r *PgUserRepository) Create(ctx context.Context, user domain.User) error {
	const query = `
		INSERT INTO users (id, userid, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.Exec(ctx, query,
		user.ID,
		user.UserID,
		user.PasswordHash,
		user.CreatedAt,
	)
	return mapError(err, "create user")
}

func (r *PgUserRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	const query = `
		SELECT id, userid, password_hash, created_at
		FROM users
		WHERE id = $1
	`
	return r.getOne(ctx, query, id)
}

func (r *PgUserRepository) GetByUserID(ctx context.Context, userID string) (domain.User, error) {
	const query = `
		SELECT id, userid, password_hash, created_at
		FROM users
		WHERE userid = $1
	`
	return r.getOne(ctx, query, userID)
}

func (r *PgUserRepository) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	const query = `UPDATE users SET password_hash = $2 WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id, hash)
	if err != nil {
		return mapError(err, "update password")
	}
	return notFoundUnlessAffected(tag, "update password")
}

func (r *PgUserRepository) getOne(ctx context.Context, query string, arg string) (domain.User, error) {
	var u domain.User
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&u.ID,
		&u.UserID,
		&u.PasswordHash,
		&u.CreatedAt,
	)
	if err != nil {
		return domain.User{}, mapError(err, "get user")
	}
	return u, nil
}
