package repository

import (
	"context"

	"meal-tracker/internal/domain"
)

// PgSessionRepository guarda el token vigente de cada usuario.
// user_id es unico: guardar una sesion nueva reemplaza el token anterior.
type PgSessionRepository struct {
	db DBTX
}

func NewPgSessionRepository(db DBTX) *PgSessionRepository {
	return &PgSessionRepository{db: db}
}

func (r *PgSessionRepository) Replace(ctx context.Context, session domain.Session) error {
	const query = `
		INSERT INTO sessions (token, user_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET token = EXCLUDED.token, created_at = EXCLUDED.created_at
	`
	_, err := r.db.Exec(ctx, query,
		session.Token,
		session.UserID,
		session.CreatedAt,
	)
	return mapError(err, "replace session")
}

func (r *PgSessionRepository) Lookup(ctx context.Context, token string) (domain.Session, error) {
	const query = `
		SELECT token, user_id, created_at
		FROM sessions
		WHERE token = $1
	`
	var session domain.Session
	err := r.db.QueryRow(ctx, query, token).Scan(
		&session.Token,
		&session.UserID,
		&session.CreatedAt,
	)
	if err != nil {
		return domain.Session{}, mapError(err, "lookup session")
	}
	return session, nil
}

func (r *PgSessionRepository) Delete(ctx context.Context, token string) error {
	const query = `DELETE FROM sessions WHERE token = $1`
	_, err := r.db.Exec(ctx, query, token)
	return mapError(err, "delete session")
}
