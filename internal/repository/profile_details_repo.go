package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"meal-tracker/internal/domain"
)

// ProfileDetailsStore lee y escribe el perfil junto con la preferencia alimentaria.
type ProfileDetailsStore interface {
	GetDetails(ctx context.Context, ownerID string) (domain.ProfileDetails, error)
	SaveDetails(ctx context.Context, ownerID string, fields domain.ProfileDetailsFields) (domain.ProfileDetails, error)
}

// PoolDB lo cumple *pgxpool.Pool: consultas sueltas y transacciones.
type PoolDB interface {
	DBTX
	TxBeginner
}

type PgProfileDetailsStore struct {
	db PoolDB
}

func NewPgProfileDetailsStore(db PoolDB) *PgProfileDetailsStore {
	return &PgProfileDetailsStore{db: db}
}

// GetDetails devuelve ErrNotFound si no hay perfil; la preferencia es opcional.
func (s *PgProfileDetailsStore) GetDetails(ctx context.Context, ownerID string) (domain.ProfileDetails, error) {
	return loadProfileDetails(ctx, s.db, ownerID)
}

// SaveDetails hace upsert del perfil y, si viene, de la preferencia, en una transaccion.
func (s *PgProfileDetailsStore) SaveDetails(ctx context.Context, ownerID string, fields domain.ProfileDetailsFields) (domain.ProfileDetails, error) {
	var out domain.ProfileDetails
	err := pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		if _, err := NewPgProfileRepository(tx).UpsertByOwner(ctx, ownerID, fields.ProfileFields); err != nil {
			return err
		}
		if fields.HasPreference() {
			if _, err := NewPgDietaryPreferenceRepository(tx).UpsertByOwner(ctx, ownerID, fields.PreferenceFields()); err != nil {
				return err
			}
		}
		details, err := loadProfileDetails(ctx, tx, ownerID)
		if err != nil {
			return err
		}
		out = details
		return nil
	})
	if err != nil {
		return domain.ProfileDetails{}, err
	}
	return out, nil
}

func loadProfileDetails(ctx context.Context, db DBTX, ownerID string) (domain.ProfileDetails, error) {
	profile, err := NewPgProfileRepository(db).GetByOwner(ctx, ownerID)
	if err != nil {
		return domain.ProfileDetails{}, err
	}
	pref, err := NewPgDietaryPreferenceRepository(db).GetByOwner(ctx, ownerID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return domain.NewProfileDetails(profile, nil), nil
	case err != nil:
		return domain.ProfileDetails{}, err
	}
	return domain.NewProfileDetails(profile, &pref), nil
}
