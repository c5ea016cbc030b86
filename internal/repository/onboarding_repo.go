package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"meal-tracker/internal/domain"
)

// TxBeginner lo cumple *pgxpool.Pool.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// OnboardingStore escribe perfil y preferencia juntos.
type OnboardingStore interface {
	Onboard(ctx context.Context, ownerID string, profile domain.ProfileFields, pref domain.DietaryPreferenceFields) (domain.Onboarding, error)
}

type PgOnboardingStore struct {
	db TxBeginner
}

func NewPgOnboardingStore(db TxBeginner) *PgOnboardingStore {
	return &PgOnboardingStore{db: db}
}

// Onboard inserta ambas filas en una transaccion. Si el usuario ya tiene
// perfil o preferencia devuelve ErrConflict y no queda nada escrito.
func (s *PgOnboardingStore) Onboard(ctx context.Context, ownerID string, profile domain.ProfileFields, pref domain.DietaryPreferenceFields) (domain.Onboarding, error) {
	var out domain.Onboarding
	err := pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		p, err := NewPgProfileRepository(tx).Create(ctx, ownerID, profile)
		if err != nil {
			return err
		}
		d, err := NewPgDietaryPreferenceRepository(tx).Create(ctx, ownerID, pref)
		if err != nil {
			return err
		}
		out = domain.Onboarding{Profile: p, Preference: d}
		return nil
	})
	if err != nil {
		return domain.Onboarding{}, err
	}
	return out, nil
}
