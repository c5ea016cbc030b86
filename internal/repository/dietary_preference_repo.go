package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"meal-tracker/internal/domain"
)

const dietaryColumns = `id, owner_id, dietary_preference, allergies, daily_calorie_goal, created_at, updated_at`

type DietaryPreferenceRepository interface {
	SingletonStore[domain.DietaryPreference, domain.DietaryPreferenceFields]
}

type PgDietaryPreferenceRepository struct {
	db DBTX
}

func NewPgDietaryPreferenceRepository(db DBTX) *PgDietaryPreferenceRepository {
	return &PgDietaryPreferenceRepository{db: db}
}

func (r *PgDietaryPreferenceRepository) Create(ctx context.Context, ownerID string, fields domain.DietaryPreferenceFields) (domain.DietaryPreference, error) {
	query := `
		INSERT INTO dietary_preferences (` + dietaryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING ` + dietaryColumns
	row := r.db.QueryRow(ctx, query,
		uuid.NewString(),
		ownerID,
		strings.TrimSpace(fields.DietaryPreference),
		normalizeAllergies(fields.Allergies),
		fields.DailyCalorieGoal,
		time.Now().UTC(),
	)
	pref, err := scanDietaryPreference(row)
	return pref, mapError(err, "create dietary preference")
}

func (r *PgDietaryPreferenceRepository) List(ctx context.Context, ownerID string) ([]domain.DietaryPreference, error) {
	query := `SELECT ` + dietaryColumns + ` FROM dietary_preferences WHERE owner_id = $1 ORDER BY created_at`
	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, mapError(err, "list dietary preferences")
	}
	prefs, err := collect(rows, scanDietaryPreference)
	return prefs, mapError(err, "list dietary preferences")
}

func (r *PgDietaryPreferenceRepository) Get(ctx context.Context, ownerID, id string) (domain.DietaryPreference, error) {
	if err := checkID(id, "get dietary preference"); err != nil {
		return domain.DietaryPreference{}, err
	}
	query := `SELECT ` + dietaryColumns + ` FROM dietary_preferences WHERE owner_id = $1 AND id = $2`
	pref, err := scanDietaryPreference(r.db.QueryRow(ctx, query, ownerID, id))
	return pref, mapError(err, "get dietary preference")
}

func (r *PgDietaryPreferenceRepository) GetByOwner(ctx context.Context, ownerID string) (domain.DietaryPreference, error) {
	query := `SELECT ` + dietaryColumns + ` FROM dietary_preferences WHERE owner_id = $1`
	pref, err := scanDietaryPreference(r.db.QueryRow(ctx, query, ownerID))
	return pref, mapError(err, "get dietary preference")
}

func (r *PgDietaryPreferenceRepository) Update(ctx context.Context, ownerID, id string, fields domain.DietaryPreferenceFields) (domain.DietaryPreference, error) {
	if err := checkID(id, "update dietary preference"); err != nil {
		return domain.DietaryPreference{}, err
	}
	query := `
		UPDATE dietary_preferences
		SET dietary_preference = $3, allergies = $4, daily_calorie_goal = $5, updated_at = $6
		WHERE owner_id = $1 AND id = $2
		RETURNING ` + dietaryColumns
	row := r.db.QueryRow(ctx, query,
		ownerID,
		id,
		strings.TrimSpace(fields.DietaryPreference),
		normalizeAllergies(fields.Allergies),
		fields.DailyCalorieGoal,
		time.Now().UTC(),
	)
	pref, err := scanDietaryPreference(row)
	return pref, mapError(err, "update dietary preference")
}

func (r *PgDietaryPreferenceRepository) UpsertByOwner(ctx context.Context, ownerID string, fields domain.DietaryPreferenceFields) (domain.DietaryPreference, error) {
	query := `
		INSERT INTO dietary_preferences (` + dietaryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (owner_id) DO UPDATE
		SET dietary_preference = EXCLUDED.dietary_preference, allergies = EXCLUDED.allergies,
			daily_calorie_goal = EXCLUDED.daily_calorie_goal, updated_at = EXCLUDED.updated_at
		RETURNING ` + dietaryColumns
	row := r.db.QueryRow(ctx, query,
		uuid.NewString(),
		ownerID,
		strings.TrimSpace(fields.DietaryPreference),
		normalizeAllergies(fields.Allergies),
		fields.DailyCalorieGoal,
		time.Now().UTC(),
	)
	pref, err := scanDietaryPreference(row)
	return pref, mapError(err, "upsert dietary preference")
}

func (r *PgDietaryPreferenceRepository) Delete(ctx context.Context, ownerID, id string) error {
	if err := checkID(id, "delete dietary preference"); err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM dietary_preferences WHERE owner_id = $1 AND id = $2`, ownerID, id)
	if err != nil {
		return mapError(err, "delete dietary preference")
	}
	return notFoundUnlessAffected(tag, "delete dietary preference")
}

func (r *PgDietaryPreferenceRepository) DeleteByOwner(ctx context.Context, ownerID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM dietary_preferences WHERE owner_id = $1`, ownerID)
	if err != nil {
		return mapError(err, "delete dietary preference")
	}
	return notFoundUnlessAffected(tag, "delete dietary preference")
}

// normalizeAllergies recorta espacios y descarta vacios; nunca devuelve nil.
func normalizeAllergies(in []string) []string {
	out := make([]string, 0, len(in))
	for _, a := range in {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}

func scanDietaryPreference(row pgx.Row) (domain.DietaryPreference, error) {
	var p domain.DietaryPreference
	err := row.Scan(
		&p.ID,
		&p.OwnerID,
		&p.DietaryPreference,
		&p.Allergies,
		&p.DailyCalorieGoal,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return domain.DietaryPreference{}, err
	}
	return p, nil
}
