package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"meal-tracker/internal/domain"
)

const savedMealColumns = `id, owner_id, meal_id, meal_name, calories, created_at, updated_at`

type SavedMealRepository interface {
	OwnedStore[domain.SavedMeal, domain.SavedMealFields]
}

type PgSavedMealRepository struct {
	db DBTX
}

func NewPgSavedMealRepository(db DBTX) *PgSavedMealRepository {
	return &PgSavedMealRepository{db: db}
}

// Create devuelve ErrConflict si el dueño ya guardo ese meal_id.
func (r *PgSavedMealRepository) Create(ctx context.Context, ownerID string, fields domain.SavedMealFields) (domain.SavedMeal, error) {
	query := `
		INSERT INTO saved_meals (` + savedMealColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING ` + savedMealColumns
	row := r.db.QueryRow(ctx, query,
		uuid.NewString(),
		ownerID,
		strings.TrimSpace(fields.MealID),
		strings.TrimSpace(fields.MealName),
		fields.Calories,
		time.Now().UTC(),
	)
	meal, err := scanSavedMeal(row)
	return meal, mapError(err, "create saved meal")
}

func (r *PgSavedMealRepository) List(ctx context.Context, ownerID string) ([]domain.SavedMeal, error) {
	query := `SELECT ` + savedMealColumns + ` FROM saved_meals WHERE owner_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, mapError(err, "list saved meals")
	}
	meals, err := collect(rows, scanSavedMeal)
	return meals, mapError(err, "list saved meals")
}

func (r *PgSavedMealRepository) Get(ctx context.Context, ownerID, id string) (domain.SavedMeal, error) {
	if err := checkID(id, "get saved meal"); err != nil {
		return domain.SavedMeal{}, err
	}
	query := `SELECT ` + savedMealColumns + ` FROM saved_meals WHERE owner_id = $1 AND id = $2`
	meal, err := scanSavedMeal(r.db.QueryRow(ctx, query, ownerID, id))
	return meal, mapError(err, "get saved meal")
}

func (r *PgSavedMealRepository) Update(ctx context.Context, ownerID, id string, fields domain.SavedMealFields) (domain.SavedMeal, error) {
	if err := checkID(id, "update saved meal"); err != nil {
		return domain.SavedMeal{}, err
	}
	query := `
		UPDATE saved_meals
		SET meal_id = $3, meal_name = $4, calories = $5, updated_at = $6
		WHERE owner_id = $1 AND id = $2
		RETURNING ` + savedMealColumns
	row := r.db.QueryRow(ctx, query,
		ownerID,
		id,
		strings.TrimSpace(fields.MealID),
		strings.TrimSpace(fields.MealName),
		fields.Calories,
		time.Now().UTC(),
	)
	meal, err := scanSavedMeal(row)
	return meal, mapError(err, "update saved meal")
}

func (r *PgSavedMealRepository) Delete(ctx context.Context, ownerID, id string) error {
	if err := checkID(id, "delete saved meal"); err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM saved_meals WHERE owner_id = $1 AND id = $2`, ownerID, id)
	if err != nil {
		return mapError(err, "delete saved meal")
	}
	return notFoundUnlessAffected(tag, "delete saved meal")
}

func scanSavedMeal(row pgx.Row) (domain.SavedMeal, error) {
	var m domain.SavedMeal
	err := row.Scan(
		&m.ID,
		&m.OwnerID,
		&m.MealID,
		&m.MealName,
		&m.Calories,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return domain.SavedMeal{}, err
	}
	return m, nil
}
