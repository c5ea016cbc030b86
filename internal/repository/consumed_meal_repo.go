package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"meal-tracker/internal/domain"
)

const consumedMealColumns = `id, owner_id, meal_name, calories, consumed_at, created_at, updated_at`

type ConsumedMealRepository interface {
	OwnedStore[domain.ConsumedMeal, domain.ConsumedMealFields]
	ListSince(ctx context.Context, ownerID string, since time.Time) ([]domain.ConsumedMeal, error)
}

type PgConsumedMealRepository struct {
	db DBTX
}

func NewPgConsumedMealRepository(db DBTX) *PgConsumedMealRepository {
	return &PgConsumedMealRepository{db: db}
}

func (r *PgConsumedMealRepository) Create(ctx context.Context, ownerID string, fields domain.ConsumedMealFields) (domain.ConsumedMeal, error) {
	now := time.Now().UTC()
	query := `
		INSERT INTO consumed_meals (` + consumedMealColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING ` + consumedMealColumns
	row := r.db.QueryRow(ctx, query,
		uuid.NewString(),
		ownerID,
		strings.TrimSpace(fields.MealName),
		fields.Calories,
		consumedAt(fields, now),
		now,
	)
	meal, err := scanConsumedMeal(row)
	return meal, mapError(err, "create consumed meal")
}

func (r *PgConsumedMealRepository) List(ctx context.Context, ownerID string) ([]domain.ConsumedMeal, error) {
	query := `SELECT ` + consumedMealColumns + ` FROM consumed_meals WHERE owner_id = $1 ORDER BY consumed_at DESC`
	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, mapError(err, "list consumed meals")
	}
	meals, err := collect(rows, scanConsumedMeal)
	return meals, mapError(err, "list consumed meals")
}

// ListSince devuelve las comidas con consumed_at >= since, de la mas vieja a la mas nueva.
func (r *PgConsumedMealRepository) ListSince(ctx context.Context, ownerID string, since time.Time) ([]domain.ConsumedMeal, error) {
	query := `
		SELECT ` + consumedMealColumns + `
		FROM consumed_meals
		WHERE owner_id = $1 AND consumed_at >= $2
		ORDER BY consumed_at ASC`
	rows, err := r.db.Query(ctx, query, ownerID, since)
	if err != nil {
		return nil, mapError(err, "list consumed meals")
	}
	meals, err := collect(rows, scanConsumedMeal)
	return meals, mapError(err, "list consumed meals")
}

func (r *PgConsumedMealRepository) Get(ctx context.Context, ownerID, id string) (domain.ConsumedMeal, error) {
	if err := checkID(id, "get consumed meal"); err != nil {
		return domain.ConsumedMeal{}, err
	}
	query := `SELECT ` + consumedMealColumns + ` FROM consumed_meals WHERE owner_id = $1 AND id = $2`
	meal, err := scanConsumedMeal(r.db.QueryRow(ctx, query, ownerID, id))
	return meal, mapError(err, "get consumed meal")
}

func (r *PgConsumedMealRepository) Update(ctx context.Context, ownerID, id string, fields domain.ConsumedMealFields) (domain.ConsumedMeal, error) {
	if err := checkID(id, "update consumed meal"); err != nil {
		return domain.ConsumedMeal{}, err
	}
	now := time.Now().UTC()
	query := `
		UPDATE consumed_meals
		SET meal_name = $3, calories = $4, consumed_at = $5, updated_at = $6
		WHERE owner_id = $1 AND id = $2
		RETURNING ` + consumedMealColumns
	row := r.db.QueryRow(ctx, query,
		ownerID,
		id,
		strings.TrimSpace(fields.MealName),
		fields.Calories,
		consumedAt(fields, now),
		now,
	)
	meal, err := scanConsumedMeal(row)
	return meal, mapError(err, "update consumed meal")
}

func (r *PgConsumedMealRepository) Delete(ctx context.Context, ownerID, id string) error {
	if err := checkID(id, "delete consumed meal"); err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM consumed_meals WHERE owner_id = $1 AND id = $2`, ownerID, id)
	if err != nil {
		return mapError(err, "delete consumed meal")
	}
	return notFoundUnlessAffected(tag, "delete consumed meal")
}

func consumedAt(fields domain.ConsumedMealFields, now time.Time) time.Time {
	if fields.ConsumedAt.IsZero() {
		return now
	}
	return fields.ConsumedAt.UTC()
}

func scanConsumedMeal(row pgx.Row) (domain.ConsumedMeal, error) {
	var m domain.ConsumedMeal
	err := row.Scan(
		&m.ID,
		&m.OwnerID,
		&m.MealName,
		&m.Calories,
		&m.ConsumedAt,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return domain.ConsumedMeal{}, err
	}
	return m, nil
}
