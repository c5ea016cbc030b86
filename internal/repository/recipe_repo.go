package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"meal-tracker/internal/domain"
)

const recipeColumns = `id, owner_id, mname, recipe_ingredients, recipe_instruction, calories, created_at, updated_at`

type RecipeRepository interface {
	OwnedStore[domain.UserRecipe, domain.UserRecipeFields]
}

type PgRecipeRepository struct {
	db DBTX
}

func NewPgRecipeRepository(db DBTX) *PgRecipeRepository {
	return &PgRecipeRepository{db: db}
}

func (r *PgRecipeRepository) Create(ctx context.Context, ownerID string, fields domain.UserRecipeFields) (domain.UserRecipe, error) {
	query := `
		INSERT INTO user_recipes (` + recipeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		RETURNING ` + recipeColumns
	row := r.db.QueryRow(ctx, query,
		uuid.NewString(),
		ownerID,
		strings.TrimSpace(fields.Name),
		strings.TrimSpace(fields.Ingredients),
		strings.TrimSpace(fields.Instruction),
		fields.Calories,
		time.Now().UTC(),
	)
	recipe, err := scanRecipe(row)
	return recipe, mapError(err, "create recipe")
}

func (r *PgRecipeRepository) List(ctx context.Context, ownerID string) ([]domain.UserRecipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM user_recipes WHERE owner_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, mapError(err, "list recipes")
	}
	recipes, err := collect(rows, scanRecipe)
	return recipes, mapError(err, "list recipes")
}

func (r *PgRecipeRepository) Get(ctx context.Context, ownerID, id string) (domain.UserRecipe, error) {
	if err := checkID(id, "get recipe"); err != nil {
		return domain.UserRecipe{}, err
	}
	query := `SELECT ` + recipeColumns + ` FROM user_recipes WHERE owner_id = $1 AND id = $2`
	recipe, err := scanRecipe(r.db.QueryRow(ctx, query, ownerID, id))
	return recipe, mapError(err, "get recipe")
}

func (r *PgRecipeRepository) Update(ctx context.Context, ownerID, id string, fields domain.UserRecipeFields) (domain.UserRecipe, error) {
	if err := checkID(id, "update recipe"); err != nil {
		return domain.UserRecipe{}, err
	}
	query := `
		UPDATE user_recipes
		SET mname = $3, recipe_ingredients = $4, recipe_instruction = $5, calories = $6, updated_at = $7
		WHERE owner_id = $1 AND id = $2
		RETURNING ` + recipeColumns
	row := r.db.QueryRow(ctx, query,
		ownerID,
		id,
		strings.TrimSpace(fields.Name),
		strings.TrimSpace(fields.Ingredients),
		strings.TrimSpace(fields.Instruction),
		fields.Calories,
		time.Now().UTC(),
	)
	recipe, err := scanRecipe(row)
	return recipe, mapError(err, "update recipe")
}

func (r *PgRecipeRepository) Delete(ctx context.Context, ownerID, id string) error {
	if err := checkID(id, "delete recipe"); err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM user_recipes WHERE owner_id = $1 AND id = $2`, ownerID, id)
	if err != nil {
		return mapError(err, "delete recipe")
	}
	return notFoundUnlessAffected(tag, "delete recipe")
}

func scanRecipe(row pgx.Row) (domain.UserRecipe, error) {
	var rc domain.UserRecipe
	err := row.Scan(
		&rc.ID,
		&rc.OwnerID,
		&rc.Name,
		&rc.Ingredients,
		&rc.Instruction,
		&rc.Calories,
		&rc.CreatedAt,
		&rc.UpdatedAt,
	)
	if err != nil {
		return domain.UserRecipe{}, err
	}
	return rc, nil
}
