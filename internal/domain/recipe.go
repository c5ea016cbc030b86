package domain

import "time"

// UserRecipe es una receta cargada por el usuario. Los ingredientes viajan separados por coma.
type UserRecipe struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Name        string    `json:"mname"`
	Ingredients string    `json:"recipe_ingredients"`
	Instruction string    `json:"recipe_instruction"`
	Calories    int       `json:"calories"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type UserRecipeFields struct {
	Name        string `json:"mname" binding:"required"`
	Ingredients string `json:"recipe_ingredients" binding:"required"`
	Instruction string `json:"recipe_instruction" binding:"required"`
	Calories    int    `json:"calories" binding:"gte=0"`
}
