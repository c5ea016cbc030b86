package domain

import "time"

// ConsumedMeal registra una comida ingerida por el usuario.
type ConsumedMeal struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"owner_id"`
	MealName   string    `json:"meal_name"`
	Calories   int       `json:"calories"`
	ConsumedAt time.Time `json:"consumed_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ConsumedMealFields: si ConsumedAt viene vacio se usa el momento del alta.
type ConsumedMealFields struct {
	MealName   string    `json:"meal_name" binding:"required"`
	Calories   int       `json:"calories" binding:"gte=0"`
	ConsumedAt time.Time `json:"consumed_at"`
}

// SavedMeal es una comida marcada como favorita. MealID es unico por dueño.
type SavedMeal struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	MealID    string    `json:"meal_id"`
	MealName  string    `json:"meal_name"`
	Calories  int       `json:"calories"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SavedMealFields struct {
	MealID   string `json:"meal_id" binding:"required"`
	MealName string `json:"meal_name" binding:"required"`
	Calories int    `json:"calories" binding:"gte=0"`
}
