package domain

import "time"

// DietaryPreference guarda dieta, alergias y meta diaria de calorias. Una por dueño.
type DietaryPreference struct {
	ID                string    `json:"id"`
	OwnerID           string    `json:"owner_id"`
	DietaryPreference string    `json:"dietary_preference"`
	Allergies         []string  `json:"allergies"`
	DailyCalorieGoal  int       `json:"daily_calorie_goal"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type DietaryPreferenceFields struct {
	DietaryPreference string   `json:"dietary_preference" binding:"required"`
	Allergies         []string `json:"allergies"`
	DailyCalorieGoal  int      `json:"daily_calorie_goal" binding:"gte=0"`
}
