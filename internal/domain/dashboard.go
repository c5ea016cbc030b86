package domain

// Dashboard es una vista derivada; no tiene tabla propia.
type Dashboard struct {
	CalorieGoal int          `json:"calorie_goal"`
	Today       DaySummary   `json:"today"`
	Weekly      []DailyTotal `json:"weekly"`
}

type DaySummary struct {
	Meals             []ConsumedMeal `json:"meals"`
	TotalCalories     int            `json:"total_calories"`
	RemainingCalories int            `json:"remaining_calories"`
}

type DailyTotal struct {
	Date     string `json:"date"`
	Calories int    `json:"calories"`
}
