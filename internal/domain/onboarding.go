package domain

// OnboardingRequest es el formulario inicial; todo es obligatorio salvo las alergias.
type OnboardingRequest struct {
	Phone             string   `json:"phone" binding:"required"`
	Name              string   `json:"name" binding:"required"`
	Gender            string   `json:"gender" binding:"required,oneof=Female Male Other"`
	Weight            float64  `json:"weight" binding:"required,gt=0"`
	Height            float64  `json:"height" binding:"required,gt=0"`
	DateOfBirth       string   `json:"dob" binding:"required,datetime=2006-01-02"`
	Allergies         []string `json:"allergies"`
	DietaryPreference string   `json:"dietary_preference" binding:"required"`
	CalorieGoal       int      `json:"calorie_goal" binding:"required,gt=0"`
}

// ProfileFields separa la parte del formulario que va a profiles.
func (r OnboardingRequest) ProfileFields() ProfileFields {
	return ProfileFields{
		Name:        r.Name,
		PhoneNumber: r.Phone,
		Gender:      r.Gender,
		Weight:      r.Weight,
		Height:      r.Height,
		DateOfBirth: r.DateOfBirth,
	}
}

func (r OnboardingRequest) PreferenceFields() DietaryPreferenceFields {
	return DietaryPreferenceFields{
		DietaryPreference: r.DietaryPreference,
		Allergies:         r.Allergies,
		DailyCalorieGoal:  r.CalorieGoal,
	}
}

// Onboarding agrupa lo que el formulario inicial escribe en dos tablas.
type Onboarding struct {
	Profile    Profile           `json:"profile"`
	Preference DietaryPreference `json:"dietary_preference"`
}
