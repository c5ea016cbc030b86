package domain

import (
	"strings"
	"time"
)

// Profile guarda los datos personales del usuario. Uno por dueño.
type Profile struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"owner_id"`
	Name         string    `json:"name"`
	PhoneNumber  string    `json:"phone_number"`
	Gender       string    `json:"gender"`
	Weight       float64   `json:"weight"`
	Height       float64   `json:"height"`
	DateOfBirth  string    `json:"date_of_birth,omitempty"`
	ProfileImage *Image    `json:"profile_image,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ProfileFields son los campos editables de Profile.
type ProfileFields struct {
	Name         string  `json:"name" binding:"required"`
	PhoneNumber  string  `json:"phone_number"`
	Gender       string  `json:"gender" binding:"omitempty,oneof=Female Male Other"`
	Weight       float64 `json:"weight" binding:"gte=0"`
	Height       float64 `json:"height" binding:"gte=0"`
	DateOfBirth  string  `json:"date_of_birth" binding:"omitempty,datetime=2006-01-02"`
	ProfileImage *Image  `json:"profile_image"`
}

// ProfileDetails es lo que devuelve /profile: el perfil con la dieta, las alergias
// y la meta diaria de su preferencia. Sin preferencia esos campos quedan vacios.
type ProfileDetails struct {
	Profile
	DietaryPreference string   `json:"dietary_preference"`
	Allergies         []string `json:"allergies"`
	DailyCalorieGoal  int      `json:"daily_calorie_goal"`
}

// ProfileDetailsFields es el cuerpo de PUT /profile. La preferencia solo se
// escribe si viene dietary_preference.
type ProfileDetailsFields struct {
	ProfileFields
	DietaryPreference string   `json:"dietary_preference"`
	Allergies         []string `json:"allergies"`
	DailyCalorieGoal  int      `json:"daily_calorie_goal" binding:"gte=0"`
}

// HasPreference indica si el cuerpo trae datos de la preferencia.
func (f ProfileDetailsFields) HasPreference() bool {
	return strings.TrimSpace(f.DietaryPreference) != ""
}

func (f ProfileDetailsFields) PreferenceFields() DietaryPreferenceFields {
	return DietaryPreferenceFields{
		DietaryPreference: f.DietaryPreference,
		Allergies:         f.Allergies,
		DailyCalorieGoal:  f.DailyCalorieGoal,
	}
}

// NewProfileDetails junta perfil y preferencia; pref puede ser nil.
func NewProfileDetails(p Profile, pref *DietaryPreference) ProfileDetails {
	out := ProfileDetails{Profile: p, Allergies: []string{}}
	if pref != nil {
		out.DietaryPreference = pref.DietaryPreference
		out.DailyCalorieGoal = pref.DailyCalorieGoal
		if pref.Allergies != nil {
			out.Allergies = pref.Allergies
		}
	}
	return out
}
