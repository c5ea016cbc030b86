package service

import (
	"context"
	"errors"
	"time"

	"meal-tracker/internal/domain"
)

const dashboardDays = 7

type preferenceReader interface {
	GetByOwner(ctx context.Context, ownerID string) (domain.DietaryPreference, error)
}

type mealReader interface {
	ListSince(ctx context.Context, ownerID string, since time.Time) ([]domain.ConsumedMeal, error)
}

// DashboardService arma la vista del dia y de la ultima semana. No escribe nada.
type DashboardService struct {
	prefs preferenceReader
	meals mealReader
	now   func() time.Time
}

func NewDashboardService(prefs preferenceReader, meals mealReader) *DashboardService {
	return &DashboardService{
		prefs: prefs,
		meals: meals,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *DashboardService) Build(ctx context.Context, ownerID string) (domain.Dashboard, error) {
	goal := 0
	pref, err := s.prefs.GetByOwner(ctx, ownerID)
	switch {
	case err == nil:
		goal = pref.DailyCalorieGoal
	case errors.Is(err, domain.ErrNotFound):
	default:
		return domain.Dashboard{}, err
	}

	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	start := today.AddDate(0, 0, -(dashboardDays - 1))

	meals, err := s.meals.ListSince(ctx, ownerID, start)
	if err != nil {
		return domain.Dashboard{}, err
	}

	weekly := make([]domain.DailyTotal, dashboardDays)
	index := make(map[string]int, dashboardDays)
	for i := range weekly {
		day := start.AddDate(0, 0, i).Format("2006-01-02")
		weekly[i] = domain.DailyTotal{Date: day}
		index[day] = i
	}

	summary := domain.DaySummary{Meals: make([]domain.ConsumedMeal, 0)}
	for _, m := range meals {
		at := m.ConsumedAt.UTC()
		if i, ok := index[at.Format("2006-01-02")]; ok {
			weekly[i].Calories += m.Calories
		}
		if !at.Before(today) && at.Before(today.AddDate(0, 0, 1)) {
			summary.Meals = append(summary.Meals, m)
			summary.TotalCalories += m.Calories
		}
	}
	summary.RemainingCalories = max(goal-summary.TotalCalories, 0)

	return domain.Dashboard{
		CalorieGoal: goal,
		Today:       summary,
		Weekly:      weekly,
	}, nil
}
