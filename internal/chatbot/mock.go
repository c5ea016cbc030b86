package chatbot

import (
	"context"

	"meal-tracker/internal/domain"
)

// MockClient es un doble de prueba de Client con respuestas fijas.
type MockClient struct {
	Response string
	Calories int
	Err      error
}

func (m *MockClient) Chat(_ context.Context, _ string, _ string) (string, error) {
	return m.Response, m.Err
}

func (m *MockClient) CalculateCalories(_ context.Context, _ string, _ domain.UserRecipeFields) (int, error) {
	return m.Calories, m.Err
}
