package http

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"meal-tracker/internal/domain"
)

type mockUserRepo struct {
	mu            sync.Mutex
	usersByID     map[string]domain.User
	usersByUserID map[string]string
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		usersByID:     make(map[string]domain.User),
		usersByUserID: make(map[string]string),
	}
}

func (m *mockUserRepo) Create(_ context.Context, user domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.usersByUserID[user.UserID]; ok {
		return fmt.Errorf("create user: %w", domain.ErrConflict)
	}
	m.usersByID[user.ID] = user
	m.usersByUserID[user.UserID] = user.ID
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.usersByID[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return user, nil
}

func (m *mockUserRepo) GetByUserID(ctx context.Context, userID string) (domain.User, error) {
	m.mu.Lock()
	id, ok := m.usersByUserID[userID]
	m.mu.Unlock()
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return m.GetByID(ctx, id)
}

func (m *mockUserRepo) UpdatePasswordHash(_ context.Context, id, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.usersByID[id]
	if !ok {
		return domain.ErrNotFound
	}
	user.PasswordHash = hash
	m.usersByID[id] = user
	return nil
}

type memRow[T any] struct {
	owner string
	key   string
	seq   int
	value T
}

// memStore es un OwnedStore en memoria. key, si no es nil, define unicidad por dueño.
type memStore[T any, F any] struct {
	mu    sync.Mutex
	rows  map[string]memRow[T]
	seq   int
	build func(id, owner string, f F) T
	key   func(F) string
}

func newMemStore[T any, F any](build func(id, owner string, f F) T, key func(F) string) *memStore[T, F] {
	return &memStore[T, F]{rows: make(map[string]memRow[T]), build: build, key: key}
}

func (s *memStore[T, F]) conflict(owner, skipID string, f F) bool {
	if s.key == nil {
		return false
	}
	k := s.key(f)
	for id, r := range s.rows {
		if id != skipID && r.owner == owner && r.key == k {
			return true
		}
	}
	return false
}

func (s *memStore[T, F]) keyOf(f F) string {
	if s.key == nil {
		return ""
	}
	return s.key(f)
}

func (s *memStore[T, F]) Create(_ context.Context, owner string, f F) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero T
	if s.conflict(owner, "", f) {
		return zero, domain.ErrConflict
	}
	s.seq++
	id := fmt.Sprintf("id-%d", s.seq)
	v := s.build(id, owner, f)
	s.rows[id] = memRow[T]{owner: owner, key: s.keyOf(f), seq: s.seq, value: v}
	return v, nil
}

func (s *memStore[T, F]) List(_ context.Context, owner string) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := make([]memRow[T], 0)
	for _, r := range s.rows {
		if r.owner == owner {
			rows = append(rows, r)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.value)
	}
	return out, nil
}

func (s *memStore[T, F]) Get(_ context.Context, owner, id string) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rows[id]
	if !ok || r.owner != owner {
		var zero T
		return zero, domain.ErrNotFound
	}
	return r.value, nil
}

func (s *memStore[T, F]) Update(_ context.Context, owner, id string, f F) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero T
	r, ok := s.rows[id]
	if !ok || r.owner != owner {
		return zero, domain.ErrNotFound
	}
	if s.conflict(owner, id, f) {
		return zero, domain.ErrConflict
	}
	r.value = s.build(id, owner, f)
	r.key = s.keyOf(f)
	s.rows[id] = r
	return r.value, nil
}

func (s *memStore[T, F]) Delete(_ context.Context, owner, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rows[id]
	if !ok || r.owner != owner {
		return domain.ErrNotFound
	}
	delete(s.rows, id)
	return nil
}

// memSingleton agrega acceso por dueño; la clave de unicidad es el propio dueño.
type memSingleton[T any, F any] struct {
	*memStore[T, F]
}

func newMemSingleton[T any, F any](build func(id, owner string, f F) T) *memSingleton[T, F] {
	return &memSingleton[T, F]{memStore: newMemStore(build, func(F) string { return "singleton" })}
}

func (s *memSingleton[T, F]) idFor(owner string) (string, bool) {
	for id, r := range s.rows {
		if r.owner == owner {
			return id, true
		}
	}
	return "", false
}

func (s *memSingleton[T, F]) GetByOwner(ctx context.Context, owner string) (T, error) {
	s.mu.Lock()
	id, ok := s.idFor(owner)
	s.mu.Unlock()
	if !ok {
		var zero T
		return zero, domain.ErrNotFound
	}
	return s.Get(ctx, owner, id)
}

func (s *memSingleton[T, F]) UpsertByOwner(ctx context.Context, owner string, f F) (T, error) {
	s.mu.Lock()
	id, ok := s.idFor(owner)
	s.mu.Unlock()
	if !ok {
		return s.Create(ctx, owner, f)
	}
	return s.Update(ctx, owner, id, f)
}

func (s *memSingleton[T, F]) DeleteByOwner(ctx context.Context, owner string) error {
	s.mu.Lock()
	id, ok := s.idFor(owner)
	s.mu.Unlock()
	if !ok {
		return domain.ErrNotFound
	}
	return s.Delete(ctx, owner, id)
}

type memConsumedMeals struct {
	*memStore[domain.ConsumedMeal, domain.ConsumedMealFields]
}

func (m memConsumedMeals) ListSince(ctx context.Context, owner string, since time.Time) ([]domain.ConsumedMeal, error) {
	all, err := m.List(ctx, owner)
	if err != nil {
		return nil, err
	}
	out := make([]domain.ConsumedMeal, 0, len(all))
	for _, meal := range all {
		if !meal.ConsumedAt.Before(since) {
			out = append(out, meal)
		}
	}
	return out, nil
}

// memOnboarding escribe sobre los mismos fakes de perfil y preferencia.
type memOnboarding struct {
	profiles    *memSingleton[domain.Profile, domain.ProfileFields]
	preferences *memSingleton[domain.DietaryPreference, domain.DietaryPreferenceFields]
}

func (m memOnboarding) Onboard(ctx context.Context, owner string, p domain.ProfileFields, d domain.DietaryPreferenceFields) (domain.Onboarding, error) {
	if _, err := m.profiles.GetByOwner(ctx, owner); err == nil {
		return domain.Onboarding{}, domain.ErrConflict
	}
	if _, err := m.preferences.GetByOwner(ctx, owner); err == nil {
		return domain.Onboarding{}, domain.ErrConflict
	}
	profile, err := m.profiles.Create(ctx, owner, p)
	if err != nil {
		return domain.Onboarding{}, err
	}
	pref, err := m.preferences.Create(ctx, owner, d)
	if err != nil {
		return domain.Onboarding{}, err
	}
	return domain.Onboarding{Profile: profile, Preference: pref}, nil
}

func buildProfile(id, owner string, f domain.ProfileFields) domain.Profile {
	return domain.Profile{
		ID: id, OwnerID: owner, Name: f.Name, PhoneNumber: f.PhoneNumber, Gender: f.Gender,
		Weight: f.Weight, Height: f.Height, DateOfBirth: f.DateOfBirth, ProfileImage: f.ProfileImage,
	}
}

func buildPreference(id, owner string, f domain.DietaryPreferenceFields) domain.DietaryPreference {
	allergies := f.Allergies
	if allergies == nil {
		allergies = []string{}
	}
	return domain.DietaryPreference{
		ID: id, OwnerID: owner, DietaryPreference: f.DietaryPreference,
		Allergies: allergies, DailyCalorieGoal: f.DailyCalorieGoal,
	}
}

func buildConsumedMeal(id, owner string, f domain.ConsumedMealFields) domain.ConsumedMeal {
	at := f.ConsumedAt
	if at.IsZero() {
		at = time.Now().UTC()
	}
	return domain.ConsumedMeal{ID: id, OwnerID: owner, MealName: f.MealName, Calories: f.Calories, ConsumedAt: at}
}

func buildSavedMeal(id, owner string, f domain.SavedMealFields) domain.SavedMeal {
	return domain.SavedMeal{ID: id, OwnerID: owner, MealID: f.MealID, MealName: f.MealName, Calories: f.Calories}
}

func buildRecipe(id, owner string, f domain.UserRecipeFields) domain.UserRecipe {
	return domain.UserRecipe{
		ID: id, OwnerID: owner, Name: f.Name, Ingredients: f.Ingredients,
		Instruction: f.Instruction, Calories: f.Calories,
	}
}

func buildChatEntry(id, owner string, f domain.ChatHistoryFields) domain.ChatHistoryEntry {
	return domain.ChatHistoryEntry{ID: id, OwnerID: owner, Message: f.Message, Response: f.Response}
}

// memProfileDetails compone los mismos fakes que usa /dietary-preferences.
type memProfileDetails struct {
	profiles    *memSingleton[domain.Profile, domain.ProfileFields]
	preferences *memSingleton[domain.DietaryPreference, domain.DietaryPreferenceFields]
}

func (m memProfileDetails) GetDetails(ctx context.Context, owner string) (domain.ProfileDetails, error) {
	profile, err := m.profiles.GetByOwner(ctx, owner)
	if err != nil {
		return domain.ProfileDetails{}, err
	}
	pref, err := m.preferences.GetByOwner(ctx, owner)
	if err != nil {
		return domain.NewProfileDetails(profile, nil), nil
	}
	return domain.NewProfileDetails(profile, &pref), nil
}

func (m memProfileDetails) SaveDetails(ctx context.Context, owner string, f domain.ProfileDetailsFields) (domain.ProfileDetails, error) {
	if _, err := m.profiles.UpsertByOwner(ctx, owner, f.ProfileFields); err != nil {
		return domain.ProfileDetails{}, err
	}
	if f.HasPreference() {
		if _, err := m.preferences.UpsertByOwner(ctx, owner, f.PreferenceFields()); err != nil {
			return domain.ProfileDetails{}, err
		}
	}
	return m.GetDetails(ctx, owner)
}
