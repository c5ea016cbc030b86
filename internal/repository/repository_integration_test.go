//go:build integration

package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"meal-tracker/internal/db"
	"meal-tracker/internal/domain"
)

func setupPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("meals_test"),
		tcpostgres.WithUsername("test_user"),
		tcpostgres.WithPassword("test_password"),
		tcpostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err, "start postgres container")
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(ctr) })

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, db.Migrate(ctx, pool))
	return pool
}

func createUser(t *testing.T, users *PgUserRepository, userID string) domain.User {
	t.Helper()
	u := domain.User{
		ID:           uuid.NewString(),
		UserID:       userID,
		PasswordHash: "hash",
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, users.Create(context.Background(), u))
	return u
}

// assertOwnerIsolation crea una fila de owner y verifica que other no puede
// leerla, modificarla ni borrarla, y que la fila sigue igual para su dueño.
func assertOwnerIsolation[T any, F any](t *testing.T, store OwnedStore[T, F], owner, other string, create, update F, idOf func(T) string) {
	t.Helper()
	ctx := context.Background()

	row, err := store.Create(ctx, owner, create)
	require.NoError(t, err)
	id := idOf(row)
	before, err := store.Get(ctx, owner, id)
	require.NoError(t, err)

	_, err = store.Get(ctx, other, id)
	assert.ErrorIs(t, err, domain.ErrNotFound, "get")
	_, err = store.Update(ctx, other, id, update)
	assert.ErrorIs(t, err, domain.ErrNotFound, "update")
	err = store.Delete(ctx, other, id)
	assert.ErrorIs(t, err, domain.ErrNotFound, "delete")

	list, err := store.List(ctx, other)
	require.NoError(t, err)
	for _, item := range list {
		assert.NotEqual(t, id, idOf(item), "list leaked a foreign row")
	}

	after, err := store.Get(ctx, owner, id)
	require.NoError(t, err)
	assert.Equal(t, before, after, "row changed by another owner")
}

func TestRepositories_Integration(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	users := NewPgUserRepository(pool)

	alice := createUser(t, users, "alice")
	bob := createUser(t, users, "bob")

	t.Run("duplicate userid conflicts", func(t *testing.T) {
		err := users.Create(ctx, domain.User{ID: uuid.NewString(), UserID: "alice", PasswordHash: "x", CreatedAt: time.Now()})
		assert.True(t, errors.Is(err, domain.ErrConflict))
	})

	t.Run("recipes are isolated by owner", func(t *testing.T) {
		recipes := NewPgRecipeRepository(pool)
		rc, err := recipes.Create(ctx, alice.ID, domain.UserRecipeFields{
			Name: "Soup", Ingredients: "water,salt", Instruction: "boil", Calories: 120,
		})
		require.NoError(t, err)

		_, err = recipes.Get(ctx, bob.ID, rc.ID)
		assert.True(t, errors.Is(err, domain.ErrNotFound))

		err = recipes.Delete(ctx, bob.ID, rc.ID)
		assert.True(t, errors.Is(err, domain.ErrNotFound))

		got, err := recipes.Get(ctx, alice.ID, rc.ID)
		require.NoError(t, err)
		assert.Equal(t, "Soup", got.Name)

		list, err := recipes.List(ctx, bob.ID)
		require.NoError(t, err)
		assert.Empty(t, list)

		_, err = recipes.Get(ctx, alice.ID, "not-a-uuid")
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})

	t.Run("every store rejects cross-owner access", func(t *testing.T) {
		dave := createUser(t, users, "dave")
		erin := createUser(t, users, "erin")

		t.Run("profiles", func(t *testing.T) {
			assertOwnerIsolation[domain.Profile, domain.ProfileFields](t, NewPgProfileRepository(pool), dave.ID, erin.ID,
				domain.ProfileFields{Name: "Dave", Weight: 80},
				domain.ProfileFields{Name: "Mallory", Weight: 1},
				func(p domain.Profile) string { return p.ID })
		})
		t.Run("dietary preferences", func(t *testing.T) {
			assertOwnerIsolation[domain.DietaryPreference, domain.DietaryPreferenceFields](t, NewPgDietaryPreferenceRepository(pool), dave.ID, erin.ID,
				domain.DietaryPreferenceFields{DietaryPreference: "vegan", Allergies: []string{"soy"}, DailyCalorieGoal: 2100},
				domain.DietaryPreferenceFields{DietaryPreference: "carnivore", DailyCalorieGoal: 9999},
				func(d domain.DietaryPreference) string { return d.ID })
		})
		t.Run("consumed meals", func(t *testing.T) {
			assertOwnerIsolation[domain.ConsumedMeal, domain.ConsumedMealFields](t, NewPgConsumedMealRepository(pool), dave.ID, erin.ID,
				domain.ConsumedMealFields{MealName: "Oats", Calories: 350},
				domain.ConsumedMealFields{MealName: "Cake", Calories: 5000},
				func(m domain.ConsumedMeal) string { return m.ID })
		})
		t.Run("saved meals", func(t *testing.T) {
			assertOwnerIsolation[domain.SavedMeal, domain.SavedMealFields](t, NewPgSavedMealRepository(pool), dave.ID, erin.ID,
				domain.SavedMealFields{MealID: "iso-1", MealName: "Bowl", Calories: 500},
				domain.SavedMealFields{MealID: "iso-2", MealName: "Other", Calories: 1},
				func(m domain.SavedMeal) string { return m.ID })
		})
		t.Run("user recipes", func(t *testing.T) {
			assertOwnerIsolation[domain.UserRecipe, domain.UserRecipeFields](t, NewPgRecipeRepository(pool), dave.ID, erin.ID,
				domain.UserRecipeFields{Name: "Stew", Ingredients: "beans", Instruction: "simmer", Calories: 400},
				domain.UserRecipeFields{Name: "Hijacked", Ingredients: "x", Instruction: "y", Calories: 1},
				func(r domain.UserRecipe) string { return r.ID })
		})
		t.Run("chat history", func(t *testing.T) {
			assertOwnerIsolation[domain.ChatHistoryEntry, domain.ChatHistoryFields](t, NewPgChatHistoryRepository(pool), dave.ID, erin.ID,
				domain.ChatHistoryFields{Message: "what should I eat?", Response: "vegetables"},
				domain.ChatHistoryFields{Message: "rewritten", Response: "rewritten"},
				func(e domain.ChatHistoryEntry) string { return e.ID })
		})

		t.Run("singletons by owner", func(t *testing.T) {
			_, err := NewPgProfileRepository(pool).GetByOwner(ctx, erin.ID)
			assert.ErrorIs(t, err, domain.ErrNotFound)
			err = NewPgDietaryPreferenceRepository(pool).DeleteByOwner(ctx, erin.ID)
			assert.ErrorIs(t, err, domain.ErrNotFound)

			pref, err := NewPgDietaryPreferenceRepository(pool).GetByOwner(ctx, dave.ID)
			require.NoError(t, err)
			assert.Equal(t, 2100, pref.DailyCalorieGoal)
		})
	})

	t.Run("profile details combine profile and preference", func(t *testing.T) {
		frank := createUser(t, users, "frank")
		store := NewPgProfileDetailsStore(pool)

		_, err := store.GetDetails(ctx, frank.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		out, err := store.SaveDetails(ctx, frank.ID, domain.ProfileDetailsFields{
			ProfileFields: domain.ProfileFields{Name: "Frank"},
		})
		require.NoError(t, err)
		assert.Equal(t, "Frank", out.Name)
		assert.Empty(t, out.DietaryPreference)
		assert.Equal(t, []string{}, out.Allergies)

		_, err = store.SaveDetails(ctx, frank.ID, domain.ProfileDetailsFields{
			ProfileFields:     domain.ProfileFields{Name: "Frank", Height: 180},
			DietaryPreference: "paleo",
			Allergies:         []string{"eggs"},
			DailyCalorieGoal:  2400,
		})
		require.NoError(t, err)

		got, err := store.GetDetails(ctx, frank.ID)
		require.NoError(t, err)
		assert.Equal(t, 180.0, got.Height)
		assert.Equal(t, "paleo", got.DietaryPreference)
		assert.Equal(t, []string{"eggs"}, got.Allergies)
		assert.Equal(t, 2400, got.DailyCalorieGoal)

		_, err = store.SaveDetails(ctx, frank.ID, domain.ProfileDetailsFields{
			ProfileFields:     domain.ProfileFields{Name: "Frank", DateOfBirth: "not-a-date"},
			DietaryPreference: "keto",
		})
		assert.ErrorIs(t, err, domain.ErrValidation)
		pref, err := NewPgDietaryPreferenceRepository(pool).GetByOwner(ctx, frank.ID)
		require.NoError(t, err)
		assert.Equal(t, "paleo", pref.DietaryPreference, "failed save must not touch the preference")
	})

	t.Run("saved meal id is unique per owner", func(t *testing.T) {
		saved := NewPgSavedMealRepository(pool)
		fields := domain.SavedMealFields{MealID: "m-1", MealName: "Salad", Calories: 200}
		_, err := saved.Create(ctx, alice.ID, fields)
		require.NoError(t, err)

		_, err = saved.Create(ctx, alice.ID, fields)
		assert.True(t, errors.Is(err, domain.ErrConflict))

		_, err = saved.Create(ctx, bob.ID, fields)
		assert.NoError(t, err)
	})

	t.Run("profile image round trip", func(t *testing.T) {
		profiles := NewPgProfileRepository(pool)
		img := &domain.Image{Data: []byte{0x89, 0x50, 0x4e, 0x47}, ContentType: "image/png"}
		p, err := profiles.UpsertByOwner(ctx, alice.ID, domain.ProfileFields{
			Name: "Alice", DateOfBirth: "1990-04-02", ProfileImage: img,
		})
		require.NoError(t, err)

		got, err := profiles.GetByOwner(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, p.ID, got.ID)
		assert.Equal(t, "1990-04-02", got.DateOfBirth)
		require.NotNil(t, got.ProfileImage)
		assert.Equal(t, img.Data, got.ProfileImage.Data)
		assert.Equal(t, "image/png", got.ProfileImage.ContentType)
	})

	t.Run("onboarding conflicts when profile exists", func(t *testing.T) {
		store := NewPgOnboardingStore(pool)
		_, err := store.Onboard(ctx, alice.ID,
			domain.ProfileFields{Name: "Alice"},
			domain.DietaryPreferenceFields{DietaryPreference: "vegan", DailyCalorieGoal: 1800},
		)
		assert.True(t, errors.Is(err, domain.ErrConflict))

		_, err = NewPgDietaryPreferenceRepository(pool).GetByOwner(ctx, alice.ID)
		assert.True(t, errors.Is(err, domain.ErrNotFound), "preference must roll back")

		out, err := store.Onboard(ctx, bob.ID,
			domain.ProfileFields{Name: "Bob"},
			domain.DietaryPreferenceFields{DietaryPreference: "keto", Allergies: []string{" nuts ", ""}},
		)
		require.NoError(t, err)
		assert.Equal(t, []string{"nuts"}, out.Preference.Allergies)
	})

	t.Run("consumed meals since", func(t *testing.T) {
		meals := NewPgConsumedMealRepository(pool)
		now := time.Now().UTC()
		_, err := meals.Create(ctx, alice.ID, domain.ConsumedMealFields{MealName: "Old", Calories: 100, ConsumedAt: now.Add(-10 * 24 * time.Hour)})
		require.NoError(t, err)
		_, err = meals.Create(ctx, alice.ID, domain.ConsumedMealFields{MealName: "Fresh", Calories: 300})
		require.NoError(t, err)

		recent, err := meals.ListSince(ctx, alice.ID, now.Add(-24*time.Hour))
		require.NoError(t, err)
		require.Len(t, recent, 1)
		assert.Equal(t, "Fresh", recent[0].MealName)
	})

	t.Run("new session replaces the old token", func(t *testing.T) {
		sessions := NewPgSessionRepository(pool)
		require.NoError(t, sessions.Replace(ctx, domain.Session{Token: "first", UserID: alice.ID, CreatedAt: time.Now()}))
		require.NoError(t, sessions.Replace(ctx, domain.Session{Token: "second", UserID: alice.ID, CreatedAt: time.Now()}))

		_, err := sessions.Lookup(ctx, "first")
		assert.True(t, errors.Is(err, domain.ErrNotFound))

		s, err := sessions.Lookup(ctx, "second")
		require.NoError(t, err)
		assert.Equal(t, alice.ID, s.UserID)
	})

	t.Run("deleting a user cascades", func(t *testing.T) {
		carol := createUser(t, users, "carol")
		history := NewPgChatHistoryRepository(pool)
		_, err := history.Create(ctx, carol.ID, domain.ChatHistoryFields{Message: "hi", Response: "hello"})
		require.NoError(t, err)

		_, err = pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, carol.ID)
		require.NoError(t, err)

		list, err := history.List(ctx, carol.ID)
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}
