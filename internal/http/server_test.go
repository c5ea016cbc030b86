package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"meal-tracker/internal/chatbot"
	"meal-tracker/internal/domain"
	"meal-tracker/internal/service"
)

const testCookie = "sessionid"

type testServer struct {
	router  *gin.Engine
	chat    *chatbot.MockClient
	history *memStore[domain.ChatHistoryEntry, domain.ChatHistoryFields]
	recipes *memStore[domain.UserRecipe, domain.UserRecipeFields]
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	sessions := service.NewSessionDirectory(service.NewMemorySessionStore())
	accounts := service.NewAccountService(logger, newMockUserRepo(), sessions, service.NewMemoryLoginLimiter(time.Minute, 5))

	profiles := newMemSingleton(buildProfile)
	prefs := newMemSingleton(buildPreference)
	meals := memConsumedMeals{newMemStore(buildConsumedMeal, nil)}
	saved := newMemStore(buildSavedMeal, func(f domain.SavedMealFields) string { return f.MealID })
	recipes := newMemStore(buildRecipe, nil)
	history := newMemStore(buildChatEntry, nil)
	chat := &chatbot.MockClient{Response: "Eat more greens.", Calories: 420}

	router := NewRouter(RouterDeps{
		Logger:     logger,
		Metrics:    NewMetrics(),
		Sessions:   sessions,
		CookieName: testCookie,
		Auth:       NewAuthHandler(logger, accounts, CookieConfig{Name: testCookie}),
		Onboarding: NewOnboardingHandler(logger,
			service.NewOnboardingService(logger, memOnboarding{profiles: profiles, preferences: prefs}),
			service.NewDashboardService(prefs, meals),
		),
		Chat:           NewChatHandler(logger, service.NewChatService(logger, chat, history)),
		Profiles:       profiles,
		ProfileDetails: memProfileDetails{profiles: profiles, preferences: prefs},
		Preferences:    prefs,
		ConsumedMeals:  meals,
		SavedMeals:     saved,
		Recipes:        recipes,
		ChatHistory:    history,
	})
	return &testServer{router: router, chat: chat, history: history, recipes: recipes}
}

func (s *testServer) do(t *testing.T, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == testCookie && c.Value != "" {
			return c
		}
	}
	return nil
}

// signup crea un usuario y devuelve su cookie de sesion.
func (s *testServer) signup(t *testing.T, userID, password string) *http.Cookie {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/signup", gin.H{"userid": userID, "password": password}, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup %s: expected 201, got %d: %s", userID, rec.Code, rec.Body.String())
	}
	cookie := sessionCookie(rec)
	if cookie == nil {
		t.Fatalf("signup %s: expected session cookie", userID)
	}
	return cookie
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return out
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}
