package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"meal-tracker/internal/domain"
	"meal-tracker/internal/repository"
)

// HealthChecker lo cumple *pgxpool.Pool.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// RouterDeps junta todo lo que el router necesita para montar las rutas.
type RouterDeps struct {
	Logger         *zap.Logger
	Metrics        *Metrics
	Health         HealthChecker
	Sessions       SessionResolver
	CookieName     string
	AllowedOrigins []string

	Auth       *AuthHandler
	Onboarding *OnboardingHandler
	Chat       *ChatHandler

	Profiles       repository.ProfileRepository
	ProfileDetails repository.ProfileDetailsStore
	Preferences    repository.DietaryPreferenceRepository
	ConsumedMeals  repository.ConsumedMealRepository
	SavedMeals     repository.SavedMealRepository
	Recipes        repository.RecipeRepository
	ChatHistory    repository.ChatHistoryRepository
}

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(d RouterDeps) *gin.Engine {
	registerValidators()
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(zapLoggerMiddleware(logger), gin.Recovery())
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware())
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}
	if len(d.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     d.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Accept", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.GET("/healthz", healthHandler(d.Health))

	r.POST("/signup", d.Auth.Signup)
	r.POST("/login", d.Auth.Login)

	authed := r.Group("/", RequireSession(d.Sessions, d.CookieName, logger))
	authed.POST("/logout", d.Auth.Logout)
	authed.PUT("/change-password", d.Auth.ChangePassword)

	profile := NewProfileHandler(logger, d.ProfileDetails)
	authed.GET("/profile", profile.Get)
	authed.PUT("/profile", profile.Put)
	authed.DELETE("/profile", NewSingletonHandler[domain.Profile, domain.ProfileFields](logger, d.Profiles).Delete)
	NewSingletonHandler[domain.DietaryPreference, domain.DietaryPreferenceFields](logger, d.Preferences).Mount(authed, "/dietary-preferences", true)

	NewResourceHandler[domain.ConsumedMeal, domain.ConsumedMealFields](logger, d.ConsumedMeals).Mount(authed, "/consumed-meals")
	NewResourceHandler[domain.SavedMeal, domain.SavedMealFields](logger, d.SavedMeals).Mount(authed, "/saved-meals")
	NewResourceHandler[domain.UserRecipe, domain.UserRecipeFields](logger, d.Recipes).Mount(authed, "/user-recipes")
	NewResourceHandler[domain.ChatHistoryEntry, domain.ChatHistoryFields](logger, d.ChatHistory).Mount(authed, "/chatbot-history")

	authed.POST("/onboarding", d.Onboarding.Onboard)
	authed.GET("/dashboard", d.Onboarding.Dashboard)
	authed.POST("/chat", d.Chat.PostMessage)
	authed.POST("/calculate-calories", d.Chat.CalculateCalories)

	return r
}

func healthHandler(h HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if h != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := h.Ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down", "database": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// zapLoggerMiddleware loguea cada request con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if owner := OwnerID(c); owner != "" {
			fields = append(fields, zap.String("owner_id", owner))
		}
		logger.Info("request", fields...)
	}
}
