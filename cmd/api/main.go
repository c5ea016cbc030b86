package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"meal-tracker/internal/chatbot"
	"meal-tracker/internal/config"
	"meal-tracker/internal/db"
	apihttp "meal-tracker/internal/http"
	"meal-tracker/internal/repository"
	"meal-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger := newLogger(cfg)
	defer logger.Sync()
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		logger.Fatal("db migrate", zap.Error(err))
	}

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		}
		cancel()
	}

	var sessionStore service.SessionStore
	switch cfg.SessionStore {
	case config.SessionStoreRedis:
		sessionStore = service.NewRedisSessionStore(redisClient)
	case config.SessionStoreMemory:
		logger.Warn("using in-memory session store; sessions are lost on restart")
		sessionStore = service.NewMemorySessionStore()
	default:
		sessionStore = repository.NewPgSessionRepository(pool)
	}
	sessions := service.NewSessionDirectory(sessionStore)

	loginLimiter := service.NewMemoryLoginLimiter(cfg.LoginWindow, cfg.LoginMaxAttempts)
	if redisClient != nil {
		loginLimiter = service.NewRedisLoginLimiter(redisClient, cfg.LoginWindow, cfg.LoginMaxAttempts)
	}

	var signer *chatbot.TokenSigner
	if cfg.ChatServiceSecret != "" {
		signer = chatbot.NewTokenSigner(cfg.ChatServiceSecret, time.Minute)
	} else {
		logger.Warn("chat service secret not configured; requests go unauthenticated")
	}
	chatClient := chatbot.NewClient(cfg.ChatServiceURL, signer, cfg.ChatServiceTimeout, logger)

	userRepo := repository.NewPgUserRepository(pool)
	profileRepo := repository.NewPgProfileRepository(pool)
	preferenceRepo := repository.NewPgDietaryPreferenceRepository(pool)
	consumedRepo := repository.NewPgConsumedMealRepository(pool)
	savedRepo := repository.NewPgSavedMealRepository(pool)
	recipeRepo := repository.NewPgRecipeRepository(pool)
	historyRepo := repository.NewPgChatHistoryRepository(pool)

	accountSvc := service.NewAccountService(logger, userRepo, sessions, loginLimiter)
	onboardingSvc := service.NewOnboardingService(logger, repository.NewPgOnboardingStore(pool))
	dashboardSvc := service.NewDashboardService(preferenceRepo, consumedRepo)
	chatSvc := service.NewChatService(logger, chatClient, historyRepo)

	router := apihttp.NewRouter(apihttp.RouterDeps{
		Logger:         logger,
		Metrics:        apihttp.NewMetrics(),
		Health:         pool,
		Sessions:       sessions,
		CookieName:     cfg.SessionCookieName,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Auth: apihttp.NewAuthHandler(logger, accountSvc, apihttp.CookieConfig{
			Name:   cfg.SessionCookieName,
			Secure: cfg.SessionCookieSecure,
		}),
		Onboarding:     apihttp.NewOnboardingHandler(logger, onboardingSvc, dashboardSvc),
		Chat:           apihttp.NewChatHandler(logger, chatSvc),
		Profiles:       profileRepo,
		ProfileDetails: repository.NewPgProfileDetailsStore(pool),
		Preferences:    preferenceRepo,
		ConsumedMeals:  consumedRepo,
		SavedMeals:     savedRepo,
		Recipes:        recipeRepo,
		ChatHistory:    historyRepo,
	})

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown", zap.Error(err))
		}
	}()

	logger.Info("starting server",
		zap.String("port", cfg.HTTPPort),
		zap.String("session_store", cfg.SessionStore),
	)

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server error", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger(cfg *config.Config) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.IsDevelopment() {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	return logger
}
