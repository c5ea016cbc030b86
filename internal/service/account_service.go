package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"meal-tracker/internal/domain"
	"meal-tracker/internal/repository"
)

// AccountService coordina alta, login y cambio de clave.
type AccountService struct {
	logger   *zap.Logger
	users    repository.UserRepository
	sessions *SessionDirectory
	limiter  LoginLimiter
}

func NewAccountService(logger *zap.Logger, users repository.UserRepository, sessions *SessionDirectory, limiter LoginLimiter) *AccountService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if limiter == nil {
		limiter = NewMemoryLoginLimiter(15*time.Minute, 10)
	}
	return &AccountService{
		logger:   logger,
		users:    users,
		sessions: sessions,
		limiter:  limiter,
	}
}

// Credentials es el cuerpo de /signup y /login.
type Credentials struct {
	UserID   string `json:"userid" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ChangePasswordInput usa los nombres que manda el cliente web.
type ChangePasswordInput struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

// bcrypt no acepta claves de mas de 72 bytes.
const maxPasswordBytes = 72

// Signup crea el usuario y abre su primera sesion.
func (s *AccountService) Signup(ctx context.Context, input Credentials) (domain.User, domain.Session, error) {
	userID := normalizeUserID(input.UserID)
	password := strings.TrimSpace(input.Password)
	if userID == "" || password == "" {
		return domain.User{}, domain.Session{}, fmt.Errorf("%w: userid and password are required", domain.ErrValidation)
	}
	if err := checkPasswordLength(password); err != nil {
		return domain.User{}, domain.Session{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, domain.Session{}, err
	}
	user := domain.User{
		ID:           uuid.NewString(),
		UserID:       userID,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return domain.User{}, domain.Session{}, err
	}

	session, err := s.sessions.CreateSession(ctx, user.ID)
	if err != nil {
		return domain.User{}, domain.Session{}, err
	}
	s.logger.Info("user signed up", zap.String("user_id", user.ID))
	return user, session, nil
}

// Login verifica credenciales y reemplaza la sesion vigente del usuario.
func (s *AccountService) Login(ctx context.Context, input Credentials) (domain.User, domain.Session, error) {
	userID := normalizeUserID(input.UserID)
	password := strings.TrimSpace(input.Password)
	if userID == "" || password == "" {
		return domain.User{}, domain.Session{}, domain.ErrInvalidCredentials
	}
	if !s.limiter.Allow(ctx, userID) {
		s.logger.Warn("login rate limited", zap.String("userid", userID))
		return domain.User{}, domain.Session{}, domain.ErrRateLimited
	}

	user, err := s.authenticate(ctx, s.users.GetByUserID, userID, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			s.limiter.Fail(ctx, userID)
		}
		return domain.User{}, domain.Session{}, err
	}
	s.limiter.Reset(ctx, userID)

	session, err := s.sessions.CreateSession(ctx, user.ID)
	if err != nil {
		return domain.User{}, domain.Session{}, err
	}
	return user, session, nil
}

func (s *AccountService) Logout(ctx context.Context, token string) error {
	return s.sessions.Destroy(ctx, token)
}

func (s *AccountService) ChangePassword(ctx context.Context, ownerID string, input ChangePasswordInput) error {
	newPassword := strings.TrimSpace(input.NewPassword)
	if newPassword == "" {
		return fmt.Errorf("%w: newPassword is required", domain.ErrValidation)
	}
	if err := checkPasswordLength(newPassword); err != nil {
		return err
	}
	user, err := s.authenticate(ctx, s.users.GetByID, ownerID, input.OldPassword)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePasswordHash(ctx, user.ID, string(hash)); err != nil {
		return err
	}
	s.logger.Info("password changed", zap.String("user_id", user.ID))
	return nil
}

func (s *AccountService) authenticate(
	ctx context.Context,
	lookup func(context.Context, string) (domain.User, error),
	key, password string,
) (domain.User, error) {
	user, err := lookup(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, domain.ErrInvalidCredentials
		}
		return domain.User{}, err
	}
	if user.PasswordHash == "" {
		return domain.User{}, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(strings.TrimSpace(password))); err != nil {
		return domain.User{}, domain.ErrInvalidCredentials
	}
	return user, nil
}

func checkPasswordLength(password string) error {
	if len(password) > maxPasswordBytes {
		return fmt.Errorf("%w: password must be at most %d bytes", domain.ErrValidation, maxPasswordBytes)
	}
	return nil
}

func normalizeUserID(userID string) string {
	return strings.ToLower(strings.TrimSpace(userID))
}
