package chatbot

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenIssuer   = "meal-tracker"
	tokenAudience = "chat-service"
)

var (
	ErrTokenInvalid = errors.New("service token invalid")
	ErrTokenExpired = errors.New("service token expired")
)

// ServiceClaims identifica al usuario en nombre del cual llama el backend.
type ServiceClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// TokenSigner emite tokens HS256 de vida corta para el servicio de chat.
type TokenSigner struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenSigner(secret string, ttl time.Duration) *TokenSigner {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &TokenSigner{
		secret: []byte(secret),
		ttl:    ttl,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *TokenSigner) Sign(userID string) (string, error) {
	if len(s.secret) == 0 || strings.TrimSpace(userID) == "" {
		return "", ErrTokenInvalid
	}
	now := s.now()
	claims := ServiceClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   userID,
			Audience:  jwt.ClaimStrings{tokenAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Parse valida firma, emisor y audiencia como lo hace el servicio de chat al recibir
// el header Authorization.
func (s *TokenSigner) Parse(token string) (ServiceClaims, error) {
	if len(s.secret) == 0 || strings.TrimSpace(token) == "" {
		return ServiceClaims{}, ErrTokenInvalid
	}
	var claims ServiceClaims
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithAudience(tokenAudience),
	)
	_, err := parser.ParseWithClaims(token, &claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ServiceClaims{}, ErrTokenExpired
		}
		return ServiceClaims{}, ErrTokenInvalid
	}
	if claims.UserID == "" || claims.Subject != claims.UserID {
		return ServiceClaims{}, ErrTokenInvalid
	}
	return claims, nil
}
