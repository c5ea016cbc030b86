package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"meal-tracker/internal/domain"
)

const sessionTokenBytes = 32

// SessionDirectory resuelve quien llama a partir del token de la cookie.
type SessionDirectory struct {
	store SessionStore
	now   func() time.Time
}

func NewSessionDirectory(store SessionStore) *SessionDirectory {
	if store == nil {
		store = NewMemorySessionStore()
	}
	return &SessionDirectory{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// CreateSession emite un token nuevo e invalida el anterior del usuario.
func (d *SessionDirectory) CreateSession(ctx context.Context, userID string) (domain.Session, error) {
	if strings.TrimSpace(userID) == "" {
		return domain.Session{}, fmt.Errorf("%w: empty user id", domain.ErrValidation)
	}
	token, err := newSessionToken()
	if err != nil {
		return domain.Session{}, err
	}
	session := domain.Session{
		Token:     token,
		UserID:    userID,
		CreatedAt: d.now(),
	}
	if err := d.store.Replace(ctx, session); err != nil {
		return domain.Session{}, err
	}
	return session, nil
}

func (d *SessionDirectory) Resolve(ctx context.Context, token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", domain.ErrUnauthorized
	}
	session, err := d.store.Lookup(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrInvalidSession
		}
		return "", err
	}
	return session.UserID, nil
}

// Destroy es idempotente.
func (d *SessionDirectory) Destroy(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	return d.store.Delete(ctx, token)
}

func newSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
