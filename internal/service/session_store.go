package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"meal-tracker/internal/domain"
)

// SessionStore persiste la relacion token -> usuario. Replace deja un solo token vivo por usuario.
type SessionStore interface {
	Replace(ctx context.Context, session domain.Session) error
	Lookup(ctx context.Context, token string) (domain.Session, error)
	Delete(ctx context.Context, token string) error
}

type memorySessionStore struct {
	mu      sync.Mutex
	byToken map[string]domain.Session
	byUser  map[string]string
}

func NewMemorySessionStore() SessionStore {
	return &memorySessionStore{
		byToken: make(map[string]domain.Session),
		byUser:  make(map[string]string),
	}
}

func (s *memorySessionStore) Replace(_ context.Context, session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.byUser[session.UserID]; ok {
		delete(s.byToken, old)
	}
	s.byToken[session.Token] = session
	s.byUser[session.UserID] = session.Token
	return nil
}

func (s *memorySessionStore) Lookup(_ context.Context, token string) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.byToken[token]
	if !ok {
		return domain.Session{}, fmt.Errorf("lookup session: %w", domain.ErrNotFound)
	}
	return session, nil
}

func (s *memorySessionStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.byToken[token]
	if !ok {
		return nil
	}
	delete(s.byToken, token)
	if s.byUser[session.UserID] == token {
		delete(s.byUser, session.UserID)
	}
	return nil
}

type redisSessionClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	GetSet(ctx context.Context, key string, value interface{}) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// redisSessionStore guarda session:<token> -> user id y session:user:<id> -> token.
type redisSessionStore struct {
	client redisSessionClient
	prefix string
}

func NewRedisSessionStore(client *redis.Client) SessionStore {
	if client == nil {
		return nil
	}
	return &redisSessionStore{
		client: client,
		prefix: "session:",
	}
}

func (s *redisSessionStore) tokenKey(token string) string {
	return s.prefix + token
}

func (s *redisSessionStore) userKey(userID string) string {
	return s.prefix + "user:" + userID
}

func (s *redisSessionStore) Replace(ctx context.Context, session domain.Session) error {
	if strings.TrimSpace(session.Token) == "" || strings.TrimSpace(session.UserID) == "" {
		return fmt.Errorf("%w: empty session", domain.ErrValidation)
	}
	if err := s.client.Set(ctx, s.tokenKey(session.Token), session.UserID, 0).Err(); err != nil {
		return err
	}
	old, err := s.client.GetSet(ctx, s.userKey(session.UserID), session.Token).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	if old != "" && old != session.Token {
		return s.client.Del(ctx, s.tokenKey(old)).Err()
	}
	return nil
}

func (s *redisSessionStore) Lookup(ctx context.Context, token string) (domain.Session, error) {
	if strings.TrimSpace(token) == "" {
		return domain.Session{}, fmt.Errorf("lookup session: %w", domain.ErrNotFound)
	}
	userID, err := s.client.Get(ctx, s.tokenKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return domain.Session{}, fmt.Errorf("lookup session: %w", domain.ErrNotFound)
	}
	if err != nil {
		return domain.Session{}, err
	}
	return domain.Session{Token: token, UserID: userID}, nil
}

func (s *redisSessionStore) Delete(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return nil
	}
	userID, err := s.client.Get(ctx, s.tokenKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return err
	}
	keys := []string{s.tokenKey(token)}
	current, err := s.client.Get(ctx, s.userKey(userID)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	if current == token {
		keys = append(keys, s.userKey(userID))
	}
	return s.client.Del(ctx, keys...).Err()
}
