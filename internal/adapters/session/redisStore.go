package session

import (
	"errors"
	"net/http"
	"time"

	sessionPort "sns/internal/ports/session"

	"github.com/go-redis/redis/v8"
	"github.com/gofrs/uuid"
	"github.com/gorilla/sessions"
)

// RedisStore keeps sessions server side. The cookie only carries a random
// session id; logout deletes the key so the cookie cannot be replayed.
type RedisStore struct {
	client *redis.Client
	name   string
	ttl    time.Duration
	opts   *sessions.Options
}

func NewRedisStore(client *redis.Client, name string, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, name: name, ttl: ttl, opts: cookieOptions(ttl)}
}

func redisKey(id string) string { return "session:" + id }

func (s *RedisStore) Save(w http.ResponseWriter, r *http.Request, userID string) error {
	id := uuid.Must(uuid.NewV4()).String()
	if err := s.client.Set(r.Context(), redisKey(id), userID, s.ttl).Err(); err != nil {
		return err
	}
	// drop the previous session, if any
	if c, err := r.Cookie(s.name); err == nil && c.Value != "" {
		s.client.Del(r.Context(), redisKey(c.Value))
	}
	setCookie(w, s.name, id, s.opts)
	return nil
}

func (s *RedisStore) UserID(r *http.Request) (string, error) {
	c, err := r.Cookie(s.name)
	if err != nil || c.Value == "" {
		return "", sessionPort.ErrNoSession
	}
	userID, err := s.client.Get(r.Context(), redisKey(c.Value)).Result()
	if errors.Is(err, redis.Nil) {
		return "", sessionPort.ErrNoSession
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}

func (s *RedisStore) Clear(w http.ResponseWriter, r *http.Request) error {
	if c, err := r.Cookie(s.name); err == nil && c.Value != "" {
		if err := s.client.Del(r.Context(), redisKey(c.Value)).Err(); err != nil {
			return err
		}
	}
	expireCookie(w, s.name, s.opts)
	return nil
}
