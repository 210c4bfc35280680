package session

import (
	"net/http"
	"time"

	sessionPort "sns/internal/ports/session"

	"github.com/gorilla/sessions"
)

const userIDKey = "user_id"

// CookieStore keeps the user id inside a signed and encrypted cookie.
type CookieStore struct {
	store *sessions.CookieStore
	name  string
}

// NewCookieStore derives the signing and encryption keys from secret.
func NewCookieStore(name string, secret []byte, maxAge time.Duration) *CookieStore {
	store := sessions.NewCookieStore(deriveKey("auth", secret), deriveKey("enc", secret))
	store.Options = cookieOptions(maxAge)
	return &CookieStore{store: store, name: name}
}

func (s *CookieStore) Save(w http.ResponseWriter, r *http.Request, userID string) error {
	// a decode error yields a fresh session, which is what we want here
	sess, _ := s.store.Get(r, s.name)
	sess.Values[userIDKey] = userID
	return sess.Save(r, w)
}

func (s *CookieStore) UserID(r *http.Request) (string, error) {
	sess, err := s.store.Get(r, s.name)
	if err != nil || sess.IsNew {
		return "", sessionPort.ErrNoSession
	}
	id, ok := sess.Values[userIDKey].(string)
	if !ok || id == "" {
		return "", sessionPort.ErrNoSession
	}
	return id, nil
}

func (s *CookieStore) Clear(w http.ResponseWriter, r *http.Request) error {
	sess, _ := s.store.Get(r, s.name)
	delete(sess.Values, userIDKey)
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}
