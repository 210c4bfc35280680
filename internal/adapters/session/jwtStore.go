package session

import (
	"fmt"
	"net/http"
	"time"

	sessionPort "sns/internal/ports/session"

	"github.com/dgrijalva/jwt-go"
	"github.com/gorilla/sessions"
)

const jwtIssuer = "sns"

// JWTStore keeps an HS256 signed token in the session cookie. It needs no
// server state; logout only expires the cookie.
type JWTStore struct {
	key  []byte
	name string
	ttl  time.Duration
	opts *sessions.Options
	now  func() time.Time
}

func NewJWTStore(name string, secret []byte, ttl time.Duration) *JWTStore {
	return &JWTStore{key: secret, name: name, ttl: ttl, opts: cookieOptions(ttl), now: time.Now}
}

func (s *JWTStore) Save(w http.ResponseWriter, r *http.Request, userID string) error {
	token, err := s.generate(userID)
	if err != nil {
		return err
	}
	setCookie(w, s.name, token, s.opts)
	return nil
}

// generate برای تولید توکن JWT
func (s *JWTStore) generate(userID string) (string, error) {
	now := s.now()
	claims := &jwt.StandardClaims{
		Subject:   userID,
		Issuer:    jwtIssuer,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(s.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.key)
}

func (s *JWTStore) UserID(r *http.Request) (string, error) {
	c, err := r.Cookie(s.name)
	if err != nil || c.Value == "" {
		return "", sessionPort.ErrNoSession
	}
	claims := &jwt.StandardClaims{}
	token, err := jwt.ParseWithClaims(c.Value, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.key, nil
	})
	if err != nil || !token.Valid || claims.Issuer != jwtIssuer || claims.Subject == "" {
		return "", sessionPort.ErrNoSession
	}
	return claims.Subject, nil
}

func (s *JWTStore) Clear(w http.ResponseWriter, r *http.Request) error {
	expireCookie(w, s.name, s.opts)
	return nil
}
