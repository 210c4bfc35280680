package session

import (
	"crypto/sha256"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"golang.org/x/crypto/hkdf"
)

const keySize = 32

func cookieOptions(maxAge time.Duration) *sessions.Options {
	return &sessions.Options{
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// deriveKey expands the configured secret into a 32 byte key per purpose
// with HKDF-SHA256.
func deriveKey(purpose string, secret []byte) []byte {
	key := make([]byte, keySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, []byte("sns session "+purpose)), key); err != nil {
		// only reachable when asking for more than 255 hash lengths
		panic(err)
	}
	return key
}

func setCookie(w http.ResponseWriter, name, value string, opts *sessions.Options) {
	http.SetCookie(w, sessions.NewCookie(name, value, opts))
}

func expireCookie(w http.ResponseWriter, name string, opts *sessions.Options) {
	expired := *opts
	expired.MaxAge = -1
	http.SetCookie(w, sessions.NewCookie(name, "", &expired))
}
