package session

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sessionPort "sns/internal/ports/session"

	"github.com/go-redis/redis/v8"
)

// carry copies the cookies set on rec onto a new request.
func carry(rec *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func testRoundTrip(t *testing.T, store sessionPort.Store) {
	t.Helper()

	if _, err := store.UserID(httptest.NewRequest(http.MethodGet, "/", nil)); !errors.Is(err, sessionPort.ErrNoSession) {
		t.Fatalf("err = %v, want no session", err)
	}

	rec := httptest.NewRecorder()
	if err := store.Save(rec, httptest.NewRequest(http.MethodPost, "/login/", nil), "user-1"); err != nil {
		t.Fatal(err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 || cookies[0].Name != "sessionid" || !cookies[0].HttpOnly {
		t.Fatalf("unexpected cookies %+v", cookies)
	}

	id, err := store.UserID(carry(rec))
	if err != nil {
		t.Fatal(err)
	}
	if id != "user-1" {
		t.Fatalf("user id = %q", id)
	}

	clearRec := httptest.NewRecorder()
	if err := store.Clear(clearRec, carry(rec)); err != nil {
		t.Fatal(err)
	}
	cleared := clearRec.Result().Cookies()
	if len(cleared) == 0 || cleared[0].MaxAge >= 0 {
		t.Fatalf("cookie not expired: %+v", cleared)
	}
}

func TestCookieStore(t *testing.T) {
	testRoundTrip(t, NewCookieStore("sessionid", []byte("secret"), time.Hour))
}

func TestCookieStoreRejectsForeignCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	other := NewCookieStore("sessionid", []byte("other secret"), time.Hour)
	if err := other.Save(rec, httptest.NewRequest(http.MethodPost, "/", nil), "user-1"); err != nil {
		t.Fatal(err)
	}

	store := NewCookieStore("sessionid", []byte("secret"), time.Hour)
	if _, err := store.UserID(carry(rec)); !errors.Is(err, sessionPort.ErrNoSession) {
		t.Fatalf("err = %v, want no session", err)
	}
}

func TestJWTStore(t *testing.T) {
	testRoundTrip(t, NewJWTStore("sessionid", []byte("secret"), time.Hour))
}

func TestJWTStoreRejectsExpiredAndForged(t *testing.T) {
	store := NewJWTStore("sessionid", []byte("secret"), time.Hour)
	store.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	rec := httptest.NewRecorder()
	if err := store.Save(rec, httptest.NewRequest(http.MethodPost, "/", nil), "user-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.UserID(carry(rec)); !errors.Is(err, sessionPort.ErrNoSession) {
		t.Fatalf("expired token accepted: %v", err)
	}

	forger := NewJWTStore("sessionid", []byte("guess"), time.Hour)
	rec = httptest.NewRecorder()
	if err := forger.Save(rec, httptest.NewRequest(http.MethodPost, "/", nil), "user-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := NewJWTStore("sessionid", []byte("secret"), time.Hour).UserID(carry(rec)); !errors.Is(err, sessionPort.ErrNoSession) {
		t.Fatalf("forged token accepted: %v", err)
	}
}

func TestRedisStoreWithoutCookie(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	defer client.Close()
	store := NewRedisStore(client, "sessionid", time.Hour)

	if _, err := store.UserID(httptest.NewRequest(http.MethodGet, "/", nil)); !errors.Is(err, sessionPort.ErrNoSession) {
		t.Fatalf("err = %v, want no session", err)
	}

	rec := httptest.NewRecorder()
	if err := store.Clear(rec, httptest.NewRequest(http.MethodPost, "/", nil)); err != nil {
		t.Fatal(err)
	}
	if c := rec.Result().Cookies(); len(c) != 1 || c[0].MaxAge >= 0 {
		t.Fatalf("cookie not expired: %+v", c)
	}
}

func TestDeriveKey(t *testing.T) {
	auth := deriveKey("auth", []byte("secret"))
	enc := deriveKey("enc", []byte("secret"))

	if len(auth) != 32 || len(enc) != 32 {
		t.Fatalf("key sizes %d and %d, want 32", len(auth), len(enc))
	}
	if bytes.Equal(auth, enc) {
		t.Fatal("purposes share a key")
	}
	if !bytes.Equal(auth, deriveKey("auth", []byte("secret"))) {
		t.Fatal("derivation is not deterministic")
	}
	if bytes.Equal(auth, deriveKey("auth", []byte("other secret"))) {
		t.Fatal("different secrets give the same key")
	}
}
