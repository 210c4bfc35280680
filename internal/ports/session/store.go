package session

import (
	"errors"
	"net/http"
)

// ErrNoSession is returned by Store.UserID when the request carries no valid session.
var ErrNoSession = errors.New("no session")

// Store keeps the authenticated account of a client between requests.
type Store interface {
	// Save binds userID to the client's session, writing a cookie if needed.
	Save(w http.ResponseWriter, r *http.Request, userID string) error
	// UserID returns the account bound to the request's session.
	UserID(r *http.Request) (string, error)
	// Clear ends the session. Clearing a request without a session is not an error.
	Clear(w http.ResponseWriter, r *http.Request) error
}
