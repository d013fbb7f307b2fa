package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/listkeep-io/listkeep/internal/database"
)

// BindSession stores token under the caller's session, creating the session
// and its cookie when none exists. A session holds exactly one token, so
// re-authentication through an existing session overwrites it.
func BindSession(w http.ResponseWriter, r *http.Request, cookieName, token string, ttl time.Duration) error {
	expiresAt := time.Now().Add(ttl)

	if cookie, err := r.Cookie(cookieName); err == nil {
		err := database.UpdateSessionToken(cookie.Value, token, expiresAt)
		if err == nil {
			setSessionCookie(w, cookieName, cookie.Value, ttl)
			return nil
		}
		if !errors.Is(err, database.ErrSessionNotFound) {
			return err
		}
		// Stale cookie with no backing session; fall through to a fresh one.
	}

	sessionID := uuid.NewString()
	if err := database.CreateSession(sessionID, token, expiresAt); err != nil {
		return err
	}
	setSessionCookie(w, cookieName, sessionID, ttl)
	return nil
}

// SessionToken returns the token bound to the request's session, or
// database.ErrSessionNotFound when there is no cookie, no session row, or the
// session has expired.
func SessionToken(r *http.Request, cookieName string) (string, error) {
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return "", database.ErrSessionNotFound
	}
	session, err := database.GetSession(cookie.Value)
	if err != nil {
		return "", err
	}
	return session.Token, nil
}

// ClearSession destroys the caller's session, if any, and expires the cookie.
// Always succeeds for requests with no session.
func ClearSession(w http.ResponseWriter, r *http.Request, cookieName string) error {
	if cookie, err := r.Cookie(cookieName); err == nil {
		if err := database.DeleteSession(cookie.Value); err != nil {
			return err
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	return nil
}

func setSessionCookie(w http.ResponseWriter, name, value string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(ttl.Seconds()),
	})
}
