package database

import (
	"database/sql"
	"time"

	"github.com/listkeep-io/listkeep/internal/models"
)

// CreateSession stores a new session row keyed by the opaque cookie id.
func CreateSession(id, token string, expiresAt time.Time) error {
	_, err := dbConn.Exec(
		bind("INSERT INTO sessions (id, token, created_at, expires_at) VALUES (?, ?, ?, ?)"),
		id, token, time.Now().UTC(), expiresAt,
	)
	return err
}

// GetSession retrieves a session by id. Expired rows are deleted on sight and
// reported as missing.
func GetSession(id string) (*models.Session, error) {
	session := &models.Session{}
	err := dbConn.QueryRow(
		bind("SELECT id, token, created_at, expires_at FROM sessions WHERE id = ?"),
		id,
	).Scan(&session.ID, &session.Token, &session.CreatedAt, &session.ExpiresAt)
	if err == sql.ErrNoRows {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	if !session.ExpiresAt.After(time.Now()) {
		DeleteSession(id)
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// UpdateSessionToken replaces the token bound to an existing session. A
// session holds at most one token, so re-authentication overwrites.
func UpdateSessionToken(id, token string, expiresAt time.Time) error {
	result, err := dbConn.Exec(
		bind("UPDATE sessions SET token = ?, expires_at = ? WHERE id = ?"),
		token, expiresAt, id,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// DeleteSession removes a session by id. Deleting a missing session is not an
// error; logout is idempotent.
func DeleteSession(id string) error {
	_, err := dbConn.Exec(bind("DELETE FROM sessions WHERE id = ?"), id)
	return err
}

// CleanupExpiredSessions removes all sessions past their expiry.
func CleanupExpiredSessions() error {
	_, err := dbConn.Exec(bind("DELETE FROM sessions WHERE expires_at < ?"), time.Now().UTC())
	return err
}
