package database

import (
	"database/sql"
	"time"

	"github.com/listkeep-io/listkeep/internal/models"
)

// CreateUser inserts a new account. Username and email uniqueness are checked
// first so each conflict is reported distinctly, username before email.
func CreateUser(username, email, passwordHash string) (*models.User, error) {
	var exists bool
	err := dbConn.QueryRow(bind("SELECT EXISTS(SELECT 1 FROM users WHERE username = ?)"), username).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUsernameTaken
	}

	err = dbConn.QueryRow(bind("SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)"), email).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	user := &models.User{
		Username:  username,
		Email:     email,
		Password:  passwordHash,
		CreatedAt: time.Now().UTC(),
	}

	if dbType == "postgres" {
		err = dbConn.QueryRow(
			bind("INSERT INTO users (username, email, password, created_at) VALUES (?, ?, ?, ?) RETURNING id"),
			user.Username, user.Email, user.Password, user.CreatedAt,
		).Scan(&user.ID)
		if err != nil {
			return nil, err
		}
		return user, nil
	}

	result, err := dbConn.Exec(
		"INSERT INTO users (username, email, password, created_at) VALUES (?, ?, ?, ?)",
		user.Username, user.Email, user.Password, user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	user.ID, err = result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email.
func GetUserByEmail(email string) (*models.User, error) {
	return scanUser(dbConn.QueryRow(
		bind("SELECT id, username, email, password, created_at FROM users WHERE email = ?"),
		email,
	))
}

// GetUserByID retrieves a user by ID.
func GetUserByID(id int64) (*models.User, error) {
	return scanUser(dbConn.QueryRow(
		bind("SELECT id, username, email, password, created_at FROM users WHERE id = ?"),
		id,
	))
}

func scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.Password, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
