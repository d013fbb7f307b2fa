package database

import (
	"database/sql"
	"time"

	"github.com/listkeep-io/listkeep/internal/models"
)

// CreateTodo inserts a new todo item owned by userID.
func CreateTodo(userID int64, title string) (*models.Todo, error) {
	todo := &models.Todo{
		UserID:    userID,
		Title:     title,
		CreatedAt: time.Now().UTC(),
	}

	if dbType == "postgres" {
		err := dbConn.QueryRow(
			bind("INSERT INTO todos (user_id, title, created_at) VALUES (?, ?, ?) RETURNING id"),
			todo.UserID, todo.Title, todo.CreatedAt,
		).Scan(&todo.ID)
		if err != nil {
			return nil, err
		}
		return todo, nil
	}

	result, err := dbConn.Exec(
		"INSERT INTO todos (user_id, title, created_at) VALUES (?, ?, ?)",
		todo.UserID, todo.Title, todo.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	todo.ID, err = result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return todo, nil
}

// GetTodosByUser returns every todo owned by userID in storage order.
func GetTodosByUser(userID int64) ([]*models.Todo, error) {
	rows, err := dbConn.Query(
		bind("SELECT id, user_id, title, created_at, updated_at FROM todos WHERE user_id = ?"),
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	todos := []*models.Todo{}
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, todo)
	}
	return todos, rows.Err()
}

// GetTodoByIDAndUser performs the owner-scoped lookup: a todo that exists but
// belongs to someone else is reported the same way as one that does not exist.
func GetTodoByIDAndUser(id, userID int64) (*models.Todo, error) {
	todo, err := scanTodo(dbConn.QueryRow(
		bind("SELECT id, user_id, title, created_at, updated_at FROM todos WHERE id = ? AND user_id = ?"),
		id, userID,
	))
	if err == sql.ErrNoRows {
		return nil, ErrTodoNotFound
	}
	if err != nil {
		return nil, err
	}
	return todo, nil
}

// UpdateTodo sets a new title and updated timestamp on an owner-scoped todo.
func UpdateTodo(id, userID int64, title string) (*models.Todo, error) {
	now := time.Now().UTC()
	result, err := dbConn.Exec(
		bind("UPDATE todos SET title = ?, updated_at = ? WHERE id = ? AND user_id = ?"),
		title, now, id, userID,
	)
	if err != nil {
		return nil, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrTodoNotFound
	}
	return GetTodoByIDAndUser(id, userID)
}

// DeleteTodo removes an owner-scoped todo permanently.
func DeleteTodo(id, userID int64) error {
	result, err := dbConn.Exec(
		bind("DELETE FROM todos WHERE id = ? AND user_id = ?"),
		id, userID,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTodoNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTodo(row rowScanner) (*models.Todo, error) {
	todo := &models.Todo{}
	var updatedAt sql.NullTime
	if err := row.Scan(&todo.ID, &todo.UserID, &todo.Title, &todo.CreatedAt, &updatedAt); err != nil {
		return nil, err
	}
	if updatedAt.Valid {
		todo.UpdatedAt = &updatedAt.Time
	}
	return todo, nil
}
