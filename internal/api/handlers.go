package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/listkeep-io/listkeep/internal/auth"
	"github.com/listkeep-io/listkeep/internal/database"
	"github.com/listkeep-io/listkeep/internal/models"
)

type todoRequest struct {
	Title string `json:"title"`
}

// CreateTodoHandler persists a new todo owned by the caller.
func (api *Api) CreateTodoHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.GetUserFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req todoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Title == "" {
		respondMessage(w, http.StatusBadRequest, "Please provide a title")
		return
	}

	todo, err := database.CreateTodo(user.ID, req.Title)
	if err != nil {
		respondInternalError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]*models.Todo{"todo": todo})
}

// ListTodosHandler returns every todo owned by the caller.
func (api *Api) ListTodosHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.GetUserFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	todos, err := database.GetTodosByUser(user.ID)
	if err != nil {
		respondInternalError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string][]*models.Todo{"todos": todos})
}

// UpdateTodoHandler retitles an owner-scoped todo and stamps updated_at.
func (api *Api) UpdateTodoHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.GetUserFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "todoID"), 10, 64)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid todo id")
		return
	}

	var req todoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Title == "" {
		respondMessage(w, http.StatusBadRequest, "Please provide a title")
		return
	}

	todo, err := database.UpdateTodo(id, user.ID, req.Title)
	if err != nil {
		if errors.Is(err, database.ErrTodoNotFound) {
			respondMessage(w, http.StatusNotFound, "Todo item not found")
			return
		}
		respondInternalError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]*models.Todo{"todo": todo})
}

// DeleteTodoHandler removes an owner-scoped todo permanently.
func (api *Api) DeleteTodoHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.GetUserFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "todoID"), 10, 64)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid todo id")
		return
	}

	if err := database.DeleteTodo(id, user.ID); err != nil {
		if errors.Is(err, database.ErrTodoNotFound) {
			respondMessage(w, http.StatusNotFound, "Todo item not found")
			return
		}
		respondInternalError(w, r, err)
		return
	}

	respondMessage(w, http.StatusOK, "Todo item deleted successfully")
}

// ProtectedHandler re-fetches and returns the caller's account. The account
// can disappear between token issuance and this call.
func (api *Api) ProtectedHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.GetUserFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	fresh, err := database.GetUserByID(user.ID)
	if err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			respondMessage(w, http.StatusNotFound, "User not found")
			return
		}
		respondInternalError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]*models.User{"user": fresh})
}
