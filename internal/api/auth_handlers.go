package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/listkeep-io/listkeep/internal/auth"
	"github.com/listkeep-io/listkeep/internal/database"
	"github.com/listkeep-io/listkeep/internal/models"
)

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token   string       `json:"token"`
	User    *models.User `json:"user"`
	Message string       `json:"message,omitempty"`
}

// RegisterHandler creates a new account and signs the caller in.
func (api *Api) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Username == "" || req.Password == "" || req.Email == "" {
		respondMessage(w, http.StatusBadRequest, "Please provide a username, password, and email")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondInternalError(w, r, err)
		return
	}

	user, err := database.CreateUser(req.Username, req.Email, hash)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrUsernameTaken):
			respondMessage(w, http.StatusBadRequest, "Username already exists")
		case errors.Is(err, database.ErrEmailTaken):
			respondMessage(w, http.StatusBadRequest, "Email already exists")
		default:
			respondInternalError(w, r, err)
		}
		return
	}

	token, err := api.tokens.GenerateToken(user.ID)
	if err != nil {
		respondInternalError(w, r, err)
		return
	}

	if err := auth.BindSession(w, r, api.Config.Auth.CookieName, token, api.tokens.Duration()); err != nil {
		respondInternalError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, authResponse{
		Token:   token,
		User:    user,
		Message: "User registered successfully",
	})
}

// LoginHandler authenticates by email and password. Unknown email and wrong
// password are deliberately indistinguishable.
func (api *Api) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		respondMessage(w, http.StatusBadRequest, "Please provide an email and password")
		return
	}

	user, err := database.GetUserByEmail(req.Email)
	if err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			respondMessage(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		respondInternalError(w, r, err)
		return
	}

	if !auth.CheckPassword(req.Password, user.Password) {
		respondMessage(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := api.tokens.GenerateToken(user.ID)
	if err != nil {
		respondInternalError(w, r, err)
		return
	}

	if err := auth.BindSession(w, r, api.Config.Auth.CookieName, token, api.tokens.Duration()); err != nil {
		respondInternalError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, authResponse{Token: token, User: user})
}

// LogoutHandler destroys the caller's session. Idempotent.
func (api *Api) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if err := auth.ClearSession(w, r, api.Config.Auth.CookieName); err != nil {
		respondInternalError(w, r, err)
		return
	}
	respondMessage(w, http.StatusOK, "User logged out successfully")
}
