package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/schemacraft/schemacraft/internal/auth"
)

// AuthHandlers provides HTTP handlers for account signup and session management
type AuthHandlers struct {
	users  *auth.Store
	tokens *auth.TokenManager
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(users *auth.Store, tokens *auth.TokenManager) *AuthHandlers {
	return &AuthHandlers{
		users:  users,
		tokens: tokens,
	}
}

// SignupRequest represents a request to create an account
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SigninRequest represents a request to open a dashboard session
type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResponse represents a successful signup or signin
type SessionResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	User      auth.PublicUser `json:"user"`
}

// Signup handles POST /auth/signup
func (h *AuthHandlers) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.users.Create(req.Name, req.Email, req.Password)
	if err != nil {
		var existsErr auth.EmailExistsError
		if errors.As(err, &existsErr) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	token, expiresAt, err := h.tokens.Issue(user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue session token")
		return
	}

	writeJSON(w, http.StatusCreated, SessionResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user.Public(),
	})
}

// Signin handles POST /auth/signin
func (h *AuthHandlers) Signin(w http.ResponseWriter, r *http.Request) {
	var req SigninRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.users.Authenticate(req.Email, req.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, expiresAt, err := h.tokens.Issue(user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue session token")
		return
	}

	writeJSON(w, http.StatusOK, SessionResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user.Public(),
	})
}

// Me handles GET /auth/me
func (h *AuthHandlers) Me(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.SessionFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.users.GetByID(session.UserID)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	writeJSON(w, http.StatusOK, user.Public())
}
