package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/example/ec-commerce/internal/api/middleware"
	"github.com/example/ec-commerce/internal/auth"
	"github.com/example/ec-commerce/internal/usecase"
)

// AuthHandlers handles signup, login and the current-user endpoint.
type AuthHandlers struct {
	users      *usecase.UserUseCase
	jwtService *auth.JWTService
}

func NewAuthHandlers(users *usecase.UserUseCase, jwtService *auth.JWTService) *AuthHandlers {
	return &AuthHandlers{users: users, jwtService: jwtService}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (h *AuthHandlers) Signup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	u, err := h.users.Signup(r.Context(), req.Email, req.Password)
	if err != nil {
		if err == auth.ErrPasswordTooShort {
			respondJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		respondError(w, err)
		return
	}

	token, expiresAt, err := h.jwtService.GenerateToken(u.ID, u.Email)
	if err != nil {
		respondJSONError(w, "failed to issue token", http.StatusInternalServerError)
		return
	}
	h.setAuthCookie(w, r, token, expiresAt)

	respondJSON(w, http.StatusCreated, authResponse{
		UserID:    u.ID,
		Email:     u.Email,
		Token:     token,
		ExpiresAt: expiresAt,
	})
}

func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	u, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	token, expiresAt, err := h.jwtService.GenerateToken(u.ID, u.Email)
	if err != nil {
		respondJSONError(w, "failed to issue token", http.StatusInternalServerError)
		return
	}
	h.setAuthCookie(w, r, token, expiresAt)

	respondJSON(w, http.StatusOK, authResponse{
		UserID:    u.ID,
		Email:     u.Email,
		Token:     token,
		ExpiresAt: expiresAt,
	})
}

func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	respondJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// Me returns the authenticated account, including its point balance.
func (h *AuthHandlers) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		respondJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	u, err := h.users.GetUser(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, u)
}

func (h *AuthHandlers) setAuthCookie(w http.ResponseWriter, r *http.Request, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteStrictMode,
	})
}
