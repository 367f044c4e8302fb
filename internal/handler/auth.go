package handler

import (
	"errors"
	"log"
	"net/http"

	"minisocial/internal/config"
	"minisocial/internal/httputil"
	"minisocial/internal/model"
	"minisocial/internal/service"
	"minisocial/internal/transport/http/middleware"
)

// AuthHandler groups auth-related HTTP endpoints and their dependencies.
type AuthHandler struct {
	userService *service.UserService
	authService *service.AuthService
	config      *config.Config
}

// NewAuthHandler wires dependencies for authentication endpoints.
func NewAuthHandler(userService *service.UserService, authService *service.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		authService: authService,
		config:      cfg,
	}
}

// Register handles POST /api/auth/register and signs the new user in.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := httputil.DecodeBody(w, r, &req); err != nil {
		httputil.WriteBadRequest(w, msgInvalidBody)
		return
	}

	user, err := h.userService.Register(r.Context(), &req)
	if err != nil {
		if msg, ok := validationMessage(err); ok {
			httputil.WriteBadRequest(w, msg)
			return
		}
		if errors.Is(err, model.ErrUsernameExists) {
			httputil.WriteConflict(w, msgUsernameExists)
			return
		}
		log.Printf("[ERROR] Register handler: %v", err)
		httputil.WriteInternalError(w, "Failed to register")
		return
	}

	h.startSession(w, http.StatusCreated, user)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := httputil.DecodeBody(w, r, &req); err != nil {
		httputil.WriteBadRequest(w, msgInvalidBody)
		return
	}
	if req.Username == "" || req.Password == "" {
		httputil.WriteBadRequest(w, msgCredentialsRequired)
		return
	}

	user, err := h.userService.Login(r.Context(), &req)
	if err != nil {
		if errors.Is(err, model.ErrInvalidCredentials) {
			httputil.WriteUnauthorized(w, msgInvalidCredentials)
			return
		}
		httputil.WriteInternalError(w, "Failed to login")
		return
	}

	h.startSession(w, http.StatusOK, user)
}

// Logout handles POST /api/auth/logout. Tokens are stateless, so this only
// drops the browser cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearSessionCookie(w, h.config.CookieSecure)
	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"message": msgSignedOut,
	})
}

// Me returns the currently authenticated user
// GET /api/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, msgAuthRequired)
		return
	}

	user, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, msgUserNotFound)
			return
		}
		httputil.WriteInternalError(w, "Failed to get user")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) startSession(w http.ResponseWriter, status int, user *model.User) {
	token, err := h.authService.IssueToken(user.ID)
	if err != nil {
		log.Printf("[ERROR] Issue token: user=%d err=%v", user.ID, err)
		httputil.WriteInternalError(w, "Failed to generate token")
		return
	}

	middleware.SetSessionCookie(w, token, h.authService.MaxAge(), h.config.CookieSecure)
	httputil.WriteJSON(w, status, model.LoginResponse{
		User:        user,
		AccessToken: token,
		ExpiresIn:   h.authService.MaxAge(),
	})
}
