// Package handler contains the HTTP layer: request parsing, response
// writing, and nothing else. Business rules live in internal/service.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/paperpal/internal/auth"
	"github.com/sakif/paperpal/internal/model"
	"github.com/sakif/paperpal/internal/service"
)

// AuthHandler exposes registration, login, logout, the remember-me
// prefill endpoint, and the current-user profile endpoints.
type AuthHandler struct {
	authSvc *service.AuthService
	logger  *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(authSvc *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, logger: logger}
}

// userResponse is the wire shape of a user. The model's PasswordHash is
// already excluded by its json tag; this type exists so the handler
// controls the response shape independently of the model.
type userResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
}

func toUserResponse(u *model.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// setSessionCookie stores the JWT in an HttpOnly cookie for the token's
// lifetime. SameSite=Lax keeps it off cross-site POSTs.
func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(auth.TokenTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie expires the session cookie immediately.
func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// HandleRegister creates a new account and logs it in.
//
// HTTP: POST /api/auth/register
// BODY: {"name": "Ann", "email": "a@x.com", "password": "secret1"}
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid register JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "Invalid JSON body"})
		return
	}

	res, err := h.authSvc.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	setSessionCookie(w, res.Token)
	writeJSON(w, http.StatusCreated, toUserResponse(res.User))
}

// HandleLogin authenticates an email/password pair.
//
// HTTP: POST /api/auth/login
// BODY: {"email": "a@x.com", "password": "secret1", "rememberMe": true}
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email      string `json:"email"`
		Password   string `json:"password"`
		RememberMe bool   `json:"rememberMe"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid login JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "Invalid JSON body"})
		return
	}

	res, err := h.authSvc.Login(r.Context(), req.Email, req.Password, req.RememberMe)
	if err != nil {
		writeError(w, err)
		return
	}

	setSessionCookie(w, res.Token)
	writeJSON(w, http.StatusOK, toUserResponse(res.User))
}

// HandleLogout clears the session cookie and the persisted session.
//
// HTTP: POST /api/auth/logout
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.authSvc.Logout(r.Context()); err != nil {
		writeError(w, err)
		return
	}

	clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// HandleRemembered returns the login-form prefill tuple, or 204 when
// remembering is not enabled.
//
// HTTP: GET /api/auth/remember
func (h *AuthHandler) HandleRemembered(w http.ResponseWriter, r *http.Request) {
	remembered, err := h.authSvc.Remembered(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if remembered == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusOK, remembered)
}

// HandleMe returns the authenticated user's profile.
//
// HTTP: GET /api/me (behind RequireAuth)
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "valid authentication required"})
		return
	}

	user, err := h.authSvc.GetUserByID(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// HandleUpdateProfile updates the authenticated user's name and/or
// password. Empty or omitted fields are left unchanged; email cannot be
// changed.
//
// HTTP: PUT /api/me (behind RequireAuth)
// BODY: {"name": "Annika", "password": "newpass1"}
func (h *AuthHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "valid authentication required"})
		return
	}

	var req struct {
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid profile JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "Invalid JSON body"})
		return
	}

	user, err := h.authSvc.UpdateProfile(r.Context(), userID, req.Name, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}
