package api

import (
	"log/slog"
	"net/http"

	"polychat/backend/internal/auth"
	"polychat/backend/internal/interfaces"
	"polychat/backend/internal/model"
	"polychat/backend/internal/service"
)

// UserResponse is the public view of the logged-in account.
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

// AuthHandler handles registration, login and the session cookie.
type AuthHandler struct {
	service  interfaces.AuthService
	sessions *auth.SessionManager
}

func NewAuthHandler(svc interfaces.AuthService, sessions *auth.SessionManager) *AuthHandler {
	return &AuthHandler{service: svc, sessions: sessions}
}

// HandleRegister godoc
// @Summary      Register
// @Description  Creates an account and starts a session.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        credentials  body      service.Credentials  true  "Username and password"
// @Success      201          {object}  UserResponse
// @Failure      400          {object}  ErrorResponse
// @Failure      409          {object}  ErrorResponse
// @Router       /register [post]
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var creds service.Credentials
	if err := decodeJSON(r.Body, &creds); err != nil {
		respondWithError(w, err)
		return
	}
	user, err := h.service.Register(r.Context(), creds)
	if err != nil {
		respondWithError(w, err)
		return
	}
	h.startSession(w, user, http.StatusCreated)
}

// HandleLogin godoc
// @Summary      Log in
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        credentials  body      service.Credentials  true  "Username and password"
// @Success      200          {object}  UserResponse
// @Failure      401          {object}  ErrorResponse
// @Router       /login [post]
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var creds service.Credentials
	if err := decodeJSON(r.Body, &creds); err != nil {
		respondWithError(w, err)
		return
	}
	user, err := h.service.Login(r.Context(), creds)
	if err != nil {
		respondWithError(w, err)
		return
	}
	h.startSession(w, user, http.StatusOK)
}

// HandleLogout godoc
// @Summary      Log out
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /logout [post]
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(w)
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// HandleGetUser godoc
// @Summary      Current user
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  UserResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /user [get]
func (h *AuthHandler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.GetUser(r.Context(), identity(r).UserID)
	if err != nil {
		h.sessions.Clear(w)
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, h.userResponse(user))
}

func (h *AuthHandler) startSession(w http.ResponseWriter, user *model.User, status int) {
	if err := h.sessions.Issue(w, user); err != nil {
		slog.Error("Could not issue session", "user_id", user.ID, "error", err)
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, status, h.userResponse(user))
}

func (h *AuthHandler) userResponse(user *model.User) UserResponse {
	return UserResponse{ID: user.ID, Username: user.Username, IsAdmin: h.sessions.IsAdmin(user.Username)}
}
