package handlers

import (
	"net/http"

	apierrors "github.com/pribylovaa/go-todo-api/internal/errors"
	"github.com/pribylovaa/go-todo-api/internal/http/middleware"
	"github.com/pribylovaa/go-todo-api/internal/models"
	"github.com/pribylovaa/go-todo-api/internal/service"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	User models.PublicUser `json:"user"`
}

// RegisterUser — POST /users. Токен отдаётся в заголовке, в теле только id и email.
func (h *Handlers) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var in credentialsRequest
	if err := decodeJSON(w, r, &in); err != nil {
		apierrors.WriteError(w, r, errInvalidBody)
		return
	}

	user, token, err := h.Users.Register(r.Context(), in.Email, in.Password)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.Header().Set(h.TokenHeader, token)
	writeJSON(w, http.StatusOK, user.Public())
}

// LoginUser — POST /users/login.
func (h *Handlers) LoginUser(w http.ResponseWriter, r *http.Request) {
	var in credentialsRequest
	if err := decodeJSON(w, r, &in); err != nil {
		apierrors.WriteError(w, r, service.ErrInvalidCredentials)
		return
	}

	user, token, err := h.Users.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.Header().Set(h.TokenHeader, token)
	writeJSON(w, http.StatusOK, user.Public())
}

// CurrentUser — GET /users/me.
func (h *Handlers) CurrentUser(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		apierrors.WriteError(w, r, service.ErrUnauthenticated)
		return
	}

	writeJSON(w, http.StatusOK, userResponse{User: id.User.Public()})
}

// Logout — DELETE /users/me/token. Удаляет только токен текущего запроса.
// Любой сбой — 400.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		apierrors.WriteError(w, r, service.ErrUnauthenticated)
		return
	}

	if err := h.Users.Logout(r.Context(), id.User.ID, id.Token); err != nil {
		apierrors.WriteStatus(w, r, http.StatusBadRequest, "bad_request", "logout failed")
		return
	}

	w.WriteHeader(http.StatusOK)
}
