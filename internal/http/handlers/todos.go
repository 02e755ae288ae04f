package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	apierrors "github.com/pribylovaa/go-todo-api/internal/errors"
	"github.com/pribylovaa/go-todo-api/internal/http/middleware"
	"github.com/pribylovaa/go-todo-api/internal/models"
	"github.com/pribylovaa/go-todo-api/internal/service"
)

type createTodoRequest struct {
	Text string `json:"text"`
}

// updateTodoRequest — допустимые поля PATCH. Остальные поля тела игнорируются.
// IsCompleted намеренно any: завершённой задача становится только
// от JSON-значения true, любое другое значение (или его отсутствие) сбрасывает статус.
type updateTodoRequest struct {
	Text        *string `json:"text"`
	IsCompleted any     `json:"isCompleted"`
}

type todoResponse struct {
	Todo *models.Todo `json:"todo"`
}

type todosResponse struct {
	Todos []models.Todo `json:"todos"`
}

// CreateTodo — POST /todos. Возвращает созданную задачу без обёртки.
func (h *Handlers) CreateTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		apierrors.WriteError(w, r, service.ErrUnauthenticated)
		return
	}

	var in createTodoRequest
	if err := decodeJSON(w, r, &in); err != nil {
		apierrors.WriteError(w, r, errInvalidBody)
		return
	}

	todo, err := h.Todos.CreateTodo(r.Context(), id.User.ID, in.Text)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, todo)
}

// ListTodos — GET /todos.
func (h *Handlers) ListTodos(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		apierrors.WriteError(w, r, service.ErrUnauthenticated)
		return
	}

	items, err := h.Todos.ListTodos(r.Context(), id.User.ID)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, todosResponse{Todos: items})
}

// GetTodo — GET /todos/{id}.
func (h *Handlers) GetTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		apierrors.WriteError(w, r, service.ErrUnauthenticated)
		return
	}

	todo, err := h.Todos.TodoByID(r.Context(), id.User.ID, chi.URLParam(r, "id"))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, todoResponse{Todo: todo})
}

// UpdateTodo — PATCH /todos/{id}.
func (h *Handlers) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		apierrors.WriteError(w, r, service.ErrUnauthenticated)
		return
	}

	var in updateTodoRequest
	if err := decodeJSON(w, r, &in); err != nil {
		apierrors.WriteError(w, r, errInvalidBody)
		return
	}

	completed, _ := in.IsCompleted.(bool)

	todo, err := h.Todos.UpdateTodo(r.Context(), id.User.ID, chi.URLParam(r, "id"), service.UpdateTodoInput{
		Text:      in.Text,
		Completed: completed,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, todoResponse{Todo: todo})
}

// DeleteTodo — DELETE /todos/{id}. Возвращает последнее состояние удалённой задачи.
func (h *Handlers) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		apierrors.WriteError(w, r, service.ErrUnauthenticated)
		return
	}

	todo, err := h.Todos.DeleteTodo(r.Context(), id.User.ID, chi.URLParam(r, "id"))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, todoResponse{Todo: todo})
}
