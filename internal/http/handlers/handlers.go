package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/pribylovaa/go-todo-api/internal/models"
	"github.com/pribylovaa/go-todo-api/internal/service"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// maxBodyBytes — верхняя граница тела запроса.
const maxBodyBytes = 1 << 20

// UserService — операции над пользователями, нужные HTTP-слою.
type UserService interface {
	Register(ctx context.Context, email, password string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	Logout(ctx context.Context, userID primitive.ObjectID, token string) error
}

// TodoService — операции над задачами владельца.
type TodoService interface {
	CreateTodo(ctx context.Context, owner primitive.ObjectID, text string) (*models.Todo, error)
	ListTodos(ctx context.Context, owner primitive.ObjectID) ([]models.Todo, error)
	TodoByID(ctx context.Context, owner primitive.ObjectID, id string) (*models.Todo, error)
	UpdateTodo(ctx context.Context, owner primitive.ObjectID, id string, in service.UpdateTodoInput) (*models.Todo, error)
	DeleteTodo(ctx context.Context, owner primitive.ObjectID, id string) (*models.Todo, error)
}

// Handlers агрегирует зависимости REST-эндпойнтов.
type Handlers struct {
	Users       UserService
	Todos       TodoService
	TokenHeader string
}

func New(users UserService, todos TodoService, tokenHeader string) *Handlers {
	return &Handlers{
		Users:       users,
		Todos:       todos,
		TokenHeader: tokenHeader,
	}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeJSON читает тело запроса. Неизвестные поля игнорируются,
// пустое тело эквивалентно {}.
func decodeJSON(w http.ResponseWriter, r *http.Request, value any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(value); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// errInvalidBody — локальная ошибка парсинга тела -> 400.
var errInvalidBody = service.ErrInvalidArgument
