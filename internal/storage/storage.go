package storage

//go:generate mockgen -destination=../../mocks/storage.go -package=mocks github.com/pribylovaa/go-todo-api/internal/storage Storage

import (
	"context"
	"errors"

	"github.com/pribylovaa/go-todo-api/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrNotFound — запись не найдена (пользователь/задача/токен).
	// Некорректный формат идентификатора тоже считается «нет такой записи».
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists — нарушение уникальности (email).
	ErrAlreadyExists = errors.New("already exists")
)

// UserStorage выполняет операции над пользователями.
type UserStorage interface {
	// SaveUser создаёт нового пользователя (вместе с начальными токенами).
	// При занятом email — ErrAlreadyExists.
	SaveUser(ctx context.Context, user *models.User) error
	// UserByEmail находит пользователя по email (ожидается уже нормализованный).
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	// UserByToken находит пользователя по ID, у которого есть токен
	// с указанными назначением и значением.
	UserByToken(ctx context.Context, id primitive.ObjectID, purpose, value string) (*models.User, error)
	// PushToken добавляет токен в конец списка токенов пользователя.
	PushToken(ctx context.Context, id primitive.ObjectID, token models.Token) error
	// PullToken удаляет токен с указанным значением; отсутствие токена — не ошибка.
	PullToken(ctx context.Context, id primitive.ObjectID, value string) error
	// DeleteUser удаляет пользователя. Если записи нет — ErrNotFound.
	DeleteUser(ctx context.Context, id primitive.ObjectID) error
}

// TodoStorage выполняет операции над задачами. Все выборки по id
// дополнительно фильтруются по владельцу.
type TodoStorage interface {
	// SaveTodo создаёт задачу; ID проставляется в переданной модели.
	SaveTodo(ctx context.Context, todo *models.Todo) error
	// TodosByOwner возвращает все задачи владельца в порядке создания.
	TodosByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Todo, error)
	// TodoByID возвращает задачу владельца по строковому id.
	TodoByID(ctx context.Context, owner primitive.ObjectID, id string) (*models.Todo, error)
	// UpdateTodo применяет изменения и возвращает обновлённую задачу.
	UpdateTodo(ctx context.Context, owner primitive.ObjectID, id string, upd models.TodoUpdate) (*models.Todo, error)
	// DeleteTodo удаляет задачу и возвращает её последнее состояние.
	DeleteTodo(ctx context.Context, owner primitive.ObjectID, id string) (*models.Todo, error)
	// DeleteTodosByOwner удаляет все задачи владельца, возвращает их количество.
	DeleteTodosByOwner(ctx context.Context, owner primitive.ObjectID) (int64, error)
}

// Storage задает контракт работы с БД.
type Storage interface {
	UserStorage
	TodoStorage
	// Ping проверяет доступность БД (readiness).
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
