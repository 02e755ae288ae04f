package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pribylovaa/go-todo-api/internal/models"
	"github.com/pribylovaa/go-todo-api/internal/pkg/log"
	"github.com/pribylovaa/go-todo-api/internal/storage"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type todoText struct {
	Text string `validate:"required"`
}

// UpdateTodoInput — допустимые изменения задачи.
// Text == nil — текст не меняется. Completed — был ли передан именно boolean true.
type UpdateTodoInput struct {
	Text      *string
	Completed bool
}

// CreateTodo создаёт задачу владельца. Пустой после обрезки текст — ErrInvalidArgument.
func (s *Service) CreateTodo(ctx context.Context, owner primitive.ObjectID, text string) (*models.Todo, error) {
	const op = "service.todos.CreateTodo"

	in := todoText{Text: strings.TrimSpace(text)}
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	todo := &models.Todo{
		Text:    in.Text,
		OwnerID: owner,
	}

	if err := s.storage.SaveTodo(ctx, todo); err != nil {
		log.From(ctx).Error("todo_save_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("%s: %w: %w", op, ErrInternal, err)
	}

	return todo, nil
}

// ListTodos возвращает все задачи владельца в порядке создания.
func (s *Service) ListTodos(ctx context.Context, owner primitive.ObjectID) ([]models.Todo, error) {
	const op = "service.todos.ListTodos"

	items, err := s.storage.TodosByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrInternal, err)
	}

	if items == nil {
		items = []models.Todo{}
	}

	return items, nil
}

// TodoByID возвращает задачу владельца.
func (s *Service) TodoByID(ctx context.Context, owner primitive.ObjectID, id string) (*models.Todo, error) {
	const op = "service.todos.TodoByID"

	todo, err := s.storage.TodoByID(ctx, owner, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapTodoErr(err))
	}

	return todo, nil
}

// UpdateTodo меняет текст и статус завершённости задачи.
// Completed == true — completedAt = текущее время (мс); иначе задача
// становится незавершённой и completedAt сбрасывается.
func (s *Service) UpdateTodo(ctx context.Context, owner primitive.ObjectID, id string, in UpdateTodoInput) (*models.Todo, error) {
	const op = "service.todos.UpdateTodo"

	var text *string
	if in.Text != nil {
		t := todoText{Text: strings.TrimSpace(*in.Text)}
		if err := s.validate.Struct(t); err != nil {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
		}
		text = &t.Text
	}

	upd := models.NewTodoUpdate(text, in.Completed, s.now())

	todo, err := s.storage.UpdateTodo(ctx, owner, id, upd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapTodoErr(err))
	}

	return todo, nil
}

// DeleteTodo удаляет задачу владельца и возвращает её последнее состояние.
func (s *Service) DeleteTodo(ctx context.Context, owner primitive.ObjectID, id string) (*models.Todo, error) {
	const op = "service.todos.DeleteTodo"

	todo, err := s.storage.DeleteTodo(ctx, owner, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapTodoErr(err))
	}

	log.From(ctx).Info("todo_deleted", slog.String("todo_id", todo.ID.Hex()))

	return todo, nil
}

func mapTodoErr(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return ErrNotFound
	}

	return fmt.Errorf("%w: %w", ErrInternal, err)
}
