package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/pribylovaa/go-todo-api/internal/models"
	"github.com/pribylovaa/go-todo-api/internal/storage"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SaveTodo вставляет задачу. Если ID пустой — генерируется новый ObjectID.
func (m *Mongo) SaveTodo(ctx context.Context, todo *models.Todo) error {
	const op = "storage/mongo/SaveTodo"

	if todo.ID.IsZero() {
		todo.ID = primitive.NewObjectID()
	}

	if _, err := m.todos.InsertOne(ctx, todo); err != nil {
		return fmt.Errorf("%s: insert: %w", op, err)
	}

	return nil
}

// TodosByOwner возвращает все задачи владельца, сортировка по _id (порядок вставки).
// Пустой результат — пустой срез, не nil.
func (m *Mongo) TodosByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Todo, error) {
	const op = "storage/mongo/TodosByOwner"

	cur, err := m.todos.Find(ctx,
		bson.D{{Key: "owner_id", Value: owner}},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: find: %w", op, err)
	}
	defer cur.Close(ctx)

	items := make([]models.Todo, 0)
	for cur.Next(ctx) {
		var todo models.Todo
		if err := cur.Decode(&todo); err != nil {
			return nil, fmt.Errorf("%s: decode: %w", op, err)
		}

		items = append(items, todo)
	}

	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s: cursor: %w", op, err)
	}

	return items, nil
}

// TodoByID возвращает задачу владельца.
// Некорректный формат id и чужая задача трактуются как «нет такой записи».
func (m *Mongo) TodoByID(ctx context.Context, owner primitive.ObjectID, id string) (*models.Todo, error) {
	const op = "storage/mongo/TodoByID"

	oid, err := parseID(id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	var out models.Todo
	if err := m.todos.FindOne(ctx, ownedFilter(owner, oid)).Decode(&out); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

// UpdateTodo применяет изменения одной операцией findOneAndUpdate
// и возвращает документ после обновления.
func (m *Mongo) UpdateTodo(ctx context.Context, owner primitive.ObjectID, id string, upd models.TodoUpdate) (*models.Todo, error) {
	const op = "storage/mongo/UpdateTodo"

	oid, err := parseID(id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	set := bson.D{
		{Key: "is_completed", Value: upd.IsCompleted},
		{Key: "completed_at", Value: upd.CompletedAt},
	}
	if upd.Text != nil {
		set = append(set, bson.E{Key: "text", Value: *upd.Text})
	}

	var out models.Todo
	err = m.todos.FindOneAndUpdate(ctx,
		ownedFilter(owner, oid),
		bson.D{{Key: "$set", Value: set}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&out)
	if err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

// DeleteTodo удаляет задачу владельца и возвращает её последнее состояние.
func (m *Mongo) DeleteTodo(ctx context.Context, owner primitive.ObjectID, id string) (*models.Todo, error) {
	const op = "storage/mongo/DeleteTodo"

	oid, err := parseID(id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	var out models.Todo
	if err := m.todos.FindOneAndDelete(ctx, ownedFilter(owner, oid)).Decode(&out); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

// DeleteTodosByOwner удаляет все задачи владельца.
func (m *Mongo) DeleteTodosByOwner(ctx context.Context, owner primitive.ObjectID) (int64, error) {
	const op = "storage/mongo/DeleteTodosByOwner"

	res, err := m.todos.DeleteMany(ctx, bson.D{{Key: "owner_id", Value: owner}})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return res.DeletedCount, nil
}

func ownedFilter(owner, id primitive.ObjectID) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "owner_id", Value: owner},
	}
}
