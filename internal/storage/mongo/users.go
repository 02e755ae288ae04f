package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pribylovaa/go-todo-api/internal/models"
	"github.com/pribylovaa/go-todo-api/internal/storage"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
)

// MongoDB DateTime хранит миллисекунды.
func nowMS() time.Time { return time.Now().UTC().Truncate(time.Millisecond) }

// SaveUser создаёт пользователя одной вставкой.
// Если ID пустой — генерируется новый ObjectID. Tokens никогда не пишется как null,
// иначе последующий $push упадёт.
func (m *Mongo) SaveUser(ctx context.Context, user *models.User) error {
	const op = "storage/mongo/SaveUser"

	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}

	if user.Tokens == nil {
		user.Tokens = []models.Token{}
	}

	now := nowMS()
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := m.users.InsertOne(ctx, user); err != nil {
		if mongodriver.IsDuplicateKeyError(err) {
			return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return fmt.Errorf("%s: insert: %w", op, err)
	}

	return nil
}

// UserByEmail находит пользователя по email.
func (m *Mongo) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage/mongo/UserByEmail"

	return m.findUser(ctx, op, bson.D{{Key: "email", Value: email}})
}

// UserByToken находит пользователя по ID, у которого в одном и том же
// элементе tokens совпадают и назначение, и значение.
func (m *Mongo) UserByToken(ctx context.Context, id primitive.ObjectID, purpose, value string) (*models.User, error) {
	const op = "storage/mongo/UserByToken"

	filter := bson.D{
		{Key: "_id", Value: id},
		{Key: "tokens", Value: bson.D{{Key: "$elemMatch", Value: bson.D{
			{Key: "purpose", Value: purpose},
			{Key: "value", Value: value},
		}}}},
	}

	return m.findUser(ctx, op, filter)
}

// PushToken добавляет токен в конец списка.
func (m *Mongo) PushToken(ctx context.Context, id primitive.ObjectID, token models.Token) error {
	const op = "storage/mongo/PushToken"

	res, err := m.users.UpdateByID(ctx, id, bson.D{
		{Key: "$push", Value: bson.D{{Key: "tokens", Value: token}}},
		{Key: "$set", Value: bson.D{{Key: "updated_at", Value: nowMS()}}},
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// PullToken удаляет токен по значению. Если такого токена нет — no-op.
func (m *Mongo) PullToken(ctx context.Context, id primitive.ObjectID, value string) error {
	const op = "storage/mongo/PullToken"

	res, err := m.users.UpdateByID(ctx, id, bson.D{
		{Key: "$pull", Value: bson.D{{Key: "tokens", Value: bson.D{{Key: "value", Value: value}}}}},
		{Key: "$set", Value: bson.D{{Key: "updated_at", Value: nowMS()}}},
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// DeleteUser удаляет документ пользователя. Задачи не трогает.
func (m *Mongo) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	const op = "storage/mongo/DeleteUser"

	res, err := m.users.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

func (m *Mongo) findUser(ctx context.Context, op string, filter bson.D) (*models.User, error) {
	var out models.User
	if err := m.users.FindOne(ctx, filter).Decode(&out); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out.CreatedAt = out.CreatedAt.UTC()
	out.UpdatedAt = out.UpdatedAt.UTC()

	return &out, nil
}
