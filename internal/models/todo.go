package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Todo — задача пользователя (MongoDB, коллекция todos).
// Инвариант: CompletedAt != nil тогда и только тогда, когда IsCompleted == true.
// OwnerID задаётся при создании и дальше не меняется; используется только
// для фильтрации, каскадов по нему нет.
type Todo struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Text        string             `bson:"text" json:"text"`
	IsCompleted bool               `bson:"is_completed" json:"isCompleted"`
	CompletedAt *int64             `bson:"completed_at" json:"completedAt"`
	OwnerID     primitive.ObjectID `bson:"owner_id" json:"ownerId"`
}

// TodoUpdate — изменения задачи, уже приведённые к инварианту завершённости.
// Text == nil — текст не меняется.
type TodoUpdate struct {
	Text        *string
	IsCompleted bool
	CompletedAt *int64
}

// NewTodoUpdate собирает TodoUpdate по правилу завершённости:
// completed == true — ставим CompletedAt = now (мс), иначе сбрасываем в nil.
func NewTodoUpdate(text *string, completed bool, now time.Time) TodoUpdate {
	upd := TodoUpdate{Text: text}
	if completed {
		ms := now.UnixMilli()
		upd.IsCompleted = true
		upd.CompletedAt = &ms
	}

	return upd
}
