// Package models содержит доменные сущности todo-сервиса.
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PurposeAuth — назначение токена для доступа к API.
// Других назначений сейчас нет.
const PurposeAuth = "auth"

// Token — выданный пользователю токен (одна сессия).
type Token struct {
	Purpose string `bson:"purpose"`
	Value   string `bson:"value"`
}

// User — модель пользователя в MongoDB.
// Важно:
//   - Email хранится в нижнем регистре и уникален (unique-индекс);
//   - PasswordHash — только bcrypt-хэш, наружу не сериализуется;
//   - Tokens — действующие токены (по одному на сессию); каждый Value
//     подписан на ID этого же пользователя.
type User struct {
	ID           primitive.ObjectID `bson:"_id"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	Tokens       []Token            `bson:"tokens"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

// PublicUser — публичная проекция пользователя (id и email).
type PublicUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Public возвращает безопасную для клиента проекцию.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:    u.ID.Hex(),
		Email: u.Email,
	}
}

// HasToken сообщает, есть ли среди токенов пользователя value с указанным назначением.
func (u *User) HasToken(purpose, value string) bool {
	for _, t := range u.Tokens {
		if t.Purpose == purpose && t.Value == value {
			return true
		}
	}

	return false
}
