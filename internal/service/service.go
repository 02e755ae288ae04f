// service содержит бизнес-логику todo-сервиса:
// регистрацию/вход пользователей, выпуск и проверку токенов,
// работу с задачами владельца через интерфейсы из пакета storage.
//
// Основные аспекты:
//   - Service не хранит состояние запроса; экземпляр безопасен для
//     конкурентного использования, если потокобезопасно хранилище.
//   - Ошибки возвращаются обёрнутыми (op + %w) и маппятся на HTTP-коды
//     один раз, на границе транспорта (internal/errors).
//   - Владелец задачи всегда участвует в фильтре запроса: чужая задача
//     неотличима от отсутствующей.
package service

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pribylovaa/go-todo-api/internal/config"
	"github.com/pribylovaa/go-todo-api/internal/storage"
)

var (
	// ErrInvalidArgument — входные данные не прошли валидацию
	// (формат email, длина пароля, пустой текст задачи). HTTP 400.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrEmailTaken — e-mail уже занят другим пользователем. HTTP 400.
	ErrEmailTaken = errors.New("email already taken")

	// ErrInvalidCredentials — неизвестный email или неверный пароль.
	// Намеренно один и тот же ответ для обоих случаев. HTTP 400.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken — подпись/формат токена некорректны. HTTP 401.
	ErrInvalidToken = errors.New("invalid token")

	// ErrUnauthenticated — токен валиден по подписи, но отозван
	// или не принадлежит пользователю. HTTP 401.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrNotFound — задача не найдена или принадлежит другому владельцу. HTTP 404.
	ErrNotFound = errors.New("not found")

	// ErrInternal — сбой хранилища или иной непредвиденный сбой. HTTP 500.
	ErrInternal = errors.New("internal error")
)

// Service описывает бизнес-логику todo-сервиса.
type Service struct {
	storage  storage.Storage
	cfg      config.AuthConfig
	validate *validator.Validate
	now      func() time.Time
}

// New создаёт новый экземпляр Service.
func New(storage storage.Storage, cfg config.AuthConfig) *Service {
	return &Service{
		storage:  storage,
		cfg:      cfg,
		validate: validator.New(),
		now:      time.Now,
	}
}
