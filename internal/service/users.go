package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pribylovaa/go-todo-api/internal/models"
	"github.com/pribylovaa/go-todo-api/internal/pkg/log"
	"github.com/pribylovaa/go-todo-api/internal/pkg/redact"
	"github.com/pribylovaa/go-todo-api/internal/storage"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Credentials — пара email/пароль для регистрации и входа.
type Credentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

// normalizeEmail обрезает пробелы и приводит email к нижнему регистру.
func normalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Register создаёт пользователя и сразу выпускает ему auth-токен.
// Токен подписывается до записи, поэтому пользователь сохраняется
// одной вставкой вместе с первым токеном.
func (s *Service) Register(ctx context.Context, email, password string) (*models.User, string, error) {
	const op = "service.users.Register"

	lg := log.From(ctx)

	in := Credentials{Email: normalizeEmail(email), Password: password}
	if err := s.validate.Struct(in); err != nil {
		lg.Warn("register_invalid_input",
			slog.String("op", op),
			slog.String("email", redact.Email(in.Email)),
		)
		return nil, "", fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	hash, err := hashPassword(in.Password, s.cfg.BcryptCost)
	if err != nil {
		lg.Error("password_hash_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return nil, "", fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	user := &models.User{
		ID:           primitive.NewObjectID(),
		Email:        in.Email,
		PasswordHash: hash,
	}

	token, err := s.issueToken(ctx, user.ID, models.PurposeAuth)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w: %w", op, ErrInternal, err)
	}

	user.Tokens = []models.Token{{Purpose: models.PurposeAuth, Value: token}}

	if err := s.storage.SaveUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			lg.Info("register_email_taken",
				slog.String("op", op),
				slog.String("email", redact.Email(in.Email)),
			)
			return nil, "", fmt.Errorf("%s: %w", op, ErrEmailTaken)
		}

		lg.Error("register_save_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return nil, "", fmt.Errorf("%s: %w: %w", op, ErrInternal, err)
	}

	lg.Info("user_registered",
		slog.String("user_id", user.ID.Hex()),
		slog.String("email", redact.Email(user.Email)),
	)

	return user, token, nil
}

// Login проверяет пару email/пароль и выпускает новый auth-токен
// (новая сессия, прежние токены остаются действительными).
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	const op = "service.users.Login"

	lg := log.From(ctx)

	normEmail := normalizeEmail(email)
	if normEmail == "" || password == "" {
		return nil, "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	user, err := s.storage.UserByEmail(ctx, normEmail)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Info("login_failed",
				slog.String("op", op),
				slog.String("email", redact.Email(normEmail)),
			)
			return nil, "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}

		return nil, "", fmt.Errorf("%s: %w: %w", op, ErrInternal, err)
	}

	if !checkPassword(user.PasswordHash, password) {
		lg.Info("login_failed",
			slog.String("op", op),
			slog.String("email", redact.Email(normEmail)),
		)
		return nil, "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	token, err := s.issueToken(ctx, user.ID, models.PurposeAuth)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w: %w", op, ErrInternal, err)
	}

	t := models.Token{Purpose: models.PurposeAuth, Value: token}
	if err := s.storage.PushToken(ctx, user.ID, t); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// Пользователь удалён между чтением и записью.
			return nil, "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}

		lg.Error("login_push_token_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return nil, "", fmt.Errorf("%s: %w: %w", op, ErrInternal, err)
	}

	user.Tokens = append(user.Tokens, t)

	lg.Info("user_logged_in",
		slog.String("user_id", user.ID.Hex()),
		slog.Int("sessions", len(user.Tokens)),
	)

	return user, token, nil
}

// Authenticate проверяет токен и находит пользователя, у которого этот токен
// ещё числится среди auth-токенов. Отозванный (после logout) токен с верной
// подписью отклоняется.
func (s *Service) Authenticate(ctx context.Context, token string) (*models.User, error) {
	const op = "service.users.Authenticate"

	if token == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	uid, purpose, err := s.parseToken(token)
	if err != nil {
		log.From(ctx).Debug("token_parse_failed",
			slog.String("op", op),
			slog.String("token", redact.Token(token)),
		)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if purpose != models.PurposeAuth {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	user, err := s.storage.UserByToken(ctx, uid, models.PurposeAuth, token)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
		}

		return nil, fmt.Errorf("%s: %w: %w", op, ErrInternal, err)
	}

	return user, nil
}

// Logout удаляет из списка пользователя ровно переданный токен.
// Отсутствие токена в списке — не ошибка.
func (s *Service) Logout(ctx context.Context, userID primitive.ObjectID, token string) error {
	const op = "service.users.Logout"

	if err := s.storage.PullToken(ctx, userID, token); err != nil {
		log.From(ctx).Warn("logout_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)

		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrUnauthenticated)
		}

		return fmt.Errorf("%s: %w: %w", op, ErrInternal, err)
	}

	log.From(ctx).Info("user_logged_out", slog.String("user_id", userID.Hex()))

	return nil
}

// DeleteAccount удаляет все задачи пользователя, затем сам документ пользователя.
// Порядок позволяет безопасно повторить операцию после частичного сбоя.
func (s *Service) DeleteAccount(ctx context.Context, userID primitive.ObjectID) error {
	const op = "service.users.DeleteAccount"

	n, err := s.storage.DeleteTodosByOwner(ctx, userID)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", op, ErrInternal, err)
	}

	if err := s.storage.DeleteUser(ctx, userID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return fmt.Errorf("%s: %w: %w", op, ErrInternal, err)
	}

	log.From(ctx).Info("account_deleted",
		slog.String("user_id", userID.Hex()),
		slog.Int64("todos_deleted", n),
	)

	return nil
}
