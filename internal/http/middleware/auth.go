package middleware

import (
	"context"
	"log/slog"
	"net/http"

	apierrors "github.com/pribylovaa/go-todo-api/internal/errors"
	"github.com/pribylovaa/go-todo-api/internal/models"
	logctx "github.com/pribylovaa/go-todo-api/internal/pkg/log"
)

// Authenticator проверяет токен и возвращает его владельца.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// Identity — аутентифицированный пользователь и токен, которым он пришёл.
type Identity struct {
	User  *models.User
	Token string
}

type identityKey struct{}

// WithIdentity кладёт Identity в контекст.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom достаёт Identity из контекста.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	if !ok || id.User == nil {
		return Identity{}, false
	}
	return id, true
}

// Auth — единственная точка авторизации: читает токен из заголовка header,
// проверяет его через Authenticator и кладёт Identity в контекст.
// Любой отказ — 401 (сбой хранилища — 500). Владение задачами здесь
// не проверяется.
func Auth(a Authenticator, header string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(header)

			user, err := a.Authenticate(r.Context(), token)
			if err != nil {
				logctx.From(r.Context()).Debug("auth_rejected",
					slog.String("path", r.URL.Path),
					slog.String("err", err.Error()),
				)
				apierrors.WriteError(w, r, err)
				return
			}

			ctx := WithIdentity(r.Context(), Identity{User: user, Token: token})
			ctx = logctx.With(ctx, slog.String("user_id", user.ID.Hex()))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
