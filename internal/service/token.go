package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pribylovaa/go-todo-api/internal/pkg/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// tokenClaims — содержимое токена: владелец и назначение.
// Срока действия нет: токен живёт, пока он есть в списке токенов пользователя.
// jti делает значения уникальными даже при выпуске в одну секунду.
type tokenClaims struct {
	UserID string `json:"uid"`
	Access string `json:"access"`
	jwt.RegisteredClaims
}

// issueToken подписывает токен для пользователя с указанным назначением.
func (s *Service) issueToken(ctx context.Context, userID primitive.ObjectID, purpose string) (string, error) {
	const op = "service.token.issueToken"

	claims := tokenClaims{
		UserID: userID.Hex(),
		Access: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(s.now()),
			ID:       uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		log.From(ctx).Error("token_sign_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return signed, nil
}

// parseToken проверяет подпись и декодирует владельца и назначение.
// Любая ошибка (подпись, алгоритм, формат, id) — ErrInvalidToken.
func (s *Service) parseToken(tokenStr string) (primitive.ObjectID, string, error) {
	const op = "service.token.parseToken"

	token, err := jwt.ParseWithClaims(tokenStr, &tokenClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
			}

			return []byte(s.cfg.JWTSecret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return primitive.NilObjectID, "", fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return primitive.NilObjectID, "", fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	uid, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return primitive.NilObjectID, "", fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	return uid, claims.Access, nil
}
