// errors стандартизирует ответы об ошибках HTTP-слоя todo-сервиса.
// На вход принимается ошибка сервисного слоя (обёрнутая op + %w),
// на выход:
//   - корректный HTTP-статус;
//   - краткое безопасное message без утечки деталей.
//
// Источник истинности по маппингу — sentinel-ошибки пакета service.
package errors

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pribylovaa/go-todo-api/internal/service"
)

// Нестандартный код часто используемый для "клиент закрыл соединение".
const StatusClientClosedRequest = 499

// APIError — единый формат ошибки для клиента.
// Code — короткий стабильный код для машиночитаемой обработки.
// Message — безопасное человекочитаемое описание.
// RequestID — прокидывается из X-Request-Id (для трассировки).
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse — корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// ToHTTP конвертирует ошибку сервиса в HTTP-статус и унифицированный ответ.
//
// Поведение:
//   - err == nil — программная ошибка вызова: 500/internal, чтобы не
//     послать "200 OK" с телом ошибки;
//   - известные sentinel-ошибки маппятся через errors.Is (см. baseFromErr);
//   - всё прочее — 500/internal без деталей.
func ToHTTP(err error) (int, ErrorResponse) {
	httpStatus, code, msg := baseFromErr(err)

	return httpStatus, ErrorResponse{
		Error: APIError{
			Code:    code,
			Message: msg,
		},
	}
}

// WriteError — хелпер для HTTP-хендлеров.
// Пишет корректный статус/тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)
	write(w, r, status, resp)
}

// WriteStatus пишет ошибку с явно заданным статусом, минуя маппинг.
// Нужен там, где контракт эндпоинта фиксирует один код на любой сбой.
func WriteStatus(w http.ResponseWriter, r *http.Request, status int, code, msg string) {
	write(w, r, status, ErrorResponse{Error: APIError{Code: code, Message: msg}})
}

func write(w http.ResponseWriter, r *http.Request, status int, resp ErrorResponse) {
	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// baseFromErr — базовый маппинг ошибок сервиса:
//   - ErrInvalidArgument, ErrEmailTaken, ErrInvalidCredentials -> 400
//     (неверный пароль и неизвестный email неотличимы);
//   - ErrInvalidToken, ErrUnauthenticated -> 401;
//   - ErrNotFound -> 404 (в том числе чужая задача и битый id);
//   - context.Canceled -> 499, context.DeadlineExceeded -> 504;
//   - прочее (включая ErrInternal) -> 500/internal.
func baseFromErr(err error) (int, string, string) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, "internal", "internal error"
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusBadRequest, "invalid_credentials", "invalid email or password"
	case errors.Is(err, service.ErrEmailTaken), errors.Is(err, service.ErrInvalidArgument):
		return http.StatusBadRequest, "invalid_argument", "invalid argument"
	case errors.Is(err, service.ErrInvalidToken), errors.Is(err, service.ErrUnauthenticated):
		return http.StatusUnauthorized, "unauthenticated", "unauthenticated"
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, "not_found", "not found"
	case errors.Is(err, context.Canceled):
		return StatusClientClosedRequest, "canceled", "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "deadline_exceeded", "deadline exceeded"
	default:
		return http.StatusInternalServerError, "internal", "internal error"
	}
}
