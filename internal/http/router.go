package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/go-todo-api/internal/http/handlers"
	"github.com/pribylovaa/go-todo-api/internal/http/middleware"
)

// Service — всё, что HTTP-слою нужно от бизнес-логики.
type Service interface {
	handlers.UserService
	handlers.TodoService
	middleware.Authenticator
}

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger      *slog.Logger
	Timeout     time.Duration
	TokenHeader string // заголовок с auth-токеном, по умолчанию x-auth.
	Production  bool   // включает HSTS.
	Metrics     *middleware.Metrics
	// Ready — проверка готовности для /healthz; nil — всегда готов.
	Ready func(ctx context.Context) error
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(svc Service, opts Options) http.Handler {
	if opts.TokenHeader == "" {
		opts.TokenHeader = "x-auth"
	}

	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),            // безопасно ловим паники
		middleware.RequestID(),          // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(opts.Logger), // кладём request-scoped логгер в контекст и логируем
		middleware.Secure(opts.Production),
		opts.Metrics.Middleware(),
		middleware.Timeout(opts.Timeout), // общий дедлайн запроса; <=0 — no-op
	)

	registerOps(root, opts)

	h := handlers.New(svc, svc, opts.TokenHeader)
	registerRoutes(root, h, middleware.Auth(svc, opts.TokenHeader))

	return root
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers, auth middleware.Middleware) {
	// users (публичные)
	r.Post("/users", h.RegisterUser)
	r.Post("/users/login", h.LoginUser)

	r.Group(func(r chi.Router) {
		r.Use(auth)

		// users
		r.Get("/users/me", h.CurrentUser)
		r.Delete("/users/me/token", h.Logout)

		// todos
		r.Post("/todos", h.CreateTodo)
		r.Get("/todos", h.ListTodos)
		r.Get("/todos/{id}", h.GetTodo)
		r.Patch("/todos/{id}", h.UpdateTodo)
		r.Delete("/todos/{id}", h.DeleteTodo)
	})
}

// registerOps — liveness/readiness/metrics.
func registerOps(r chi.Router, opts Options) {
	r.Get("/livez", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if opts.Ready != nil {
			if err := opts.Ready(req.Context()); err != nil {
				http.Error(w, "not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}
}
