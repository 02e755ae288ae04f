package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pribylovaa/go-todo-api/internal/config"
	"github.com/pribylovaa/go-todo-api/internal/http/middleware"
	"github.com/pribylovaa/go-todo-api/internal/models"
	"github.com/pribylovaa/go-todo-api/internal/service"
	"github.com/pribylovaa/go-todo-api/internal/storage"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// memStore — in-memory storage.Storage с той же семантикой ошибок,
// что и Mongo-адаптер (ErrNotFound на битый id и чужую задачу).
type memStore struct {
	mu      sync.Mutex
	users   []*models.User
	todos   []*models.Todo
	pingErr error
}

var _ storage.Storage = (*memStore)(nil)

func (s *memStore) SaveUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ex := range s.users {
		if ex.Email == u.Email {
			return storage.ErrAlreadyExists
		}
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	cp := *u
	cp.Tokens = append([]models.Token{}, u.Tokens...)
	s.users = append(s.users, &cp)
	return nil
}

func (s *memStore) findUser(match func(*models.User) bool) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if match(u) {
			cp := *u
			cp.Tokens = append([]models.Token{}, u.Tokens...)
			return &cp, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *memStore) UserByEmail(_ context.Context, email string) (*models.User, error) {
	return s.findUser(func(u *models.User) bool { return u.Email == email })
}

func (s *memStore) UserByToken(_ context.Context, id primitive.ObjectID, purpose, value string) (*models.User, error) {
	return s.findUser(func(u *models.User) bool { return u.ID == id && u.HasToken(purpose, value) })
}

func (s *memStore) PushToken(_ context.Context, id primitive.ObjectID, t models.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.ID == id {
			u.Tokens = append(u.Tokens, t)
			return nil
		}
	}
	return storage.ErrNotFound
}

func (s *memStore) PullToken(_ context.Context, id primitive.ObjectID, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.ID == id {
			kept := u.Tokens[:0]
			for _, t := range u.Tokens {
				if t.Value != value {
					kept = append(kept, t)
				}
			}
			u.Tokens = kept
			return nil
		}
	}
	return storage.ErrNotFound
}

func (s *memStore) DeleteUser(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, u := range s.users {
		if u.ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return nil
		}
	}
	return storage.ErrNotFound
}

func (s *memStore) SaveTodo(_ context.Context, td *models.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if td.ID.IsZero() {
		td.ID = primitive.NewObjectID()
	}
	cp := *td
	s.todos = append(s.todos, &cp)
	return nil
}

func (s *memStore) TodosByOwner(_ context.Context, owner primitive.ObjectID) ([]models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Todo, 0)
	for _, td := range s.todos {
		if td.OwnerID == owner {
			out = append(out, *td)
		}
	}
	return out, nil
}

func (s *memStore) owned(owner primitive.ObjectID, id string) (int, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return -1, storage.ErrNotFound
	}
	for i, td := range s.todos {
		if td.ID == oid && td.OwnerID == owner {
			return i, nil
		}
	}
	return -1, storage.ErrNotFound
}

func (s *memStore) TodoByID(_ context.Context, owner primitive.ObjectID, id string) (*models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.owned(owner, id)
	if err != nil {
		return nil, err
	}
	cp := *s.todos[i]
	return &cp, nil
}

func (s *memStore) UpdateTodo(_ context.Context, owner primitive.ObjectID, id string, upd models.TodoUpdate) (*models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.owned(owner, id)
	if err != nil {
		return nil, err
	}
	td := s.todos[i]
	if upd.Text != nil {
		td.Text = *upd.Text
	}
	td.IsCompleted = upd.IsCompleted
	td.CompletedAt = upd.CompletedAt
	cp := *td
	return &cp, nil
}

func (s *memStore) DeleteTodo(_ context.Context, owner primitive.ObjectID, id string) (*models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.owned(owner, id)
	if err != nil {
		return nil, err
	}
	td := s.todos[i]
	s.todos = append(s.todos[:i], s.todos[i+1:]...)
	return td, nil
}

func (s *memStore) DeleteTodosByOwner(_ context.Context, owner primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.todos[:0]
	var n int64
	for _, td := range s.todos {
		if td.OwnerID == owner {
			n++
			continue
		}
		kept = append(kept, td)
	}
	s.todos = kept
	return n, nil
}

func (s *memStore) Ping(context.Context) error  { return s.pingErr }
func (s *memStore) Close(context.Context) error { return nil }

func (s *memStore) userTokens(t *testing.T, email string) []models.Token {
	t.Helper()
	u, err := s.UserByEmail(context.Background(), email)
	require.NoError(t, err)
	return u.Tokens
}

func (s *memStore) userCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

// --- харнесс ---

type testAPI struct {
	t     *testing.T
	srv   *httptest.Server
	store *memStore
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	store := &memStore{}
	svc := service.New(store, config.AuthConfig{
		JWTSecret:   "router-test-secret",
		TokenHeader: "x-auth",
		BcryptCost:  bcrypt.MinCost,
	})

	h := NewRouter(svc, Options{
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		Timeout:     5 * time.Second,
		TokenHeader: "x-auth",
		Metrics:     middleware.NewMetrics(),
		Ready:       store.Ping,
	})

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	return &testAPI{t: t, srv: srv, store: store}
}

type apiResp struct {
	status int
	header http.Header
	body   []byte
}

func (a *testAPI) do(method, path, token string, body any) apiResp {
	a.t.Helper()

	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(a.t, err)
		rd = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, a.srv.URL+path, rd)
	require.NoError(a.t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("x-auth", token)
	}

	res, err := a.srv.Client().Do(req)
	require.NoError(a.t, err)
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	require.NoError(a.t, err)

	return apiResp{status: res.StatusCode, header: res.Header, body: raw}
}

func (r apiResp) decode(t *testing.T, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.body, v), string(r.body))
}

type userJSON struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type todoJSON struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	IsCompleted bool   `json:"isCompleted"`
	CompletedAt *int64 `json:"completedAt"`
	OwnerID     string `json:"ownerId"`
}

type todoEnvelope struct {
	Todo todoJSON `json:"todo"`
}

type errEnvelope struct {
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id"`
	} `json:"error"`
}

// register регистрирует пользователя и возвращает токен и id.
func (a *testAPI) register(email, password string) (string, string) {
	a.t.Helper()

	res := a.do(http.MethodPost, "/users", "", map[string]string{"email": email, "password": password})
	require.Equal(a.t, http.StatusOK, res.status, string(res.body))

	var u userJSON
	res.decode(a.t, &u)
	return res.header.Get("x-auth"), u.ID
}

func (a *testAPI) createTodo(token, text string) todoJSON {
	a.t.Helper()

	res := a.do(http.MethodPost, "/todos", token, map[string]string{"text": text})
	require.Equal(a.t, http.StatusOK, res.status, string(res.body))

	var td todoJSON
	res.decode(a.t, &td)
	return td
}

// --- пользователи ---

func TestRegister_ReturnsPublicUserAndToken(t *testing.T) {
	api := newTestAPI(t)

	res := api.do(http.MethodPost, "/users", "", map[string]string{
		"email":    "  Alice@Example.COM ",
		"password": "secret1",
	})
	require.Equal(t, http.StatusOK, res.status, string(res.body))
	require.NotEmpty(t, res.header.Get("x-auth"))

	var raw map[string]any
	res.decode(t, &raw)
	require.Equal(t, "alice@example.com", raw["email"])
	require.NotEmpty(t, raw["id"])
	require.Len(t, raw, 2, "only id and email are public")

	body := string(res.body)
	require.NotContains(t, body, "secret1")
	require.NotContains(t, body, "$2a$")
	require.NotContains(t, body, res.header.Get("x-auth"))

	// Пользователь сохраняется сразу с одним токеном.
	require.Len(t, api.store.userTokens(t, "alice@example.com"), 1)
}

func TestRegister_DuplicateEmailCaseInsensitive(t *testing.T) {
	api := newTestAPI(t)
	api.register("bob@example.com", "secret1")

	res := api.do(http.MethodPost, "/users", "", map[string]string{"email": "BOB@Example.com", "password": "other12"})
	require.Equal(t, http.StatusBadRequest, res.status)
	require.Empty(t, res.header.Get("x-auth"))
	require.Equal(t, 1, api.store.userCount())
}

func TestRegister_InvalidInput(t *testing.T) {
	api := newTestAPI(t)

	bodies := []any{
		map[string]string{"email": "not-an-email", "password": "secret1"},
		map[string]string{"email": "c@example.com", "password": "12345"},
		map[string]string{"email": "c@example.com"},
		map[string]any{"email": 42, "password": "secret1"},
		"{broken",
		nil,
	}

	for _, b := range bodies {
		res := api.do(http.MethodPost, "/users", "", b)
		require.Equal(t, http.StatusBadRequest, res.status, "body=%v", b)

		var env errEnvelope
		res.decode(t, &env)
		require.NotEmpty(t, env.Error.Code)
		require.NotEmpty(t, env.Error.RequestID)
	}

	require.Equal(t, 0, api.store.userCount())
}

func TestLogin_AppendsExactlyOneToken(t *testing.T) {
	api := newTestAPI(t)
	first, _ := api.register("carol@example.com", "secret1")

	res := api.do(http.MethodPost, "/users/login", "", map[string]string{"email": "Carol@example.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, res.status, string(res.body))

	second := res.header.Get("x-auth")
	require.NotEmpty(t, second)
	require.NotEqual(t, first, second)

	var u userJSON
	res.decode(t, &u)
	require.Equal(t, "carol@example.com", u.Email)

	tokens := api.store.userTokens(t, "carol@example.com")
	require.Len(t, tokens, 2)
	require.Equal(t, second, tokens[1].Value)
}

// Неверный пароль и неизвестный email дают одинаковый ответ и не добавляют токенов.
func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	api := newTestAPI(t)
	api.register("dave@example.com", "secret1")

	wrongPW := api.do(http.MethodPost, "/users/login", "", map[string]string{"email": "dave@example.com", "password": "nope!!"})
	unknown := api.do(http.MethodPost, "/users/login", "", map[string]string{"email": "ghost@example.com", "password": "secret1"})

	require.Equal(t, http.StatusBadRequest, wrongPW.status)
	require.Equal(t, http.StatusBadRequest, unknown.status)
	require.Empty(t, wrongPW.header.Get("x-auth"))

	var e1, e2 errEnvelope
	wrongPW.decode(t, &e1)
	unknown.decode(t, &e2)
	require.Equal(t, e1.Error.Code, e2.Error.Code)
	require.Equal(t, e1.Error.Message, e2.Error.Message)

	require.Len(t, api.store.userTokens(t, "dave@example.com"), 1)
}

func TestCurrentUser(t *testing.T) {
	api := newTestAPI(t)
	tok, id := api.register("erin@example.com", "secret1")

	res := api.do(http.MethodGet, "/users/me", tok, nil)
	require.Equal(t, http.StatusOK, res.status)

	var out struct {
		User userJSON `json:"user"`
	}
	res.decode(t, &out)
	require.Equal(t, id, out.User.ID)
	require.Equal(t, "erin@example.com", out.User.Email)

	require.Equal(t, http.StatusUnauthorized, api.do(http.MethodGet, "/users/me", "", nil).status)
	require.Equal(t, http.StatusUnauthorized, api.do(http.MethodGet, "/users/me", "garbage", nil).status)
}

// Токен с правильными полями, но подписанный чужим секретом, не принимается.
func TestAuth_ForeignSecretRejected(t *testing.T) {
	api := newTestAPI(t)
	_, id := api.register("frank@example.com", "secret1")

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid":    id,
		"access": models.PurposeAuth,
	}).SignedString([]byte("attacker-secret"))
	require.NoError(t, err)

	require.Equal(t, http.StatusUnauthorized, api.do(http.MethodGet, "/users/me", forged, nil).status)
}

func TestLogout_RevokesOnlyPresentedToken(t *testing.T) {
	api := newTestAPI(t)
	tokA, _ := api.register("gina@example.com", "secret1")

	login := api.do(http.MethodPost, "/users/login", "", map[string]string{"email": "gina@example.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, login.status)
	tokB := login.header.Get("x-auth")

	res := api.do(http.MethodDelete, "/users/me/token", tokA, nil)
	require.Equal(t, http.StatusOK, res.status)
	require.Empty(t, res.body)

	require.Equal(t, http.StatusUnauthorized, api.do(http.MethodGet, "/users/me", tokA, nil).status)
	require.Equal(t, http.StatusUnauthorized, api.do(http.MethodGet, "/todos", tokA, nil).status)
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/users/me", tokB, nil).status)

	tokens := api.store.userTokens(t, "gina@example.com")
	require.Len(t, tokens, 1)
	require.Equal(t, tokB, tokens[0].Value)
}

func TestLogout_RequiresAuth(t *testing.T) {
	api := newTestAPI(t)
	require.Equal(t, http.StatusUnauthorized, api.do(http.MethodDelete, "/users/me/token", "", nil).status)
}

// --- задачи ---

func TestTodos_RequireAuth(t *testing.T) {
	api := newTestAPI(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/todos"},
		{http.MethodGet, "/todos"},
		{http.MethodGet, "/todos/" + primitive.NewObjectID().Hex()},
		{http.MethodPatch, "/todos/" + primitive.NewObjectID().Hex()},
		{http.MethodDelete, "/todos/" + primitive.NewObjectID().Hex()},
	} {
		res := api.do(tc.method, tc.path, "", nil)
		require.Equal(t, http.StatusUnauthorized, res.status, "%s %s", tc.method, tc.path)
	}
}

func TestTodos_ExampleFlow(t *testing.T) {
	api := newTestAPI(t)
	tokA, idA := api.register("a@example.com", "secret1")
	tokB, _ := api.register("b@example.com", "secret1")

	td := api.createTodo(tokA, "buy milk")
	require.Equal(t, "buy milk", td.Text)
	require.Equal(t, idA, td.OwnerID)
	require.False(t, td.IsCompleted)
	require.Nil(t, td.CompletedAt)

	before := time.Now().UnixMilli()
	res := api.do(http.MethodPatch, "/todos/"+td.ID, tokA, map[string]any{"isCompleted": true})
	require.Equal(t, http.StatusOK, res.status, string(res.body))

	var upd todoEnvelope
	res.decode(t, &upd)
	require.True(t, upd.Todo.IsCompleted)
	require.NotNil(t, upd.Todo.CompletedAt)
	require.GreaterOrEqual(t, *upd.Todo.CompletedAt, before)

	require.Equal(t, http.StatusNotFound, api.do(http.MethodGet, "/todos/"+td.ID, tokB, nil).status)
}

// Чужая задача неотличима от несуществующей.
func TestTodos_OwnershipMaskedAs404(t *testing.T) {
	api := newTestAPI(t)
	tokA, _ := api.register("a@example.com", "secret1")
	tokB, _ := api.register("b@example.com", "secret1")

	td := api.createTodo(tokA, "private")
	missing := primitive.NewObjectID().Hex()

	for _, path := range []string{"/todos/" + td.ID, "/todos/" + missing, "/todos/not-an-id"} {
		get := api.do(http.MethodGet, path, tokB, nil)
		patch := api.do(http.MethodPatch, path, tokB, map[string]any{"text": "hijack", "isCompleted": true})
		del := api.do(http.MethodDelete, path, tokB, nil)

		require.Equal(t, http.StatusNotFound, get.status, path)
		require.Equal(t, http.StatusNotFound, patch.status, path)
		require.Equal(t, http.StatusNotFound, del.status, path)

		var env errEnvelope
		get.decode(t, &env)
		require.Equal(t, "not_found", env.Error.Code)
	}

	// Задача A не изменилась.
	res := api.do(http.MethodGet, "/todos/"+td.ID, tokA, nil)
	require.Equal(t, http.StatusOK, res.status)

	var got todoEnvelope
	res.decode(t, &got)
	require.Equal(t, "private", got.Todo.Text)
	require.False(t, got.Todo.IsCompleted)
}

func TestTodos_CreateValidation(t *testing.T) {
	api := newTestAPI(t)
	tok, _ := api.register("a@example.com", "secret1")

	for _, b := range []any{
		map[string]string{"text": ""},
		map[string]string{"text": "   "},
		map[string]any{},
		map[string]any{"text": 7},
		nil,
	} {
		res := api.do(http.MethodPost, "/todos", tok, b)
		require.Equal(t, http.StatusBadRequest, res.status, "body=%v", b)
	}

	td := api.createTodo(tok, "  trimmed  ")
	require.Equal(t, "trimmed", td.Text)
}

// isCompleted: только JSON true завершает задачу; всё остальное сбрасывает
// статус, а переданный клиентом completedAt игнорируется.
func TestTodos_UpdateCompletionRule(t *testing.T) {
	api := newTestAPI(t)
	tok, idA := api.register("a@example.com", "secret1")
	td := api.createTodo(tok, "walk")

	patch := func(body any) todoJSON {
		t.Helper()
		res := api.do(http.MethodPatch, "/todos/"+td.ID, tok, body)
		require.Equal(t, http.StatusOK, res.status, string(res.body))
		var out todoEnvelope
		res.decode(t, &out)
		return out.Todo
	}

	done := patch(map[string]any{"isCompleted": true})
	require.True(t, done.IsCompleted)
	require.NotNil(t, done.CompletedAt)
	require.Positive(t, *done.CompletedAt)

	for _, body := range []any{
		map[string]any{"isCompleted": false, "completedAt": 12345},
		map[string]any{"completedAt": 12345},
		map[string]any{"isCompleted": "true"},
		map[string]any{"isCompleted": 1},
		map[string]any{},
	} {
		patch(map[string]any{"isCompleted": true})

		got := patch(body)
		require.False(t, got.IsCompleted, "body=%v", body)
		require.Nil(t, got.CompletedAt, "body=%v", body)
	}

	// Посторонние поля не применяются.
	got := patch(map[string]any{"text": "run", "ownerId": primitive.NewObjectID().Hex(), "id": "x"})
	require.Equal(t, "run", got.Text)
	require.Equal(t, idA, got.OwnerID)
	require.Equal(t, td.ID, got.ID)

	require.Equal(t, http.StatusBadRequest, api.do(http.MethodPatch, "/todos/"+td.ID, tok, map[string]any{"text": "  "}).status)
	require.Equal(t, http.StatusBadRequest, api.do(http.MethodPatch, "/todos/"+td.ID, tok, map[string]any{"text": 5}).status)
}

func TestTodos_ListAndDelete(t *testing.T) {
	api := newTestAPI(t)
	tokA, _ := api.register("a@example.com", "secret1")
	tokB, _ := api.register("b@example.com", "secret1")

	// Пустой список — [], не null.
	res := api.do(http.MethodGet, "/todos", tokA, nil)
	require.Equal(t, http.StatusOK, res.status)
	require.JSONEq(t, `{"todos":[]}`, string(res.body))

	first := api.createTodo(tokA, "first")
	second := api.createTodo(tokA, "second")
	api.createTodo(tokB, "foreign")

	res = api.do(http.MethodGet, "/todos", tokA, nil)
	var list struct {
		Todos []todoJSON `json:"todos"`
	}
	res.decode(t, &list)
	require.Len(t, list.Todos, 2)
	require.Equal(t, first.ID, list.Todos[0].ID)
	require.Equal(t, second.ID, list.Todos[1].ID)

	res = api.do(http.MethodDelete, "/todos/"+first.ID, tokA, nil)
	require.Equal(t, http.StatusOK, res.status)
	var del todoEnvelope
	res.decode(t, &del)
	require.Equal(t, first.ID, del.Todo.ID)
	require.Equal(t, "first", del.Todo.Text)

	require.Equal(t, http.StatusNotFound, api.do(http.MethodDelete, "/todos/"+first.ID, tokA, nil).status)
	require.Equal(t, http.StatusNotFound, api.do(http.MethodGet, "/todos/"+first.ID, tokA, nil).status)
}

// --- служебные эндпойнты ---

func TestOpsEndpoints(t *testing.T) {
	api := newTestAPI(t)

	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/livez", "", nil).status)
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/healthz", "", nil).status)

	api.store.mu.Lock()
	api.store.pingErr = errors.New("mongo down")
	api.store.mu.Unlock()
	require.Equal(t, http.StatusServiceUnavailable, api.do(http.MethodGet, "/healthz", "", nil).status)

	api.do(http.MethodGet, "/todos", "", nil)
	res := api.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, res.status)
	require.Contains(t, string(res.body), `route="/todos"`)
}

func TestSecurityHeadersAndRequestID(t *testing.T) {
	api := newTestAPI(t)

	res := api.do(http.MethodGet, "/users/me", "", nil)
	require.Equal(t, "nosniff", res.header.Get("X-Content-Type-Options"))
	require.NotEmpty(t, res.header.Get("X-Request-Id"))

	var env errEnvelope
	res.decode(t, &env)
	require.Equal(t, res.header.Get("X-Request-Id"), env.Error.RequestID)
}

// --- фикстуры ---

type seeded struct {
	tokens [2]string
	users  [2]primitive.ObjectID
	todos  [2]models.Todo
}

// seed создаёт двух пользователей и по одной задаче на каждого;
// вторая задача уже завершена (completedAt = 333).
func (a *testAPI) seed() seeded {
	a.t.Helper()

	var s seeded
	for i, email := range []string{"andrew@example.com", "jen@example.com"} {
		tok, id := a.register(email, "userOnePass")
		oid, err := primitive.ObjectIDFromHex(id)
		require.NoError(a.t, err)
		s.tokens[i], s.users[i] = tok, oid
	}

	done := int64(333)
	s.todos[0] = models.Todo{ID: primitive.NewObjectID(), Text: "First test todo", OwnerID: s.users[0]}
	s.todos[1] = models.Todo{ID: primitive.NewObjectID(), Text: "Second test todo", IsCompleted: true, CompletedAt: &done, OwnerID: s.users[1]}
	for i := range s.todos {
		require.NoError(a.t, a.store.SaveTodo(context.Background(), &s.todos[i]))
	}

	return s
}

func TestSeed_OwnersSeeOnlyTheirTodos(t *testing.T) {
	api := newTestAPI(t)
	s := api.seed()

	res := api.do(http.MethodGet, "/todos", s.tokens[0], nil)
	require.Equal(t, http.StatusOK, res.status)

	var list struct {
		Todos []todoJSON `json:"todos"`
	}
	res.decode(t, &list)
	require.Len(t, list.Todos, 1)
	require.Equal(t, s.todos[0].ID.Hex(), list.Todos[0].ID)
	require.False(t, list.Todos[0].IsCompleted)
	require.Nil(t, list.Todos[0].CompletedAt)

	res = api.do(http.MethodGet, "/todos/"+s.todos[1].ID.Hex(), s.tokens[1], nil)
	require.Equal(t, http.StatusOK, res.status)

	var env todoEnvelope
	res.decode(t, &env)
	require.True(t, env.Todo.IsCompleted)
	require.NotNil(t, env.Todo.CompletedAt)
	require.Equal(t, int64(333), *env.Todo.CompletedAt)
	require.Equal(t, s.users[1].Hex(), env.Todo.OwnerID)

	// Чужая задача выглядит как отсутствующая.
	res = api.do(http.MethodGet, "/todos/"+s.todos[1].ID.Hex(), s.tokens[0], nil)
	require.Equal(t, http.StatusNotFound, res.status)
}
