package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/carrotnotes/backend/internal/domain"
	"github.com/carrotnotes/backend/internal/handler"
)

// ---- mock servicers --------------------------------------------------------

type mockTodoServicer struct {
	list         func(ctx context.Context, ownerID uuid.UUID) ([]domain.Todo, error)
	create       func(ctx context.Context, ownerID uuid.UUID, text, category string) (domain.Todo, error)
	updateText   func(ctx context.Context, ownerID, id uuid.UUID, text string) error
	setCompleted func(ctx context.Context, ownerID, id uuid.UUID, completed bool) error
	delete       func(ctx context.Context, ownerID, id uuid.UUID) error
}

func (m *mockTodoServicer) List(ctx context.Context, ownerID uuid.UUID) ([]domain.Todo, error) {
	return m.list(ctx, ownerID)
}
func (m *mockTodoServicer) Create(ctx context.Context, ownerID uuid.UUID, text, category string) (domain.Todo, error) {
	return m.create(ctx, ownerID, text, category)
}
func (m *mockTodoServicer) UpdateText(ctx context.Context, ownerID, id uuid.UUID, text string) error {
	return m.updateText(ctx, ownerID, id, text)
}
func (m *mockTodoServicer) SetCompleted(ctx context.Context, ownerID, id uuid.UUID, completed bool) error {
	return m.setCompleted(ctx, ownerID, id, completed)
}
func (m *mockTodoServicer) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return m.delete(ctx, ownerID, id)
}

type mockCategoryServicer struct {
	list   func(ctx context.Context, ownerID uuid.UUID) ([]string, error)
	add    func(ctx context.Context, ownerID uuid.UUID, rawInput string) ([]string, error)
	rename func(ctx context.Context, ownerID uuid.UUID, oldName, candidate string) error
	remove func(ctx context.Context, ownerID uuid.UUID, name string) error
}

func (m *mockCategoryServicer) List(ctx context.Context, ownerID uuid.UUID) ([]string, error) {
	return m.list(ctx, ownerID)
}
func (m *mockCategoryServicer) Add(ctx context.Context, ownerID uuid.UUID, rawInput string) ([]string, error) {
	return m.add(ctx, ownerID, rawInput)
}
func (m *mockCategoryServicer) Rename(ctx context.Context, ownerID uuid.UUID, oldName, candidate string) error {
	return m.rename(ctx, ownerID, oldName, candidate)
}
func (m *mockCategoryServicer) Remove(ctx context.Context, ownerID uuid.UUID, name string) error {
	return m.remove(ctx, ownerID, name)
}

type mockAuthServicer struct {
	register       func(ctx context.Context, email, password string) (domain.User, error)
	login          func(ctx context.Context, email, password string) (domain.Session, error)
	logout         func(ctx context.Context, token uuid.UUID) error
	currentUser    func(ctx context.Context, token uuid.UUID) (uuid.UUID, error)
	changePassword func(ctx context.Context, ownerID uuid.UUID, currentPassword, newPassword string) error
}

func (m *mockAuthServicer) Register(ctx context.Context, email, password string) (domain.User, error) {
	return m.register(ctx, email, password)
}
func (m *mockAuthServicer) Login(ctx context.Context, email, password string) (domain.Session, error) {
	return m.login(ctx, email, password)
}
func (m *mockAuthServicer) Logout(ctx context.Context, token uuid.UUID) error {
	return m.logout(ctx, token)
}
func (m *mockAuthServicer) CurrentUser(ctx context.Context, token uuid.UUID) (uuid.UUID, error) {
	return m.currentUser(ctx, token)
}
func (m *mockAuthServicer) ChangePassword(ctx context.Context, ownerID uuid.UUID, currentPassword, newPassword string) error {
	return m.changePassword(ctx, ownerID, currentPassword, newPassword)
}

// compile-time checks
var (
	_ handler.TodoServicer     = (*mockTodoServicer)(nil)
	_ handler.CategoryServicer = (*mockCategoryServicer)(nil)
	_ handler.AuthServicer     = (*mockAuthServicer)(nil)
)

// ---- test fixture ----------------------------------------------------------

// testServer bundles the router with the owner identity and token its auth
// mock resolves, so tests can issue authenticated requests.
type testServer struct {
	handler http.Handler
	ownerID uuid.UUID
	token   uuid.UUID
}

// newTestServer wires a Server around the given mocks. The auth mock's
// CurrentUser accepts exactly one token and maps it to one owner, standing in
// for the session lookup.
func newTestServer(todos *mockTodoServicer, categories *mockCategoryServicer, auth *mockAuthServicer) *testServer {
	ts := &testServer{
		ownerID: uuid.New(),
		token:   uuid.New(),
	}
	if auth == nil {
		auth = &mockAuthServicer{}
	}
	if auth.currentUser == nil {
		auth.currentUser = func(_ context.Context, token uuid.UUID) (uuid.UUID, error) {
			if token != ts.token {
				return uuid.Nil, domain.ErrUnauthorized
			}
			return ts.ownerID, nil
		}
	}
	if todos == nil {
		todos = &mockTodoServicer{}
	}
	if categories == nil {
		categories = &mockCategoryServicer{}
	}
	ts.handler = handler.NewServer(todos, categories, auth).Routes()
	return ts
}

// do executes a request against the router and returns the recorder.
func (ts *testServer) do(t *testing.T, method, target, body string, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+ts.token.String())
	}
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

// decodeBody unmarshals a JSON response body into v.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

// errorCode extracts error.code from a non-2xx response body.
func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	decodeBody(t, rec, &body)
	return body.Error.Code
}
