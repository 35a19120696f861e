// Package handler implements the HTTP handlers for the notes API.
// All handlers are methods on Server; they are split into domain-specific
// files (auth.go, todo.go, category.go) but share the same Server struct so
// they can access its dependencies. Handlers decode/encode JSON and map
// domain errors to HTTP statuses — business rules live in the service layer.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/carrotnotes/backend/internal/domain"
	"github.com/carrotnotes/backend/internal/middleware"
)

// TodoServicer defines the business operations the todo handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TodoServicer interface {
	List(ctx context.Context, ownerID uuid.UUID) ([]domain.Todo, error)
	Create(ctx context.Context, ownerID uuid.UUID, text, category string) (domain.Todo, error)
	UpdateText(ctx context.Context, ownerID, id uuid.UUID, text string) error
	SetCompleted(ctx context.Context, ownerID, id uuid.UUID, completed bool) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

// CategoryServicer defines the business operations the category handlers
// depend on.
type CategoryServicer interface {
	List(ctx context.Context, ownerID uuid.UUID) ([]string, error)
	Add(ctx context.Context, ownerID uuid.UUID, rawInput string) ([]string, error)
	Rename(ctx context.Context, ownerID uuid.UUID, oldName, candidate string) error
	Remove(ctx context.Context, ownerID uuid.UUID, name string) error
}

// AuthServicer defines the account and session operations the auth handlers
// depend on.
type AuthServicer interface {
	Register(ctx context.Context, email, password string) (domain.User, error)
	Login(ctx context.Context, email, password string) (domain.Session, error)
	Logout(ctx context.Context, token uuid.UUID) error
	CurrentUser(ctx context.Context, token uuid.UUID) (uuid.UUID, error)
	ChangePassword(ctx context.Context, ownerID uuid.UUID, currentPassword, newPassword string) error
}

// Server holds the dependencies for all API endpoints.
type Server struct {
	todos      TodoServicer
	categories CategoryServicer
	auth       AuthServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(todos TodoServicer, categories CategoryServicer, auth AuthServicer) *Server {
	return &Server{todos: todos, categories: categories, auth: auth}
}

// Routes returns the API router. Auth endpoints are public; everything under
// the protected subtree requires a live bearer session, resolved by the auth
// middleware, which places the owner identity in the request context.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/health", s.Health)

	r.Post("/auth/register", s.Register)
	r.Post("/auth/login", s.Login)

	r.Group(func(r chi.Router) {
		r.Use(middleware.NewAuthHandler(s.auth))

		r.Post("/auth/logout", s.Logout)
		r.Put("/auth/password", s.ChangePassword)

		r.Get("/todos", s.ListTodos)
		r.Post("/todos", s.CreateTodo)
		r.Patch("/todos/{id}", s.PatchTodo)
		r.Delete("/todos/{id}", s.DeleteTodo)

		r.Get("/categories", s.ListCategories)
		r.Post("/categories", s.AddCategories)
		r.Put("/categories/{name}", s.RenameCategory)
		r.Delete("/categories/{name}", s.RemoveCategory)
	})

	return r
}

// Health handles GET /health. Liveness only — no dependency checks.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ownerFromContext returns the owner identity stored by the auth middleware.
// Handlers reached through the protected subtree can rely on it being set;
// the false branch only fires if a route is miswired, so it maps to 401.
func ownerFromContext(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	ownerID, ok := middleware.OwnerID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "a valid session token is required")
	}
	return ownerID, ok
}
