package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/carrotnotes/backend/internal/domain"
)

// createTodoRequest is the body of POST /todos.
type createTodoRequest struct {
	Todo     string `json:"todo"`
	Category string `json:"category"`
}

// patchTodoRequest is the body of PATCH /todos/{id}. Fields are pointers so
// "update the text" and "toggle completion" are distinct partial updates, the
// way the detail screen issues them.
type patchTodoRequest struct {
	Todo      *string `json:"todo"`
	Completed *bool   `json:"completed"`
}

// ListTodos handles GET /todos. The optional ?category= query parameter
// filters server-side; without it the full newest-first list is returned.
func (s *Server) ListTodos(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromContext(w, r)
	if !ok {
		return
	}

	todos, err := s.todos.List(r.Context(), ownerID)
	if err != nil {
		writeDomainError(w, err, "todos")
		return
	}

	if category := r.URL.Query().Get("category"); category != "" {
		filtered := []domain.Todo{}
		for _, t := range todos {
			if t.Category == category {
				filtered = append(filtered, t)
			}
		}
		todos = filtered
	}

	writeJSON(w, http.StatusOK, todos)
}

// CreateTodo handles POST /todos.
func (s *Server) CreateTodo(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromContext(w, r)
	if !ok {
		return
	}

	var req createTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}

	todo, err := s.todos.Create(r.Context(), ownerID, req.Todo, req.Category)
	if err != nil {
		writeDomainError(w, err, "todo")
		return
	}
	writeJSON(w, http.StatusCreated, todo)
}

// PatchTodo handles PATCH /todos/{id}: partial-field update of text and/or
// the completion flag.
func (s *Server) PatchTodo(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromContext(w, r)
	if !ok {
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid todo id")
		return
	}

	var req patchTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}
	if req.Todo == nil && req.Completed == nil {
		writeError(w, http.StatusBadRequest, "bad_request", "nothing to update")
		return
	}

	if req.Todo != nil {
		if err := s.todos.UpdateText(r.Context(), ownerID, id, *req.Todo); err != nil {
			writeDomainError(w, err, "todo")
			return
		}
	}
	if req.Completed != nil {
		if err := s.todos.SetCompleted(r.Context(), ownerID, id, *req.Completed); err != nil {
			writeDomainError(w, err, "todo")
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteTodo handles DELETE /todos/{id}.
func (s *Server) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromContext(w, r)
	if !ok {
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid todo id")
		return
	}

	if err := s.todos.Delete(r.Context(), ownerID, id); err != nil {
		writeDomainError(w, err, "todo")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
