package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// addCategoriesRequest is the body of POST /categories. Names is the raw
// comma-separated input from the settings screen ("Work, Personal, Shopping");
// splitting and trimming happen in the service.
type addCategoriesRequest struct {
	Names string `json:"names"`
}

// renameCategoryRequest is the body of PUT /categories/{name}.
type renameCategoryRequest struct {
	NewName string `json:"new_name"`
}

// ListCategories handles GET /categories.
func (s *Server) ListCategories(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromContext(w, r)
	if !ok {
		return
	}

	names, err := s.categories.List(r.Context(), ownerID)
	if err != nil {
		writeDomainError(w, err, "categories")
		return
	}
	writeJSON(w, http.StatusOK, names)
}

// AddCategories handles POST /categories. Responds with the names actually
// inserted, so the client can append exactly those to its local list.
func (s *Server) AddCategories(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromContext(w, r)
	if !ok {
		return
	}

	var req addCategoriesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}

	added, err := s.categories.Add(r.Context(), ownerID, req.Names)
	if err != nil {
		writeDomainError(w, err, "categories")
		return
	}
	writeJSON(w, http.StatusCreated, added)
}

// RenameCategory handles PUT /categories/{name}.
func (s *Server) RenameCategory(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromContext(w, r)
	if !ok {
		return
	}
	oldName := chi.URLParam(r, "name")

	var req renameCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}

	if err := s.categories.Rename(r.Context(), ownerID, oldName, req.NewName); err != nil {
		writeDomainError(w, err, "category")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RemoveCategory handles DELETE /categories/{name}. Todos tagged with the
// category are left untouched.
func (s *Server) RemoveCategory(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromContext(w, r)
	if !ok {
		return
	}

	if err := s.categories.Remove(r.Context(), ownerID, chi.URLParam(r, "name")); err != nil {
		writeDomainError(w, err, "category")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
