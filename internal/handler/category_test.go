package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carrotnotes/backend/internal/domain"
)

func TestListCategories(t *testing.T) {
	ts := newTestServer(nil, &mockCategoryServicer{
		list: func(_ context.Context, _ uuid.UUID) ([]string, error) {
			return []string{"errands", "Home", "Work"}, nil
		},
	}, nil)

	rec := ts.do(t, http.MethodGet, "/categories", "", true)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `["errands","Home","Work"]`, rec.Body.String())
}

func TestListCategories_Unauthenticated(t *testing.T) {
	ts := newTestServer(nil, nil, nil)

	rec := ts.do(t, http.MethodGet, "/categories", "", false)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAddCategories(t *testing.T) {
	var gotRaw string
	ts := newTestServer(nil, &mockCategoryServicer{
		add: func(_ context.Context, _ uuid.UUID, rawInput string) ([]string, error) {
			gotRaw = rawInput
			return []string{"Work", "Personal"}, nil
		},
	}, nil)

	rec := ts.do(t, http.MethodPost, "/categories", `{"names":"Work, Personal"}`, true)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Work, Personal", gotRaw, "raw input is split by the service, not the handler")
	assert.JSONEq(t, `["Work","Personal"]`, rec.Body.String())
}

func TestAddCategories_OverCap(t *testing.T) {
	ts := newTestServer(nil, &mockCategoryServicer{
		add: func(_ context.Context, _ uuid.UUID, _ string) ([]string, error) {
			return nil, fmt.Errorf("%w: you cannot add more than 7 categories", domain.ErrValidation)
		},
	}, nil)

	rec := ts.do(t, http.MethodPost, "/categories", `{"names":"one more"}`, true)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "validation_error", errorCode(t, rec))
	assert.Contains(t, rec.Body.String(), "you cannot add more than 7 categories")
}

func TestRenameCategory(t *testing.T) {
	var gotOld, gotNew string
	ts := newTestServer(nil, &mockCategoryServicer{
		rename: func(_ context.Context, _ uuid.UUID, oldName, candidate string) error {
			gotOld, gotNew = oldName, candidate
			return nil
		},
	}, nil)

	rec := ts.do(t, http.MethodPut, "/categories/Wrok", `{"new_name":"Work"}`, true)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "Wrok", gotOld)
	assert.Equal(t, "Work", gotNew)
}

func TestRenameCategory_Collision(t *testing.T) {
	ts := newTestServer(nil, &mockCategoryServicer{
		rename: func(_ context.Context, _ uuid.UUID, _, _ string) error {
			return fmt.Errorf("%w: a category with this name already exists", domain.ErrValidation)
		},
	}, nil)

	rec := ts.do(t, http.MethodPut, "/categories/Work", `{"new_name":"home"}`, true)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestRenameCategory_NotFound(t *testing.T) {
	ts := newTestServer(nil, &mockCategoryServicer{
		rename: func(_ context.Context, _ uuid.UUID, _, _ string) error {
			return domain.ErrNotFound
		},
	}, nil)

	rec := ts.do(t, http.MethodPut, "/categories/Ghost", `{"new_name":"Spirit"}`, true)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRemoveCategory(t *testing.T) {
	var gotName string
	ts := newTestServer(nil, &mockCategoryServicer{
		remove: func(_ context.Context, _ uuid.UUID, name string) error {
			gotName = name
			return nil
		},
	}, nil)

	rec := ts.do(t, http.MethodDelete, "/categories/Doomed", "", true)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "Doomed", gotName)
}

func TestRemoveCategory_NotFound(t *testing.T) {
	ts := newTestServer(nil, &mockCategoryServicer{
		remove: func(_ context.Context, _ uuid.UUID, _ string) error {
			return domain.ErrNotFound
		},
	}, nil)

	rec := ts.do(t, http.MethodDelete, "/categories/Ghost", "", true)

	require.Equal(t, http.StatusNotFound, rec.Code)
}
