package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"book-catalog/internal/domains/author/model"
	"book-catalog/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	authors []model.Author
	err     error
}

func (s stubService) ListAuthors(ctx context.Context) ([]model.Author, error) {
	return s.authors, s.err
}

func (s stubService) ResolveByName(ctx context.Context, name string, allowCreate bool) (*model.Author, error) {
	return nil, model.ErrAuthorNotFound
}

func listAuthors(t *testing.T, svc stubService) (int, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/authors", NewAuthorHandler(svc).ListAuthors)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/authors", nil))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestListAuthors(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	code, body := listAuthors(t, stubService{authors: []model.Author{{ID: 1, Name: "Frank Herbert", CreatedAt: created}}})

	assert.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1000, body["code"])
	data := body["data"].([]interface{})
	require.Len(t, data, 1)
	first := data[0].(map[string]interface{})
	assert.Equal(t, "Frank Herbert", first["name"])
	assert.Equal(t, "2024-01-02T03:04:05Z", first["created_at"])
}

func TestListAuthorsFailure(t *testing.T) {
	code, body := listAuthors(t, stubService{err: apperror.System(errors.New("db down"))})

	assert.Equal(t, http.StatusInternalServerError, code)
	assert.EqualValues(t, 1400, body["error_code"])
}
