package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"book-catalog/internal/domains/book/model"
	"book-catalog/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) ListBooks(ctx context.Context, page int, author string) ([]model.BookResponse, error) {
	args := m.Called(ctx, page, author)
	b, _ := args.Get(0).([]model.BookResponse)
	return b, args.Error(1)
}

func (m *mockService) GetBook(ctx context.Context, id int64) (*model.BookResponse, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*model.BookResponse)
	return b, args.Error(1)
}

func (m *mockService) CreateBook(ctx context.Context, input map[string]interface{}) (*model.CreatedResponse, error) {
	args := m.Called(ctx, input)
	r, _ := args.Get(0).(*model.CreatedResponse)
	return r, args.Error(1)
}

func (m *mockService) UpdateBook(ctx context.Context, id int64, input map[string]interface{}) (*model.BookResponse, error) {
	args := m.Called(ctx, id, input)
	b, _ := args.Get(0).(*model.BookResponse)
	return b, args.Error(1)
}

func (m *mockService) DeleteBook(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func setupRouter(svc *mockService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(svc)
	r := gin.New()
	r.GET("/api/books", h.ListBooks)
	r.GET("/api/books/:id", h.GetBook)
	r.POST("/api/books", h.CreateBook)
	r.PUT("/api/books/:id", h.UpdateBook)
	r.DELETE("/api/books/:id", h.DeleteBook)
	return r
}

func doRequest(r http.Handler, method, target, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var payload map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &payload)
	return w, payload
}

func TestListBooksHandler(t *testing.T) {
	t.Run("passes page and author", func(t *testing.T) {
		svc := new(mockService)
		svc.On("ListBooks", mock.Anything, 2, "Frank Herbert").
			Return([]model.BookResponse{{ID: 1, Title: "Dune", Author: "Frank Herbert", Price: 9.99}}, nil)

		w, body := doRequest(setupRouter(svc), http.MethodGet, "/api/books?page=2&author=Frank+Herbert", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.EqualValues(t, 1000, body["code"])
		assert.Equal(t, "Success", body["message"])
		assert.Len(t, body["data"], 1)
	})

	t.Run("non integer page", func(t *testing.T) {
		svc := new(mockService)
		w, body := doRequest(setupRouter(svc), http.MethodGet, "/api/books?page=abc", "")

		assert.Equal(t, http.StatusNotAcceptable, w.Code)
		assert.EqualValues(t, 1406, body["error_code"])
		svc.AssertNotCalled(t, "ListBooks", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("empty page", func(t *testing.T) {
		svc := new(mockService)
		svc.On("ListBooks", mock.Anything, 50, "").Return(nil, apperror.NotFound(nil))

		w, body := doRequest(setupRouter(svc), http.MethodGet, "/api/books?page=50", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.EqualValues(t, 1404, body["error_code"])
		assert.Equal(t, "Content not found", body["error_message"])
	})
}

func TestGetBookHandler(t *testing.T) {
	t.Run("invalid id is not found", func(t *testing.T) {
		svc := new(mockService)
		w, body := doRequest(setupRouter(svc), http.MethodGet, "/api/books/abc", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.EqualValues(t, 1404, body["error_code"])
	})

	t.Run("system error", func(t *testing.T) {
		svc := new(mockService)
		svc.On("GetBook", mock.Anything, int64(3)).Return(nil, apperror.System(errors.New("conn reset")))

		w, body := doRequest(setupRouter(svc), http.MethodGet, "/api/books/3", "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.EqualValues(t, 1400, body["error_code"])
		assert.Equal(t, "Internal system error", body["error_message"])
	})
}

func TestCreateThenGetScenario(t *testing.T) {
	svc := new(mockService)
	svc.On("CreateBook", mock.Anything, map[string]interface{}{
		"title": "Dune", "price": 12.5, "author_name": "Frank Herbert",
	}).Return(&model.CreatedResponse{ID: 42}, nil)
	svc.On("GetBook", mock.Anything, int64(42)).
		Return(&model.BookResponse{ID: 42, Title: "Dune", Author: "Frank Herbert", Price: 12.5}, nil)
	r := setupRouter(svc)

	w, body := doRequest(r, http.MethodPost, "/api/books", `{"title":"Dune","price":12.5,"author_name":"Frank Herbert"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.EqualValues(t, 1001, body["code"])
	assert.Equal(t, "Created", body["message"])
	assert.Equal(t, map[string]interface{}{"id": float64(42)}, body["data"])

	w, body = doRequest(r, http.MethodGet, "/api/books/42", "")
	require.Equal(t, http.StatusOK, w.Code)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "Dune", data["title"])
	assert.Equal(t, "Frank Herbert", data["author"])
	assert.Equal(t, 12.5, data["price"])
	assert.Contains(t, data, "description")
	assert.Nil(t, data["description"])
}

func TestCreateBookHandler(t *testing.T) {
	t.Run("malformed body", func(t *testing.T) {
		svc := new(mockService)
		for _, body := range []string{`[1,2]`, `{"title":`} {
			w, payload := doRequest(setupRouter(svc), http.MethodPost, "/api/books", body)
			assert.Equal(t, http.StatusNotAcceptable, w.Code)
			assert.EqualValues(t, 1405, payload["error_code"])
			assert.Equal(t, "Missing query params", payload["error_message"])
		}
		svc.AssertNotCalled(t, "CreateBook", mock.Anything, mock.Anything)
	})

	t.Run("validation message surfaces", func(t *testing.T) {
		svc := new(mockService)
		svc.On("CreateBook", mock.Anything, mock.Anything).
			Return(nil, apperror.Validation("The price parameter must be greater than or equal to 0."))

		w, body := doRequest(setupRouter(svc), http.MethodPost, "/api/books", `{"title":"X","price":-1,"author_name":"A"}`)

		assert.Equal(t, http.StatusNotAcceptable, w.Code)
		assert.EqualValues(t, 1406, body["error_code"])
		assert.Equal(t, "The price parameter must be greater than or equal to 0.", body["error_message"])
	})
}

func TestUpdateBookHandler(t *testing.T) {
	t.Run("empty body reaches service", func(t *testing.T) {
		svc := new(mockService)
		svc.On("UpdateBook", mock.Anything, int64(9), map[string]interface{}{}).
			Return(nil, apperror.NotFound(model.ErrBookNotFound))

		w, _ := doRequest(setupRouter(svc), http.MethodPut, "/api/books/9", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("blank or chunked empty body reaches service", func(t *testing.T) {
		bodies := map[string]func() *http.Request{
			"whitespace": func() *http.Request {
				return httptest.NewRequest(http.MethodPut, "/api/books/9", strings.NewReader(" \n\t"))
			},
			"chunked": func() *http.Request {
				// reader không rõ độ dài -> ContentLength = -1
				return httptest.NewRequest(http.MethodPut, "/api/books/9", io.NopCloser(strings.NewReader("")))
			},
		}
		for name, newReq := range bodies {
			t.Run(name, func(t *testing.T) {
				svc := new(mockService)
				svc.On("UpdateBook", mock.Anything, int64(9), map[string]interface{}{}).
					Return(nil, apperror.NotFound(model.ErrBookNotFound))

				req := newReq()
				req.Header.Set("Content-Type", "application/json")
				w := httptest.NewRecorder()
				setupRouter(svc).ServeHTTP(w, req)

				assert.Equal(t, http.StatusNotFound, w.Code)
				svc.AssertExpectations(t)
			})
		}
	})

	t.Run("returns projection", func(t *testing.T) {
		svc := new(mockService)
		svc.On("UpdateBook", mock.Anything, int64(1), map[string]interface{}{"price": 20.0}).
			Return(&model.BookResponse{ID: 1, Title: "Dune", Author: "Frank Herbert", Price: 20}, nil)

		w, body := doRequest(setupRouter(svc), http.MethodPut, "/api/books/1", `{"price":20}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.EqualValues(t, 20, body["data"].(map[string]interface{})["price"])
	})
}

func TestDeleteBookHandler(t *testing.T) {
	svc := new(mockService)
	svc.On("DeleteBook", mock.Anything, int64(1)).Return(nil).Once()
	svc.On("DeleteBook", mock.Anything, int64(1)).Return(apperror.NotFound(model.ErrBookNotFound)).Once()
	r := setupRouter(svc)

	w, body := doRequest(r, http.MethodDelete, "/api/books/1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1000, body["code"])
	assert.NotContains(t, body, "data")

	w, body = doRequest(r, http.MethodDelete, "/api/books/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.EqualValues(t, 1404, body["error_code"])

	w, _ = doRequest(r, http.MethodDelete, "/api/books/0", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
