package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"book-catalog/internal/domains/catalog/model"
	"book-catalog/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) CreateJob(ctx context.Context, jobID, format string) (*model.ExportJob, bool, error) {
	args := m.Called(ctx, jobID, format)
	j, _ := args.Get(0).(*model.ExportJob)
	return j, args.Bool(1), args.Error(2)
}

func (m *mockService) StartExport(ctx context.Context, format string) (*model.ExportJob, error) {
	args := m.Called(ctx, format)
	j, _ := args.Get(0).(*model.ExportJob)
	return j, args.Error(1)
}

func (m *mockService) GetJob(ctx context.Context, id string) (*model.ExportJob, error) {
	args := m.Called(ctx, id)
	j, _ := args.Get(0).(*model.ExportJob)
	return j, args.Error(1)
}

func (m *mockService) RunExport(ctx context.Context, jobID string) error {
	return m.Called(ctx, jobID).Error(0)
}

func setup(svc *mockService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewCatalogHandler(svc)
	r := gin.New()
	r.GET("/api/books/catalog", h.ExportCatalog)
	r.GET("/api/books/catalog/:job_id", h.GetExportJob)
	return r
}

func get(r http.Handler, target string) (*httptest.ResponseRecorder, map[string]interface{}) {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	var body map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestExportCatalog(t *testing.T) {
	svc := new(mockService)
	svc.On("StartExport", mock.Anything, "xlsx").Return(&model.ExportJob{
		ID:      "j1",
		Status:  model.StatusPending,
		Format:  model.FormatXLSX,
		FileURL: "/catalog/books_catalog_20240101000000.xlsx",
	}, nil)

	w, body := get(setup(svc), "/api/books/catalog?format=xlsx")

	require.Equal(t, http.StatusAccepted, w.Code)
	assert.EqualValues(t, 1001, body["code"])
	assert.Equal(t, "Created", body["message"])
	assert.Equal(t, map[string]interface{}{
		"job_id":   "j1",
		"status":   "pending",
		"file_url": "/catalog/books_catalog_20240101000000.xlsx",
	}, body["data"])
}

func TestExportCatalogBadFormat(t *testing.T) {
	svc := new(mockService)
	svc.On("StartExport", mock.Anything, "pdf").
		Return(nil, apperror.Validation("The format parameter must be one of: csv, xlsx."))

	w, body := get(setup(svc), "/api/books/catalog?format=pdf")

	assert.Equal(t, http.StatusNotAcceptable, w.Code)
	assert.EqualValues(t, 1406, body["error_code"])
}

func TestGetExportJob(t *testing.T) {
	svc := new(mockService)
	svc.On("GetJob", mock.Anything, "j1").Return(&model.ExportJob{ID: "j1", Status: model.StatusCompleted, Rows: 42}, nil)
	svc.On("GetJob", mock.Anything, "nope").Return(nil, apperror.NotFound(model.ErrJobNotFound))
	r := setup(svc)

	w, body := get(r, "/api/books/catalog/j1")
	require.Equal(t, http.StatusOK, w.Code)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "completed", data["status"])
	assert.EqualValues(t, 42, data["rows"])

	w, body = get(r, "/api/books/catalog/nope")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.EqualValues(t, 1404, body["error_code"])
}
