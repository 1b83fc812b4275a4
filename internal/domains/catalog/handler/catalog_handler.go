package handler

import (
	"book-catalog/internal/domains/catalog/service"
	"book-catalog/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	service service.ServiceInterface
}

func NewCatalogHandler(s service.ServiceInterface) *CatalogHandler {
	return &CatalogHandler{service: s}
}

// ExportCatalog - GET /api/books/catalog?format=csv|xlsx
// Trả về 202 ngay; file được ghi bởi worker, theo dõi qua job_id.
func (h *CatalogHandler) ExportCatalog(c *gin.Context) {
	job, err := h.service.StartExport(c.Request.Context(), c.Query("format"))
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Accepted(c, job.Accepted())
}

// GetExportJob - GET /api/books/catalog/:job_id
func (h *CatalogHandler) GetExportJob(c *gin.Context) {
	job, err := h.service.GetJob(c.Request.Context(), c.Param("job_id"))
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, job)
}
