package handler

import (
	"book-catalog/internal/domains/author/service"
	"book-catalog/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type AuthorHandler struct {
	service service.ServiceInterface
}

func NewAuthorHandler(s service.ServiceInterface) *AuthorHandler {
	return &AuthorHandler{service: s}
}

// ListAuthors godoc
// GET /api/authors
func (h *AuthorHandler) ListAuthors(c *gin.Context) {
	authors, err := h.service.ListAuthors(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, authors)
}
