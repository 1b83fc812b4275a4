package handler

import (
	"errors"
	"io"

	"book-catalog/internal/domains/book/model"
	service "book-catalog/internal/domains/book/service"
	"book-catalog/internal/shared/apperror"
	"book-catalog/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Handler - HTTP handler của book
type Handler struct {
	service service.ServiceInterface
}

// NewHandler - Constructor with DI
func NewHandler(s service.ServiceInterface) *Handler {
	return &Handler{service: s}
}

// ListBooks - GET /api/books?page=&author=
func (h *Handler) ListBooks(c *gin.Context) {
	page, err := model.ParsePage(c.Query("page"))
	if err != nil {
		response.Fail(c, apperror.Validation("The page parameter must be an integer."))
		return
	}

	books, err := h.service.ListBooks(c.Request.Context(), page, c.Query("author"))
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, books)
}

// GetBook - GET /api/books/:id
func (h *Handler) GetBook(c *gin.Context) {
	id, err := model.ParseID(c.Param("id"))
	if err != nil {
		response.Fail(c, apperror.NotFound(err))
		return
	}

	book, err := h.service.GetBook(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, book)
}

// CreateBook - POST /api/books
func (h *Handler) CreateBook(c *gin.Context) {
	input, ok := bindFields(c)
	if !ok {
		return
	}

	created, err := h.service.CreateBook(c.Request.Context(), input)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Created(c, created)
}

// UpdateBook - PUT /api/books/:id
func (h *Handler) UpdateBook(c *gin.Context) {
	id, err := model.ParseID(c.Param("id"))
	if err != nil {
		response.Fail(c, apperror.NotFound(err))
		return
	}

	// body rỗng vẫn đi tiếp: service kiểm tra book tồn tại trước
	input, ok := bindFields(c)
	if !ok {
		return
	}

	book, err := h.service.UpdateBook(c.Request.Context(), id, input)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, book)
}

// DeleteBook - DELETE /api/books/:id
func (h *Handler) DeleteBook(c *gin.Context) {
	id, err := model.ParseID(c.Param("id"))
	if err != nil {
		response.Fail(c, apperror.NotFound(err))
		return
	}

	if err := h.service.DeleteBook(c.Request.Context(), id); err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, nil)
}

// bindFields đọc body JSON thành map. Body trống (kể cả chỉ whitespace) trả về map rỗng,
// body không phải object JSON -> MISSING_PARAMS.
func bindFields(c *gin.Context) (map[string]interface{}, bool) {
	input := map[string]interface{}{}
	if c.Request.ContentLength == 0 {
		return input, true
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		// body chunked rỗng hoặc chỉ có khoảng trắng
		if errors.Is(err, io.EOF) {
			return map[string]interface{}{}, true
		}
		log.Debug().Err(err).Str("path", c.FullPath()).Msg("[BookHandler] invalid JSON body")
		response.Fail(c, apperror.MissingParams())
		return nil, false
	}
	return input, true
}
