package response

import (
	"net/http"

	"book-catalog/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Code là mã nghiệp vụ trả về trong envelope (khác với HTTP status)
type Code int

const (
	CodeSuccess        Code = 1000
	CodeCreated        Code = 1001
	CodeSystemError    Code = 1400
	CodeNotFound       Code = 1404
	CodeMissingParams  Code = 1405
	CodeValidationFail Code = 1406
)

var codeMessages = map[Code]string{
	CodeSuccess:        "Success",
	CodeCreated:        "Created",
	CodeSystemError:    "Internal system error",
	CodeNotFound:       "Content not found",
	CodeMissingParams:  "Missing query params",
	CodeValidationFail: "Invalid param",
}

func (c Code) Message() string {
	if msg, ok := codeMessages[c]; ok {
		return msg
	}
	return codeMessages[CodeSystemError]
}

// Response is the success envelope. Data is omitted when nil.
type Response struct {
	Code    Code        `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse is the failure envelope.
type ErrorResponse struct {
	ErrorCode    Code   `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}

func Success(c *gin.Context, statusCode int, code Code, data interface{}) {
	c.JSON(statusCode, Response{
		Code:    code,
		Message: code.Message(),
		Data:    data,
	})
}

func OK(c *gin.Context, data interface{}) {
	Success(c, http.StatusOK, CodeSuccess, data)
}

func Created(c *gin.Context, data interface{}) {
	Success(c, http.StatusCreated, CodeCreated, data)
}

func Accepted(c *gin.Context, data interface{}) {
	Success(c, http.StatusAccepted, CodeCreated, data)
}

func Error(c *gin.Context, statusCode int, code Code, message string) {
	if message == "" {
		message = code.Message()
	}
	c.JSON(statusCode, ErrorResponse{
		ErrorCode:    code,
		ErrorMessage: message,
	})
}

// Fail maps any error returned by a service to its envelope and HTTP status.
func Fail(c *gin.Context, err error) {
	appErr := apperror.From(err)
	status, code := Classify(appErr.Kind)

	message := ""
	switch appErr.Kind {
	case apperror.KindValidation, apperror.KindRateLimited:
		message = appErr.Message
	case apperror.KindSystem:
		log.Error().
			Err(err).
			Str("request_id", c.GetString("request_id")).
			Str("path", c.Request.URL.Path).
			Msg("Request failed with system error")
	}

	Error(c, status, code, message)
}

// Classify trả về HTTP status và response code cho một Kind
func Classify(kind apperror.Kind) (int, Code) {
	switch kind {
	case apperror.KindNotFound:
		return http.StatusNotFound, CodeNotFound
	case apperror.KindMissingParams:
		return http.StatusNotAcceptable, CodeMissingParams
	case apperror.KindValidation:
		return http.StatusNotAcceptable, CodeValidationFail
	case apperror.KindRateLimited:
		return http.StatusTooManyRequests, CodeSystemError
	default:
		return http.StatusInternalServerError, CodeSystemError
	}
}
