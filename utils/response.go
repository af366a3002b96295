// File: /utils/response.go
package utils

import (
	"net/http"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationErrorResponse struct {
	Error  string       `json:"error"`
	Code   int          `json:"code"`
	Errors []FieldError `json:"errors"`
}

type DataResponse struct {
	Data interface{} `json:"data"`
}

type PaginationMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
}

type PaginatedResponse struct {
	Data       interface{}    `json:"data"`
	Pagination PaginationMeta `json:"pagination"`
}

// NewPaginationMeta computes the bare ceiling, so zero results yield zero
// pages. Clients rely on page < totalPages to decide whether more exist.
func NewPaginationMeta(page, pageSize int, total int64) PaginationMeta {
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return PaginationMeta{
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

func SendError(c *gin.Context, status int, err string) {
	c.JSON(status, ErrorResponse{
		Error: err,
		Code:  status,
	})
}

// SendServerError reports an upstream failure. The underlying detail is only
// exposed outside release mode.
func SendServerError(c *gin.Context, msg string, err error) {
	resp := ErrorResponse{
		Error: msg,
		Code:  http.StatusInternalServerError,
	}
	if gin.Mode() != gin.ReleaseMode && err != nil {
		resp.Message = err.Error()
	}
	c.JSON(http.StatusInternalServerError, resp)
}

func SendData(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, DataResponse{Data: data})
}

func SendPaginated(c *gin.Context, data interface{}, page, pageSize int, total int64) {
	c.JSON(http.StatusOK, PaginatedResponse{
		Data:       data,
		Pagination: NewPaginationMeta(page, pageSize, total),
	})
}

func SendFieldErrors(c *gin.Context, errs []FieldError) {
	c.JSON(http.StatusBadRequest, ValidationErrorResponse{
		Error:  "Validation failed",
		Code:   http.StatusBadRequest,
		Errors: errs,
	})
}

// FieldErrorsFromBinding maps a gin binding failure onto field-level errors.
// Non-validator errors (malformed JSON) come back as a single body error.
func FieldErrorsFromBinding(err error) []FieldError {
	var validationErrs validator.ValidationErrors
	if !asValidationErrors(err, &validationErrs) {
		return []FieldError{{Field: "body", Message: "invalid request body"}}
	}

	errs := make([]FieldError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		errs = append(errs, FieldError{
			Field:   lowerFirst(fe.Field()),
			Message: messageForTag(fe),
		})
	}
	return errs
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	ve, ok := err.(validator.ValidationErrors)
	if ok {
		*target = ve
	}
	return ok
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "url":
		return "must be a valid URL"
	case "min":
		return "is too short"
	case "max":
		return "is too long"
	default:
		return "is invalid"
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
