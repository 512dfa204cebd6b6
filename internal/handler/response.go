package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/jwalitptl/opd-booking/pkg/errors"
)

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

// NewAckResponse carries the blocking acknowledgment message every
// command surfaces, plus optional data.
func NewAckResponse(message string, data interface{}) *Response {
	return &Response{
		Status:  "success",
		Message: message,
		Data:    data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

// RespondError maps an application error onto its HTTP status and writes
// the error acknowledgment.
func RespondError(c *gin.Context, err error) {
	c.JSON(statusOf(err), NewErrorResponse(err.Error()))
}

func statusOf(err error) int {
	switch apperrors.CodeOf(err) {
	case apperrors.ErrNotFound:
		return http.StatusNotFound
	case apperrors.ErrInvalidCredential, apperrors.ErrUnauthorized:
		return http.StatusUnauthorized
	case apperrors.ErrValidation, apperrors.ErrMissingSelection:
		return http.StatusBadRequest
	case apperrors.ErrConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
