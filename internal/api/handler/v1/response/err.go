package response

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Err struct {
	Err        error  `json:"-"`
	StatusCode int    `json:"-"`
	StatusText string `json:"status"`
	Message    string `json:"message"`
}

// RenderErr writes the error payload and aborts the handler chain. Server
// faults are logged with the wrapped cause; client errors are not.
func RenderErr(ctx *gin.Context, err *Err) {
	if err.StatusCode >= http.StatusInternalServerError {
		zap.L().Error("server error", zap.Error(err.Err))
	}

	ctx.AbortWithStatusJSON(err.StatusCode, err)
}

func ErrBadRequest(err error) *Err {
	return &Err{
		Err:        err,
		StatusCode: http.StatusBadRequest,
		StatusText: http.StatusText(http.StatusBadRequest),
		Message:    err.Error(),
	}
}

func ErrNotFound(resource, key string, value interface{}) *Err {
	return &Err{
		StatusCode: http.StatusNotFound,
		StatusText: http.StatusText(http.StatusNotFound),
		Message:    fmt.Sprintf("%v with %v (%v) not found", resource, key, value),
	}
}

// ErrNotFoundErr is for lookups where the missing resource is not keyed
// by a single path parameter; the error's own message is rendered as-is.
func ErrNotFoundErr(err error) *Err {
	return &Err{
		Err:        err,
		StatusCode: http.StatusNotFound,
		StatusText: http.StatusText(http.StatusNotFound),
		Message:    err.Error(),
	}
}

func ErrConflict(err error) *Err {
	return &Err{
		Err:        err,
		StatusCode: http.StatusConflict,
		StatusText: http.StatusText(http.StatusConflict),
		Message:    err.Error(),
	}
}

func ErrUnprocessable(err error) *Err {
	return &Err{
		Err:        err,
		StatusCode: http.StatusUnprocessableEntity,
		StatusText: http.StatusText(http.StatusUnprocessableEntity),
		Message:    err.Error(),
	}
}

func ErrUnauthorized(message string) *Err {
	return &Err{
		StatusCode: http.StatusUnauthorized,
		StatusText: http.StatusText(http.StatusUnauthorized),
		Message:    message,
	}
}

func ErrPermissionDenied(err error) *Err {
	return &Err{
		Err:        err,
		StatusCode: http.StatusForbidden,
		StatusText: http.StatusText(http.StatusForbidden),
		Message:    err.Error(),
	}
}

func ErrInternalServerError(err error) *Err {
	return &Err{
		Err:        err,
		StatusCode: http.StatusInternalServerError,
		StatusText: http.StatusText(http.StatusInternalServerError),
		Message:    "internal server error",
	}
}
