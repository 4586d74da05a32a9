package response

import (
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Err is the error envelope every failed request renders. Code is a
// stable machine-readable identifier; Message is for humans.
type Err struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`

	cause error
}

func (e *Err) Error() string {
	return e.Message
}

func (e *Err) Unwrap() error {
	return e.cause
}

func ErrBadRequest(err error) *Err {
	return &Err{
		StatusCode: http.StatusBadRequest,
		Code:       "VALIDATION_ERROR",
		Message:    err.Error(),
	}
}

func ErrNotFound(err error) *Err {
	return &Err{
		StatusCode: http.StatusNotFound,
		Code:       "NOT_FOUND",
		Message:    err.Error(),
	}
}

func ErrConflict(err error) *Err {
	return &Err{
		StatusCode: http.StatusConflict,
		Code:       "CONFLICT",
		Message:    err.Error(),
	}
}

func ErrQuotaExceeded(err error) *Err {
	return &Err{
		StatusCode: http.StatusConflict,
		Code:       "QUOTA_EXCEEDED",
		Message:    err.Error(),
	}
}

func ErrInvalidTransition(err error) *Err {
	return &Err{
		StatusCode: http.StatusConflict,
		Code:       "INVALID_TRANSITION",
		Message:    err.Error(),
	}
}

func ErrAlreadyCancelled(err error) *Err {
	return &Err{
		StatusCode: http.StatusConflict,
		Code:       "ALREADY_CANCELLED",
		Message:    err.Error(),
	}
}

func ErrWrongCredentials(err error) *Err {
	return &Err{
		StatusCode: http.StatusUnauthorized,
		Code:       "WRONG_CREDENTIALS",
		Message:    err.Error(),
	}
}

func ErrUnauthorized(err error) *Err {
	return &Err{
		StatusCode: http.StatusForbidden,
		Code:       "UNAUTHORIZED",
		Message:    err.Error(),
	}
}

func ErrInternalServerError(err error) *Err {
	return &Err{
		StatusCode: http.StatusInternalServerError,
		Code:       "INTERNAL_ERROR",
		Message:    "something went wrong",
		cause:      err,
	}
}

func RenderErr(ctx *gin.Context, err *Err) {
	if err.StatusCode >= http.StatusInternalServerError {
		zap.L().Error("server error",
			zap.String("request_id", requestid.Get(ctx)),
			zap.String("path", ctx.FullPath()),
			zap.Error(err.cause),
		)
	}

	ctx.AbortWithStatusJSON(err.StatusCode, err)
}
