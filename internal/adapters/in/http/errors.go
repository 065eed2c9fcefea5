package http

import (
	"errors"
	"fmt"
	"net/http"

	"production/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// StatusFor maps a use case error to its HTTP status code.
func StatusFor(err error) int {
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrVersionIsInvalid),
		errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, gorm.ErrDuplicatedKey):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrRuleViolation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func errorBody(code int, err error) Error {
	if code == http.StatusInternalServerError {
		return Error{Code: code, Message: http.StatusText(code)}
	}
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return Error{Code: code, Message: fmt.Sprint(httpErr.Message)}
	}
	return Error{Code: code, Message: err.Error()}
}

func (s *Server) fail(ctx echo.Context, err error) error {
	code := StatusFor(err)
	if code >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("method", ctx.Request().Method),
			zap.String("path", ctx.Path()),
			zap.Error(err),
		)
	}
	return ctx.JSON(code, errorBody(code, err))
}

// ErrorHandler renders errors that escape the handlers (routing, binding) as Error JSON.
func ErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		if ctx.Response().Committed {
			return
		}
		code := StatusFor(err)
		if code >= http.StatusInternalServerError {
			logger.Error("unhandled error", zap.String("path", ctx.Path()), zap.Error(err))
		}
		if ctx.Request().Method == http.MethodHead {
			err = ctx.NoContent(code)
		} else {
			err = ctx.JSON(code, errorBody(code, err))
		}
		if err != nil {
			logger.Error("failed to write error response", zap.Error(err))
		}
	}
}
