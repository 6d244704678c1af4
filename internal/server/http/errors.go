package httpserver

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/and161185/kanban/internal/api"
	"github.com/and161185/kanban/internal/errs"
)

// routeError carries the generic message a route reports when err is not a domain error.
type routeError struct {
	msg string
	err error
}

func (e *routeError) Error() string { return e.msg + ": " + e.err.Error() }
func (e *routeError) Unwrap() error { return e.err }

func fail(msg string, err error) error { return &routeError{msg: msg, err: err} }

// statusFor maps err to an HTTP status and the message shown to the caller.
func statusFor(err error) (int, string) {
	var fe *fiber.Error
	switch {
	case errors.Is(err, errs.ErrValidation):
		return fiber.StatusBadRequest, errs.Message(err, "Invalid request")
	case errors.Is(err, errs.ErrNotFound):
		return fiber.StatusNotFound, errs.Message(err, "Not found")
	case errors.Is(err, errs.ErrAlreadyExists):
		return fiber.StatusConflict, errs.Message(err, "Already exists")
	case errors.As(err, &fe):
		return fe.Code, fe.Message
	}
	var re *routeError
	if errors.As(err, &re) {
		return fiber.StatusInternalServerError, re.msg
	}
	return fiber.StatusInternalServerError, "Internal Server Error"
}

// handleError is the fiber ErrorHandler: every failure becomes {"message": ...}.
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	code, msg := statusFor(err)
	if code >= fiber.StatusInternalServerError {
		s.log.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("request_id", RequestIDFrom(c)),
			zap.Error(err),
		)
	}
	return c.Status(code).JSON(api.ErrorResponse{Message: msg})
}
