package api

import (
	"errors"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"compliance/app/middleware"

	"github.com/gofiber/fiber/v2"
)

const msgInternal = "Internal server error."

// NewErrorHandler renders handler errors as JSON. API errors keep their code
// and message; anything else becomes a generic 500 and the cause is logged.
func NewErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var apiErr Error
		if errors.As(err, &apiErr) {
			return c.Status(apiErr.Code).JSON(apiErr)
		}
		var valErr ValidationError
		if errors.As(err, &valErr) {
			return c.Status(valErr.Status).JSON(valErr)
		}
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) && fiberErr.Code < fiber.StatusInternalServerError {
			return c.Status(fiberErr.Code).JSON(NewError(fiberErr.Code, fiberErr.Message))
		}

		logger.Error("request failed",
			"method", c.Method(),
			"path", c.Path(),
			"request_id", middleware.RequestIDFrom(c),
			"error", err,
		)
		return c.Status(fiber.StatusInternalServerError).JSON(NewError(fiber.StatusInternalServerError, msgInternal))
	}
}

type Error struct {
	Code    int    `json:"-"`
	Message string `json:"error"`
}

// Error implements the Error interface
func (e Error) Error() string {
	return e.Message
}

func NewError(code int, err string) Error {
	return Error{
		Code:    code,
		Message: err,
	}
}

// ValidationError is a 400 carrying one message per offending field. Message
// joins them for clients that only read "error".
type ValidationError struct {
	Status  int               `json:"-"`
	Message string            `json:"error"`
	Errors  map[string]string `json:"errors"`
}

func (e ValidationError) Error() string {
	return e.Message
}

func NewValidationError(errors map[string]string) ValidationError {
	msgs := make([]string, 0, len(errors))
	for _, field := range slices.Sorted(maps.Keys(errors)) {
		msgs = append(msgs, errors[field])
	}
	return ValidationError{
		Status:  fiber.StatusBadRequest,
		Message: strings.Join(msgs, " "),
		Errors:  errors,
	}
}

func ErrBadRequest() Error {
	return Error{
		Code:    fiber.StatusBadRequest,
		Message: "invalid JSON request",
	}
}

func ErrInternal(msg string) Error {
	return Error{
		Code:    fiber.StatusInternalServerError,
		Message: msg,
	}
}
