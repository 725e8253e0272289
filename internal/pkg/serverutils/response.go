package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

type ApiResponse[T any] struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

func SuccessResponse[T any](message string, data T) ApiResponse[T] {
	return ApiResponse[T]{
		Success: true,
		Code:    fiber.StatusOK,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(code int, message string) ApiResponse[any] {
	return ApiResponse[any]{
		Success: false,
		Code:    code,
		Message: message,
	}
}

// ApiError carries an HTTP status through the service layer so the error
// handler middleware can render the standard envelope.
type ApiError struct {
	Code    int
	Message string
}

func (e *ApiError) Error() string {
	return e.Message
}

func NewValidationError(message string) *ApiError {
	return &ApiError{Code: fiber.StatusBadRequest, Message: message}
}

func NewNotAuthenticatedError() *ApiError {
	return &ApiError{Code: fiber.StatusUnauthorized, Message: "Not authenticated"}
}

func NewNotFoundError(message string) *ApiError {
	return &ApiError{Code: fiber.StatusNotFound, Message: message}
}

// ErrorHandlerMiddleware converts errors escaping the handlers into the
// response envelope. Unknown errors become 500 with the message passed
// through, matching the pass-through policy for opaque store failures.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var apiErr *ApiError
		if errors.As(err, &apiErr) {
			return ctx.Status(apiErr.Code).JSON(ErrorResponse(apiErr.Code, apiErr.Message))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(
			ErrorResponse(fiber.StatusInternalServerError, err.Error()))
	}
}
