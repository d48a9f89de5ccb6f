package serverutils

import (
	"errors"
	"fmt"

	"ai-studyplanner-be/internal/service"
	"ai-studyplanner-be/pkg/extraction"
	"ai-studyplanner-be/pkg/planner"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

type Response struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func SuccessResponse(message string, data interface{}) Response {
	return Response{Message: message, Data: data}
}

// ValidateRequest runs struct-tag validation and wraps failures into a 400.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			f := verrs[0]
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("field %s failed on %s", f.Field(), f.Tag()))
		}
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}

// ErrorHandlerMiddleware maps domain errors to HTTP responses so handlers
// can just return them.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		status := fiber.StatusInternalServerError
		message := "Internal server error"

		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &fiberErr):
			status = fiberErr.Code
			message = fiberErr.Message
		case errors.Is(err, planner.ErrInvalidWindow),
			errors.Is(err, planner.ErrPortionTooLarge),
			errors.Is(err, planner.ErrBadTimeFormat):
			status = fiber.StatusBadRequest
			message = err.Error()
		case errors.Is(err, extraction.ErrExternalService):
			status = fiber.StatusBadGateway
			message = "The planning assistant is unavailable right now, please try again"
		case errors.Is(err, service.ErrNotFound):
			status = fiber.StatusNotFound
			message = err.Error()
		case errors.Is(err, service.ErrStorage):
			status = fiber.StatusServiceUnavailable
			message = "Storage is unavailable right now, please try again"
		}

		return ctx.Status(status).JSON(fiber.Map{"message": message})
	}
}
