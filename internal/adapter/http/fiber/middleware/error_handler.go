package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/aniket045123/craftmyresume/internal/domain"
)

// ErrorHandler turns errors returned by handlers into JSON bodies. Domain
// sentinels map to their HTTP status; anything unknown is a 500 and its
// message is not leaked.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"

		var fe *fiber.Error
		switch {
		case errors.As(err, &fe):
			code = fe.Code
			message = fe.Message
		case errors.Is(err, domain.ErrNotFound):
			code = fiber.StatusNotFound
			message = err.Error()
		case errors.Is(err, domain.ErrValidation):
			code = fiber.StatusBadRequest
			message = err.Error()
		}

		if code == fiber.StatusInternalServerError {
			log.Error("Internal Server Error", zap.Error(err), zap.String("path", c.Path()))
		}

		return c.Status(code).JSON(fiber.Map{
			"error": message,
		})
	}
}
