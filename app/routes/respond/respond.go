// Package respond maps service results onto the portal's fixed JSON
// envelopes: errors as {"error":{"code","message"}}, successes with
// domain-specific keys supplied by the handler.
package respond

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/akhyar02/scholar-draft-sub000/app/services"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error writes the fixed error envelope. Typed service errors carry
// their own code and HTTP status; sql.ErrNoRows becomes a generic 404;
// anything else is a 500 with the detail kept out of the response.
func Error(c *fiber.Ctx, err error) error {
	if serr, ok := err.(*services.Error); ok {
		status := serr.HTTPStatus
		if status == 0 {
			status = 500
		}
		return c.Status(status).JSON(fiber.Map{
			"error": errorBody{Code: serr.Code, Message: serr.Message},
		})
	}
	if err == sql.ErrNoRows {
		return c.Status(404).JSON(fiber.Map{
			"error": errorBody{Code: services.CodeNotFound, Message: "resource not found"},
		})
	}
	return c.Status(500).JSON(fiber.Map{
		"error": errorBody{Code: "INTERNAL_ERROR", Message: "internal server error"},
	})
}

// BadRequest writes a validation-style error envelope for malformed
// request bodies.
func BadRequest(c *fiber.Ctx, message string) error {
	return c.Status(400).JSON(fiber.Map{
		"error": errorBody{Code: services.CodeValidation, Message: message},
	})
}
