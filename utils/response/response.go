package response

import (
	"github.com/gofiber/fiber/v2"
)

// The API speaks the portal's wire format rather than a generic
// envelope: lists are {"<plural>": [...], "total_count": N}, details
// are the bare object, writes are {"message": ..., "<resource>": {...}}
// and errors are {"error": ..., "details": ...}.

// List returns a 200 list payload keyed by the plural resource name.
func List(c *fiber.Ctx, key string, items interface{}, totalCount int) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		key:           items,
		"total_count": totalCount,
	})
}

// ListWith returns a list payload with extra top-level fields, e.g.
// finance totals or an access_level marker.
func ListWith(c *fiber.Ctx, key string, items interface{}, totalCount int, extra fiber.Map) error {
	body := fiber.Map{
		key:           items,
		"total_count": totalCount,
	}
	for k, v := range extra {
		body[k] = v
	}
	return c.Status(fiber.StatusOK).JSON(body)
}

// Detail returns a 200 bare-object payload.
func Detail(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(data)
}

// Created returns a 201 write payload keyed by the resource name.
func Created(c *fiber.Ctx, message, key string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": message,
		key:       data,
	})
}

// Updated returns a 200 write payload keyed by the resource name.
func Updated(c *fiber.Ctx, message, key string, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": message,
		key:       data,
	})
}

// Message returns a bare 200 {"message": ...} payload (logout, delete).
func Message(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": message,
	})
}

// Error returns an error payload without details.
func Error(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"error": message,
	})
}

// ErrorWithDetails returns an error payload with a details field.
// Details is free-form: validation uses a field->message map.
func ErrorWithDetails(c *fiber.Ctx, statusCode int, message string, details interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"error":   message,
		"details": details,
	})
}

// BadRequest returns a 400 Bad Request response
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

// ValidationError returns the 400 payload for failed input validation.
func ValidationError(c *fiber.Ctx, details map[string]string) error {
	return ErrorWithDetails(c, fiber.StatusBadRequest, "Invalid data", details)
}

// Unauthorized returns a 401 Unauthorized response
func Unauthorized(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Authentication required"
	}
	return Error(c, fiber.StatusUnauthorized, message)
}

// Forbidden returns a 403 Forbidden response
func Forbidden(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Permission denied"
	}
	return Error(c, fiber.StatusForbidden, message)
}

// NotFound returns a 404 Not Found response
func NotFound(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Resource not found"
	}
	return Error(c, fiber.StatusNotFound, message)
}

// Conflict returns a 409 Conflict response
func Conflict(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusConflict, message)
}

// TooManyRequests returns a 429 Too Many Requests response
func TooManyRequests(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Too many requests"
	}
	return Error(c, fiber.StatusTooManyRequests, message)
}

// InternalServerError returns a sanitized 500 response. The underlying
// error goes to the log, never to the client.
func InternalServerError(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Internal server error"
	}
	return Error(c, fiber.StatusInternalServerError, message)
}
