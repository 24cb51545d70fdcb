package utils

import "github.com/gofiber/fiber/v2"

// APIResponse describes the envelope returned by the admin endpoints and by
// requests the dispatcher could not answer.
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Meta    any    `json:"meta,omitempty"`
	Details any    `json:"details,omitempty"`
}

// OK sends a 200 envelope. An empty message defaults to "success".
func OK(c *fiber.Ctx, data any, message string, meta any) error {
	if message == "" {
		message = "success"
	}

	return c.Status(fiber.StatusOK).JSON(APIResponse{
		Success: true,
		Message: message,
		Data:    data,
		Meta:    meta,
	})
}

// Fail sends an error envelope with the given status code.
func Fail(c *fiber.Ctx, status int, message string, details any) error {
	if message == "" {
		message = "error"
	}
	if status == 0 {
		status = fiber.StatusInternalServerError
	}

	return c.Status(status).JSON(APIResponse{
		Success: false,
		Message: message,
		Details: details,
	})
}
