package utils

import (
	"github.com/gofiber/fiber/v2"
)

// ErrorResponse writes the {"error": ...} body used by every failing route.
func ErrorResponse(c *fiber.Ctx, status int, err error) error {
	message := "Internal Server Error"
	if err != nil {
		message = err.Error()
	}
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

// MessageResponse writes {"message": ...} merged with any extra fields.
func MessageResponse(c *fiber.Ctx, message string, extra fiber.Map) error {
	body := fiber.Map{"message": message}
	for k, v := range extra {
		body[k] = v
	}
	return c.JSON(body)
}

// XLSXResponse sends a generated workbook as a file download.
func XLSXResponse(c *fiber.Ctx, filename string, data []byte) error {
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Attachment(filename)
	return c.Send(data)
}
