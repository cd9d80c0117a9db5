package middleware

import (
	"coa-backend/internal/utils"
	"errors"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"
)

// ErrorHandler renders errors that escaped the handlers as {"error": ...}.
// Uploads rejected by the body limit or the multipart reader are reported as
// 400 like any other invalid upload.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}

	if isUploadError(code, err) {
		code = fiber.StatusBadRequest
		message = "File upload error: " + message
	}

	if code >= fiber.StatusInternalServerError {
		utils.GetLogger().WithError(err).WithFields(logrus.Fields{
			"path":       c.Path(),
			"request_id": c.Locals("requestid"),
		}).Error("Request failed")
	}

	return utils.ErrorResponse(c, code, errors.New(message))
}

func isUploadError(code int, err error) bool {
	return code == fiber.StatusRequestEntityTooLarge ||
		errors.Is(err, fasthttp.ErrBodyTooLarge) ||
		errors.Is(err, fasthttp.ErrNoMultipartForm) ||
		errors.Is(err, multipart.ErrMessageTooLarge)
}
