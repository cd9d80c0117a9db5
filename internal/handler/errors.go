package handler

import (
	"coa-backend/internal/models"
	"coa-backend/internal/repository"
	"coa-backend/internal/service"
	"coa-backend/internal/utils"
	"errors"

	"github.com/gofiber/fiber/v2"
)

var (
	ErrNoFile              = errors.New("no file uploaded")
	ErrUnsupportedFileType = errors.New("only Excel files are allowed")
)

func errorStatus(err error) int {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr),
		errors.Is(err, ErrNoFile),
		errors.Is(err, ErrUnsupportedFileType),
		errors.Is(err, service.ErrNoWorksheet):
		return fiber.StatusBadRequest
	case errors.Is(err, service.ErrLedgerNotFound),
		errors.Is(err, service.ErrLinkNotFound),
		errors.Is(err, models.ErrUnknownEntity),
		errors.Is(err, repository.ErrJobNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

func respondError(c *fiber.Ctx, err error) error {
	return utils.ErrorResponse(c, errorStatus(err), err)
}
