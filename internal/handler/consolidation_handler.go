package handler

import (
	"coa-backend/internal/models"
	"coa-backend/internal/utils"
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Consolidator is the consolidation state manager used by the routes.
type Consolidator interface {
	Merge(ctx context.Context, req models.MergeRequest) (*models.MergeResult, error)
	Demerge(ctx context.Context, ledgerCode string) error
	View(ctx context.Context, ledgerCode string) ([]models.ConsolidatedRow, error)
	ActiveLedgers(ctx context.Context) ([]models.LedgerLink, error)
	InactiveLedgers(ctx context.Context) ([]models.LedgerLink, error)
	UpdateLink(ctx context.Context, link *models.ConsolidationLink) error
	DeleteLink(ctx context.Context, id int64) error
}

type ConsolidationHandler struct {
	consolidator Consolidator
}

func NewConsolidationHandler(consolidator Consolidator) *ConsolidationHandler {
	return &ConsolidationHandler{consolidator: consolidator}
}

// View lists the joined consolidation rows, optionally filtered by ?ledger_code=.
func (h *ConsolidationHandler) View(c *fiber.Ctx) error {
	rows, err := h.consolidator.View(c.UserContext(), c.Query("ledger_code"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rows)
}

func (h *ConsolidationHandler) ByLedger(c *fiber.Ctx) error {
	rows, err := h.consolidator.View(c.UserContext(), c.Params("ledger_code"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rows)
}

func (h *ConsolidationHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, fmt.Errorf("invalid id"))
	}

	var link models.ConsolidationLink
	if err := c.BodyParser(&link); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err)
	}
	if err := requireLinkCode(&link); err != nil {
		return respondError(c, err)
	}
	link.ID = int64(id)

	if err := h.consolidator.UpdateLink(c.UserContext(), &link); err != nil {
		return respondError(c, err)
	}
	return utils.MessageResponse(c, "Consolidation updated successfully", nil)
}

func (h *ConsolidationHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, fmt.Errorf("invalid id"))
	}

	if err := h.consolidator.DeleteLink(c.UserContext(), int64(id)); err != nil {
		return respondError(c, err)
	}
	return utils.MessageResponse(c, "Consolidation deleted successfully", nil)
}

func (h *ConsolidationHandler) Merge(c *fiber.Ctx) error {
	var req models.MergeRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err)
	}
	if err := validateBody(&req); err != nil {
		return respondError(c, err)
	}

	result, err := h.consolidator.Merge(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}

	return utils.MessageResponse(c, "Ledger merged successfully", fiber.Map{
		"ledger_code":     result.LedgerCode,
		"sub_group_code":  result.SubGroupCode,
		"sub_group_name":  result.SubGroupName,
		"main_group_code": result.MainGroupCode,
		"main_group_name": result.MainGroupName,
	})
}

func (h *ConsolidationHandler) Demerge(c *fiber.Ctx) error {
	ledgerCode := c.Params("ledger_code")
	if err := h.consolidator.Demerge(c.UserContext(), ledgerCode); err != nil {
		return respondError(c, err)
	}
	return utils.MessageResponse(c, "Ledger demerged successfully", fiber.Map{
		"ledger_code": ledgerCode,
	})
}

func (h *ConsolidationHandler) Active(c *fiber.Ctx) error {
	ledgers, err := h.consolidator.ActiveLedgers(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ledgers)
}

func (h *ConsolidationHandler) Inactive(c *fiber.Ctx) error {
	ledgers, err := h.consolidator.InactiveLedgers(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ledgers)
}
