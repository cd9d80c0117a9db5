package handler

import (
	"coa-backend/internal/models"
	"coa-backend/internal/utils"
	"context"

	"github.com/gofiber/fiber/v2"
)

// EntityStore is the generic table storage behind the CRUD routes.
type EntityStore interface {
	List(ctx context.Context, schema *models.EntitySchema, dest interface{}) error
	ListRecords(ctx context.Context, schema *models.EntitySchema) ([]models.Record, error)
	Insert(ctx context.Context, schema *models.EntitySchema, arg interface{}) (int64, error)
}

// EntityHandler serves list and create for one entity model T.
type EntityHandler[T any] struct {
	schema         *models.EntitySchema
	store          EntityStore
	createdMessage string
	check          func(*T) error
}

func NewEntityHandler[T any](schema *models.EntitySchema, store EntityStore, createdMessage string) *EntityHandler[T] {
	return &EntityHandler[T]{
		schema:         schema,
		store:          store,
		createdMessage: createdMessage,
	}
}

// NewConsolidationLinkHandler also rejects links that carry no code at all.
func NewConsolidationLinkHandler(store EntityStore) *EntityHandler[models.ConsolidationLink] {
	h := NewEntityHandler[models.ConsolidationLink](models.ConsolidationLinkSchema, store, "Consolidation created successfully")
	return h.WithCheck(requireLinkCode)
}

// Resource is the path segment the handler is mounted under.
func (h *EntityHandler[T]) Resource() string {
	return h.schema.Resource
}

// WithCheck adds a presence rule the struct tags cannot express.
func (h *EntityHandler[T]) WithCheck(check func(*T) error) *EntityHandler[T] {
	h.check = check
	return h
}

func (h *EntityHandler[T]) List(c *fiber.Ctx) error {
	items := []T{}
	if err := h.store.List(c.UserContext(), h.schema, &items); err != nil {
		return respondError(c, err)
	}
	return c.JSON(items)
}

func (h *EntityHandler[T]) Create(c *fiber.Ctx) error {
	var item T
	if err := c.BodyParser(&item); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err)
	}
	if err := validateBody(&item); err != nil {
		return respondError(c, err)
	}
	if h.check != nil {
		if err := h.check(&item); err != nil {
			return respondError(c, err)
		}
	}

	id, err := h.store.Insert(c.UserContext(), h.schema, &item)
	if err != nil {
		return respondError(c, err)
	}

	return utils.MessageResponse(c, h.createdMessage, fiber.Map{"id": id})
}

// requireLinkCode rejects consolidation records without any code.
func requireLinkCode(link *models.ConsolidationLink) error {
	if !link.HasCode() {
		return &models.ValidationError{Message: models.ConsolidationLinkSchema.RequiredMessage}
	}
	return nil
}
