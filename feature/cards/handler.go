package cards

import (
	"slices"

	"pocket-cards/core/logger"
	"pocket-cards/feature/sources"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for saved cards.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the card routes. Fixed segments are registered
// before the parameterized set route.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/cards")
	group.Get("/schema", h.HandleSchema)
	group.Get("/:language/eligible", h.HandleEligible)
	group.Get("/:language/:set", h.HandleListSet)
}

func validLanguage(c *fiber.Ctx) (string, bool) {
	lang := c.Params("language")
	return lang, slices.Contains(sources.Languages(), lang)
}

// HandleListSet returns the saved records of one set.
func (h *Handler) HandleListSet(c *fiber.Ctx) error {
	lang, ok := validLanguage(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unsupported language"})
	}
	set := c.Params("set")

	records, err := h.service.ListSet(c.Context(), lang, set)
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Failed to list cards", zap.String("set", set), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if len(records) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no cards saved for set " + set})
	}
	return c.JSON(records)
}

// HandleEligible returns the eligible canonical ids grouped by set.
func (h *Handler) HandleEligible(c *fiber.Ctx) error {
	lang, ok := validLanguage(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unsupported language"})
	}

	eligible, err := h.service.Eligible(c.Context(), lang)
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Failed to list eligible cards", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(eligible)
}

// HandleSchema reports columns missing from the cards table.
func (h *Handler) HandleSchema(c *fiber.Ctx) error {
	report, err := h.service.Schema(c.Context())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Schema check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}
