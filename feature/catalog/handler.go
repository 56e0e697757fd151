package catalog

import (
	"strconv"

	"pocket-cards/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for catalog lookups.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/catalog")
	group.Get("/", h.HandleStats)
	group.Post("/refresh", h.HandleRefresh)
	group.Get("/:expansion/:number", h.HandleLookup)
}

// HandleLookup resolves the canonical id of one card.
func (h *Handler) HandleLookup(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	expansion := c.Params("expansion")
	number, err := strconv.Atoi(c.Params("number"))
	if err != nil || number <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "number must be a positive integer"})
	}

	result, err := h.service.Lookup(c.Context(), expansion, number)
	if err != nil {
		l.Error("Catalog lookup failed", zap.String("expansion", expansion), zap.Int("number", number), zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}

	if !result.Found {
		return c.Status(fiber.StatusNotFound).JSON(result)
	}
	return c.JSON(result)
}

// HandleStats reports the size of the loaded index.
func (h *Handler) HandleStats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.Context())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Catalog load failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(stats)
}

// HandleRefresh drops the cached index.
func (h *Handler) HandleRefresh(c *fiber.Ctx) error {
	logger.WithRayID(h.service.logger, c).Info("Catalog cache invalidated")
	h.service.Refresh()
	return c.JSON(fiber.Map{"status": "invalidated"})
}
