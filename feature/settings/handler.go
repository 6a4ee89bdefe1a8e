package settings

import (
	"errors"

	"game-importer/core/logger"
	core "game-importer/core/settings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for settings.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the settings routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/settings")
	group.Get("/:namespace", h.HandleGetSettings)
	group.Put("/:namespace", h.HandleUpdateSettings)
}

// HandleGetSettings returns the values of a settings namespace.
// @Summary Get Settings
// @Description Returns the stored values of the mapping or general namespace.
// @Tags settings
// @Produce json
// @Param namespace path string true "Namespace (mapping or general)"
// @Success 200 {object} map[string]interface{} "Settings"
// @Failure 404 {object} map[string]string "Unknown Namespace"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /settings/{namespace} [get]
func (h *Handler) HandleGetSettings(c *fiber.Ctx) error {
	values, err := h.service.Get(c.Context(), c.Params("namespace"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(values)
}

// HandleUpdateSettings merges values into a settings namespace.
// @Summary Update Settings
// @Description Merges the given values into the namespace. Mapping values are validated before saving.
// @Tags settings
// @Accept json
// @Produce json
// @Param namespace path string true "Namespace (mapping or general)"
// @Param values body map[string]interface{} true "Values to merge"
// @Success 200 {object} map[string]interface{} "Saved Settings"
// @Failure 400 {object} map[string]string "Invalid Values"
// @Failure 404 {object} map[string]string "Unknown Namespace"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /settings/{namespace} [put]
func (h *Handler) HandleUpdateSettings(c *fiber.Ctx) error {
	var values map[string]any
	if err := c.BodyParser(&values); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	saved, err := h.service.Update(c.Context(), c.Params("namespace"), values)
	if err != nil {
		return h.fail(c, err)
	}

	logger.WithRayID(h.service.logger, c).Info("Settings updated", zap.String("namespace", c.Params("namespace")))
	return c.JSON(saved)
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, core.ErrUnknownNamespace):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrInvalid):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	logger.WithRayID(h.service.logger, c).Error("Settings request failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
