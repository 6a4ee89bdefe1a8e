package records

import (
	"errors"

	"game-importer/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for records.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the record routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/records")
	group.Get("/:id", h.HandleGetRecord)
	group.Delete("/:id", h.HandleDeleteRecord)
}

// HandleGetRecord returns a record with its metadata and terms.
// @Summary Get Record
// @Description Returns an imported record with its metadata and taxonomy terms.
// @Tags records
// @Produce json
// @Param id path int true "Record ID"
// @Success 200 {object} Detail "Record"
// @Failure 400 {object} map[string]string "Invalid ID"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /records/{id} [get]
func (h *Handler) HandleGetRecord(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid record id"})
	}

	detail, err := h.service.Get(c.Context(), uint(id))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(detail)
}

// HandleDeleteRecord deletes a record and, if enabled, its imported media.
// @Summary Delete Record
// @Description Deletes a record. Imported images are removed too when delete_imported_images is enabled.
// @Tags records
// @Produce json
// @Param id path int true "Record ID"
// @Success 200 {object} DeleteResult "Deletion Report"
// @Failure 400 {object} map[string]string "Invalid ID"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /records/{id} [delete]
func (h *Handler) HandleDeleteRecord(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid record id"})
	}

	result, err := h.service.Delete(c.Context(), uint(id))
	if err != nil {
		return h.fail(c, err)
	}

	logger.WithRayID(h.service.logger, c).Info("Record deleted",
		zap.Uint("record_id", result.RecordID),
		zap.Int("deleted_media", len(result.DeletedMedia)))
	return c.JSON(result)
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	logger.WithRayID(h.service.logger, c).Error("Record request failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
