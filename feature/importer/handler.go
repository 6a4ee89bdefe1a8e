package importer

import (
	"errors"

	"game-importer/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Request is the body of an import request.
type Request struct {
	ExternalID string `json:"external_id" form:"external_id"`
	Language   string `json:"language" form:"language"`
}

// Handler handles HTTP requests for imports.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the import routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/import", h.HandleImport)
}

// HandleImport fetches one catalog item and maps it onto a local record.
// @Summary Import Catalog Item
// @Description Fetches a catalog item by id or store URL and creates or updates the matching record.
// @Tags importer
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body Request true "Import request"
// @Success 200 {object} reconcile.Outcome "Record updated"
// @Success 201 {object} reconcile.Outcome "Record created"
// @Failure 400 {object} Error "Invalid identifier"
// @Failure 422 {object} Error "Fetch failed"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /import [post]
func (h *Handler) HandleImport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(&Error{Code: CodeMissingAppID, Message: err.Error()})
	}

	out, err := h.service.Import(c.Context(), req.ExternalID, req.Language)
	if err != nil {
		var ierr *Error
		if !errors.As(err, &ierr) {
			l.Error("Import failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		if ierr.Code == CodeFetchFailed {
			l.Warn("Import failed", zap.String("external_id", req.ExternalID), zap.String("reason", ierr.Message))
			return c.Status(fiber.StatusUnprocessableEntity).JSON(ierr)
		}
		return c.Status(fiber.StatusBadRequest).JSON(ierr)
	}

	l.Info("Import completed", zap.Uint("record_id", out.RecordID), zap.Bool("created", out.Created))
	if out.Created {
		return c.Status(fiber.StatusCreated).JSON(out)
	}
	return c.JSON(out)
}
