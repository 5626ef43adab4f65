package compare

import (
	"errors"

	"report-compare/core/dataset"
	"report-compare/core/logger"
	"report-compare/core/storage"
	"report-compare/feature/compare/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for comparisons.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the compare routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/compare")
	group.Post("/", h.HandleCompare)
	group.Post("/tables", h.HandleCompareTables)
	group.Get("/results", h.HandleListResults)
	group.Get("/results/:id", h.HandleGetResult)
	group.Delete("/results/:id", h.HandleDeleteResult)
}

// HandleCompare compares two stored files.
// @Summary Compare Files
// @Description Compares two CSV or spreadsheet files of the inputs folder on a key column. Optionally stores the result workbook.
// @Tags compare
// @Accept json
// @Produce json
// @Param request body models.CompareRequest true "Files to compare"
// @Success 200 {object} models.CompareResponse "Comparison Summary"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Input Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /compare [post]
func (h *Handler) HandleCompare(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req models.CompareRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	resp, err := h.service.Compare(c.Context(), req)
	if err != nil {
		l.Error("Comparison failed", zap.String("left", req.Left), zap.String("right", req.Right), zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(resp)
}

// HandleCompareTables compares two database tables.
// @Summary Compare Tables
// @Description Compares two database tables on a key column. Optionally stores the result workbook.
// @Tags compare
// @Accept json
// @Produce json
// @Param request body models.TablesRequest true "Tables to compare"
// @Success 200 {object} models.CompareResponse "Comparison Summary"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /compare/tables [post]
func (h *Handler) HandleCompareTables(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req models.TablesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	resp, err := h.service.CompareTables(c.Context(), req)
	if err != nil {
		l.Error("Table comparison failed", zap.String("left", req.Left), zap.String("right", req.Right), zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(resp)
}

// HandleListResults lists stored result workbooks.
// @Summary List Results
// @Description Lists the result workbooks stored in the results folder.
// @Tags compare
// @Produce json
// @Success 200 {array} models.ResultEntry "Stored Results"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /compare/results [get]
func (h *Handler) HandleListResults(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	entries, err := h.service.ListResults(c.Context())
	if err != nil {
		l.Error("Listing results failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(entries)
}

// HandleGetResult downloads a stored result workbook.
// @Summary Download Result
// @Description Downloads a stored result workbook.
// @Tags compare
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Result ID"
// @Success 200 {file} file "Result Workbook"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /compare/results/{id} [get]
func (h *Handler) HandleGetResult(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	id := c.Params("id")

	data, err := h.service.GetResult(c.Context(), id)
	if err != nil {
		l.Error("Result download failed", zap.String("id", id), zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	c.Attachment(id + resultExt)
	c.Set(fiber.HeaderContentType, storage.ContentTypeXLSX)
	return c.Send(data)
}

// HandleDeleteResult removes a stored result workbook.
// @Summary Delete Result
// @Description Removes a stored result workbook.
// @Tags compare
// @Param id path string true "Result ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /compare/results/{id} [delete]
func (h *Handler) HandleDeleteResult(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	id := c.Params("id")

	if err := h.service.DeleteResult(c.Context(), id); err != nil {
		l.Error("Result removal failed", zap.String("id", id), zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, dataset.ErrKeyColumnNotFound),
		errors.Is(err, dataset.ErrIncompatibleSources),
		errors.Is(err, dataset.ErrUnsupportedSource),
		errors.Is(err, dataset.ErrEmptySource),
		errors.Is(err, dataset.ErrColumnNotFound),
		errors.Is(err, dataset.ErrDuplicateColumn):
		return fiber.StatusBadRequest
	case errors.Is(err, storage.ErrObjectNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}
