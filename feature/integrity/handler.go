package integrity

import (
	"strings"

	"report-compare/core/logger"
	"report-compare/core/utils"
	"report-compare/feature/integrity/checks"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	// Force import for Swagger
	var _ = checks.TablesReport{}
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/structure", h.HandleStructureCheck)
	group.Get("/inputs", h.HandleInputsCheck)
	group.Get("/tables", h.HandleTablesCheck)
}

// HandleIntegrityCheck triggers the storage checks.
// @Summary Run All Integrity Checks
// @Description Performs the structure and inputs checks.
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Combined Report"
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	ctx := c.Context()
	report := make(map[string]interface{})

	if missing, err := h.service.CheckStructure(ctx); err != nil {
		report["structure"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["structure"] = map[string]interface{}{"status": "ok", "missing": missing}
	}

	if inputs, err := h.service.CheckInputs(ctx); err != nil {
		report["inputs"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["inputs"] = inputs
	}

	return c.JSON(report)
}

// HandleStructureCheck checks and optionally fixes structure.
// @Summary Check Structure
// @Description Checks that the inputs and results folders exist in the storage bucket. Optionally fixes missing folders.
// @Tags integrity
// @Accept json
// @Produce json
// @Param fix query boolean false "Fix missing folders"
// @Success 200 {object} map[string]interface{} "Structure Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/structure [get]
func (h *Handler) HandleStructureCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := utils.ToBool(c.Query("fix"))

	if fix {
		if _, err := h.service.EnsureBucket(c.Context()); err != nil {
			l.Error("Bucket check failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}

	missing, err := h.service.CheckStructure(c.Context())
	if err != nil {
		l.Error("Structure check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if len(missing) > 0 {
		l.Warn("Missing folders detected", zap.Strings("missing", missing))

		if fix {
			l.Info("Attempting to fix missing folders")
			if err := h.service.FixStructure(c.Context(), missing); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error":   "Failed to fix structure",
					"details": err.Error(),
					"missing": missing,
				})
			}
			return c.JSON(fiber.Map{
				"status": "fixed",
				"fixed":  missing,
			})
		}
	}

	return c.JSON(fiber.Map{
		"status":  "checked",
		"missing": missing,
	})
}

// HandleInputsCheck lists the input objects.
// @Summary Check Inputs
// @Description Lists the objects under the inputs folder and flags those that cannot be compared.
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} checks.InputsReport "Inputs Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/inputs [get]
func (h *Handler) HandleInputsCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckInputs(c.Context())
	if err != nil {
		l.Error("Inputs check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if len(report.Unsupported) > 0 {
		l.Warn("Unsupported input files detected", zap.Strings("unsupported", report.Unsupported))
	}
	return c.JSON(report)
}

// HandleTablesCheck checks that database tables can be compared.
// @Summary Check Tables
// @Description Checks that the given tables exist and carry the key column.
// @Tags integrity
// @Accept json
// @Produce json
// @Param tables query string true "Comma separated table names"
// @Param key query string false "Key column (defaults to the configured key)"
// @Success 200 {object} checks.TablesReport "Tables Report"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/tables [get]
func (h *Handler) HandleTablesCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var tables []string
	for _, t := range strings.Split(c.Query("tables"), ",") {
		if t = strings.TrimSpace(t); t != "" {
			tables = append(tables, t)
		}
	}
	if len(tables) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "tables query parameter is required"})
	}

	report, err := h.service.CheckTables(c.Context(), tables, c.Query("key"))
	if err != nil {
		l.Error("Tables check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(report)
}
