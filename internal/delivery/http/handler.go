package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/matchboard/backend/internal/domain"
	"github.com/matchboard/backend/internal/infrastructure/spreadsheet"
	"github.com/matchboard/backend/internal/usecase"
)

// Navigation tabs, passed to templates as current_tab
const (
	tabDashboard  = "dashboard"
	tabUpload     = "upload"
	tabCompetitor = "competitor"
	tabSettings   = "settings"
	tabTestParser = "test_parser"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	catalog *usecase.CatalogService
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(catalog *usecase.CatalogService, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		catalog: catalog,
		logger:  logger,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Dashboard renders the landing page
func (h *Handler) Dashboard(c *gin.Context) {
	summary, err := h.catalog.Summary(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"title":       "Панель",
		"current_tab": tabDashboard,
		"summary":     summary,
	})
}

// UploadPage renders the catalog upload form
func (h *Handler) UploadPage(c *gin.Context) {
	c.HTML(http.StatusOK, "upload.html", gin.H{
		"title":       "Каталог",
		"current_tab": tabUpload,
		"success":     queryFlag(c, "success"),
	})
}

// UploadProducts replaces the catalog with the rows of the uploaded spreadsheet
func (h *Handler) UploadProducts(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.respondError(c, err)
		return
	}
	defer file.Close()

	if _, err := h.catalog.ImportSpreadsheet(c.Request.Context(), fileHeader.Filename, file); err != nil {
		h.respondError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/upload?success=1")
}

// CompetitorPage renders the stored competitor root URL
func (h *Handler) CompetitorPage(c *gin.Context) {
	root, err := h.catalog.CompetitorRoot(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.HTML(http.StatusOK, "competitor.html", gin.H{
		"title":       "Конкурент",
		"current_tab": tabCompetitor,
		"root_url":    root,
		"has_root":    root != usecase.CompetitorNotSet,
		"saved":       queryFlag(c, "saved"),
	})
}

// SaveCompetitor stores the competitor root URL from the form
func (h *Handler) SaveCompetitor(c *gin.Context) {
	if err := h.catalog.SaveCompetitorRoot(c.Request.Context(), c.PostForm("root_url")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/competitor?saved=1")
}

// SettingsPage renders the API key form
func (h *Handler) SettingsPage(c *gin.Context) {
	apiKey, err := h.catalog.APIKey(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.HTML(http.StatusOK, "settings.html", gin.H{
		"title":       "Налаштування",
		"current_tab": tabSettings,
		"api_key":     apiKey,
		"saved":       queryFlag(c, "saved"),
	})
}

// SaveSettings stores the API key from the form
func (h *Handler) SaveSettings(c *gin.Context) {
	if err := h.catalog.SaveAPIKey(c.Request.Context(), c.PostForm("api_key")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/settings?saved=1")
}

// TestParserPage renders the stored matches for review and editing
func (h *Handler) TestParserPage(c *gin.Context) {
	ctx := c.Request.Context()

	matches, err := h.catalog.Matches(ctx)
	if err != nil {
		h.respondError(c, err)
		return
	}
	root, err := h.catalog.CompetitorRoot(ctx)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.HTML(http.StatusOK, "test_parser.html", gin.H{
		"title":       "Тест парсера",
		"current_tab": tabTestParser,
		"root_url":    root,
		"matches":     matches,
	})
}

// RunMatch regenerates matches for the whole catalog
func (h *Handler) RunMatch(c *gin.Context) {
	matches, err := h.catalog.RunMatch(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	if matches == nil {
		matches = []domain.Match{}
	}

	c.JSON(http.StatusOK, gin.H{"matches": matches})
}

// SaveMatches replaces the match store with the posted list
func (h *Handler) SaveMatches(c *gin.Context) {
	matches, verr := decodeMatchItems(c)
	if verr != nil {
		h.logger.Info("save-match rejected", zap.String("reason", verr.Message))
		c.JSON(http.StatusBadRequest, verr.body())
		return
	}

	if err := h.catalog.SaveMatches(c.Request.Context(), matches); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListProducts returns the stored catalog rows as JSON
func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.catalog.Products(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// ListMatches returns the stored matches as JSON
func (h *Handler) ListMatches(c *gin.Context) {
	matches, err := h.catalog.Matches(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"matches": matches})
}

// respondError maps domain errors to HTTP status codes
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrAPIKeyMissing):
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrAPIKeyMissing.Error()})
	case spreadsheet.IsFormatError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error("request failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// queryFlag reads an optional integer flag such as ?saved=1; anything
// missing, non-numeric or zero is false.
func queryFlag(c *gin.Context, name string) bool {
	n, err := strconv.Atoi(c.Query(name))
	return err == nil && n != 0
}
