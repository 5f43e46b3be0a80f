package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/snixlabs/lifeops/internal/adapters/llm"
	"github.com/snixlabs/lifeops/internal/core/domain"
	"github.com/snixlabs/lifeops/internal/core/services"
)

// ModelCatalog lists the provider's raw model catalog.
type ModelCatalog interface {
	ListModels(ctx context.Context) (json.RawMessage, error)
}

type CoachHandler struct {
	svc     *services.CoachService
	catalog ModelCatalog
}

func NewCoachHandler(svc *services.CoachService, catalog ModelCatalog) *CoachHandler {
	return &CoachHandler{svc: svc, catalog: catalog}
}

// Pointer fields keep "absent" distinguishable from zero so the defaults
// (days=14, max_items=60, include_notes=true) survive partial payloads.
type coachRequest struct {
	Days         *int   `json:"days"`
	MaxItems     *int   `json:"max_items"`
	Focus        string `json:"focus"`
	IncludeNotes *bool  `json:"include_notes"`
}

func (h *CoachHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/coach/snix", h.Generate)
	router.GET("/llm/models", h.ListModels)
}

func (h *CoachHandler) Generate(c *gin.Context) {
	req := coachRequest{}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
			return
		}
	}

	input := services.CoachInput{
		Days:         14,
		MaxItems:     60,
		Focus:        req.Focus,
		IncludeNotes: true,
	}
	if req.Days != nil {
		input.Days = *req.Days
	}
	if req.MaxItems != nil {
		input.MaxItems = *req.MaxItems
	}
	if req.IncludeNotes != nil {
		input.IncludeNotes = *req.IncludeNotes
	}

	result, err := h.svc.Generate(c.Request.Context(), input)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *CoachHandler) ListModels(c *gin.Context) {
	raw, err := h.catalog.ListModels(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json", raw)
}

// handleError maps the error taxonomy onto HTTP statuses: validation and
// insufficient data are the caller's problem (422), missing credentials are
// ours (503), provider failures are upstream (502), anything else is 500.
func handleError(c *gin.Context, err error) {
	var apiErr *llm.APIError

	switch {
	case domain.IsValidationError(err), errors.Is(err, llm.ErrInvalidModel):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrInsufficientLogs):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})

	case errors.Is(err, llm.ErrMissingAPIKey), errors.Is(err, llm.ErrEmptyModel):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})

	case errors.As(err, &apiErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream llm failure", "details": apiErr.Error()})

	default:
		log.Printf("[ERROR] Request %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
