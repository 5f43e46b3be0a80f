package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/snixlabs/lifeops/internal/core/services"
)

type SettingsHandler struct {
	svc *services.SettingsService
}

func NewSettingsHandler(svc *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

type saveSettingsRequest struct {
	Goals map[string]any `json:"goals"`
	Theme string         `json:"theme"`
}

func (h *SettingsHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/state", h.GetState)
	router.PUT("/settings", h.Save)
}

func (h *SettingsHandler) GetState(c *gin.Context) {
	state, err := h.svc.GetState(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

func (h *SettingsHandler) Save(c *gin.Context) {
	var req saveSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	settings, err := h.svc.Save(c.Request.Context(), req.Goals, req.Theme)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "goals": settings.Goals, "theme": settings.Theme})
}
