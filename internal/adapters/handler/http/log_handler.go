package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/snixlabs/lifeops/internal/core/services"
)

type LogHandler struct {
	svc *services.LogService
}

func NewLogHandler(svc *services.LogService) *LogHandler {
	return &LogHandler{svc: svc}
}

type upsertLogRequest struct {
	Date      string  `json:"date" binding:"required"`
	Sleep     float64 `json:"sleep"`
	SleepQual int     `json:"sleepQual"`
	Trained   bool    `json:"trained"`
	TrainMin  int     `json:"trainMin"`
	TrainType string  `json:"trainType"`
	FoodScore int     `json:"foodScore"`
	Water     bool    `json:"water"`
	Meals     bool    `json:"meals"`
	Mood      int     `json:"mood"`
	Anxiety   int     `json:"anxiety"`
	Notes     string  `json:"notes"`
}

func (h *LogHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/logs", h.Upsert)
	router.DELETE("/logs/:date", h.Delete)
}

func (h *LogHandler) Upsert(c *gin.Context) {
	var req upsertLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	input := services.UpsertLogInput{
		Date:      req.Date,
		Sleep:     req.Sleep,
		SleepQual: req.SleepQual,
		Trained:   req.Trained,
		TrainMin:  req.TrainMin,
		TrainType: req.TrainType,
		FoodScore: req.FoodScore,
		Water:     req.Water,
		Meals:     req.Meals,
		Mood:      req.Mood,
		Anxiety:   req.Anxiety,
		Notes:     req.Notes,
	}

	if _, err := h.svc.Upsert(c.Request.Context(), input); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *LogHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("date")); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
