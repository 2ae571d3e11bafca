package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rushali2005/studentpp/middleware"
	"github.com/rushali2005/studentpp/services"
)

type AnalyticsHandler struct {
	predictions *services.PredictionService
}

func NewAnalyticsHandler(predictions *services.PredictionService) *AnalyticsHandler {
	return &AnalyticsHandler{predictions: predictions}
}

func (h *AnalyticsHandler) Series(c *gin.Context) {
	series, err := h.predictions.Series(c.Request.Context(), middleware.OwnerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, series)
}

func (h *AnalyticsHandler) Summary(c *gin.Context) {
	sum, err := h.predictions.Summary(c.Request.Context(), middleware.OwnerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}
