package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rushali2005/studentpp/middleware"
	"github.com/rushali2005/studentpp/models"
	"github.com/rushali2005/studentpp/services"
)

type PredictionHandler struct {
	predictions *services.PredictionService
}

func NewPredictionHandler(predictions *services.PredictionService) *PredictionHandler {
	return &PredictionHandler{predictions: predictions}
}

// Submit only rejects undecodable JSON here; missing and malformed fields are
// reported by the feature validator.
func (h *PredictionHandler) Submit(c *gin.Context) {
	var form models.FeatureForm
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequest(c, err)
		return
	}

	sub, err := h.predictions.Submit(c.Request.Context(), middleware.OwnerID(c), form)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sub)
}

func (h *PredictionHandler) List(c *gin.Context) {
	p := ParsePagination(c)

	view, err := h.predictions.History(c.Request.Context(), middleware.OwnerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, PageHistory(view, p))
}

func (h *PredictionHandler) Delete(c *gin.Context) {
	if err := h.predictions.Delete(c.Request.Context(), middleware.OwnerID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
