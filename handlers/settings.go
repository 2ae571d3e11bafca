package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rushali2005/studentpp/middleware"
	"github.com/rushali2005/studentpp/models"
	"github.com/rushali2005/studentpp/services"
)

type SettingsHandler struct {
	settings *services.SettingsStore
}

func NewSettingsHandler(settings *services.SettingsStore) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

func (h *SettingsHandler) Get(c *gin.Context) {
	s, err := h.settings.Get(c.Request.Context(), middleware.OwnerID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *SettingsHandler) Put(c *gin.Context) {
	var req models.Settings
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	s, err := h.settings.Save(c.Request.Context(), middleware.OwnerID(c), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *SettingsHandler) Reset(c *gin.Context) {
	s, err := h.settings.Reset(c.Request.Context(), middleware.OwnerID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *SettingsHandler) fail(c *gin.Context, err error) {
	if errors.Is(err, services.ErrCacheUnavailable) {
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "settings are unavailable"})
		return
	}
	respondError(c, err)
}
