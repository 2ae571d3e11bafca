package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rushali2005/studentpp/middleware"
	"github.com/rushali2005/studentpp/models"
	"github.com/rushali2005/studentpp/services"
)

type ProfileHandler struct {
	db *gorm.DB
}

func NewProfileHandler(db *gorm.DB) *ProfileHandler {
	return &ProfileHandler{db: db}
}

type UpdateProfileRequest struct {
	DisplayName string `json:"displayName" binding:"required,max=80"`
}

func (h *ProfileHandler) Get(c *gin.Context) {
	user, err := h.load(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *ProfileHandler) Update(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	name := strings.TrimSpace(req.DisplayName)
	if name == "" {
		name = defaultDisplayName
	}

	user, err := h.load(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.db.WithContext(c.Request.Context()).
		Model(&user).Update("display_name", name).Error; err != nil {
		respondError(c, &services.PersistenceError{Op: "update user", Err: err})
		return
	}
	user.DisplayName = name
	c.JSON(http.StatusOK, user)
}

func (h *ProfileHandler) load(c *gin.Context) (models.User, error) {
	id := middleware.OwnerID(c)
	var user models.User
	err := h.db.WithContext(c.Request.Context()).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, &services.AuthenticationError{Reason: "unknown user"}
	}
	if err != nil {
		return models.User{}, &services.PersistenceError{Op: "find user", Err: err}
	}
	return user, nil
}
