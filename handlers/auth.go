package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/rushali2005/studentpp/models"
	"github.com/rushali2005/studentpp/services"
)

const defaultDisplayName = "Anonymous"

type AuthHandler struct {
	db          *gorm.DB
	authService *services.AuthService
	logger      *zap.Logger
}

func NewAuthHandler(db *gorm.DB, authService *services.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{db: db, authService: authService, logger: logger.Named("auth")}
}

type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"displayName" binding:"max=80"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	hash, err := h.authService.HashPassword(req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		displayName = defaultDisplayName
	}

	user := models.User{
		ID:          uuid.NewString(),
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Password:    hash,
		DisplayName: displayName,
		CreatedAt:   time.Now().UTC(),
	}
	err = h.db.WithContext(c.Request.Context()).Create(&user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
		return
	}
	if err != nil {
		h.logger.Error("registration failed", zap.String("email", user.Email), zap.Error(err))
		respondError(c, &services.PersistenceError{Op: "create user", Err: err})
		return
	}

	token, err := h.authService.GenerateToken(user.ID, user.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	h.logger.Info("user registered", zap.String("user_id", user.ID))
	c.JSON(http.StatusCreated, AuthResponse{Token: token, User: user})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	var user models.User
	err := h.db.WithContext(c.Request.Context()).
		Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(c, &services.AuthenticationError{Reason: "invalid credentials"})
		return
	}
	if err != nil {
		respondError(c, &services.PersistenceError{Op: "find user", Err: err})
		return
	}

	if !h.authService.CheckPassword(user.Password, req.Password) {
		respondError(c, &services.AuthenticationError{Reason: "invalid credentials"})
		return
	}

	token, err := h.authService.GenerateToken(user.ID, user.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, AuthResponse{Token: token, User: user})
}

// Logout is stateless; clients drop the token.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
