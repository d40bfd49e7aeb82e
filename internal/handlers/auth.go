package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/CamiloArboledaG/reviewHub/internal/config"
	"github.com/CamiloArboledaG/reviewHub/internal/middleware"
	"github.com/CamiloArboledaG/reviewHub/internal/services"
	"github.com/CamiloArboledaG/reviewHub/pkg/logger"
)

type AuthHandler struct {
	authService *services.AuthService
	jwtConfig   *config.JWTConfig
	logger      *logger.Logger
}

func NewAuthHandler(authService *services.AuthService, jwtConfig *config.JWTConfig, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		jwtConfig:   jwtConfig,
		logger:      logger,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if !h.issueSession(c, user.ID.String()) {
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if !h.issueSession(c, user.ID.String()) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Logout clears the cookie and, when the request still carries a valid
// token, denylists its session id so the token itself dies too.
func (h *AuthHandler) Logout(c *gin.Context) {
	if cookie, err := c.Cookie(middleware.CookieName); err == nil && cookie != "" {
		if claims, err := middleware.ParseToken(cookie, h.jwtConfig.Secret); err == nil {
			remaining := time.Duration(0)
			if claims.ExpiresAt != nil {
				remaining = time.Until(claims.ExpiresAt.Time)
			}
			if err := h.authService.Logout(c.Request.Context(), claims.ID, remaining); err != nil {
				h.logger.WithError(err).Error("Failed to revoke session on logout")
			}
		}
	}

	middleware.ClearAuthCookie(c, h.jwtConfig.CookieSecure)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logout successful"})
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	user, err := h.authService.GetProfile(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *AuthHandler) issueSession(c *gin.Context, userID string) bool {
	token, _, err := middleware.GenerateToken(userID, h.jwtConfig.Secret, h.jwtConfig.ExpireTime)
	if err != nil {
		h.logger.WithError(err).Error("Failed to generate session token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return false
	}

	middleware.SetAuthCookie(c, token, h.jwtConfig.ExpireTime, h.jwtConfig.CookieSecure)
	return true
}
