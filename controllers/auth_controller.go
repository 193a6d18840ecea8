package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/foliohq/folio/config"
	"github.com/foliohq/folio/models"
	"github.com/foliohq/folio/utils"
)

// AuthController handles login, session introspection and logout.
type AuthController struct {
	db *gorm.DB
}

// NewAuthController creates a new AuthController instance.
func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{db: db}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials and issues a signed token. Unknown email and
// wrong password are indistinguishable in the response.
func (c *AuthController) Login(ctx *gin.Context) {
	var req loginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.BindFailure(ctx, err)
		return
	}

	var user models.User
	if err := c.db.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error; err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	ttl := time.Duration(config.Get().TokenTTLHours) * time.Hour
	token, err := utils.GenerateToken(user.ID, user.Email, ttl)
	if err != nil {
		utils.ServerError(ctx, "sign in", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// Me returns the user behind the presented token.
func (c *AuthController) Me(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Unauthorized(ctx)
		return
	}

	var user models.User
	if err := c.db.First(&user, userID).Error; err != nil {
		utils.Unauthorized(ctx)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": user})
}

// Logout revokes the presented token until its natural expiry.
func (c *AuthController) Logout(ctx *gin.Context) {
	authHeader := ctx.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 {
		token := strings.TrimSpace(parts[1])
		if claims, err := utils.ParseToken(token); err == nil && claims.ExpiresAt != nil {
			utils.BlacklistToken(token, claims.ExpiresAt.Time)
		}
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}
