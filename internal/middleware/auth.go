// internal/middleware/auth.go
package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/retailnet/ordering-backend/internal/config"
	"github.com/retailnet/ordering-backend/internal/models"
	"github.com/retailnet/ordering-backend/internal/utils"
)

// AuthRequired resolves the caller's identity from the configured transport
// artifact: an opaque session cookie backed by the access_tokens table, or
// a signed bearer JWT. Unauthenticated and inactive users get 401.
func AuthRequired(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := resolveUser(c, db, cfg)
		if !ok {
			utils.UnauthorizedResponse(c, "")
			c.Abort()
			return
		}

		if !user.IsActive {
			utils.UnauthorizedResponse(c, "Account is inactive")
			c.Abort()
			return
		}

		c.Set("user_id", user.ID)
		c.Set("username", user.Username)
		c.Set("usertype", string(user.UserType))
		c.Set("current_user", user)
		c.Next()
	}
}

// SuperuserRequired must run after AuthRequired.
func SuperuserRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok || !user.IsSuperuser {
			utils.ForbiddenResponse(c, "")
			c.Abort()
			return
		}
		c.Next()
	}
}

func CurrentUser(c *gin.Context) (*models.User, bool) {
	if v, exists := c.Get("current_user"); exists {
		if user, ok := v.(*models.User); ok {
			return user, true
		}
	}
	return nil, false
}

func resolveUser(c *gin.Context, db *gorm.DB, cfg *config.Config) (*models.User, bool) {
	switch cfg.Auth.Transport {
	case config.AuthTransportCookie:
		return resolveSessionUser(c, db, cfg)
	default:
		return resolveJWTUser(c, db)
	}
}

func resolveSessionUser(c *gin.Context, db *gorm.DB, cfg *config.Config) (*models.User, bool) {
	value, err := c.Cookie(cfg.Auth.CookieName)
	if err != nil || value == "" {
		return nil, false
	}

	cutoff := time.Now().Add(-time.Duration(cfg.Auth.TokenTTL) * time.Second)

	var token models.AccessToken
	if err := db.Where("token = ? AND created_at > ?", value, cutoff).First(&token).Error; err != nil {
		return nil, false
	}

	var user models.User
	if err := db.First(&user, token.UserID).Error; err != nil {
		return nil, false
	}
	return &user, true
}

func resolveJWTUser(c *gin.Context, db *gorm.DB) (*models.User, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, false
	}

	claims, err := utils.ValidateToken(parts[1], utils.ScopeAuth)
	if err != nil {
		return nil, false
	}

	var user models.User
	if err := db.First(&user, claims.UserID).Error; err != nil {
		return nil, false
	}
	return &user, true
}
