package security

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yamagishi2448dev-lab/inventory-main-sub001/internal/rate_limiter"
	"github.com/yamagishi2448dev-lab/inventory-main-sub001/internal/repository"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

var loginLimiter = rate_limiter.NewRateLimiter(10, 5*time.Minute)

// RegisterAuthRoutes mounts the token endpoint. It stays outside the JWT
// middleware so clients can obtain their first token.
func RegisterAuthRoutes(router *gin.RouterGroup, repo *repository.Repository) {
	router.POST("/auth", func(c *gin.Context) {
		clientIP := c.ClientIP()
		if !loginLimiter.IsAllowed(clientIP) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many login attempts. Please try again later.",
			})
			return
		}

		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
			return
		}

		user, err := AuthenticateUser(req.Username, req.Password, repo)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}

		token, err := GenerateJWT(user.ID, user.Role, user.Username)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to generate token", "details": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"token": token,
			"user": gin.H{
				"id":       user.ID,
				"username": user.Username,
				"fullname": user.Fullname,
				"role":     user.Role,
			},
		})
	})
}
