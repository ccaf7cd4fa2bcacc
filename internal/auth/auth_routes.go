package auth

import (
	"nexushr/internal/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	authGroup := r.Group("/auth")
	{
		// Brute-force guard di endpoint login
		authGroup.POST("/login", middleware.RateLimitByIP(rate.Limit(1), 5), h.Login)
		authGroup.POST("/refresh", h.Refresh)
		authGroup.GET("/me", middleware.AuthMiddleware(), h.GetMe)
	}
}
