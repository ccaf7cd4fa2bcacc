package dashboard

import (
	"nexushr/internal/middleware"
	"nexushr/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	dashboards := r.Group("/dashboard")
	dashboards.Use(middleware.AuthMiddleware())
	{
		dashboards.GET("/stats", middleware.RBACAuthorize(rbacService, "dashboard", "read"), h.GetStats)
	}
}
