package holiday

import (
	"nexushr/internal/middleware"
	"nexushr/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	holidays := r.Group("/holidays")
	holidays.Use(middleware.AuthMiddleware())
	{
		holidays.GET("", middleware.RBACAuthorize(rbacService, "holiday", "read"), h.GetAll)
		holidays.POST("", middleware.RBACAuthorize(rbacService, "holiday", "create"), h.Create)
	}
}
