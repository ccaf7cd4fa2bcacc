package attendance

import (
	"nexushr/internal/middleware"
	"nexushr/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service, rdb *redis.Client) {
	attendances := r.Group("/attendances")
	attendances.Use(middleware.AuthMiddleware())
	{
		attendances.GET("", middleware.RBACAuthorize(rbacService, "attendance", "read"), h.GetAll)
		attendances.GET("/today", middleware.RBACAuthorize(rbacService, "attendance", "read"), h.GetToday)
		attendances.GET("/history", middleware.RBACAuthorize(rbacService, "attendance", "read"), h.GetHistory)
		attendances.POST("/check-in",
			middleware.RBACAuthorize(rbacService, "attendance", "create"),
			middleware.Idempotency(rdb),
			h.CheckIn,
		)
		attendances.POST("/check-out", middleware.RBACAuthorize(rbacService, "attendance", "create"), h.CheckOut)
	}
}
