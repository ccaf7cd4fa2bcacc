package payroll

import (
	"nexushr/internal/middleware"
	"nexushr/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	payrolls := r.Group("/payrolls")
	payrolls.Use(middleware.AuthMiddleware())
	{
		payrolls.GET("", middleware.RBACAuthorize(rbacService, "payroll", "read_all"), h.GetAll)
		payrolls.GET("/me", middleware.RBACAuthorize(rbacService, "payroll", "read"), h.GetMe)
		payrolls.GET("/me/payslip", middleware.RBACAuthorize(rbacService, "payroll", "read"), h.DownloadPayslip)
		payrolls.POST("/me/payslip/requests", middleware.RBACAuthorize(rbacService, "payroll", "read"), h.RequestPayslip)
	}
}
