package leavebalance

import (
	"tourhr/internal/middleware"
	"tourhr/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	balances := r.Group("/leave-balances")
	balances.Use(middleware.AuthMiddleware())
	{
		balances.GET("/employees/:employeeId", middleware.RBACAuthorize(rbacService, rbac.ResourceLeaveBalance, "read"), handler.GetByEmployee)
		balances.POST("/initialize", middleware.RBACAuthorize(rbacService, rbac.ResourceLeaveBalance, "manage"), handler.InitializeYear)
		balances.POST("/:id/adjust", middleware.RBACAuthorize(rbacService, rbac.ResourceLeaveBalance, "manage"), handler.Adjust)
	}
}
