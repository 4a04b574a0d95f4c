package leavetype

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
	types := r.Group("/leave-types")
	types.Use(middleware.AuthMiddleware())
	{
		types.GET("", middleware.RBACAuthorize(rbacService, rbac.ResourceLeaveType, "read"), handler.GetAll)
		types.GET("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceLeaveType, "read"), handler.GetById)
		types.POST("", middleware.RBACAuthorize(rbacService, rbac.ResourceLeaveType, "manage"), handler.Create)
		types.PUT("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceLeaveType, "manage"), handler.Update)
		types.DELETE("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceLeaveType, "manage"), handler.Deactivate)
	}
}
