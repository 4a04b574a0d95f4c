package leave

import (
	"tourhr/internal/middleware"
	"tourhr/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.POST("",
			middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, "create"),
			middleware.Idempotency(rdb),
			handler.Create,
		)
		leaves.GET("", middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, "read"), handler.GetAll)
		leaves.GET("/pending", middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, "read"), handler.GetPending)
		leaves.GET("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, "read"), handler.GetByID)
		leaves.POST("/:id/actions",
			middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, "act"),
			middleware.Idempotency(rdb),
			handler.ProcessAction,
		)
		leaves.POST("/:id/cancel", middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, "create"), handler.Cancel)
		leaves.POST("/:id/revoke", middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, "manage"), handler.Revoke)
	}
}
