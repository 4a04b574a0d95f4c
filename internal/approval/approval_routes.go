package approval

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
	chains := r.Group("/approval-chains")
	chains.Use(middleware.AuthMiddleware())
	{
		chains.POST("", middleware.RBACAuthorize(rbacService, rbac.ResourceApprovalChain, "manage"), handler.CreateChain)
		chains.GET("", middleware.RBACAuthorize(rbacService, rbac.ResourceApprovalChain, "read"), handler.GetChains)
		chains.GET("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceApprovalChain, "read"), handler.GetChain)
		chains.PUT("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceApprovalChain, "manage"), handler.UpdateChain)
		chains.DELETE("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceApprovalChain, "manage"), handler.DeactivateChain)
	}

	requests := r.Group("/approval-requests")
	requests.Use(middleware.AuthMiddleware())
	{
		requests.POST("",
			middleware.RBACAuthorize(rbacService, rbac.ResourceApprovalRequest, "create"),
			middleware.Idempotency(rdb),
			handler.SubmitRequest,
		)
		requests.GET("/pending", middleware.RBACAuthorize(rbacService, rbac.ResourceApprovalRequest, "read"), handler.GetPending)
		requests.GET("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceApprovalRequest, "read"), handler.GetRequest)
		requests.POST("/:id/actions",
			middleware.RBACAuthorize(rbacService, rbac.ResourceApprovalRequest, "act"),
			middleware.Idempotency(rdb),
			handler.RecordAction,
		)
		requests.POST("/:id/cancel", middleware.RBACAuthorize(rbacService, rbac.ResourceApprovalRequest, "create"), handler.CancelRequest)
	}
}
