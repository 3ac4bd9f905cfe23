package leave

import (
	"github.com/anubhawdwd/hrms-be/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	auth gin.HandlerFunc,
	rbacService middleware.RBACService,
	idempotency gin.HandlerFunc,
) {
	leaves := r.Group("/leaves")
	leaves.Use(auth)
	{
		leaves.GET("/types", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.ListLeaveTypes)
		leaves.POST("/types", middleware.RBACAuthorize(rbacService, "leave_admin", "manage"), handler.CreateLeaveType)
		leaves.PATCH("/types/:id", middleware.RBACAuthorize(rbacService, "leave_admin", "manage"), handler.UpdateLeaveType)

		leaves.GET("/policies", middleware.RBACAuthorize(rbacService, "leave_admin", "read"), handler.ListPolicies)
		leaves.PUT("/policies", middleware.RBACAuthorize(rbacService, "leave_admin", "manage"), handler.UpsertPolicy)
		leaves.PUT("/overrides", middleware.RBACAuthorize(rbacService, "leave_admin", "manage"), handler.UpsertOverride)

		leaves.GET("/holidays", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.ListHolidays)
		leaves.POST("/holidays", middleware.RBACAuthorize(rbacService, "leave_admin", "manage"), handler.CreateHoliday)
		leaves.DELETE("/holidays/:id", middleware.RBACAuthorize(rbacService, "leave_admin", "manage"), handler.DeleteHoliday)

		leaves.GET("/balances/me", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.MyBalances)
		leaves.GET("/balances/employees/:employeeId", middleware.RBACAuthorize(rbacService, "leave_admin", "read"), handler.EmployeeBalances)
		leaves.POST("/balances/allocate", middleware.RBACAuthorize(rbacService, "leave_admin", "manage"), handler.AllocateBalance)

		leaves.POST("/requests",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "leave", "create"),
			idempotency,
			handler.Apply,
		)
		leaves.GET("/requests/me", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.ListMine)
		leaves.GET("/requests/pending", middleware.RBACAuthorize(rbacService, "leave", "approve"), handler.ListPending)
		leaves.GET("/requests/today", middleware.RBACAuthorize(rbacService, "leave", "approve"), handler.ListOnDate)
		leaves.PATCH("/requests/:id/cancel", middleware.RBACAuthorize(rbacService, "leave", "create"), handler.Cancel)
		leaves.PATCH("/requests/:id/approve", middleware.RBACAuthorize(rbacService, "leave", "approve"), handler.Approve)
		leaves.PATCH("/requests/:id/reject", middleware.RBACAuthorize(rbacService, "leave", "approve"), handler.Reject)
		leaves.PATCH("/requests/:id/hr-cancel", middleware.RBACAuthorize(rbacService, "leave", "hr_cancel"), handler.HRCancel)

		leaves.POST("/encashments",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "leave", "create"),
			idempotency,
			handler.RequestEncashment,
		)
		leaves.PATCH("/encashments/:id/approve", middleware.RBACAuthorize(rbacService, "leave", "approve"), handler.ApproveEncashment)
		leaves.PATCH("/encashments/:id/reject", middleware.RBACAuthorize(rbacService, "leave", "approve"), handler.RejectEncashment)
	}
}
