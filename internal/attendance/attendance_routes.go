package attendance

import (
	"github.com/anubhawdwd/hrms-be/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, auth gin.HandlerFunc, rbacService middleware.RBACService) {
	att := r.Group("/attendance")
	att.Use(auth)
	{
		att.POST("/check-in",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, "attendance", "create"),
			h.CheckIn,
		)
		att.POST("/check-out",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, "attendance", "create"),
			h.CheckOut,
		)
		att.GET("/day", middleware.RBACAuthorize(rbacService, "attendance", "read"), h.MyDay)
		att.GET("/range", middleware.RBACAuthorize(rbacService, "attendance", "read"), h.MyRange)

		att.GET("/employees/:employeeId/day", middleware.RBACAuthorize(rbacService, "attendance_admin", "read"), h.EmployeeDay)
		att.GET("/employees/:employeeId/range", middleware.RBACAuthorize(rbacService, "attendance_admin", "read"), h.EmployeeRange)
		att.GET("/violations", middleware.RBACAuthorize(rbacService, "attendance_admin", "read"), h.ListViolations)

		att.GET("/office", middleware.RBACAuthorize(rbacService, "attendance", "read"), h.GetOfficeLocation)
		att.PUT("/office", middleware.RBACAuthorize(rbacService, "attendance_admin", "manage"), h.SetOfficeLocation)
		att.PUT("/designation-policies", middleware.RBACAuthorize(rbacService, "attendance_admin", "manage"), h.UpsertDesignationPolicy)
		att.PUT("/employee-overrides", middleware.RBACAuthorize(rbacService, "attendance_admin", "manage"), h.UpsertEmployeeOverride)

		att.POST("/hr/days", middleware.RBACAuthorize(rbacService, "attendance_admin", "manage"), h.HRUpsertDay)
		att.PATCH("/hr/days/:id", middleware.RBACAuthorize(rbacService, "attendance_admin", "manage"), h.HRUpdateDay)
		att.POST("/hr/events", middleware.RBACAuthorize(rbacService, "attendance_admin", "manage"), h.HRAddEvent)
	}
}
