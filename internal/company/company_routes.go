package company

import (
	"github.com/anubhawdwd/hrms-be/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, auth gin.HandlerFunc, rbacService middleware.RBACService) {
	company := r.Group("/companies")
	company.Use(auth)
	{
		company.GET("/me",
			middleware.RateLimitByUser(2, 10),
			handler.GetMe,
		)

		// 1 req / 10s, settings rarely change
		company.PATCH("/me/attendance-settings",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "company", "update"),
			handler.UpdateAttendanceSettings,
		)
	}
}
