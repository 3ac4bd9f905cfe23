package rbac

import "github.com/gin-gonic/gin"

// Authorizer builds a guard for resource and action. The caller supplies it
// so this package does not depend on the middleware that enforces it.
type Authorizer func(resource, action string) gin.HandlerFunc

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, auth gin.HandlerFunc, authorize Authorizer) {
	rbacGroup := r.Group("/rbac", auth)
	rbacGroup.POST("/enforce", handler.Enforce)
	rbacGroup.GET("/permissions/me", handler.MyPermissions)
	rbacGroup.GET("/roles", authorize("rbac", "read"), handler.ListRoles)
	rbacGroup.GET("/roles/:role/permissions", authorize("rbac", "read"), handler.RolePermissions)
}
