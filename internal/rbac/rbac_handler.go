package rbac

import (
	"net/http"

	"github.com/anubhawdwd/hrms-be/internal/shared/apperror"
	"github.com/anubhawdwd/hrms-be/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("rbac.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// Enforce checks a permission for the calling role. The role always comes
// from the token, never from the body.
func (h *Handler) Enforce(c *gin.Context) {
	var req EnforceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, apperror.MapValidationError(err))
		return
	}
	req.Role = c.GetString("role")
	req.CompanyID = c.GetString("company_id")

	allowed, err := h.service.Enforce(c.Request.Context(), req)
	if err != nil {
		h.logger.Error("rbac enforce request failed", zap.Error(err))
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, EnforceResponse{Allowed: allowed}, nil)
}

func (h *Handler) MyPermissions(c *gin.Context) {
	role := c.GetString("role")
	perms, err := h.service.Permissions(role)
	if err != nil {
		h.logger.Error("list permissions failed", zap.String("role", role), zap.Error(err))
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, PermissionsResponse{Role: normalizeRole(role), Permissions: perms}, nil)
}

func (h *Handler) ListRoles(c *gin.Context) {
	response.Success(c, http.StatusOK, RolesResponse{Roles: h.service.Roles()}, nil)
}

// RolePermissions lists the effective grants of the role named in the path.
func (h *Handler) RolePermissions(c *gin.Context) {
	role := c.Param("role")
	if !IsKnownRole(role) {
		h.writeError(c, apperror.NotFound("role not found"))
		return
	}
	perms, err := h.service.Permissions(role)
	if err != nil {
		h.logger.Error("list role permissions failed", zap.String("role", role), zap.Error(err))
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, PermissionsResponse{Role: normalizeRole(role), Permissions: perms}, nil)
}
