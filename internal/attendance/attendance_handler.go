package attendance

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
	l := zap.L().Named("attendance.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("attendance request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.logger.Warn("http attendance validation failed", zap.String("path", c.FullPath()), zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return false
	}
	return true
}

func (h *Handler) CheckIn(c *gin.Context) {
	var req CheckRequest
	if !h.bind(c, &req) {
		return
	}

	resp, err := h.service.CheckIn(c.Request.Context(), c.GetString("company_id"), c.GetString("employee_id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) CheckOut(c *gin.Context) {
	var req CheckRequest
	if !h.bind(c, &req) {
		return
	}

	resp, err := h.service.CheckOut(c.Request.Context(), c.GetString("company_id"), c.GetString("employee_id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) MyDay(c *gin.Context) {
	h.day(c, c.GetString("employee_id"))
}

func (h *Handler) EmployeeDay(c *gin.Context) {
	h.day(c, c.Param("employeeId"))
}

func (h *Handler) day(c *gin.Context, employeeID string) {
	resp, err := h.service.GetDay(c.Request.Context(), c.GetString("company_id"), employeeID, c.Query("date"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) MyRange(c *gin.Context) {
	h.dayRange(c, c.GetString("employee_id"))
}

func (h *Handler) EmployeeRange(c *gin.Context) {
	h.dayRange(c, c.Param("employeeId"))
}

func (h *Handler) dayRange(c *gin.Context, employeeID string) {
	resp, err := h.service.GetRange(c.Request.Context(), c.GetString("company_id"), employeeID, c.Query("from"), c.Query("to"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListViolations(c *gin.Context) {
	var q ViolationQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.ListViolations(c.Request.Context(), c.GetString("company_id"), q)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) SetOfficeLocation(c *gin.Context) {
	var req SetOfficeLocationRequest
	if !h.bind(c, &req) {
		return
	}

	resp, err := h.service.SetOfficeLocation(c.Request.Context(), c.GetString("company_id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetOfficeLocation(c *gin.Context) {
	resp, err := h.service.GetOfficeLocation(c.Request.Context(), c.GetString("company_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpsertDesignationPolicy(c *gin.Context) {
	var req UpsertDesignationPolicyRequest
	if !h.bind(c, &req) {
		return
	}

	resp, err := h.service.UpsertDesignationPolicy(c.Request.Context(), c.GetString("company_id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpsertEmployeeOverride(c *gin.Context) {
	var req UpsertEmployeeOverrideRequest
	if !h.bind(c, &req) {
		return
	}

	resp, err := h.service.UpsertEmployeeOverride(c.Request.Context(), c.GetString("company_id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) HRUpsertDay(c *gin.Context) {
	var req HRUpsertDayRequest
	if !h.bind(c, &req) {
		return
	}

	resp, err := h.service.HRUpsertDay(c.Request.Context(), c.GetString("company_id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) HRUpdateDay(c *gin.Context) {
	var req HRUpdateDayRequest
	if !h.bind(c, &req) {
		return
	}

	resp, err := h.service.HRUpdateDay(c.Request.Context(), c.GetString("company_id"), c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) HRAddEvent(c *gin.Context) {
	var req HRAddEventRequest
	if !h.bind(c, &req) {
		return
	}

	resp, err := h.service.HRAddEvent(c.Request.Context(), c.GetString("company_id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}
