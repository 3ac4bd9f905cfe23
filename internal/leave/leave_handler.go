package leave

import (
	"net/http"
	"strconv"

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
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("leave request failed",
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
		h.logger.Warn("http leave validation failed", zap.String("path", c.FullPath()), zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return false
	}
	return true
}

func queryYear(c *gin.Context) (int, bool) {
	raw := c.Query("year")
	if raw == "" {
		return 0, true
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return year, true
}

func (h *Handler) Apply(c *gin.Context) {
	companyID := c.GetString("company_id")
	employeeID := c.GetString("employee_id")
	h.logger.Debug("http apply leave", zap.String("company_id", companyID), zap.String("employee_id", employeeID))

	var req ApplyLeaveRequest
	if !h.bind(c, &req) {
		return
	}

	resp, err := h.service.Apply(c.Request.Context(), companyID, employeeID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Cancel(c *gin.Context) {
	resp, err := h.service.Cancel(c.Request.Context(), c.GetString("company_id"), c.GetString("employee_id"), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Approve(c *gin.Context) {
	resp, err := h.service.Approve(c.Request.Context(), c.GetString("company_id"), c.GetString("employee_id"), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Reject(c *gin.Context) {
	var req RejectLeaveRequest
	// body is optional
	if c.Request.ContentLength > 0 && !h.bind(c, &req) {
		return
	}

	resp, err := h.service.Reject(c.Request.Context(), c.GetString("company_id"), c.GetString("employee_id"), c.Param("id"), req.Reason)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) HRCancel(c *gin.Context) {
	var req HRCancelLeaveRequest
	if !h.bind(c, &req) {
		return
	}

	resp, err := h.service.HRCancel(c.Request.Context(), c.GetString("company_id"), c.GetString("employee_id"), c.Param("id"), req.Reason)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListMine(c *gin.Context) {
	resp, err := h.service.ListRequests(c.Request.Context(), c.GetString("company_id"), c.GetString("employee_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Page(c, resp)
}

func (h *Handler) ListPending(c *gin.Context) {
	resp, err := h.service.ListPending(c.Request.Context(), c.GetString("company_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListOnDate(c *gin.Context) {
	resp, err := h.service.ListOnDate(c.Request.Context(), c.GetString("company_id"), c.Query("date"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) MyBalances(c *gin.Context) {
	h.balances(c, c.GetString("employee_id"))
}

func (h *Handler) EmployeeBalances(c *gin.Context) {
	h.balances(c, c.Param("employeeId"))
}

func (h *Handler) balances(c *gin.Context, employeeID string) {
	year, ok := queryYear(c)
	if !ok {
		h.writeServiceError(c, apperror.InvalidField("Year"))
		return
	}
	resp, err := h.service.GetBalances(c.Request.Context(), c.GetString("company_id"), employeeID, year)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) RequestEncashment(c *gin.Context) {
	var req EncashmentRequest
	if !h.bind(c, &req) {
		return
	}
	resp, err := h.service.RequestEncashment(c.Request.Context(), c.GetString("company_id"), c.GetString("employee_id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) ApproveEncashment(c *gin.Context) {
	resp, err := h.service.ApproveEncashment(c.Request.Context(), c.GetString("company_id"), c.GetString("employee_id"), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) RejectEncashment(c *gin.Context) {
	resp, err := h.service.RejectEncashment(c.Request.Context(), c.GetString("company_id"), c.GetString("employee_id"), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) CreateLeaveType(c *gin.Context) {
	var req CreateLeaveTypeRequest
	if !h.bind(c, &req) {
		return
	}
	resp, err := h.service.CreateLeaveType(c.Request.Context(), c.GetString("company_id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) UpdateLeaveType(c *gin.Context) {
	var req UpdateLeaveTypeRequest
	if !h.bind(c, &req) {
		return
	}
	resp, err := h.service.UpdateLeaveType(c.Request.Context(), c.GetString("company_id"), c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListLeaveTypes(c *gin.Context) {
	resp, err := h.service.ListLeaveTypes(c.Request.Context(), c.GetString("company_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpsertPolicy(c *gin.Context) {
	var req UpsertPolicyRequest
	if !h.bind(c, &req) {
		return
	}
	resp, err := h.service.UpsertPolicy(c.Request.Context(), c.GetString("company_id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListPolicies(c *gin.Context) {
	year, ok := queryYear(c)
	if !ok {
		h.writeServiceError(c, apperror.InvalidField("Year"))
		return
	}
	resp, err := h.service.ListPolicies(c.Request.Context(), c.GetString("company_id"), year)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpsertOverride(c *gin.Context) {
	var req UpsertOverrideRequest
	if !h.bind(c, &req) {
		return
	}
	resp, err := h.service.UpsertOverride(c.Request.Context(), c.GetString("company_id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) CreateHoliday(c *gin.Context) {
	var req CreateHolidayRequest
	if !h.bind(c, &req) {
		return
	}
	resp, err := h.service.CreateHoliday(c.Request.Context(), c.GetString("company_id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) ListHolidays(c *gin.Context) {
	resp, err := h.service.ListHolidays(c.Request.Context(), c.GetString("company_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) DeleteHoliday(c *gin.Context) {
	if err := h.service.DeleteHoliday(c.Request.Context(), c.GetString("company_id"), c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) AllocateBalance(c *gin.Context) {
	var req AllocateBalanceRequest
	if !h.bind(c, &req) {
		return
	}
	resp, err := h.service.AllocateBalance(c.Request.Context(), c.GetString("company_id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
