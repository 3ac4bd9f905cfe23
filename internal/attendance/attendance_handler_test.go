package attendance_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anubhawdwd/hrms-be/internal/attendance"
	attendanceerrors "github.com/anubhawdwd/hrms-be/internal/attendance/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeService struct {
	attendance.Service
	checkInFn func(ctx context.Context, companyID, employeeID string, req attendance.CheckRequest) (attendance.CheckResponse, error)
	getDayFn  func(ctx context.Context, companyID, employeeID, date string) (attendance.AttendanceDayResponse, error)
}

func (f *fakeService) CheckIn(ctx context.Context, companyID, employeeID string, req attendance.CheckRequest) (attendance.CheckResponse, error) {
	return f.checkInFn(ctx, companyID, employeeID, req)
}

func (f *fakeService) GetDay(ctx context.Context, companyID, employeeID, date string) (attendance.AttendanceDayResponse, error) {
	return f.getDayFn(ctx, companyID, employeeID, date)
}

type envelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newTestContext(method, target string, body any) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	c.Request = httptest.NewRequest(method, target, &buf)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("company_id", "company-1")
	c.Set("employee_id", "employee-1")
	return c, w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestHandler_CheckIn(t *testing.T) {
	t.Run("success passes identity from context", func(t *testing.T) {
		svc := &fakeService{checkInFn: func(ctx context.Context, companyID, employeeID string, req attendance.CheckRequest) (attendance.CheckResponse, error) {
			assert.Equal(t, "company-1", companyID)
			assert.Equal(t, "employee-1", employeeID)
			assert.Equal(t, "PWA", req.Source)
			require.NotNil(t, req.Latitude)
			assert.Equal(t, 23.0522, *req.Latitude)
			return attendance.CheckResponse{Message: "Checked in successfully", Date: "2024-03-04"}, nil
		}}
		h := attendance.NewHandler(svc, zap.NewNop())
		c, w := newTestContext(http.MethodPost, "/attendance/check-in", map[string]any{
			"source": "PWA", "latitude": 23.0522, "longitude": 72.4938,
		})

		h.CheckIn(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decode(t, w)
		assert.True(t, env.Ok)
		assert.Contains(t, string(env.Data), "Checked in successfully")
	})

	t.Run("invalid source is rejected before the service", func(t *testing.T) {
		svc := &fakeService{checkInFn: func(context.Context, string, string, attendance.CheckRequest) (attendance.CheckResponse, error) {
			t.Fatal("service must not be called")
			return attendance.CheckResponse{}, nil
		}}
		h := attendance.NewHandler(svc, zap.NewNop())
		c, w := newTestContext(http.MethodPost, "/attendance/check-in", map[string]any{"source": "KIOSK"})

		h.CheckIn(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, decode(t, w).Ok)
	})

	t.Run("geofence violation maps to forbidden", func(t *testing.T) {
		svc := &fakeService{checkInFn: func(context.Context, string, string, attendance.CheckRequest) (attendance.CheckResponse, error) {
			return attendance.CheckResponse{}, attendanceerrors.ErrOutsideOffice
		}}
		h := attendance.NewHandler(svc, zap.NewNop())
		c, w := newTestContext(http.MethodPost, "/attendance/check-in", map[string]any{
			"source": "WEB", "latitude": 23.06, "longitude": 72.49,
		})

		h.CheckIn(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
		env := decode(t, w)
		assert.Equal(t, "GEOFENCE_VIOLATION", env.Error.Code)
		assert.Equal(t, "Outside office premises", env.Error.Message)
	})

	t.Run("missing office maps to precondition failed", func(t *testing.T) {
		svc := &fakeService{checkInFn: func(context.Context, string, string, attendance.CheckRequest) (attendance.CheckResponse, error) {
			return attendance.CheckResponse{}, attendanceerrors.ErrOfficeNotConfigured
		}}
		h := attendance.NewHandler(svc, zap.NewNop())
		c, w := newTestContext(http.MethodPost, "/attendance/check-in", map[string]any{"source": "WEB"})

		h.CheckIn(c)

		assert.Equal(t, http.StatusPreconditionFailed, w.Code)
		assert.Equal(t, "CONFIGURATION_ERROR", decode(t, w).Error.Code)
	})
}

func TestHandler_EmployeeDay(t *testing.T) {
	svc := &fakeService{getDayFn: func(ctx context.Context, companyID, employeeID, date string) (attendance.AttendanceDayResponse, error) {
		assert.Equal(t, "employee-9", employeeID)
		assert.Equal(t, "2024-03-04", date)
		return attendance.AttendanceDayResponse{}, attendanceerrors.ErrAttendanceDayNotFound
	}}
	h := attendance.NewHandler(svc, zap.NewNop())
	c, w := newTestContext(http.MethodGet, "/attendance/employees/employee-9/day?date=2024-03-04", nil)
	c.Params = gin.Params{{Key: "employeeId", Value: "employee-9"}}

	h.EmployeeDay(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", decode(t, w).Error.Code)
}
