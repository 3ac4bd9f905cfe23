package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/anubhawdwd/hrms-be/internal/shared/apperror"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

func TestToHTTP(t *testing.T) {
	t.Run("app error keeps code and status", func(t *testing.T) {
		got := apperror.ToHTTP(apperror.InsufficientBalance("insufficient leave balance"))
		assert.Equal(t, http.StatusUnprocessableEntity, got.Status)
		assert.Equal(t, apperror.CodeInsufficientBalance, got.Code)
		assert.Equal(t, "insufficient leave balance", got.Message)
	})

	t.Run("wrapped app error is unwrapped", func(t *testing.T) {
		err := fmt.Errorf("approve: %w", apperror.Conflict("already processed"))
		got := apperror.ToHTTP(err)
		assert.Equal(t, http.StatusConflict, got.Status)
		assert.Equal(t, apperror.CodeConflict, got.Code)
	})

	t.Run("unknown error is internal", func(t *testing.T) {
		got := apperror.ToHTTP(errors.New("pq: connection refused"))
		assert.Equal(t, http.StatusInternalServerError, got.Status)
		assert.Equal(t, apperror.CodeInternalError, got.Code)
		assert.NotContains(t, got.Message, "pq")
	})
}

func TestKinds(t *testing.T) {
	assert.Equal(t, http.StatusForbidden, apperror.GeoFence("Outside office premises").HTTPStatus)
	assert.Equal(t, http.StatusPreconditionFailed, apperror.Configuration("Office location not configured").HTTPStatus)
	assert.True(t, apperror.HasCode(fmt.Errorf("x: %w", apperror.NotFound("missing")), apperror.CodeNotFound))
	assert.False(t, apperror.HasCode(errors.New("plain"), apperror.CodeNotFound))
	assert.Equal(t, "Leave Type is required", apperror.RequiredField("Leave Type").Message)
}

type shiftWindow struct {
	Day   string `json:"day" binding:"required,date"`
	Start string `json:"start_time" binding:"omitempty,clock"`
}

func TestInit_RegistersDateAndClock(t *testing.T) {
	apperror.Init()
	apperror.Init()

	tests := []struct {
		name    string
		in      shiftWindow
		wantErr string
	}{
		{"valid", shiftWindow{Day: "2024-02-29", Start: "09:30"}, ""},
		{"empty clock is allowed", shiftWindow{Day: "2024-03-01"}, ""},
		{"bad date", shiftWindow{Day: "2024-02-30"}, "Day must be a date in YYYY-MM-DD format"},
		{"bad clock", shiftWindow{Day: "2024-03-01", Start: "9:30"}, "Start Time must be a time in HH:MM format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(tt.in)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			var appErr *apperror.AppError
			assert.True(t, errors.As(apperror.MapValidationError(err), &appErr))
			assert.Equal(t, tt.wantErr, appErr.Message)
			assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
		})
	}
}
