package attendanceerrors

import (
	"net/http"

	"github.com/anubhawdwd/hrms-be/internal/shared/apperror"
)

var (
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidDesignationID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid designation id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidTimestamp = apperror.New(
		apperror.CodeInvalidInput,
		"invalid timestamp, expected RFC3339",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"from must be before or equal to",
		http.StatusBadRequest,
	)
	ErrIncompleteDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"from and to must be provided together",
		http.StatusBadRequest,
	)
	ErrInvalidSource = apperror.New(
		apperror.CodeInvalidInput,
		"source must be WEB or PWA",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"status must be one of PRESENT, ABSENT, PARTIAL, LEAVE",
		http.StatusBadRequest,
	)
	ErrInvalidEventType = apperror.New(
		apperror.CodeInvalidInput,
		"type must be CHECK_IN or CHECK_OUT",
		http.StatusBadRequest,
	)
	ErrNegativeMinutes = apperror.New(
		apperror.CodeInvalidInput,
		"total_minutes cannot be negative",
		http.StatusBadRequest,
	)
	ErrLocationRequired = apperror.New(
		apperror.CodeInvalidInput,
		"latitude and longitude are required",
		http.StatusBadRequest,
	)
	ErrInvalidLatitude = apperror.New(
		apperror.CodeInvalidInput,
		"latitude must be between -90 and 90",
		http.StatusBadRequest,
	)
	ErrInvalidLongitude = apperror.New(
		apperror.CodeInvalidInput,
		"longitude must be between -180 and 180",
		http.StatusBadRequest,
	)
	ErrInvalidRadius = apperror.New(
		apperror.CodeInvalidInput,
		"radius_m must be greater than zero",
		http.StatusBadRequest,
	)
	ErrConflictingFlags = apperror.New(
		apperror.CodeInvalidInput,
		"auto_present and attendance_exempt cannot both be true",
		http.StatusBadRequest,
	)
	ErrInvalidValidityWindow = apperror.New(
		apperror.CodeInvalidInput,
		"valid_to must be on or after valid_from",
		http.StatusBadRequest,
	)
	ErrEventDateMismatch = apperror.New(
		apperror.CodeInvalidInput,
		"timestamp does not fall on the attendance date",
		http.StatusBadRequest,
	)

	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrAttendanceDayNotFound = apperror.New(
		apperror.CodeNotFound,
		"attendance day not found",
		http.StatusNotFound,
	)

	ErrOfficeNotConfigured = apperror.Configuration("Office location not configured")
	ErrOutsideOffice       = apperror.GeoFence("Outside office premises")

	ErrAlreadyCheckedIn = apperror.New(
		apperror.CodeConflict,
		"Already checked in",
		http.StatusConflict,
	)
	ErrCheckOutWithoutCheckIn = apperror.New(
		apperror.CodeConflict,
		"Cannot check out without checking in",
		http.StatusConflict,
	)
	ErrInvalidCheckOut = apperror.New(
		apperror.CodeConflict,
		"Invalid check-out",
		http.StatusConflict,
	)
)
