package leaveerrors

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
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveTypeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave type id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"from_date must be before or equal to_date",
		http.StatusBadRequest,
	)
	ErrCrossYearSpan = apperror.New(
		apperror.CodeInvalidInput,
		"leave cannot span across years",
		http.StatusBadRequest,
	)
	ErrInvalidDurationType = apperror.New(
		apperror.CodeInvalidInput,
		"duration_type must be one of FULL_DAY, HALF_DAY, QUARTER_DAY, HOURLY",
		http.StatusBadRequest,
	)
	ErrSingleDayRequired = apperror.New(
		apperror.CodeInvalidInput,
		"partial-day leave must start and end on the same date",
		http.StatusBadRequest,
	)
	ErrSlotRequired = apperror.New(
		apperror.CodeInvalidInput,
		"slot is required for this duration type",
		http.StatusBadRequest,
	)
	ErrInvalidSlot = apperror.New(
		apperror.CodeInvalidInput,
		"slot is not valid for this duration type",
		http.StatusBadRequest,
	)
	ErrTimeRequired = apperror.New(
		apperror.CodeInvalidInput,
		"start_time and end_time are required for hourly leave",
		http.StatusBadRequest,
	)
	ErrInvalidTimeFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid time format, expected HH:MM",
		http.StatusBadRequest,
	)
	ErrInvalidTimeWindow = apperror.New(
		apperror.CodeInvalidInput,
		"start_time must be before end_time",
		http.StatusBadRequest,
	)
	ErrHourlyWindowTooShort = apperror.New(
		apperror.CodeInvalidInput,
		"hourly leave must be at least 15 minutes",
		http.StatusBadRequest,
	)
	ErrInvalidYear = apperror.New(
		apperror.CodeInvalidInput,
		"year must be 2000 or later",
		http.StatusBadRequest,
	)
	ErrNegativeAllocation = apperror.New(
		apperror.CodeInvalidInput,
		"allocation cannot be negative",
		http.StatusBadRequest,
	)
	ErrNegativeCarryForward = apperror.New(
		apperror.CodeInvalidInput,
		"max_carry_forward cannot be negative",
		http.StatusBadRequest,
	)
	ErrInvalidGenderRestriction = apperror.New(
		apperror.CodeInvalidInput,
		"gender_restriction must be MALE or FEMALE",
		http.StatusBadRequest,
	)
	ErrInvalidDays = apperror.New(
		apperror.CodeInvalidInput,
		"days must be greater than zero",
		http.StatusBadRequest,
	)
	ErrNameRequired = apperror.New(
		apperror.CodeInvalidInput,
		"name is required",
		http.StatusBadRequest,
	)
	ErrCodeRequired = apperror.New(
		apperror.CodeInvalidInput,
		"code is required",
		http.StatusBadRequest,
	)
	ErrReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"reason is required",
		http.StatusBadRequest,
	)
	ErrLeaveTypeInactive = apperror.New(
		apperror.CodeInvalidInput,
		"leave type is not active",
		http.StatusBadRequest,
	)
	ErrGenderNotEligible = apperror.New(
		apperror.CodeInvalidInput,
		"leave type is not available for this employee's gender",
		http.StatusBadRequest,
	)
	ErrProbationNotEligible = apperror.New(
		apperror.CodeInvalidInput,
		"leave type is not available during probation",
		http.StatusBadRequest,
	)
	ErrEncashmentNotAllowed = apperror.New(
		apperror.CodeInvalidInput,
		"encashment is not allowed for this leave type",
		http.StatusBadRequest,
	)
	ErrAllocationBelowUsed = apperror.New(
		apperror.CodeInvalidInput,
		"allocation would leave a negative remaining balance",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrApproverNotFound = apperror.New(
		apperror.CodeNotFound,
		"approver not found",
		http.StatusNotFound,
	)
	ErrLeaveTypeNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave type not found",
		http.StatusNotFound,
	)
	ErrPolicyNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave policy not configured for this year",
		http.StatusNotFound,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrEncashmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave encashment not found",
		http.StatusNotFound,
	)
	ErrBalanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave balance not found",
		http.StatusNotFound,
	)
	ErrHolidayNotFound = apperror.New(
		apperror.CodeNotFound,
		"holiday not found",
		http.StatusNotFound,
	)
	ErrLeaveOverlap = apperror.New(
		apperror.CodeConflict,
		"leave already exists in overlapping period",
		http.StatusConflict,
	)
	ErrAlreadyProcessed = apperror.New(
		apperror.CodeConflict,
		"already processed",
		http.StatusConflict,
	)
	ErrLeaveTypeCodeExists = apperror.New(
		apperror.CodeConflict,
		"leave type code already exists",
		http.StatusConflict,
	)
	ErrHolidayExists = apperror.New(
		apperror.CodeConflict,
		"holiday already exists on this date",
		http.StatusConflict,
	)
	ErrCreditExceedsUsed = apperror.New(
		apperror.CodeConflict,
		"credit exceeds used leave",
		http.StatusConflict,
	)
	ErrInsufficientBalance = apperror.New(
		apperror.CodeInsufficientBalance,
		"insufficient leave balance",
		http.StatusUnprocessableEntity,
	)
	ErrNotRequestOwner = apperror.New(
		apperror.CodeForbidden,
		"only the requester can cancel a pending leave",
		http.StatusForbidden,
	)
)
