package leaveerrors

import (
	"net/http"

	"tourhr/internal/shared/apperror"
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
	ErrInvalidLeaveID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave request id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"dates must use the YYYY-MM-DD format",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start date must not be after end date",
		http.StatusBadRequest,
	)
	ErrHalfDayRange = apperror.New(
		apperror.CodeInvalidInput,
		"a half-day leave must start and end on the same date",
		http.StatusBadRequest,
	)
	ErrLeaveTypeInactive = apperror.New(
		apperror.CodeInvalidInput,
		"leave type is not active",
		http.StatusBadRequest,
	)
	ErrClassNotApplicable = apperror.New(
		apperror.CodeInvalidInput,
		"leave type does not apply to this employee class",
		http.StatusBadRequest,
	)
	ErrNoticeTooShort = apperror.New(
		apperror.CodeInvalidInput,
		"leave request does not meet the minimum notice period",
		http.StatusBadRequest,
	)
	ErrTooManyConsecutiveDays = apperror.New(
		apperror.CodeInvalidInput,
		"leave request exceeds the maximum consecutive days",
		http.StatusBadRequest,
	)
	ErrDocumentRequired = apperror.New(
		apperror.CodeInvalidInput,
		"this leave type requires a supporting document",
		http.StatusBadRequest,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrBlackoutPeriod = apperror.New(
		apperror.CodeConflict,
		"Cannot apply leave during blackout period",
		http.StatusConflict,
	)
	ErrLeaveOverlap = apperror.New(
		apperror.CodeConflict,
		"employee already has leave overlapping this period",
		http.StatusConflict,
	)
	ErrNotCurrentApprover = apperror.New(
		apperror.CodeForbidden,
		"only the current step approver may act on this request",
		http.StatusForbidden,
	)
	ErrNotOwner = apperror.New(
		apperror.CodeForbidden,
		"only the requesting employee may cancel this request",
		http.StatusForbidden,
	)
	ErrNotPending = apperror.New(
		apperror.CodeInvalidState,
		"leave request is not awaiting approval",
		http.StatusConflict,
	)
	ErrNotCancellable = apperror.New(
		apperror.CodeInvalidState,
		"only draft or pending leave requests can be cancelled",
		http.StatusConflict,
	)
	ErrNotRevocable = apperror.New(
		apperror.CodeInvalidState,
		"only approved leave requests can be revoked",
		http.StatusConflict,
	)
	ErrConcurrentUpdate = apperror.New(
		apperror.CodeConflict,
		"leave request was updated concurrently, retry the operation",
		http.StatusConflict,
	)
)
