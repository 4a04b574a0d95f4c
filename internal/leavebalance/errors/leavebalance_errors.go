package leavebalanceerrors

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
	ErrInvalidYear = apperror.New(
		apperror.CodeInvalidInput,
		"invalid balance year",
		http.StatusBadRequest,
	)
	ErrInvalidDayAmount = apperror.New(
		apperror.CodeInvalidInput,
		"day amount must be a positive decimal",
		http.StatusBadRequest,
	)
	ErrBalanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave balance not found",
		http.StatusNotFound,
	)
	ErrInsufficientBalance = apperror.New(
		apperror.CodeConflict,
		"Insufficient leave balance",
		http.StatusConflict,
	)
	ErrPendingUnderflow = apperror.New(
		apperror.CodeConflict,
		"pending balance is smaller than the requested amount",
		http.StatusConflict,
	)
	ErrConcurrentUpdate = apperror.New(
		apperror.CodeConflict,
		"balance was updated concurrently, retry the operation",
		http.StatusConflict,
	)
)
