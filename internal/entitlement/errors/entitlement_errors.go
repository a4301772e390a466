package entitlementerrors

import (
	"net/http"

	"go-leave/internal/shared/apperror"
)

var (
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
	ErrInvalidDays = apperror.New(
		apperror.CodeInvalidInput,
		"days must be greater than zero",
		http.StatusBadRequest,
	)
	ErrEntitlementNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave entitlement not found",
		http.StatusNotFound,
	)
	ErrEntitlementExists = apperror.New(
		apperror.CodeConflict,
		"entitlement already exists for this employee, leave type and year",
		http.StatusConflict,
	)
	ErrInsufficientBalance = apperror.New(
		apperror.CodeInsufficientBalance,
		"insufficient leave balance",
		http.StatusBadRequest,
	)
	ErrInsufficientPending = apperror.New(
		apperror.CodeInsufficientPending,
		"insufficient pending leave balance",
		http.StatusBadRequest,
	)

	// Underflow of pending/taken means a request and its entitlement have
	// drifted apart. That is a bug signal, not a user error.
	ErrPendingInconsistent = apperror.New(
		apperror.CodeInconsistentState,
		"pending balance is inconsistent",
		http.StatusInternalServerError,
	)
	ErrTakenInconsistent = apperror.New(
		apperror.CodeInconsistentState,
		"taken balance is inconsistent",
		http.StatusInternalServerError,
	)
)
