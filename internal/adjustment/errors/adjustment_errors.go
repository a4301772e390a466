package adjustmenterrors

import (
	"net/http"

	"go-leave/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"employee id must be a valid UUID",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveTypeID = apperror.New(
		apperror.CodeInvalidInput,
		"leave type id must be a valid UUID",
		http.StatusBadRequest,
	)
	ErrInvalidApproverID = apperror.New(
		apperror.CodeInvalidInput,
		"approver id must be a valid UUID",
		http.StatusBadRequest,
	)
	ErrInvalidDays = apperror.New(
		apperror.CodeInvalidInput,
		"days count must be greater than zero",
		http.StatusBadRequest,
	)
	ErrAdjustmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"adjustment not found",
		http.StatusNotFound,
	)
	ErrAdjustmentNotCreated = apperror.New(
		apperror.CodeInvalidState,
		"adjustment has already been approved",
		http.StatusBadRequest,
	)
)
