package leavepolicyerrors

import (
	"net/http"

	"go-leave/internal/shared/apperror"
)

var (
	ErrInvalidPolicyID = apperror.New(
		apperror.CodeInvalidInput,
		"policy id must be a valid UUID",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveTypeID = apperror.New(
		apperror.CodeInvalidInput,
		"leave type id must be a valid UUID",
		http.StatusBadRequest,
	)
	ErrInvalidExpiryDate = apperror.New(
		apperror.CodeInvalidInput,
		"carry forward expiry must be a valid date (YYYY-MM-DD)",
		http.StatusBadRequest,
	)
	ErrPolicyNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave policy not found",
		http.StatusNotFound,
	)
	ErrPolicyExists = apperror.New(
		apperror.CodeConflict,
		"a policy for this leave type and year already exists",
		http.StatusConflict,
	)
)
