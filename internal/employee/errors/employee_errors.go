package employeeerrors

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
	ErrInvalidPositionID = apperror.New(
		apperror.CodeInvalidInput,
		"position id must be a valid UUID",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrEmailTaken = apperror.New(
		apperror.CodeConflict,
		"an employee with this email already exists",
		http.StatusConflict,
	)
	ErrManagerNotFound = apperror.New(
		apperror.CodeNotFound,
		"manager not found",
		http.StatusNotFound,
	)
	ErrManagerHasNoPosition = apperror.New(
		apperror.CodeInvalidInput,
		"manager has no primary position assigned",
		http.StatusBadRequest,
	)
)
