package positionerrors

import (
	"net/http"

	"go-leave/internal/shared/apperror"
)

var (
	ErrInvalidPositionID = apperror.New(
		apperror.CodeInvalidInput,
		"position id must be a valid UUID",
		http.StatusBadRequest,
	)
	ErrPositionNotFound = apperror.New(
		apperror.CodeNotFound,
		"position not found",
		http.StatusNotFound,
	)
	ErrPositionCodeTaken = apperror.New(
		apperror.CodeConflict,
		"a position with this code already exists",
		http.StatusConflict,
	)
)
