package calendarerrors

import (
	"net/http"

	"go-leave/internal/shared/apperror"
)

var (
	ErrInvalidCalendarID = apperror.New(
		apperror.CodeInvalidInput,
		"calendar id must be a valid UUID",
		http.StatusBadRequest,
	)
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"blocked period dates must be valid and start on or before end",
		http.StatusBadRequest,
	)
	ErrInvalidPeriodIndex = apperror.New(
		apperror.CodeInvalidInput,
		"blocked period index is out of range",
		http.StatusBadRequest,
	)
	ErrCalendarNotFound = apperror.New(
		apperror.CodeNotFound,
		"calendar not found",
		http.StatusNotFound,
	)
	ErrCalendarYearExists = apperror.New(
		apperror.CodeConflict,
		"a calendar for this year already exists",
		http.StatusConflict,
	)
)
