package attendanceerrors

import (
	"net/http"

	"nexushr/internal/shared/apperror"
)

var (
	ErrAlreadyCheckedIn = apperror.New(
		apperror.CodeInvalidState,
		"you are already checked in, please check out first",
		http.StatusBadRequest,
	)
	ErrShiftAlreadyCompleted = apperror.New(
		apperror.CodeInvalidState,
		"you have already completed your shift for today",
		http.StatusBadRequest,
	)
	ErrNotCheckedIn = apperror.New(
		apperror.CodeInvalidState,
		"you are not checked in, please check in first",
		http.StatusBadRequest,
	)
	ErrAlreadyCheckedOutToday = apperror.New(
		apperror.CodeInvalidState,
		"you have already checked out today",
		http.StatusBadRequest,
	)
	ErrWeekendCheckIn = apperror.New(
		apperror.CodeInvalidState,
		"cannot check in on weekends",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
)
