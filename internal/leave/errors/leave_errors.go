package leaveerrors

import (
	"fmt"
	"net/http"

	"nexushr/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidReviewerID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid reviewer id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrEndBeforeStart = apperror.New(
		apperror.CodeInvalidInput,
		"end date must not be before start date",
		http.StatusBadRequest,
	)
	ErrRetroactiveRequest = apperror.New(
		apperror.CodeInvalidInput,
		"cannot apply for leave in the past",
		http.StatusBadRequest,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrInvalidReviewStatus = apperror.New(
		apperror.CodeInvalidInput,
		"invalid status, expected Approved or Rejected",
		http.StatusBadRequest,
	)
	ErrAlreadyReviewed = apperror.New(
		apperror.CodeInvalidState,
		"leave request has already been reviewed",
		http.StatusBadRequest,
	)
)

// OverlapDetails identifies the existing request that blocks a new one.
type OverlapDetails struct {
	ConflictingStatus string `json:"conflicting_status"`
	StartDate         string `json:"start_date"`
	EndDate           string `json:"end_date"`
}

func Overlapping(status, startDate, endDate string) *apperror.AppError {
	return apperror.New(
		apperror.CodeConflict,
		fmt.Sprintf("you already have a %s leave request from %s to %s", status, startDate, endDate),
		http.StatusConflict,
	).WithDetails(OverlapDetails{
		ConflictingStatus: status,
		StartDate:         startDate,
		EndDate:           endDate,
	})
}
