package payrollerrors

import (
	"net/http"

	"nexushr/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrPayslipNotReady = apperror.New(
		apperror.CodeNotFound,
		"payslip has not been generated yet",
		http.StatusNotFound,
	)
)
