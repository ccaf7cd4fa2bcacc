package holidayerrors

import (
	"net/http"

	"nexushr/internal/shared/apperror"
)

var (
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrDuplicateDate = apperror.New(
		apperror.CodeConflict,
		"a holiday already exists on that date",
		http.StatusConflict,
	)
)
