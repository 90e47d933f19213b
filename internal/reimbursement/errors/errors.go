package errors

import (
	"net/http"

	"go-ess/internal/shared/apperror"
)

var (
	ErrReimbursementNotFound = apperror.New(
		apperror.CodeNotFound,
		"Reimbursement not found",
		http.StatusNotFound,
	)

	ErrSubmitFailed = apperror.New(
		apperror.CodeInternalError,
		"Submission failed. Please try again.",
		http.StatusInternalServerError,
	)
)
