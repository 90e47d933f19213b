package errors

import (
	"net/http"

	"go-ess/internal/shared/apperror"
)

var (
	ErrFlowNotFound = apperror.New(
		apperror.CodeNotFound,
		"Wizard not found",
		http.StatusNotFound,
	)

	ErrSessionNotFound = apperror.New(
		apperror.CodeNotFound,
		"Wizard session not found or expired",
		http.StatusNotFound,
	)

	ErrInvalidTransition = apperror.New(
		apperror.CodeInvalidState,
		"This action is not available at the current step",
		http.StatusConflict,
	)

	ErrSubmissionInProgress = apperror.New(
		apperror.CodeConflict,
		"A submission is already in progress",
		http.StatusConflict,
	)

	ErrSessionBusy = apperror.New(
		apperror.CodeConflict,
		"This wizard is being updated, please try again",
		http.StatusConflict,
	)

	ErrSubmissionFailed = apperror.New(
		apperror.CodeInternalError,
		"Submission failed, please try again",
		http.StatusInternalServerError,
	)
)
