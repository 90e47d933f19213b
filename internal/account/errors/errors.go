package errors

import (
	"net/http"

	"go-ess/internal/shared/apperror"
)

var (
	ErrAccountNotFound = apperror.New(
		apperror.CodeNotFound,
		"Account not found",
		http.StatusNotFound,
	)

	ErrDraftNotFound = apperror.New(
		apperror.CodeNotFound,
		"No bank details are being edited",
		http.StatusNotFound,
	)

	ErrSaveFailed = apperror.New(
		apperror.CodeInternalError,
		"Could not save bank details. Please try again.",
		http.StatusInternalServerError,
	)

	ErrProfileUnavailable = apperror.New(
		apperror.CodeUpstream,
		"Could not load your profile",
		http.StatusBadGateway,
	)
)
