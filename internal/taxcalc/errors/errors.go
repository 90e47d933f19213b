package errors

import (
	"net/http"

	"go-ess/internal/shared/apperror"
)

var (
	ErrNoIncome = apperror.New(
		apperror.CodeInvalidInput,
		"Enter your salary or freelance income to see your estimate",
		http.StatusBadRequest,
	)

	ErrSaveClaim = apperror.New(
		apperror.CodeInternalError,
		"Could not save your rent relief claim",
		http.StatusInternalServerError,
	)
)
