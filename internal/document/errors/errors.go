package errors

import (
	"go-ess/internal/shared/apperror"
	"net/http"
)

var (
	ErrNotFound = apperror.New(
		apperror.CodeNotFound,
		"Document not found",
		http.StatusNotFound,
	)

	ErrConflict = apperror.New(
		apperror.CodeConflict,
		"Document already exists",
		http.StatusConflict,
	)
)
