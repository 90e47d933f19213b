package errors

import (
	"net/http"

	"go-ess/internal/shared/apperror"
)

var ErrRequestFailed = apperror.New(
	apperror.CodeInternalError,
	"Could not submit your salary advance request",
	http.StatusInternalServerError,
)
