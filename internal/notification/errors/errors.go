package errors

import (
	"net/http"

	"go-ess/internal/shared/apperror"
)

var ErrNotificationNotFound = apperror.New(
	apperror.CodeNotFound,
	"Notification not found",
	http.StatusNotFound,
)
