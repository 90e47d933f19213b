package apperror

import (
	"errors"
	"net/http"
)

type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details any
}

// ToHTTP flattens any service error into the shape written by response.Error.
// Unknown errors are reported as INTERNAL_ERROR without leaking their text.
func ToHTTP(err error) HTTPError {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return HTTPError{
			Status:  http.StatusUnprocessableEntity,
			Code:    CodeValidation,
			Message: "Invalid input",
			Details: validationErr.Fields,
		}
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return HTTPError{
			Status:  appErr.HTTPStatus,
			Code:    appErr.Code,
			Message: appErr.Message,
		}
	}

	return HTTPError{
		Status:  ErrInternal.HTTPStatus,
		Code:    ErrInternal.Code,
		Message: ErrInternal.Message,
	}
}
