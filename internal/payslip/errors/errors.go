package errors

import (
	"go-ess/internal/shared/apperror"
	"net/http"
)

var (
	ErrPayslipNotFound = apperror.New(
		apperror.CodeNotFound,
		"Payslip not found",
		http.StatusNotFound,
	)

	ErrPayslipIDRequired = apperror.RequiredField("payslip id")

	ErrRenderPDF = apperror.New(
		apperror.CodeInternalError,
		"Could not generate PDF. Please try again later.",
		http.StatusInternalServerError,
	)
)
