package taxcalc

import (
	"net/http"

	"go-ess/internal/shared/apperror"
	"go-ess/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) EstimatePAYE(c *gin.Context) {
	var req PAYERequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.ErrInvalidInput)
		return
	}

	resp, err := h.service.EstimatePAYE(req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) EstimateRentRelief(c *gin.Context) {
	var req RentReliefRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.ErrInvalidInput)
		return
	}

	resp, err := h.service.EstimateRentRelief(req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListClaims(c *gin.Context) {
	claims, err := h.service.ListClaims(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, claims, nil)
}
