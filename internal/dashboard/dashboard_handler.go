package dashboard

import (
	"net/http"

	"go-ess/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Get(c *gin.Context) {
	response.Success(c, http.StatusOK, h.service.Get(c.Request.Context()), nil)
}
