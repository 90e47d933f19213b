package salaryadvance

import (
	"net/http"

	"go-ess/internal/middleware"
	"go-ess/internal/shared/apperror"
	"go-ess/internal/shared/money"
	"go-ess/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type Handler struct {
	service Service
	rdb     *redis.Client
}

func NewHandler(service Service, rdb *redis.Client) *Handler {
	return &Handler{service: service, rdb: rdb}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Quote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.writeServiceError(c, apperror.ErrInvalidInput)
		return
	}
	response.Success(c, http.StatusOK, h.service.Quote(money.Parse(req.Amount)), nil)
}

func (h *Handler) Create(c *gin.Context) {
	defer middleware.ReleaseIdempotency(c, h.rdb)

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.ErrInvalidInput)
		return
	}

	resp, err := h.service.Request(c.Request.Context(), c.GetString("user_id"), req.Amount)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	middleware.RememberIdempotent(c, h.rdb, resp)
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items, nil)
}
