package wizard

import (
	"net/http"

	"go-ess/internal/middleware"
	"go-ess/internal/shared/apperror"
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

func (h *Handler) respond(c *gin.Context, status int, view View, err error) {
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, status, view, nil)
}

func (h *Handler) Flows(c *gin.Context) {
	response.Success(c, http.StatusOK, FlowsResponse{Flows: h.service.Flows()}, nil)
}

func (h *Handler) Start(c *gin.Context) {
	view, err := h.service.Start(c.Request.Context(), c.GetString("user_id"), c.Param("flow"))
	h.respond(c, http.StatusCreated, view, err)
}

func (h *Handler) Get(c *gin.Context) {
	view, err := h.service.Get(c.Request.Context(), c.GetString("user_id"), c.Param("flow"), c.Param("id"))
	h.respond(c, http.StatusOK, view, err)
}

func (h *Handler) SetFields(c *gin.Context) {
	var req SetFieldsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	view, err := h.service.SetFields(c.Request.Context(), c.GetString("user_id"), c.Param("flow"), c.Param("id"), Data(req.Fields))
	h.respond(c, http.StatusOK, view, err)
}

func (h *Handler) Advance(c *gin.Context) {
	view, err := h.service.Advance(c.Request.Context(), c.GetString("user_id"), c.Param("flow"), c.Param("id"))
	h.respond(c, http.StatusOK, view, err)
}

func (h *Handler) Retreat(c *gin.Context) {
	view, err := h.service.Retreat(c.Request.Context(), c.GetString("user_id"), c.Param("flow"), c.Param("id"))
	h.respond(c, http.StatusOK, view, err)
}

// Submit answers 200 with the view even when the submission failed; the
// failure is carried in view.error.
func (h *Handler) Submit(c *gin.Context) {
	defer middleware.ReleaseIdempotency(c, h.rdb)

	view, err := h.service.Submit(c.Request.Context(), c.GetString("user_id"), c.Param("flow"), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if view.Error == "" {
		middleware.RememberIdempotent(c, h.rdb, view)
	}
	response.Success(c, http.StatusOK, view, nil)
}

func (h *Handler) Choose(c *gin.Context) {
	var req ChooseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	view, err := h.service.Choose(c.Request.Context(), c.GetString("user_id"), c.Param("flow"), c.Param("id"), req.Outcome)
	h.respond(c, http.StatusOK, view, err)
}

func (h *Handler) Discard(c *gin.Context) {
	if err := h.service.Discard(c.Request.Context(), c.GetString("user_id"), c.Param("flow"), c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
