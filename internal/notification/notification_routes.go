package notification

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	notifications := r.Group("/notifications")
	{
		notifications.GET("", handler.List)
		notifications.POST("/read-all", handler.MarkAllRead)
		notifications.POST("/:id/read", handler.MarkRead)
	}
}
