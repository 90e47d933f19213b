package wizard

import (
	"go-ess/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RegisterRoutes expects r to be behind AuthMiddleware.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	wizards := r.Group("/wizards")
	{
		wizards.GET("", handler.Flows)
		wizards.POST("/:flow", handler.Start)
		wizards.GET("/:flow/:id", handler.Get)
		wizards.PATCH("/:flow/:id/fields", handler.SetFields)
		wizards.POST("/:flow/:id/advance", handler.Advance)
		wizards.POST("/:flow/:id/retreat", handler.Retreat)
		wizards.POST("/:flow/:id/submit", middleware.Idempotency(rdb), handler.Submit)
		wizards.POST("/:flow/:id/choose", handler.Choose)
		wizards.DELETE("/:flow/:id", handler.Discard)
	}
}
