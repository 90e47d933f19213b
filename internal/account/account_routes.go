package account

import (
	"go-ess/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	accounts := r.Group("/accounts")
	{
		accounts.GET("", handler.List)
		accounts.POST("", middleware.Idempotency(rdb), handler.Save)
		accounts.GET("/draft", handler.GetDraft)
		accounts.PUT("/draft", middleware.RateLimitByUser(10, 20), handler.UpdateDraft)
		accounts.DELETE("/draft", handler.DiscardDraft)
		accounts.POST("/:id/default", middleware.RateLimitByUser(0.5, 2), handler.SetDefault)
	}

	r.GET("/banks", handler.Banks)
}
