package salaryadvance

import (
	"go-ess/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	advances := r.Group("/salary-advances")
	{
		advances.GET("", handler.List)
		advances.GET("/quote", handler.Quote)
		advances.POST("", middleware.Idempotency(rdb), handler.Create)
	}
}
