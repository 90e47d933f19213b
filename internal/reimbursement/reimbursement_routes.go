package reimbursement

import (
	"go-ess/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	reimbursements := r.Group("/reimbursements")
	{
		reimbursements.GET("", handler.List)
		reimbursements.POST("", middleware.Idempotency(rdb), handler.Create)
		reimbursements.GET("/:id", handler.GetByID)
	}
}
