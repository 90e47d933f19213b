package taxcalc

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	tax := r.Group("/tax")
	{
		tax.POST("/paye", handler.EstimatePAYE)
		tax.POST("/rent-relief/estimate", handler.EstimateRentRelief)
		tax.GET("/rent-relief/claims", handler.ListClaims)
	}
}
