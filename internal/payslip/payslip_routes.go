package payslip

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes expects r to be behind AuthMiddleware.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	payslips := r.Group("/payslips")
	{
		payslips.GET("", handler.List)
		payslips.GET("/:id", handler.GetByID)
		payslips.GET("/:id/pdf", handler.DownloadPDF)
	}
}
