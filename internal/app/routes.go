package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	handlers "github.com/jeffleon2/draftea-payment-orchestrator/internal/handlers"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds the HTTP surface. gin.Default already installs the
// Logger and Recovery middleware.
func NewRouter(h *handlers.PaymentHandler) *gin.Engine {
	r := gin.Default()
	RegisterRoutes(r, h)
	return r
}

func RegisterRoutes(r *gin.Engine, h *handlers.PaymentHandler) {
	app := r.Group("/payments")
	app.POST("/authorize", h.Authorize)
	app.GET("/:id", h.GetPayment)
	app.POST("/authorizations/:id/capture", h.Capture)
	app.POST("/authorizations/:id/cancel", h.Cancel)
	app.POST("/captures/:id/settle", h.Settle)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
