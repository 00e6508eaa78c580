package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes wires the wizard pages behind the session middleware
func RegisterRoutes(router *gin.Engine, h *Handlers, session gin.HandlerFunc, gatherer prometheus.Gatherer) {
	router.SetHTMLTemplate(Templates())

	router.GET("/health", h.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	router.GET("/sorry", h.Sorry)
	router.GET("/thank-you", h.ThankYou)
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, screeningPath)
	})

	screening := router.Group(screeningPath, session)
	screening.GET("", h.ShowScreening)
	screening.POST("/fields/:field", h.ValidateField)
	screening.POST("/step1", h.AdvanceStep1)
	screening.POST("/submit", h.SubmitApplication)
}
