package api

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Handlers groups the controllers the router mounts
type Handlers struct {
	Analysis    *AnalysisController
	Remediation *RemediationController
	Sessions    *SessionController
	Metrics     http.Handler
	AccessLog   bool
}

// NewRouter builds the gin engine with every API route
func NewRouter(h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/api/v1/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "MRP Analysis",
		})
	})

	if h.AccessLog {
		r.Use(func(c *gin.Context) {
			start := time.Now()
			c.Next()
			log.Printf("🌐 %s %s - Status: %d - Latency: %v",
				c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
		})
	}

	if h.Metrics != nil {
		r.GET("/metrics", gin.WrapH(h.Metrics))
	}

	apiGroup := r.Group("/api/v1")
	{
		if h.Analysis != nil {
			apiGroup.GET("/sources", h.Analysis.GetSources)
			apiGroup.POST("/analysis", h.Analysis.Analyze)
			apiGroup.POST("/analysis/run", h.Analysis.RunInput)
			apiGroup.GET("/boms/validation", h.Analysis.ValidateBOMs)
		}

		if h.Remediation != nil {
			apiGroup.POST("/remediations", h.Remediation.Execute)
			apiGroup.GET("/work-orders", h.Remediation.ListWorkOrders)
			apiGroup.GET("/work-orders/:id", h.Remediation.GetWorkOrder)
		}

		if h.Sessions != nil {
			sessions := apiGroup.Group("/sessions")
			sessions.POST("", h.Sessions.Create)
			sessions.GET("/:id", h.Sessions.Get)
			sessions.PUT("/:id/selection", h.Sessions.SetSelection)
			sessions.POST("/:id/sales/:saleId/toggle", h.Sessions.ToggleSale)
			sessions.POST("/:id/quotations/:quotationId/toggle", h.Sessions.ToggleQuotation)
			sessions.POST("/:id/run", h.Sessions.Run)
			sessions.DELETE("/:id/selection", h.Sessions.Reset)
			sessions.DELETE("/:id", h.Sessions.Delete)
		}
	}

	return r
}

func respondError(c *gin.Context, status int, message string, err error) {
	body := gin.H{"error": message}
	if err != nil {
		body["details"] = err.Error()
	}
	c.JSON(status, body)
}
