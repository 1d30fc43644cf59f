package httpx

import (
	"strconv"
	"time"

	"github.com/Gunvolt24/pos_orders/internal/ports"
	"github.com/Gunvolt24/pos_orders/pkg/ctxmeta"
	"github.com/Gunvolt24/pos_orders/pkg/metrics"
	"github.com/gin-gonic/gin"
)

// unmatchedRoute: метка маршрута для запросов мимо роутера (404/405),
// чтобы произвольные пути не раздували кардинальность метрик.
const unmatchedRoute = "unmatched"

// RequestLogger: логирует запрос и пишет HTTP-метрики.
func RequestLogger(log ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		status := c.Writer.Status()

		metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
		metrics.HTTPDuration.WithLabelValues(c.Request.Method, route).Observe(elapsed.Seconds())

		// не логируем /metrics, /ping, /health
		switch route {
		case "/metrics", "/ping", "/health":
			return
		}

		rid, _ := ctxmeta.RequestIDFromContext(c.Request.Context())
		tr, _ := ctxmeta.TraceIDFromContext(c.Request.Context())

		log.Infof(
			c.Request.Context(),
			"request id=%s trace=%s method=%s path=%s status=%d ip=%s duration=%s size=%d",
			rid, tr,
			c.Request.Method,
			c.Request.URL.Path,
			status,
			c.ClientIP(),
			elapsed,
			c.Writer.Size(),
		)
	}
}
