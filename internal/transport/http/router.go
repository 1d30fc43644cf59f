package rest

import (
	"net/http"
	"time"

	"github.com/Gunvolt24/pos_orders/internal/ports"
	"github.com/Gunvolt24/pos_orders/pkg/httpx"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// RouterOptions: параметры HTTP-пайплайна.
type RouterOptions struct {
	// OTelServiceName: если задан, подключается otelgin.
	OTelServiceName string
	CORS            httpx.CORSOptions
	// BodyLimit: максимум тела запроса в байтах (0 → 10 MiB).
	BodyLimit int64
	// DisableBackup: не регистрировать POST /api/orders/api/backup.
	DisableBackup bool
}

// Handler: HTTP-обработчики заказов поверх прикладного сервиса.
type Handler struct {
	service        ports.OrderService
	log            ports.Logger
	handlerTimeout time.Duration
	startedAt      time.Time
}

// NewHandler: handlerTimeout <= 0 означает без дополнительного дедлайна.
func NewHandler(service ports.OrderService, log ports.Logger, handlerTimeout time.Duration) *Handler {
	return &Handler{
		service:        service,
		log:            log,
		handlerTimeout: handlerTimeout,
		startedAt:      time.Now(),
	}
}

func NewRouter(h *Handler, opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(gin.CustomRecovery(h.recoverPanic))
	if opts.OTelServiceName != "" {
		r.Use(otelgin.Middleware(opts.OTelServiceName))
	}
	r.Use(httpx.RequestIDMiddleware())
	r.Use(httpx.RequestLogger(h.log))
	r.Use(httpx.CORS(opts.CORS))
	r.Use(httpx.BodyLimit(opts.BodyLimit))

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/health", h.health)

	orders := r.Group("/api/orders")
	{
		orders.POST("", h.createOrder)
		orders.GET("", h.listOrders)
		orders.GET("/:id", h.getOrderByID)
		orders.PATCH("/:id/status", h.updateStatus)
		orders.DELETE("/:id", h.deleteOrder)

		// служебные маршруты живут под тем же префиксом, как и у клиентов админки
		orders.GET("/api/stats", h.stats)
		// бэкап: для операторов; каждый вызов пишет полную копию документа на диск
		if !opts.DisableBackup {
			orders.POST("/api/backup", h.backup)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, failure("Endpoint not found"))
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, failure("Method not allowed"))
	})

	return r
}

// recoverPanic: паника в хендлере превращается в 500 с общим телом.
func (h *Handler) recoverPanic(c *gin.Context, rec any) {
	h.log.Errorf(c.Request.Context(), "panic recovered method=%s path=%s: %v", c.Request.Method, c.Request.URL.Path, rec)
	c.AbortWithStatusJSON(http.StatusInternalServerError, failure(msgInternal))
}
