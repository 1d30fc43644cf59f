package rest

import (
	"net/http"
	"time"

	"github.com/Gunvolt24/pos_orders/internal/domain"
	"github.com/gin-gonic/gin"
)

// health: жив ли процесс и доступно ли хранилище (статистика считается по документу).
func (h *Handler) health(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	now := time.Now()
	st, err := h.service.Stats(ctx)
	if err != nil {
		h.log.Errorf(ctx, "health check failed err=%v", err)
		c.JSON(http.StatusInternalServerError, healthResponse{
			Status:    "unhealthy",
			Timestamp: domain.FormatTimestamp(now),
			Database:  healthDatabase{Connected: false, Error: "Database connection failed"},
		})
		return
	}

	c.JSON(http.StatusOK, healthResponse{
		Status:    "healthy",
		Timestamp: domain.FormatTimestamp(now),
		Uptime:    now.Sub(h.startedAt).Seconds(),
		Database:  healthDatabase{Connected: true, Stats: &st},
	})
}
