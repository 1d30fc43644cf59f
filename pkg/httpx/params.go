package httpx

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// ClampInt: ограничение значения v в диапазоне [min, max].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ParseLimitOffset: limit/offset из query.
// Без limit (или с нечисловым): 0, то есть без ограничения; заданный limit зажимается в [1, maxLimit].
func ParseLimitOffset(c *gin.Context, maxLimit int) (limit, offset int) {
	if raw, ok := c.GetQuery("limit"); ok {
		if v, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
			limit = ClampInt(v, 1, maxLimit)
		}
	}
	if v, err := strconv.Atoi(c.DefaultQuery("offset", "0")); err == nil && v >= 0 {
		offset = v
	}
	return
}
