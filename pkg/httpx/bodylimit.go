package httpx

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// DefaultBodyLimit: 10 MiB.
const DefaultBodyLimit int64 = 10 << 20

// BodyLimit ограничивает размер тела запроса; превышение проявится ошибкой чтения в хендлере.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	if maxBytes <= 0 {
		maxBytes = DefaultBodyLimit
	}
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}

// IsBodyTooLarge: ошибка чтения вызвана превышением BodyLimit.
func IsBodyTooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe)
}
