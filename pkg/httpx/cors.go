package httpx

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORSOptions: в production разрешены только перечисленные origin'ы,
// иначе любой origin (отражается в ответе) с credentials.
type CORSOptions struct {
	Production     bool
	AllowedOrigins []string
}

func CORS(opts CORSOptions) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", HeaderRequestID},
		ExposeHeaders:    []string{HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	switch {
	case !opts.Production:
		cfg.AllowOriginFunc = func(string) bool { return true }
	case len(opts.AllowedOrigins) > 0:
		cfg.AllowOrigins = opts.AllowedOrigins
	default:
		// production без списка: кросс-доменные запросы запрещены
		cfg.AllowOriginFunc = func(string) bool { return false }
	}

	return cors.New(cfg)
}
