package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	corsAllowMethods  = "GET,POST,PATCH,DELETE,OPTIONS,HEAD"
	corsAllowHeaders  = "Content-Type, Authorization, X-Request-Id, X-User-Id, Upload-Offset, Upload-Length, Tus-Resumable, Upload-Metadata, Upload-Concat"
	corsExposeHeaders = "X-Request-Id, Upload-Offset, Upload-Length, Tus-Resumable, Upload-Metadata, Upload-Expires, Location, Content-Length"
	corsMaxAge        = "600"
)

// CORS sets CORS headers and handles preflight requests. An allowed origin of
// "*" answers every origin with a wildcard and never allows credentials.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	origins := make(map[string]struct{})
	wildcard := false
	for _, o := range allowedOrigins {
		trimmed := strings.TrimSpace(o)
		if trimmed == "" {
			continue
		}
		if trimmed == "*" {
			wildcard = true
			continue
		}
		origins[trimmed] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			h := c.Writer.Header()
			allowed := false
			if _, ok := origins[origin]; ok {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Add("Vary", "Origin")
				allowed = true
			} else if wildcard {
				h.Set("Access-Control-Allow-Origin", "*")
				allowed = true
			}
			if allowed {
				h.Set("Access-Control-Allow-Methods", corsAllowMethods)
				h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
				h.Set("Access-Control-Expose-Headers", corsExposeHeaders)
				h.Set("Access-Control-Max-Age", corsMaxAge)
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			c.Abort()
			return
		}

		c.Next()
	}
}
