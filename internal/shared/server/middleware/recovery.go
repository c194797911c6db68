package middleware

import (
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/gin-gonic/gin"

	"career-recommender/internal/shared/server/respond"
	"career-recommender/internal/shared/telemetry"
)

// Recovery recovers from panics. API routes get the JSON error envelope;
// form pages get a plain-text message.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				fields := map[string]any{
					"request_id": RequestIDFromContext(c),
					"error":      rec,
					"stack":      string(debug.Stack()),
					"path":       c.Request.URL.Path,
					"method":     c.Request.Method,
				}
				if recID := c.GetString("recommendationId"); recID != "" {
					fields["recommendation_id"] = recID
				}
				telemetry.Error("panic", fields)
				if strings.HasPrefix(c.Request.URL.Path, "/api/") {
					respond.Error(c, http.StatusInternalServerError, "internal_error", "Unexpected server error", nil)
					return
				}
				c.Header("Content-Type", "text/plain; charset=utf-8")
				c.AbortWithStatus(http.StatusInternalServerError)
				_, _ = c.Writer.WriteString("Something went wrong while preparing your recommendation. Please try again.")
			}
		}()
		c.Next()
	}
}
