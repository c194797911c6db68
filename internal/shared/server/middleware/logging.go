package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"career-recommender/internal/shared/telemetry"
)

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		telemetry.Info("request.complete", map[string]any{
			"request_id":        RequestIDFromContext(c),
			"method":            c.Request.Method,
			"path":              c.Request.URL.Path,
			"status":            c.Writer.Status(),
			"duration_ms":       float64(latency.Microseconds()) / 1000.0,
			"recommendation_id": c.GetString("recommendationId"),
			"predicted_career":  c.GetString("predictedCareer"),
			"input_source":      c.GetString("inputSource"),
			"client_ip":         c.ClientIP(),
			"user_agent":        c.Request.UserAgent(),
		})
	}
}
