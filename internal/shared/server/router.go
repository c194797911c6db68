package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"career-recommender/internal/feedback"
	"career-recommender/internal/recommend"
	"career-recommender/internal/services/health"
	"career-recommender/internal/shared/config"
	"career-recommender/internal/shared/metrics"
	"career-recommender/internal/shared/server/middleware"
	"career-recommender/internal/shared/server/respond"
	"career-recommender/internal/web"
)

// RouterDeps holds handlers and services for routing.
type RouterDeps struct {
	Config           config.Config
	RecommendHandler *recommend.Handler
	FeedbackHandler  *feedback.Handler
	WebHandler       *web.Handler
	Health           *health.Service
	RateLimiter      *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.SetHTMLTemplate(web.Templates())

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(rateLimitConfig(deps)),
	)

	r.GET("/metrics", metrics.Handler())
	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "not_found", "route not found", nil)
	})

	if deps.WebHandler != nil {
		deps.WebHandler.RegisterRoutes(r)
	}

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		status := deps.Health.Status()
		code := http.StatusOK
		if !status.OK {
			code = http.StatusServiceUnavailable
		}
		respond.JSON(c, code, status)
	})
	if deps.RecommendHandler != nil {
		deps.RecommendHandler.RegisterRoutes(api)
	}
	if deps.FeedbackHandler != nil {
		deps.FeedbackHandler.RegisterRoutes(api)
	}

	return r
}

func rateLimitConfig(deps RouterDeps) middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		Rule: middleware.RateLimitRule{
			Rate:  deps.Config.RateLimitRPS,
			Burst: deps.Config.RateLimitBurst,
		},
		Limiter: deps.RateLimiter,
		Scoring: isScoringRoute,
	}
}

func isScoringRoute(c *gin.Context) bool {
	if c.Request.Method != http.MethodPost {
		return false
	}
	switch c.FullPath() {
	case "/recommend", "/api/v1/recommendations", "/api/v1/recommendations/report":
		return true
	}
	return false
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
