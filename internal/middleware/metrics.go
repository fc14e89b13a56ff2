package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis command failures by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quill_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// ReplyDepthRejections counts comment writes rejected by the reply-depth
	// invariant.
	ReplyDepthRejections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quill_comment_reply_depth_rejections_total",
		Help: "Total number of comment writes rejected for targeting a reply",
	})

	// LikeToggles counts like and unlike operations.
	LikeToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quill_post_like_toggles_total",
		Help: "Total number of like/unlike operations by direction",
	}, []string{"direction"})
)

// InitMetrics creates the Prometheus middleware for the given service name.
func InitMetrics(service string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(service)
}

// MetricsMiddleware returns the request-metrics handler for the Fiber app.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
