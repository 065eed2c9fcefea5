package http

import (
	"time"

	"production/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RequestLogger logs every request with zap and counts it in m. The route
// template is recorded instead of the raw path to keep label cardinality low.
func RequestLogger(logger *zap.Logger, m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			start := time.Now()
			err := next(ctx)
			if err != nil {
				ctx.Error(err)
			}

			req := ctx.Request()
			status := ctx.Response().Status
			route := ctx.Path()
			if route == "" {
				route = "unmatched"
			}
			if m != nil {
				m.ObserveRequest(req.Method, route, status)
			}
			logger.Info("request",
				zap.String("method", req.Method),
				zap.String("route", route),
				zap.String("uri", req.RequestURI),
				zap.Int("status", status),
				zap.Duration("latency", time.Since(start)),
				zap.String("tenantId", req.Header.Get(HeaderTenantID)),
				zap.String("correlationId", req.Header.Get(HeaderCorrelationID)),
			)
			return nil
		}
	}
}
