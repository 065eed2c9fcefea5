package http

import (
	"net/http"
	"sync"

	"production/internal/core/validation"
	"production/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
	"go.uber.org/zap"
)

const BaseURL = "/api/v1"

var registerDocOnce sync.Once

// apiDoc serves the embedded OpenAPI document to the swagger UI.
type apiDoc struct {
	validator *validation.Validator
}

func (d apiDoc) ReadDoc() string {
	raw, err := d.validator.Document().MarshalJSON()
	if err != nil {
		return "{}"
	}
	return string(raw)
}

// RouterDeps holds what NewRouter needs besides the API handlers.
type RouterDeps struct {
	Validator *validation.Validator
	Gatherer  prometheus.Gatherer
	Metrics   *metrics.Metrics
	Logger    *zap.Logger
}

// NewRouter builds the echo instance serving the REST API under BaseURL plus
// /health, /metrics and /swagger/*.
func NewRouter(si ServerInterface, deps RouterDeps) *echo.Echo {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler(logger)
	e.Use(RequestLogger(logger, deps.Metrics))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	if deps.Gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}
	if deps.Validator != nil {
		registerDocOnce.Do(func() {
			swag.Register(swag.Name, apiDoc{validator: deps.Validator})
		})
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	RegisterHandlersWithBaseURL(e, si, BaseURL)
	return e
}
