package signupstub

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"signup-qa/internal/middleware"
	"signup-qa/internal/modules/signupstub/handler"
	"signup-qa/internal/modules/signupstub/service"
	"signup-qa/internal/pkg/log"
	"signup-qa/internal/pkg/metrics"
	"signup-qa/internal/pkg/validator"
)

// Endpoint paths, identical to the remote API.
const (
	SignupPath     = "/api/authentication/signup/"
	ConfirmPath    = "/api/authentication/signup/confirm/"
	ResendCodePath = "/api/authentication/signup/resend-code/"
)

// Options configures the stub module.
type Options struct {
	// ResendLimit overrides the per-email resend quota; zero keeps the
	// remote API's limit of 5.
	ResendLimit int
	Logger      log.Logger
}

// Module bundles the stub's echo instance with its service and metrics so
// in-process tests can reach behind the HTTP surface (e.g. to read a
// pending confirmation code).
type Module struct {
	Echo     *echo.Echo
	Service  *service.SignupService
	Metrics  *metrics.SignupMetrics
	Registry *prometheus.Registry
}

// New assembles the stub server: validator, request middleware, the three
// signup routes, and a /metrics endpoint backed by a private registry.
func New(opts Options) *Module {
	logger := opts.Logger
	if logger == nil {
		logger = log.GetLogger()
	}

	registry := prometheus.NewRegistry()
	m := metrics.NewSignupMetrics("sqa", registry)
	svc := service.NewSignupService(opts.ResendLimit, logger, m)
	h := handler.NewSignupHandler(svc)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validator.New()

	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(logger))
	e.Use(echomw.Recover())
	e.Use(requestMetrics(m))

	e.POST(SignupPath, h.Register)
	e.POST(ConfirmPath, h.Confirm)
	e.POST(ResendCodePath, h.Resend)

	e.GET("/healthz", func(c echo.Context) error {
		return c.NoContent(200)
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	return &Module{
		Echo:     e,
		Service:  svc,
		Metrics:  m,
		Registry: registry,
	}
}

// requestMetrics counts served requests per endpoint and status.
func requestMetrics(m *metrics.SignupMetrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			m.RecordRequest(c.Path(), c.Response().Status)
			return err
		}
	}
}
