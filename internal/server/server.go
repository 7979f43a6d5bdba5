package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// StepReporter reports which seeding step is running, or "" when idle.
type StepReporter interface {
	CurrentStep() string
}

type Server struct {
	e *echo.Echo
}

func New(reg *prometheus.Registry, steps StepReporter) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	e.GET("/healthz", func(c echo.Context) error {
		step := ""
		if steps != nil {
			step = steps.CurrentStep()
		}
		return c.JSON(http.StatusOK, map[string]string{
			"status": "ok",
			"step":   step,
		})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	return &Server{e: e}
}

func (s *Server) Handler() http.Handler {
	return s.e
}

// Start blocks until the server stops. A clean shutdown returns nil.
func (s *Server) Start(addr string) error {
	if err := s.e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}
