// Package api serves the simulator over HTTP: generated series, live
// feeds, the watchlist, indicator summaries and the paper order blotter.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/rustyeddy/marketsim/blotter"
	"github.com/rustyeddy/marketsim/config"
	"github.com/rustyeddy/marketsim/internal/metrics"
	"github.com/rustyeddy/marketsim/internal/scheduler"
	"github.com/rustyeddy/marketsim/journal"
)

// Deps are the collaborators a Server needs. Journal and Blotter may be nil.
type Deps struct {
	Config   *config.Config
	Registry *scheduler.Registry
	Blotter  *blotter.Blotter
	Journal  journal.Journal
	Metrics  *metrics.Metrics
	Log      zerolog.Logger
}

// Server wraps an Echo instance.
type Server struct {
	echo     *echo.Echo
	cfg      *config.Config
	reg      *scheduler.Registry
	blotter  *blotter.Blotter
	journal  journal.Journal
	metrics  *metrics.Metrics
	log      zerolog.Logger
	upgrader websocket.Upgrader
	now      func() time.Time
}

func New(d Deps) (*Server, error) {
	if d.Config == nil || d.Registry == nil || d.Metrics == nil {
		return nil, errors.New("api: config, registry and metrics are required")
	}
	if d.Journal == nil {
		d.Journal = journal.Nop{}
	}
	if d.Blotter == nil {
		d.Blotter = blotter.New(d.Journal)
	}

	s := &Server{
		echo:    echo.New(),
		cfg:     d.Config,
		reg:     d.Registry,
		blotter: d.Blotter,
		journal: d.Journal,
		metrics: d.Metrics,
		log:     d.Log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		now: time.Now,
	}

	e := s.echo
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(s.requestLogger())
	e.Use(s.observeLatency)
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	s.registerRoutes()
	return s, nil
}

func (s *Server) registerRoutes() {
	e := s.echo
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{})))

	v1 := e.Group("/api/v1")
	v1.GET("/series/:symbol", s.getSeries)
	v1.POST("/tick", s.postTick)
	v1.GET("/feeds/:symbol", s.getFeed)
	v1.GET("/quotes", s.getQuotes)
	v1.GET("/summary/:symbol", s.getSummary)
	v1.POST("/orders", s.postOrder)
	v1.GET("/positions/:symbol", s.getPosition)

	e.GET("/ws/feeds/:symbol", s.streamFeed)
}

// Handler exposes the router, mostly for httptest.
func (s *Server) Handler() http.Handler { return s.echo }

// Start listens on addr in the background. Errors other than a clean
// shutdown are sent on the returned channel.
func (s *Server) Start(addr string) <-chan error {
	errc := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("http server listening")
		if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()
	return errc
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	s.log.Info().Msg("http server stopped")
	return nil
}

func (s *Server) requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogMethod:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			ev := s.log.Debug()
			if v.Error != nil || v.Status >= http.StatusInternalServerError {
				ev = s.log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}

func (s *Server) observeLatency(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		path := c.Path()
		if path == "" {
			path = "unmatched"
		}
		s.metrics.RequestLatency.WithLabelValues(path).Observe(time.Since(start).Seconds())
		return err
	}
}
