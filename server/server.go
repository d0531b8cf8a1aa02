// Package server exposes the campus Service over a JSON HTTP API
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/theoremus-urban-solutions/campusmap/campus"
	"github.com/theoremus-urban-solutions/campusmap/config"
	"github.com/theoremus-urban-solutions/campusmap/metrics"
)

// Server owns the gin engine and the listening http.Server
type Server struct {
	svc    *campus.Service
	cfg    config.AppConfig
	engine *gin.Engine
	http   *http.Server

	startedAt int64
}

// New builds the router for svc. Nothing listens until Start.
func New(svc *campus.Service, cfg config.AppConfig) *Server {
	s := &Server{svc: svc, cfg: cfg, startedAt: time.Now().Unix()}

	r := gin.New()
	r.Use(gin.Recovery(), requestID(), observe())
	r.Use(cors.New(corsConfig(cfg.Server.AllowedOrigins)))
	s.routes(r)
	s.engine = r

	s.http = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

func (s *Server) routes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.GET("/health", s.handleHealth)
		api.GET("/buildings", s.handleListBuildings)
		api.GET("/buildings/search", s.handleSearchBuildings)
		api.GET("/buildings/:id", s.handleGetBuilding)
		api.GET("/stops", s.handleListStops)
		api.GET("/stops/nearest", s.handleNearestStops)
		api.GET("/stops/:id/predictions", s.handleStopPredictions)
		api.GET("/routes", s.handleListRoutes)
		api.GET("/routes/:id/geometry", s.handleRouteGeometry)
		api.GET("/routes/:id/buses", s.handleRouteBuses)
		api.GET("/buses/live", s.handleLiveBuses)
	}
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
}

// Handler returns the router, mostly for tests
func (s *Server) Handler() http.Handler { return s.engine }

// Start listens in the background. A listener failure is sent on the
// returned channel; a clean Shutdown closes it.
func (s *Server) Start() <-chan error {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()
	slog.Info("server listening", "addr", s.http.Addr)
	return errc
}

// Shutdown stops accepting connections and waits for in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	slog.Info("server shut down")
	return nil
}

// corsConfig allows every origin when none are listed or one of them is "*"
func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	c.AllowAllOrigins = len(origins) == 0 || slices.Contains(origins, "*")
	if !c.AllowAllOrigins {
		c.AllowOrigins = origins
	}
	c.ExposeHeaders = []string{RequestIDHeader}
	return c
}
