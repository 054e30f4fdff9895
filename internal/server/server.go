package server

import (
	"time"

	"termini-stats/internal/config"
	"termini-stats/internal/source"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Server wires the statistics engine to its HTTP consumers. All computation
// happens per request over the client's current snapshot; the server itself
// holds no derived state.
type Server struct {
	cfg    *config.AppConfig
	src    *source.Client
	engine *gin.Engine
	cron   *cron.Cron
	now    func() time.Time
}

// New builds the server and its route table.
func New(cfg *config.AppConfig, src *source.Client) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		cfg:    cfg,
		src:    src,
		engine: gin.New(),
		cron:   cron.New(),
		now:    time.Now,
	}
	s.engine.Use(gin.Recovery(), requestLogger())

	api := s.engine.Group("/api")
	api.GET("/stats", s.handleStats)
	api.GET("/compare", s.handleCompare)
	api.GET("/forecast", s.handleForecast)
	api.POST("/refresh", s.handleRefresh)

	s.engine.GET("/healthz", s.handleHealth)

	return s
}

// Run starts the scheduled snapshot refresh and blocks serving HTTP.
func (s *Server) Run() error {
	if s.cfg.RefreshSpec != "" {
		if _, err := s.cron.AddFunc(s.cfg.RefreshSpec, s.scheduledRefresh); err != nil {
			log.Warn().Err(err).Str("spec", s.cfg.RefreshSpec).Msg("Invalid refresh schedule, periodic refresh disabled")
		} else {
			s.cron.Start()
			defer s.cron.Stop()
		}
	}

	log.Info().Str("addr", s.cfg.ListenAddr).Msg("Dashboard API listening")
	return s.engine.Run(s.cfg.ListenAddr)
}

func (s *Server) scheduledRefresh() {
	ctx, cancel := contextWithTimeout(s.cfg.Source.Timeout)
	defer cancel()
	if _, err := s.src.Refresh(ctx); err != nil {
		log.Warn().Err(err).Msg("Scheduled refresh failed")
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("took", time.Since(start)).
			Msg("Request handled")
	}
}
