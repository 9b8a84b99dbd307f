package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/druckwerk/belegdesigner/internal/config"
	"github.com/druckwerk/belegdesigner/internal/observability/logger"
	"github.com/druckwerk/belegdesigner/internal/observability/metrics"
	"github.com/druckwerk/belegdesigner/internal/render"
	templatedomain "github.com/druckwerk/belegdesigner/internal/template/domain"
)

// Server carries the handler dependencies for the designer API.
type Server struct {
	cfg config.Config
	log *zap.Logger
	db  *gorm.DB

	templateSvc templatedomain.Service
	engine      *render.Engine
	preview     *render.HTMLPreview

	router *gin.Engine
}

type ServerParam struct {
	fx.In

	Cfg config.Config
	Log *zap.Logger
	DB  *gorm.DB

	TemplateSvc templatedomain.Service
	Engine      *render.Engine
	Preview     *render.HTMLPreview

	Router *gin.Engine
}

func NewServer(p ServerParam) *Server {
	return &Server{
		cfg:         p.Cfg,
		log:         p.Log.Named("server"),
		db:          p.DB,
		templateSvc: p.TemplateSvc,
		engine:      p.Engine,
		preview:     p.Preview,
		router:      p.Router,
	}
}

// NewEngine builds the gin router with logging and metrics middleware and
// the operational endpoints.
func NewEngine(cfg config.Config, log *zap.Logger, httpMetrics *metrics.HTTPMetrics) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.GinMiddleware(log.Named("http")))
	r.Use(metrics.GinMiddleware(httpMetrics))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return r
}

// RegisterAPIRoutes binds the designer API under /api.
func (s *Server) RegisterAPIRoutes() {
	api := s.router.Group("/api")

	api.GET("/placeholders", s.ListPlaceholders)

	api.GET("/templates", s.ListTemplates)
	api.POST("/templates", s.SaveTemplate)
	api.GET("/templates/:id", s.GetTemplate)
	api.POST("/templates/:id/deactivate", s.DeactivateTemplate)
	api.POST("/templates/:id/preview", s.PreviewTemplate)
}

// RunHTTP starts the HTTP server on the fx lifecycle.
func RunHTTP(lc fx.Lifecycle, cfg config.Config, log *zap.Logger, router *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", cfg.HTTP.Addr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("http server stopping")
			return srv.Shutdown(ctx)
		},
	})
}

var Module = fx.Module("server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(func(s *Server) {
		s.RegisterAPIRoutes()
	}),
	fx.Invoke(RunHTTP),
)
