package server

import (
	"context"
	"net/http"
	"time"

	"github.com/fossecrm/fosse/internal/config"
	"github.com/fossecrm/fosse/internal/directory"
	directorydomain "github.com/fossecrm/fosse/internal/directory/domain"
	obsmiddleware "github.com/fossecrm/fosse/internal/observability/logger"
	"github.com/fossecrm/fosse/internal/preview"
	rolesettingdomain "github.com/fossecrm/fosse/internal/rolesetting/domain"
	statusdomain "github.com/fossecrm/fosse/internal/status/domain"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Server struct {
	engine      *gin.Engine
	cfg         config.Config
	log         *zap.Logger
	store       rolesettingdomain.Store
	coordinator statusdomain.Coordinator
	statuses    statusdomain.Directory
	previews    *preview.Orchestrator
	resolver    *directory.Resolver
	roles       directorydomain.Roles
}

type Params struct {
	fx.In

	Engine      *gin.Engine
	Cfg         config.Config
	Log         *zap.Logger
	Store       rolesettingdomain.Store
	Coordinator statusdomain.Coordinator
	Statuses    statusdomain.Directory
	Previews    *preview.Orchestrator
	Resolver    *directory.Resolver
	Roles       directorydomain.Roles
}

func NewEngine(log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(log))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func NewServer(p Params) *Server {
	s := &Server{
		engine:      p.Engine,
		cfg:         p.Cfg,
		log:         p.Log.Named("server"),
		store:       p.Store,
		coordinator: p.Coordinator,
		statuses:    p.Statuses,
		previews:    p.Previews,
		resolver:    p.Resolver,
		roles:       p.Roles,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	v1 := s.engine.Group("/v1")
	v1.GET("/columns", s.ListColumns)
	v1.GET("/roles", s.ListRoles)
	v1.GET("/role-settings", s.ListRoleSettings)
	v1.GET("/role-settings/:roleId", s.GetRoleSetting)
	v1.PATCH("/role-settings/:roleId", s.UpdateRoleSetting)
	v1.PUT("/role-settings/:roleId/filters/:columnId", s.MutateRoleFilter)
	v1.GET("/role-settings/:roleId/preview", s.PreviewRoleSetting)
	v1.GET("/statuses", s.ListStatuses)
	v1.PUT("/statuses/default", s.SetDefaultStatus)
}

func RunHTTP(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(RunHTTP),
)
