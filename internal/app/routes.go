package app

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smartnotes/core/internal/middleware"
	"github.com/smartnotes/core/internal/modules/ai"
	"github.com/smartnotes/core/internal/modules/auth"
	"github.com/smartnotes/core/internal/modules/categorize"
	"github.com/smartnotes/core/internal/modules/category"
	"github.com/smartnotes/core/internal/modules/health"
	"github.com/smartnotes/core/internal/modules/intake"
	"github.com/smartnotes/core/internal/modules/labels"
	"github.com/smartnotes/core/internal/modules/note"
	"github.com/smartnotes/core/internal/modules/todo"
	"github.com/smartnotes/core/internal/pkg/response"
	"go.uber.org/zap"
)

func (a *App) registerRoutes() {
	r := a.router
	db := a.db

	authSvc := auth.NewService(db)

	authMW := middleware.Auth(db)
	if a.cfg.Auth.DevBypass && a.cfg.IsDev() {
		a.logger.Warn("auth dev bypass is enabled, all requests run as the local dev user",
			zap.String("email", a.cfg.Auth.DevEmail))
		authMW = auth.DevBypass(authSvc, a.cfg.Auth.DevEmail)
	}

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "")
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	r.GET("/ping", func(c *gin.Context) {
		c.String(200, "pong")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	classifier := ai.NewFromConfig(a.cfg.AI)
	intakeSvc := intake.NewService(classifier)
	categorizeSvc := categorize.NewService(classifier)
	labelSvc := labels.NewService(db, classifier)
	noteSvc := note.NewService(db, intakeSvc, categorizeSvc)
	todoSvc := todo.NewService(db)
	categorySvc := category.NewService(db)

	api := r.Group("/api/v1")
	if a.redis != nil {
		api.Use(middleware.RateLimit(a.redis.Raw()))
	}

	health.NewHandler(db).RegisterRoutes(api)
	auth.NewHandler(authSvc).RegisterRoutes(api, authMW)
	note.NewHandler(noteSvc, labelSvc).RegisterRoutes(api, authMW)
	todo.NewHandler(todoSvc, labelSvc).RegisterRoutes(api, authMW)
	category.NewHandler(categorySvc).RegisterRoutes(api, authMW)
	labels.NewHandler(labelSvc).RegisterRoutes(api, authMW)
}
