package router

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"course-hub-api/internal/docstore"
	"course-hub-api/internal/domain"
	"course-hub-api/internal/handler"
	"course-hub-api/internal/metrics"
	"course-hub-api/internal/middleware"
	"course-hub-api/internal/repository"
	"course-hub-api/internal/service"
)

// Config carries the dependencies the router wires together.
type Config struct {
	Store       docstore.Provider
	Logger      *zap.Logger
	JWTSecret   string
	BasePath    string
	Metrics     *metrics.Metrics
	CORSOrigins []string
	// Registry backs /metrics; nil falls back to the default gatherer.
	Registry *prometheus.Registry
	// Ready is probed by /ready; nil means always ready.
	Ready func(ctx context.Context) error
}

// Setup builds the gin engine: shared middleware, the four course domains'
// CRUD and comment routes, and the operational endpoints. Reads are public;
// every mutation goes through the JWT middleware.
func Setup(cfg Config) *gin.Engine {
	engine := gin.New()
	engine.Use(middleware.Recovery(cfg.Logger))
	engine.Use(middleware.CORS(cfg.CORSOrigins))
	if cfg.Metrics != nil {
		engine.Use(middleware.Metrics(cfg.Metrics))
	}

	registerOperational(engine.Group(""), cfg)
	if cfg.BasePath != "" {
		// Ingress-prefixed deployments probe under the base path too.
		registerOperational(engine.Group(cfg.BasePath), cfg)
	}

	store := cfg.Store
	if cfg.Metrics != nil {
		store = docstore.NewInstrumentedProvider(store, cfg.Metrics)
	}

	api := engine.Group("/api")
	authorized := middleware.Auth(cfg.JWTSecret)

	for _, def := range domain.All() {
		registerDomain(api, authorized, store, def, cfg)
	}

	return engine
}

// registerDomain wires the repositories, services and handlers for one
// course domain and mounts its routes under /api/{name}.
func registerDomain(api *gin.RouterGroup, authorized gin.HandlerFunc, store docstore.Provider, def domain.Definition, cfg Config) {
	entityRepo := repository.NewEntityRepository(store, def)
	commentRepo := repository.NewCommentRepository(store, def)

	cascade := service.NewCascade(entityRepo, commentRepo, cfg.Metrics, cfg.Logger)
	entityService := service.NewEntityService(entityRepo, cascade, cfg.Metrics, cfg.Logger)
	commentService := service.NewCommentService(commentRepo, entityRepo, cfg.Metrics, cfg.Logger)

	entityHandler := handler.NewEntityHandler(entityService)
	commentHandler := handler.NewCommentHandler(commentService)

	group := api.Group("/" + def.Name)
	{
		group.GET("", entityHandler.List)
		group.GET("/:id", entityHandler.Get)
		group.GET("/:id/comments", commentHandler.List)

		group.POST("", authorized, entityHandler.Create)
		group.PUT("/:id", authorized, entityHandler.Update)
		group.DELETE("/:id", authorized, entityHandler.Delete)

		group.POST("/:id/comments", authorized, commentHandler.Create)
		group.PUT("/:id/comments/:commentId", authorized, commentHandler.Update)
		group.DELETE("/:id/comments/:commentId", authorized, commentHandler.Delete)
	}
}

// registerOperational mounts the probe and metrics endpoints on a group.
func registerOperational(group *gin.RouterGroup, cfg Config) {
	healthHandler := handler.NewHealthHandler(cfg.Ready)
	group.GET("/health", healthHandler.Health)
	group.GET("/ready", healthHandler.Ready)

	if cfg.Registry != nil {
		group.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{})))
	} else {
		group.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
}
