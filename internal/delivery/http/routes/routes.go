package routes

import (
	"log"

	"geostud-api/internal/config"
	"geostud-api/internal/database"
	"geostud-api/internal/delivery/http/handler"
	"geostud-api/internal/delivery/http/middleware"
	"geostud-api/internal/infrastructure/cache"
	"geostud-api/internal/metrics"
	"geostud-api/internal/pkg/jwt"
	"geostud-api/internal/usecase"
	"geostud-api/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
)

type Deps struct {
	Config   config.Config
	DB       database.DB
	Cache    *cache.Redis
	Notifier usecase.Notifier
	Hub      *ws.Hub
	Logger   *log.Logger
}

type Registry struct {
	deps   Deps
	health *handler.HealthHandler
}

func NewRegistry(deps Deps) *Registry {
	return &Registry{
		deps:   deps,
		health: handler.NewHealthHandler(deps.DB, deps.Cache),
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	jwtSvc := jwt.NewHMACService(r.deps.Config.JWT.AccessSecret, r.deps.Config.JWT.AccessExpiresIn)
	authMw := middleware.NewAuthMiddleware(jwtSvc)

	if r.deps.Hub != nil {
		wsHandler := ws.NewHandler(r.deps.Hub, r.deps.Logger)
		app.Get("/ws", wsHandler.HandleNotificationsWS, authMw.Middleware())
	}

	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.deps, authMw)
}
