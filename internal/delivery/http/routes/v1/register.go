package v1

import (
	"log"

	"geostud-api/internal/database"
	"geostud-api/internal/delivery/http/handler"
	"geostud-api/internal/delivery/http/middleware"
	"geostud-api/internal/infrastructure/cache"
	"geostud-api/internal/repository"
	"geostud-api/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type Deps struct {
	DB       database.DB
	Cache    *cache.Redis
	Notifier usecase.Notifier
	Logger   *log.Logger
	AuthMw   *middleware.AuthMiddleware
}

func Register(r fiber.Router, deps Deps) {
	if r == nil {
		return
	}

	userRepo := repository.NewPostgresUserRepository(deps.DB)
	favoriteRepo := repository.NewPostgresFavoriteRepository(deps.DB)
	engagementRepo := repository.NewPostgresEngagementRepository(deps.DB)

	searchUC := usecase.NewCompanionSearch(userRepo, favoriteRepo, engagementRepo, deps.Cache, deps.Logger)
	engagementUC := usecase.NewEngagement(userRepo, engagementRepo, deps.Notifier, deps.Cache, deps.Logger)
	locationUC := usecase.NewLocationCompanions(userRepo, favoriteRepo, deps.Logger)

	searchHandler := handler.NewCompanionSearchHandler(searchUC)
	engagementHandler := handler.NewEngagementHandler(engagementUC)
	locationHandler := handler.NewLocationCompanionsHandler(locationUC)

	protected := r.Group("", deps.AuthMw.Middleware())

	searchHandler.RegisterRoutes(protected)
	engagementHandler.RegisterRoutes(protected)
	locationHandler.RegisterRoutes(protected)
}
