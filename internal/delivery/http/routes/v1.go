package routes

import (
	"geostud-api/internal/delivery/http/middleware"
	v1 "geostud-api/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

func RegisterV1(r fiber.Router, deps Deps, authMw *middleware.AuthMiddleware) {
	if r == nil {
		return
	}

	v1.Register(r, v1.Deps{
		DB:       deps.DB,
		Cache:    deps.Cache,
		Notifier: deps.Notifier,
		Logger:   deps.Logger,
		AuthMw:   authMw,
	})
}
