package app

import (
	"fmt"
	"log"
	"strings"

	"geostud-api/internal/config"
	"geostud-api/internal/delivery/http/middleware"
	"geostud-api/internal/delivery/http/routes"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// Bootstrap builds the container and the HTTP surface. The returned cleanup
// function releases every connection the container owns.
func Bootstrap(cfg config.Config, logger *log.Logger) (*App, func() error, error) {
	if logger == nil {
		logger = log.Default()
	}

	container, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	f := fiber.New(fiber.Config{
		AppName: cfg.App.AppName,
	})

	registerGlobalMiddleware(f, logger)

	registry := routes.NewRegistry(routes.Deps{
		Config:   cfg,
		DB:       container.DB,
		Cache:    container.Cache,
		Notifier: container.Notifier,
		Hub:      container.Hub,
		Logger:   logger,
	})
	registry.Register(f)

	app := &App{Fiber: f, Container: container}
	return app, container.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *log.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewErrorMiddleware().Middleware())
	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
