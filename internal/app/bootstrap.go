package app

import (
	"fmt"
	"log"
	"strings"

	"job-authenticity/internal/config"
	"job-authenticity/internal/delivery/http/middleware"
	"job-authenticity/internal/delivery/http/routes"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName: c.Config.App.AppName,
	})

	registerGlobalMiddleware(f, c.Logger)

	registry := routes.NewRegistry(c.Config, c.DB, c.Cache, c.Scorer, c.Hub, c.Logger)
	registry.Register(f)

	return &App{Fiber: f, Container: c}
}

func Bootstrap(cfg config.Config, logger *log.Logger) (*App, func() error, error) {
	container, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	app := New(container)
	return app, container.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *log.Logger) {
	if app == nil {
		return
	}

	errMw := middleware.NewErrorMiddleware()
	app.Use(errMw.Middleware())

	accessMw := middleware.NewAccessLogMiddleware(logger)
	app.Use(accessMw.Middleware())
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
