package app

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"

	"pathmatch/internal/delivery/http/middleware"
)

type App struct {
	Fiber *fiber.App
}

// New assembles the fiber app from an already-built container and
// starts the websocket hub.
func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	f.Use(middleware.NewErrorMiddleware(c.Log).Middleware())
	f.Use(middleware.NewAccessLogMiddleware(c.Log).Middleware())

	c.Registry.Register(f)

	go c.Hub.Run()

	return &App{Fiber: f}
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
