// Package server is the optional sync backend: a fiber HTTP API over gorm.
package server

import (
	"crypto/subtle"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"
)

// NewApp wires middleware and routes under /api/v1. A non-empty token must
// be sent as a bearer token on every scoped route.
func NewApp(repo *Repo, log zerolog.Logger, token string) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "moneymate-server",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(requestLogger(log))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-User-ID",
	}))

	h := NewHandler(repo, log)
	api := app.Group("/api/v1")
	api.Get("/health", h.Health)

	scoped := api.Group("", requireToken(token), h.requireUser)
	scoped.Get("/profile", h.GetProfile)
	scoped.Put("/profile", h.PutProfile)

	scoped.Get("/transactions", h.ListTransactions)
	scoped.Post("/transactions", h.CreateTransaction)
	scoped.Delete("/transactions/:id", h.DeleteTransaction)

	scoped.Get("/goals", h.ListGoals)
	scoped.Post("/goals", h.CreateGoal)
	scoped.Patch("/goals/:id", h.UpdateGoal)
	scoped.Delete("/goals/:id", h.DeleteGoal)

	return app
}

func requireToken(token string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token == "" {
			return c.Next()
		}
		got, ok := strings.CutPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			return errorJSON(c, fiber.StatusUnauthorized, "invalid token")
		}
		return c.Next()
	}
}

// requestLogger adds structured logging to HTTP requests.
func requestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		log.Info().
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("duration", time.Since(start)).
			Str("remote_addr", c.IP()).
			Msg("HTTP request")
		return err
	}
}
