package main

import (
	"errors"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/jtejido/afislr/internal/afis"
	"github.com/jtejido/afislr/internal/config"
	"github.com/jtejido/afislr/internal/priors"
)

type server struct {
	cfg  config.Config
	db   *afis.Database
	jobs *jobStore
}

// newApp wires the routes. Request logs go to logOutput; nil disables them.
func newApp(cfg config.Config, db *afis.Database, logOutput io.Writer) *fiber.App {
	s := &server{
		cfg:  cfg,
		db:   db,
		jobs: newJobStore(cfg.Server.MaxJobs),
	}

	app := fiber.New(fiber.Config{
		BodyLimit: cfg.Server.BodyLimit,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			return c.Status(code).JSON(errorResponse{
				Error: err.Error(),
			})
		},
	})

	if logOutput != nil {
		app.Use(logger.New(logger.Config{Output: logOutput}))
	}
	app.Use(cors.New())

	app.Get("/health", s.health)
	app.Get("/priors", s.priors)

	app.Post("/verify", s.verify)
	app.Post("/compare", s.compare)
	app.Post("/lr", s.likelihood)

	app.Get("/candidates", s.listCandidates)
	app.Get("/candidates/:id", s.getCandidate)
	app.Post("/candidates", s.addCandidate)
	app.Delete("/candidates/:id", s.removeCandidate)
	app.Delete("/candidates", s.clearCandidates)

	app.Post("/identify", s.identify)
	app.Post("/identify/async", s.identifyAsync)
	app.Get("/jobs/:id", s.job)
	app.Delete("/jobs/:id", s.cancelJob)

	return app
}

func (s *server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":     "ok",
		"time":       time.Now(),
		"candidates": s.db.Len(),
	})
}

func (s *server) priors(c *fiber.Ctx) error {
	return encode(c, priors.Select(s.cfg.Likelihood.UseBrazilianPriors))
}
