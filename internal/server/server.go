// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package server exposes the render pipeline over HTTP.
//
//	GET  /health/live
//	POST /api/v1/estimate   project document -> shape estimate
//	POST /api/v1/render     project document -> PNG
package server

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/gogpu/lsys"
	"github.com/gogpu/lsys/internal/config"
)

// MaxDimension bounds the width and height of a rendered image.
const MaxDimension = 8192

// Server is the HTTP render service.
type Server struct {
	cfg *config.Config
	app *fiber.App

	// backend names the surface used for renders.
	backend string
}

// New creates a Server with its routes installed.
func New(cfg *config.Config) *Server {
	s := &Server{cfg: cfg, backend: "raster"}

	s.app = fiber.New(fiber.Config{
		AppName:      "lsysd",
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		BodyLimit:    cfg.MaxBody,
	})

	s.app.Use(recover.New())
	if !cfg.Production() {
		s.app.Use(logger.New(logger.Config{
			Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
			TimeFormat: "15:04:05",
			TimeZone:   "Local",
		}))
	}

	s.app.Get("/health/live", s.live)

	api := s.app.Group("/api/v1")
	api.Post("/estimate", s.estimate)
	api.Post("/render", s.render)

	return s
}

// App returns the underlying fiber application.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves on the configured port until the app is shut down.
func (s *Server) Listen() error {
	addr := fmt.Sprintf(":%s", s.cfg.Port)
	lsys.Logger().Info("server: listening", "addr", addr, "env", s.cfg.Environment)
	return s.app.Listen(addr)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) live(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func errorJSON(c fiber.Ctx, status int, err error) error {
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
