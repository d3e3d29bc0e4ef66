// Package server exposes transcripts over HTTP for a playback display: it
// lists transcripts, serves segments and paired media, reports the active
// segment for a playback position, and applies edits.
package server

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/mgpai22/scribe/internal/logging"
)

const shutdownTimeout = 5 * time.Second

// Options configures a Server.
type Options struct {
	Dir    string // transcript directory
	Bind   string // listen address
	Logger *logging.Logger
}

// Server holds shared dependencies for handlers.
type Server struct {
	dir      string
	bind     string
	logger   *logging.Logger
	validate *validator.Validate
	app      *fiber.App
}

// New builds a Server with its routes registered.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	s := &Server{
		dir:      opts.Dir,
		bind:     opts.Bind,
		logger:   logger,
		validate: validator.New(),
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "scribe",
		DisableStartupMessage: true,
		UnescapePath:          true,
		ErrorHandler:          s.handleError,
	})
	s.routes()
	return s
}

func (s *Server) routes() {
	s.app.Use(requestLogger(s.logger))
	s.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET,PATCH,OPTIONS",
	}))

	s.app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "ok",
			"message": "scribe is healthy",
		})
	})

	apiV1 := s.app.Group("/api/v1")

	transcripts := apiV1.Group("/transcripts")
	transcripts.Get("", s.listTranscripts)
	transcripts.Get("/:name/segments", s.getSegments)
	transcripts.Patch("/:name/segments", s.editSegment)
	transcripts.Get("/:name/active", s.getActive)
	transcripts.Get("/:name/media", s.getMedia)
}

// App exposes the underlying fiber application.
func (s *Server) App() *fiber.App {
	return s.app
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Infow("starting server", "bind", s.bind, "dir", s.dir)
		errCh <- s.app.Listen(s.bind)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Infow("shutting down server")
		if err := s.app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			return err
		}
		return nil
	}
}

func (s *Server) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
	}
	if code >= fiber.StatusInternalServerError {
		s.logger.Errorw("request failed", "error", err, "request_id", c.Locals(requestIDKey))
		return respondWithError(c, code, "internal server error")
	}
	return respondWithError(c, code, err.Error())
}
