package server

import (
	"log/slog"
	"os"
	"time"

	"compliance/app/api"
	"compliance/app/middleware"
	"compliance/config"
	"compliance/ecfr"
	"compliance/rules"
	"compliance/wizard"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	accesslog "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	listenAddr string
	logger     *slog.Logger
	app        *fiber.App
}

// Deps are the collaborators behind the API handlers.
type Deps struct {
	Fetcher    api.PartFetcher
	Applicator wizard.Applicator
}

// NewServer wires the production dependencies from cfg.
func NewServer(cfg config.Config, logger *slog.Logger) *Server {
	extractor := ecfr.NewExtractor(ecfr.Config{
		BaseURL:     cfg.ECFRBaseURL,
		Timeout:     cfg.ECFRTimeout,
		UserAgent:   cfg.ECFRUserAgent,
		Concurrency: cfg.FetchConcurrency,
	}, logger)

	return NewServerWith(cfg, logger, Deps{
		Fetcher:    extractor,
		Applicator: rules.Default(),
	})
}

func NewServerWith(cfg config.Config, logger *slog.Logger, deps Deps) *Server {
	app := fiber.New(fiber.Config{
		ErrorHandler:          api.NewErrorHandler(logger),
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(accesslog.New(accesslog.Config{
		Format: "${time} ${locals:" + middleware.LocalsRequestID + "} ${status} ${method} ${path} ${latency}\n",
		Output: os.Stderr,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSAllowOrigins,
	}))

	var (
		checkHandler     = api.NewCheckHandler()
		selectionHandler = api.NewSelectionHandler(deps.Fetcher, logger)
		profileHandler   = api.NewProfileHandler(deps.Applicator, logger)
		catalogHandler   = api.NewCatalogHandler()
		check            = app.Group("/check")
	)

	check.Get("/healthy", checkHandler.HandleHealthy)

	for _, prefix := range []string{"/api", "/api/v1"} {
		r := app.Group(prefix)
		r.Post("/selection", selectionHandler.HandleSelection)
		r.Post("/profile", profileHandler.HandleProfile)
		r.Get("/parts", catalogHandler.HandleParts)
		r.Get("/profile/questions", catalogHandler.HandleProfileQuestions)
		r.Get("/questionnaire", catalogHandler.HandleQuestionnaire)
	}

	return &Server{
		listenAddr: cfg.ServerAddr,
		logger:     logger,
		app:        app,
	}
}

func (s *Server) App() *fiber.App {
	return s.app
}

// Run blocks serving HTTP until Stop is called or the listener fails.
func (s *Server) Run() error {
	s.logger.Info("server started", "addr", s.listenAddr)
	if err := s.app.Listen(s.listenAddr); err != nil {
		s.logger.Error("error to start server", "error", err.Error())
		return err
	}
	return nil
}

func (s *Server) Stop() error {
	err := s.app.ShutdownWithTimeout(shutdownTimeout)
	s.logger.Info("server stopped")
	return err
}
