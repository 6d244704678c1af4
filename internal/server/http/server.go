// Package httpserver exposes the board service as a JSON REST API.
package httpserver

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/and161185/kanban/internal/service"
)

const readTimeout = 10 * time.Second

// Server wires the board service into fiber routes.
type Server struct {
	app *fiber.App
	svc service.BoardService
	log *zap.Logger
}

// New builds the fiber app with middleware and routes registered.
func New(svc service.BoardService, log *zap.Logger) *Server {
	s := &Server{svc: svc, log: log}
	s.app = fiber.New(fiber.Config{
		AppName:               "kanban",
		DisableStartupMessage: true,
		ReadTimeout:           readTimeout,
		ErrorHandler:          s.handleError,
	})

	s.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept," + HeaderRequestID,
	}))
	s.app.Use(RequestID())
	s.app.Use(AccessLog(log, s.handleError))
	s.app.Use(recover.New())

	s.routes()
	return s
}

func (s *Server) routes() {
	s.app.Get("/healthz", s.health)

	boards := s.app.Group("/api/boards")
	boards.Post("/", s.createBoard)
	boards.Get("/:boardId", s.getBoard)
	boards.Patch("/:boardId", s.renameBoard)
	boards.Delete("/:boardId", s.deleteBoard)

	cards := boards.Group("/:boardId/cards")
	cards.Post("/", s.addCard)
	cards.Patch("/:cardId/move", s.moveCard)
	cards.Patch("/:cardId", s.updateCard)
	cards.Delete("/:cardId", s.deleteCard)
}

// App returns the underlying fiber app, mainly for tests.
func (s *Server) App() *fiber.App { return s.app }

// Listen blocks serving on addr until Shutdown.
func (s *Server) Listen(addr string) error { return s.app.Listen(addr) }

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error { return s.app.ShutdownWithContext(ctx) }
