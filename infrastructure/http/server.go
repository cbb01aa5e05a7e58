// Package http is the thin transport layer: JSON in, JSON list out.
// Validation happens here before any transaction is opened; everything
// else is delegated to the service layer.
package http

import (
	"context"
	stderrors "errors"
	"log/slog"
	"time"

	"chat-feed/domain"
	"chat-feed/errors"
	"chat-feed/observability"
	"chat-feed/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

var validate = validator.New()

type ServerConfig struct {
	MaxContentLength int
	RequestTimeout   time.Duration
}

// Pinger is the health-check view of the store.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	app         *fiber.App
	chatService services.IChatService
	store       Pinger
	monitoring  *observability.MonitoringManager
	log         *slog.Logger
	config      ServerConfig
}

func NewServer(
	log *slog.Logger,
	chatService services.IChatService,
	store Pinger,
	monitoring *observability.MonitoringManager,
	config ServerConfig,
) *Server {
	s := &Server{
		chatService: chatService,
		store:       store,
		monitoring:  monitoring,
		log:         log,
		config:      config,
	}

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(logger.New())
	app.Post("/messages/", s.handlePostMessage)
	app.Get("/healthz", s.handleHealth)
	s.app = app
	return s
}

func (s *Server) Listen(addr string) error {
	s.log.Info("HTTP server listening", "addr", addr)
	return s.app.Listen(addr)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App exposes the fiber app for in-process testing.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) handlePostMessage(c *fiber.Ctx) error {
	start := time.Now()
	defer func() {
		s.monitoring.RecordLatency(time.Since(start))
	}()

	var req MessageRequest
	if err := c.BodyParser(&req); err != nil {
		s.monitoring.IncrValidationRejected()
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed payload"})
	}
	if err := s.validateRequest(req); err != nil {
		s.monitoring.IncrValidationRejected()
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), s.config.RequestTimeout)
	defer cancel()

	window, err := s.chatService.PostMessage(ctx, domain.PostMessageCommand{
		SenderName: req.SenderName,
		Text:       req.Text,
	})
	if err != nil {
		status := mapErrorToStatus(err)
		if status == fiber.StatusInternalServerError {
			s.log.Error("Message rejected", "sender", req.SenderName, "error", err)
		}
		return c.Status(status).JSON(fiber.Map{"error": "message not accepted"})
	}

	return c.JSON(toMessagesListResponse(window))
}

func (s *Server) validateRequest(req MessageRequest) error {
	if err := validate.Struct(req); err != nil {
		return errors.ErrEmptySenderName
	}
	if s.config.MaxContentLength > 0 && len(req.Text) > s.config.MaxContentLength {
		return errors.ErrTextTooLong
	}
	return nil
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()
	if err := s.store.Ping(ctx); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded"})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

// mapErrorToStatus translates the service taxonomy onto HTTP codes:
// contention and aborted transactions are retryable (503), an integrity
// violation is a server fault (500).
func mapErrorToStatus(err error) int {
	switch {
	case stderrors.Is(err, errors.ErrEmptySenderName), stderrors.Is(err, errors.ErrTextTooLong):
		return fiber.StatusBadRequest
	case stderrors.Is(err, errors.ErrContention),
		stderrors.Is(err, context.DeadlineExceeded),
		stderrors.Is(err, context.Canceled):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}
