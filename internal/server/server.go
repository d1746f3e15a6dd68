// Package server отдаёт расписание и операции над ним по HTTP (JSON API).
package server

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/schooldesk/timetable_bot/internal/service"
)

type Server struct {
	app      *fiber.App
	schedule *service.ScheduleService
	validate *validator.Validate
	logger   *zap.Logger
}

func New(schedule *service.ScheduleService, logger *zap.Logger) *Server {
	s := &Server{
		app:      fiber.New(fiber.Config{ErrorHandler: errorHandler}),
		schedule: schedule,
		validate: validator.New(),
		logger:   logger,
	}

	api := s.app.Group("/api")
	api.Get("/timetable", s.GetWeek)
	api.Get("/timetable/:day", s.GetDay)
	api.Post("/timetable/:day", s.CreateSession)
	api.Put("/timetable/:day/:id", s.UpdateSession)
	api.Delete("/timetable/:day/:id", s.DeleteSession)

	return s
}

// Listen блокирует до остановки сервера
func (s *Server) Listen(addr string) error {
	s.logger.Info("Starting HTTP server", zap.String("addr", addr))
	return s.app.Listen(addr)
}

// Shutdown останавливает сервер, дожидаясь активных запросов
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// errorHandler приводит ошибки fiber к JSON
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
