package handlers

import (
	"go.uber.org/zap"

	"github.com/schooldesk/timetable_bot/internal/service"
)

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	scheduleService *service.ScheduleService
	logger          *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(scheduleService *service.ScheduleService, logger *zap.Logger) *Handlers {
	return &Handlers{
		scheduleService: scheduleService,
		logger:          logger,
	}
}
