package handlers

import (
	"bytes"
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/schooldesk/timetable_bot/internal/controller/formatting"
	"github.com/schooldesk/timetable_bot/internal/controller/render"
	"github.com/schooldesk/timetable_bot/internal/model"
)

// HandleTimetable обрабатывает /timetable [день]
func (h *Handlers) HandleTimetable(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	args := strings.Fields(update.Message.Text)

	// Префикс /timetable матчит и /timetableimage, отдаём той команде
	if len(args) > 0 && args[0] == "/timetableimage" {
		h.HandleTimetableImage(ctx, b, update)
		return
	}

	// Без аргумента показываем всю неделю
	if len(args) < 2 {
		week, err := h.scheduleService.GetWeek(ctx)
		if err != nil {
			h.logger.Error("Failed to load week schedule", zap.Error(err))
			h.sendError(ctx, b, chatID, "Не удалось загрузить расписание. Попробуйте позже.")
			return
		}

		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:    chatID,
			Text:      formatting.FormatWeek(week),
			ParseMode: models.ParseModeHTML,
		})
		return
	}

	day, err := model.ParseWeekday(args[1])
	if err != nil || day == model.AllDays {
		h.sendError(ctx, b, chatID, "Не понял день. Пример: /timetable Monday")
		return
	}

	sessions, err := h.scheduleService.GetDay(ctx, day)
	if err != nil {
		h.logger.Error("Failed to load day schedule",
			zap.String("day", string(day)),
			zap.Error(err))
		h.sendError(ctx, b, chatID, "Не удалось загрузить расписание. Попробуйте позже.")
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      formatting.FormatDaySchedule(day, sessions),
		ParseMode: models.ParseModeHTML,
	})
}

// HandleTimetableImage обрабатывает /timetableimage — недельная сетка картинкой
func (h *Handlers) HandleTimetableImage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID

	week, err := h.scheduleService.GetWeek(ctx)
	if err != nil {
		h.logger.Error("Failed to load week schedule", zap.Error(err))
		h.sendError(ctx, b, chatID, "Не удалось загрузить расписание. Попробуйте позже.")
		return
	}

	image, err := render.WeekImage(week)
	if err != nil {
		h.logger.Error("Failed to render timetable image", zap.Error(err))
		h.sendError(ctx, b, chatID, "Не удалось построить картинку расписания.")
		return
	}

	b.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID: chatID,
		Photo: &models.InputFileUpload{
			Filename: "timetable.png",
			Data:     bytes.NewReader(image),
		},
	})
}

// sendError отправляет сообщение об ошибке пользователю
func (h *Handlers) sendError(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "❌ " + text,
	})
}
