package handlers

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/schooldesk/timetable_bot/internal/controller/formatting"
	"github.com/schooldesk/timetable_bot/internal/model"
)

const addClassUsage = "Формат: /addclass день; ЧЧ:ММ-ЧЧ:ММ; класс; предмет; преподаватель; кабинет\n" +
	"Пример: /addclass Monday; 09:00-10:00; 7; Математика; Иванов; 204"

// parseClassArgs разбирает аргументы /addclass: день и поля занятия
// через точку с запятой
func parseClassArgs(text string) (model.Weekday, model.ClassSession, error) {
	var session model.ClassSession

	// Отрезаем саму команду
	_, args, found := strings.Cut(text, " ")
	if !found {
		return "", session, errors.New("missing arguments")
	}

	parts := strings.Split(args, ";")
	if len(parts) < 6 {
		return "", session, fmt.Errorf("expected 6 fields, got %d", len(parts))
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	day, err := model.ParseWeekday(parts[0])
	if err != nil {
		return "", session, err
	}

	timeRange := strings.SplitN(parts[1], "-", 2)
	if len(timeRange) != 2 {
		return "", session, fmt.Errorf("invalid time range %q", parts[1])
	}

	session.StartTime, err = model.ParseTimeOfDay(timeRange[0])
	if err != nil {
		return "", session, err
	}
	session.EndTime, err = model.ParseTimeOfDay(timeRange[1])
	if err != nil {
		return "", session, err
	}

	session.Grade = model.Grade(parts[2])
	session.Subject = parts[3]
	session.Instructor = parts[4]
	session.Room = parts[5]

	if len(parts) >= 7 && parts[6] != "" {
		session.LectureNumber, err = strconv.Atoi(parts[6])
		if err != nil {
			return "", session, fmt.Errorf("invalid lecture number %q", parts[6])
		}
	}

	return day, session, nil
}

// HandleAddClass обрабатывает /addclass — добавление занятия в расписание.
// День all добавляет занятие на каждый учебный день независимо.
func (h *Handlers) HandleAddClass(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID

	day, candidate, err := parseClassArgs(update.Message.Text)
	if err != nil {
		h.sendError(ctx, b, chatID, "Не понял команду.\n"+addClassUsage)
		return
	}

	if day == model.AllDays {
		outcomes, err := h.scheduleService.CreateForAllDays(ctx, candidate)
		if err != nil {
			h.replyServiceError(ctx, b, chatID, err)
			return
		}

		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "Результат добавления на все дни:\n\n" + formatting.FormatOutcomes(outcomes),
		})
		return
	}

	session, err := h.scheduleService.Create(ctx, day, candidate)
	if err != nil {
		h.replyServiceError(ctx, b, chatID, err)
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text: fmt.Sprintf(
			"✅ Занятие добавлено: %s, %s %s, %s класс",
			formatting.GetWeekdayName(day),
			formatting.FormatTimeRange(session.StartTime, session.EndTime),
			session.Subject,
			session.Grade,
		),
	})
}

// HandleDeleteClass обрабатывает /delclass день номер.
// Номер занятия берётся из списка /timetable день.
func (h *Handlers) HandleDeleteClass(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	args := strings.Fields(update.Message.Text)

	if len(args) != 3 {
		h.sendError(ctx, b, chatID, "Формат: /delclass день номер\nПример: /delclass Monday 2")
		return
	}

	day, err := model.ParseWeekday(args[1])
	if err != nil || day == model.AllDays {
		h.sendError(ctx, b, chatID, "Не понял день. Пример: /delclass Monday 2")
		return
	}

	index, err := strconv.Atoi(args[2])
	if err != nil || index < 1 {
		h.sendError(ctx, b, chatID, "Номер занятия должен быть положительным числом.")
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

	if index > len(sessions) {
		h.sendError(ctx, b, chatID, fmt.Sprintf(
			"На %s всего %d занятий.", formatting.GetWeekdayName(day), len(sessions)))
		return
	}

	session := sessions[index-1]
	if err := h.scheduleService.Delete(ctx, day, session.ID); err != nil {
		h.replyServiceError(ctx, b, chatID, err)
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text: fmt.Sprintf(
			"🗑 Удалено: %s, %s %s",
			formatting.GetWeekdayName(day),
			formatting.FormatTimeRange(session.StartTime, session.EndTime),
			session.Subject,
		),
	})
}

// replyServiceError превращает ошибку сервиса в понятный ответ пользователю
func (h *Handlers) replyServiceError(ctx context.Context, b *bot.Bot, chatID int64, err error) {
	var conflict *model.ConflictError
	if errors.As(err, &conflict) {
		h.sendError(ctx, b, chatID, "Конфликт: "+formatting.FormatConflict(conflict))
		return
	}

	var validation *model.ValidationError
	if errors.As(err, &validation) {
		h.sendError(ctx, b, chatID, "Некорректное занятие. Проверьте поля и время.\n"+addClassUsage)
		return
	}

	h.logger.Error("Schedule operation failed", zap.Error(err))
	h.sendError(ctx, b, chatID, "Не получилось сохранить изменение. Попробуйте позже.")
}
