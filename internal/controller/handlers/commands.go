package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	welcomeText := fmt.Sprintf(
		"👋 Привет, %s!\n\n"+
			"Это бот управления школьным расписанием.\n\n"+
			"Доступные команды:\n"+
			"/timetable - Расписание на неделю\n"+
			"/timetable Monday - Расписание на день\n"+
			"/timetableimage - Расписание картинкой\n"+
			"/addclass - Добавить занятие\n"+
			"/delclass - Удалить занятие\n"+
			"/help - Справка",
		update.Message.From.FirstName,
	)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   welcomeText,
	})
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	helpText := "📚 Справка по командам:\n\n" +
		"/timetable - Расписание всей недели\n" +
		"/timetable Monday - Расписание одного дня\n" +
		"/timetableimage - Недельная сетка картинкой\n\n" +
		"Добавить занятие:\n" +
		"/addclass день; ЧЧ:ММ-ЧЧ:ММ; класс; предмет; преподаватель; кабинет\n" +
		"Пример: /addclass Monday; 09:00-10:00; 7; Математика; Иванов; 204\n" +
		"День all добавляет занятие на каждый учебный день.\n\n" +
		"Удалить занятие:\n" +
		"/delclass день номер\n" +
		"Номер берите из списка /timetable день.\n\n" +
		"При пересечении по времени с тем же преподавателем или тем же " +
		"классом занятие не добавляется, бот сообщит с кем конфликт."

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   helpText,
	})
}
