package formatting

import (
	"fmt"
	"strings"

	"github.com/schooldesk/timetable_bot/internal/model"
)

// GetWeekdayName возвращает название дня недели на русском
func GetWeekdayName(day model.Weekday) string {
	names := map[model.Weekday]string{
		model.Monday:    "Понедельник",
		model.Tuesday:   "Вторник",
		model.Wednesday: "Среда",
		model.Thursday:  "Четверг",
		model.Friday:    "Пятница",
		model.Saturday:  "Суббота",
	}
	if name, ok := names[day]; ok {
		return name
	}
	return string(day)
}

// GetWeekdayShort возвращает короткое название дня недели
func GetWeekdayShort(day model.Weekday) string {
	names := map[model.Weekday]string{
		model.Monday:    "Пн",
		model.Tuesday:   "Вт",
		model.Wednesday: "Ср",
		model.Thursday:  "Чт",
		model.Friday:    "Пт",
		model.Saturday:  "Сб",
	}
	if name, ok := names[day]; ok {
		return name
	}
	return "?"
}

// FormatTimeRange форматирует диапазон времени занятия
func FormatTimeRange(start, end model.TimeOfDay) string {
	return fmt.Sprintf("%s-%s", start, end)
}

// FormatSession форматирует одно занятие строкой списка
func FormatSession(index int, session model.ClassSession) string {
	return fmt.Sprintf(
		"%d. 🕐 %s %s — %s класс, каб. %s, %s",
		index,
		FormatTimeRange(session.StartTime, session.EndTime),
		session.Subject,
		session.Grade,
		session.Room,
		session.Instructor,
	)
}

// FormatDaySchedule форматирует расписание одного дня
func FormatDaySchedule(day model.Weekday, sessions []model.ClassSession) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📅 <b>%s</b>\n", GetWeekdayName(day)))

	if len(sessions) == 0 {
		sb.WriteString("Занятий нет\n")
		return sb.String()
	}

	for i, session := range sessions {
		sb.WriteString(FormatSession(i+1, session))
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatWeek форматирует расписание всей недели
func FormatWeek(week map[model.Weekday][]model.ClassSession) string {
	var sb strings.Builder
	sb.WriteString("🗓 <b>Расписание на неделю</b>\n\n")

	for _, day := range model.Weekdays() {
		sb.WriteString(FormatDaySchedule(day, week[day]))
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatConflict форматирует отказ движка конфликтов понятным сообщением
func FormatConflict(conflict *model.ConflictError) string {
	switch conflict.Kind {
	case model.ConflictInstructor:
		return fmt.Sprintf(
			"преподаватель %s уже ведёт %s у %s класса в %s",
			conflict.Existing.Instructor,
			conflict.Existing.Subject,
			conflict.Existing.Grade,
			FormatTimeRange(conflict.Existing.StartTime, conflict.Existing.EndTime),
		)
	case model.ConflictGrade:
		return fmt.Sprintf(
			"у %s класса уже есть %s в %s",
			conflict.Existing.Grade,
			conflict.Existing.Subject,
			FormatTimeRange(conflict.Existing.StartTime, conflict.Existing.EndTime),
		)
	}
	return "конфликт расписания"
}

// FormatOutcomes форматирует по-дневный отчёт создания "на все дни"
func FormatOutcomes(outcomes []model.DayOutcome) string {
	var sb strings.Builder

	for _, outcome := range outcomes {
		name := GetWeekdayName(outcome.Day)
		switch {
		case outcome.Admitted():
			sb.WriteString(fmt.Sprintf("✅ %s: добавлено\n", name))
		case outcome.Conflict != nil:
			sb.WriteString(fmt.Sprintf("❌ %s: %s\n", name, FormatConflict(outcome.Conflict)))
		case outcome.Err != nil:
			sb.WriteString(fmt.Sprintf("⚠️ %s: ошибка записи, день пропущен\n", name))
		}
	}

	return sb.String()
}
