// Package schedule содержит чистую логику проверки расписания:
// пересечение интервалов и движок конфликтов. Пакет не знает про хранилище.
package schedule

import "github.com/schooldesk/timetable_bot/internal/model"

// Overlaps проверяет пересечение двух полуоткрытых интервалов времени.
// Занятия "впритык" (10:00-11:00 и 11:00-12:00) не пересекаются.
func Overlaps(startA, endA, startB, endB model.TimeOfDay) bool {
	return startA < endB && startB < endA
}
